// Package s3 stores profile images in an S3-compatible bucket (Supabase
// Storage exposes one) and maps object keys to public URLs.
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vendemas/pedidos-api/internal/core/ports"
)

var _ ports.BlobStore = (*Store)(nil)

const keyPrefix = "uploads/"

// ErrForeignURL is returned by Remove for URLs this store did not hand out.
var ErrForeignURL = errors.New("url does not belong to the image bucket")

// Config captures the settings of the blob store.
type Config struct {
	// Endpoint is the S3 API base, e.g. https://<project>.supabase.co/storage/v1/s3.
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	// PublicURL is the base public objects are served from, e.g.
	// https://<project>.supabase.co/storage/v1/object/public.
	PublicURL string
}

type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Store implements ports.BlobStore.
type Store struct {
	client objectAPI
	bucket string
	base   string // <PublicURL>/<bucket>/
}

// New builds a path-style S3 client with static credentials.
func New(ctx context.Context, cfg Config) (*Store, error) {
	creds := credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(creds),
		config.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = true
	})

	return newStore(client, cfg.Bucket, cfg.PublicURL), nil
}

func newStore(client objectAPI, bucket, publicURL string) *Store {
	return &Store{
		client: client,
		bucket: bucket,
		base:   strings.TrimRight(publicURL, "/") + "/" + bucket + "/",
	}
}

// Upload writes body under uploads/<name> and returns its public URL.
func (s *Store) Upload(ctx context.Context, name string, body io.Reader, contentType string) (string, error) {
	key := keyPrefix + name
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("s3 put %s: %w", key, err)
	}
	return s.base + key, nil
}

// Remove deletes the object behind url.
func (s *Store) Remove(ctx context.Context, url string) error {
	key, err := s.keyFromURL(url)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s: %w", key, err)
	}
	return nil
}

func (s *Store) keyFromURL(url string) (string, error) {
	key, ok := strings.CutPrefix(url, s.base)
	if !ok || key == "" {
		return "", fmt.Errorf("%w: %s", ErrForeignURL, url)
	}
	return key, nil
}
