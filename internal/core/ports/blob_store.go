package ports

import (
	"context"
	"io"
)

// BlobStore stores profile images and hands back their public URL.
type BlobStore interface {
	Upload(ctx context.Context, name string, body io.Reader, contentType string) (url string, err error)
	// Remove deletes the blob addressed by a URL previously returned by Upload.
	Remove(ctx context.Context, url string) error
}
