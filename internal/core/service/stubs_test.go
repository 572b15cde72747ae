package service

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vendemas/pedidos-api/internal/core/domain"
	"github.com/vendemas/pedidos-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

var errGateway = errors.New("gateway unavailable")

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users     map[string]*domain.User
	createErr error
	updateErr error
	deleteErr error
	deleted   []string
}

func newStubUserRepo(seed ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range seed {
		r.users[u.ID] = cloneUser(u)
	}
	return r
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByIDAndRole(_ context.Context, id, role string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok || u.Rol != role {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, role string) ([]*domain.User, error) {
	out := []*domain.User{}
	for _, u := range r.users {
		if role == "" || u.Rol == role {
			out = append(out, cloneUser(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, p domain.UserPatch) (*domain.User, error) {
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if p.Email != nil {
		for _, other := range r.users {
			if other.ID != id && other.Email == *p.Email {
				return nil, domain.ErrEmailTaken
			}
		}
	}
	if p.Nombre != nil {
		u.Nombre = *p.Nombre
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.ImagenURL != nil {
		if *p.ImagenURL == "" {
			u.ImagenURL = nil
		} else {
			url := *p.ImagenURL
			u.ImagenURL = &url
		}
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.users, id)
	r.deleted = append(r.deleted, id)
	return nil
}

// ---------------------------------------------------------------------------
// Vendor-client links
// ---------------------------------------------------------------------------

type stubLinkRepo struct {
	users   *stubUserRepo
	links   map[string][]string // vendor -> clients
	linkErr error
}

func newStubLinkRepo(users *stubUserRepo) *stubLinkRepo {
	return &stubLinkRepo{users: users, links: make(map[string][]string)}
}

func (r *stubLinkRepo) Link(_ context.Context, vendorID, clientID string) error {
	if r.linkErr != nil {
		return r.linkErr
	}
	r.links[vendorID] = append(r.links[vendorID], clientID)
	return nil
}

func (r *stubLinkRepo) ClientIDsOfVendor(_ context.Context, vendorID string) ([]string, error) {
	return append([]string(nil), r.links[vendorID]...), nil
}

func (r *stubLinkRepo) ClientsOfVendor(_ context.Context, vendorID string) ([]domain.ClientSummary, error) {
	out := []domain.ClientSummary{}
	for _, id := range r.links[vendorID] {
		if u, ok := r.users.users[id]; ok {
			out = append(out, domain.ClientSummary{ID: u.ID, Nombre: u.Nombre, Email: u.Email, ImagenURL: u.ImagenURL})
		}
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Blobs
// ---------------------------------------------------------------------------

const blobBase = "https://cdn.test/imagenes/"

type stubBlobStore struct {
	blobs     map[string][]byte // url -> content
	uploadErr error
	removeErr error
	calls     []string // "upload:<url>" / "remove:<url>" in call order
}

func newStubBlobStore() *stubBlobStore {
	return &stubBlobStore{blobs: make(map[string][]byte)}
}

func (b *stubBlobStore) Upload(_ context.Context, name string, body io.Reader, _ string) (string, error) {
	if b.uploadErr != nil {
		return "", b.uploadErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	url := blobBase + "uploads/" + name
	b.blobs[url] = data
	b.calls = append(b.calls, "upload:"+url)
	return url, nil
}

func (b *stubBlobStore) Remove(_ context.Context, url string) error {
	b.calls = append(b.calls, "remove:"+url)
	if b.removeErr != nil {
		return b.removeErr
	}
	delete(b.blobs, url)
	return nil
}

// ---------------------------------------------------------------------------
// Orders
// ---------------------------------------------------------------------------

type stubOrderRepo struct {
	orders    map[string]*domain.Order
	users     *stubUserRepo
	createErr error
	updateErr error
}

func newStubOrderRepo(users *stubUserRepo) *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[string]*domain.Order), users: users}
}

func cloneOrder(o *domain.Order) *domain.Order {
	clone := *o
	clone.Datos = make(map[string]any, len(o.Datos))
	for k, v := range o.Datos {
		clone.Datos[k] = v
	}
	return &clone
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) (*domain.Order, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.orders[o.ID] = cloneOrder(o)
	return cloneOrder(o), nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return cloneOrder(o), nil
}

func (r *stubOrderRepo) List(_ context.Context, clientID string) ([]*domain.Order, error) {
	out := []*domain.Order{}
	for _, o := range r.orders {
		if clientID == "" || o.ClienteID == clientID {
			out = append(out, cloneOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubOrderRepo) ListWithClient(_ context.Context, clientIDs []string) ([]*domain.OrderWithClient, error) {
	want := make(map[string]bool, len(clientIDs))
	for _, id := range clientIDs {
		want[id] = true
	}
	out := []*domain.OrderWithClient{}
	for _, o := range r.orders {
		if !want[o.ClienteID] {
			continue
		}
		u := r.users.users[o.ClienteID]
		out = append(out, &domain.OrderWithClient{
			Order:   *cloneOrder(o),
			Cliente: domain.ClientRef{ID: u.ID, Nombre: u.Nombre, Email: u.Email},
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubOrderRepo) mutate(id string, fn func(o *domain.Order)) (*domain.Order, error) {
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	fn(o)
	return cloneOrder(o), nil
}

func (r *stubOrderRepo) MergeData(_ context.Context, id string, fields map[string]any) (*domain.Order, error) {
	return r.mutate(id, func(o *domain.Order) {
		for k, v := range fields {
			o.Datos[k] = v
		}
	})
}

func (r *stubOrderRepo) SetStatus(_ context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	return r.mutate(id, func(o *domain.Order) { o.Estado = status })
}

func (r *stubOrderRepo) SetCancelled(_ context.Context, id string, cancelled bool) (*domain.Order, error) {
	return r.mutate(id, func(o *domain.Order) { o.Cancelado = cancelled })
}

func (r *stubOrderRepo) Delete(_ context.Context, id string) (bool, error) {
	_, ok := r.orders[id]
	delete(r.orders, id)
	return ok, nil
}

// ---------------------------------------------------------------------------
// Audit trail and idempotency
// ---------------------------------------------------------------------------

type stubEventRepo struct {
	events    []*domain.OrderEvent
	insertErr error
}

func (r *stubEventRepo) Insert(_ context.Context, e *domain.OrderEvent) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.events = append(r.events, e)
	return nil
}

func (r *stubEventRepo) ListByOrder(_ context.Context, orderID string) ([]*domain.OrderEvent, error) {
	out := []*domain.OrderEvent{}
	for _, e := range r.events {
		if e.PedidoID == orderID {
			out = append(out, e)
		}
	}
	return out, nil
}

type stubIdempotency struct {
	keys       map[string]string // "<cliente>:<key>" -> order id, "" while pending
	reserveErr error
	released   []string
}

func newStubIdempotency() *stubIdempotency {
	return &stubIdempotency{keys: make(map[string]string)}
}

func (s *stubIdempotency) Reserve(_ context.Context, clientID, key string) (string, bool, error) {
	if s.reserveErr != nil {
		return "", false, s.reserveErr
	}
	k := clientID + ":" + key
	id, ok := s.keys[k]
	if !ok {
		s.keys[k] = ""
		return "", true, nil
	}
	return id, false, nil
}

func (s *stubIdempotency) Remember(_ context.Context, clientID, key, orderID string) error {
	s.keys[clientID+":"+key] = orderID
	return nil
}

func (s *stubIdempotency) Release(_ context.Context, clientID, key string) error {
	k := clientID + ":" + key
	delete(s.keys, k)
	s.released = append(s.released, k)
	return nil
}

func imageInput(name string) *ports.ImageInput {
	return &ports.ImageInput{Filename: name, ContentType: "image/png", Body: strings.NewReader("png-bytes")}
}
