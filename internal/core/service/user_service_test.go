package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/vendemas/pedidos-api/internal/core/domain"
	"github.com/vendemas/pedidos-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var vendor = &domain.User{ID: "v-1", Nombre: "Vera", Email: "vera@example.com", Rol: domain.RoleVendor}

type userFixture struct {
	users *stubUserRepo
	links *stubLinkRepo
	blobs *stubBlobStore
	svc   *UserService
}

func newUserFixture(seed ...*domain.User) *userFixture {
	users := newStubUserRepo(seed...)
	links := newStubLinkRepo(users)
	blobs := newStubBlobStore()
	svc := NewUserService(users, links, blobs, discardLogger)
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return &userFixture{users: users, links: links, blobs: blobs, svc: svc}
}

func clientInput(vendorID string) ports.RegisterInput {
	return ports.RegisterInput{
		Nombre:     "Carla",
		Email:      "carla@example.com",
		Password:   "pass123",
		Rol:        domain.RoleClient,
		VendedorID: vendorID,
	}
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestUserService_Register_ClientLinkedToVendor(t *testing.T) {
	f := newUserFixture(vendor)

	user, err := f.svc.Register(context.Background(), clientInput("v-1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID == "" || user.Rol != domain.RoleClient {
		t.Fatalf("unexpected user: %+v", user)
	}
	if got := f.links.links["v-1"]; len(got) != 1 || got[0] != user.ID {
		t.Fatalf("expected client linked to vendor, got %v", got)
	}
	if user.Password == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestUserService_Register_WithImage(t *testing.T) {
	f := newUserFixture()

	in := ports.RegisterInput{Nombre: "Vic", Email: "vic@example.com", Password: "pw", Rol: domain.RoleVendor, Imagen: imageInput("my photo.png")}
	user, err := f.svc.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := blobBase + "uploads/1700000000000_my_photo.png"
	if user.ImagenURL == nil || *user.ImagenURL != want {
		t.Fatalf("expected image url %q, got %v", want, user.ImagenURL)
	}
	if _, ok := f.blobs.blobs[want]; !ok {
		t.Fatalf("expected blob stored")
	}
}

func TestUserService_Register_NonClientSkipsVendorCheck(t *testing.T) {
	for _, role := range []string{domain.RoleVendor, domain.RoleAdmin} {
		f := newUserFixture()
		f.links.linkErr = errors.New("must not be called")

		in := ports.RegisterInput{Nombre: "X", Email: role + "@example.com", Password: "pw", Rol: role, VendedorID: "nonexistent"}
		if _, err := f.svc.Register(context.Background(), in); err != nil {
			t.Fatalf("role %s: unexpected error: %v", role, err)
		}
		if len(f.links.links) != 0 {
			t.Fatalf("role %s: expected no relationship rows", role)
		}
	}
}

func TestUserService_Register_InvalidVendorRollsBack(t *testing.T) {
	f := newUserFixture(vendor)
	in := clientInput("nonexistent")
	in.Imagen = imageInput("face.png")

	_, err := f.svc.Register(context.Background(), in)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	users, _ := f.svc.List(context.Background(), "")
	if len(users) != 1 || users[0].ID != "v-1" {
		t.Fatalf("expected only the vendor to remain, got %d users", len(users))
	}
	if len(f.blobs.blobs) != 0 {
		t.Fatalf("expected uploaded image to be removed, got %v", f.blobs.blobs)
	}
}

func TestUserService_Register_VendorIDOfNonVendorRollsBack(t *testing.T) {
	other := &domain.User{ID: "c-9", Nombre: "Other", Email: "other@example.com", Rol: domain.RoleClient}
	f := newUserFixture(other)

	_, err := f.svc.Register(context.Background(), clientInput("c-9"))
	if err != domain.ErrInvalidVendor {
		t.Fatalf("expected ErrInvalidVendor, got %v", err)
	}
	if len(f.users.users) != 1 {
		t.Fatalf("expected new client to be deleted")
	}
}

func TestUserService_Register_RelationshipFailureRollsBack(t *testing.T) {
	f := newUserFixture(vendor)
	f.links.linkErr = errGateway
	in := clientInput("v-1")
	in.Imagen = imageInput("face.png")

	_, err := f.svc.Register(context.Background(), in)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if len(f.users.users) != 1 || len(f.blobs.blobs) != 0 {
		t.Fatalf("expected full rollback, users=%d blobs=%d", len(f.users.users), len(f.blobs.blobs))
	}

	// Compensations run in reverse order of creation: user row first, then blob.
	if len(f.users.deleted) != 1 {
		t.Fatalf("expected one compensating user delete, got %v", f.users.deleted)
	}
	last := f.blobs.calls[len(f.blobs.calls)-1]
	if !strings.HasPrefix(last, "remove:") {
		t.Fatalf("expected blob removal as last compensation, got %v", f.blobs.calls)
	}
}

func TestUserService_Register_InsertFailureRemovesImage(t *testing.T) {
	f := newUserFixture()
	f.users.createErr = errGateway
	in := ports.RegisterInput{Nombre: "V", Email: "v@example.com", Password: "pw", Rol: domain.RoleVendor, Imagen: imageInput("a.png")}

	_, err := f.svc.Register(context.Background(), in)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(f.blobs.blobs) != 0 {
		t.Fatalf("expected image removed after failed insert")
	}
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	f := newUserFixture(vendor)
	in := ports.RegisterInput{Nombre: "V2", Email: vendor.Email, Password: "pw", Rol: domain.RoleVendor}

	if _, err := f.svc.Register(context.Background(), in); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserService_Register_FailedCompensationKeepsOriginalError(t *testing.T) {
	f := newUserFixture(vendor)
	f.users.deleteErr = errGateway

	_, err := f.svc.Register(context.Background(), clientInput("nonexistent"))
	if err != domain.ErrInvalidVendor {
		t.Fatalf("expected original error, got %v", err)
	}
}

func TestUserService_Register_Validation(t *testing.T) {
	f := newUserFixture(vendor)

	cases := map[string]ports.RegisterInput{
		"unknown role":     {Nombre: "X", Email: "x@example.com", Password: "pw", Rol: "guest"},
		"client no vendor": clientInput(""),
		"missing email":    {Nombre: "X", Password: "pw", Rol: domain.RoleAdmin},
	}
	for name, in := range cases {
		if _, err := f.svc.Register(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("%s: expected validation error, got %v", name, err)
		}
	}
	if len(f.users.users) != 1 || len(f.blobs.calls) != 0 {
		t.Fatalf("validation failures must not touch storage")
	}
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

func TestUserService_List_FiltersByRole(t *testing.T) {
	f := newUserFixture(vendor, &domain.User{ID: "c-1", Email: "c1@example.com", Rol: domain.RoleClient})

	all, _ := f.svc.List(context.Background(), "")
	clients, _ := f.svc.List(context.Background(), domain.RoleClient)
	if len(all) != 2 || len(clients) != 1 || clients[0].ID != "c-1" {
		t.Fatalf("unexpected lists: all=%d clients=%d", len(all), len(clients))
	}
}

func TestUserService_ClientsOfVendor(t *testing.T) {
	f := newUserFixture(vendor)
	created, err := f.svc.Register(context.Background(), clientInput("v-1"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	clients, err := f.svc.ClientsOfVendor(context.Background(), "v-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(clients) != 1 || clients[0].ID != created.ID || clients[0].Email != "carla@example.com" {
		t.Fatalf("unexpected clients: %+v", clients)
	}
}

func TestUserService_ClientsOfVendor_NoClientsIsEmptyList(t *testing.T) {
	f := newUserFixture(vendor)

	clients, err := f.svc.ClientsOfVendor(context.Background(), "v-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if clients == nil || len(clients) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", clients)
	}
}

func TestUserService_ClientsOfVendor_NotAVendor(t *testing.T) {
	f := newUserFixture(&domain.User{ID: "c-1", Rol: domain.RoleClient})

	for _, id := range []string{"c-1", "missing"} {
		if _, err := f.svc.ClientsOfVendor(context.Background(), id); err != domain.ErrVendorNotFound {
			t.Fatalf("%s: expected ErrVendorNotFound, got %v", id, err)
		}
	}
}

// ---------------------------------------------------------------------------
// Update / Delete
// ---------------------------------------------------------------------------

func withImage(u *domain.User, url string) *domain.User {
	c := *u
	c.ImagenURL = &url
	return &c
}

func TestUserService_Update_OnlyPresentFields(t *testing.T) {
	f := newUserFixture(vendor)
	name := "Vera Cruz"
	empty := ""

	updated, err := f.svc.Update(context.Background(), "v-1", ports.UpdateUserInput{Nombre: &name, Email: &empty})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Nombre != name || updated.Email != vendor.Email {
		t.Fatalf("unexpected user: %+v", updated)
	}
}

func TestUserService_Update_ReplacesImageDeleteBeforeUpload(t *testing.T) {
	old := blobBase + "uploads/old.png"
	f := newUserFixture(withImage(vendor, old))
	f.blobs.blobs[old] = []byte("old")

	updated, err := f.svc.Update(context.Background(), "v-1", ports.UpdateUserInput{Imagen: imageInput("new.png")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.blobs.calls) != 2 || f.blobs.calls[0] != "remove:"+old || !strings.HasPrefix(f.blobs.calls[1], "upload:") {
		t.Fatalf("expected remove then upload, got %v", f.blobs.calls)
	}
	if updated.ImagenURL == nil || *updated.ImagenURL == old {
		t.Fatalf("expected new image url, got %v", updated.ImagenURL)
	}
}

func TestUserService_Update_OldImageRemovalFailureAborts(t *testing.T) {
	old := blobBase + "uploads/old.png"
	f := newUserFixture(withImage(vendor, old))
	f.blobs.removeErr = errGateway
	name := "Changed"

	_, err := f.svc.Update(context.Background(), "v-1", ports.UpdateUserInput{Nombre: &name, Imagen: imageInput("new.png")})
	if !errors.Is(err, domain.ErrInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
	for _, c := range f.blobs.calls {
		if strings.HasPrefix(c, "upload:") {
			t.Fatalf("new image must not be uploaded, calls=%v", f.blobs.calls)
		}
	}
	if f.users.users["v-1"].Nombre != vendor.Nombre {
		t.Fatalf("user must be left untouched")
	}
}

func TestUserService_Update_RowFailureRemovesNewImage(t *testing.T) {
	f := newUserFixture(vendor)
	f.users.updateErr = errGateway

	if _, err := f.svc.Update(context.Background(), "v-1", ports.UpdateUserInput{Imagen: imageInput("new.png")}); err == nil {
		t.Fatalf("expected error")
	}
	if len(f.blobs.blobs) != 0 {
		t.Fatalf("expected new blob removed, got %v", f.blobs.blobs)
	}
}

func TestUserService_Update_RowFailureClearsDeletedImageURL(t *testing.T) {
	old := blobBase + "uploads/old.png"
	f := newUserFixture(withImage(vendor, old), client)
	f.blobs.blobs[old] = []byte("old")
	taken := client.Email

	_, err := f.svc.Update(context.Background(), "v-1", ports.UpdateUserInput{Email: &taken, Imagen: imageInput("new.png")})
	if err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if len(f.blobs.blobs) != 0 {
		t.Fatalf("expected old and new blobs gone, got %v", f.blobs.blobs)
	}
	stored := f.users.users["v-1"]
	if stored.ImagenURL != nil {
		t.Fatalf("stored url must not point at a deleted blob, got %q", *stored.ImagenURL)
	}
	if stored.Email != vendor.Email {
		t.Fatalf("email must be left untouched, got %q", stored.Email)
	}
}

func TestUserService_Update_UploadFailureClearsDeletedImageURL(t *testing.T) {
	old := blobBase + "uploads/old.png"
	f := newUserFixture(withImage(vendor, old))
	f.blobs.blobs[old] = []byte("old")
	f.blobs.uploadErr = errGateway

	if _, err := f.svc.Update(context.Background(), "v-1", ports.UpdateUserInput{Imagen: imageInput("new.png")}); !errors.Is(err, domain.ErrInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
	if f.users.users["v-1"].ImagenURL != nil {
		t.Fatalf("expected stale url cleared")
	}
}

func TestUserService_Update_NotFound(t *testing.T) {
	f := newUserFixture()
	if _, err := f.svc.Update(context.Background(), "missing", ports.UpdateUserInput{}); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Delete_RemovesImage(t *testing.T) {
	url := blobBase + "uploads/x.png"
	f := newUserFixture(withImage(vendor, url))
	f.blobs.blobs[url] = []byte("x")

	if err := f.svc.Delete(context.Background(), "v-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.users.users) != 0 || len(f.blobs.blobs) != 0 {
		t.Fatalf("expected user and blob gone")
	}
}

func TestUserService_Delete_ImageFailureIsNotFatal(t *testing.T) {
	f := newUserFixture(withImage(vendor, blobBase+"uploads/x.png"))
	f.blobs.removeErr = errGateway

	if err := f.svc.Delete(context.Background(), "v-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.users.users) != 0 {
		t.Fatalf("expected user deleted")
	}
}

func TestUserService_Delete_NotFound(t *testing.T) {
	f := newUserFixture()
	if err := f.svc.Delete(context.Background(), "missing"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestCleanFilename(t *testing.T) {
	cases := map[string]string{
		"photo.png":          "photo.png",
		"my photo.png":       "my_photo.png",
		"../../etc/passwd":   "passwd",
		`C:\Users\a\pic.jpg`: "pic.jpg",
		"":                   "imagen",
	}
	for in, want := range cases {
		if got := cleanFilename(in); got != want {
			t.Errorf("cleanFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
