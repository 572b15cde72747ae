package domain

import "time"

const (
	RoleVendor = "vendedor"
	RoleClient = "cliente"
	RoleAdmin  = "admin"
)

// ValidRole reports whether role is one of the known user roles.
func ValidRole(role string) bool {
	switch role {
	case RoleVendor, RoleClient, RoleAdmin:
		return true
	}
	return false
}

// User models an account stored in the usuarios table.
type User struct {
	ID        string    `json:"id"`
	Nombre    string    `json:"nombre"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Rol       string    `json:"rol"`
	ImagenURL *string   `json:"imagen_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasImage reports whether the user owns a profile image blob.
func (u *User) HasImage() bool {
	return u.ImagenURL != nil && *u.ImagenURL != ""
}

// ClientSummary is the public view of a client linked to a vendor.
type ClientSummary struct {
	ID        string  `json:"id"`
	Nombre    string  `json:"nombre"`
	Email     string  `json:"email"`
	ImagenURL *string `json:"imagen_url"`
}

// UserPatch lists the profile fields to change; nil means leave untouched.
type UserPatch struct {
	Nombre    *string
	Email     *string
	Password  *string
	ImagenURL *string
}
