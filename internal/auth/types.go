package auth

import "time"

// Roles recognised by the service. Registration always produces RoleUser;
// admins are provisioned through seeds or directly in the store.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a registered account. The password is only ever stored as a bcrypt
// hash computed at registration.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the verified {id, username, role} triple derived from a session
// token. All server-side authorization decisions are made against it, never
// against client-decoded claims.
type Identity struct {
	ID       string
	Username string
	Role     string
}

// IsAdmin reports whether the identity carries the admin role.
func (id Identity) IsAdmin() bool {
	return id.Role == RoleAdmin
}
