package auth

import "context"

// UserStore persists registered accounts. Implementations return ErrNotFound
// for missing records and ErrAlreadyExists for duplicate emails.
type UserStore interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	// FindByIDs resolves a batch of user ids; absent ids are simply missing
	// from the returned map.
	FindByIDs(ctx context.Context, ids []string) (map[string]*User, error)
}
