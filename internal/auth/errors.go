package auth

import "errors"

var (
	ErrNotFound      = errors.New("auth: not found")
	ErrAlreadyExists = errors.New("auth: already exists")
	ErrInvalidInput  = errors.New("auth: invalid input")

	// ErrInvalidCredentials covers both unknown email and wrong password so
	// responses never reveal which one failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken indicates the token is missing, malformed, has a bad
	// signature, or is expired.
	ErrInvalidToken = errors.New("invalid token")

	// ErrForbidden indicates an authenticated caller without the required role.
	ErrForbidden = errors.New("admin access required")
)
