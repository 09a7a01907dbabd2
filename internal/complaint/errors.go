package complaint

import "errors"

var (
	ErrNotFound     = errors.New("complaint not found")
	ErrInvalidInput = errors.New("complaint: invalid input")
)
