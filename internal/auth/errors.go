package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidInput       = errors.New("username and password are required")
	ErrUnauthorized       = errors.New("not authorized")
	ErrNoSession          = errors.New("no session")
)
