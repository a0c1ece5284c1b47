// internal/service/errors.go
package service

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotAuthenticated   = errors.New("sign in required")
	ErrAlreadyExists      = errors.New("account already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("task not found")
	ErrPersistence        = errors.New("could not save board")
)

// errUnchanged tells Board.commit that a mutation left the state as it was
// and nothing needs to be saved.
var errUnchanged = errors.New("unchanged")
