package store

import "errors"

var (
	// ErrNotFound means an update targeted an id that resolves to nothing.
	ErrNotFound = errors.New("store: record not found")
	// ErrInvalidID means the given id is not a well-formed identifier.
	// Distinct from ErrNotFound, though callers may render both the same way.
	ErrInvalidID = errors.New("store: invalid id")
	// ErrDuplicateEmail means the email is already registered.
	ErrDuplicateEmail = errors.New("store: email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong password,
	// so callers can't be used for user enumeration.
	ErrInvalidCredentials = errors.New("store: invalid credentials")
)
