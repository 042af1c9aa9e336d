// Package errs contains sentinel errors shared across layers so handlers can
// map failures to HTTP status codes without inspecting error strings.
package errs

import "errors"

var (
	// ErrUnauthenticated indicates a missing, invalid or expired session.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden indicates an authenticated caller without admin rights.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput indicates malformed or rejected input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAlreadyExists indicates a unique constraint violation (username taken).
	ErrAlreadyExists = errors.New("already exists")

	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")
)
