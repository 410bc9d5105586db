package main

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("not authorized")
	ErrBadRequest = errors.New("bad request")
)

// notFound yields e.g. "event not found".
func notFound(resource string) error {
	return fmt.Errorf("%s %w", resource, ErrNotFound)
}

// forbidden yields e.g. "not authorized to delete this task".
func forbidden(what string) error {
	return fmt.Errorf("%w to %s", ErrForbidden, what)
}

func badRequest(msg string) error {
	return fmt.Errorf("%w: %s", ErrBadRequest, msg)
}
