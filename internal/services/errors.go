package services

import "errors"

// ErrNotFound covers both absent resources and resources owned by another
// user; the two cases are deliberately indistinguishable to callers.
var ErrNotFound = errors.New("not found")

// ValidationError carries the first failing field's message, produced before
// any mutation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationErr(msg string) error { return &ValidationError{Message: msg} }
