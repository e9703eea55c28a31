package storeapi

import "fmt"

// NotFoundError is returned when the store has no entry for a requested
// pipeline tree or source cache.
type NotFoundError struct {
	msg string
}

func (e NotFoundError) Error() string {
	return e.msg
}

// NewNotFoundError creates and returns a new NotFoundError with a given
// formatted message.
func NewNotFoundError(msg string, args ...interface{}) NotFoundError {
	return NotFoundError{msg: fmt.Sprintf(msg, args...)}
}
