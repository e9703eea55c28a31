package inputs

import "fmt"

// InvalidRequestError is returned when a request is malformed: unparseable
// JSON, an unsupported origin or an empty set of refs.
type InvalidRequestError struct {
	msg string
}

func (e InvalidRequestError) Error() string {
	return e.msg
}

// NewInvalidRequestError creates and returns a new InvalidRequestError with
// a given formatted message.
func NewInvalidRequestError(msg string, args ...interface{}) InvalidRequestError {
	return InvalidRequestError{msg: fmt.Sprintf(msg, args...)}
}

// MissingComposeMetadataError is returned when a pipeline named by a
// request did not record which commit it produced.
type MissingComposeMetadataError struct {
	msg string
}

func (e MissingComposeMetadataError) Error() string {
	return e.msg
}

// NewMissingComposeMetadataError creates and returns a new
// MissingComposeMetadataError with a given formatted message.
func NewMissingComposeMetadataError(msg string, args ...interface{}) MissingComposeMetadataError {
	return MissingComposeMetadataError{msg: fmt.Sprintf(msg, args...)}
}

// StoreUnavailableError is returned when the build store cannot satisfy a
// scratch, tree or source cache request.
type StoreUnavailableError struct {
	msg string
}

func (e StoreUnavailableError) Error() string {
	return e.msg
}

// NewStoreUnavailableError creates and returns a new StoreUnavailableError
// with a given formatted message.
func NewStoreUnavailableError(msg string, args ...interface{}) StoreUnavailableError {
	return StoreUnavailableError{msg: fmt.Sprintf(msg, args...)}
}

// TransferFailureError is returned when initializing the destination
// repository, copying a commit into it or creating a ref fails.
type TransferFailureError struct {
	msg string
}

func (e TransferFailureError) Error() string {
	return e.msg
}

// NewTransferFailureError creates and returns a new TransferFailureError
// with a given formatted message.
func NewTransferFailureError(msg string, args ...interface{}) TransferFailureError {
	return TransferFailureError{msg: fmt.Sprintf(msg, args...)}
}
