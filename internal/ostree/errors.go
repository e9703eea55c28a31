package ostree

import "fmt"

// CommandError is returned when an ostree invocation exits with a failure.
type CommandError struct {
	msg string
}

func (e CommandError) Error() string {
	return e.msg
}

// NewCommandError creates and returns a new CommandError with a given
// formatted message.
func NewCommandError(msg string, args ...interface{}) CommandError {
	return CommandError{msg: fmt.Sprintf(msg, args...)}
}
