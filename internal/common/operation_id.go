package common

import (
	"github.com/segmentio/ksuid"
)

// GenerateOperationID returns a time-sortable globally unique identifier.
// One is attached to the log lines of every store API request.
func GenerateOperationID() string {
	return ksuid.New().String()
}
