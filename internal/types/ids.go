// internal/types/ids.go
package types

import (
	"github.com/google/uuid"
)

// InvocationID tags every log line written by one CLI invocation.
type InvocationID string

func NewInvocationID() InvocationID {
	return InvocationID(uuid.New().String())
}

func (id InvocationID) String() string {
	return string(id)
}
