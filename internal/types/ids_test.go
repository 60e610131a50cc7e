// internal/types/ids_test.go
package types

import (
	"testing"
)

func TestNewInvocationID(t *testing.T) {
	id := NewInvocationID()
	if id == "" {
		t.Error("expected non-empty InvocationID")
	}
	if len(id.String()) != 36 {
		t.Errorf("expected UUID format, got %s", id)
	}
}

func TestInvocationIDsAreUnique(t *testing.T) {
	if NewInvocationID() == NewInvocationID() {
		t.Error("expected distinct invocation ids")
	}
}
