// Package assistant drives a hosted assistant run: it seeds a thread with one
// message, starts a run, polls it until it settles and reads the thread.
package assistant

import (
	"context"
	"time"
)

// RunStatus is the remote state of a run.
type RunStatus string

const (
	StatusQueued         RunStatus = "queued"
	StatusInProgress     RunStatus = "in_progress"
	StatusRequiresAction RunStatus = "requires_action"
	StatusCancelling     RunStatus = "cancelling"
	StatusCancelled      RunStatus = "cancelled"
	StatusFailed         RunStatus = "failed"
	StatusCompleted      RunStatus = "completed"
	StatusIncomplete     RunStatus = "incomplete"
	StatusExpired        RunStatus = "expired"
)

// Terminal reports whether no further transition can happen.
func (s RunStatus) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCancelled, StatusExpired, StatusIncomplete:
		return true
	}
	return false
}

// Settled reports whether polling should stop. A run waiting on tool outputs
// never progresses on its own, so requires_action settles it too.
func (s RunStatus) Settled() bool {
	return s.Terminal() || s == StatusRequiresAction
}

// Assistant is the resolved remote assistant.
type Assistant struct {
	ID    string
	Name  string
	Model string
}

// Thread is a remote conversation thread.
type Thread struct {
	ID string
}

// NewMessage seeds a thread. Each file id is attached for file search.
type NewMessage struct {
	Role    string
	Content string
	FileIDs []string
}

// RunParams configures a new run.
type RunParams struct {
	AssistantID            string
	AdditionalInstructions string
}

// Run is a snapshot of a remote run. LastError is empty unless the run failed.
type Run struct {
	ID          string
	ThreadID    string
	AssistantID string
	Status      RunStatus
	LastError   string
}

// Message is a thread message reduced to its text segments.
type Message struct {
	ID        string
	Role      string
	CreatedAt time.Time
	Text      []string
}

// Backend is the remote assistants API.
type Backend interface {
	RetrieveAssistant(ctx context.Context, assistantID string) (*Assistant, error)
	CreateThread(ctx context.Context, msg NewMessage) (*Thread, error)
	CreateRun(ctx context.Context, threadID string, params RunParams) (*Run, error)
	RetrieveRun(ctx context.Context, threadID, runID string) (*Run, error)
	ListMessages(ctx context.Context, threadID string) ([]Message, error)
}
