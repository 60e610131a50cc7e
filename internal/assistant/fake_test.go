package assistant

import (
	"context"
	"time"
)

// fakeBackend scripts the statuses returned by successive run reads. The last
// status repeats once the script is exhausted.
type fakeBackend struct {
	assistantErr error
	createStatus RunStatus
	statuses     []RunStatus
	messages     []Message

	threadMsgs   []NewMessage
	runParams    []RunParams
	runReads     int
	messageReads int
}

func (f *fakeBackend) RetrieveAssistant(ctx context.Context, assistantID string) (*Assistant, error) {
	if f.assistantErr != nil {
		return nil, f.assistantErr
	}
	return &Assistant{ID: assistantID, Name: "Zork Lore"}, nil
}

func (f *fakeBackend) CreateThread(ctx context.Context, msg NewMessage) (*Thread, error) {
	f.threadMsgs = append(f.threadMsgs, msg)
	return &Thread{ID: "thread_1"}, nil
}

func (f *fakeBackend) CreateRun(ctx context.Context, threadID string, params RunParams) (*Run, error) {
	f.runParams = append(f.runParams, params)
	status := f.createStatus
	if status == "" {
		status = StatusQueued
	}
	return &Run{ID: "run_1", ThreadID: threadID, AssistantID: params.AssistantID, Status: status}, nil
}

func (f *fakeBackend) RetrieveRun(ctx context.Context, threadID, runID string) (*Run, error) {
	i := f.runReads
	if i >= len(f.statuses) {
		i = len(f.statuses) - 1
	}
	f.runReads++
	return &Run{ID: runID, ThreadID: threadID, Status: f.statuses[i]}, nil
}

func (f *fakeBackend) ListMessages(ctx context.Context, threadID string) ([]Message, error) {
	f.messageReads++
	return f.messages, nil
}

func noSleep(ctx context.Context, d time.Duration) error {
	return ctx.Err()
}
