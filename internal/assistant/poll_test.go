package assistant

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPollPolicy(t *testing.T) {
	policy := &PollPolicy{
		InitialDelay: 1 * time.Second,
		Multiplier:   2.0,
		MaxDelay:     30 * time.Second,
	}

	delay := policy.NextDelay(1)
	if delay != 1*time.Second {
		t.Errorf("expected 1s delay, got %v", delay)
	}

	delay = policy.NextDelay(2)
	if delay != 2*time.Second {
		t.Errorf("expected 2s delay, got %v", delay)
	}

	delay = policy.NextDelay(3)
	if delay != 4*time.Second {
		t.Errorf("expected 4s delay, got %v", delay)
	}
}

func TestPollPolicyMaxDelayCap(t *testing.T) {
	policy := &PollPolicy{
		InitialDelay: 1 * time.Second,
		Multiplier:   10.0,
		MaxDelay:     30 * time.Second,
	}

	delay := policy.NextDelay(5)
	if delay != policy.MaxDelay {
		t.Errorf("expected delay capped at %v, got %v", policy.MaxDelay, delay)
	}
}

func TestDefaultPollPolicyUnbounded(t *testing.T) {
	policy := DefaultPollPolicy()
	if policy.Exhausted(1_000_000) {
		t.Error("default policy should never be exhausted")
	}
	if policy.NextDelay(1) != 200*time.Millisecond {
		t.Errorf("expected 200ms first delay, got %v", policy.NextDelay(1))
	}
}

func TestPollPolicyExhausted(t *testing.T) {
	policy := &PollPolicy{MaxAttempts: 3}
	if policy.Exhausted(2) {
		t.Error("should not be exhausted before max attempts")
	}
	if !policy.Exhausted(3) {
		t.Error("should be exhausted at max attempts")
	}
}

func TestPollUntilSettled(t *testing.T) {
	backend := &fakeBackend{statuses: []RunStatus{StatusQueued, StatusInProgress, StatusInProgress, StatusCompleted}}
	poller := NewPoller(backend, nil)
	poller.sleep = noSleep

	run, err := poller.Poll(context.Background(), "thread_1", "run_1")
	if err != nil {
		t.Fatal(err)
	}
	if run.Status != StatusCompleted {
		t.Errorf("expected completed, got %s", run.Status)
	}
	if backend.runReads != 4 {
		t.Errorf("expected 4 reads, got %d", backend.runReads)
	}
}

func TestPollStopsOnRequiresAction(t *testing.T) {
	backend := &fakeBackend{statuses: []RunStatus{StatusInProgress, StatusRequiresAction, StatusCompleted}}
	poller := NewPoller(backend, nil)
	poller.sleep = noSleep

	run, err := poller.Poll(context.Background(), "thread_1", "run_1")
	if err != nil {
		t.Fatal(err)
	}
	if run.Status != StatusRequiresAction {
		t.Errorf("expected requires_action, got %s", run.Status)
	}
}

func TestPollMaxAttempts(t *testing.T) {
	backend := &fakeBackend{statuses: []RunStatus{StatusQueued}}
	poller := NewPoller(backend, &PollPolicy{MaxAttempts: 2, InitialDelay: time.Millisecond, Multiplier: 1, MaxDelay: time.Millisecond})

	run, err := poller.Poll(context.Background(), "thread_1", "run_1")
	if err != nil {
		t.Fatal(err)
	}
	if run.Status != StatusQueued {
		t.Errorf("expected queued, got %s", run.Status)
	}
	if backend.runReads != 2 {
		t.Errorf("expected 2 reads, got %d", backend.runReads)
	}
}

func TestPollContextCancelled(t *testing.T) {
	backend := &fakeBackend{statuses: []RunStatus{StatusInProgress}}
	poller := NewPoller(backend, &PollPolicy{InitialDelay: time.Hour, Multiplier: 1, MaxDelay: time.Hour})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := poller.Poll(ctx, "thread_1", "run_1")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestRunStatusTerminal(t *testing.T) {
	terminal := []RunStatus{StatusCompleted, StatusFailed, StatusCancelled, StatusExpired, StatusIncomplete}
	for _, s := range terminal {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	pending := []RunStatus{StatusQueued, StatusInProgress, StatusRequiresAction, StatusCancelling}
	for _, s := range pending {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}
