package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"
)

// PollPolicy controls how often a run is re-read while it is pending.
type PollPolicy struct {
	// MaxAttempts bounds the number of reads; 0 polls until the run settles.
	MaxAttempts  int
	InitialDelay time.Duration
	Multiplier   float64
	MaxDelay     time.Duration
}

// DefaultPollPolicy returns a PollPolicy that never gives up:
// 200ms initial delay, 1.5x multiplier, 5s max delay.
func DefaultPollPolicy() *PollPolicy {
	return &PollPolicy{
		InitialDelay: 200 * time.Millisecond,
		Multiplier:   1.5,
		MaxDelay:     5 * time.Second,
	}
}

// NextDelay returns the wait after the given read (1-indexed).
// The delay is InitialDelay * Multiplier^(attempt-1), capped at MaxDelay.
func (p *PollPolicy) NextDelay(attempt int) time.Duration {
	delay := float64(p.InitialDelay) * math.Pow(p.Multiplier, float64(attempt-1))
	if delay > float64(p.MaxDelay) {
		return p.MaxDelay
	}
	return time.Duration(delay)
}

// Exhausted reports whether no read may follow the given attempt.
func (p *PollPolicy) Exhausted(attempt int) bool {
	return p.MaxAttempts > 0 && attempt >= p.MaxAttempts
}

// Poller re-reads a run until it settles.
type Poller struct {
	backend Backend
	policy  *PollPolicy
	sleep   func(ctx context.Context, d time.Duration) error
}

// NewPoller creates a Poller. A nil policy means DefaultPollPolicy.
func NewPoller(backend Backend, policy *PollPolicy) *Poller {
	if policy == nil {
		policy = DefaultPollPolicy()
	}
	return &Poller{backend: backend, policy: policy, sleep: sleepContext}
}

// Poll blocks until the run settles, the policy is exhausted or ctx is done.
// The last observed run is returned; it is only non-settled when the policy
// ran out of attempts.
func (p *Poller) Poll(ctx context.Context, threadID, runID string) (*Run, error) {
	for attempt := 1; ; attempt++ {
		run, err := p.backend.RetrieveRun(ctx, threadID, runID)
		if err != nil {
			return nil, fmt.Errorf("retrieving run %s: %w", runID, err)
		}
		slog.Debug("polled run", "run_id", runID, "status", run.Status, "attempt", attempt)

		if run.Status.Settled() {
			return run, nil
		}
		if p.policy.Exhausted(attempt) {
			slog.Warn("run still pending after max attempts", "run_id", runID, "status", run.Status, "attempts", attempt)
			return run, nil
		}
		if err := p.sleep(ctx, p.policy.NextDelay(attempt)); err != nil {
			return nil, err
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
