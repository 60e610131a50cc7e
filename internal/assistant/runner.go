package assistant

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/lo"
)

// Params describes one assistant run.
type Params struct {
	AssistantID            string
	FileID                 string
	Prompt                 string
	AdditionalInstructions string
}

// Outcome is the settled run and, only when it completed, the thread messages.
type Outcome struct {
	Run      *Run
	Messages []Message
}

// Completed reports whether the run finished successfully.
func (o *Outcome) Completed() bool {
	return o.Run != nil && o.Run.Status == StatusCompleted
}

type Runner struct {
	backend Backend
	poller  *Poller
}

// NewRunner creates a Runner. A nil policy means DefaultPollPolicy.
func NewRunner(backend Backend, policy *PollPolicy) *Runner {
	return &Runner{backend: backend, poller: NewPoller(backend, policy)}
}

// Run resolves the assistant, seeds a thread, starts a run and waits for it.
// Messages are read once and only when the run completed.
func (r *Runner) Run(ctx context.Context, p Params) (*Outcome, error) {
	asst, err := r.backend.RetrieveAssistant(ctx, p.AssistantID)
	if err != nil {
		return nil, fmt.Errorf("retrieving assistant %s: %w", p.AssistantID, err)
	}

	thread, err := r.backend.CreateThread(ctx, NewMessage{
		Role:    "user",
		Content: p.Prompt,
		FileIDs: lo.Compact([]string{p.FileID}),
	})
	if err != nil {
		return nil, fmt.Errorf("creating thread: %w", err)
	}

	run, err := r.backend.CreateRun(ctx, thread.ID, RunParams{
		AssistantID:            asst.ID,
		AdditionalInstructions: p.AdditionalInstructions,
	})
	if err != nil {
		return nil, fmt.Errorf("creating run: %w", err)
	}
	slog.Info("run started", "assistant_id", asst.ID, "thread_id", thread.ID, "run_id", run.ID, "status", run.Status)

	if !run.Status.Settled() {
		run, err = r.poller.Poll(ctx, thread.ID, run.ID)
		if err != nil {
			return nil, err
		}
	}
	slog.Info("run settled", "run_id", run.ID, "status", run.Status, "last_error", run.LastError)

	out := &Outcome{Run: run}
	if !out.Completed() {
		return out, nil
	}

	out.Messages, err = r.backend.ListMessages(ctx, thread.ID)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	return out, nil
}
