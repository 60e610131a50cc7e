// Package narrator issues a single narrator request and prints the reply.
package narrator

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/user/narrator/pkg/llm"
)

// Invoker sends one prompt exchange to a provider.
type Invoker struct {
	provider llm.Provider
}

// New creates an Invoker backed by the given provider.
func New(provider llm.Provider) *Invoker {
	return &Invoker{provider: provider}
}

// Invoke forwards req unchanged and returns the first text block of the reply.
func (inv *Invoker) Invoke(ctx context.Context, req *llm.Request) (string, error) {
	slog.Debug("sending narrator request",
		"model", req.Model,
		"turns", len(req.Transcript),
		"max_tokens", req.MaxTokens,
		"temperature", req.Temperature,
	)

	reply, err := inv.provider.Complete(ctx, req)
	if err != nil {
		return "", fmt.Errorf("narrator request: %w", err)
	}

	slog.Debug("narrator reply received",
		"stop_reason", reply.StopReason,
		"input_tokens", reply.Usage.InputTokens,
		"output_tokens", reply.Usage.OutputTokens,
	)

	return llm.FirstText(reply)
}

// Run invokes the provider and writes the narration as one line to w.
func (inv *Invoker) Run(ctx context.Context, req *llm.Request, w io.Writer) error {
	text, err := inv.Invoke(ctx, req)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, text)
	return err
}
