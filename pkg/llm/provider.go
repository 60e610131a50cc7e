package llm

import (
	"context"
	"errors"
)

// ErrEmptyReply is returned when a reply carries no content blocks.
var ErrEmptyReply = errors.New("reply has no content")

// Provider sends one request to an LLM backend and returns the full reply.
// Implementations own request formatting, authentication and response parsing.
type Provider interface {
	Complete(ctx context.Context, req *Request) (*Reply, error)
}

// Config holds common configuration for LLM providers.
type Config struct {
	BaseURL string
	APIKey  string
	Region  string
}

// FirstText returns the text of the first content block of the reply.
func FirstText(reply *Reply) (string, error) {
	if reply == nil || len(reply.Content) == 0 {
		return "", ErrEmptyReply
	}
	return reply.Content[0].Text, nil
}
