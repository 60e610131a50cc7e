package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/samber/lo"

	"github.com/user/narrator/pkg/llm"
)

// Client implements the llm.Provider interface for OpenAI-compatible chat
// completion APIs.
type Client struct {
	client openai.Client
}

// New creates a new OpenAI-compatible client. Credentials come from the
// environment (OPENAI_API_KEY, OPENAI_BASE_URL) unless set in config.
func New(config *llm.Config, opts ...option.RequestOption) *Client {
	var base []option.RequestOption
	if config.APIKey != "" {
		base = append(base, option.WithAPIKey(config.APIKey))
	}
	if config.BaseURL != "" {
		base = append(base, option.WithBaseURL(config.BaseURL))
	}
	return &Client{client: openai.NewClient(append(base, opts...)...)}
}

// Complete sends a chat completion request and returns the first choice as a
// single text block.
func (c *Client) Complete(ctx context.Context, req *llm.Request) (*llm.Reply, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Transcript)+1)
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	for _, turn := range req.Transcript {
		messages = append(messages, toMessageParam(turn))
	}

	params := openai.ChatCompletionNewParams{
		Model:       req.Model,
		Messages:    messages,
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("creating chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	choice := completion.Choices[0]
	return &llm.Reply{
		Content:    []llm.ContentBlock{llm.Text(choice.Message.Content)},
		StopReason: choice.FinishReason,
		Usage: llm.Usage{
			InputTokens:  int(completion.Usage.PromptTokens),
			OutputTokens: int(completion.Usage.CompletionTokens),
			TotalTokens:  int(completion.Usage.TotalTokens),
		},
	}, nil
}

func toMessageParam(turn llm.Turn) openai.ChatCompletionMessageParamUnion {
	text := strings.Join(lo.Map(turn.Content, func(block llm.ContentBlock, _ int) string {
		return block.Text
	}), "\n")
	if turn.Role == llm.RoleAssistant {
		return openai.AssistantMessage(text)
	}
	return openai.UserMessage(text)
}
