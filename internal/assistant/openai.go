package assistant

import (
	"context"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/samber/lo"

	"github.com/user/narrator/pkg/llm"
)

// OpenAIBackend implements Backend on the OpenAI assistants API.
type OpenAIBackend struct {
	client openai.Client
}

// NewOpenAIBackend creates a backend. Credentials come from the environment
// (OPENAI_API_KEY, OPENAI_BASE_URL) unless set in config.
func NewOpenAIBackend(config *llm.Config, opts ...option.RequestOption) *OpenAIBackend {
	var base []option.RequestOption
	if config.APIKey != "" {
		base = append(base, option.WithAPIKey(config.APIKey))
	}
	if config.BaseURL != "" {
		base = append(base, option.WithBaseURL(config.BaseURL))
	}
	return &OpenAIBackend{client: openai.NewClient(append(base, opts...)...)}
}

// RetrieveAssistant looks up an assistant by id.
func (b *OpenAIBackend) RetrieveAssistant(ctx context.Context, assistantID string) (*Assistant, error) {
	a, err := b.client.Beta.Assistants.Get(ctx, assistantID)
	if err != nil {
		return nil, err
	}
	return &Assistant{ID: a.ID, Name: a.Name, Model: a.Model}, nil
}

// CreateThread creates a thread seeded with msg, attaching each file id for
// file search.
func (b *OpenAIBackend) CreateThread(ctx context.Context, msg NewMessage) (*Thread, error) {
	attachments := lo.Map(msg.FileIDs, func(id string, _ int) openai.BetaThreadNewParamsMessageAttachment {
		fileSearch := openai.NewBetaThreadNewParamsMessageAttachmentToolFileSearch()
		return openai.BetaThreadNewParamsMessageAttachment{
			FileID: openai.String(id),
			Tools: []openai.BetaThreadNewParamsMessageAttachmentToolUnion{
				{OfFileSearch: &fileSearch},
			},
		}
	})

	t, err := b.client.Beta.Threads.New(ctx, openai.BetaThreadNewParams{
		Messages: []openai.BetaThreadNewParamsMessage{{
			Role:        msg.Role,
			Content:     openai.BetaThreadNewParamsMessageContentUnion{OfString: openai.String(msg.Content)},
			Attachments: attachments,
		}},
	})
	if err != nil {
		return nil, err
	}
	return &Thread{ID: t.ID}, nil
}

// CreateRun starts a run of the assistant on the thread.
func (b *OpenAIBackend) CreateRun(ctx context.Context, threadID string, params RunParams) (*Run, error) {
	body := openai.BetaThreadRunNewParams{AssistantID: params.AssistantID}
	if params.AdditionalInstructions != "" {
		body.AdditionalInstructions = openai.String(params.AdditionalInstructions)
	}
	r, err := b.client.Beta.Threads.Runs.New(ctx, threadID, body)
	if err != nil {
		return nil, err
	}
	return toRun(r), nil
}

// RetrieveRun reads the current state of a run.
func (b *OpenAIBackend) RetrieveRun(ctx context.Context, threadID, runID string) (*Run, error) {
	r, err := b.client.Beta.Threads.Runs.Get(ctx, threadID, runID)
	if err != nil {
		return nil, err
	}
	return toRun(r), nil
}

// ListMessages reads every message of the thread, following pagination, in
// the order the service returns them.
func (b *OpenAIBackend) ListMessages(ctx context.Context, threadID string) ([]Message, error) {
	var messages []Message
	iter := b.client.Beta.Threads.Messages.ListAutoPaging(ctx, threadID, openai.BetaThreadMessageListParams{
		Limit: openai.Int(100),
	})
	for iter.Next() {
		messages = append(messages, toMessage(iter.Current()))
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return messages, nil
}

func toMessage(m openai.Message) Message {
	return Message{
		ID:        m.ID,
		Role:      string(m.Role),
		CreatedAt: time.Unix(m.CreatedAt, 0),
		Text: lo.FilterMap(m.Content, func(c openai.MessageContentUnion, _ int) (string, bool) {
			return c.Text.Value, c.Type == "text"
		}),
	}
}

func toRun(r *openai.Run) *Run {
	return &Run{
		ID:          r.ID,
		ThreadID:    r.ThreadID,
		AssistantID: r.AssistantID,
		Status:      RunStatus(r.Status),
		LastError:   r.LastError.Message,
	}
}
