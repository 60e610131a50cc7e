package anthropic

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/bedrock"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/samber/lo"

	"github.com/user/narrator/pkg/llm"
)

// Client implements the llm.Provider interface for the Anthropic Messages API,
// either directly or through Amazon Bedrock.
type Client struct {
	client anthropic.Client
}

// New creates a client that talks to the Anthropic API. Credentials come from
// the environment unless config.APIKey is set.
func New(config *llm.Config, opts ...option.RequestOption) *Client {
	var base []option.RequestOption
	if config.APIKey != "" {
		base = append(base, option.WithAPIKey(config.APIKey))
	}
	if config.BaseURL != "" {
		base = append(base, option.WithBaseURL(config.BaseURL))
	}
	return &Client{client: anthropic.NewClient(append(base, opts...)...)}
}

// NewBedrock creates a client that routes the Messages API through Amazon
// Bedrock. AWS credentials are resolved by the default credential chain.
func NewBedrock(ctx context.Context, config *llm.Config, opts ...option.RequestOption) (*Client, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if config.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(config.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}
	return NewBedrockWithConfig(awsCfg, config, opts...), nil
}

// NewBedrockWithConfig is NewBedrock with an already resolved AWS config.
func NewBedrockWithConfig(awsCfg aws.Config, config *llm.Config, opts ...option.RequestOption) *Client {
	base := []option.RequestOption{bedrock.WithConfig(awsCfg)}
	if config.BaseURL != "" {
		base = append(base, option.WithBaseURL(config.BaseURL))
	}
	return &Client{client: anthropic.NewClient(append(base, opts...)...)}
}

// Complete sends one Messages API request and returns the full reply.
func (c *Client) Complete(ctx context.Context, req *llm.Request) (*llm.Reply, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(req.Model),
		MaxTokens:   int64(req.MaxTokens),
		Temperature: anthropic.Float(req.Temperature),
		Messages:    lo.Map(req.Transcript, toMessageParam),
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("creating message: %w", err)
	}

	return &llm.Reply{
		Content: lo.Map(msg.Content, func(block anthropic.ContentBlockUnion, _ int) llm.ContentBlock {
			return llm.ContentBlock{Type: block.Type, Text: block.Text}
		}),
		StopReason: string(msg.StopReason),
		Usage: llm.Usage{
			InputTokens:  int(msg.Usage.InputTokens),
			OutputTokens: int(msg.Usage.OutputTokens),
			TotalTokens:  int(msg.Usage.InputTokens + msg.Usage.OutputTokens),
		},
	}, nil
}

func toMessageParam(turn llm.Turn, _ int) anthropic.MessageParam {
	return anthropic.MessageParam{
		Role: anthropic.MessageParamRole(turn.Role),
		Content: lo.Map(turn.Content, func(block llm.ContentBlock, _ int) anthropic.ContentBlockParamUnion {
			return anthropic.NewTextBlock(block.Text)
		}),
	}
}
