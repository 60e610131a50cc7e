package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/user/narrator/internal/config"
	"github.com/user/narrator/pkg/llm"
	"github.com/user/narrator/pkg/llm/anthropic"
	"github.com/user/narrator/pkg/llm/openai"
)

// newProvider builds the narration provider selected by llm.provider.
func newProvider(ctx context.Context, cfg *config.Config) (llm.Provider, error) {
	llmCfg := &llm.Config{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Region:  cfg.LLM.Region,
	}
	switch strings.ToLower(cfg.LLM.Provider) {
	case "bedrock":
		client, err := anthropic.NewBedrock(ctx, llmCfg)
		if err != nil {
			return nil, err
		}
		return client, nil
	case "anthropic":
		return anthropic.New(llmCfg), nil
	case "openai":
		return openai.New(llmCfg), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.LLM.Provider)
	}
}

// newResolverProvider builds the chat completions client used for pronoun
// resolution.
func newResolverProvider(cfg *config.Config) llm.Provider {
	return openai.New(&llm.Config{
		BaseURL: cfg.Resolver.BaseURL,
		APIKey:  cfg.Resolver.APIKey,
	})
}
