package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/user/narrator/internal/assistant"
	"github.com/user/narrator/internal/config"
	"github.com/user/narrator/pkg/llm"
)

func init() {
	rootCmd.AddCommand(assistCmd)

	assistCmd.Flags().String("assistant-id", "", "assistant id (default from config)")
	assistCmd.Flags().String("file-id", "", "file id attached for file search (default from config)")
	assistCmd.Flags().String("prompt", "", "user message seeded into the thread (default from config)")
	assistCmd.Flags().String("instructions", "", "additional run instructions")
	assistCmd.Flags().Int("max-attempts", 0, "max run status reads, 0 polls until the run settles")
	assistCmd.Flags().Duration("timeout", 0, "overall deadline, 0 for none")
}

var assistCmd = &cobra.Command{
	Use:   "assist",
	Short: "Run the file-backed assistant and print the thread",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		applyAssistFlags(cmd, cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}
		setupLogging(cfg)

		timeout, _ := cmd.Flags().GetDuration("timeout")
		ctx, cancel := withTimeout(cmd.Context(), timeout)
		defer cancel()

		backend := assistant.NewOpenAIBackend(&llm.Config{
			BaseURL: cfg.Assistant.BaseURL,
			APIKey:  cfg.Assistant.APIKey,
		})
		runner := assistant.NewRunner(backend, pollPolicy(cfg))

		out, err := runner.Run(ctx, assistParams(cfg))
		if err != nil {
			return fmt.Errorf("assistant run: %w", err)
		}
		return assistant.Print(cmd.OutOrStdout(), out)
	},
}

func applyAssistFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("assistant-id") {
		cfg.Assistant.AssistantID, _ = flags.GetString("assistant-id")
	}
	if flags.Changed("file-id") {
		cfg.Assistant.FileID, _ = flags.GetString("file-id")
	}
	if flags.Changed("prompt") {
		cfg.Assistant.Prompt, _ = flags.GetString("prompt")
	}
	if flags.Changed("instructions") {
		cfg.Assistant.AdditionalInstructions, _ = flags.GetString("instructions")
	}
	if flags.Changed("max-attempts") {
		cfg.Assistant.MaxPollAttempts, _ = flags.GetInt("max-attempts")
	}
}

func assistParams(cfg *config.Config) assistant.Params {
	instructions := cfg.Assistant.AdditionalInstructions
	if instructions == "" && cfg.Assistant.FileID != "" {
		instructions = fmt.Sprintf("Use files with id: %s to answer any questions", cfg.Assistant.FileID)
	}
	return assistant.Params{
		AssistantID:            cfg.Assistant.AssistantID,
		FileID:                 cfg.Assistant.FileID,
		Prompt:                 cfg.Assistant.Prompt,
		AdditionalInstructions: instructions,
	}
}

func pollPolicy(cfg *config.Config) *assistant.PollPolicy {
	policy := assistant.DefaultPollPolicy()
	policy.MaxAttempts = cfg.Assistant.MaxPollAttempts
	if cfg.Assistant.PollIntervalMs > 0 {
		policy.InitialDelay = time.Duration(cfg.Assistant.PollIntervalMs) * time.Millisecond
	}
	if cfg.Assistant.MaxPollIntervalMs > 0 {
		policy.MaxDelay = time.Duration(cfg.Assistant.MaxPollIntervalMs) * time.Millisecond
	}
	if policy.MaxDelay < policy.InitialDelay {
		policy.MaxDelay = policy.InitialDelay
	}
	return policy
}
