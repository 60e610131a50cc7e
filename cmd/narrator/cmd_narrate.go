package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/user/narrator/internal/config"
	"github.com/user/narrator/internal/narrator"
	"github.com/user/narrator/internal/transcript"
	"github.com/user/narrator/pkg/llm"
)

func init() {
	rootCmd.AddCommand(narrateCmd)

	narrateCmd.Flags().String("provider", "", "llm provider: bedrock, anthropic or openai (default from config)")
	narrateCmd.Flags().String("model", "", "model id (default from config)")
	narrateCmd.Flags().Int("max-tokens", 0, "max output tokens (default from config)")
	narrateCmd.Flags().Float64("temperature", 0, "sampling temperature (default from config)")
	narrateCmd.Flags().String("transcript", "", "JSON transcript file replacing the built-in one")
	narrateCmd.Flags().Duration("timeout", 0, "overall deadline, 0 for none")
}

var narrateCmd = &cobra.Command{
	Use:   "narrate",
	Short: "Send the narrator transcript and print the reply",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		applyNarrateFlags(cmd, cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}
		setupLogging(cfg)

		timeout, _ := cmd.Flags().GetDuration("timeout")
		ctx, cancel := withTimeout(cmd.Context(), timeout)
		defer cancel()

		req := narrator.DefaultRequest(cfg.LLM.Model)
		req.MaxTokens = cfg.LLM.MaxTokens
		req.Temperature = cfg.LLM.Temperature
		if path, _ := cmd.Flags().GetString("transcript"); path != "" {
			turns, err := transcript.Load(path)
			if err != nil {
				return err
			}
			req.Transcript = turns
		}
		checkBudget(cfg, req)

		provider, err := newProvider(ctx, cfg)
		if err != nil {
			return fmt.Errorf("create provider: %w", err)
		}
		return narrator.New(provider).Run(ctx, req, cmd.OutOrStdout())
	},
}

func applyNarrateFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("provider") {
		cfg.LLM.Provider, _ = flags.GetString("provider")
	}
	if flags.Changed("model") {
		cfg.LLM.Model, _ = flags.GetString("model")
	}
	if flags.Changed("max-tokens") {
		cfg.LLM.MaxTokens, _ = flags.GetInt("max-tokens")
	}
	if flags.Changed("temperature") {
		cfg.LLM.Temperature, _ = flags.GetFloat64("temperature")
	}
}

// checkBudget logs a warning when the prompt estimate exceeds the context
// window. It is off while llm.context_window is 0 (the default); enabling it
// makes tiktoken fetch its encoding on first use. The transcript is sent as
// is either way.
func checkBudget(cfg *config.Config, req *llm.Request) {
	if cfg.LLM.ContextWindow <= 0 {
		return
	}
	start := time.Now()
	counter, err := transcript.NewCounter(req.Model, cfg.LLM.ContextWindow, cfg.LLM.OutputReserve)
	if err != nil {
		slog.Debug("token estimate unavailable", "error", err)
		return
	}
	n, over := counter.Over(req)
	slog.Debug("prompt token estimate", "tokens", n, "budget", counter.Budget(), "elapsed", time.Since(start))
	if over {
		slog.Warn("prompt may exceed the context window", "tokens", n, "budget", counter.Budget())
	}
}
