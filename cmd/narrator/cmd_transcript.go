package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/narrator/internal/narrator"
	"github.com/user/narrator/internal/transcript"
	"github.com/user/narrator/pkg/llm"
)

func init() {
	rootCmd.AddCommand(transcriptCmd)
	transcriptCmd.AddCommand(transcriptShowCmd, transcriptExportCmd, transcriptCountCmd)

	transcriptShowCmd.Flags().String("file", "", "transcript file (default: built-in transcript)")
	transcriptCountCmd.Flags().String("file", "", "transcript file (default: built-in transcript)")
}

var transcriptCmd = &cobra.Command{
	Use:   "transcript",
	Short: "Inspect and export narrator transcripts",
}

var transcriptShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print a transcript as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		turns, err := transcriptFromFlag(cmd)
		if err != nil {
			return err
		}
		return transcript.Write(cmd.OutOrStdout(), turns)
	},
}

var transcriptExportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Write the built-in transcript to a file for editing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := transcript.Save(args[0], narrator.DefaultTranscript()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Transcript written to %s\n", args[0])
		return nil
	},
}

var transcriptCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Estimate the prompt tokens of the system prompt plus a transcript",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		setupLogging(cfg)

		turns, err := transcriptFromFlag(cmd)
		if err != nil {
			return err
		}
		counter, err := transcript.NewCounter(cfg.LLM.Model, cfg.LLM.ContextWindow, cfg.LLM.OutputReserve)
		if err != nil {
			return err
		}
		n := counter.Count(narrator.DefaultSystemPrompt, turns)
		if cfg.LLM.ContextWindow <= 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%d turns, ~%d tokens\n", len(turns), n)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d turns, ~%d tokens (budget %d)\n", len(turns), n, counter.Budget())
		return nil
	},
}

func transcriptFromFlag(cmd *cobra.Command) ([]llm.Turn, error) {
	path, _ := cmd.Flags().GetString("file")
	if path == "" {
		return narrator.DefaultTranscript(), nil
	}
	return transcript.Load(path)
}
