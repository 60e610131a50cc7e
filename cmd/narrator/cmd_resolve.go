package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/narrator/internal/pronoun"
)

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().StringArray("response", nil, "recent game response, oldest first (repeatable)")
	resolveCmd.Flags().String("model", "", "resolver model (default from config)")
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <command...>",
	Short: "Replace pronouns in a player command with the noun they refer to",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		setupLogging(cfg)

		model := cfg.Resolver.Model
		if cmd.Flags().Changed("model") {
			model, _ = cmd.Flags().GetString("model")
		}
		responses, _ := cmd.Flags().GetStringArray("response")

		resolver := pronoun.New(newResolverProvider(cfg), model)
		resolved, _ := resolver.Resolve(cmd.Context(), strings.Join(args, " "), responses)
		fmt.Fprintln(cmd.OutOrStdout(), resolved)
		return nil
	},
}
