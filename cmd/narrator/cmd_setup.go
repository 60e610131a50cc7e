package main

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/narrator/internal/config"
)

func init() {
	rootCmd.AddCommand(setupCmd)
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup wizard",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		scanner := bufio.NewScanner(cmd.InOrStdin())

		fmt.Println("Narrator Setup Wizard")
		fmt.Println("Press Enter to accept the default value shown in brackets.")
		fmt.Println()

		// Narration
		cfg.LLM.Provider = prompt(scanner, "LLM provider (bedrock, anthropic, openai)", cfg.LLM.Provider)
		if cfg.LLM.Provider == "bedrock" {
			cfg.LLM.Region = prompt(scanner, "AWS region", cfg.LLM.Region)
		} else {
			cfg.LLM.APIKey = prompt(scanner, "LLM API key", cfg.LLM.APIKey)
		}
		cfg.LLM.Model = prompt(scanner, "LLM model id", cfg.LLM.Model)

		maxTokensStr := prompt(scanner, "Max output tokens", strconv.Itoa(cfg.LLM.MaxTokens))
		if n, err := strconv.Atoi(maxTokensStr); err == nil {
			cfg.LLM.MaxTokens = n
		}
		tempStr := prompt(scanner, "Temperature", strconv.FormatFloat(cfg.LLM.Temperature, 'g', -1, 64))
		if f, err := strconv.ParseFloat(tempStr, 64); err == nil {
			cfg.LLM.Temperature = f
		}

		// Assistant
		cfg.Assistant.APIKey = prompt(scanner, "OpenAI API key", cfg.Assistant.APIKey)
		cfg.Assistant.AssistantID = prompt(scanner, "Assistant id", cfg.Assistant.AssistantID)
		cfg.Assistant.FileID = prompt(scanner, "File id (optional)", cfg.Assistant.FileID)

		// Resolver shares the OpenAI key unless set separately
		if cfg.Resolver.APIKey == "" {
			cfg.Resolver.APIKey = cfg.Assistant.APIKey
		}

		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := config.Save(cfgPath, cfg); err != nil {
			return fmt.Errorf("save config: %w", err)
		}

		fmt.Println()
		fmt.Println("Configuration saved to", cfgPath)
		return nil
	},
}

// prompt displays a labeled prompt with a default value and reads user input.
// If the user enters nothing, the default is returned.
func prompt(scanner *bufio.Scanner, label, defaultVal string) string {
	if defaultVal != "" {
		fmt.Printf("%s [%s]: ", label, defaultVal)
	} else {
		fmt.Printf("%s: ", label)
	}
	if scanner.Scan() {
		input := strings.TrimSpace(scanner.Text())
		if input != "" {
			return input
		}
	}
	return strings.TrimSpace(defaultVal)
}
