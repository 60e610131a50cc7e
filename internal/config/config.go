package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Config struct {
	LogLevel string `json:"log_level"`
	LLM      struct {
		Provider      string  `json:"provider"`
		Region        string  `json:"region"`
		BaseURL       string  `json:"base_url"`
		APIKey        string  `json:"api_key"`
		Model         string  `json:"model"`
		MaxTokens     int     `json:"max_tokens"`
		Temperature   float64 `json:"temperature"`
		ContextWindow int     `json:"context_window"`
		OutputReserve int     `json:"output_reserve"`
	} `json:"llm"`
	Assistant struct {
		BaseURL                string `json:"base_url"`
		APIKey                 string `json:"api_key"`
		AssistantID            string `json:"assistant_id"`
		FileID                 string `json:"file_id"`
		Prompt                 string `json:"prompt"`
		AdditionalInstructions string `json:"additional_instructions"`
		PollIntervalMs         int    `json:"poll_interval_ms"`
		MaxPollIntervalMs      int    `json:"max_poll_interval_ms"`
		MaxPollAttempts        int    `json:"max_poll_attempts"`
	} `json:"assistant"`
	Resolver struct {
		BaseURL string `json:"base_url"`
		APIKey  string `json:"api_key"`
		Model   string `json:"model"`
	} `json:"resolver"`
}

// Default returns a Config populated with the built-in defaults.
func Default() *Config {
	cfg := &Config{LogLevel: "info"}
	cfg.LLM.Provider = "bedrock"
	cfg.LLM.Region = "us-east-1"
	cfg.LLM.Model = "anthropic.claude-3-haiku-20240307-v1:0"
	cfg.LLM.MaxTokens = 1000
	cfg.LLM.Temperature = 0.6
	cfg.LLM.OutputReserve = 1000
	cfg.Assistant.AssistantID = "asst_k7JSNbgQ1qy1j6kdJYO8ByM3"
	cfg.Assistant.FileID = "file-CpUTPO5rvcZK5enIElU6tZZd"
	cfg.Assistant.Prompt = "what is quendor"
	cfg.Assistant.PollIntervalMs = 200
	cfg.Assistant.MaxPollIntervalMs = 5000
	cfg.Resolver.Model = "gpt-4o-mini"
	return cfg
}

// DefaultPath returns ~/.narrator/config.json.
func DefaultPath() string {
	return filepath.Join(os.Getenv("HOME"), ".narrator", "config.json")
}

func Load(path string) (*Config, error) {
	cfg := Default()

	// Load from file if exists, otherwise write defaults
	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if os.IsNotExist(err) {
		if err := Save(path, cfg); err != nil {
			return nil, err
		}
	}

	// Override from env (highest precedence)
	if level := os.Getenv("NARRATOR_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}
	if region := os.Getenv("AWS_REGION"); region != "" {
		cfg.LLM.Region = region
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" && cfg.LLM.Provider == "anthropic" {
		cfg.LLM.APIKey = key
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		if cfg.LLM.Provider == "openai" {
			cfg.LLM.APIKey = key
		}
		cfg.Assistant.APIKey = key
		cfg.Resolver.APIKey = key
	}
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		cfg.Assistant.BaseURL = baseURL
		cfg.Resolver.BaseURL = baseURL
	}

	return cfg, nil
}

// Save writes cfg to path atomically, creating the directory if needed.
func Save(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return writeFile(path, data)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data = append(data, '\n')
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}

// ToMap converts cfg to a generic nested map using its JSON field names.
func ToMap(cfg *Config) (map[string]any, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// ListValues returns cfg as a flat dot-keyed map, optionally masking secrets.
func ListValues(cfg *Config, mask bool) (map[string]any, error) {
	m, err := ToMap(cfg)
	if err != nil {
		return nil, err
	}
	flat := Flatten(m)
	if mask {
		flat = MaskSecrets(flat)
	}
	return flat, nil
}

// GetValue reads a single dot-separated key from the config file at path,
// writing the defaults first if the file does not exist yet.
func GetValue(path, key string) (any, error) {
	if _, err := Load(path); err != nil {
		return nil, err
	}
	flat, err := readFlat(path)
	if err != nil {
		return nil, err
	}
	v, ok := flat[key]
	if !ok {
		return nil, fmt.Errorf("unknown config key: %s", key)
	}
	return v, nil
}

// SetValue sets a dot-separated key in the config file at path. The raw value
// is parsed as JSON when possible (numbers, booleans) and stored as a string
// otherwise. The file is left untouched when the result would not load.
func SetValue(path, key, raw string) error {
	flat, err := readFlat(path)
	if err != nil {
		return err
	}

	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		v = raw
	}
	flat[key] = v

	data, err := json.MarshalIndent(Unflatten(flat), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if _, err := decode(data); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return writeFile(path, data)
}

func readFlat(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return Flatten(m), nil
}

// Validate checks the settings the commands branch on. Sampling parameters
// are passed to the provider as is.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LLM.Provider) {
	case "bedrock", "anthropic", "openai":
	default:
		return fmt.Errorf("unsupported llm provider %q (want bedrock, anthropic or openai)", c.LLM.Provider)
	}
	if c.Assistant.MaxPollAttempts < 0 {
		return fmt.Errorf("assistant.max_poll_attempts must not be negative, got %d", c.Assistant.MaxPollAttempts)
	}
	return nil
}
