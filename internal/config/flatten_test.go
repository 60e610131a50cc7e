package config

import (
	"os"
	"reflect"
	"testing"
)

func TestFlatten_DefaultConfig(t *testing.T) {
	m, err := ToMap(Default())
	if err != nil {
		t.Fatalf("ToMap failed: %v", err)
	}
	flat := Flatten(m)

	want := map[string]any{
		"log_level":              "info",
		"llm.provider":           "bedrock",
		"llm.model":              "anthropic.claude-3-haiku-20240307-v1:0",
		"llm.max_tokens":         float64(1000),
		"llm.temperature":        0.6,
		"assistant.assistant_id": "asst_k7JSNbgQ1qy1j6kdJYO8ByM3",
		"assistant.prompt":       "what is quendor",
		"resolver.model":         "gpt-4o-mini",
	}
	for k, v := range want {
		if flat[k] != v {
			t.Errorf("expected %s=%v, got %v", k, v, flat[k])
		}
	}
	for k, v := range flat {
		if _, nested := v.(map[string]any); nested {
			t.Errorf("key %s still holds a section", k)
		}
	}
}

func TestFlattenUnflatten_RoundTripsConfig(t *testing.T) {
	cfg := Default()
	cfg.LLM.Provider = "openai"
	cfg.LLM.APIKey = "sk-llm-1234"
	cfg.Assistant.MaxPollAttempts = 12
	cfg.Resolver.BaseURL = "http://localhost:8080/v1"

	m, err := ToMap(cfg)
	if err != nil {
		t.Fatalf("ToMap failed: %v", err)
	}
	restored := Unflatten(Flatten(m))
	if !reflect.DeepEqual(restored, m) {
		t.Fatalf("round trip changed the config map:\n got %v\nwant %v", restored, m)
	}

	path := tempConfigPath(t)
	writeTestConfig(t, path, cfg)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := decode(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !reflect.DeepEqual(decoded, cfg) {
		t.Errorf("decoded config differs: %+v", decoded)
	}
}

func TestUnflatten_ScalarReplacedBySection(t *testing.T) {
	got := Unflatten(map[string]any{"llm": "oops", "llm.model": "gpt-4o"})
	// Map order decides which key wins; either way the result must be a map
	// or the scalar, never a panic.
	switch v := got["llm"].(type) {
	case map[string]any:
		if v["model"] != "gpt-4o" {
			t.Errorf("expected llm.model=gpt-4o, got %v", v["model"])
		}
	case string:
	default:
		t.Errorf("unexpected llm value %T", v)
	}
}

func TestIsSecretKey(t *testing.T) {
	for _, key := range []string{"llm.api_key", "assistant.api_key", "resolver.api_key"} {
		if !IsSecretKey(key) {
			t.Errorf("expected %s to be secret", key)
		}
	}
	for _, key := range []string{"llm.model", "assistant.file_id", "api_key_hint", "llm.api_key_id"} {
		if IsSecretKey(key) {
			t.Errorf("expected %s not to be secret", key)
		}
	}
}

func TestMaskSecrets_ConfigKeys(t *testing.T) {
	cfg := Default()
	cfg.LLM.APIKey = "sk-ant-abcd1234"
	cfg.Assistant.APIKey = "sk-proj-wxyz"
	cfg.Resolver.APIKey = "ab"

	flat, err := ListValues(cfg, true)
	if err != nil {
		t.Fatalf("ListValues failed: %v", err)
	}
	if flat["llm.api_key"] != "***1234" {
		t.Errorf("expected llm.api_key=***1234, got %v", flat["llm.api_key"])
	}
	if flat["assistant.api_key"] != "***wxyz" {
		t.Errorf("expected assistant.api_key=***wxyz, got %v", flat["assistant.api_key"])
	}
	if flat["resolver.api_key"] != "***ab" {
		t.Errorf("expected short key masked as ***ab, got %v", flat["resolver.api_key"])
	}
	if flat["assistant.file_id"] != cfg.Assistant.FileID {
		t.Errorf("expected file id unmasked, got %v", flat["assistant.file_id"])
	}
}

func TestMaskSecrets_EmptySecretStaysEmpty(t *testing.T) {
	flat, err := ListValues(Default(), true)
	if err != nil {
		t.Fatalf("ListValues failed: %v", err)
	}
	if flat["llm.api_key"] != "" {
		t.Errorf("expected empty llm.api_key, got %v", flat["llm.api_key"])
	}
}

func TestSortedKeys(t *testing.T) {
	flat, err := ListValues(Default(), false)
	if err != nil {
		t.Fatalf("ListValues failed: %v", err)
	}
	keys := SortedKeys(flat)
	if len(keys) != len(flat) {
		t.Fatalf("expected %d keys, got %d", len(flat), len(keys))
	}
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			t.Errorf("keys out of order: %s before %s", keys[i-1], keys[i])
		}
	}
}

func TestDecode_RejectsMistypedField(t *testing.T) {
	if _, err := decode([]byte(`{"llm":{"max_tokens":"lots"}}`)); err == nil {
		t.Error("expected error for string max_tokens")
	}
	if _, err := decode([]byte(`{"llm":{"max_tokens":500},"custom":{"setting":"x"}}`)); err != nil {
		t.Errorf("unknown sections should be accepted, got %v", err)
	}
}
