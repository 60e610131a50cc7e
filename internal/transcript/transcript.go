// Package transcript reads and writes transcripts and estimates their size.
package transcript

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/user/narrator/pkg/llm"
)

// Load reads a JSON array of turns. Turn order is kept as written.
func Load(path string) ([]llm.Turn, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	var turns []llm.Turn
	if err := json.Unmarshal(data, &turns); err != nil {
		return nil, fmt.Errorf("parse transcript %s: %w", path, err)
	}
	return turns, nil
}

// Save writes turns as indented JSON, atomically replacing path.
func Save(path string, turns []llm.Turn) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create transcript directory: %w", err)
	}
	data, err := json.MarshalIndent(turns, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal transcript: %w", err)
	}
	data = append(data, '\n')
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename transcript: %w", err)
	}
	return nil
}

// Write encodes turns as indented JSON to w.
func Write(w io.Writer, turns []llm.Turn) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(turns)
}
