package config

import (
	"encoding/json"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Every credential in the file lives under a section's api_key.
const secretSuffix = "api_key"

// IsSecretKey reports whether the dot-separated key holds a credential.
func IsSecretKey(key string) bool {
	return key == secretSuffix || strings.HasSuffix(key, "."+secretSuffix)
}

// Flatten turns the nested config map into dot-separated keys, e.g.
// {"llm": {"model": "x"}} becomes {"llm.model": "x"}. Empty sections vanish.
func Flatten(m map[string]any) map[string]any {
	out := make(map[string]any)
	var walk func(prefix string, node map[string]any)
	walk = func(prefix string, node map[string]any) {
		for k, v := range node {
			key := joinKey(prefix, k)
			if section, ok := v.(map[string]any); ok {
				walk(key, section)
				continue
			}
			out[key] = v
		}
	}
	walk("", m)
	return out
}

// Unflatten rebuilds the nested map from dot-separated keys. A scalar in the
// way of a deeper key is replaced by a section.
func Unflatten(flat map[string]any) map[string]any {
	out := make(map[string]any)
	for key, v := range flat {
		setPath(out, strings.Split(key, "."), v)
	}
	return out
}

func setPath(node map[string]any, path []string, v any) {
	last := len(path) - 1
	for _, part := range path[:last] {
		section, ok := node[part].(map[string]any)
		if !ok {
			section = make(map[string]any)
			node[part] = section
		}
		node = section
	}
	node[path[last]] = v
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// MaskSecrets returns a copy of flat with every non-empty credential shown as
// "***" plus its last four characters.
func MaskSecrets(flat map[string]any) map[string]any {
	out := make(map[string]any, len(flat))
	for k, v := range flat {
		s, ok := v.(string)
		if !IsSecretKey(k) || !ok || s == "" {
			out[k] = v
			continue
		}
		out[k] = "***" + s[max(0, len(s)-4):]
	}
	return out
}

// SortedKeys returns the keys of flat in lexical order.
func SortedKeys(flat map[string]any) []string {
	keys := lo.Keys(flat)
	slices.Sort(keys)
	return keys
}

// decode parses config JSON into a Config, rejecting values whose type does
// not match the field they land on.
func decode(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
