// Package pronoun rewrites player commands so that a pronoun is replaced by
// the noun it refers to in the latest game response.
package pronoun

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/user/narrator/pkg/llm"
)

const DefaultModel = "gpt-4o-mini"

var pronounPattern = regexp.MustCompile(`\b(it|them|that|this|those|these|him|her)\b`)

const systemPrompt = `You are a pronoun resolver for a text adventure game.

Your job: If the player's command contains a pronoun (it, them, that, this, those, these),
identify what noun from the recent game responses the pronoun refers to, and rewrite the
command replacing the pronoun with that specific noun.

If there are no pronouns or they don't clearly refer to anything in the responses,
return the original command UNCHANGED.

IMPORTANT: Return ONLY the rewritten command with no explanation, quotes, or extra text.

Examples:

Game responses: "The door is locked."
Player command: "open it"
Output: open door

Game responses: "You see a sword and shield here."
Player command: "take them"
Output: take sword and shield

Game responses: "The pod door is closed."
Player command: "open it"
Output: open door

Game responses: "There is nothing special about the lamp."
Player command: "drop it"
Output: drop lamp`

// Resolver asks a small model to resolve pronouns.
type Resolver struct {
	provider llm.Provider
	model    string
}

// New creates a Resolver. An empty model means DefaultModel.
func New(provider llm.Provider, model string) *Resolver {
	if model == "" {
		model = DefaultModel
	}
	return &Resolver{provider: provider, model: model}
}

// ContainsPronoun reports whether input has a pronoun as a whole word.
func ContainsPronoun(input string) bool {
	return pronounPattern.MatchString(strings.ToLower(input))
}

// Resolve returns the rewritten command and true, or the input unchanged and
// false when there is nothing to resolve, the model kept the command as is,
// or the request failed.
func (r *Resolver) Resolve(ctx context.Context, input string, recentResponses []string) (string, bool) {
	if !ContainsPronoun(input) {
		return input, false
	}

	// Only the latest response is given as context
	var latest string
	if n := len(recentResponses); n > 0 {
		latest = recentResponses[n-1]
	}
	if strings.TrimSpace(latest) == "" {
		return input, false
	}

	reply, err := r.provider.Complete(ctx, &llm.Request{
		Model:       r.model,
		System:      systemPrompt,
		Transcript:  []llm.Turn{llm.UserTurn(userMessage(input, latest))},
		MaxTokens:   100,
		Temperature: 0,
	})
	if err == nil {
		var text string
		text, err = llm.FirstText(reply)
		if err == nil {
			return clean(input, text)
		}
	}
	slog.Warn("pronoun resolution failed, using original input", "error", err)
	return input, false
}

func userMessage(input, latest string) string {
	return fmt.Sprintf("Recent game responses:\n%s\n\nPlayer command: %s\n\nRewritten command:", latest, input)
}

func clean(input, result string) (string, bool) {
	result = strings.Trim(strings.Trim(strings.TrimSpace(result), `"`), "'")
	if result == "" || strings.EqualFold(result, input) {
		return input, false
	}
	return result, true
}
