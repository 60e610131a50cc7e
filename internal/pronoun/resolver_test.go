package pronoun

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/narrator/pkg/llm"
)

type fakeProvider struct {
	requests []*llm.Request
	reply    string
	err      error
}

func (f *fakeProvider) Complete(ctx context.Context, req *llm.Request) (*llm.Reply, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &llm.Reply{Content: []llm.ContentBlock{llm.Text(f.reply)}}, nil
}

func TestContainsPronoun(t *testing.T) {
	cases := map[string]bool{
		"open it":          true,
		"Take THEM":        true,
		"drop those":       true,
		"give her the egg": true,
		"go north":         false,
		"take item":        false,
		"open the kitchen": false,
		"withit":           false,
	}
	for input, want := range cases {
		assert.Equal(t, want, ContainsPronoun(input), input)
	}
}

func TestResolveRewritesCommand(t *testing.T) {
	provider := &fakeProvider{reply: "  \"open door\"\n"}
	r := New(provider, "")

	got, ok := r.Resolve(context.Background(), "open it", []string{"old news", "The door is locked."})
	assert.True(t, ok)
	assert.Equal(t, "open door", got)

	require.Len(t, provider.requests, 1)
	req := provider.requests[0]
	assert.Equal(t, DefaultModel, req.Model)
	assert.Equal(t, 0.0, req.Temperature)
	require.Len(t, req.Transcript, 1)
	prompt := req.Transcript[0].Content[0].Text
	assert.Contains(t, prompt, "The door is locked.")
	assert.NotContains(t, prompt, "old news")
	assert.True(t, strings.HasSuffix(prompt, "Player command: open it\n\nRewritten command:"))
}

func TestResolveSkipsWithoutPronoun(t *testing.T) {
	provider := &fakeProvider{reply: "unused"}
	got, ok := New(provider, "").Resolve(context.Background(), "go north", []string{"You are in a forest."})
	assert.False(t, ok)
	assert.Equal(t, "go north", got)
	assert.Empty(t, provider.requests)
}

func TestResolveSkipsWithoutContext(t *testing.T) {
	provider := &fakeProvider{reply: "unused"}
	got, ok := New(provider, "").Resolve(context.Background(), "open it", []string{"  "})
	assert.False(t, ok)
	assert.Equal(t, "open it", got)
	assert.Empty(t, provider.requests)
}

func TestResolveUnchangedResult(t *testing.T) {
	provider := &fakeProvider{reply: "Open It"}
	got, ok := New(provider, "gpt-4o-mini").Resolve(context.Background(), "open it", []string{"Nothing here."})
	assert.False(t, ok)
	assert.Equal(t, "open it", got)
}

func TestResolveFallsBackOnError(t *testing.T) {
	provider := &fakeProvider{err: errors.New("rate limited")}
	got, ok := New(provider, "").Resolve(context.Background(), "take them", []string{"You see a sword and shield here."})
	assert.False(t, ok)
	assert.Equal(t, "take them", got)
}
