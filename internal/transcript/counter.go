package transcript

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"github.com/user/narrator/pkg/llm"
)

// perTurnOverhead approximates the role and framing tokens of each turn.
const perTurnOverhead = 4

// Counter estimates prompt size against a context budget. Counts are
// approximations: provider tokenizers differ from cl100k_base.
type Counter struct {
	tokenizer *tiktoken.Tiktoken
	window    int
	reserve   int
}

// NewCounter creates a counter for the model's context window. reserve is the
// number of tokens held back for the reply.
func NewCounter(model string, window, reserve int) (*Counter, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		// Non-OpenAI models fall back to cl100k_base
		enc, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return nil, fmt.Errorf("get tokenizer: %w", err)
		}
	}
	return &Counter{tokenizer: enc, window: window, reserve: reserve}, nil
}

func (c *Counter) countText(text string) int {
	return len(c.tokenizer.Encode(text, nil, nil))
}

// Count estimates the input tokens of a system prompt plus transcript.
func (c *Counter) Count(system string, turns []llm.Turn) int {
	total := c.countText(system)
	for _, turn := range turns {
		total += perTurnOverhead
		for _, block := range turn.Content {
			total += c.countText(block.Text)
		}
	}
	return total
}

// Budget is the number of input tokens available after the reply reserve.
func (c *Counter) Budget() int {
	return c.window - c.reserve
}

// Over reports whether the request is estimated to exceed the input budget.
// A non-positive window disables the check.
func (c *Counter) Over(req *llm.Request) (int, bool) {
	n := c.Count(req.System, req.Transcript)
	if c.window <= 0 {
		return n, false
	}
	return n, n > c.Budget()
}
