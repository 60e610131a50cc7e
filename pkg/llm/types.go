package llm

// Role identifies the speaker of a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ContentBlock is one segment of a turn. Only text blocks are produced here.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Turn is a single message in a transcript.
type Turn struct {
	Role    Role           `json:"role"`
	Content []ContentBlock `json:"content"`
}

// Text builds a text content block.
func Text(s string) ContentBlock {
	return ContentBlock{Type: "text", Text: s}
}

// UserTurn returns a user turn holding a single text block.
func UserTurn(text string) Turn {
	return Turn{Role: RoleUser, Content: []ContentBlock{Text(text)}}
}

// AssistantTurn returns an assistant turn holding a single text block.
func AssistantTurn(text string) Turn {
	return Turn{Role: RoleAssistant, Content: []ContentBlock{Text(text)}}
}

// Request is a single prompt exchange: a system instruction, the ordered
// transcript and the sampling parameters.
type Request struct {
	Model       string  `json:"model"`
	System      string  `json:"system,omitempty"`
	Transcript  []Turn  `json:"transcript"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

// Reply represents a complete response from an LLM provider.
type Reply struct {
	Content    []ContentBlock `json:"content"`
	StopReason string         `json:"stop_reason,omitempty"`
	Usage      Usage          `json:"usage"`
}

// Usage tracks token consumption for a request/response pair.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}
