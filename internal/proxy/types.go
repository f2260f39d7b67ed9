package proxy

// Settings configures one upstream chat-completion provider.
type Settings struct {
	Provider string `json:"provider"` // "openai", "deepseek", or "gemini"
	APIKey   string `json:"apiKey"`
	Model    string `json:"model"`
}

// Turn is one prior conversation entry relayed to the provider.
type Turn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Usage is the provider's token accounting, when present.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Result is the guaranteed-non-throwing outcome of a completion call. On
// failure, Error describes the cause and Fallback holds locally generated
// text the caller renders verbatim.
type Result struct {
	Success  bool   `json:"success"`
	Content  string `json:"content,omitempty"`
	Usage    *Usage `json:"usage,omitempty"`
	Error    string `json:"error,omitempty"`
	Fallback string `json:"fallback,omitempty"`
}
