package types

// Language selects the language the model is instructed to answer in.
type Language string

const (
	LanguageEnglish Language = "english"
	LanguageHindi   Language = "hindi"
)

// AccuracyMode controls how strictly answers are grounded in the
// uploaded documents.
type AccuracyMode string

const (
	AccuracyStrict   AccuracyMode = "strict"
	AccuracyBalanced AccuracyMode = "balanced"
	AccuracyFlexible AccuracyMode = "flexible"
)

// ContextWindow controls how many chunks are retrieved and how long the
// generated answer is allowed to be.
type ContextWindow string

const (
	ContextWindowShort  ContextWindow = "short"
	ContextWindowMedium ContextWindow = "medium"
	ContextWindowHigh   ContextWindow = "high"
)

// Message represents a single turn in a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// QueryRequest is a single question against the indexed documents.
type QueryRequest struct {
	Question       string        `json:"question"`
	ConversationID string        `json:"conversation_id"`
	Language       Language      `json:"language"`
	AccuracyMode   AccuracyMode  `json:"accuracy_mode"`
	ContextWindow  ContextWindow `json:"context_window"`
}

// StreamRequest is the body of a streaming query.
type StreamRequest struct {
	Question      string        `json:"question"`
	Language      Language      `json:"language"`
	AccuracyMode  AccuracyMode  `json:"accuracy_mode"`
	ContextWindow ContextWindow `json:"context_window"`
}

// Source describes one retrieved chunk backing an answer.
type Source struct {
	ID       int            `json:"id"`
	Content  string         `json:"content"`
	Preview  string         `json:"preview"`
	Metadata SourceMetadata `json:"metadata"`
}

// SourceMetadata is the subset of chunk metadata exposed to callers.
type SourceMetadata struct {
	Source    string       `json:"source"`
	Type      DocumentType `json:"type"`
	PageCount int          `json:"pages,omitempty"`
	Relevance string       `json:"relevance"`
}

// QueryResult is the answer to a QueryRequest.
type QueryResult struct {
	Answer     string   `json:"answer"`
	Sources    []Source `json:"sources"`
	HasContext bool     `json:"context"`
	Confidence int      `json:"confidence"`
}
