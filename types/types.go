package types

const (
	TypeWebsocketPing       = "ping"
	TypeWebsocketPong       = "pong"
	TypeWebsocketQuery      = "query"
	TypeWebsocketChunk      = "chunk"
	TypeWebsocketSources    = "sources"
	TypeWebsocketDone       = "done"
	TypeWebsocketError      = "error"
	TypeWebsocketProcessing = "processing"
)

type WebsocketRequest struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type WebsocketResponse struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// WebsocketQueryPayload carries a streaming question over a websocket.
type WebsocketQueryPayload struct {
	Question      string        `json:"question"`
	Language      Language      `json:"language"`
	AccuracyMode  AccuracyMode  `json:"accuracy_mode"`
	ContextWindow ContextWindow `json:"context_window"`
}

type WebsocketChunkPayload struct {
	Content string `json:"content"`
}

type WebsocketSourcesPayload struct {
	Sources []Source `json:"sources"`
}

// StreamHandler receives incremental answer fragments in arrival order.
type StreamHandler func(fragment string)
