package types

type DataResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// FileResult reports the outcome of ingesting one uploaded file.
// Per-file failures never abort the rest of the batch.
type FileResult struct {
	Filename    string `json:"filename"`
	ChunksAdded int    `json:"chunks_added"`
	Success     bool   `json:"success"`
	Error       string `json:"error,omitempty"`
}

type UploadResponse struct {
	Message     string       `json:"message"`
	Files       []FileResult `json:"files"`
	TotalChunks int          `json:"total_chunks"`
}

type ListDocumentsResponse struct {
	Documents []IndexedSource `json:"documents"`
	Total     int             `json:"total"`
}

type IngestResponse struct {
	DocumentsProcessed int `json:"documents_processed"`
	ChunksAdded        int `json:"chunks_added"`
}
