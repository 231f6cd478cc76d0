package types

import "time"

// DocumentType identifies the format a document was extracted from.
type DocumentType string

const (
	DocumentTypeText        DocumentType = "text"
	DocumentTypePDF         DocumentType = "pdf"
	DocumentTypeSpreadsheet DocumentType = "spreadsheet"
	DocumentTypeCSV         DocumentType = "csv"
)

// Document is a unit of extracted text before chunking.
type Document struct {
	Content  string           `json:"content"`
	Metadata DocumentMetadata `json:"metadata"`
}

// DocumentMetadata describes where a document came from.
type DocumentMetadata struct {
	Source    string       `json:"source"`
	Type      DocumentType `json:"type"`
	SheetName string       `json:"sheet_name,omitempty"`
	PageCount int          `json:"page_count,omitempty"`
	RowCount  int          `json:"row_count,omitempty"`
}

// Chunk is the unit of retrievable text stored in the vector index.
// Chunks are immutable once produced by the chunker.
type Chunk struct {
	Content  string        `json:"content"`
	Metadata ChunkMetadata `json:"metadata"`
}

// ChunkMetadata carries the source document metadata plus the chunk's
// position within its document. ChunkIndex is 0-based and always less
// than ChunkCount.
type ChunkMetadata struct {
	DocumentMetadata
	ChunkIndex int       `json:"chunk_index"`
	ChunkCount int       `json:"chunk_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// RetrievalCandidate is a chunk returned by the vector index together
// with its normalized relevance score in [0,1]. LexicalScore is filled
// in by the reranker.
type RetrievalCandidate struct {
	Chunk          Chunk   `json:"chunk"`
	RelevanceScore float64 `json:"relevance_score"`
	LexicalScore   int     `json:"lexical_score"`
}

// ChunkingConfig contains configuration options for the text splitter.
type ChunkingConfig struct {
	ChunkSize    int `mapstructure:"chunk_size"`
	ChunkOverlap int `mapstructure:"chunk_overlap"`
}

// IndexedSource is a per-document summary of what is currently indexed.
type IndexedSource struct {
	Name           string       `json:"name"`
	Type           DocumentType `json:"type"`
	ChunkCount     int          `json:"chunks"`
	FirstIndexedAt time.Time    `json:"uploaded_at"`
}
