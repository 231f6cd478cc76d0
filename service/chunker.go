package service

import (
	"strings"
	"time"

	"github.com/adityapawar327/ongc-assistant-be/types"
)

// defaultSeparators are tried in order: paragraph break, line break,
// sentence end, word boundary, then a character-level fallback.
var defaultSeparators = []string{"\n\n", "\n", ". ", " ", ""}

var DefaultChunkingConfig = types.ChunkingConfig{
	ChunkSize:    1000,
	ChunkOverlap: 200,
}

// Chunker splits extracted documents into overlapping passages. Splits
// prefer the earliest separator that keeps pieces within the target
// size; consecutive chunks from one document share up to ChunkOverlap
// characters so context survives the boundary.
type Chunker struct {
	chunkSize    int
	chunkOverlap int
	separators   []string
}

func NewChunker(cfg types.ChunkingConfig) *Chunker {
	size := cfg.ChunkSize
	if size <= 0 {
		size = DefaultChunkingConfig.ChunkSize
	}
	overlap := cfg.ChunkOverlap
	if overlap < 0 || overlap >= size {
		overlap = DefaultChunkingConfig.ChunkOverlap
	}
	return &Chunker{
		chunkSize:    size,
		chunkOverlap: overlap,
		separators:   defaultSeparators,
	}
}

// Chunk splits each document and stamps every produced chunk with its
// position within its source document and a creation timestamp.
// Documents with empty content yield no chunks.
func (c *Chunker) Chunk(documents []types.Document) []types.Chunk {
	var chunks []types.Chunk
	now := time.Now()

	for _, doc := range documents {
		text := strings.TrimSpace(doc.Content)
		if text == "" {
			continue
		}

		pieces := c.splitText(text, c.separators)
		contents := make([]string, 0, len(pieces))
		for _, piece := range pieces {
			if trimmed := strings.TrimSpace(piece); trimmed != "" {
				contents = append(contents, trimmed)
			}
		}

		for i, content := range contents {
			chunks = append(chunks, types.Chunk{
				Content: content,
				Metadata: types.ChunkMetadata{
					DocumentMetadata: doc.Metadata,
					ChunkIndex:       i,
					ChunkCount:       len(contents),
					CreatedAt:        now,
				},
			})
		}
	}
	return chunks
}

// splitText splits on the first separator present in the text, merges
// the resulting pieces back into chunks within the size limit, and
// recurses with the remaining separators for any piece that is still
// too large.
func (c *Chunker) splitText(text string, separators []string) []string {
	separator := separators[len(separators)-1]
	var remaining []string
	for i, s := range separators {
		if s == "" || strings.Contains(text, s) {
			separator = s
			remaining = separators[i+1:]
			break
		}
	}

	var pieces []string
	if separator == "" {
		pieces = splitByRuneCount(text, c.chunkSize)
	} else {
		pieces = strings.SplitAfter(text, separator)
	}

	var chunks []string
	var fitting []string
	for _, piece := range pieces {
		if piece == "" {
			continue
		}
		if len(piece) <= c.chunkSize {
			fitting = append(fitting, piece)
			continue
		}
		chunks = append(chunks, c.mergePieces(fitting)...)
		fitting = nil
		if len(remaining) == 0 {
			chunks = append(chunks, piece)
		} else {
			chunks = append(chunks, c.splitText(piece, remaining)...)
		}
	}
	return append(chunks, c.mergePieces(fitting)...)
}

// mergePieces greedily packs pieces into chunks of at most chunkSize.
// When a chunk is flushed, trailing pieces totaling at most
// chunkOverlap are kept to seed the next chunk.
func (c *Chunker) mergePieces(pieces []string) []string {
	var chunks []string
	var current []string
	length := 0

	for _, piece := range pieces {
		if length+len(piece) > c.chunkSize && length > 0 {
			chunks = append(chunks, strings.Join(current, ""))
			for length > c.chunkOverlap || (length+len(piece) > c.chunkSize && length > 0) {
				length -= len(current[0])
				current = current[1:]
			}
		}
		current = append(current, piece)
		length += len(piece)
	}
	if length > 0 {
		chunks = append(chunks, strings.Join(current, ""))
	}
	return chunks
}

// splitByRuneCount is the character-level fallback for text with no
// usable separator. Splitting on rune boundaries keeps multi-byte
// scripts such as Devanagari intact.
func splitByRuneCount(text string, size int) []string {
	runes := []rune(text)
	var pieces []string
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		pieces = append(pieces, string(runes[start:end]))
	}
	return pieces
}
