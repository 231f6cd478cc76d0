package service

import (
	"fmt"
	"strings"

	"github.com/adityapawar327/ongc-assistant-be/types"
)

// BuildContext renders retrieved candidates into the labeled context
// block placed in the prompt. Candidates keep their input order; an
// empty candidate list yields an empty string, which callers treat as
// "no context".
func BuildContext(candidates []types.RetrievalCandidate) string {
	blocks := make([]string, 0, len(candidates))
	for i, candidate := range candidates {
		source := candidate.Chunk.Metadata.Source
		if source == "" {
			source = "Unknown"
		}
		docType := candidate.Chunk.Metadata.Type
		if docType == "" {
			docType = "document"
		}
		blocks = append(blocks, fmt.Sprintf("[Document %d] (Source: %s, Type: %s)\n%s\n---",
			i+1, source, docType, candidate.Chunk.Content))
	}
	return strings.Join(blocks, "\n\n")
}
