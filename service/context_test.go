package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adityapawar327/ongc-assistant-be/types"
)

func TestBuildContextFormat(t *testing.T) {
	candidates := []types.RetrievalCandidate{
		{Chunk: types.Chunk{
			Content:  "First passage.",
			Metadata: types.ChunkMetadata{DocumentMetadata: types.DocumentMetadata{Source: "a.txt", Type: types.DocumentTypeText}},
		}},
		{Chunk: types.Chunk{
			Content:  "Second passage.",
			Metadata: types.ChunkMetadata{DocumentMetadata: types.DocumentMetadata{Source: "b.pdf", Type: types.DocumentTypePDF}},
		}},
	}

	got := BuildContext(candidates)

	want := "[Document 1] (Source: a.txt, Type: text)\nFirst passage.\n---\n\n" +
		"[Document 2] (Source: b.pdf, Type: pdf)\nSecond passage.\n---"
	assert.Equal(t, want, got)
}

func TestBuildContextDefaults(t *testing.T) {
	candidates := []types.RetrievalCandidate{
		{Chunk: types.Chunk{Content: "Orphan passage."}},
	}

	got := BuildContext(candidates)

	assert.Contains(t, got, "Source: Unknown")
	assert.Contains(t, got, "Type: document")
}

func TestBuildContextEmpty(t *testing.T) {
	assert.Equal(t, "", BuildContext(nil))
}
