package service

import (
	"math"
	"strings"

	"github.com/adityapawar327/ongc-assistant-be/types"
)

// Confidence derives a heuristic 0-100 score from retrieval quality:
// half from how many candidates came back (saturating at 4), half from
// the average fraction of question terms found in each candidate.
func Confidence(candidates []types.RetrievalCandidate, question string) int {
	if len(candidates) == 0 {
		return 0
	}

	baseConfidence := math.Min(float64(len(candidates))/4, 1)

	terms := strings.Fields(strings.ToLower(question))
	if len(terms) == 0 {
		return int(math.Round(baseConfidence * 0.5 * 100))
	}

	totalRelevance := 0.0
	for _, candidate := range candidates {
		content := strings.ToLower(candidate.Chunk.Content)
		matches := 0
		for _, term := range terms {
			if strings.Contains(content, term) {
				matches++
			}
		}
		totalRelevance += float64(matches) / float64(len(terms))
	}
	avgRelevance := totalRelevance / float64(len(candidates))

	return int(math.Round((baseConfidence*0.5 + avgRelevance*0.5) * 100))
}
