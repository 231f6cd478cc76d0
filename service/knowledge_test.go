package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKnowledgeLookupMatchesCompanyQuestions(t *testing.T) {
	knowledge := NewKnowledgeService()

	got := knowledge.Lookup("What is ONGC?")

	assert.Contains(t, got, "ONGC Background Knowledge:")
	assert.Contains(t, got, "founded in 1956")
}

func TestKnowledgeLookupCombinesMatchingRules(t *testing.T) {
	knowledge := NewKnowledgeService()

	got := knowledge.Lookup("Tell me about drilling safety standards")

	assert.Contains(t, got, "ONGC Operations")
	assert.Contains(t, got, "ONGC Safety Standards")
}

func TestKnowledgeLookupNoMatch(t *testing.T) {
	knowledge := NewKnowledgeService()

	assert.Equal(t, "", knowledge.Lookup("What is the cafeteria menu today?"))
}

func TestKnowledgeFullBackground(t *testing.T) {
	knowledge := NewKnowledgeService()

	got := knowledge.FullBackground()

	assert.Contains(t, got, "Company Overview")
	assert.Contains(t, got, "Mumbai High")
}
