package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adityapawar327/ongc-assistant-be/types"
)

func newTestPromptBuilder() *PromptBuilder {
	return NewPromptBuilder(NewKnowledgeService())
}

func TestPromptStrictWithoutContextRefuses(t *testing.T) {
	builder := newTestPromptBuilder()

	prompt := builder.Build("What is the leave policy?", "", nil, types.LanguageEnglish, types.AccuracyStrict, types.ContextWindowMedium)

	assert.Contains(t, prompt, "no relevant documents are available")
	assert.Contains(t, prompt, "What is the leave policy?")
	assert.NotContains(t, prompt, "Company Overview")
	assert.Contains(t, prompt, "Respond in English")
}

func TestPromptBalancedWithoutContextUsesBackground(t *testing.T) {
	builder := newTestPromptBuilder()

	prompt := builder.Build("What does ONGC do?", "", nil, types.LanguageEnglish, types.AccuracyBalanced, types.ContextWindowMedium)

	assert.Contains(t, prompt, "Company Overview")
	assert.Contains(t, prompt, "mention that users can upload")
	assert.Contains(t, prompt, "ACCURACY MODE: BALANCED")
}

func TestPromptWithContextIncludesDocumentsAndHistory(t *testing.T) {
	builder := newTestPromptBuilder()

	history := []types.Message{
		{Role: types.RoleUser, Content: "What is Mumbai High?"},
		{Role: types.RoleAssistant, Content: "An offshore oil field."},
	}
	contextBlock := "[Document 1] (Source: fields.txt, Type: text)\nMumbai High produces crude oil.\n---"

	prompt := builder.Build("When was it discovered?", contextBlock, history, types.LanguageEnglish, types.AccuracyBalanced, types.ContextWindowMedium)

	assert.Contains(t, prompt, "Knowledge Base Context:")
	assert.Contains(t, prompt, "Mumbai High produces crude oil.")
	assert.Contains(t, prompt, "Conversation History:")
	assert.Contains(t, prompt, "user: What is Mumbai High?")
	assert.Contains(t, prompt, "assistant: An offshore oil field.")
	assert.Contains(t, prompt, "Current Question: When was it discovered?")
	assert.Contains(t, prompt, "8. BE HELPFUL")
}

func TestPromptHindiDirective(t *testing.T) {
	builder := newTestPromptBuilder()

	prompt := builder.Build("Question", "some context", nil, types.LanguageHindi, types.AccuracyBalanced, types.ContextWindowMedium)

	assert.Contains(t, prompt, "Devanagari")
	assert.NotContains(t, prompt, "Respond in English")
}

func TestPromptAccuracyAndLengthDirectives(t *testing.T) {
	builder := newTestPromptBuilder()

	strict := builder.Build("Q", "ctx", nil, types.LanguageEnglish, types.AccuracyStrict, types.ContextWindowShort)
	assert.Contains(t, strict, "ACCURACY MODE: STRICT")
	assert.Contains(t, strict, "2-3 paragraphs maximum")

	flexible := builder.Build("Q", "ctx", nil, types.LanguageEnglish, types.AccuracyFlexible, types.ContextWindowHigh)
	assert.Contains(t, flexible, "ACCURACY MODE: FLEXIBLE")
	assert.Contains(t, flexible, "5-8 paragraphs")

	balanced := builder.Build("Q", "ctx", nil, types.LanguageEnglish, types.AccuracyBalanced, types.ContextWindowMedium)
	assert.Contains(t, balanced, "3-5 paragraphs")
}
