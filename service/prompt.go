package service

import (
	"fmt"
	"strings"

	"github.com/adityapawar327/ongc-assistant-be/types"
)

// NoDocumentsAnswer is the fixed response for strict-mode queries when
// nothing has been indexed.
const NoDocumentsAnswer = "I don't have any documents uploaded yet to answer your question. Please upload ONGC documents for accurate, document-based answers."

// PromptBuilder composes the instruction text sent to the generative
// model from the question, assembled context, conversation history and
// the active modes.
type PromptBuilder struct {
	knowledge *KnowledgeService
}

func NewPromptBuilder(knowledge *KnowledgeService) *PromptBuilder {
	return &PromptBuilder{knowledge: knowledge}
}

func (b *PromptBuilder) Build(question, context string, history []types.Message, language types.Language, mode types.AccuracyMode, window types.ContextWindow) string {
	languageInstruction := languageDirective(language)

	if strings.TrimSpace(context) == "" {
		if mode == types.AccuracyStrict {
			return fmt.Sprintf(`You are a helpful AI assistant for ONGC (Oil and Natural Gas Corporation Limited). The user asked: "%s"

Since no relevant documents are available in the knowledge base, you must respond: "I don't have any documents uploaded yet to answer this question. Please upload ONGC documents to get accurate, document-based answers."%s

Answer:`, question, languageInstruction)
		}

		return fmt.Sprintf(`You are a helpful AI assistant for ONGC (Oil and Natural Gas Corporation Limited), India's largest oil and gas exploration and production company. The user asked: "%s"

%s

Use the above ONGC information to provide a helpful response. Be professional and mention that users can upload specific ONGC documents for more detailed, document-based answers. Once real documents are available, clearly mark document-grounded claims versus general knowledge.%s%s

Answer:`, question, b.knowledge.FullBackground(), languageInstruction, accuracyInstruction(mode)+lengthGuidance(window))
	}

	historyText := ""
	if len(history) > 0 {
		lines := make([]string, 0, len(history))
		for _, turn := range history {
			lines = append(lines, fmt.Sprintf("%s: %s", turn.Role, turn.Content))
		}
		historyText = "\nConversation History:\n" + strings.Join(lines, "\n") + "\n"
	}

	return fmt.Sprintf(`You are an advanced AI assistant for ONGC (Oil and Natural Gas Corporation Limited), India's largest oil and gas exploration and production company. You have expertise in analyzing and synthesizing information from ONGC documents, reports, and technical materials. You have access to a curated knowledge base and should provide accurate, well-reasoned answers.%s%s

%s
Knowledge Base Context:
%s

Current Question: %s

Advanced Instructions:
1. GROUNDING: Base your answer primarily on the provided context documents
2. CITATION: Reference specific documents when making claims (e.g., "According to Document 1...")
3. SYNTHESIS: Combine information from multiple sources when relevant
4. ACCURACY: If the context doesn't fully answer the question, provide what you can and note any limitations
5. REASONING: Explain your reasoning process when drawing conclusions
6. COMPLETENESS: Provide comprehensive answers while staying concise
7. CONTEXT AWARENESS: Consider the conversation history for continuity
8. BE HELPFUL: If the question is unclear or seems like a typo, try to understand the intent

Response Format:
- Start with a direct answer to the question
- Support with evidence from the documents
- Cite sources explicitly when available
- If information is limited, acknowledge it but still be helpful

Answer:`, languageInstruction, accuracyInstruction(mode)+lengthGuidance(window), historyText, context, question)
}

// languageDirective is appended to every prompt regardless of the
// other modes.
func languageDirective(language types.Language) string {
	if language == types.LanguageHindi {
		return "\n\nIMPORTANT: Respond in Hindi (हिंदी में उत्तर दें). Use Devanagari script."
	}
	return "\n\nIMPORTANT: Respond in English."
}

func accuracyInstruction(mode types.AccuracyMode) string {
	switch mode {
	case types.AccuracyStrict:
		return "\n\nACCURACY MODE: STRICT\n- Answer ONLY based on the provided documents\n- If information is not in the documents, clearly state \"This information is not available in the uploaded documents\"\n- Do NOT use general knowledge or make assumptions\n- Be extremely precise and cite specific documents\n- If unsure, say you don't have enough information"
	case types.AccuracyFlexible:
		return "\n\nACCURACY MODE: FLEXIBLE\n- Use documents as a foundation but feel free to expand\n- Apply general knowledge and reasoning\n- Provide comprehensive answers with context\n- Still cite documents when using their specific information\n- Be helpful and informative"
	default:
		return "\n\nACCURACY MODE: BALANCED\n- Primarily base answers on the provided documents\n- You may supplement with relevant general knowledge when helpful\n- Clearly distinguish between document-based info and general knowledge\n- Cite documents when using their information\n- Be accurate but helpful"
	}
}

// lengthGuidance is advisory text inside the prompt, not a hard
// truncation; the real output cap is set via GenerationConfig.
func lengthGuidance(window types.ContextWindow) string {
	switch window {
	case types.ContextWindowShort:
		return "\n\nRESPONSE LENGTH: Keep your answer concise and focused (2-3 paragraphs maximum)."
	case types.ContextWindowHigh:
		return "\n\nRESPONSE LENGTH: Provide a comprehensive, detailed answer. Use all available context to give thorough explanations (5-8 paragraphs or more if needed)."
	default:
		return "\n\nRESPONSE LENGTH: Provide a balanced answer with good detail (3-5 paragraphs)."
	}
}
