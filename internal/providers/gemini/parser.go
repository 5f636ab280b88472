package gemini

import (
	"encoding/json"
	"fmt"
	"strings"

	"promptstudio/internal/domain"
)

type resultPayload struct {
	EnhancedPrompt string   `json:"enhancedPrompt"`
	NegativePrompt string   `json:"negativePrompt"`
	Suggestions    []string `json:"suggestions"`
}

// decodeResult parses the shared result shape of the enhancement-style
// operations. A missing suggestions field normalizes to an empty list; a
// missing enhanced prompt is a shape mismatch.
func decodeResult(raw string) (*domain.EnhancedPromptResult, error) {
	payload, err := decodePayload[resultPayload](raw)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(payload.EnhancedPrompt) == "" {
		return nil, fmt.Errorf("%w: missing enhancedPrompt", domain.ErrMalformedResponse)
	}
	suggestions := payload.Suggestions
	if suggestions == nil {
		suggestions = []string{}
	}
	return &domain.EnhancedPromptResult{
		EnhancedPrompt: payload.EnhancedPrompt,
		NegativePrompt: payload.NegativePrompt,
		Suggestions:    suggestions,
		OutputTypeUsed: domain.OutputTypeRasterPrompt,
	}, nil
}

// decodeQuestions parses the question batch and enforces the exact top-level
// count. Option lists are passed through as-is; only their presence is
// normalized, not their length.
func decodeQuestions(raw string) ([]domain.Question, error) {
	questions, err := decodePayload[[]domain.Question](raw)
	if err != nil {
		return nil, err
	}
	if len(questions) != domain.QuestionCount {
		return nil, &domain.CountMismatchError{Expected: domain.QuestionCount, Observed: len(questions)}
	}
	for i := range questions {
		if strings.TrimSpace(questions[i].QuestionText) == "" {
			return nil, fmt.Errorf("%w: question %d has no text", domain.ErrMalformedResponse, i+1)
		}
		if questions[i].Options == nil {
			questions[i].Options = []string{}
		}
	}
	return questions, nil
}

// decodeText is the identity decoder for operations whose reply is free text.
func decodeText(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", fmt.Errorf("%w: empty reply", domain.ErrMalformedResponse)
	}
	return text, nil
}

func decodePayload[T any](raw string) (T, error) {
	var zero T
	cleaned := extractJSONFragment(raw)
	if cleaned == "" {
		return zero, fmt.Errorf("%w: empty payload", domain.ErrMalformedResponse)
	}
	var decoded T
	if err := json.Unmarshal([]byte(cleaned), &decoded); err != nil {
		return zero, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	return decoded, nil
}

// extractJSONFragment tolerates model replies that wrap the JSON payload in
// code fences or surrounding prose.
func extractJSONFragment(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}
	text = trimCodeFence(text)
	start := strings.IndexAny(text, "{[")
	end := strings.LastIndexAny(text, "]}")
	if start >= 0 && end >= start {
		text = text[start : end+1]
	}
	return strings.TrimSpace(text)
}

func trimCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```JSON")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}
