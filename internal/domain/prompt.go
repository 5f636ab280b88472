package domain

// OutputType tags the semantic kind of an enhanced prompt. Only one variant
// exists today; the field is still set on every result so additional output
// kinds can be introduced without a data migration on clients.
type OutputType string

const OutputTypeRasterPrompt OutputType = "RASTER_PROMPT"

// QuestionCount is the number of clarifying questions requested per batch.
const QuestionCount = 11

// OptionCount is the number of choices requested per question. The model is
// asked for exactly this many but shorter option lists are tolerated.
const OptionCount = 10

// ReferenceImage is an uploaded image encoded for the generation API.
// Immutable after creation; subject and style slots hold independent instances.
type ReferenceImage struct {
	Base64   string `json:"base64"`
	MimeType string `json:"mimeType"`
}

// IsZero reports whether no image has been attached.
func (r ReferenceImage) IsZero() bool {
	return r.Base64 == "" && r.MimeType == ""
}

// Question is one clarifying question as returned by the model.
type Question struct {
	ID           string   `json:"id"`
	QuestionText string   `json:"questionText"`
	Options      []string `json:"options"`
}

// QuestionAnswer pairs a model-supplied question with the user's response.
// SelectedOptions behaves as a set: ToggleOption adds an absent option and
// removes a present one, so duplicates are impossible by construction.
type QuestionAnswer struct {
	ID              string   `json:"id"`
	QuestionText    string   `json:"questionText"`
	Options         []string `json:"options"`
	SelectedOptions []string `json:"selectedOptions"`
	Answer          string   `json:"answer"`
}

// ToggleOption flips membership of option in SelectedOptions.
func (q *QuestionAnswer) ToggleOption(option string) {
	for i, sel := range q.SelectedOptions {
		if sel == option {
			q.SelectedOptions = append(q.SelectedOptions[:i], q.SelectedOptions[i+1:]...)
			return
		}
	}
	q.SelectedOptions = append(q.SelectedOptions, option)
}

// HasResponse reports whether the user provided any input for this question.
func (q *QuestionAnswer) HasResponse() bool {
	return len(q.SelectedOptions) > 0 || q.Answer != ""
}

// NewAnswers builds the mutable answer batch from a freshly parsed question set.
func NewAnswers(questions []Question) []QuestionAnswer {
	answers := make([]QuestionAnswer, len(questions))
	for i, q := range questions {
		answers[i] = QuestionAnswer{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			Options:      q.Options,
		}
	}
	return answers
}

// EnhancedPromptResult is the artifact of a successful generation call.
// Immutable once produced; user edits live in a separate draft string until a
// refinement call replaces the whole result.
type EnhancedPromptResult struct {
	EnhancedPrompt string     `json:"enhancedPrompt"`
	NegativePrompt string     `json:"negativePrompt"`
	Suggestions    []string   `json:"suggestions"`
	OutputTypeUsed OutputType `json:"outputTypeUsed"`
}
