package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"promptstudio/internal/domain"
)

// PromptGenerator is the set of generation operations the handlers depend on.
type PromptGenerator interface {
	GenerateQuestions(ctx context.Context, idea string) ([]domain.Question, error)
	GenerateEnhancedPrompt(ctx context.Context, idea string, answers []domain.QuestionAnswer, subject domain.ReferenceImage) (*domain.EnhancedPromptResult, error)
	GenerateImageDescription(ctx context.Context, subject domain.ReferenceImage) (string, error)
	GenerateMagicPrompt(ctx context.Context, idea string, aspect domain.AspectRatio, subject domain.ReferenceImage) (*domain.EnhancedPromptResult, error)
	GenerateCopyImagePrompt(ctx context.Context, subject domain.ReferenceImage) (*domain.EnhancedPromptResult, error)
	GenerateStyleInfluencePrompt(ctx context.Context, idea string, style, subject domain.ReferenceImage, aspect domain.AspectRatio) (*domain.EnhancedPromptResult, error)
	RefineEditedPrompt(ctx context.Context, edited, idea string, answers []domain.QuestionAnswer, subject domain.ReferenceImage) (*domain.EnhancedPromptResult, error)
}

// Generator implements PromptGenerator on top of the REST client. Each
// operation assembles one instruction string, attaches the images in the
// contract order and decodes the reply against its declared shape.
type Generator struct {
	client *Client
	logger zerolog.Logger
}

// NewGenerator wires a Generator to a client.
func NewGenerator(client *Client, logger zerolog.Logger) *Generator {
	return &Generator{client: client, logger: logger}
}

var _ PromptGenerator = (*Generator)(nil)

const resultSchema = `{"enhancedPrompt":string,"negativePrompt":string,"suggestions":string[]}`

const questionSchema = `[{"id":string,"questionText":string,"options":string[]}]`

// GenerateQuestions asks for the clarifying-question batch seeded by the
// user's basic idea.
func (g *Generator) GenerateQuestions(ctx context.Context, idea string) ([]domain.Question, error) {
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "Jesteś ekspertem od tworzenia promptów dla generatorów obrazów. Użytkownik podał pomysł na obraz: %q. ", idea)
	fmt.Fprintf(sb, "Przygotuj dokładnie %d pytań doprecyzowujących ten pomysł, każde z dokładnie %d opcjami do wyboru. ", domain.QuestionCount, domain.OptionCount)
	sb.WriteString("Pierwsze pytanie powinno dotyczyć stylu artystycznego. Pytania i opcje napisz po polsku. ")
	sb.WriteString("Odpowiedz wyłącznie JSON-em zgodnym ze schematem: " + questionSchema + ".")

	return run(ctx, g, "generateQuestions", "generation_failed_questions",
		orderedParts(sb.String(), domain.ReferenceImage{}, domain.ReferenceImage{}), decodeQuestions)
}

// GenerateEnhancedPrompt produces the final enhanced prompt from the idea, the
// answered question batch and the optional subject image.
func (g *Generator) GenerateEnhancedPrompt(ctx context.Context, idea string, answers []domain.QuestionAnswer, subject domain.ReferenceImage) (*domain.EnhancedPromptResult, error) {
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "Jesteś ekspertem od tworzenia promptów dla generatorów obrazów. Pomysł użytkownika: %q.\n", idea)
	writeAnswers(sb, answers)
	if !subject.IsZero() {
		sb.WriteString("Dołączono zdjęcie referencyjne przedstawiające obiekt, który ma się znaleźć na obrazie; uwzględnij jego wygląd.\n")
	}
	sb.WriteString("Na tej podstawie napisz rozbudowany, szczegółowy prompt po angielsku, prompt negatywny oraz listę sugestii dalszych ulepszeń po polsku. ")
	sb.WriteString("Odpowiedz wyłącznie JSON-em zgodnym ze schematem: " + resultSchema + ".")

	return run(ctx, g, "generateEnhancedPrompt", "generation_failed_enhance",
		orderedParts(sb.String(), domain.ReferenceImage{}, subject), decodeResult)
}

// GenerateImageDescription turns the subject image into a textual idea; the
// reply is free text rather than JSON.
func (g *Generator) GenerateImageDescription(ctx context.Context, subject domain.ReferenceImage) (string, error) {
	instruction := "Opisz zwięźle po polsku, co przedstawia załączony obraz: temat, kompozycję, kolorystykę i nastrój. " +
		"Opis posłuży jako pomysł wyjściowy na prompt, więc pisz jednym akapitem, bez formatowania."

	return run(ctx, g, "generateImageDescription", "generation_failed_describe",
		orderedParts(instruction, domain.ReferenceImage{}, subject), decodeText)
}

// GenerateMagicPrompt creatively expands the idea without the question step.
func (g *Generator) GenerateMagicPrompt(ctx context.Context, idea string, aspect domain.AspectRatio, subject domain.ReferenceImage) (*domain.EnhancedPromptResult, error) {
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "Rozwiń twórczo ten pomysł na obraz w pełny, sugestywny prompt: %q.\n", idea)
	if dims := aspect.DimensionText(); dims != "" {
		fmt.Fprintf(sb, "Docelowy format obrazu: %s.\n", dims)
	}
	if !subject.IsZero() {
		sb.WriteString("Dołączono zdjęcie referencyjne; potraktuj je jako punkt odniesienia dla treści obrazu.\n")
	}
	sb.WriteString("Prompt napisz po angielsku, prompt negatywny również, sugestie po polsku. ")
	sb.WriteString("Odpowiedz wyłącznie JSON-em zgodnym ze schematem: " + resultSchema + ".")

	return run(ctx, g, "generateMagicPrompt", "generation_failed_magic",
		orderedParts(sb.String(), domain.ReferenceImage{}, subject), decodeResult)
}

// GenerateCopyImagePrompt writes a prompt that would reproduce the subject
// image as closely as possible.
func (g *Generator) GenerateCopyImagePrompt(ctx context.Context, subject domain.ReferenceImage) (*domain.EnhancedPromptResult, error) {
	instruction := "Przeanalizuj załączony obraz i napisz po angielsku prompt, który pozwoliłby wygenerować możliwie wierną jego kopię: " +
		"temat, styl, kompozycja, oświetlenie, paleta barw, detale. Dodaj prompt negatywny oraz polskie sugestie drobnych wariacji. " +
		"Odpowiedz wyłącznie JSON-em zgodnym ze schematem: " + resultSchema + "."

	return run(ctx, g, "generateCopyImagePrompt", "generation_failed_copy",
		orderedParts(instruction, domain.ReferenceImage{}, subject), decodeResult)
}

// GenerateStyleInfluencePrompt transfers the artistic style of the style image
// onto the user's idea, optionally anchored by a subject image.
func (g *Generator) GenerateStyleInfluencePrompt(ctx context.Context, idea string, style, subject domain.ReferenceImage, aspect domain.AspectRatio) (*domain.EnhancedPromptResult, error) {
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "Pomysł użytkownika na obraz: %q.\n", idea)
	sb.WriteString("Pierwszy załączony obraz definiuje styl artystyczny, który należy przenieść na ten pomysł: opisz jego technikę, paletę i charakter w treści promptu.\n")
	if !subject.IsZero() {
		sb.WriteString("Drugi załączony obraz przedstawia obiekt, który ma się znaleźć na obrazie.\n")
	}
	if dims := aspect.DimensionText(); dims != "" {
		fmt.Fprintf(sb, "Docelowy format obrazu: %s.\n", dims)
	}
	sb.WriteString("Prompt i prompt negatywny napisz po angielsku, sugestie po polsku. ")
	sb.WriteString("Odpowiedz wyłącznie JSON-em zgodnym ze schematem: " + resultSchema + ".")

	return run(ctx, g, "generateStyleInfluencePrompt", "generation_failed_style",
		orderedParts(sb.String(), style, subject), decodeResult)
}

// RefineEditedPrompt improves a user-edited prompt while honoring the original
// idea and answers as context.
func (g *Generator) RefineEditedPrompt(ctx context.Context, edited, idea string, answers []domain.QuestionAnswer, subject domain.ReferenceImage) (*domain.EnhancedPromptResult, error) {
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "Użytkownik ręcznie poprawił wygenerowany wcześniej prompt. Jego wersja: %q.\n", edited)
	fmt.Fprintf(sb, "Pierwotny pomysł: %q.\n", idea)
	writeAnswers(sb, answers)
	if !subject.IsZero() {
		sb.WriteString("Dołączono zdjęcie referencyjne obiektu.\n")
	}
	sb.WriteString("Dopracuj wersję użytkownika, zachowując wprowadzone przez niego zmiany. Prompt i prompt negatywny po angielsku, sugestie po polsku. ")
	sb.WriteString("Odpowiedz wyłącznie JSON-em zgodnym ze schematem: " + resultSchema + ".")

	return run(ctx, g, "refineEditedPrompt", "generation_failed_refine",
		orderedParts(sb.String(), domain.ReferenceImage{}, subject), decodeResult)
}

// orderedParts assembles the payload segments in the contract order:
// instruction text, then the style image, then the subject image.
func orderedParts(instruction string, style, subject domain.ReferenceImage) []Part {
	parts := []Part{{Text: instruction}}
	if !style.IsZero() {
		parts = append(parts, Part{Image: style})
	}
	if !subject.IsZero() {
		parts = append(parts, Part{Image: subject})
	}
	return parts
}

func writeAnswers(sb *strings.Builder, answers []domain.QuestionAnswer) {
	answered := false
	for _, qa := range answers {
		if !qa.HasResponse() {
			continue
		}
		if !answered {
			sb.WriteString("Odpowiedzi użytkownika na pytania doprecyzowujące:\n")
			answered = true
		}
		fmt.Fprintf(sb, "- %s", qa.QuestionText)
		if len(qa.SelectedOptions) > 0 {
			fmt.Fprintf(sb, " Wybrano: %s.", strings.Join(qa.SelectedOptions, ", "))
		}
		if qa.Answer != "" {
			fmt.Fprintf(sb, " Uwagi: %s.", qa.Answer)
		}
		sb.WriteString("\n")
	}
}

// run executes one recipe: call the model, decode against the declared shape,
// and fold every failure into a single GenerationError. The cause is logged
// here and never surfaces to the caller.
func run[T any](ctx context.Context, g *Generator, op, failKey string, parts []Part, decode func(string) (T, error)) (T, error) {
	var zero T
	raw, err := g.client.GenerateText(ctx, parts)
	if err != nil {
		if errors.Is(err, domain.ErrNotConfigured) {
			return zero, err
		}
		g.logger.Error().Err(err).Str("op", op).Msg("gemini: generation call failed")
		return zero, &domain.GenerationError{Op: op, Key: failKey, Err: err}
	}
	out, err := decode(raw)
	if err != nil {
		var mismatch *domain.CountMismatchError
		if errors.As(err, &mismatch) {
			g.logger.Error().Err(err).Str("op", op).Msg("gemini: unexpected question count")
			return zero, &domain.GenerationError{
				Op:   op,
				Key:  "questions_count_mismatch",
				Args: []any{mismatch.Expected, mismatch.Observed},
				Err:  err,
			}
		}
		g.logger.Error().Err(err).Str("op", op).Msg("gemini: reply did not match declared shape")
		return zero, &domain.GenerationError{Op: op, Key: failKey, Err: err}
	}
	return out, nil
}
