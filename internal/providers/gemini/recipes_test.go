package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"promptstudio/internal/domain"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func textReply(text string) *http.Response {
	reply := geminiGenerateContentResponse{
		Candidates: []geminiCandidate{{
			Content: geminiContent{Parts: []geminiPart{{Text: text}}},
		}},
	}
	body, _ := json.Marshal(reply)
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(string(body))),
	}
}

func decodeRequest(t *testing.T, r *http.Request) geminiGenerateContentRequest {
	t.Helper()
	var payload geminiGenerateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		t.Fatalf("decode request payload: %v", err)
	}
	return payload
}

func testGenerator(transport roundTripFunc) *Generator {
	client := NewClient(Options{
		APIKey:     "test-key",
		HTTPClient: &http.Client{Transport: transport},
	})
	return NewGenerator(client, zerolog.Nop())
}

func TestGenerateQuestionsSuccess(t *testing.T) {
	var captured geminiGenerateContentRequest
	gen := testGenerator(func(r *http.Request) (*http.Response, error) {
		captured = decodeRequest(t, r)
		return textReply(questionBatch(domain.QuestionCount)), nil
	})

	questions, err := gen.GenerateQuestions(context.Background(), "zachód słońca nad górami")
	if err != nil {
		t.Fatalf("GenerateQuestions returned error: %v", err)
	}
	if len(questions) != domain.QuestionCount {
		t.Fatalf("len(questions) = %d, want %d", len(questions), domain.QuestionCount)
	}

	if len(captured.Contents) != 1 {
		t.Fatalf("contents = %d, want 1", len(captured.Contents))
	}
	parts := captured.Contents[0].Parts
	if len(parts) != 1 {
		t.Fatalf("parts = %d, want instruction only", len(parts))
	}
	if !strings.Contains(parts[0].Text, "zachód słońca nad górami") {
		t.Fatalf("instruction does not embed the idea: %q", parts[0].Text)
	}
}

func TestGenerateQuestionsCountMismatch(t *testing.T) {
	gen := testGenerator(func(r *http.Request) (*http.Response, error) {
		return textReply(questionBatch(10)), nil
	})

	_, err := gen.GenerateQuestions(context.Background(), "pomysł")
	var generation *domain.GenerationError
	if !errors.As(err, &generation) {
		t.Fatalf("error = %v, want *domain.GenerationError", err)
	}
	if generation.Key != "questions_count_mismatch" {
		t.Fatalf("Key = %q, want questions_count_mismatch", generation.Key)
	}
	if len(generation.Args) != 2 || generation.Args[0] != domain.QuestionCount || generation.Args[1] != 10 {
		t.Fatalf("Args = %v, want [%d 10]", generation.Args, domain.QuestionCount)
	}
}

func TestGenerateEnhancedPromptAttachesSubjectLast(t *testing.T) {
	subject := domain.ReferenceImage{Base64: "c3ViamVjdA==", MimeType: "image/jpeg"}
	var captured geminiGenerateContentRequest
	gen := testGenerator(func(r *http.Request) (*http.Response, error) {
		captured = decodeRequest(t, r)
		return textReply(`{"enhancedPrompt":"p","negativePrompt":"n","suggestions":[]}`), nil
	})

	answers := []domain.QuestionAnswer{{ID: "q1", QuestionText: "Styl?", SelectedOptions: []string{"akwarela"}, Answer: "delikatna"}}
	result, err := gen.GenerateEnhancedPrompt(context.Background(), "kot w ogrodzie", answers, subject)
	if err != nil {
		t.Fatalf("GenerateEnhancedPrompt returned error: %v", err)
	}
	if result.OutputTypeUsed != domain.OutputTypeRasterPrompt {
		t.Fatalf("OutputTypeUsed = %q", result.OutputTypeUsed)
	}

	parts := captured.Contents[0].Parts
	if len(parts) != 2 {
		t.Fatalf("parts = %d, want instruction + subject", len(parts))
	}
	if parts[0].Text == "" || parts[0].InlineData != nil {
		t.Fatalf("first part is not the instruction: %+v", parts[0])
	}
	if !strings.Contains(parts[0].Text, "akwarela") || !strings.Contains(parts[0].Text, "delikatna") {
		t.Fatalf("instruction does not embed the answers: %q", parts[0].Text)
	}
	if parts[1].InlineData == nil || parts[1].InlineData.MimeType != "image/jpeg" {
		t.Fatalf("second part is not the subject image: %+v", parts[1])
	}
}

func TestStyleInfluencePartOrdering(t *testing.T) {
	style := domain.ReferenceImage{Base64: "c3R5bGU=", MimeType: "image/png"}
	subject := domain.ReferenceImage{Base64: "c3ViamVjdA==", MimeType: "image/jpeg"}
	var captured geminiGenerateContentRequest
	gen := testGenerator(func(r *http.Request) (*http.Response, error) {
		captured = decodeRequest(t, r)
		return textReply(`{"enhancedPrompt":"p","negativePrompt":"","suggestions":[]}`), nil
	})

	aspect := domain.AspectRatio{Value: "16:9"}
	if _, err := gen.GenerateStyleInfluencePrompt(context.Background(), "port o świcie", style, subject, aspect); err != nil {
		t.Fatalf("GenerateStyleInfluencePrompt returned error: %v", err)
	}

	parts := captured.Contents[0].Parts
	if len(parts) != 3 {
		t.Fatalf("parts = %d, want instruction + style + subject", len(parts))
	}
	if parts[0].InlineData != nil {
		t.Fatalf("instruction is not first: %+v", parts[0])
	}
	if !strings.Contains(parts[0].Text, "16:9") {
		t.Fatalf("instruction does not embed the aspect ratio: %q", parts[0].Text)
	}
	if parts[1].InlineData == nil || parts[1].InlineData.MimeType != "image/png" {
		t.Fatalf("style image is not second: %+v", parts[1])
	}
	if parts[2].InlineData == nil || parts[2].InlineData.MimeType != "image/jpeg" {
		t.Fatalf("subject image is not third: %+v", parts[2])
	}
}

func TestGenerateImageDescriptionFreeText(t *testing.T) {
	subject := domain.ReferenceImage{Base64: "c3ViamVjdA==", MimeType: "image/webp"}
	gen := testGenerator(func(r *http.Request) (*http.Response, error) {
		return textReply("Górskie jezioro o zmierzchu, spokojna tafla wody."), nil
	})

	description, err := gen.GenerateImageDescription(context.Background(), subject)
	if err != nil {
		t.Fatalf("GenerateImageDescription returned error: %v", err)
	}
	if !strings.Contains(description, "jezioro") {
		t.Fatalf("description = %q", description)
	}
}

func TestTransportFailureFoldsIntoGenerationError(t *testing.T) {
	gen := testGenerator(func(r *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})

	_, err := gen.GenerateMagicPrompt(context.Background(), "pomysł", domain.DefaultAspectRatio(), domain.ReferenceImage{})
	var generation *domain.GenerationError
	if !errors.As(err, &generation) {
		t.Fatalf("error = %v, want *domain.GenerationError", err)
	}
	if generation.Key != "generation_failed_magic" {
		t.Fatalf("Key = %q, want generation_failed_magic", generation.Key)
	}
	if generation.Op != "generateMagicPrompt" {
		t.Fatalf("Op = %q", generation.Op)
	}
	if !strings.Contains(generation.Error(), "connection refused") {
		t.Fatalf("cause lost: %v", generation)
	}
}

func TestMalformedReplyFoldsIntoGenerationError(t *testing.T) {
	gen := testGenerator(func(r *http.Request) (*http.Response, error) {
		return textReply("to nie jest JSON"), nil
	})

	_, err := gen.GenerateCopyImagePrompt(context.Background(), domain.ReferenceImage{Base64: "eA==", MimeType: "image/png"})
	var generation *domain.GenerationError
	if !errors.As(err, &generation) {
		t.Fatalf("error = %v, want *domain.GenerationError", err)
	}
	if generation.Key != "generation_failed_copy" {
		t.Fatalf("Key = %q, want generation_failed_copy", generation.Key)
	}
	if !errors.Is(err, domain.ErrMalformedResponse) {
		t.Fatalf("cause chain lost: %v", err)
	}
}
