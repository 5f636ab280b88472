package gemini

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"promptstudio/internal/domain"
)

func TestClientDefaults(t *testing.T) {
	client := NewClient(Options{APIKey: "k"})
	if client.Model() != "gemini-2.5-flash" {
		t.Fatalf("Model() = %q", client.Model())
	}
	if !client.Configured() {
		t.Fatal("client with key not reported configured")
	}
}

func TestClientNotConfigured(t *testing.T) {
	client := NewClient(Options{})
	if client.Configured() {
		t.Fatal("client without key reported configured")
	}
	_, err := client.GenerateText(context.Background(), []Part{{Text: "hi"}})
	if !errors.Is(err, domain.ErrNotConfigured) {
		t.Fatalf("error = %v, want ErrNotConfigured", err)
	}
}

func TestClientSurfacesAPIError(t *testing.T) {
	client := NewClient(Options{
		APIKey: "k",
		HTTPClient: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			if got := r.URL.Query().Get("key"); got != "k" {
				t.Fatalf("api key query param = %q", got)
			}
			return &http.Response{
				StatusCode: http.StatusTooManyRequests,
				Body:       io.NopCloser(strings.NewReader(`{"error":{"code":429,"message":"quota exceeded"}}`)),
			}, nil
		})},
	})
	_, err := client.GenerateText(context.Background(), []Part{{Text: "hi"}})
	if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("error = %v, want quota message", err)
	}
	if !strings.Contains(err.Error(), "429") {
		t.Fatalf("error = %v, want status code", err)
	}
}

func TestClientRejectsEmptyReply(t *testing.T) {
	client := NewClient(Options{
		APIKey: "k",
		HTTPClient: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(strings.NewReader(`{"candidates":[]}`)),
			}, nil
		})},
	})
	_, err := client.GenerateText(context.Background(), []Part{{Text: "hi"}})
	if err == nil || !strings.Contains(err.Error(), "no text content") {
		t.Fatalf("error = %v, want no-content failure", err)
	}
}
