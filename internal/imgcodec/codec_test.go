package imgcodec

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"promptstudio/internal/domain"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("device gone") }

func TestEncode(t *testing.T) {
	img, err := Encode(strings.NewReader("fake-jpeg-bytes"), "image/jpeg")
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	if img.MimeType != "image/jpeg" {
		t.Fatalf("MimeType = %q, want image/jpeg", img.MimeType)
	}
	decoded, err := base64.StdEncoding.DecodeString(img.Base64)
	if err != nil {
		t.Fatalf("payload is not valid base64: %v", err)
	}
	if string(decoded) != "fake-jpeg-bytes" {
		t.Fatalf("decoded payload = %q", decoded)
	}
}

func TestEncodeReadFailure(t *testing.T) {
	_, err := Encode(failingReader{}, "image/png")
	var readErr *domain.ReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("error = %v, want *domain.ReadError", err)
	}
}

func TestDataURL(t *testing.T) {
	img := EncodeBytes([]byte{0x1}, "image/webp")
	url := DataURL(img)
	if !strings.HasPrefix(url, "data:image/webp;base64,") {
		t.Fatalf("DataURL = %q", url)
	}
	if DataURL(domain.ReferenceImage{}) != "" {
		t.Fatal("empty image produced a preview")
	}
}
