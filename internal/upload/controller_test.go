package upload

import (
	"errors"
	"testing"

	"promptstudio/internal/domain"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mime    string
		size    int64
		wantKey string
	}{
		{name: "jpeg within bound", mime: "image/jpeg", size: MaxFileSize},
		{name: "png accepted", mime: "image/png", size: 1024},
		{name: "webp accepted", mime: "image/webp", size: 1},
		{name: "gif rejected as format", mime: "image/gif", size: 1024, wantKey: "upload_format"},
		{name: "pdf rejected as format", mime: "application/pdf", size: 1024, wantKey: "upload_format"},
		{name: "empty mime rejected as format", mime: "", size: 1024, wantKey: "upload_format"},
		{name: "one byte over bound rejected as size", mime: "image/jpeg", size: MaxFileSize + 1, wantKey: "upload_size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.mime, tt.size)
			if tt.wantKey == "" {
				if err != nil {
					t.Fatalf("Validate returned error: %v", err)
				}
				return
			}
			var validation *domain.ValidationError
			if !errors.As(err, &validation) {
				t.Fatalf("error = %v, want *domain.ValidationError", err)
			}
			if validation.Key != tt.wantKey {
				t.Fatalf("message key = %q, want %q", validation.Key, tt.wantKey)
			}
		})
	}
}

func TestParseSlot(t *testing.T) {
	if slot, err := ParseSlot("subject"); err != nil || slot != SlotSubject {
		t.Fatalf("ParseSlot(subject) = %v, %v", slot, err)
	}
	if slot, err := ParseSlot("style"); err != nil || slot != SlotStyle {
		t.Fatalf("ParseSlot(style) = %v, %v", slot, err)
	}
	if _, err := ParseSlot("background"); err == nil {
		t.Fatal("unknown slot accepted")
	}
}
