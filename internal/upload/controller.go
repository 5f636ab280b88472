// Package upload validates reference-image uploads before they are encoded
// and attached to a session slot.
package upload

import (
	"fmt"

	"promptstudio/internal/domain"
)

// MaxFileSize is the upload size ceiling in bytes.
const MaxFileSize = 5 << 20

// Slot identifies which reference-image slot an upload targets.
type Slot string

const (
	SlotSubject Slot = "subject"
	SlotStyle   Slot = "style"
)

// ParseSlot maps a URL path segment onto a known slot.
func ParseSlot(raw string) (Slot, error) {
	switch Slot(raw) {
	case SlotSubject:
		return SlotSubject, nil
	case SlotStyle:
		return SlotStyle, nil
	}
	return "", fmt.Errorf("unknown image slot %q", raw)
}

// The declared MIME type is trusted for the allow-list check; no content
// sniffing is performed.
var allowedMimeTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
}

// Validate checks an upload against the MIME allow-list and the size bound.
// The two rejection reasons surface as distinct localized messages.
func Validate(mimeType string, size int64) error {
	if _, ok := allowedMimeTypes[mimeType]; !ok {
		return domain.NewValidationError("upload_format")
	}
	if size > MaxFileSize {
		return domain.NewValidationError("upload_size")
	}
	return nil
}
