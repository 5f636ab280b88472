// Package imgcodec converts uploaded binary images into the base64 payloads
// attached to generation requests. Pure transformation: content validation
// belongs to the upload controller.
package imgcodec

import (
	"encoding/base64"
	"io"

	"promptstudio/internal/domain"
)

// Encode reads the whole file and returns it as a base64 payload tagged with
// the declared MIME type. A failed read yields a domain.ReadError. Subject and
// style images are encoded by independent calls; nothing is shared.
func Encode(r io.Reader, mimeType string) (domain.ReferenceImage, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return domain.ReferenceImage{}, &domain.ReadError{Err: err}
	}
	return EncodeBytes(data, mimeType), nil
}

// EncodeBytes encodes an already-buffered file.
func EncodeBytes(data []byte, mimeType string) domain.ReferenceImage {
	return domain.ReferenceImage{
		Base64:   base64.StdEncoding.EncodeToString(data),
		MimeType: mimeType,
	}
}

// DataURL renders the preview representation shown to the user for an
// accepted upload.
func DataURL(img domain.ReferenceImage) string {
	if img.IsZero() {
		return ""
	}
	return "data:" + img.MimeType + ";base64," + img.Base64
}
