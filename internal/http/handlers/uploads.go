package handlers

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"promptstudio/internal/imgcodec"
	"promptstudio/internal/upload"
)

// maxUploadMemory bounds the multipart parse buffer; larger files spill to
// temporary storage and are rejected by the size check anyway.
const maxUploadMemory = 8 << 20

// ImageUpload validates and stores a reference image in the subject or style
// slot. A rejected file clears the slot and produces no preview.
func (a *App) ImageUpload(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.session(w, r)
	if !ok {
		return
	}
	slot, err := upload.ParseSlot(chi.URLParam(r, "slot"))
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", a.t(r, "bad_request"))
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", a.t(r, "bad_request"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", a.t(r, "bad_request"))
		return
	}
	defer file.Close()

	// The declared MIME type is trusted for the allow-list; no sniffing.
	mimeType := header.Header.Get("Content-Type")
	if err := upload.Validate(mimeType, header.Size); err != nil {
		_ = sess.ClearImage(string(slot))
		a.writeDomainError(w, r, err)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		_ = sess.ClearImage(string(slot))
		a.error(w, http.StatusUnprocessableEntity, "read_error", a.t(r, "read_failed"))
		return
	}

	preview := imgcodec.DataURL(imgcodec.EncodeBytes(data, mimeType))
	if err := sess.SetImage(string(slot), data, mimeType, preview); err != nil {
		a.writeDomainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, sess.Snapshot())
}

// ImageClear empties a reference-image slot and its preview.
func (a *App) ImageClear(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.session(w, r)
	if !ok {
		return
	}
	slot, err := upload.ParseSlot(chi.URLParam(r, "slot"))
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", a.t(r, "bad_request"))
		return
	}
	if err := sess.ClearImage(string(slot)); err != nil {
		a.writeDomainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, sess.Snapshot())
}
