package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"promptstudio/internal/domain"
	"promptstudio/internal/i18n"
	"promptstudio/internal/imgcodec"
	"promptstudio/internal/infra"
	"promptstudio/internal/middleware"
	"promptstudio/internal/providers/gemini"
	"promptstudio/internal/session"
)

// SessionHeader carries the session capability token issued at creation.
const SessionHeader = "X-Session-ID"

// App bundles the dependencies of the HTTP handlers.
type App struct {
	Config    *infra.Config
	Logger    zerolog.Logger
	Sessions  *session.Store
	Generator gemini.PromptGenerator
}

// NewApp wires the handler container.
func NewApp(cfg *infra.Config, logger zerolog.Logger, sessions *session.Store, generator gemini.PromptGenerator) *App {
	return &App{Config: cfg, Logger: logger, Sessions: sessions, Generator: generator}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, errorBody{Error: errorDetail{Code: errCode, Message: message}})
}

// t localizes a catalog key for the request.
func (a *App) t(r *http.Request, key string, args ...any) string {
	return i18n.T(middleware.LocaleFromContext(r.Context()), key, args...)
}

// session resolves the request's session or writes the 404 itself.
func (a *App) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := r.Header.Get(SessionHeader)
	if id == "" {
		a.error(w, http.StatusBadRequest, "bad_request", a.t(r, "session_not_found"))
		return nil, false
	}
	sess, err := a.Sessions.Get(id)
	if err != nil {
		a.error(w, http.StatusNotFound, "not_found", a.t(r, "session_not_found"))
		return nil, false
	}
	return sess, true
}

// writeDomainError maps the error taxonomy onto HTTP responses with localized
// messages. Provider detail never leaves this boundary.
func (a *App) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		a.error(w, http.StatusUnprocessableEntity, "validation_error", a.t(r, validation.Key, validation.Args...))
		return
	}
	var generation *domain.GenerationError
	if errors.As(err, &generation) {
		a.error(w, http.StatusBadGateway, "generation_failed", a.t(r, generation.Key, generation.Args...))
		return
	}
	var read *domain.ReadError
	if errors.As(err, &read) {
		a.error(w, http.StatusUnprocessableEntity, "read_error", a.t(r, "read_failed"))
		return
	}
	switch {
	case errors.Is(err, domain.ErrBusy):
		a.error(w, http.StatusConflict, "conflict", a.t(r, "busy_generating"))
	case errors.Is(err, domain.ErrSessionNotFound):
		a.error(w, http.StatusNotFound, "not_found", a.t(r, "session_not_found"))
	case errors.Is(err, domain.ErrNotConfigured):
		a.error(w, http.StatusServiceUnavailable, "config_error", a.t(r, "config_missing_key"))
	default:
		a.Logger.Error().Err(err).Msg("handler: unexpected error")
		a.error(w, http.StatusInternalServerError, "internal", a.t(r, "internal"))
	}
}

// requireConfigured gates generation endpoints while the API key is absent.
func (a *App) requireConfigured(w http.ResponseWriter, r *http.Request) bool {
	if a.Config.Configured() {
		return true
	}
	a.error(w, http.StatusServiceUnavailable, "config_error", a.t(r, "config_missing_key"))
	return false
}

// encodeSlot converts a stored upload into the request payload form. An empty
// slot encodes to the zero image, meaning "no attachment".
func encodeSlot(slot session.ImageSlot) (domain.ReferenceImage, error) {
	if slot.IsZero() {
		return domain.ReferenceImage{}, nil
	}
	return imgcodec.Encode(bytes.NewReader(slot.Data), slot.MimeType)
}
