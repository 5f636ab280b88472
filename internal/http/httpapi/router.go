package httpapi

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"promptstudio/internal/http/handlers"
	"promptstudio/internal/infra"
	"promptstudio/internal/middleware"
)

// NewRouter wires the API surface behind the shared middleware chain.
func NewRouter(app *handlers.App, cfg *infra.Config, lookup middleware.CountryLookup) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(app.Logger),
		middleware.CORS(cfg.CORSOrigins),
		middleware.I18N(cfg.DefaultLocale, lookup),
	)

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/sessions", app.SessionCreate)
		r.Get("/sessions/state", app.SessionState)
		r.Post("/sessions/reset", app.SessionReset)

		r.Post("/images/{slot}", app.ImageUpload)
		r.Delete("/images/{slot}", app.ImageClear)

		r.Route("/prompts", func(r chi.Router) {
			r.Post("/questions", app.QuestionsGenerate)
			r.Post("/answers", app.AnswerUpdate)
			r.Post("/enhance", app.PromptEnhance)
			r.Post("/describe", app.PromptDescribe)
			r.Post("/magic", app.PromptMagic)
			r.Post("/copy-image", app.PromptCopyImage)
			r.Post("/style-influence", app.PromptStyleInfluence)
			r.Post("/refine", app.PromptRefine)
			r.Post("/edit", app.EditSet)
			r.Delete("/edit", app.EditClear)
		})
	})

	return r
}
