package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"promptstudio/internal/http/handlers"
	"promptstudio/internal/http/httpapi"
	"promptstudio/internal/infra"
	"promptstudio/internal/infra/geoip"
	"promptstudio/internal/middleware"
	"promptstudio/internal/providers/gemini"
	"promptstudio/internal/session"
)

func main() {
	_ = godotenv.Load()

	cfg := infra.LoadConfig()
	logger := infra.NewLogger(cfg.AppEnv)

	if !cfg.Configured() {
		logger.Warn().Msg("GEMINI_API_KEY is not set; generation endpoints answer 503 until it is provided")
	}

	var lookup middleware.CountryLookup
	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip database unavailable; locale detection falls back to headers")
	} else if resolver != nil {
		lookup = resolver.CountryCode
		defer func() {
			_ = resolver.Close()
		}()
	}

	client := gemini.NewClient(gemini.Options{
		APIKey:  cfg.GeminiAPIKey,
		BaseURL: cfg.GeminiBaseURL,
		Model:   cfg.GeminiModel,
		Logger:  &logger,
	})
	generator := gemini.NewGenerator(client, logger)

	sessions := session.NewStore()
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			if n := sessions.Prune(cfg.SessionMaxIdle); n > 0 {
				logger.Debug().Int("removed", n).Int("live", sessions.Len()).Msg("pruned idle sessions")
			}
		}
	}()

	app := handlers.NewApp(cfg, logger, sessions, generator)
	router := httpapi.NewRouter(app, cfg, lookup)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Str("model", client.Model()).Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
