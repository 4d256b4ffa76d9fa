package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	server "goodfood/internal/adapters/http_server"
	"goodfood/internal/adapters/observability"
	"goodfood/internal/app"
	"goodfood/internal/catalog"
	"goodfood/internal/shared"
	"goodfood/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found")
	}
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	ctx := context.Background()

	// backend: selected once, never switched mid-session
	be, err := storage.Select(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("storage backend selection failed")
	}
	defer func() { _ = be.Close() }()
	log.Info().Str("backend", be.Name).Msg("storage backend selected")

	rec := app.NewReconciler(be.Places, catalog.Places(), cfg.Workers)
	proj := app.NewProjection(be.Places, rec)
	if err := proj.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("projection start failed")
	}
	defer proj.Close()
	log.Info().Int("places", len(proj.Places())).Msg("projection ready")

	gw := app.NewGateway(be.Places, proj)
	posts := app.NewPostService(be.Posts)

	// http
	srv := server.New(cfg.WriteRPS)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Proj:      proj,
		Gw:        gw,
		Posts:     posts,
		AdminUser: cfg.AdminUser,
		AdminPass: cfg.AdminPass,
	})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// graceful shutdown so the backend subscription is torn down cleanly
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	<-sigCh

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown failed")
	}
	log.Info().Msg("shutdown complete")
}
