// Seeder runs a single reconciliation pass against the configured backend and
// exits. Useful for pre-seeding a fresh remote collection before the first
// client connects.
package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

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
	log.Logger = observability.NewLogger(cfg.AppEnv)

	ctx := context.Background()

	be, err := storage.Select(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("storage backend selection failed")
	}
	defer func() { _ = be.Close() }()

	cat := catalog.Places()
	log.Info().
		Str("backend", be.Name).
		Int("catalog", len(cat)).
		Int("workers", cfg.Workers).
		Msg("seeder starting")

	current, err := be.Places.ReadAll(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("read current record set failed")
	}

	rec := app.NewReconciler(be.Places, cat, cfg.Workers)
	seeded, err := rec.Reconcile(ctx, current)
	if err != nil {
		log.Error().Err(err).Int("seeded", seeded).Msg("reconciliation incomplete")
		os.Exit(1)
	}
	log.Info().Int("seeded", seeded).Int("existing", len(current)).Msg("reconciliation complete")
}
