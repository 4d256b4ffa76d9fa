// Package storage selects the backend once per process. The decision never
// changes at runtime: a configured-but-unreachable remote store is a fatal
// configuration error, not a trigger for a silent local fallback.
package storage

import (
	"context"
	"fmt"

	"goodfood/internal/domain"
	"goodfood/internal/shared"
	"goodfood/internal/storage/localfile"
	"goodfood/internal/storage/redisdoc"
)

type Backends struct {
	Places domain.PlaceStore
	Posts  domain.PostStore

	// Name is "file" or "redis"; used for logs and metrics labels.
	Name string

	close func() error
}

// Close releases the remote connection, if any.
func (b Backends) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

func Select(ctx context.Context, cfg shared.Config) (Backends, error) {
	if cfg.RedisAddr == "" {
		return Backends{
			Places: localfile.NewPlaceStore(cfg.DataDir),
			Posts:  localfile.NewPostStore(cfg.DataDir),
			Name:   "file",
		}, nil
	}

	conn := redisdoc.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close()
		return Backends{}, fmt.Errorf("remote store configured at %s but unreachable: %w", cfg.RedisAddr, err)
	}
	return Backends{
		Places: conn.Places(),
		Posts:  conn.Posts(),
		Name:   "redis",
		close:  conn.Close,
	}, nil
}
