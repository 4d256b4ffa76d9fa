package app

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"goodfood/internal/adapters/observability"
	"goodfood/internal/domain"
)

// Reconciler guarantees that every baseline catalog entry eventually has a
// record in the selected backend, without ever rewriting a record that is
// already there. It runs at startup and again on every remote snapshot
// arrival, so it must be idempotent: with no new catalog entries a pass
// issues zero writes.
type Reconciler struct {
	store   domain.PlaceStore
	catalog []domain.Place
	workers int64
}

func NewReconciler(store domain.PlaceStore, catalog []domain.Place, workers int) *Reconciler {
	if workers <= 0 {
		workers = 8
	}
	return &Reconciler{store: store, catalog: catalog, workers: int64(workers)}
}

// Reconcile seeds every catalog entry missing from current. Seed writes
// target disjoint keys, so they fan out in parallel under the worker bound;
// one failed write never blocks the others, and a failure is only reported,
// not remembered — the entry is retried on the next pass.
func (r *Reconciler) Reconcile(ctx context.Context, current []domain.Place) (int, error) {
	have := make(map[int64]struct{}, len(current))
	for _, p := range current {
		have[p.ID] = struct{}{}
	}

	var missing []domain.Place
	for _, b := range r.catalog {
		if _, ok := have[b.ID]; !ok {
			missing = append(missing, b)
		}
	}
	if len(missing) == 0 {
		observability.ObserveReconcile(0, 0)
		return 0, nil
	}

	if len(current) == 0 {
		log.Info().Int("entries", len(missing)).Msg("empty backend, seeding full baseline catalog")
	} else {
		log.Info().Int("entries", len(missing)).Msg("seeding new baseline catalog entries")
	}

	sem := semaphore.NewWeighted(r.workers)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var errs []error
	seeded := 0

	for _, p := range missing {
		if err := sem.Acquire(ctx, 1); err != nil {
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
			break
		}
		wg.Add(1)
		go func(p domain.Place) {
			defer wg.Done()
			defer sem.Release(1)

			if err := r.store.Write(ctx, p); err != nil {
				log.Warn().Int64("id", p.ID).Str("name", p.Name).Err(err).Msg("seed write failed, will retry next pass")
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
				return
			}
			mu.Lock()
			seeded++
			mu.Unlock()
		}(p)
	}
	wg.Wait()

	observability.ObserveReconcile(seeded, len(errs))
	return seeded, errors.Join(errs...)
}
