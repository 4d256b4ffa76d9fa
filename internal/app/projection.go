package app

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"

	"goodfood/internal/domain"
)

// Projection is the canonical in-memory Place collection the presentation
// layer reads. In local mode it is loaded once and kept current by the
// gateway's own mutations; in remote mode it is driven by the backend's push
// notifications, so the backend stays the source of truth.
type Projection struct {
	store domain.PlaceStore
	rec   *Reconciler

	mu     sync.RWMutex
	places []domain.Place
	stats  domain.Stats

	unsub func()
}

func NewProjection(store domain.PlaceStore, rec *Reconciler) *Projection {
	return &Projection{store: store, rec: rec}
}

// Start subscribes for pushed snapshots, then loads the current record set,
// reconciles the baseline catalog into it and installs the result. The
// subscription is registered before the first read so a change published
// during startup is never missed; its deliveries are held back until the
// initial install and replayed from a fresh read afterwards. The emptiness
// check completes before any conditional seed write is issued; each pushed
// snapshot re-runs the same idempotent pass.
func (p *Projection) Start(ctx context.Context) error {
	var (
		startMu sync.Mutex
		started bool
		pending bool
	)
	unsub, err := p.store.Subscribe(func(snapshot []domain.Place) {
		startMu.Lock()
		if !started {
			pending = true
			startMu.Unlock()
			return
		}
		startMu.Unlock()
		p.refresh(ctx, snapshot)
	})
	if err != nil {
		return err
	}
	p.unsub = unsub

	current, err := p.store.ReadAll(ctx)
	if err != nil {
		p.Close()
		return err
	}

	seeded, recErr := p.rec.Reconcile(ctx, current)
	if recErr != nil {
		// Background seeding is retried on the next pass; do not fail startup.
		log.Warn().Err(recErr).Msg("baseline reconciliation incomplete")
	}
	if seeded > 0 {
		if refreshed, err := p.store.ReadAll(ctx); err == nil {
			current = refreshed
		} else {
			log.Warn().Err(err).Msg("re-read after seeding failed, serving pre-seed snapshot")
		}
	}
	p.install(current)

	startMu.Lock()
	started = true
	replay := pending
	startMu.Unlock()
	if replay {
		if snapshot, err := p.store.ReadAll(ctx); err == nil {
			p.refresh(ctx, snapshot)
		} else {
			log.Warn().Err(err).Msg("replay of startup change event failed")
		}
	}
	return nil
}

// refresh runs the idempotent reconcile pass over a pushed snapshot and
// installs it.
func (p *Projection) refresh(ctx context.Context, snapshot []domain.Place) {
	if _, err := p.rec.Reconcile(ctx, snapshot); err != nil {
		log.Warn().Err(err).Msg("snapshot reconciliation incomplete")
	}
	p.install(snapshot)
}

// Close tears down the backend subscription. Must be called when the
// consumer goes away so no listener leaks.
func (p *Projection) Close() {
	if p.unsub != nil {
		p.unsub()
		p.unsub = nil
	}
}

// Places returns a copy of the current collection, sorted by id.
func (p *Projection) Places() []domain.Place {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]domain.Place, len(p.places))
	copy(out, p.places)
	return out
}

func (p *Projection) Stats() domain.Stats {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.stats
}

func (p *Projection) Get(id int64) (domain.Place, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, pl := range p.places {
		if pl.ID == id {
			return pl, true
		}
	}
	return domain.Place{}, false
}

func (p *Projection) install(ps []domain.Place) {
	sorted := make([]domain.Place, len(ps))
	copy(sorted, ps)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	p.mu.Lock()
	p.places = sorted
	p.stats = ComputeStats(sorted)
	p.mu.Unlock()
}

// upsert merges one record into the projection (optimistic patch after a
// confirmed backend write). Baseline ids are small and custom ids are
// timestamps, so insertion keeps id order with a simple sort.
func (p *Projection) upsert(pl domain.Place) {
	p.mu.Lock()
	defer p.mu.Unlock()
	replaced := false
	for i := range p.places {
		if p.places[i].ID == pl.ID {
			p.places[i] = pl
			replaced = true
			break
		}
	}
	if !replaced {
		p.places = append(p.places, pl)
		sort.Slice(p.places, func(i, j int) bool { return p.places[i].ID < p.places[j].ID })
	}
	p.stats = ComputeStats(p.places)
}

func (p *Projection) remove(id int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	kept := p.places[:0]
	for _, pl := range p.places {
		if pl.ID != id {
			kept = append(kept, pl)
		}
	}
	p.places = kept
	p.stats = ComputeStats(p.places)
}

func (p *Projection) replace(ps []domain.Place) {
	p.install(ps)
}
