package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"goodfood/internal/domain"
)

// Gateway translates user intents into backend operations and keeps the
// projection consistent. On any backend failure the projection is left in
// its last known-good state.
type Gateway struct {
	store domain.PlaceStore
	proj  *Projection
	now   func() time.Time
}

func NewGateway(store domain.PlaceStore, proj *Projection) *Gateway {
	return &Gateway{store: store, proj: proj, now: time.Now}
}

// CheckIn marks a place visited (or edits an earlier check-in) with the given
// user fields. The first check-in fixes VisitedDate permanently; the store
// applies that rule, so a repeat on a later day never moves the date.
func (g *Gateway) CheckIn(ctx context.Context, id int64, c domain.CheckIn) (domain.Place, error) {
	if c.Rating < 0 || c.Rating > domain.MaxRating {
		return domain.Place{}, domain.ErrInvalidRating
	}
	updated, err := g.store.Patch(ctx, id, domain.PlacePatch{
		CheckIn: &c,
		Date:    g.now().Format(domain.DateLayout),
	})
	if err != nil {
		return domain.Place{}, fmt.Errorf("check-in %d: %w", id, err)
	}
	// Optimistic merge; in remote mode the next pushed snapshot reconfirms it.
	g.proj.upsert(updated)
	return updated, nil
}

// PlaceDraft is the user-supplied part of a custom place.
type PlaceDraft struct {
	Name      string `json:"name"`
	Location  string `json:"location"`
	Region    string `json:"region"`
	Cuisine   string `json:"cuisine"`
	PriceTier string `json:"priceTier"`
}

// AddCustom mints a record for a user-added place. The id is a UnixNano
// timestamp, far above any baseline id, so the two ranges cannot collide.
func (g *Gateway) AddCustom(ctx context.Context, d PlaceDraft) (domain.Place, error) {
	if strings.TrimSpace(d.Name) == "" {
		return domain.Place{}, domain.ErrNameRequired
	}
	p := domain.Place{
		ID:         g.now().UnixNano(),
		Name:       strings.TrimSpace(d.Name),
		Location:   d.Location,
		Region:     d.Region,
		Cuisine:    d.Cuisine,
		PriceTier:  d.PriceTier,
		UserPhotos: []string{},
		IsCustom:   true,
	}
	if err := g.store.Write(ctx, p); err != nil {
		return domain.Place{}, fmt.Errorf("add custom place: %w", err)
	}
	if !g.store.Realtime() {
		g.proj.upsert(p)
	}
	return p, nil
}

// Delete removes a place. Admin only.
func (g *Gateway) Delete(ctx context.Context, s domain.Session, id int64) error {
	if !s.Admin {
		return domain.ErrForbidden
	}
	if err := g.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete %d: %w", id, err)
	}
	g.proj.remove(id)
	return nil
}

// EditDetails patches descriptive fields through the administrative path.
func (g *Gateway) EditDetails(ctx context.Context, s domain.Session, id int64, e domain.DetailsEdit) (domain.Place, error) {
	if !s.Admin {
		return domain.Place{}, domain.ErrForbidden
	}
	updated, err := g.store.Patch(ctx, id, domain.PlacePatch{Details: &e})
	if err != nil {
		return domain.Place{}, fmt.Errorf("edit %d: %w", id, err)
	}
	g.proj.upsert(updated)
	return updated, nil
}

// Import replaces the entire local collection with a well-formed list of
// Place-shaped records. Parse failure leaves state untouched; remote mode
// refuses outright.
func (g *Gateway) Import(ctx context.Context, r io.Reader) (int, error) {
	if g.store.Realtime() {
		return 0, domain.ErrRemoteImport
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("read import payload: %w", err)
	}
	var ps []domain.Place
	if err := json.Unmarshal(raw, &ps); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrBadImport, err)
	}
	for i, p := range ps {
		if p.ID == 0 || strings.TrimSpace(p.Name) == "" {
			return 0, fmt.Errorf("%w: record %d missing id or name", domain.ErrBadImport, i)
		}
	}
	if err := g.store.ReplaceAll(ctx, ps); err != nil {
		return 0, fmt.Errorf("replace collection: %w", err)
	}
	g.proj.replace(ps)
	return len(ps), nil
}

// Export writes the full collection as indented JSON, re-importable
// byte-for-byte through Import.
func (g *Gateway) Export(w io.Writer) error {
	b, err := json.MarshalIndent(g.proj.Places(), "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
