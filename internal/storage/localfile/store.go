// Package localfile is the offline backend: one versioned file slot holding a
// serialized snapshot of the whole collection. Every mutation is a
// read-modify-write of the entire slot. When the Place shape changes
// incompatibly the slot name bumps; data under an old name is left alone.
package localfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"goodfood/internal/adapters/observability"
	"goodfood/internal/domain"
)

const placesSlot = "places.v2.json"

type PlaceStore struct {
	mu   sync.Mutex
	path string
}

func NewPlaceStore(dataDir string) *PlaceStore {
	return &PlaceStore{path: filepath.Join(dataDir, placesSlot)}
}

func (s *PlaceStore) ReadAll(ctx context.Context) ([]domain.Place, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ps, err := s.load()
	observability.ObserveStore("file", "read_all", err)
	return ps, err
}

func (s *PlaceStore) Write(ctx context.Context, p domain.Place) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ps, err := s.load()
	if err == nil {
		replaced := false
		for i := range ps {
			if ps[i].ID == p.ID {
				ps[i] = p
				replaced = true
				break
			}
		}
		if !replaced {
			ps = append(ps, p)
		}
		err = s.save(ps)
	}
	observability.ObserveStore("file", "write", err)
	return err
}

func (s *PlaceStore) Patch(ctx context.Context, id int64, pp domain.PlacePatch) (domain.Place, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ps, err := s.load()
	if err != nil {
		observability.ObserveStore("file", "patch", err)
		return domain.Place{}, err
	}
	for i := range ps {
		if ps[i].ID == id {
			pp.Apply(&ps[i])
			err = s.save(ps)
			observability.ObserveStore("file", "patch", err)
			if err != nil {
				return domain.Place{}, err
			}
			return ps[i], nil
		}
	}
	observability.ObserveStore("file", "patch", domain.ErrNotFound)
	return domain.Place{}, domain.ErrNotFound
}

func (s *PlaceStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ps, err := s.load()
	if err != nil {
		observability.ObserveStore("file", "delete", err)
		return err
	}
	kept := ps[:0]
	found := false
	for _, p := range ps {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		observability.ObserveStore("file", "delete", domain.ErrNotFound)
		return domain.ErrNotFound
	}
	err = s.save(kept)
	observability.ObserveStore("file", "delete", err)
	return err
}

func (s *PlaceStore) ReplaceAll(ctx context.Context, ps []domain.Place) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.save(ps)
	observability.ObserveStore("file", "replace_all", err)
	return err
}

// Subscribe is a no-op: the local slot is loaded once at startup and every
// later change flows through the caller's own mutations.
func (s *PlaceStore) Subscribe(fn func([]domain.Place)) (func(), error) {
	return func() {}, nil
}

func (s *PlaceStore) Realtime() bool { return false }

// load reads the slot. A missing file is an empty collection, not an error.
func (s *PlaceStore) load() ([]domain.Place, error) {
	b, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %s: %w", s.path, err)
	}
	var ps []domain.Place
	if err := json.Unmarshal(b, &ps); err != nil {
		return nil, fmt.Errorf("decode slot %s: %w", s.path, err)
	}
	sort.Slice(ps, func(i, j int) bool { return ps[i].ID < ps[j].ID })
	return ps, nil
}

// save rewrites the slot atomically: marshal, write a temp file alongside,
// rename over the slot.
func (s *PlaceStore) save(ps []domain.Place) error {
	if ps == nil {
		ps = []domain.Place{}
	}
	sort.Slice(ps, func(i, j int) bool { return ps[i].ID < ps[j].ID })
	b, err := json.MarshalIndent(ps, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(s.path, b)
}

func writeAtomic(path string, b []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".slot-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
