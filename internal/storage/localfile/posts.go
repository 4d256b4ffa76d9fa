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

const postsSlot = "posts.v1.json"

type PostStore struct {
	mu   sync.Mutex
	path string
}

func NewPostStore(dataDir string) *PostStore {
	return &PostStore{path: filepath.Join(dataDir, postsSlot)}
}

func (s *PostStore) List(ctx context.Context) ([]domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ps, err := s.load()
	observability.ObserveStore("file", "posts_list", err)
	return ps, err
}

func (s *PostStore) Add(ctx context.Context, p domain.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ps, err := s.load()
	if err == nil {
		ps = append(ps, p)
		err = s.save(ps)
	}
	observability.ObserveStore("file", "posts_add", err)
	return err
}

func (s *PostStore) Reply(ctx context.Context, id string, reply string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ps, err := s.load()
	if err != nil {
		observability.ObserveStore("file", "posts_reply", err)
		return err
	}
	for i := range ps {
		if ps[i].ID == id {
			ps[i].Reply = reply
			err = s.save(ps)
			observability.ObserveStore("file", "posts_reply", err)
			return err
		}
	}
	observability.ObserveStore("file", "posts_reply", domain.ErrNotFound)
	return domain.ErrNotFound
}

func (s *PostStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ps, err := s.load()
	if err != nil {
		observability.ObserveStore("file", "posts_delete", err)
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
		observability.ObserveStore("file", "posts_delete", domain.ErrNotFound)
		return domain.ErrNotFound
	}
	err = s.save(kept)
	observability.ObserveStore("file", "posts_delete", err)
	return err
}

func (s *PostStore) load() ([]domain.Post, error) {
	b, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %s: %w", s.path, err)
	}
	var ps []domain.Post
	if err := json.Unmarshal(b, &ps); err != nil {
		return nil, fmt.Errorf("decode slot %s: %w", s.path, err)
	}
	sortPosts(ps)
	return ps, nil
}

func (s *PostStore) save(ps []domain.Post) error {
	if ps == nil {
		ps = []domain.Post{}
	}
	sortPosts(ps)
	b, err := json.MarshalIndent(ps, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(s.path, b)
}

// newest first; id breaks ties so ordering is stable across loads
func sortPosts(ps []domain.Post) {
	sort.Slice(ps, func(i, j int) bool {
		if !ps[i].CreatedAt.Equal(ps[j].CreatedAt) {
			return ps[i].CreatedAt.After(ps[j].CreatedAt)
		}
		return ps[i].ID < ps[j].ID
	})
}
