package app

import (
	"context"
	"sort"
	"sync"

	"goodfood/internal/domain"
)

// ---- fakes ----

type fakeStore struct {
	mu       sync.Mutex
	places   map[int64]domain.Place
	writes   int
	failIDs  map[int64]error
	realtime bool
	subs     map[int]func([]domain.Place)
	nextSub  int
}

func newFakeStore(realtime bool, seed ...domain.Place) *fakeStore {
	s := &fakeStore{
		places:   map[int64]domain.Place{},
		failIDs:  map[int64]error{},
		realtime: realtime,
		subs:     map[int]func([]domain.Place){},
	}
	for _, p := range seed {
		s.places[p.ID] = p
	}
	return s
}

func (s *fakeStore) snapshot() []domain.Place {
	out := make([]domain.Place, 0, len(s.places))
	for _, p := range s.places {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *fakeStore) ReadAll(ctx context.Context) ([]domain.Place, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(), nil
}

func (s *fakeStore) Write(ctx context.Context, p domain.Place) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failIDs[p.ID]; err != nil {
		return err
	}
	s.places[p.ID] = p
	s.writes++
	return nil
}

func (s *fakeStore) Patch(ctx context.Context, id int64, pp domain.PlacePatch) (domain.Place, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.places[id]
	if !ok {
		return domain.Place{}, domain.ErrNotFound
	}
	pp.Apply(&p)
	s.places[id] = p
	return p, nil
}

func (s *fakeStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.places[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.places, id)
	return nil
}

func (s *fakeStore) ReplaceAll(ctx context.Context, ps []domain.Place) error {
	if s.realtime {
		return domain.ErrRemoteImport
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.places = map[int64]domain.Place{}
	for _, p := range ps {
		s.places[p.ID] = p
	}
	return nil
}

func (s *fakeStore) Subscribe(fn func([]domain.Place)) (func(), error) {
	if !s.realtime {
		return func() {}, nil
	}
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}, nil
}

func (s *fakeStore) Realtime() bool { return s.realtime }

// push delivers the current record set to every live subscriber, simulating
// the remote backend's change notification.
func (s *fakeStore) push() {
	s.mu.Lock()
	snap := s.snapshot()
	fns := make([]func([]domain.Place), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(snap)
	}
}

func (s *fakeStore) writeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

type fakePostStore struct {
	mu      sync.Mutex
	posts   []domain.Post
	failAdd error
}

func (s *fakePostStore) List(ctx context.Context) ([]domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Post, len(s.posts))
	copy(out, s.posts)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *fakePostStore) Add(ctx context.Context, p domain.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAdd != nil {
		return s.failAdd
	}
	s.posts = append(s.posts, p)
	return nil
}

func (s *fakePostStore) Reply(ctx context.Context, id string, reply string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == id {
			s.posts[i].Reply = reply
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *fakePostStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// ---- helpers ----

func seedPlace(id int64, name, cuisine string) domain.Place {
	return domain.Place{
		ID:         id,
		Name:       name,
		Location:   "Sydney CBD",
		Region:     "NSW",
		Cuisine:    cuisine,
		PriceTier:  "$$",
		UserPhotos: []string{},
	}
}

func pstr(s string) *string { return &s }
