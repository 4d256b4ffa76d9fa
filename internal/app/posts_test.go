package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"goodfood/internal/domain"
)

func newTestPostService(store domain.PostStore) *PostService {
	s := NewPostService(store)
	id := 0
	s.newID = func() string {
		id++
		return string(rune('a' + id - 1))
	}
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		base = base.Add(time.Minute)
		return base
	}
	return s
}

func TestPosts_AddValidation(t *testing.T) {
	s := newTestPostService(&fakePostStore{})

	if _, err := s.Add(context.Background(), PostDraft{Content: "  ", Type: domain.PostChat}); !errors.Is(err, domain.ErrBadPost) {
		t.Fatalf("blank content: err = %v, want ErrBadPost", err)
	}
	if _, err := s.Add(context.Background(), PostDraft{Content: "hi", Type: "rant"}); !errors.Is(err, domain.ErrBadPost) {
		t.Fatalf("unknown type: err = %v, want ErrBadPost", err)
	}
	p, err := s.Add(context.Background(), PostDraft{Content: "found a bug", Type: domain.PostBug})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if p.ID == "" || p.CreatedAt.IsZero() {
		t.Fatalf("post not stamped: %+v", p)
	}
}

func TestPosts_StoreFailureIsNotValidation(t *testing.T) {
	s := newTestPostService(&fakePostStore{failAdd: errors.New("connection reset")})

	_, err := s.Add(context.Background(), PostDraft{Content: "valid post", Type: domain.PostChat})
	if err == nil {
		t.Fatal("store failure swallowed")
	}
	if errors.Is(err, domain.ErrBadPost) {
		t.Fatalf("store failure mislabeled as validation: %v", err)
	}
}

func TestPosts_ListNewestFirst(t *testing.T) {
	s := newTestPostService(&fakePostStore{})

	for _, c := range []string{"first", "second", "third"} {
		if _, err := s.Add(context.Background(), PostDraft{Content: c, Type: domain.PostChat}); err != nil {
			t.Fatalf("add %s: %v", c, err)
		}
	}
	ps, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ps) != 3 || ps[0].Content != "third" || ps[2].Content != "first" {
		t.Fatalf("unexpected order: %+v", ps)
	}
}

func TestPosts_AdminGate(t *testing.T) {
	store := &fakePostStore{}
	s := newTestPostService(store)

	p, err := s.Add(context.Background(), PostDraft{Content: "please add dark mode", Type: domain.PostAdvice})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := s.Reply(context.Background(), domain.Session{}, p.ID, "soon"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("non-admin reply: err = %v, want ErrForbidden", err)
	}
	if err := s.Reply(context.Background(), domain.Session{Admin: true}, p.ID, "soon"); err != nil {
		t.Fatalf("admin reply: %v", err)
	}
	ps, _ := s.List(context.Background())
	if ps[0].Reply != "soon" {
		t.Fatalf("reply not stored: %+v", ps[0])
	}

	if err := s.Delete(context.Background(), domain.Session{}, p.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("non-admin delete: err = %v, want ErrForbidden", err)
	}
	if err := s.Delete(context.Background(), domain.Session{Admin: true}, p.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if err := s.Reply(context.Background(), domain.Session{Admin: true}, p.ID, "x"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("reply to deleted post: err = %v, want ErrNotFound", err)
	}
}
