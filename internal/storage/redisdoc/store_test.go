package redisdoc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"goodfood/internal/domain"
)

func newTestConn(t *testing.T) *Conn {
	t.Helper()
	mr := miniredis.RunT(t)
	c := New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
	return c
}

func place(id int64, name string) domain.Place {
	return domain.Place{
		ID:         id,
		Name:       name,
		Location:   "Sydney CBD",
		Region:     "NSW",
		Cuisine:    "Modern Australian",
		PriceTier:  "$$",
		UserPhotos: []string{},
	}
}

func TestPlaceStore_WriteReadAll(t *testing.T) {
	s := newTestConn(t).Places()
	ctx := context.Background()

	for _, p := range []domain.Place{place(2, "Quay"), place(1, "Bennelong")} {
		if err := s.Write(ctx, p); err != nil {
			t.Fatalf("write %d: %v", p.ID, err)
		}
	}

	ps, err := s.ReadAll(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(ps) != 2 || ps[0].ID != 1 || ps[1].ID != 2 {
		t.Fatalf("unexpected records: %+v", ps)
	}
}

func TestPlaceStore_Patch(t *testing.T) {
	s := newTestConn(t).Places()
	ctx := context.Background()

	if err := s.Write(ctx, place(1, "Bennelong")); err != nil {
		t.Fatalf("write: %v", err)
	}

	p, err := s.Patch(ctx, 1, domain.PlacePatch{
		CheckIn: &domain.CheckIn{Rating: 4, Price: "80", Notes: "great duck"},
		Date:    "2026-03-01",
	})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if !p.Visited || p.VisitedDate == nil || *p.VisitedDate != "2026-03-01" {
		t.Fatalf("patch not applied: %+v", p)
	}

	// a second patch keeps the first visit date
	p, err = s.Patch(ctx, 1, domain.PlacePatch{
		CheckIn: &domain.CheckIn{Rating: 5, Price: "95"},
		Date:    "2026-04-20",
	})
	if err != nil {
		t.Fatalf("second patch: %v", err)
	}
	if *p.VisitedDate != "2026-03-01" || p.UserPrice != "95" {
		t.Fatalf("unexpected second patch result: %+v", p)
	}

	if _, err := s.Patch(ctx, 99, domain.PlacePatch{CheckIn: &domain.CheckIn{Rating: 1}}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("patch missing id: err = %v, want ErrNotFound", err)
	}
}

func TestPlaceStore_Delete(t *testing.T) {
	s := newTestConn(t).Places()
	ctx := context.Background()

	if err := s.Write(ctx, place(1, "Bennelong")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := s.Delete(ctx, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, 1); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("double delete: err = %v, want ErrNotFound", err)
	}
}

func TestPlaceStore_ReplaceAllRefused(t *testing.T) {
	s := newTestConn(t).Places()
	if err := s.ReplaceAll(context.Background(), []domain.Place{place(1, "X")}); !errors.Is(err, domain.ErrRemoteImport) {
		t.Fatalf("err = %v, want ErrRemoteImport", err)
	}
}

func TestPlaceStore_SubscribeDeliversSnapshots(t *testing.T) {
	s := newTestConn(t).Places()
	ctx := context.Background()

	got := make(chan []domain.Place, 4)
	unsub, err := s.Subscribe(func(ps []domain.Place) { got <- ps })
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer unsub()

	if err := s.Write(ctx, place(1, "Bennelong")); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case ps := <-got:
		if len(ps) != 1 || ps[0].Name != "Bennelong" {
			t.Fatalf("unexpected snapshot: %+v", ps)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot delivered after write")
	}
}

func TestPlaceStore_UnsubscribeStopsDelivery(t *testing.T) {
	s := newTestConn(t).Places()
	ctx := context.Background()

	got := make(chan []domain.Place, 4)
	unsub, err := s.Subscribe(func(ps []domain.Place) { got <- ps })
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	unsub()

	if err := s.Write(ctx, place(1, "Bennelong")); err != nil {
		t.Fatalf("write: %v", err)
	}
	select {
	case ps := <-got:
		t.Fatalf("snapshot delivered after unsubscribe: %+v", ps)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestPostStore_Roundtrip(t *testing.T) {
	s := newTestConn(t).Posts()
	ctx := context.Background()

	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	posts := []domain.Post{
		{ID: "a", Content: "first", Type: domain.PostChat, CreatedAt: base},
		{ID: "b", Content: "second", Type: domain.PostBug, CreatedAt: base.Add(time.Hour)},
	}
	for _, p := range posts {
		if err := s.Add(ctx, p); err != nil {
			t.Fatalf("add %s: %v", p.ID, err)
		}
	}

	got, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ID != "b" {
		t.Fatalf("posts not newest-first: %+v", got)
	}

	if err := s.Reply(ctx, "a", "on it"); err != nil {
		t.Fatalf("reply: %v", err)
	}
	if err := s.Reply(ctx, "zzz", "x"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("reply missing id: err = %v, want ErrNotFound", err)
	}

	if err := s.Delete(ctx, "b"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, "b"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("double delete: err = %v, want ErrNotFound", err)
	}
	got, _ = s.List(ctx)
	if len(got) != 1 || got[0].Reply != "on it" {
		t.Fatalf("unexpected final board: %+v", got)
	}
}
