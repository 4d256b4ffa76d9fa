package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"goodfood/internal/domain"
)

// PostService runs the feedback/changelog board on the selected backend.
// Anyone may post; only an admin replies or deletes.
type PostService struct {
	store domain.PostStore
	now   func() time.Time
	newID func() string
}

func NewPostService(store domain.PostStore) *PostService {
	return &PostService{store: store, now: time.Now, newID: uuid.NewString}
}

type PostDraft struct {
	Content string `json:"content"`
	Type    string `json:"type"`
	Version string `json:"version"`
	Image   string `json:"image"`
}

func (s *PostService) Add(ctx context.Context, d PostDraft) (domain.Post, error) {
	if strings.TrimSpace(d.Content) == "" {
		return domain.Post{}, fmt.Errorf("%w: content is required", domain.ErrBadPost)
	}
	if !domain.ValidPostType(d.Type) {
		return domain.Post{}, fmt.Errorf("%w: unknown type %q", domain.ErrBadPost, d.Type)
	}
	p := domain.Post{
		ID:        s.newID(),
		Content:   strings.TrimSpace(d.Content),
		Type:      d.Type,
		Version:   d.Version,
		Image:     d.Image,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.Add(ctx, p); err != nil {
		return domain.Post{}, fmt.Errorf("add post: %w", err)
	}
	return p, nil
}

func (s *PostService) List(ctx context.Context) ([]domain.Post, error) {
	return s.store.List(ctx)
}

func (s *PostService) Reply(ctx context.Context, sess domain.Session, id, reply string) error {
	if !sess.Admin {
		return domain.ErrForbidden
	}
	if err := s.store.Reply(ctx, id, reply); err != nil {
		return fmt.Errorf("reply to %s: %w", id, err)
	}
	return nil
}

func (s *PostService) Delete(ctx context.Context, sess domain.Session, id string) error {
	if !sess.Admin {
		return domain.ErrForbidden
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete post %s: %w", id, err)
	}
	return nil
}
