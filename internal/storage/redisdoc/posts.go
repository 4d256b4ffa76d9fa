package redisdoc

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"goodfood/internal/adapters/observability"
	"goodfood/internal/domain"
)

// PostStore keeps the feedback board in a hash keyed by opaque post id.
// Posts are pull-only; no change events are published for them.
type PostStore struct {
	c   *redis.Client
	key string
}

func (s *PostStore) List(ctx context.Context) ([]domain.Post, error) {
	raw, err := s.c.HGetAll(ctx, s.key).Result()
	observability.ObserveStore("redis", "posts_list", err)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.key, err)
	}
	ps := make([]domain.Post, 0, len(raw))
	for id, doc := range raw {
		var p domain.Post
		if err := json.Unmarshal([]byte(doc), &p); err != nil {
			log.Warn().Str("id", id).Err(err).Msg("skipping undecodable post document")
			continue
		}
		ps = append(ps, p)
	}
	sort.Slice(ps, func(i, j int) bool {
		if !ps[i].CreatedAt.Equal(ps[j].CreatedAt) {
			return ps[i].CreatedAt.After(ps[j].CreatedAt)
		}
		return ps[i].ID < ps[j].ID
	})
	return ps, nil
}

func (s *PostStore) Add(ctx context.Context, p domain.Post) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	err = s.c.HSet(ctx, s.key, p.ID, b).Err()
	observability.ObserveStore("redis", "posts_add", err)
	return err
}

func (s *PostStore) Reply(ctx context.Context, id string, reply string) error {
	txn := func(tx *redis.Tx) error {
		raw, err := tx.HGet(ctx, s.key, id).Bytes()
		if err == redis.Nil {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}
		var p domain.Post
		if err := json.Unmarshal(raw, &p); err != nil {
			return fmt.Errorf("decode %s/%s: %w", s.key, id, err)
		}
		p.Reply = reply
		b, err := json.Marshal(p)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, s.key, id, b)
			return nil
		})
		return err
	}

	var err error
	for i := 0; i < 3; i++ {
		err = s.c.Watch(ctx, txn, s.key)
		if err != redis.TxFailedErr {
			break
		}
	}
	observability.ObserveStore("redis", "posts_reply", err)
	return err
}

func (s *PostStore) Delete(ctx context.Context, id string) error {
	n, err := s.c.HDel(ctx, s.key, id).Result()
	if err == nil && n == 0 {
		err = domain.ErrNotFound
	}
	observability.ObserveStore("redis", "posts_delete", err)
	return err
}
