// Package redisdoc is the remote backend: one Redis hash per collection,
// field = stringified record id, value = JSON document. Every successful
// mutation publishes on the collection's event channel, and Subscribe turns
// those events into full-snapshot pushes, so the backend stays the single
// source of truth in remote mode.
package redisdoc

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"goodfood/internal/adapters/observability"
	"goodfood/internal/domain"
)

const (
	placesKey = "goodfood:places:v2"
	postsKey  = "goodfood:posts:v1"
)

type Conn struct{ c *redis.Client }

func New(addr, pass string, db int) *Conn {
	return &Conn{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

// Ping verifies the configured remote store is reachable. A failure here is a
// fatal configuration error; there is no mid-session fallback to local mode.
func (c *Conn) Ping(ctx context.Context) error {
	return c.c.Ping(ctx).Err()
}

func (c *Conn) Close() error { return c.c.Close() }

func (c *Conn) Places() *PlaceStore { return &PlaceStore{c: c.c, key: placesKey} }
func (c *Conn) Posts() *PostStore   { return &PostStore{c: c.c, key: postsKey} }

type PlaceStore struct {
	c   *redis.Client
	key string
}

func (s *PlaceStore) ReadAll(ctx context.Context) ([]domain.Place, error) {
	raw, err := s.c.HGetAll(ctx, s.key).Result()
	observability.ObserveStore("redis", "read_all", err)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.key, err)
	}
	ps := make([]domain.Place, 0, len(raw))
	for field, doc := range raw {
		var p domain.Place
		if err := json.Unmarshal([]byte(doc), &p); err != nil {
			log.Warn().Str("field", field).Err(err).Msg("skipping undecodable place document")
			continue
		}
		ps = append(ps, p)
	}
	sort.Slice(ps, func(i, j int) bool { return ps[i].ID < ps[j].ID })
	return ps, nil
}

func (s *PlaceStore) Write(ctx context.Context, p domain.Place) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	err = s.c.HSet(ctx, s.key, field(p.ID), b).Err()
	observability.ObserveStore("redis", "write", err)
	if err != nil {
		return fmt.Errorf("write %s/%d: %w", s.key, p.ID, err)
	}
	s.publish(ctx)
	return nil
}

// Patch loads, applies and rewrites a single document under WATCH so a
// concurrent writer forces a retry instead of a lost update.
func (s *PlaceStore) Patch(ctx context.Context, id int64, pp domain.PlacePatch) (domain.Place, error) {
	var out domain.Place
	txn := func(tx *redis.Tx) error {
		raw, err := tx.HGet(ctx, s.key, field(id)).Bytes()
		if err == redis.Nil {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}
		var p domain.Place
		if err := json.Unmarshal(raw, &p); err != nil {
			return fmt.Errorf("decode %s/%d: %w", s.key, id, err)
		}
		pp.Apply(&p)
		b, err := json.Marshal(p)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, s.key, field(id), b)
			return nil
		})
		if err == nil {
			out = p
		}
		return err
	}

	var err error
	for i := 0; i < 3; i++ {
		err = s.c.Watch(ctx, txn, s.key)
		if err != redis.TxFailedErr {
			break
		}
	}
	observability.ObserveStore("redis", "patch", err)
	if err != nil {
		return domain.Place{}, err
	}
	s.publish(ctx)
	return out, nil
}

func (s *PlaceStore) Delete(ctx context.Context, id int64) error {
	n, err := s.c.HDel(ctx, s.key, field(id)).Result()
	if err == nil && n == 0 {
		err = domain.ErrNotFound
	}
	observability.ObserveStore("redis", "delete", err)
	if err != nil {
		return err
	}
	s.publish(ctx)
	return nil
}

// ReplaceAll is refused: bulk import never runs against the shared store.
func (s *PlaceStore) ReplaceAll(ctx context.Context, ps []domain.Place) error {
	return domain.ErrRemoteImport
}

// Subscribe listens on the event channel and delivers a fresh full snapshot
// to fn after every observed change. The returned func closes the pub/sub
// connection and waits for the delivery goroutine to drain.
func (s *PlaceStore) Subscribe(fn func([]domain.Place)) (func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	sub := s.c.Subscribe(ctx, s.events())
	if _, err := sub.Receive(ctx); err != nil {
		cancel()
		return nil, fmt.Errorf("subscribe %s: %w", s.events(), err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range sub.Channel() {
			ps, err := s.ReadAll(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("snapshot reload after change event failed")
				continue
			}
			fn(ps)
		}
	}()

	return func() {
		_ = sub.Close()
		cancel()
		<-done
	}, nil
}

func (s *PlaceStore) Realtime() bool { return true }

func (s *PlaceStore) events() string { return s.key + ":events" }

// publish is best-effort; a lost event only delays the next snapshot until
// the following mutation.
func (s *PlaceStore) publish(ctx context.Context) {
	if err := s.c.Publish(ctx, s.events(), "changed").Err(); err != nil {
		log.Warn().Err(err).Msg("change event publish failed")
	}
}

func field(id int64) string { return strconv.FormatInt(id, 10) }
