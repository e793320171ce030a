// Package cache keeps assembled board views in Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	"github.com/alexanderramin/kanban/internal/domain"
)

const (
	viewPrefix = "kanban:board:view:"
	genPrefix  = "kanban:board:gen:"
	epochKey   = "kanban:board:epoch"
)

// errStaleView aborts a Set whose board was invalidated after the caller
// read its generation.
var errStaleView = errors.New("board invalidated since load")

// BoardCache stores board views as JSON under kanban:board:view:<id> with a
// TTL. Every board also has a generation counter, bumped on invalidation,
// so a view loaded before a write can never be stored after it.
type BoardCache struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewBoardCache creates a cache over client. A non-positive ttl disables
// writes, which turns every read into a miss.
func NewBoardCache(client *redis.Client, ttl time.Duration) *BoardCache {
	if ttl < 0 {
		ttl = 0
	}
	return &BoardCache{redis: client, ttl: ttl}
}

func boardKey(boardID string) string {
	return viewPrefix + boardID
}

func genKey(boardID string) string {
	return genPrefix + boardID
}

type mgetter interface {
	MGet(ctx context.Context, keys ...string) *redis.SliceCmd
}

// Generation returns the token a later Set must present. It changes when
// the board, or every board, is invalidated.
func (c *BoardCache) Generation(ctx context.Context, boardID string) (string, error) {
	gen, err := generation(ctx, c.redis, boardID)
	if err != nil {
		return "", fmt.Errorf("reading generation of board %s: %w", boardID, err)
	}
	return gen, nil
}

func generation(ctx context.Context, r mgetter, boardID string) (string, error) {
	vals, err := r.MGet(ctx, epochKey, genKey(boardID)).Result()
	if err != nil {
		return "", err
	}
	counter := func(v any) string {
		if s, ok := v.(string); ok {
			return s
		}
		return "0"
	}
	return counter(vals[0]) + ":" + counter(vals[1]), nil
}

func (c *BoardCache) Get(ctx context.Context, boardID string) (*domain.BoardView, bool, error) {
	data, err := c.redis.Get(ctx, boardKey(boardID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cached board %s: %w", boardID, err)
	}

	var view domain.BoardView
	if err := sonic.Unmarshal(data, &view); err != nil {
		// A payload we cannot decode is dropped and treated as a miss.
		_ = c.redis.Del(ctx, boardKey(boardID)).Err()
		return nil, false, nil
	}
	return &view, true, nil
}

// Set stores view if its board is still at generation gen. A view that
// lost the race against an invalidation is dropped without error.
func (c *BoardCache) Set(ctx context.Context, view *domain.BoardView, gen string) error {
	if c.ttl == 0 {
		return nil
	}
	data, err := sonic.Marshal(view)
	if err != nil {
		return fmt.Errorf("encoding board %s: %w", view.ID, err)
	}

	err = c.redis.Watch(ctx, func(tx *redis.Tx) error {
		current, err := generation(ctx, tx, view.ID)
		if err != nil {
			return err
		}
		if current != gen {
			return errStaleView
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, boardKey(view.ID), data, c.ttl)
			return nil
		})
		return err
	}, epochKey, genKey(view.ID))

	if err == nil || errors.Is(err, errStaleView) || errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return fmt.Errorf("caching board %s: %w", view.ID, err)
}

func (c *BoardCache) Invalidate(ctx context.Context, boardIDs ...string) error {
	if len(boardIDs) == 0 {
		return nil
	}
	_, err := c.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range boardIDs {
			pipe.Incr(ctx, genKey(id))
			pipe.Del(ctx, boardKey(id))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("evicting boards: %w", err)
	}
	return nil
}

// InvalidateAll drops every cached board view.
func (c *BoardCache) InvalidateAll(ctx context.Context) error {
	if err := c.redis.Incr(ctx, epochKey).Err(); err != nil {
		return fmt.Errorf("evicting boards: %w", err)
	}
	iter := c.redis.Scan(ctx, 0, viewPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scanning cached boards: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.redis.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("evicting boards: %w", err)
	}
	return nil
}

// Ping checks that Redis is reachable.
func (c *BoardCache) Ping(ctx context.Context) error {
	return c.redis.Ping(ctx).Err()
}
