package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/almostburnout/abo/internal/services"
)

const shareTTL = 10 * time.Minute

// ShareCache wraps a ShareStore with a Redis read-through cache. Shared
// results are immutable once created, so cached entries never go stale.
// Cache failures degrade to the underlying store.
type ShareCache struct {
	next services.ShareStore
	rdb  *redis.Client
}

func NewShareCache(next services.ShareStore, rdb *redis.Client) *ShareCache {
	return &ShareCache{next: next, rdb: rdb}
}

var _ services.ShareStore = (*ShareCache)(nil)

func shareKey(id string) string { return "share:" + id }

func (c *ShareCache) AddShare(s *services.ResultShare) error {
	if err := c.next.AddShare(s); err != nil {
		return err
	}
	c.put(s)
	return nil
}

func (c *ShareCache) GetShare(id string) (*services.ResultShare, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	raw, err := c.rdb.Get(ctx, shareKey(id)).Bytes()
	if err == nil {
		var share services.ResultShare
		if jerr := json.Unmarshal(raw, &share); jerr == nil {
			return &share, nil
		}
	} else if err != redis.Nil {
		log.Printf("share cache get failed: %v", err)
	}

	share, err := c.next.GetShare(id)
	if err != nil || share == nil {
		return share, err
	}
	c.put(share)
	return share, nil
}

func (c *ShareCache) put(s *services.ResultShare) {
	raw, err := json.Marshal(s)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.rdb.Set(ctx, shareKey(s.ID), raw, shareTTL).Err(); err != nil {
		log.Printf("share cache set failed: %v", err)
	}
}
