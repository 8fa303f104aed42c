package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	dom "taskmanager/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keySearch = "task:search:"

// TaskCache caches search results in Redis.
//
// Keys are task:search:<instance>:<generation>:<query>. The instance is fresh
// for every TaskCache, so a restarted process or another replica sharing the
// same Redis never reads these entries. The generation is the store's write
// counter at the time the result was read; once the store moves on, older
// entries are never looked up again and simply expire.
type TaskCache struct {
	rdb      *redis.Client
	ttl      time.Duration
	instance string
}

// NewTaskCache returns a new TaskCache with its own key namespace.
func NewTaskCache(rdb *redis.Client, ttl time.Duration) *TaskCache {
	return &TaskCache{rdb: rdb, ttl: ttl, instance: uuid.NewString()}
}

// SearchKey returns the Redis key for the sanitized query q read at gen.
func (c *TaskCache) SearchKey(gen uint64, q string) string {
	return c.prefix() + strconv.FormatUint(gen, 10) + ":" + q
}

func (c *TaskCache) prefix() string {
	return keySearch + c.instance + ":"
}

// GetSearch returns the cached result for q at gen, or nil on a miss.
func (c *TaskCache) GetSearch(ctx context.Context, gen uint64, q string) ([]dom.Task, error) {
	b, err := c.rdb.Get(ctx, c.SearchKey(gen, q)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	list := make([]dom.Task, 0)
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetSearch stores a search result read at gen. A nil list is stored as
// empty so that it is not mistaken for a miss.
func (c *TaskCache) SetSearch(ctx context.Context, gen uint64, q string, list []dom.Task) error {
	if list == nil {
		list = []dom.Task{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.SearchKey(gen, q), b, c.ttl).Err()
}

// InvalidateAll removes every search result cached by this instance. Entries
// of other instances are left to expire.
func (c *TaskCache) InvalidateAll(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, c.prefix()+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
