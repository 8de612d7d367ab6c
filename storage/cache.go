package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"tasks-api/domain"
)

const listCacheKey = "tasks:all"

type backend interface {
	ListTasks(ctx context.Context) ([]domain.Task, error)
	GetTask(ctx context.Context, id int64) (*domain.Task, error)
	CreateTask(ctx context.Context, title string, completed bool) (domain.Task, error)
	UpdateTask(ctx context.Context, id int64, upd domain.TaskUpdate) (*domain.Task, error)
	DeleteTask(ctx context.Context, id int64) (bool, error)
}

// Cache wraps a task store with Redis-backed caching for the list read path.
// Every mutation evicts the cached list so readers never observe a stale
// collection for longer than one round trip.
type Cache struct {
	base  backend
	redis *redis.Client
	ttl   time.Duration
}

// NewCache creates a caching wrapper using the provided Redis client and TTL.
func NewCache(base backend, client *redis.Client, ttl time.Duration) *Cache {
	if base == nil {
		panic("storage.NewCache: base storage is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	return &Cache{base: base, redis: client, ttl: ttl}
}

func (c *Cache) ListTasks(ctx context.Context) ([]domain.Task, error) {
	if tasks, ok := c.loadFromCache(ctx); ok {
		return tasks, nil
	}

	tasks, err := c.base.ListTasks(ctx)
	if err != nil {
		return nil, err
	}

	c.store(ctx, tasks)
	return tasks, nil
}

func (c *Cache) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	return c.base.GetTask(ctx, id)
}

func (c *Cache) CreateTask(ctx context.Context, title string, completed bool) (domain.Task, error) {
	task, err := c.base.CreateTask(ctx, title, completed)
	if err != nil {
		return domain.Task{}, err
	}
	c.evict(ctx)
	return task, nil
}

func (c *Cache) UpdateTask(ctx context.Context, id int64, upd domain.TaskUpdate) (*domain.Task, error) {
	task, err := c.base.UpdateTask(ctx, id, upd)
	if err != nil || task == nil {
		return task, err
	}
	c.evict(ctx)
	return task, nil
}

func (c *Cache) DeleteTask(ctx context.Context, id int64) (bool, error) {
	deleted, err := c.base.DeleteTask(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}
	c.evict(ctx)
	return true, nil
}

func (c *Cache) loadFromCache(ctx context.Context) ([]domain.Task, bool) {
	if c.redis == nil {
		return nil, false
	}
	data, err := c.redis.Get(ctx, listCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			// On redis errors fall back to the backing storage without failing.
			_ = c.redis.Del(ctx, listCacheKey).Err()
		}
		return nil, false
	}
	var tasks []domain.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		_ = c.redis.Del(ctx, listCacheKey).Err()
		return nil, false
	}
	return tasks, true
}

func (c *Cache) store(ctx context.Context, tasks []domain.Task) {
	if c.redis == nil || c.ttl == 0 {
		return
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, listCacheKey, data, c.ttl).Err()
}

func (c *Cache) evict(ctx context.Context) {
	if c.redis == nil {
		return
	}
	_, _ = c.redis.Del(ctx, listCacheKey).Result()
}
