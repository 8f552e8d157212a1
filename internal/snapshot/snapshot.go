// Package snapshot keeps a durable copy of the user directory in its own
// slot. The directory store stays the single owner of the data: the cache
// hydrates it on mount and writes every later change through.
package snapshot

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/dmitrijs2005/rbacdash/internal/collatex"
	"github.com/dmitrijs2005/rbacdash/internal/directory"
	"github.com/dmitrijs2005/rbacdash/internal/logging"
	"github.com/dmitrijs2005/rbacdash/internal/models"
	"github.com/dmitrijs2005/rbacdash/internal/storage/kv"
)

const DefaultKey = "users"

// Source is the part of the directory store the cache depends on.
type Source interface {
	Users() []models.User
	ReplaceUsers(ctx context.Context, users []models.User)
	Subscribe(fn directory.Listener)
}

type Cache struct {
	slots  kv.Repository
	source Source
	logger logging.Logger
	key    string
	locale string

	once sync.Once
}

type Option func(*Cache)

func WithKey(key string) Option {
	return func(c *Cache) { c.key = key }
}

// WithLocale sets the locale used to order the initial snapshot.
func WithLocale(locale string) Option {
	return func(c *Cache) { c.locale = locale }
}

func New(slots kv.Repository, source Source, logger logging.Logger, opts ...Option) *Cache {
	c := &Cache{
		slots:  slots,
		source: source,
		logger: logger.With("component", "snapshot"),
		key:    DefaultKey,
		locale: collatex.DefaultLocale,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Mount reconciles the slot with the store and starts writing changes
// through. A parseable snapshot replaces the store's users; otherwise the
// store's users, sorted by name, become the snapshot. Either way a restored
// session whose record is gone is cleared. Only the first call does
// anything.
func (c *Cache) Mount(ctx context.Context) {
	c.once.Do(func() {
		if users, ok := c.Load(ctx); ok {
			c.source.ReplaceUsers(ctx, users)
			c.logger.Info(ctx, "directory hydrated from snapshot", "key", c.key, "users", len(users))
		} else {
			current := c.source.Users()
			// reconciles a restored session; store order is kept
			c.source.ReplaceUsers(ctx, current)
			users := collatex.SortedUsers(current, c.locale)
			c.write(ctx, users)
			c.logger.Info(ctx, "snapshot initialised from directory", "key", c.key, "users", len(users))
		}

		c.source.Subscribe(func(ctx context.Context, users []models.User) {
			c.write(ctx, users)
		})
	})
}

// Load reads and decodes the snapshot slot. It reports false when the slot
// is missing, unreadable or unparsable.
func (c *Cache) Load(ctx context.Context) ([]models.User, bool) {
	data, err := c.slots.Get(ctx, c.key)
	if err != nil {
		c.logger.Error(ctx, "failed to read snapshot", "key", c.key, "error", err)
		return nil, false
	}
	if data == nil {
		return nil, false
	}

	var users []models.User
	if err := json.Unmarshal(data, &users); err != nil {
		c.logger.Warn(ctx, "ignoring unparsable snapshot", "key", c.key, "error", err)
		return nil, false
	}
	// "null" decodes to a nil slice
	if users == nil {
		return nil, false
	}
	return users, true
}

func (c *Cache) Key() string {
	return c.key
}

func (c *Cache) write(ctx context.Context, users []models.User) {
	if users == nil {
		users = []models.User{}
	}
	data, err := json.Marshal(users)
	if err != nil {
		c.logger.Error(ctx, "failed to encode snapshot", "error", err)
		return
	}
	if err := c.slots.Set(ctx, c.key, data); err != nil {
		c.logger.Error(ctx, "failed to write snapshot", "key", c.key, "error", err)
	}
}
