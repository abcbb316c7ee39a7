package source

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/ukaji3/acedash-go/pkg/acedash"
	"github.com/ukaji3/acedash-go/pkg/acedash/cache"
	"github.com/ukaji3/acedash-go/pkg/acedash/models"
)

// Cached decorates a provider with a TTL cache. Only successful fetches are
// stored and concurrent misses for the same sheet share one fetch.
// Cached tables are shared between callers and must not be modified.
type Cached struct {
	next   acedash.TableProvider
	tables *cache.TTL[*models.Table]
	group  singleflight.Group
}

// NewCached wraps next. The cache's cleanup goroutine stops when ctx is
// done or Close is called.
func NewCached(ctx context.Context, next acedash.TableProvider, opts ...cache.Option) (*Cached, error) {
	tables, err := cache.New[*models.Table](ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &Cached{next: next, tables: tables}, nil
}

func cacheKey(name string) string {
	return "sheet_" + name
}

// FetchTable returns the cached table or fetches it from the wrapped provider.
// The shared fetch runs detached from any one caller's cancellation; each
// caller stops waiting when its own ctx is done.
func (c *Cached) FetchTable(ctx context.Context, name string) (*models.Table, error) {
	key := cacheKey(name)
	if t, ok := c.tables.Get(key); ok {
		return t, nil
	}

	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		if t, ok := c.tables.Get(key); ok {
			return t, nil
		}
		t, err := c.next.FetchTable(fetchCtx, name)
		if err != nil {
			return nil, err
		}
		if t != nil {
			if err := c.tables.Set(key, t); err != nil {
				return nil, err
			}
		}
		return t, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		t, _ := res.Val.(*models.Table)
		return t, nil
	}
}

// Flush drops every cached table.
func (c *Cached) Flush() {
	c.tables.Flush()
}

// Stats reports cache activity.
func (c *Cached) Stats() cache.Stats {
	return c.tables.Stats()
}

// Close stops the cache's cleanup goroutine.
func (c *Cached) Close() error {
	return c.tables.Close()
}
