package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/emsdev/ems-service/internal/cache"
	"github.com/emsdev/ems-service/internal/config"
	"github.com/emsdev/ems-service/internal/domain"
	"github.com/emsdev/ems-service/internal/events"
	"github.com/emsdev/ems-service/internal/listing"
)

// Cached collection names. They double as the redis key suffix.
const (
	ResourceEmployees    = "employees"
	ResourceDepartments  = "departments"
	ResourceTasks        = "tasks"
	ResourceJobs         = "jobs"
	ResourceApplications = "applications"
	ResourcePayments     = "payments"
	ResourcePositions    = "positions"
)

// Actor identifies who is calling a service.
type Actor struct {
	UserID    string
	CompanyID string
	Role      domain.Role
}

// Collections is shared by the services that serve list endpoints: it loads a
// tenant's full collection through the cache and runs the listing pipeline on it.
type Collections struct {
	cache      cache.CollectionCache
	dispatcher events.Dispatcher
	logger     *zap.Logger
	limits     listing.Limits
}

// NewCollections builds the helper. Nil cache or dispatcher are replaced by no-ops.
func NewCollections(cfg config.ListingConfig, c cache.CollectionCache, dispatcher events.Dispatcher, logger *zap.Logger) *Collections {
	if c == nil {
		c = cache.NopCollectionCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collections{
		cache:      c,
		dispatcher: dispatcher,
		logger:     logger,
		limits:     listing.Limits{Default: cfg.DefaultPageSize, Max: cfg.MaxPageSize},
	}
}

// loadCollection returns the tenant's collection, reading through the cache.
// Cache failures fall back to load. The loaded collection is written back under the
// generation read before the load, so an invalidation in between discards it.
func loadCollection[T any](ctx context.Context, c *Collections, companyID, resource string, load func(context.Context) ([]T, error)) ([]T, error) {
	var cached []T
	hit, gen, err := c.cache.Get(ctx, companyID, resource, &cached)
	if err != nil {
		c.logger.Warn("collection cache read failed", zap.String("resource", resource), zap.Error(err))
	}
	if hit {
		return cached, nil
	}

	items, loadErr := load(ctx)
	if loadErr != nil {
		return nil, loadErr
	}
	if err != nil {
		return items, nil
	}
	if err := c.cache.Set(ctx, companyID, resource, gen, items); err != nil {
		c.logger.Warn("collection cache write failed", zap.String("resource", resource), zap.Error(err))
	}
	return items, nil
}

// list runs the pipeline over a loaded collection.
func list[T any](c *Collections, spec listing.Spec[T], q listing.Query, items []T) listing.Page[T] {
	return listing.Apply(spec, c.limits.Normalize(q), items)
}

// invalidate drops the cached collections a mutation touched.
func (c *Collections) invalidate(ctx context.Context, companyID string, resources ...string) {
	if err := c.cache.Invalidate(ctx, companyID, resources...); err != nil {
		c.logger.Warn("collection cache invalidation failed", zap.Strings("resources", resources), zap.Error(err))
	}
}

// publish emits an event. Handler failures are logged, never returned to the caller.
func (c *Collections) publish(ctx context.Context, event events.Event) {
	if c.dispatcher == nil {
		return
	}
	if err := c.dispatcher.Publish(ctx, event); err != nil {
		c.logger.Warn("event handler failed", zap.String("event", string(event.Type)), zap.Error(err))
	}
}
