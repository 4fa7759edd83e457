package cached

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"user-crud-service/internal/adapter/cache"
	domain "user-crud-service/internal/domain/user"
	"user-crud-service/internal/usecase/user"
)

// Gateway wraps another user.Gateway with a read-through cache for single
// user lookups. Cache failures are logged and never surface to callers.
type Gateway struct {
	next  user.Gateway
	cache cache.UserCache
	log   *zap.Logger
	group singleflight.Group
}

var _ user.Gateway = (*Gateway)(nil)

// NewGateway creates a caching decorator around next.
// A nil cache disables caching and every call is delegated.
func NewGateway(next user.Gateway, c cache.UserCache, log *zap.Logger) *Gateway {
	return &Gateway{
		next:  next,
		cache: c,
		log:   log,
	}
}

// GetUsers delegates to the wrapped gateway.
func (g *Gateway) GetUsers(ctx context.Context) ([]domain.User, error) {
	return g.next.GetUsers(ctx)
}

// GetUserByID retrieves a user using the cache-aside pattern.
// A miss that races an update can store the pre-update user; that entry
// lives until the TTL expires.
func (g *Gateway) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	if u, ok := g.lookup(ctx, id); ok {
		g.log.Debug("user retrieved from cache", zap.Int64("id", id))
		return u, nil
	}

	// Only one concurrent miss per id reaches the wrapped gateway. The shared
	// call must not inherit the cancellation of whichever caller started it.
	result, err, _ := g.group.Do(cache.Key(id), func() (any, error) {
		detached := context.WithoutCancel(ctx)
		if u, ok := g.lookup(detached, id); ok {
			return u, nil
		}

		u, err := g.next.GetUserByID(detached, id)
		if err != nil {
			return domain.User{}, err
		}

		if g.cache != nil {
			if err := g.cache.Set(detached, u); err != nil {
				g.log.Warn("failed to cache user", zap.Int64("id", id), zap.Error(err))
			}
		}
		return u, nil
	})
	if err != nil {
		return domain.User{}, err
	}

	return result.(domain.User), nil
}

// CreateUser delegates to the wrapped gateway.
func (g *Gateway) CreateUser(ctx context.Context, data domain.FormData) (domain.User, error) {
	return g.next.CreateUser(ctx, data)
}

// UpdateUser updates through the wrapped gateway and invalidates the cached entry.
func (g *Gateway) UpdateUser(ctx context.Context, id int64, patch domain.Patch) (domain.User, error) {
	u, err := g.next.UpdateUser(ctx, id, patch)
	if err != nil {
		return domain.User{}, err
	}

	g.invalidate(ctx, id, "update")
	return u, nil
}

// DeleteUser deletes through the wrapped gateway and invalidates the cached entry.
func (g *Gateway) DeleteUser(ctx context.Context, id int64) error {
	if err := g.next.DeleteUser(ctx, id); err != nil {
		return err
	}

	g.invalidate(ctx, id, "delete")
	return nil
}

func (g *Gateway) lookup(ctx context.Context, id int64) (domain.User, bool) {
	if g.cache == nil {
		return domain.User{}, false
	}
	u, ok, err := g.cache.Get(ctx, id)
	if err != nil {
		g.log.Warn("cache get error, falling back to wrapped gateway", zap.Int64("id", id), zap.Error(err))
		return domain.User{}, false
	}
	return u, ok
}

func (g *Gateway) invalidate(ctx context.Context, id int64, op string) {
	if g.cache == nil {
		return
	}
	if err := g.cache.Delete(ctx, id); err != nil {
		g.log.Warn("failed to invalidate cache", zap.String("op", op), zap.Int64("id", id), zap.Error(err))
	}
}
