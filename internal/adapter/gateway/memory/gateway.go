// Package memory provides an in-memory user gateway used by tests and local runs.
package memory

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	domain "user-crud-service/internal/domain/user"
	"user-crud-service/internal/usecase/user"
	apperrors "user-crud-service/pkg/errors"
)

var _ user.Gateway = (*Gateway)(nil)

// Gateway keeps users in an ordered slice with a monotonic id counter.
// Values are copied whenever they cross the gateway boundary.
type Gateway struct {
	mu     sync.Mutex
	users  []domain.User
	nextID int64
	now    func() time.Time
	log    *zap.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(g *Gateway) {
		g.now = now
	}
}

// NewGateway creates an empty in-memory gateway.
func NewGateway(log *zap.Logger, opts ...Option) *Gateway {
	g := &Gateway{
		nextID: 1,
		now:    func() time.Time { return time.Now().UTC() },
		log:    log,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Reset empties the store and restarts ids at 1.
func (g *Gateway) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.users = nil
	g.nextID = 1
}

// SetUsers replaces the store with a copy of users and moves the id counter past the highest id.
func (g *Gateway) SetUsers(users []domain.User) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.users = append([]domain.User(nil), users...)

	var maxID int64
	for _, u := range users {
		if u.ID > maxID {
			maxID = u.ID
		}
	}
	g.nextID = maxID + 1
}

// GetUsers returns a copy of every stored user in insertion order.
func (g *Gateway) GetUsers(_ context.Context) ([]domain.User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]domain.User, len(g.users))
	copy(out, g.users)
	return out, nil
}

// GetUserByID returns the user with the given id.
func (g *Gateway) GetUserByID(_ context.Context, id int64) (domain.User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	i := g.indexOf(id)
	if i < 0 {
		g.log.Debug("user not found in memory", zap.Int64("id", id))
		return domain.User{}, apperrors.NewUserNotFoundError(id)
	}
	return g.users[i], nil
}

// CreateUser stores a new user under the next id.
func (g *Gateway) CreateUser(_ context.Context, data domain.FormData) (domain.User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	u := domain.New(g.nextID, data, g.now())
	g.nextID++
	g.users = append(g.users, u)

	g.log.Debug("user created in memory", zap.Int64("id", u.ID))
	return u, nil
}

// UpdateUser applies patch to the stored user.
func (g *Gateway) UpdateUser(_ context.Context, id int64, patch domain.Patch) (domain.User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	i := g.indexOf(id)
	if i < 0 {
		return domain.User{}, apperrors.NewUserNotFoundError(id)
	}

	u := g.users[i].Apply(patch, g.now())
	g.users[i] = u

	g.log.Debug("user updated in memory", zap.Int64("id", id))
	return u, nil
}

// DeleteUser removes the user with the given id.
func (g *Gateway) DeleteUser(_ context.Context, id int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	i := g.indexOf(id)
	if i < 0 {
		return apperrors.NewUserNotFoundError(id)
	}

	g.users = append(g.users[:i:i], g.users[i+1:]...)

	g.log.Debug("user deleted from memory", zap.Int64("id", id))
	return nil
}

func (g *Gateway) indexOf(id int64) int {
	for i := range g.users {
		if g.users[i].ID == id {
			return i
		}
	}
	return -1
}
