package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"user-crud-service/internal/adapter/gateway/memory"
	"user-crud-service/internal/adapter/gin/handler"
	"user-crud-service/internal/adapter/gin/router"
	domain "user-crud-service/internal/domain/user"
	"user-crud-service/internal/usecase/user"
	apperrors "user-crud-service/pkg/errors"
	"user-crud-service/pkg/httpclient"
	"user-crud-service/pkg/logger"
)

func ptr[T any](v T) *T { return &v }

// setup serves the real HTTP API over an in-memory store and returns a gateway pointed at it.
func setup(t *testing.T) (*Gateway, *memory.Gateway) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zaptest.NewLogger(t)

	store := memory.NewGateway(log)
	h := handler.NewUserHandler(user.NewInteractors(store), log)
	srv := httptest.NewServer(router.SetupRouter(h, nil, log, router.Options{}))
	t.Cleanup(srv.Close)

	return NewGateway(srv.URL+"/api/", httpclient.NewHTTPClient(5*time.Second), log), store
}

func TestGateway_Scenario(t *testing.T) {
	g, _ := setup(t)
	ctx := context.Background()

	users, err := g.GetUsers(ctx)
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)

	john, err := g.CreateUser(ctx, domain.FormData{FirstName: "John", LastName: "Doe", Email: "john@example.com", IsActive: true})
	require.NoError(t, err)
	jane, err := g.CreateUser(ctx, domain.FormData{FirstName: "Jane", LastName: "Smith", Email: "jane@example.com", IsActive: false})
	require.NoError(t, err)
	assert.Greater(t, jane.ID, john.ID)
	assert.False(t, jane.IsActive)

	got, err := g.GetUserByID(ctx, john.ID)
	require.NoError(t, err)
	assert.Equal(t, john.Email, got.Email)
	assert.True(t, john.CreatedAt.Equal(got.CreatedAt))

	updated, err := g.UpdateUser(ctx, john.ID, domain.Patch{FirstName: ptr("Johnny"), IsActive: ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, "Johnny", updated.FirstName)
	assert.Equal(t, "Doe", updated.LastName)
	assert.False(t, updated.IsActive)

	require.NoError(t, g.DeleteUser(ctx, john.ID))

	_, err = g.GetUserByID(ctx, john.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Equal(t, "User with ID 1 not found", err.Error())

	users, err = g.GetUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, jane.ID, users[0].ID)
}

func TestGateway_NotFound(t *testing.T) {
	g, _ := setup(t)
	ctx := context.Background()

	_, err := g.GetUserByID(ctx, 7)
	assert.True(t, apperrors.IsNotFound(err))

	_, err = g.UpdateUser(ctx, 7, domain.Patch{LastName: ptr("X")})
	assert.True(t, apperrors.IsNotFound(err))

	err = g.DeleteUser(ctx, 7)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGateway_NonPositiveIDMatchesStore(t *testing.T) {
	g, store := setup(t)
	ctx := context.Background()

	for _, id := range []int64{0, -1} {
		_, want := store.GetUserByID(ctx, id)
		_, err := g.GetUserByID(ctx, id)
		assert.True(t, apperrors.IsNotFound(err), "get %d", id)
		assert.EqualError(t, err, want.Error())

		_, err = g.UpdateUser(ctx, id, domain.Patch{LastName: ptr("X")})
		assert.True(t, apperrors.IsNotFound(err), "update %d", id)

		err = g.DeleteUser(ctx, id)
		assert.True(t, apperrors.IsNotFound(err), "delete %d", id)
	}
}

func TestGateway_SeededStore(t *testing.T) {
	g, store := setup(t)
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.SetUsers([]domain.User{
		domain.New(10, domain.FormData{FirstName: "A", LastName: "B", Email: "a@example.com", IsActive: true}, at),
	})

	created, err := g.CreateUser(context.Background(), domain.FormData{FirstName: "C", LastName: "D", Email: "c@example.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(11), created.ID)
}

func TestGateway_OpaqueStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream unavailable"))
	}))
	t.Cleanup(srv.Close)
	g := NewGateway(srv.URL, srv.Client(), zaptest.NewLogger(t))

	_, err := g.GetUsers(context.Background())

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.Equal(t, "upstream unavailable", statusErr.Body)
	assert.False(t, apperrors.IsNotFound(err))
}

func TestGateway_ListNotFoundIsOpaque(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)
	g := NewGateway(srv.URL, srv.Client(), zaptest.NewLogger(t))

	_, err := g.GetUsers(context.Background())

	require.Error(t, err)
	assert.False(t, apperrors.IsNotFound(err))
}

func TestGateway_PropagatesRequestID(t *testing.T) {
	var seen string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get(logger.RequestIDHeader)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("[]"))
	}))
	t.Cleanup(srv.Close)
	g := NewGateway(srv.URL, srv.Client(), zaptest.NewLogger(t))

	_, err := g.GetUsers(logger.ContextWithRequestID(context.Background(), "req-42"))

	require.NoError(t, err)
	assert.Equal(t, "req-42", seen)
}

func TestGateway_ValidationRejectedRemotely(t *testing.T) {
	g, _ := setup(t)

	_, err := g.CreateUser(context.Background(), domain.FormData{FirstName: "", LastName: "Doe", Email: "bad"})

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "validation_error")
}
