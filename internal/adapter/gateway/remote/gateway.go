// Package remote implements the user gateway as calls against the HTTP API.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	domain "user-crud-service/internal/domain/user"
	"user-crud-service/internal/usecase/user"
	apperrors "user-crud-service/pkg/errors"
	"user-crud-service/pkg/logger"
)

// StatusError is returned for any unexpected non-2xx response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Gateway talks to a user HTTP API rooted at baseURL (for example http://localhost:8080/api).
// Non-positive ids are never stored, so they fail with NotFound without a round trip.
type Gateway struct {
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

var _ user.Gateway = (*Gateway)(nil)

// NewGateway creates a remote gateway.
func NewGateway(baseURL string, client *http.Client, log *zap.Logger) *Gateway {
	return &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		log:     log,
	}
}

// GetUsers fetches every user.
func (g *Gateway) GetUsers(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	if err := g.do(ctx, http.MethodGet, "/users", 0, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUserByID fetches one user.
func (g *Gateway) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	if id <= 0 {
		return domain.User{}, apperrors.NewUserNotFoundError(id)
	}

	var u domain.User
	if err := g.do(ctx, http.MethodGet, userPath(id), id, nil, &u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// CreateUser posts a new user.
func (g *Gateway) CreateUser(ctx context.Context, data domain.FormData) (domain.User, error) {
	var u domain.User
	if err := g.do(ctx, http.MethodPost, "/users", 0, user.NewCreateUserRequest(data), &u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// UpdateUser sends only the fields present in patch.
func (g *Gateway) UpdateUser(ctx context.Context, id int64, patch domain.Patch) (domain.User, error) {
	if id <= 0 {
		return domain.User{}, apperrors.NewUserNotFoundError(id)
	}

	var u domain.User
	if err := g.do(ctx, http.MethodPut, userPath(id), id, user.NewUpdateUserRequest(patch), &u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// DeleteUser removes a user.
func (g *Gateway) DeleteUser(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewUserNotFoundError(id)
	}

	var resp user.DeleteUserResponse
	return g.do(ctx, http.MethodDelete, userPath(id), id, nil, &resp)
}

func userPath(id int64) string {
	return "/users/" + strconv.FormatInt(id, 10)
}

// do performs one round trip. A 404 on an id-addressed path becomes NotFound(id).
func (g *Gateway) do(ctx context.Context, method, path string, id int64, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if rid := logger.GetRequestID(ctx); rid != "" {
		req.Header.Set(logger.RequestIDHeader, rid)
	}

	res, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			g.log.Warn("failed to close response body", zap.Error(err))
		}
	}()

	if res.StatusCode == http.StatusNotFound && id > 0 {
		return apperrors.NewUserNotFoundError(id)
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		logger.WithContext(ctx, g.log).Warn("remote call failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", res.StatusCode),
		)
		return &StatusError{Method: method, Path: path, StatusCode: res.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}
