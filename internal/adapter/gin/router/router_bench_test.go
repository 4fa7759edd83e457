package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-crud-service/internal/adapter/gateway/memory"
	"user-crud-service/internal/adapter/gin/handler"
	domain "user-crud-service/internal/domain/user"
	"user-crud-service/internal/usecase/user"
)

func setupBenchmarkServer(b *testing.B) (*httptest.Server, *memory.Gateway) {
	b.Helper()
	gin.SetMode(gin.ReleaseMode)
	log := zap.NewNop()
	store := memory.NewGateway(log)
	srv := httptest.NewServer(SetupRouter(handler.NewUserHandler(user.NewInteractors(store), log), nil, log, Options{}))
	b.Cleanup(srv.Close)
	return srv, store
}

func benchRequest(b *testing.B, client *http.Client, method, url string, body any, want int) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			b.Error(err)
			return
		}
	}
	req, err := http.NewRequestWithContext(context.Background(), method, url, &buf)
	if err != nil {
		b.Error(err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		b.Errorf("request failed: %v", err)
		return
	}
	_ = resp.Body.Close()
	if resp.StatusCode != want {
		b.Errorf("expected status %d, got %d", want, resp.StatusCode)
	}
}

func BenchmarkHTTP_CreateUser(b *testing.B) {
	srv, _ := setupBenchmarkServer(b)
	var counter int64

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(p *testing.PB) {
		for p.Next() {
			id := atomic.AddInt64(&counter, 1)
			benchRequest(b, srv.Client(), http.MethodPost, srv.URL+"/api/users", map[string]any{
				"firstName": fmt.Sprintf("User_%d", id),
				"lastName":  "Bench",
				"email":     fmt.Sprintf("user_%d@example.com", id),
			}, http.StatusCreated)
		}
	})
}

func BenchmarkHTTP_GetUserByID(b *testing.B) {
	srv, store := setupBenchmarkServer(b)
	created, err := store.CreateUser(context.Background(), domain.FormData{FirstName: "Test", LastName: "User", Email: "test@example.com"})
	if err != nil {
		b.Fatal(err)
	}
	url := fmt.Sprintf("%s/api/users/%d", srv.URL, created.ID)

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(p *testing.PB) {
		for p.Next() {
			benchRequest(b, srv.Client(), http.MethodGet, url, nil, http.StatusOK)
		}
	})
}

func BenchmarkHTTP_GetUsers(b *testing.B) {
	srv, store := setupBenchmarkServer(b)
	for i := 0; i < 100; i++ {
		if _, err := store.CreateUser(context.Background(), domain.FormData{
			FirstName: fmt.Sprintf("User_%d", i), LastName: "Bench", Email: fmt.Sprintf("user_%d@example.com", i),
		}); err != nil {
			b.Fatal(err)
		}
	}

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(p *testing.PB) {
		for p.Next() {
			benchRequest(b, srv.Client(), http.MethodGet, srv.URL+"/api/users", nil, http.StatusOK)
		}
	})
}
