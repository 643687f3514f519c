package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/selfcare/selfcare/internal/platform/apperr"
	"github.com/selfcare/selfcare/internal/platform/session"
)

// newFakeBackend stands up an echo server mimicking the remote API's
// error envelope, counting every request it sees.
func newFakeBackend(t *testing.T) (*httptest.Server, *atomic.Int64) {
	t.Helper()

	var hits atomic.Int64
	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			hits.Add(1)
			return next(c)
		}
	})

	e.GET("/ok", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"value": c.Request().Header.Get("Authorization")})
	})
	e.GET("/expired", func(c echo.Context) error {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "token has expired"})
	})
	e.GET("/missing", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "doctor not found"})
	})
	e.POST("/invalid", func(c echo.Context) error {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "name is required"})
	})
	e.GET("/boom", func(c echo.Context) error {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "server error"})
	})

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv, &hits
}

func newTestClient(t *testing.T, base string, token string) *Client {
	t.Helper()
	store := session.NewStore(filepath.Join(t.TempDir(), "token"))
	if token != "" {
		if err := store.Save(token); err != nil {
			t.Fatalf("save token: %v", err)
		}
	}
	return New(base, 5*time.Second, zerolog.Nop(), store)
}

func TestGetAttachesBearerToken(t *testing.T) {
	srv, _ := newFakeBackend(t)
	c := newTestClient(t, srv.URL, "tok-123")

	var out struct {
		Value string `json:"value"`
	}
	if err := c.Get(context.Background(), "/ok", nil, &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if out.Value != "Bearer tok-123" {
		t.Errorf("authorization = %q, want bearer token", out.Value)
	}
}

func TestMissingTokenShortCircuits(t *testing.T) {
	srv, hits := newFakeBackend(t)
	c := newTestClient(t, srv.URL, "")

	err := c.Get(context.Background(), "/ok", nil, nil)
	if !apperr.Is(err, apperr.KindAuth) {
		t.Fatalf("err = %v, want auth error", err)
	}
	if hits.Load() != 0 {
		t.Errorf("server saw %d requests, want 0 — missing credential must fail locally", hits.Load())
	}
}

func TestStatusMapping(t *testing.T) {
	srv, _ := newFakeBackend(t)
	c := newTestClient(t, srv.URL, "tok")
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
		kind apperr.Kind
		msg  string
	}{
		{"401 is auth", func() error { return c.Get(ctx, "/expired", nil, nil) }, apperr.KindAuth, "token has expired"},
		{"404 is not found", func() error { return c.Get(ctx, "/missing", nil, nil) }, apperr.KindNotFound, "doctor not found"},
		{"400 is validation", func() error { return c.Post(ctx, "/invalid", map[string]string{}, nil) }, apperr.KindValidation, "name is required"},
		{"500 is network", func() error { return c.Get(ctx, "/boom", nil, nil) }, apperr.KindNetwork, "server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if !apperr.Is(err, tt.kind) {
				t.Fatalf("err = %v, want kind %v", err, tt.kind)
			}
			if got := apperr.Message(err); got != tt.msg {
				t.Errorf("message = %q, want %q", got, tt.msg)
			}
		})
	}
}

func TestTransportFailureIsNetwork(t *testing.T) {
	// A closed server: the request never completes.
	srv, _ := newFakeBackend(t)
	url := srv.URL
	srv.Close()

	c := newTestClient(t, url, "tok")
	err := c.Get(context.Background(), "/ok", nil, nil)
	if !apperr.Is(err, apperr.KindNetwork) {
		t.Fatalf("err = %v, want network error", err)
	}
}
