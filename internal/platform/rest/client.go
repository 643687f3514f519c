// Package rest is the JSON-over-HTTP client every resource adapter goes
// through: it attaches the bearer credential, encodes bodies, maps
// response statuses onto error kinds and logs one event per request.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/selfcare/selfcare/internal/platform/apperr"
	"github.com/selfcare/selfcare/internal/platform/session"
)

type Client struct {
	base   string
	http   *http.Client
	log    zerolog.Logger
	tokens *session.Store
}

// New builds a client for the API at base. A timeout of zero leaves the
// underlying client without one.
func New(base string, timeout time.Duration, logger zerolog.Logger, tokens *session.Store) *Client {
	return &Client{
		base:   strings.TrimRight(base, "/"),
		http:   &http.Client{Timeout: timeout},
		log:    logger,
		tokens: tokens,
	}
}

// Get issues an authenticated GET and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out, true)
}

// Post issues an authenticated POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out, true)
}

// Put issues an authenticated PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out, true)
}

// Delete issues an authenticated DELETE.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil, true)
}

// PostPublic issues a POST without a credential; login and registration
// use it.
func (c *Client) PostPublic(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out, false)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, authed bool) error {
	var token string
	if authed {
		var err error
		token, err = c.tokens.Token()
		if err != nil {
			// No credential: fail locally, never hit the network.
			return err
		}
	}

	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return apperr.Network("request failed", fmt.Errorf("encode body: %w", err))
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return apperr.Network("request failed", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rid := uuid.NewString()
	req.Header.Set("X-Request-ID", rid)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error().Err(err).
			Str("request_id", rid).
			Str("method", method).
			Str("path", path).
			Dur("latency", time.Since(start)).
			Msg("request")
		return apperr.Network("could not reach the server", err)
	}
	defer resp.Body.Close()

	c.log.Info().
		Str("request_id", rid).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("request")

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperr.Network("request failed", err)
	}

	if resp.StatusCode >= 400 {
		return statusError(resp.StatusCode, raw)
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return apperr.Network("request failed", fmt.Errorf("decode response: %w", err))
		}
	}
	return nil
}

// serverMessage is the error envelope the backend uses.
type serverMessage struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

func statusError(code int, raw []byte) error {
	var sm serverMessage
	_ = json.Unmarshal(raw, &sm)
	msg := sm.Message

	switch {
	case code == http.StatusUnauthorized || code == http.StatusUnprocessableEntity:
		if msg == "" {
			msg = "session expired, please log in again"
		}
		return apperr.Auth(msg, fmt.Errorf("status %d", code))
	case code == http.StatusNotFound:
		if msg == "" {
			msg = "not found"
		}
		return apperr.NotFound(msg)
	case code == http.StatusBadRequest || code == http.StatusConflict:
		if msg == "" {
			msg = "invalid request"
		}
		return apperr.Validation("%s", msg)
	default:
		if msg == "" {
			msg = "server error"
		}
		return apperr.Network(msg, fmt.Errorf("status %d", code))
	}
}
