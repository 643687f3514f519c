// Package account covers the login and registration pass-throughs. Login
// is the producer for the session store every other call reads from.
package account

import (
	"context"
	"strings"

	"github.com/selfcare/selfcare/internal/platform/apperr"
	"github.com/selfcare/selfcare/internal/platform/rest"
	"github.com/selfcare/selfcare/internal/platform/session"
)

type Service struct {
	rest   *rest.Client
	tokens *session.Store
}

func NewService(rc *rest.Client, tokens *session.Store) *Service {
	return &Service{rest: rc, tokens: tokens}
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	Message     string `json:"message"`
}

// Login exchanges credentials for a bearer token and saves it.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return "", apperr.Validation("username and password are required")
	}

	var resp loginResponse
	body := map[string]string{"username": username, "password": password}
	if err := s.rest.PostPublic(ctx, "/login", body, &resp); err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", apperr.Auth("login failed", nil)
	}
	if err := s.tokens.Save(resp.AccessToken); err != nil {
		return "", err
	}
	if resp.Message == "" {
		resp.Message = "login successful"
	}
	return resp.Message, nil
}

type registerResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Register creates an account. The user still logs in afterwards; the
// backend does not hand out a token on registration.
func (s *Service) Register(ctx context.Context, username, password, email string) (string, error) {
	if strings.TrimSpace(username) == "" || password == "" || strings.TrimSpace(email) == "" {
		return "", apperr.Validation("username, password and email are required")
	}

	var resp registerResponse
	body := map[string]string{"username": username, "password": password, "email": email}
	if err := s.rest.PostPublic(ctx, "/register", body, &resp); err != nil {
		return "", err
	}
	if resp.Message == "" {
		resp.Message = "registered"
	}
	return resp.Message, nil
}

// Logout discards the saved credential.
func (s *Service) Logout() error {
	return s.tokens.Clear()
}
