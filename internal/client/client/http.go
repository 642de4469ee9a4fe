package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/ignitegym/internal/client/apperr"
	"github.com/dmitrijs2005/ignitegym/internal/client/models"
	"github.com/dmitrijs2005/ignitegym/internal/logging"
)

const requestIDHeader = "X-Request-ID"

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// HTTPClient talks to the remote API over HTTP/JSON.
type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	log     logging.Logger

	mu    sync.RWMutex
	token string
}

// NewHTTPClient creates a client for the API rooted at baseURL.
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported server url scheme %q", u.Scheme)
	}

	c := &HTTPClient{baseURL: u, log: log}
	c.http = &http.Client{
		Timeout:   timeout,
		Transport: &tokenTransport{base: http.DefaultTransport, token: c.currentToken},
	}
	return c, nil
}

// tokenTransport attaches the current bearer token and a request id.
type tokenTransport struct {
	base  http.RoundTripper
	token func() string
}

func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	if req.Header.Get(requestIDHeader) == "" {
		req.Header.Set(requestIDHeader, uuid.NewString())
	}
	if tok := t.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	return t.base.RoundTrip(req)
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *HTTPClient) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) SignIn(ctx context.Context, email, password string) (models.AuthResponse, error) {
	var resp models.AuthResponse
	req := models.SignInRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/sessions", req, &resp, apperr.FallbackSignIn); err != nil {
		return models.AuthResponse{}, err
	}
	if !resp.User.IsAuthenticated() {
		return models.AuthResponse{}, apperr.Unknown(fmt.Errorf("sign in: %w: user without id", ErrMalformedResponse), apperr.FallbackSignIn)
	}
	return resp, nil
}

func (c *HTTPClient) SignUp(ctx context.Context, req models.SignUpRequest) error {
	return c.do(ctx, http.MethodPost, "/users", req, nil, apperr.FallbackSignUp)
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (models.User, error) {
	var resp models.UpdateProfileResponse
	if err := c.do(ctx, http.MethodPut, "/users", req, &resp, apperr.FallbackProfileUpdate); err != nil {
		return models.User{}, err
	}
	return resp.User, nil
}

func (c *HTTPClient) Groups(ctx context.Context) ([]string, error) {
	var groups []string
	if err := c.do(ctx, http.MethodGet, "/groups", nil, &groups, apperr.FallbackGroups); err != nil {
		return nil, err
	}
	return groups, nil
}

func (c *HTTPClient) ExercisesByGroup(ctx context.Context, group string) ([]models.Exercise, error) {
	var exercises []models.Exercise
	path := "/exercises/bygroup/" + url.PathEscape(group)
	if err := c.do(ctx, http.MethodGet, path, nil, &exercises, apperr.FallbackExercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

func (c *HTTPClient) Exercise(ctx context.Context, id string) (models.Exercise, error) {
	var exercise models.Exercise
	if err := c.do(ctx, http.MethodGet, "/exercises/"+url.PathEscape(id), nil, &exercise, apperr.FallbackExercise); err != nil {
		return models.Exercise{}, err
	}
	return exercise, nil
}

func (c *HTTPClient) RegisterHistory(ctx context.Context, exerciseID string) error {
	req := models.RegisterHistoryRequest{ExerciseID: exerciseID}
	return c.do(ctx, http.MethodPost, "/history", req, nil, apperr.FallbackHistoryRegister)
}

func (c *HTTPClient) History(ctx context.Context) ([]models.HistoryDay, error) {
	var days []models.HistoryDay
	if err := c.do(ctx, http.MethodGet, "/history", nil, &days, apperr.FallbackHistory); err != nil {
		return nil, err
	}
	return days, nil
}

// do performs one JSON round trip. Every returned error is an *apperr.Error.
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any, fallback string) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return apperr.Unknown(fmt.Errorf("encode %s %s: %w", method, path, err), fallback)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return apperr.Unknown(fmt.Errorf("build %s %s: %w", method, path, err), fallback)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "error", err)
		return apperr.Unknown(fmt.Errorf("%s %s: %w", method, path, err), fallback)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.mapError(ctx, method, path, resp, fallback)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return apperr.Unknown(fmt.Errorf("%s %s: %w: %v", method, path, ErrMalformedResponse, err), fallback)
	}
	return nil
}

// mapError converts a non-2xx response into a classified error.
func (c *HTTPClient) mapError(ctx context.Context, method, path string, resp *http.Response, fallback string) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	cause := fmt.Errorf("%s %s: %w: %s", method, path, ErrUnexpectedStatus, resp.Status)

	var envelope models.ErrorResponse
	if err := json.Unmarshal(raw, &envelope); err == nil && strings.TrimSpace(envelope.Message) != "" {
		c.log.Info(ctx, "request rejected", "method", method, "path", path, "status", resp.StatusCode)
		e := apperr.Domain(envelope.Message)
		e.Err = cause
		return e
	}

	c.log.Warn(ctx, "request failed", "method", method, "path", path, "status", resp.StatusCode)
	return apperr.Unknown(cause, fallback)
}
