package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	pkgerrors "github.com/fieldline/fieldline-backend/pkg/errors"
)

const (
	defaultTimeout        = 15 * time.Second
	defaultUserAgent      = "fieldline-console-sdk/1.0"
	responseBodyReadLimit = 4 << 20
	authRequiredMessage   = "authentication required"
)

var errBaseURLRequired = errors.New("api base url is required")

// Client is the typed console client for the dispatch API. Authentication
// relies on the HTTP-only session cookie, kept in the client's cookie jar
// across calls.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client. The client's jar is
// replaced so cookie auth keeps working.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithUserAgent overrides the identifying User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(userAgent)
		if trimmed != "" {
			c.userAgent = trimmed
		}
	}
}

// New builds a client for the API at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errBaseURLRequired
	}
	if _, err := url.Parse(trimmed); err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	client := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    trimmed,
		userAgent:  defaultUserAgent,
	}
	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("build cookie jar: %w", err)
		}
		client.httpClient.Jar = jar
	}
	return client, nil
}

// Login authenticates and stores the session cookie for subsequent calls.
func (c *Client) Login(ctx context.Context, email, password, role string) (*Identity, error) {
	body := map[string]string{"email": email, "password": password, "role": role}
	var identity Identity
	if err := c.doJSON(ctx, http.MethodPost, "/api/login", nil, body, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

// Logout revokes the current session server-side.
// Refresh rotates the session cookies. The server reissues both the access
// and refresh cookie, so the jar is current after a nil error.
func (c *Client) Refresh(ctx context.Context) (*Identity, error) {
	var identity Identity
	if err := c.doJSON(ctx, http.MethodPost, "/api/refresh", nil, nil, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/api/logout", nil, nil, nil)
}

// Verify returns the caller's identity for the current session.
func (c *Client) Verify(ctx context.Context) (*Identity, error) {
	var identity Identity
	if err := c.doJSON(ctx, http.MethodGet, "/api/verify", nil, nil, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

// doJSON issues one request and decodes the success envelope's data into out.
// A nil out discards the payload.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	payload, err := c.do(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil || !envelope.Success {
		return pkgerrors.New(pkgerrors.CodeDependency, "unexpected response shape")
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode response")
	}
	return nil
}

// do issues one request and returns the raw response body for 2xx statuses.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "call api")
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read response")
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, apiError(resp.StatusCode, payload)
	}
	return payload, nil
}

// apiError maps an error response onto the shared error codes. Every 401
// carries the authentication-required marker the polling controller matches.
func apiError(status int, payload []byte) error {
	if status == http.StatusUnauthorized {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, authRequiredMessage)
	}

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(payload, &envelope); err == nil && envelope.Error.Code != "" {
		message := envelope.Error.Message
		if message == "" {
			message = "request failed"
		}
		return pkgerrors.New(pkgerrors.Code(envelope.Error.Code), message)
	}
	return pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("unexpected status %d", status))
}
