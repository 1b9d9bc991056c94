package usage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client talks to a hosted usage API. Every row it decodes is validated
// before it is handed back; the service's JSON is not trusted as-is.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	token     string
	userAgent string
}

const (
	defaultUserAgent = "prism/0.1"
	requestTimeout   = 5 * time.Second
)

// NewClient builds a Client for the API at baseURL. token, when set, is sent
// as a bearer credential issued by the identity provider.
func NewClient(baseURL, token string) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		token:     strings.TrimSpace(token),
		userAgent: defaultUserAgent,
	}, nil
}

type usageListResponse struct {
	Items []ToolUsage `json:"items"`
}

type sessionListResponse struct {
	Items []Session `json:"items"`
}

// CreateUsage posts u to /api/usage and returns the stored record.
func (c *Client) CreateUsage(ctx context.Context, u ToolUsage) (ToolUsage, error) {
	if err := u.Validate(); err != nil {
		return ToolUsage{}, err
	}
	var out ToolUsage
	if err := c.do(ctx, http.MethodPost, &url.URL{Path: "/api/usage"}, u, &out); err != nil {
		return ToolUsage{}, err
	}
	if err := validateCreated(out.ID, "tool_usage", out.Validate); err != nil {
		return ToolUsage{}, err
	}
	return out, nil
}

// ListUsage fetches usage rows newest first.
func (c *Client) ListUsage(ctx context.Context, q UsageQuery) ([]ToolUsage, error) {
	values := url.Values{}
	values.Set("user", q.UserID)
	if tool := strings.TrimSpace(q.ToolID); tool != "" {
		values.Set("tool", tool)
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	rel := &url.URL{Path: "/api/usage", RawQuery: values.Encode()}
	var payload usageListResponse
	if err := c.do(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	for _, u := range payload.Items {
		if err := u.Validate(); err != nil {
			return nil, err
		}
	}
	return payload.Items, nil
}

// CreateSession posts s to /api/sessions and returns the stored record.
func (c *Client) CreateSession(ctx context.Context, s Session) (Session, error) {
	if strings.TrimSpace(s.UserID) == "" {
		return Session{}, &ValidationError{Record: "session", Field: "user_id"}
	}
	var out Session
	if err := c.do(ctx, http.MethodPost, &url.URL{Path: "/api/sessions"}, s, &out); err != nil {
		return Session{}, err
	}
	if err := out.Validate(); err != nil {
		return Session{}, err
	}
	return out, nil
}

// GetSession fetches one session; a 404 maps to ErrNotFound.
func (c *Client) GetSession(ctx context.Context, id string) (Session, error) {
	var out Session
	if err := c.do(ctx, http.MethodGet, sessionPath(id), nil, &out); err != nil {
		return Session{}, err
	}
	if err := out.Validate(); err != nil {
		return Session{}, err
	}
	return out, nil
}

// UpdateSession replaces the mutable fields of a stored session.
func (c *Client) UpdateSession(ctx context.Context, s Session) error {
	if err := s.Validate(); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, sessionPath(s.ID), s, nil)
}

// ListSessions fetches a user's sessions newest first.
func (c *Client) ListSessions(ctx context.Context, userID string, limit int) ([]Session, error) {
	values := url.Values{}
	values.Set("user", userID)
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	rel := &url.URL{Path: "/api/sessions", RawQuery: values.Encode()}
	var payload sessionListResponse
	if err := c.do(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	for _, s := range payload.Items {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	return payload.Items, nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func sessionPath(id string) *url.URL {
	return &url.URL{Path: "/api/sessions/" + url.PathEscape(id)}
}

func validateCreated(id, record string, validate func() error) error {
	if strings.TrimSpace(id) == "" {
		return &ValidationError{Record: record, Field: "id"}
	}
	return validate()
}

func (c *Client) do(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("api %s: %w", rel.Path, ErrNotFound)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("api %s: %w", rel.Path, ErrUnauthenticated)
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("api %s: %w", rel.Path, ErrRateLimited)
	case resp.StatusCode >= 400:
		return fmt.Errorf("api %s returned status %d", rel.Path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("usage api url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse usage api url %q: %w", raw, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
