// Package clickup is a minimal ClickUp API client: just enough to fetch the
// page tree of a doc.
package clickup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorewood/clickup-export/internal/output"
)

// DefaultBaseURL is the public ClickUp API host.
const DefaultBaseURL = "https://api.clickup.com"

// DefaultTimeout bounds a single API request.
const DefaultTimeout = 2 * time.Minute

// maxErrorBody caps how much of an error response is echoed back.
const maxErrorBody = 500

// HTTPDoer defines the HTTP operations required by Client.
// This allows injection of test doubles for testing.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client talks to the ClickUp v3 docs API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPDoer
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API host (tests, proxies).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) { c.httpClient = doer }
}

// WithTimeout sets the request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// New creates a client authenticated with a ClickUp personal API token.
func New(apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, output.NewUserError("ClickUp API key is required")
	}

	c := &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// APIError is a non-200 answer from ClickUp.
type APIError struct {
	StatusCode int
	Code       string // ClickUp ECODE, when present
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("ClickUp API error (status %d, %s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("ClickUp API error (status %d): %s", e.StatusCode, e.Message)
}

// GetDocPages fetches every page of a doc, at every depth, with content as
// Markdown. The response body is returned as-is for page.Parse.
func (c *Client) GetDocPages(ctx context.Context, workspaceID, docID string) ([]byte, error) {
	if workspaceID == "" || docID == "" {
		return nil, output.NewUserError("workspace id and doc id are required")
	}

	query := url.Values{}
	query.Set("max_page_depth", "-1")
	query.Set("content_format", "text/md")

	endpoint := fmt.Sprintf("%s/api/v3/workspaces/%s/docs/%s/pages?%s",
		c.baseURL, url.PathEscape(workspaceID), url.PathEscape(docID), query.Encode())

	return c.get(ctx, endpoint)
}

// get performs an authenticated GET and returns the body of a 200 response.
func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to create request", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("ClickUp request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to read ClickUp response", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := parseAPIError(resp.StatusCode, body)
		if resp.StatusCode == http.StatusUnauthorized {
			return nil, output.NewUserErrorWithCause("ClickUp rejected the API key", apiErr)
		}
		return nil, output.NewSystemErrorWithCause("ClickUp request failed", apiErr)
	}

	return body, nil
}

// parseAPIError reads ClickUp's {"err": "...", "ECODE": "..."} error body,
// falling back to the raw body truncated to maxErrorBody bytes.
func parseAPIError(status int, body []byte) *APIError {
	var payload struct {
		Err   string `json:"err"`
		ECode string `json:"ECODE"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Err != "" {
		return &APIError{StatusCode: status, Code: payload.ECode, Message: payload.Err}
	}

	msg := string(body)
	if len(msg) > maxErrorBody {
		msg = msg[:maxErrorBody]
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &APIError{StatusCode: status, Message: msg}
}

// IsAPIError reports whether err carries a ClickUp API error with the given
// status code.
func IsAPIError(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}
