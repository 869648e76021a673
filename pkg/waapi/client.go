// Package waapi is a small client for the Wwise Authoring API over HTTP.
//
// Wwise accepts POST requests on /waapi carrying {"uri", "args", "options"}
// and answers with the JSON object produced by the called function.
package waapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// DefaultURL is where Wwise serves WAAPI HTTP requests when enabled
const DefaultURL = "http://127.0.0.1:8090/waapi"

// Function URIs used by this tool
const (
	URIObjectGet = "ak.wwise.core.object.get"
	URIGetInfo   = "ak.wwise.core.getInfo"
)

// ErrUnavailable is returned when the authoring tool cannot be reached
var ErrUnavailable = errors.New("waapi unavailable: is Wwise running with WAAPI enabled?")

// ErrBadResponse is returned when WAAPI answers with something other than a JSON object
var ErrBadResponse = errors.New("malformed waapi response")

// APIError is an error reported by WAAPI itself, e.g. a rejected WAQL query
type APIError struct {
	StatusCode int
	URI        string
	Message    string
	Details    map[string]interface{}
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.URI != "" {
		return fmt.Sprintf("%s: %s", e.URI, msg)
	}
	return msg
}

// Client calls WAAPI functions
type Client struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for the given WAAPI endpoint. An empty url uses DefaultURL.
func NewClient(url string, timeout time.Duration, opts ...Option) *Client {
	url = strings.TrimSpace(url)
	if url == "" {
		url = DefaultURL
	}
	c := &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the endpoint this client talks to
func (c *Client) URL() string {
	return c.url
}

type request struct {
	URI     string                 `json:"uri"`
	Options map[string]interface{} `json:"options"`
	Args    map[string]interface{} `json:"args"`
}

// Call invokes a WAAPI function and returns its result object
func (c *Client) Call(ctx context.Context, uri string, args, options map[string]interface{}) (map[string]interface{}, error) {
	if args == nil {
		args = map[string]interface{}{}
	}
	if options == nil {
		options = map[string]interface{}{}
	}

	body, err := json.Marshal(request{URI: uri, Options: options, Args: args})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("waapi request failed", "uri", uri, "url", c.url, "err", err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnavailable, ctxErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %w", ErrUnavailable, err)
	}
	c.logger.Debug("waapi call", "uri", uri, "status", resp.StatusCode, "bytes", len(respBody), "elapsed", time.Since(start))

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errBody struct {
			URI     string                 `json:"uri"`
			Message string                 `json:"message"`
			Details map[string]interface{} `json:"details"`
		}
		if json.Unmarshal(respBody, &errBody) == nil && (errBody.URI != "" || errBody.Message != "") {
			apiErr.URI = errBody.URI
			apiErr.Message = errBody.Message
			apiErr.Details = errBody.Details
		} else {
			apiErr.Message = strings.TrimSpace(string(respBody))
		}
		return nil, apiErr
	}

	var result map[string]interface{}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("%w: result is not a JSON object: %w", ErrBadResponse, err)
	}
	if result == nil {
		return nil, fmt.Errorf("%w: result is not a JSON object", ErrBadResponse)
	}
	return result, nil
}

// WAQLQuery runs a WAQL query through ak.wwise.core.object.get
func (c *Client) WAQLQuery(ctx context.Context, waql string, options map[string]interface{}) (map[string]interface{}, error) {
	args := map[string]interface{}{
		"waql": waql,
	}
	return c.Call(ctx, URIObjectGet, args, options)
}

// Info is the subset of ak.wwise.core.getInfo this tool displays
type Info struct {
	DisplayName string
	Version     string
	ProcessID   int
}

// GetInfo queries the running authoring tool
func (c *Client) GetInfo(ctx context.Context) (Info, error) {
	result, err := c.Call(ctx, URIGetInfo, nil, nil)
	if err != nil {
		return Info{}, err
	}

	info := Info{}
	if name, ok := result["displayName"].(string); ok {
		info.DisplayName = name
	}
	if version, ok := result["version"].(map[string]interface{}); ok {
		if display, ok := version["displayName"].(string); ok {
			info.Version = display
		}
	}
	if pid, ok := result["processId"].(float64); ok {
		info.ProcessID = int(pid)
	}
	return info, nil
}
