package waapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testHandler captures the incoming request and returns a canned response.
type testHandler struct {
	method      string
	contentType string
	body        map[string]interface{}

	statusCode   int
	responseBody string
}

func (h *testHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.method = r.Method
	h.contentType = r.Header.Get("Content-Type")
	data, _ := io.ReadAll(r.Body)
	_ = json.Unmarshal(data, &h.body)

	w.Header().Set("Content-Type", "application/json")
	if h.statusCode != 0 {
		w.WriteHeader(h.statusCode)
	}
	_, _ = w.Write([]byte(h.responseBody))
}

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/waapi", 2*time.Second)
}

func TestNewClientDefaultURL(t *testing.T) {
	c := NewClient("  ", time.Second)
	assert.Equal(t, DefaultURL, c.URL())
}

func TestCallSendsEnvelope(t *testing.T) {
	h := &testHandler{responseBody: `{"return": []}`}
	c := newTestClient(t, h)

	result, err := c.Call(context.Background(), URIObjectGet,
		map[string]interface{}{"waql": "$ from type Sound"},
		map[string]interface{}{"return": []string{"name", "id"}})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, h.method)
	assert.Equal(t, "application/json", h.contentType)
	assert.Equal(t, URIObjectGet, h.body["uri"])
	assert.Equal(t, map[string]interface{}{"waql": "$ from type Sound"}, h.body["args"])
	assert.Equal(t, map[string]interface{}{"return": []interface{}{"name", "id"}}, h.body["options"])
	assert.Contains(t, result, "return")
}

func TestCallNilArgsBecomeEmptyObjects(t *testing.T) {
	h := &testHandler{responseBody: `{}`}
	c := newTestClient(t, h)

	_, err := c.Call(context.Background(), URIGetInfo, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{}, h.body["args"])
	assert.Equal(t, map[string]interface{}{}, h.body["options"])
}

func TestWAQLQuery(t *testing.T) {
	h := &testHandler{responseBody: `{"return": [{"name": "Footstep"}]}`}
	c := newTestClient(t, h)

	result, err := c.WAQLQuery(context.Background(), "$ from type Sound", nil)
	require.NoError(t, err)

	assert.Equal(t, URIObjectGet, h.body["uri"])
	args, ok := h.body["args"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "$ from type Sound", args["waql"])

	items, ok := result["return"].([]interface{})
	require.True(t, ok)
	assert.Len(t, items, 1)
}

func TestCallAPIError(t *testing.T) {
	h := &testHandler{
		statusCode:   http.StatusBadRequest,
		responseBody: `{"uri": "ak.wwise.query.invalid", "message": "Unexpected token 'form'"}`,
	}
	c := newTestClient(t, h)

	_, err := c.WAQLQuery(context.Background(), "$ form type Sound", nil)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "ak.wwise.query.invalid", apiErr.URI)
	assert.Equal(t, "ak.wwise.query.invalid: Unexpected token 'form'", apiErr.Error())
	assert.False(t, errors.Is(err, ErrUnavailable))
}

func TestCallAPIErrorPlainBody(t *testing.T) {
	h := &testHandler{statusCode: http.StatusInternalServerError, responseBody: "boom"}
	c := newTestClient(t, h)

	_, err := c.Call(context.Background(), URIGetInfo, nil, nil)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "boom", apiErr.Message)
}

func TestCallNonObjectResult(t *testing.T) {
	h := &testHandler{responseBody: `[1, 2, 3]`}
	c := newTestClient(t, h)

	_, err := c.Call(context.Background(), URIGetInfo, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a JSON object")
	assert.ErrorIs(t, err, ErrBadResponse)
	assert.NotErrorIs(t, err, ErrUnavailable)
}

func TestCallConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL + "/waapi"
	srv.Close()

	c := NewClient(url, time.Second)
	_, err := c.Call(context.Background(), URIGetInfo, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestCallContextCanceled(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(block) })

	c := NewClient(srv.URL, 5*time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Call(ctx, URIGetInfo, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestGetInfo(t *testing.T) {
	h := &testHandler{responseBody: `{
		"displayName": "Wwise",
		"processId": 4242,
		"version": {"displayName": "v2023.1.4.8496", "year": 2023}
	}`}
	c := newTestClient(t, h)

	info, err := c.GetInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Wwise", info.DisplayName)
	assert.Equal(t, "v2023.1.4.8496", info.Version)
	assert.Equal(t, 4242, info.ProcessID)
	assert.Equal(t, URIGetInfo, h.body["uri"])
}
