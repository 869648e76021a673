package query

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/waql-tui/pkg/waapi"
)

// fakeCaller records WAQL calls and returns canned results
type fakeCaller struct {
	calls   int
	waql    string
	options map[string]interface{}
	result  map[string]interface{}
	err     error
	info    waapi.Info
}

func (f *fakeCaller) WAQLQuery(ctx context.Context, waql string, options map[string]interface{}) (map[string]interface{}, error) {
	f.calls++
	f.waql = waql
	f.options = options
	return f.result, f.err
}

func (f *fakeCaller) GetInfo(ctx context.Context) (waapi.Info, error) {
	return f.info, f.err
}

func TestNewExecutor(t *testing.T) {
	e := NewExecutor(&fakeCaller{}, 30*time.Second)

	assert.Equal(t, 30*time.Second, e.timeout)
	assert.NotNil(t, e.validator)
	assert.NotNil(t, e.logger)
}

func TestExecuteEmptyQueryMakesNoCall(t *testing.T) {
	for _, text := range []string{"", "   ", "// just a comment\n"} {
		caller := &fakeCaller{}
		e := NewExecutor(caller, time.Second)

		_, err := e.Execute(context.Background(), ExecuteRequest{Query: text})
		assert.ErrorIs(t, err, ErrEmptyQuery)
		assert.Equal(t, 0, caller.calls, "query %q should not reach WAAPI", text)
	}
}

func TestExecuteInvalidQueryMakesNoCall(t *testing.T) {
	caller := &fakeCaller{}
	e := NewExecutor(caller, time.Second)

	_, err := e.Execute(context.Background(), ExecuteRequest{Query: "$ where (Volume < 0"})
	assert.ErrorIs(t, err, ErrUnbalancedParens)
	assert.Equal(t, 0, caller.calls)
}

func TestExecuteSuccess(t *testing.T) {
	caller := &fakeCaller{result: map[string]interface{}{
		"return": []interface{}{
			map[string]interface{}{"name": "Footstep_01", "id": "{A}"},
			map[string]interface{}{"name": "Footstep_02", "id": "{B}"},
		},
	}}
	e := NewExecutor(caller, time.Second)

	resp, err := e.Execute(context.Background(), ExecuteRequest{
		Query: "// footsteps\n$ from type Sound\n| name id",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, caller.calls)
	assert.Equal(t, "$ from type Sound", caller.waql)
	assert.Equal(t, map[string]interface{}{"return": []interface{}{"name", "id"}}, caller.options)

	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, []string{"id", "name"}, resp.Result.Columns)
	assert.Equal(t, "Footstep_02", resp.Result.Rows[1]["name"])
	assert.Contains(t, resp.RawJSON, "Footstep_01")
	assert.False(t, resp.ExecutedAt.IsZero())
}

func TestExecuteEmptyResult(t *testing.T) {
	caller := &fakeCaller{result: map[string]interface{}{"return": []interface{}{}}}
	e := NewExecutor(caller, time.Second)

	resp, err := e.Execute(context.Background(), ExecuteRequest{Query: "$ from type Sound"})
	assert.ErrorIs(t, err, ErrEmptyResult)
	assert.Nil(t, resp.Result)
	assert.Equal(t, "No results.", Describe(err))
}

func TestExecuteConnectionFailure(t *testing.T) {
	caller := &fakeCaller{err: waapi.ErrUnavailable}
	e := NewExecutor(caller, time.Second)

	_, err := e.Execute(context.Background(), ExecuteRequest{Query: "$ from type Sound"})
	assert.ErrorIs(t, err, ErrConnection)
	assert.ErrorIs(t, err, waapi.ErrUnavailable)
	assert.Contains(t, Describe(err), "Cannot connect to Wwise")
}

func TestExecuteAPIErrorIsNotConnectionError(t *testing.T) {
	caller := &fakeCaller{err: &waapi.APIError{
		StatusCode: http.StatusBadRequest,
		URI:        "ak.wwise.query.invalid",
		Message:    "Unexpected token",
	}}
	e := NewExecutor(caller, time.Second)

	_, err := e.Execute(context.Background(), ExecuteRequest{Query: "$ form type Sound"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrConnection))
	assert.Equal(t, "WAAPI rejected the query: ak.wwise.query.invalid: Unexpected token", Describe(err))
}

func TestExecuteMalformedReplyIsNotConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[1, 2, 3]`))
	}))
	t.Cleanup(srv.Close)

	e := NewExecutor(waapi.NewClient(srv.URL, time.Second), time.Second)
	_, err := e.Execute(context.Background(), ExecuteRequest{Query: "$ from type Bus"})
	require.Error(t, err)
	assert.ErrorIs(t, err, waapi.ErrBadResponse)
	assert.NotErrorIs(t, err, ErrConnection)
	assert.Contains(t, Describe(err), "Unexpected reply from WAAPI")
	assert.NotContains(t, Describe(err), "Cannot connect")
}

func TestClassifyCallError(t *testing.T) {
	assert.ErrorIs(t, ClassifyCallError(waapi.ErrUnavailable), ErrConnection)
	assert.ErrorIs(t, ClassifyCallError(context.DeadlineExceeded), ErrConnection)
	assert.NotErrorIs(t, ClassifyCallError(waapi.ErrBadResponse), ErrConnection)
	assert.NotErrorIs(t, ClassifyCallError(&waapi.APIError{StatusCode: 400}), ErrConnection)
}

func TestExecuteNilCaller(t *testing.T) {
	e := NewExecutor(nil, time.Second)
	_, err := e.Execute(context.Background(), ExecuteRequest{Query: "$ from type Sound"})
	assert.ErrorIs(t, err, ErrConnection)
}

func TestExecuteAgainstHTTPServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"return": [{"name": "Music", "type": "Bus", "Volume": -3.5}]}`))
	}))
	t.Cleanup(srv.Close)

	e := NewExecutor(waapi.NewClient(srv.URL, time.Second), time.Second)
	resp, err := e.Execute(context.Background(), ExecuteRequest{Query: "$ from type Bus"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Volume", "name", "type"}, resp.Result.Columns)
	assert.Equal(t, "-3.5", resp.Result.Rows[0]["Volume"])
}

func TestPing(t *testing.T) {
	e := NewExecutor(&fakeCaller{info: waapi.Info{DisplayName: "Wwise", Version: "v2023.1.4"}}, time.Second)
	version, err := e.Ping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v2023.1.4", version)

	e = NewExecutor(&fakeCaller{err: waapi.ErrUnavailable}, time.Second)
	_, err = e.Ping(context.Background())
	assert.ErrorIs(t, err, ErrConnection)
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		err      error
		expected string
	}{
		{nil, ""},
		{ErrEmptyQuery, "Please enter a WAQL statement."},
		{ErrUnbalancedParens, "Invalid query: unbalanced parentheses in query"},
		{context.DeadlineExceeded, "Timed out waiting for Wwise."},
		{errors.New("disk full"), "disk full"},
	}

	for _, tt := range tests {
		if got := Describe(tt.err); got != tt.expected {
			t.Errorf("Describe(%v): expected %q, got %q", tt.err, tt.expected, got)
		}
	}
}
