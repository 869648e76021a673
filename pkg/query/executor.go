package query

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/user/waql-tui/pkg/models"
	"github.com/user/waql-tui/pkg/waapi"
)

// Executor errors
var (
	ErrConnection  = errors.New("cannot connect to Wwise")
	ErrEmptyResult = errors.New("query returned no objects")
)

// Caller is the WAAPI surface the executor needs. *waapi.Client implements it.
type Caller interface {
	WAQLQuery(ctx context.Context, waql string, options map[string]interface{}) (map[string]interface{}, error)
	GetInfo(ctx context.Context) (waapi.Info, error)
}

// Executor handles query execution against WAAPI
type Executor struct {
	caller    Caller
	timeout   time.Duration
	validator *Validator
	logger    *slog.Logger
}

// NewExecutor creates a new query executor
func NewExecutor(caller Caller, timeout time.Duration) *Executor {
	return &Executor{
		caller:    caller,
		timeout:   timeout,
		validator: NewValidator(),
		logger:    slog.Default(),
	}
}

// WithLogger sets the logger used for execution tracing
func (e *Executor) WithLogger(logger *slog.Logger) *Executor {
	e.logger = logger
	return e
}

// ExecuteRequest represents parameters for query execution
type ExecuteRequest struct {
	Query string
}

// ExecuteResponse represents the result of query execution
type ExecuteResponse struct {
	Result     *models.ResultSet
	RawJSON    string
	Count      int
	ExecutedAt time.Time
	Duration   time.Duration
}

// Execute runs a query and returns results
func (e *Executor) Execute(ctx context.Context, req ExecuteRequest) (ExecuteResponse, error) {
	text := e.validator.SanitizeQuery(req.Query)
	if err := e.validator.ValidateQuery(text); err != nil {
		return ExecuteResponse{}, err
	}
	if e.caller == nil {
		return ExecuteResponse{}, fmt.Errorf("%w: no WAAPI client configured", ErrConnection)
	}

	var cancel context.CancelFunc
	if _, ok := ctx.Deadline(); !ok && e.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	waql, options := ParseQuery(text)
	startTime := time.Now()
	e.logger.Debug("executing query", "waql", waql, "options", options)

	result, err := e.caller.WAQLQuery(ctx, waql, options)
	if err != nil {
		return ExecuteResponse{}, ClassifyCallError(err)
	}

	rawJSON := ""
	if data, err := json.MarshalIndent(result, "", "  "); err == nil {
		rawJSON = string(data)
	}

	rs, err := BuildResultSet(result)
	if err != nil {
		return ExecuteResponse{RawJSON: rawJSON}, err
	}
	e.logger.Debug("query completed", "rows", rs.Len(), "columns", len(rs.Columns), "elapsed", time.Since(startTime))

	return ExecuteResponse{
		Result:     rs,
		RawJSON:    rawJSON,
		Count:      rs.Len(),
		ExecutedAt: time.Now(),
		Duration:   time.Since(startTime),
	}, nil
}

// Ping asks the authoring tool for its version
func (e *Executor) Ping(ctx context.Context) (string, error) {
	if e.caller == nil {
		return "", ErrConnection
	}
	if _, ok := ctx.Deadline(); !ok && e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	info, err := e.caller.GetInfo(ctx)
	if err != nil {
		return "", ClassifyCallError(err)
	}
	if info.Version == "" {
		return info.DisplayName, nil
	}
	return info.Version, nil
}

// ClassifyCallError marks transport failures as ErrConnection. WAAPI
// rejections and malformed replies pass through unchanged.
func ClassifyCallError(err error) error {
	var apiErr *waapi.APIError
	switch {
	case errors.As(err, &apiErr), errors.Is(err, waapi.ErrBadResponse):
		return err
	case errors.Is(err, waapi.ErrUnavailable), errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %w", ErrConnection, err)
	default:
		return err
	}
}

// Describe turns an execution error into the message shown to the user
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *waapi.APIError
	switch {
	case errors.Is(err, ErrEmptyQuery):
		return "Please enter a WAQL statement."
	case errors.Is(err, ErrUnbalancedParens), errors.Is(err, ErrUnterminatedString):
		return "Invalid query: " + err.Error()
	case errors.Is(err, ErrEmptyResult):
		return "No results."
	case errors.As(err, &apiErr):
		return "WAAPI rejected the query: " + apiErr.Error()
	case errors.Is(err, waapi.ErrBadResponse):
		return "Unexpected reply from WAAPI: " + err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return "Timed out waiting for Wwise."
	case errors.Is(err, ErrConnection):
		return "Cannot connect to Wwise. Make sure Wwise is running and WAAPI is enabled."
	default:
		return err.Error()
	}
}
