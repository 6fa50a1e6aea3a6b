// package judge0 contains the HTTP adapter for a Judge0-compatible
// execution backend.
package judge0

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"gitlab.com/codearena-2025.net/internal/config"
	"gitlab.com/codearena-2025.net/internal/core/ports/primary"
	"gitlab.com/codearena-2025.net/internal/core/ports/secondary"
	"gitlab.com/codearena-2025.net/internal/domain"
)

var _ secondary.CodeRunner = (*Client)(nil)

// ExecutionError means the backend was unreachable or answered with a
// malformed or non-success transport response. A program that failed inside
// the sandbox is not an ExecutionError.
type ExecutionError struct {
	Message    string
	StatusCode int
	Err        error
}

func (e *ExecutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("execution backend: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("execution backend: %s", e.Message)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// Client submits single, synchronous runs to a Judge0-compatible backend.
type Client struct {
	baseURL    string
	apiKey     string
	apiHost    string
	httpClient *http.Client
	logger     primary.Logger
}

// NewClient creates a new Judge0 client.
func NewClient(cfg *config.Judge0Config, logger primary.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		apiHost: cfg.APIHost,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		logger: logger,
	}
}

// submissionResponse is the Judge0 wire shape. Nullable fields arrive as JSON
// null; time arrives as a numeric string on hosted instances.
type submissionResponse struct {
	Stdout        *string         `json:"stdout"`
	Stderr        *string         `json:"stderr"`
	CompileOutput *string         `json:"compile_output"`
	Status        executionStatus `json:"status"`
	Time          *flexFloat      `json:"time"`
	Memory        *float64        `json:"memory"`
}

type executionStatus struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

// flexFloat decodes a JSON number or a numeric string.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	if len(data) > 1 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*f = flexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

// Run submits one (language, source, stdin) unit of work and waits for the
// result. wait=true makes the backend answer synchronously, so one POST is
// the whole exchange.
func (c *Client) Run(ctx context.Context, req *domain.ExecutionRequest) (*domain.ExecutionResult, error) {
	url := fmt.Sprintf("%s/submissions?base64_encoded=false&wait=true", c.baseURL)

	body, err := json.Marshal(req)
	if err != nil {
		return nil, &ExecutionError{Message: "failed to encode request", Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &ExecutionError{Message: "failed to build request", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("X-RapidAPI-Key", c.apiKey)
	}
	if c.apiHost != "" {
		httpReq.Header.Set("X-RapidAPI-Host", c.apiHost)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("Execution backend unreachable", "url", url, "error", err)
		return nil, &ExecutionError{Message: "backend unreachable", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("Execution backend rejected request",
			"status", resp.StatusCode,
			"body", string(payload))
		return nil, &ExecutionError{
			Message:    fmt.Sprintf("unexpected response status %d", resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}

	var wire submissionResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		c.logger.Error("Failed to decode backend response", "error", err)
		return nil, &ExecutionError{Message: "malformed response", Err: err}
	}

	result := &domain.ExecutionResult{
		Stdout: deref(wire.Stdout),
		Stderr: deref(wire.Stderr),
		Status: domain.ExecutionStatus{
			ID:          domain.ExecStatus(wire.Status.ID),
			Description: wire.Status.Description,
		},
		Memory: wire.Memory,
	}
	if wire.CompileOutput != nil {
		result.CompileOutput = *wire.CompileOutput
	}
	if wire.Time != nil {
		t := float64(*wire.Time)
		result.Time = &t
	}
	return result, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
