package judge0_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gitlab.com/codearena-2025.net/internal/adapter/judge0"
	"gitlab.com/codearena-2025.net/internal/config"
	"gitlab.com/codearena-2025.net/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}

func newClient(baseURL string) *judge0.Client {
	return judge0.NewClient(&config.Judge0Config{
		BaseURL:        baseURL,
		APIKey:         "key-123",
		APIHost:        "judge0-ce.example.com",
		RequestTimeout: 5 * time.Second,
	}, nopLogger{})
}

func TestRunDecodesSuccessfulResponse(t *testing.T) {
	var gotBody map[string]interface{}
	var gotHeaders http.Header

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/submissions" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.URL.Query().Get("wait"); got != "true" {
			t.Errorf("expected wait=true, got %q", got)
		}
		gotHeaders = r.Header.Clone()
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"stdout": "[0,1]\n",
			"stderr": null,
			"compile_output": null,
			"status": {"id": 1, "description": "Accepted"},
			"time": "0.004",
			"memory": 3812
		}`))
	}))
	defer srv.Close()

	client := newClient(srv.URL)
	result, err := client.Run(context.Background(), &domain.ExecutionRequest{
		LanguageID: 71,
		SourceCode: "print(solve())",
		Stdin:      "[2,7,11,15], 9",
	})
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	if result.Stdout != "[0,1]\n" || result.Stderr != "" {
		t.Fatalf("unexpected outputs: stdout=%q stderr=%q", result.Stdout, result.Stderr)
	}
	if !result.Status.ID.OK() {
		t.Fatalf("unexpected status: %+v", result.Status)
	}
	if result.Time == nil || *result.Time != 0.004 {
		t.Fatalf("numeric-string time not decoded: %v", result.Time)
	}
	if result.Memory == nil || *result.Memory != 3812 {
		t.Fatalf("memory not decoded: %v", result.Memory)
	}

	if gotBody["language_id"] != float64(71) || gotBody["source_code"] != "print(solve())" {
		t.Fatalf("unexpected request body: %v", gotBody)
	}
	if gotBody["stdin"] != "[2,7,11,15], 9" {
		t.Fatalf("stdin not forwarded: %v", gotBody["stdin"])
	}
	if gotHeaders.Get("X-RapidAPI-Key") != "key-123" {
		t.Fatalf("api key header missing")
	}
	if gotHeaders.Get("X-RapidAPI-Host") != "judge0-ce.example.com" {
		t.Fatalf("api host header missing")
	}
}

func TestRunProgramFailureIsNotAClientError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"stdout": null,
			"stderr": null,
			"compile_output": "main.c:3: error: expected ';'",
			"status": {"id": 6, "description": "Compilation Error"},
			"time": null,
			"memory": null
		}`))
	}))
	defer srv.Close()

	client := newClient(srv.URL)
	result, err := client.Run(context.Background(), &domain.ExecutionRequest{LanguageID: 50, SourceCode: "int main("})
	if err != nil {
		t.Fatalf("program failure must not be a client error: %v", err)
	}

	if result.Status.ID != domain.ExecStatusCompilationError {
		t.Fatalf("unexpected status: %+v", result.Status)
	}
	if result.CompileOutput == "" {
		t.Fatalf("compile output lost")
	}
	if result.Time != nil || result.Memory != nil {
		t.Fatalf("null telemetry should stay absent: %v %v", result.Time, result.Memory)
	}
}

func TestRunNonSuccessStatusCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"quota exceeded"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := newClient(srv.URL)
	_, err := client.Run(context.Background(), &domain.ExecutionRequest{LanguageID: 71, SourceCode: "x"})
	if err == nil {
		t.Fatalf("expected an execution error")
	}

	var execErr *judge0.ExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("expected *ExecutionError, got %T", err)
	}
	if execErr.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("unexpected status code: %d", execErr.StatusCode)
	}
}

func TestRunMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status": "not an object"`))
	}))
	defer srv.Close()

	client := newClient(srv.URL)
	_, err := client.Run(context.Background(), &domain.ExecutionRequest{LanguageID: 71, SourceCode: "x"})

	var execErr *judge0.ExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("expected *ExecutionError, got %v", err)
	}
}

func TestRunBackendUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	client := newClient(srv.URL)
	_, err := client.Run(context.Background(), &domain.ExecutionRequest{LanguageID: 71, SourceCode: "x"})

	var execErr *judge0.ExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("expected *ExecutionError, got %v", err)
	}
}

func TestRunHonorsContextCancellation(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := newClient(srv.URL)
	_, err := client.Run(ctx, &domain.ExecutionRequest{LanguageID: 71, SourceCode: "x"})
	if err == nil {
		t.Fatalf("expected cancellation error")
	}
}
