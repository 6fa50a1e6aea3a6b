package judge_test

import (
	"context"
	"errors"
	"testing"

	memrepo "gitlab.com/codearena-2025.net/internal/adapter/memory/testcaserepository"
	"gitlab.com/codearena-2025.net/internal/core/services/judge"
	"gitlab.com/codearena-2025.net/internal/domain"
	"gitlab.com/codearena-2025.net/internal/static/errs"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}

// fakeRunner scripts one outcome per stdin value and records call order.
type fakeRunner struct {
	results map[string]*domain.ExecutionResult
	errors  map[string]error
	calls   []string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		results: make(map[string]*domain.ExecutionResult),
		errors:  make(map[string]error),
	}
}

func (f *fakeRunner) Run(_ context.Context, req *domain.ExecutionRequest) (*domain.ExecutionResult, error) {
	f.calls = append(f.calls, req.Stdin)
	if err, ok := f.errors[req.Stdin]; ok {
		return nil, err
	}
	if res, ok := f.results[req.Stdin]; ok {
		return res, nil
	}
	return okResult(""), nil
}

func okResult(stdout string) *domain.ExecutionResult {
	return &domain.ExecutionResult{
		Stdout: stdout,
		Status: domain.ExecutionStatus{ID: domain.ExecStatusOK, Description: "Accepted"},
	}
}

func failedResult(status domain.ExecStatus) *domain.ExecutionResult {
	return &domain.ExecutionResult{
		Stderr:        "boom",
		CompileOutput: "line 3: expected ';'",
		Status:        domain.ExecutionStatus{ID: status, Description: "failed"},
	}
}

func seedStore(t *testing.T, cases ...domain.TestCase) *memrepo.Store {
	t.Helper()
	store := memrepo.NewStore()
	store.Seed(cases...)
	return store
}

func testCase(challengeID int64, input, expected string, weight float64, sample, hidden bool) domain.TestCase {
	return domain.TestCase{
		ChallengeID:    challengeID,
		Input:          input,
		ExpectedOutput: expected,
		IsSample:       sample,
		IsHidden:       hidden,
		Weight:         weight,
	}
}

func TestEvaluateAllPassing(t *testing.T) {
	store := seedStore(t,
		testCase(7, "in1", "out1", 1, true, false),
		testCase(7, "in2", "out2", 1, true, true),
	)
	runner := newFakeRunner()
	runner.results["in1"] = okResult("out1")
	runner.results["in2"] = okResult("out2")

	svc := judge.NewService(store, runner, nopLogger{})
	submissionID := int64(42)
	eval, err := svc.Evaluate(context.Background(), 7, "print(solve())", 71, &submissionID)
	if err != nil {
		t.Fatalf("expected evaluation success, got error: %v", err)
	}

	if eval.Score != 100 {
		t.Fatalf("unexpected score: %v", eval.Score)
	}
	if eval.Status != domain.VerdictAccepted {
		t.Fatalf("unexpected verdict: %s", eval.Status)
	}
	if eval.PassedCount != 2 || eval.TotalCount != 2 {
		t.Fatalf("unexpected counts: passed=%d total=%d", eval.PassedCount, eval.TotalCount)
	}
	if eval.SubmissionID == nil || *eval.SubmissionID != 42 {
		t.Fatalf("submission id not threaded through: %v", eval.SubmissionID)
	}
	if eval.ChallengeID != 7 {
		t.Fatalf("unexpected challenge id: %d", eval.ChallengeID)
	}
}

func TestEvaluateWeightedPartial(t *testing.T) {
	store := seedStore(t,
		testCase(3, "a", "ok", 1, true, false),
		testCase(3, "b", "ok", 3, true, false),
	)
	runner := newFakeRunner()
	runner.results["a"] = okResult("ok")
	runner.results["b"] = okResult("wrong")

	svc := judge.NewService(store, runner, nopLogger{})
	eval, err := svc.Evaluate(context.Background(), 3, "code", 71, nil)
	if err != nil {
		t.Fatalf("expected evaluation success, got error: %v", err)
	}

	if eval.TotalWeight != 4 {
		t.Fatalf("unexpected total weight: %v", eval.TotalWeight)
	}
	if eval.Score != 25 {
		t.Fatalf("unexpected score: %v", eval.Score)
	}
	if eval.Status != domain.VerdictPartial {
		t.Fatalf("unexpected verdict: %s", eval.Status)
	}
	if eval.PassedCount != 1 {
		t.Fatalf("unexpected passed count: %d", eval.PassedCount)
	}
	// Wrong answer on a clean run carries no error label.
	if eval.Results[1].Error != "" {
		t.Fatalf("mismatch should not carry an error label, got %q", eval.Results[1].Error)
	}
	if eval.SubmissionID != nil {
		t.Fatalf("expected no submission id, got %v", *eval.SubmissionID)
	}
}

func TestEvaluateCompilationError(t *testing.T) {
	store := seedStore(t, testCase(5, "in", "out", 2, true, false))
	runner := newFakeRunner()
	runner.results["in"] = failedResult(domain.ExecStatusCompilationError)

	svc := judge.NewService(store, runner, nopLogger{})
	eval, err := svc.Evaluate(context.Background(), 5, "code", 54, nil)
	if err != nil {
		t.Fatalf("expected evaluation success, got error: %v", err)
	}

	if eval.Score != 0 {
		t.Fatalf("unexpected score: %v", eval.Score)
	}
	if eval.Status != domain.VerdictRejected {
		t.Fatalf("unexpected verdict: %s", eval.Status)
	}
	res := eval.Results[0]
	if res.Passed {
		t.Fatalf("failing status must never pass")
	}
	if res.Error != "Compilation Error" {
		t.Fatalf("unexpected error label: %q", res.Error)
	}
	if res.Status == nil || *res.Status != domain.ExecStatusCompilationError {
		t.Fatalf("unexpected status: %v", res.Status)
	}
	if res.CompileOutput == "" {
		t.Fatalf("compile output should be carried through")
	}
}

func TestEvaluateBackendFailureIsIsolated(t *testing.T) {
	store := seedStore(t,
		testCase(9, "first", "1", 1, true, false),
		testCase(9, "second", "2", 1, true, false),
	)
	runner := newFakeRunner()
	runner.errors["first"] = errors.New("connection refused")
	runner.results["second"] = okResult("2")

	svc := judge.NewService(store, runner, nopLogger{})
	eval, err := svc.Evaluate(context.Background(), 9, "code", 71, nil)
	if err != nil {
		t.Fatalf("backend failure must not abort evaluation: %v", err)
	}

	if len(runner.calls) != 2 {
		t.Fatalf("remaining test cases must still run, got %d calls", len(runner.calls))
	}
	first := eval.Results[0]
	if first.Error != "Execution Error" {
		t.Fatalf("unexpected error label: %q", first.Error)
	}
	if first.Stdout != "" || first.Stderr != "connection refused" {
		t.Fatalf("unexpected failure telemetry: stdout=%q stderr=%q", first.Stdout, first.Stderr)
	}
	// The failed case still consumes its weight in the denominator.
	if eval.TotalWeight != 2 || eval.Score != 50 {
		t.Fatalf("unexpected aggregation: weight=%v score=%v", eval.TotalWeight, eval.Score)
	}
	if eval.Status != domain.VerdictPartial {
		t.Fatalf("unexpected verdict: %s", eval.Status)
	}
}

func TestEvaluateAllBackendFailures(t *testing.T) {
	store := seedStore(t, testCase(4, "only", "x", 1, true, false))
	runner := newFakeRunner()
	runner.errors["only"] = errors.New("dial tcp: i/o timeout")

	svc := judge.NewService(store, runner, nopLogger{})
	eval, err := svc.Evaluate(context.Background(), 4, "code", 71, nil)
	if err != nil {
		t.Fatalf("expected a complete evaluation, got error: %v", err)
	}
	if eval.Score != 0 || eval.Status != domain.VerdictRejected {
		t.Fatalf("unexpected outcome: score=%v verdict=%s", eval.Score, eval.Status)
	}
}

func TestEvaluateEmptySourceCode(t *testing.T) {
	store := seedStore(t, testCase(1, "in", "out", 1, true, false))
	runner := newFakeRunner()

	svc := judge.NewService(store, runner, nopLogger{})
	for _, src := range []string{"", "   ", "\n\t \n"} {
		_, err := svc.Evaluate(context.Background(), 1, src, 71, nil)
		if !errors.Is(err, errs.EmptySourceCode) {
			t.Fatalf("source %q: expected EmptySourceCode, got %v", src, err)
		}
	}
	if len(runner.calls) != 0 {
		t.Fatalf("no execution call may happen on validation failure, got %d", len(runner.calls))
	}
}

func TestEvaluateNoTestCases(t *testing.T) {
	store := memrepo.NewStore()
	runner := newFakeRunner()

	svc := judge.NewService(store, runner, nopLogger{})
	_, err := svc.Evaluate(context.Background(), 99, "code", 71, nil)
	if !errors.Is(err, errs.NoTestCases) {
		t.Fatalf("expected NoTestCases, got %v", err)
	}
	if len(runner.calls) != 0 {
		t.Fatalf("no execution call may happen for an empty catalog, got %d", len(runner.calls))
	}
}

func TestRunVisibleUsesSampleSubsetOnly(t *testing.T) {
	store := seedStore(t,
		testCase(6, "sample", "s", 1, true, false),
		testCase(6, "hidden", "h", 5, false, true),
	)
	runner := newFakeRunner()
	runner.results["sample"] = okResult("s")

	svc := judge.NewService(store, runner, nopLogger{})
	eval, err := svc.RunVisible(context.Background(), 6, "code", 71)
	if err != nil {
		t.Fatalf("expected preview success, got error: %v", err)
	}

	if len(runner.calls) != 1 || runner.calls[0] != "sample" {
		t.Fatalf("preview must run visible cases only, got calls %v", runner.calls)
	}
	// Preview total weight covers the visible subset only.
	if eval.TotalWeight != 1 || eval.Score != 100 {
		t.Fatalf("unexpected preview aggregation: weight=%v score=%v", eval.TotalWeight, eval.Score)
	}
	if eval.SubmissionID != nil {
		t.Fatalf("preview result must not carry a submission id")
	}
}

func TestRunVisibleEmptySampleSetFailsWhileFullGradingSucceeds(t *testing.T) {
	store := seedStore(t, testCase(8, "hidden", "h", 1, false, true))
	runner := newFakeRunner()
	runner.results["hidden"] = okResult("h")

	svc := judge.NewService(store, runner, nopLogger{})

	if _, err := svc.RunVisible(context.Background(), 8, "code", 71); !errors.Is(err, errs.NoTestCases) {
		t.Fatalf("expected NoTestCases for empty visible subset, got %v", err)
	}

	eval, err := svc.Evaluate(context.Background(), 8, "code", 71, nil)
	if err != nil {
		t.Fatalf("full grading should still succeed: %v", err)
	}
	if eval.Status != domain.VerdictAccepted {
		t.Fatalf("unexpected verdict: %s", eval.Status)
	}
}

func TestEvaluatePreservesCatalogOrder(t *testing.T) {
	store := seedStore(t,
		testCase(2, "a", "1", 1, true, false),
		testCase(2, "b", "2", 1, true, false),
		testCase(2, "c", "3", 1, true, false),
	)
	runner := newFakeRunner()

	svc := judge.NewService(store, runner, nopLogger{})
	eval, err := svc.Evaluate(context.Background(), 2, "code", 71, nil)
	if err != nil {
		t.Fatalf("expected evaluation success, got error: %v", err)
	}

	if len(runner.calls) != 3 {
		t.Fatalf("unexpected call count: %d", len(runner.calls))
	}
	for i, want := range []string{"a", "b", "c"} {
		if runner.calls[i] != want {
			t.Fatalf("calls out of order: %v", runner.calls)
		}
	}
	for i := 1; i < len(eval.Results); i++ {
		if eval.Results[i].TestCaseID <= eval.Results[i-1].TestCaseID {
			t.Fatalf("results out of catalog order: %+v", eval.Results)
		}
	}
}

func TestEvaluatePassedCountMatchesResults(t *testing.T) {
	store := seedStore(t,
		testCase(11, "p1", "y", 7, true, false),
		testCase(11, "f1", "y", 1, true, false),
		testCase(11, "p2", "y", 2, true, false),
	)
	runner := newFakeRunner()
	runner.results["p1"] = okResult("y")
	runner.results["f1"] = okResult("n")
	runner.results["p2"] = okResult("y")

	svc := judge.NewService(store, runner, nopLogger{})
	eval, err := svc.Evaluate(context.Background(), 11, "code", 71, nil)
	if err != nil {
		t.Fatalf("expected evaluation success, got error: %v", err)
	}

	passed := 0
	for _, res := range eval.Results {
		if res.Passed {
			passed++
		}
	}
	if eval.PassedCount != passed {
		t.Fatalf("passed_count %d does not match results %d", eval.PassedCount, passed)
	}
	if eval.Score <= 0 || eval.Score >= 100 {
		t.Fatalf("score out of expected open interval: %v", eval.Score)
	}
	want := 9.0 / 10.0 * 100
	if eval.Score != want {
		t.Fatalf("unexpected weighted score: got %v want %v", eval.Score, want)
	}
}
