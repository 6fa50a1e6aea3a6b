package secondary

import (
	"context"

	"gitlab.com/codearena-2025.net/internal/domain"
)

// CodeRunner sends one unit of work to the external sandboxed execution
// backend. A single stateless call per invocation: no retries, no caching,
// no batching. An error means the backend was unreachable or answered with
// a malformed or non-success transport response; a program that failed to
// compile or crashed is reported inside the ExecutionResult, not as an error.
type CodeRunner interface {
	Run(ctx context.Context, req *domain.ExecutionRequest) (*domain.ExecutionResult, error)
}
