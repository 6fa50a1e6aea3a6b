package judge

import (
	"context"

	"gitlab.com/codearena-2025.net/internal/domain"
)

// IJudgeService grades a submission against a challenge's test case catalog.
type IJudgeService interface {
	// Evaluate runs full grading against every test case, hidden ones
	// included. submissionID is threaded through to the result when present.
	Evaluate(ctx context.Context, challengeID int64, sourceCode string, languageID int, submissionID *int64) (*domain.SubmissionEvaluation, error)

	// RunVisible runs preview grading against the sample, non-hidden subset
	// only. The result never carries a submission id.
	RunVisible(ctx context.Context, challengeID int64, sourceCode string, languageID int) (*domain.SubmissionEvaluation, error)
}
