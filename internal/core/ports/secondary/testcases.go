package secondary

import (
	"context"

	"gitlab.com/codearena-2025.net/internal/domain"
)

// TestCaseRepository owns the durable mapping from a challenge to its ordered
// test cases. The catalog is keyed strictly by the immutable challenge id.
// Both read operations return an empty slice, not an error, when a challenge
// has no registered cases. The read path must be safe for concurrent readers;
// a reader never observes a partially applied mutation.
type TestCaseRepository interface {
	// AllTestCases retrieves every test case for a challenge, hidden ones
	// included, ordered by test case id. Used for full grading.
	AllTestCases(ctx context.Context, challengeID int64) ([]*domain.TestCase, error)

	// VisibleTestCases retrieves the sample, non-hidden subset in the same
	// order. Used for preview runs.
	VisibleTestCases(ctx context.Context, challengeID int64) ([]*domain.TestCase, error)

	// GetTestCase retrieves a single test case by id, nil when not found.
	GetTestCase(ctx context.Context, testCaseID int64) (*domain.TestCase, error)

	// CreateTestCase registers a new test case and assigns its id.
	CreateTestCase(ctx context.Context, tc *domain.TestCase) error

	// UpdateTestCase applies a partial update, returning the updated case or
	// nil when the id is unknown.
	UpdateTestCase(ctx context.Context, testCaseID int64, upd *domain.TestCaseUpdate) (*domain.TestCase, error)

	// RemoveTestCase deletes a test case, reporting whether it existed.
	RemoveTestCase(ctx context.Context, testCaseID int64) (bool, error)

	// RemoveAllForChallenge deletes every test case of a challenge and
	// returns how many were removed.
	RemoveAllForChallenge(ctx context.Context, challengeID int64) (int64, error)
}
