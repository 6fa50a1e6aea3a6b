// package testcaserepository contains the PostgreSQL implementation of the
// test case catalog.
package testcaserepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gitlab.com/codearena-2025.net/internal/core/ports/primary"
	"gitlab.com/codearena-2025.net/internal/core/ports/secondary"
	"gitlab.com/codearena-2025.net/internal/domain"
)

var _ secondary.TestCaseRepository = (*TestCaseRepository)(nil)

// TestCaseRepository implements the TestCaseRepository port with PostgreSQL.
// Rows are keyed by the immutable challenge id and ordered by test case id so
// grading iterates the catalog deterministically.
type TestCaseRepository struct {
	db     *sqlx.DB
	logger primary.Logger
}

// NewTestCaseRepository creates a new PostgreSQL test case repository.
func NewTestCaseRepository(db *sqlx.DB, logger primary.Logger) *TestCaseRepository {
	return &TestCaseRepository{
		db:     db,
		logger: logger,
	}
}

const selectColumns = `
	test_case_id, challenge_id, input, expected_output,
	description, is_sample, is_hidden, weight
`

// AllTestCases retrieves every test case for a challenge, hidden included.
func (r *TestCaseRepository) AllTestCases(ctx context.Context, challengeID int64) ([]*domain.TestCase, error) {
	query := `
		SELECT ` + selectColumns + `
		FROM test_cases
		WHERE challenge_id = $1
		ORDER BY test_case_id
	`

	testCases := []*domain.TestCase{}
	if err := r.db.SelectContext(ctx, &testCases, query, challengeID); err != nil {
		r.logger.Error("Failed to load test cases", "challengeId", challengeID, "error", err)
		return nil, fmt.Errorf("failed to load test cases: %w", err)
	}
	return testCases, nil
}

// VisibleTestCases retrieves the sample, non-hidden subset in catalog order.
func (r *TestCaseRepository) VisibleTestCases(ctx context.Context, challengeID int64) ([]*domain.TestCase, error) {
	query := `
		SELECT ` + selectColumns + `
		FROM test_cases
		WHERE challenge_id = $1 AND is_sample = TRUE AND is_hidden = FALSE
		ORDER BY test_case_id
	`

	testCases := []*domain.TestCase{}
	if err := r.db.SelectContext(ctx, &testCases, query, challengeID); err != nil {
		r.logger.Error("Failed to load visible test cases", "challengeId", challengeID, "error", err)
		return nil, fmt.Errorf("failed to load visible test cases: %w", err)
	}
	return testCases, nil
}

// GetTestCase retrieves a single test case by id, nil when not found.
func (r *TestCaseRepository) GetTestCase(ctx context.Context, testCaseID int64) (*domain.TestCase, error) {
	query := `
		SELECT ` + selectColumns + `
		FROM test_cases
		WHERE test_case_id = $1
	`

	var tc domain.TestCase
	err := r.db.GetContext(ctx, &tc, query, testCaseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get test case", "testCaseId", testCaseID, "error", err)
		return nil, fmt.Errorf("failed to get test case: %w", err)
	}
	return &tc, nil
}

// CreateTestCase registers a new test case and assigns its id.
func (r *TestCaseRepository) CreateTestCase(ctx context.Context, tc *domain.TestCase) error {
	query := `
		INSERT INTO test_cases (
			challenge_id, input, expected_output,
			description, is_sample, is_hidden, weight
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING test_case_id
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		tc.ChallengeID,
		tc.Input,
		tc.ExpectedOutput,
		tc.Description,
		tc.IsSample,
		tc.IsHidden,
		tc.Weight,
	).Scan(&tc.ID)

	if err != nil {
		r.logger.Error("Failed to create test case", "challengeId", tc.ChallengeID, "error", err)
		return fmt.Errorf("failed to create test case: %w", err)
	}
	return nil
}

// UpdateTestCase applies a partial update inside a transaction so a
// concurrent reader sees either the old or the new row, never a mix.
func (r *TestCaseRepository) UpdateTestCase(ctx context.Context, testCaseID int64, upd *domain.TestCaseUpdate) (*domain.TestCase, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin update: %w", err)
	}
	defer tx.Rollback()

	query := `
		SELECT ` + selectColumns + `
		FROM test_cases
		WHERE test_case_id = $1
		FOR UPDATE
	`

	var tc domain.TestCase
	if err := tx.GetContext(ctx, &tc, query, testCaseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to lock test case", "testCaseId", testCaseID, "error", err)
		return nil, fmt.Errorf("failed to lock test case: %w", err)
	}

	upd.Apply(&tc)

	update := `
		UPDATE test_cases SET
			input = $2, expected_output = $3, description = $4,
			is_sample = $5, is_hidden = $6, weight = $7
		WHERE test_case_id = $1
	`

	_, err = tx.ExecContext(
		ctx,
		update,
		tc.ID,
		tc.Input,
		tc.ExpectedOutput,
		tc.Description,
		tc.IsSample,
		tc.IsHidden,
		tc.Weight,
	)
	if err != nil {
		r.logger.Error("Failed to update test case", "testCaseId", testCaseID, "error", err)
		return nil, fmt.Errorf("failed to update test case: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit update: %w", err)
	}
	return &tc, nil
}

// RemoveTestCase deletes a test case, reporting whether it existed.
func (r *TestCaseRepository) RemoveTestCase(ctx context.Context, testCaseID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM test_cases WHERE test_case_id = $1`, testCaseID)
	if err != nil {
		r.logger.Error("Failed to remove test case", "testCaseId", testCaseID, "error", err)
		return false, fmt.Errorf("failed to remove test case: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to remove test case: %w", err)
	}
	return affected > 0, nil
}

// RemoveAllForChallenge deletes every test case of a challenge.
func (r *TestCaseRepository) RemoveAllForChallenge(ctx context.Context, challengeID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM test_cases WHERE challenge_id = $1`, challengeID)
	if err != nil {
		r.logger.Error("Failed to remove test cases", "challengeId", challengeID, "error", err)
		return 0, fmt.Errorf("failed to remove test cases: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to remove test cases: %w", err)
	}
	return affected, nil
}
