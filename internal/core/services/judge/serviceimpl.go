package judge

import (
	"context"
	"strings"

	"gitlab.com/codearena-2025.net/internal/core/ports/primary"
	"gitlab.com/codearena-2025.net/internal/core/ports/secondary"
	"gitlab.com/codearena-2025.net/internal/domain"
	"gitlab.com/codearena-2025.net/internal/static/errs"
)

var _ IJudgeService = (*Service)(nil)

// Service implements IJudgeService. It pulls test cases from the catalog,
// drives each through the code runner in catalog order and aggregates a
// weighted score and verdict. Each call is a fresh, complete run with no
// memory of prior runs; two concurrent calls share nothing but the catalog.
type Service struct {
	testCases  secondary.TestCaseRepository
	runner     secondary.CodeRunner
	comparator OutputComparator
	logger     primary.Logger
}

// NewService creates a new judge service.
func NewService(testCases secondary.TestCaseRepository, runner secondary.CodeRunner, logger primary.Logger) *Service {
	return &Service{
		testCases: testCases,
		runner:    runner,
		logger:    logger,
	}
}

// Evaluate runs full grading over every test case of the challenge.
func (s *Service) Evaluate(ctx context.Context, challengeID int64, sourceCode string, languageID int, submissionID *int64) (*domain.SubmissionEvaluation, error) {
	return s.evaluate(ctx, challengeID, sourceCode, languageID, submissionID, s.testCases.AllTestCases)
}

// RunVisible runs preview grading over the sample, non-hidden subset.
func (s *Service) RunVisible(ctx context.Context, challengeID int64, sourceCode string, languageID int) (*domain.SubmissionEvaluation, error) {
	return s.evaluate(ctx, challengeID, sourceCode, languageID, nil, s.testCases.VisibleTestCases)
}

type testCaseSelector func(ctx context.Context, challengeID int64) ([]*domain.TestCase, error)

func (s *Service) evaluate(ctx context.Context, challengeID int64, sourceCode string, languageID int, submissionID *int64, load testCaseSelector) (*domain.SubmissionEvaluation, error) {
	if strings.TrimSpace(sourceCode) == "" {
		return nil, errs.EmptySourceCode
	}

	testCases, err := load(ctx, challengeID)
	if err != nil {
		s.logger.Error("Failed to load test cases", "challengeId", challengeID, "error", err)
		return nil, err
	}
	if len(testCases) == 0 {
		return nil, errs.NoTestCases
	}

	s.logger.Info("Evaluating submission",
		"challengeId", challengeID,
		"languageId", languageID,
		"testCases", len(testCases))

	results := make([]domain.EvaluationResult, 0, len(testCases))
	passedCount := 0
	var totalWeight, passedWeight float64

	for _, tc := range testCases {
		totalWeight += tc.Weight

		result := s.gradeTestCase(ctx, tc, sourceCode, languageID)
		if result.Passed {
			passedCount++
			passedWeight += tc.Weight
		}
		results = append(results, result)
	}

	score := 0.0
	if totalWeight > 0 {
		score = passedWeight / totalWeight * 100
	}
	verdict := domain.VerdictForScore(score)

	s.logger.Info("Submission evaluation complete",
		"challengeId", challengeID,
		"verdict", verdict,
		"score", score,
		"passed", passedCount,
		"total", len(results))

	return &domain.SubmissionEvaluation{
		SubmissionID: submissionID,
		ChallengeID:  challengeID,
		PassedCount:  passedCount,
		TotalCount:   len(results),
		Score:        score,
		TotalWeight:  totalWeight,
		Results:      results,
		Status:       verdict,
	}, nil
}

// gradeTestCase runs one test case and classifies the outcome. A runner
// failure is folded into a failing result so that one case's infrastructure
// failure never aborts grading of the remaining cases.
func (s *Service) gradeTestCase(ctx context.Context, tc *domain.TestCase, sourceCode string, languageID int) domain.EvaluationResult {
	exec, err := s.runner.Run(ctx, &domain.ExecutionRequest{
		LanguageID: languageID,
		SourceCode: sourceCode,
		Stdin:      tc.Input,
	})
	if err != nil {
		s.logger.Error("Execution backend failure", "testCaseId", tc.ID, "error", err)
		return domain.EvaluationResult{
			TestCaseID: tc.ID,
			Passed:     false,
			Weight:     tc.Weight,
			Stdout:     "",
			Stderr:     err.Error(),
			Error:      "Execution Error",
		}
	}

	status := exec.Status.ID
	if !status.OK() {
		return domain.EvaluationResult{
			TestCaseID:    tc.ID,
			Passed:        false,
			Weight:        tc.Weight,
			Stdout:        exec.Stdout,
			Stderr:        exec.Stderr,
			CompileOutput: exec.CompileOutput,
			Time:          exec.Time,
			Memory:        exec.Memory,
			Status:        &status,
			Error:         status.Label(),
		}
	}

	passed := s.comparator.Matches(exec.Stdout, tc.ExpectedOutput)
	s.logger.Debug("Test case graded", "testCaseId", tc.ID, "passed", passed)

	return domain.EvaluationResult{
		TestCaseID:    tc.ID,
		Passed:        passed,
		Weight:        tc.Weight,
		Stdout:        exec.Stdout,
		Stderr:        exec.Stderr,
		CompileOutput: exec.CompileOutput,
		Time:          exec.Time,
		Memory:        exec.Memory,
		Status:        &status,
	}
}
