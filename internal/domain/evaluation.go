package domain

// Verdict is the terminal classification of a graded submission. It is a pure
// function of the final score; there are no intermediate states.
type Verdict string

const (
	VerdictAccepted Verdict = "accepted"
	VerdictPartial  Verdict = "partial"
	VerdictRejected Verdict = "rejected"
)

// VerdictForScore classifies a score in [0,100].
func VerdictForScore(score float64) Verdict {
	switch {
	case score == 100:
		return VerdictAccepted
	case score > 0:
		return VerdictPartial
	default:
		return VerdictRejected
	}
}

// EvaluationResult is the graded outcome of one test case. Error is set only
// when the case failed for a reason other than mismatched output (program
// failure or an unreachable backend); a wrong answer is just Passed=false.
type EvaluationResult struct {
	TestCaseID    int64       `json:"test_case_id"`
	Passed        bool        `json:"passed"`
	Weight        float64     `json:"weight"`
	Stdout        string      `json:"stdout"`
	Stderr        string      `json:"stderr"`
	CompileOutput string      `json:"compile_output,omitempty"`
	Time          *float64    `json:"time,omitempty"`
	Memory        *float64    `json:"memory,omitempty"`
	Status        *ExecStatus `json:"status,omitempty"`
	Error         string      `json:"error,omitempty"`
}

// SubmissionEvaluation is the aggregate verdict for one grading request.
// It is a transient value object: the engine constructs and returns it but
// never persists it. SubmissionID is present only for full grading runs.
type SubmissionEvaluation struct {
	SubmissionID *int64             `json:"submission_id,omitempty"`
	ChallengeID  int64              `json:"challenge_id"`
	PassedCount  int                `json:"passed_count"`
	TotalCount   int                `json:"total_count"`
	Score        float64            `json:"score"`
	TotalWeight  float64            `json:"total_weight"`
	Results      []EvaluationResult `json:"results"`
	Status       Verdict            `json:"status"`
}
