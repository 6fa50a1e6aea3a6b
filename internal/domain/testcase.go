package domain

// TestCase is a single input/expected-output pair registered for a challenge.
// Weight controls how much the case contributes to the final score.
type TestCase struct {
	ID             int64   `json:"test_case_id" db:"test_case_id"`
	ChallengeID    int64   `json:"challenge_id" db:"challenge_id"`
	Input          string  `json:"input" db:"input"`
	ExpectedOutput string  `json:"expected_output" db:"expected_output"`
	Description    string  `json:"description" db:"description"`
	IsSample       bool    `json:"is_sample" db:"is_sample"`
	IsHidden       bool    `json:"is_hidden" db:"is_hidden"`
	Weight         float64 `json:"weight" db:"weight"`
}

// Visible reports whether the case may be shown to the submitter and used
// for preview runs. Hidden cases are withheld even when flagged as samples.
func (tc *TestCase) Visible() bool {
	return tc.IsSample && !tc.IsHidden
}

// TestCaseUpdate carries a partial update for a test case. Nil fields keep
// their current value.
type TestCaseUpdate struct {
	Input          *string  `json:"input"`
	ExpectedOutput *string  `json:"expected_output"`
	Description    *string  `json:"description"`
	IsSample       *bool    `json:"is_sample"`
	IsHidden       *bool    `json:"is_hidden"`
	Weight         *float64 `json:"weight"`
}

// Apply copies the non-nil fields onto tc.
func (u *TestCaseUpdate) Apply(tc *TestCase) {
	if u.Input != nil {
		tc.Input = *u.Input
	}
	if u.ExpectedOutput != nil {
		tc.ExpectedOutput = *u.ExpectedOutput
	}
	if u.Description != nil {
		tc.Description = *u.Description
	}
	if u.IsSample != nil {
		tc.IsSample = *u.IsSample
	}
	if u.IsHidden != nil {
		tc.IsHidden = *u.IsHidden
	}
	if u.Weight != nil {
		tc.Weight = *u.Weight
	}
}
