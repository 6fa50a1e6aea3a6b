package errs

import "errors"

var (
	EmptySourceCode = errors.New("source code cannot be empty")
	NoTestCases     = errors.New("no test cases found for this challenge")
	InvalidWeight   = errors.New("test case weight must be positive")
)

// IsValidation reports whether err is a client-input validation failure that
// should map to a 4xx response rather than a graded submission.
func IsValidation(err error) bool {
	return errors.Is(err, EmptySourceCode) ||
		errors.Is(err, NoTestCases) ||
		errors.Is(err, InvalidWeight)
}
