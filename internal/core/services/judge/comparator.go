package judge

import "strings"

// OutputComparator decides whether an execution's actual output matches a
// test case's expected output.
//
// Normalization policy, applied to both sides before an exact comparison:
//   - CRLF and bare CR line endings become LF
//   - trailing spaces and tabs are stripped from every line
//   - leading and trailing blank lines are stripped
//
// Case and internal whitespace are significant. Trailing-newline and line
// ending noise are artifacts of the execution backend; everything else is
// treated as part of the answer.
type OutputComparator struct{}

// Matches reports whether actual and expected are equal under the policy.
func (OutputComparator) Matches(actual, expected string) bool {
	return normalizeOutput(actual) == normalizeOutput(expected)
}

func normalizeOutput(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t")
	}

	start, end := 0, len(lines)
	for start < end && lines[start] == "" {
		start++
	}
	for end > start && lines[end-1] == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}
