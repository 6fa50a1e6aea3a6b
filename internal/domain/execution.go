package domain

// ExecStatus is the status id reported by the execution backend for one run.
// Id 1 means the program ran to completion; everything else is a program
// failure of some kind.
type ExecStatus int

const (
	ExecStatusOK                ExecStatus = 1
	ExecStatusCompilationError  ExecStatus = 6
	ExecStatusRuntimeError      ExecStatus = 7
	ExecStatusTimeout           ExecStatus = 8
	ExecStatusMemoryLimitExceed ExecStatus = 9
)

// OK reports whether the program ran to completion.
func (s ExecStatus) OK() bool {
	return s == ExecStatusOK
}

// Label maps a failing status id to its human-readable error label. The
// mapping is total: ids the backend may add later fall through to
// "Unknown Error" instead of producing an undefined label.
func (s ExecStatus) Label() string {
	switch s {
	case ExecStatusCompilationError:
		return "Compilation Error"
	case ExecStatusRuntimeError:
		return "Runtime Error"
	case ExecStatusTimeout:
		return "Execution Timeout"
	case ExecStatusMemoryLimitExceed:
		return "Memory Limit Exceeded"
	default:
		return "Unknown Error"
	}
}

// ExecutionRequest is one unit of work for the execution backend: run the
// source in the given language feeding Stdin to the program.
type ExecutionRequest struct {
	LanguageID int    `json:"language_id"`
	SourceCode string `json:"source_code"`
	Stdin      string `json:"stdin"`
}

// ExecutionStatus is the backend's status block for a run.
type ExecutionStatus struct {
	ID          ExecStatus `json:"id"`
	Description string     `json:"description"`
}

// ExecutionResult is the normalized outcome of a single sandbox run. Time is
// in seconds and Memory in KB; both are absent when the backend did not
// measure them (e.g. the program never started).
type ExecutionResult struct {
	Stdout        string          `json:"stdout"`
	Stderr        string          `json:"stderr"`
	CompileOutput string          `json:"compile_output,omitempty"`
	Status        ExecutionStatus `json:"status"`
	Time          *float64        `json:"time,omitempty"`
	Memory        *float64        `json:"memory,omitempty"`
}
