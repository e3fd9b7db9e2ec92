// Package gridcsp provides constraint satisfaction search.
// This file defines the structured trace hook. Tracing is an observer of
// the search, decoupled from its control flow: the engine emits typed
// events and never changes behavior based on whether anyone listens.
package gridcsp

// TraceKind identifies a search event.
type TraceKind int

const (
	// TraceVariableSelected fires when the selector picks the next
	// variable to branch on.
	TraceVariableSelected TraceKind = iota

	// TraceValueRejected fires when a candidate value fails the
	// consistency check or is killed by propagation. Reason says which.
	TraceValueRejected

	// TraceAssigned fires after a tentative assignment is made.
	TraceAssigned

	// TraceForced fires when propagation deduces a forced assignment.
	TraceForced

	// TraceBacktracked fires when a branch is undone.
	TraceBacktracked

	// TraceRestartStarted fires when the restart supervisor begins a
	// fresh attempt.
	TraceRestartStarted
)

// String returns the event kind name.
func (k TraceKind) String() string {
	switch k {
	case TraceVariableSelected:
		return "variable-selected"
	case TraceValueRejected:
		return "value-rejected"
	case TraceAssigned:
		return "assigned"
	case TraceForced:
		return "forced"
	case TraceBacktracked:
		return "backtracked"
	case TraceRestartStarted:
		return "restart-started"
	default:
		return "unknown"
	}
}

// TraceEvent is a single observation of the search.
type TraceEvent struct {
	Kind     TraceKind
	Variable Variable
	Value    int
	Depth    int
	Attempt  int
	Reason   string
}

// TraceFunc receives trace events.
type TraceFunc func(TraceEvent)
