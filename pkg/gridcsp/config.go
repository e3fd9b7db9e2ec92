// Package gridcsp provides constraint satisfaction search.
// This file holds solver configuration.
package gridcsp

// Strategy selects how the engine orders variables and values.
type Strategy int

const (
	// StrategyMRV picks the unassigned variable with the fewest values
	// still consistent with the partial assignment, breaking ties by
	// degree and then input order. Values are ordered least-constraining
	// first when the problem exposes neighbors.
	StrategyMRV Strategy = iota

	// StrategyRandom visits variables in a shuffled order and tries
	// values in a shuffled order. Used to diversify restarts.
	StrategyRandom

	// StrategyRowMajor visits variables in input (row-major) order with
	// values in ascending order.
	StrategyRowMajor

	// StrategyColumnMajor visits variables column-first when the problem
	// exposes positions, falling back to input order otherwise.
	StrategyColumnMajor
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyMRV:
		return "mrv"
	case StrategyRandom:
		return "random"
	case StrategyRowMajor:
		return "row-major"
	case StrategyColumnMajor:
		return "column-major"
	default:
		return "unknown"
	}
}

// Config controls a single solve. The zero value is not useful; start
// from DefaultConfig.
type Config struct {
	// VarStrategy selects the variable/value ordering heuristic.
	VarStrategy Strategy

	// NodeBudget bounds the number of search nodes explored. Zero means
	// unlimited. Exceeding the budget surfaces as StatusTimedOut,
	// exactly like a deadline hit, which keeps tests reproducible
	// independent of wall-clock time.
	NodeBudget int64

	// ForwardChecking prunes the domains of unassigned neighbors after
	// each assignment, when the problem exposes neighbors.
	ForwardChecking bool

	// Seed feeds the PRNG behind StrategyRandom and randomized
	// tie-breaking. The same seed reproduces the same search.
	Seed int64

	// Trace, when non-nil, receives structured search events. It is
	// invoked synchronously and must be cheap.
	Trace TraceFunc

	// randomTies breaks MRV ties randomly instead of by input order.
	// Enabled by the restart supervisor.
	randomTies bool
}

// DefaultConfig returns the standard configuration: MRV with forward
// checking, no node budget, seed 1.
func DefaultConfig() *Config {
	return &Config{
		VarStrategy:     StrategyMRV,
		ForwardChecking: true,
		Seed:            1,
	}
}

func (c *Config) clone() *Config {
	dup := *c
	return &dup
}
