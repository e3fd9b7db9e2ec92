// Package gridcsp provides constraint satisfaction search.
// This file defines the statistics block attached to every result.
package gridcsp

import "time"

// Stats captures what a solve cost. All counters are cumulative across
// restart attempts when the restart supervisor is used.
type Stats struct {
	// Nodes is the number of search nodes entered.
	Nodes int64

	// Backtracks is the number of undone branches.
	Backtracks int64

	// Forced is the number of assignments deduced by propagation rather
	// than chosen by search.
	Forced int64

	// Pruned is the number of domain values removed by forward checking.
	Pruned int64

	// MaxDepth is the deepest recursion reached.
	MaxDepth int

	// Attempts is the number of restart attempts consumed (1 for a
	// plain solve).
	Attempts int

	// Duration is total wall-clock solving time.
	Duration time.Duration
}

func (s *Stats) add(other Stats) {
	s.Nodes += other.Nodes
	s.Backtracks += other.Backtracks
	s.Forced += other.Forced
	s.Pruned += other.Pruned
	if other.MaxDepth > s.MaxDepth {
		s.MaxDepth = other.MaxDepth
	}
	s.Attempts += other.Attempts
	s.Duration += other.Duration
}
