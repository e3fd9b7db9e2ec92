// Package gridcsp provides constraint satisfaction search.
// This file implements the restart supervisor: a bounded outer loop that
// re-runs the search with rotated heuristics to escape dead ends a
// single heuristic ordering can wander into.
package gridcsp

import (
	"context"
	"math/rand"
	"time"
)

// RestartConfig controls SolveWithRestarts.
type RestartConfig struct {
	// MaxAttempts bounds the number of search attempts.
	MaxAttempts int

	// PerAttemptTimeout bounds each attempt's wall-clock time.
	PerAttemptTimeout time.Duration

	// OverallTimeout bounds the whole supervised solve.
	OverallTimeout time.Duration

	// NodeBudget bounds each attempt's explored nodes. Zero means
	// unlimited.
	NodeBudget int64

	// Seed drives the per-attempt random perturbations. The same seed
	// reproduces the same sequence of attempts.
	Seed int64
}

// DefaultRestartConfig returns the standard supervision: 20 attempts of
// at most 5 seconds and 100000 nodes each, within a minute overall.
func DefaultRestartConfig() RestartConfig {
	return RestartConfig{
		MaxAttempts:       20,
		PerAttemptTimeout: 5 * time.Second,
		OverallTimeout:    time.Minute,
		NodeBudget:        100000,
		Seed:              1,
	}
}

// restartRotation is the fixed strategy cycle across attempts.
var restartRotation = [...]Strategy{
	StrategyMRV,
	StrategyRandom,
	StrategyRowMajor,
	StrategyColumnMajor,
}

// SolveWithRestarts runs the search repeatedly, reinitializing the
// assignment and domain store wholesale before each attempt and rotating
// the selection strategy: MRV with random tie-breaking, fully
// randomized, row-major, column-major, then around again. The first
// attempt to solve wins.
//
// An attempt that returns StatusExhausted ends the supervision
// immediately: exhaustion is a proof that no solution exists, and
// reordering heuristics cannot change it. StatusTimedOut attempts are
// retried until MaxAttempts or the overall deadline runs out. The
// returned stats accumulate nodes and attempts across the whole run for
// diagnostics.
func (s *Solver) SolveWithRestarts(ctx context.Context, rc RestartConfig) Result {
	if rc.MaxAttempts <= 0 {
		rc.MaxAttempts = 1
	}
	if rc.OverallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, rc.OverallTimeout)
		defer cancel()
	}

	rng := rand.New(rand.NewSource(rc.Seed))
	var total Stats

	for attempt := 0; attempt < rc.MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			break
		}
		strategy := restartRotation[attempt%len(restartRotation)]
		s.trace(TraceEvent{Kind: TraceRestartStarted, Attempt: attempt, Reason: strategy.String()})

		attemptCtx := ctx
		var cancel context.CancelFunc
		if rc.PerAttemptTimeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, rc.PerAttemptTimeout)
		}
		sel := newSelector(s, strategy, rng, true)
		res := s.solveOnce(attemptCtx, sel, rc.NodeBudget, attempt)
		if cancel != nil {
			cancel()
		}

		total.add(res.Stats)
		switch res.Status {
		case StatusSolved, StatusExhausted:
			res.Stats = total
			return res
		}
	}

	return Result{Status: StatusTimedOut, Stats: total}
}
