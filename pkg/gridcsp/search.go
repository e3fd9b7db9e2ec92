// Package gridcsp provides constraint satisfaction search.
// This file implements the backtracking search engine.
//
// The engine is strictly sequential: exactly one branch is active at a
// time, every mutation of the assignment or domain store goes through an
// undo trail, and undo is stack-disciplined (last mutation reversed
// first). Deadlines and node budgets are polled cooperatively at each
// recursive entry; a single consistency check or propagation pass is
// never interrupted mid-computation.
package gridcsp

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// Status is the terminal outcome of a solve.
type Status int

const (
	// StatusSolved means a complete consistent assignment was found.
	StatusSolved Status = iota

	// StatusExhausted means the search space was fully explored without
	// finding a solution and without hitting a deadline: the instance is
	// provably unsatisfiable under the given constraints.
	StatusExhausted

	// StatusTimedOut means the deadline or node budget was exceeded
	// before the search space was exhausted. Distinct from
	// StatusExhausted: nothing is proven.
	StatusTimedOut
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusSolved:
		return "solved"
	case StatusExhausted:
		return "exhausted"
	case StatusTimedOut:
		return "timed-out"
	default:
		return "unknown"
	}
}

// Result is the outcome of Solve or SolveWithRestarts.
type Result struct {
	// Status is the terminal search state.
	Status Status

	// Solution holds the complete assignment when Status is
	// StatusSolved, nil otherwise.
	Solution map[Variable]int

	// Stats reports search effort for diagnostics.
	Stats Stats
}

// Solver runs backtracking search over one problem instance. The
// instance's variables and constraints are fixed at construction; only
// the assignment and domain store mutate during search, and both are
// restored wholesale between restart attempts.
//
// A Solver is not safe for concurrent use.
type Solver struct {
	problem  Problem
	config   *Config
	initial  []ValueSet
	nvars    int
	maxValue int

	// optional problem capabilities, nil when not implemented
	prop       Propagator
	neighborly Neighborly
	degree     DegreeRanker
	positioner Positioner
	completer  Completer
}

// State is the mutable search state threaded through one recursion
// branch: the partial assignment, the prunable domain store, and the
// effort counters. It is owned by exactly one branch at a time; the
// engine snapshots it before each tentative assignment and restores it
// before trying the next value.
//
// Propagators receive the State to read assigned values and to record
// forced assignments via Force.
type State struct {
	assignment *Assignment
	store      *DomainStore
	solver     *Solver

	nodes      int64
	backtracks int64
	forced     int64
	pruned     int64
	maxDepth   int
	attempt    int
	depth      int
}

// New creates a solver for the problem. The instance is validated
// eagerly: a nil problem, non-dense variable identifiers, an empty or
// non-positive initial domain, or a failing problem Validate all return
// an error wrapping ErrMalformedInstance. Search never starts on a
// malformed instance.
func New(p Problem, config *Config) (*Solver, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil problem", ErrMalformedInstance)
	}
	if config == nil {
		config = DefaultConfig()
	}
	if v, ok := p.(Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedInstance, err)
		}
	}
	vars := p.Variables()
	for i, v := range vars {
		if v != Variable(i) {
			return nil, fmt.Errorf("%w: variable identifiers must be dense, got %d at index %d", ErrMalformedInstance, v, i)
		}
	}
	domains := p.InitialDomains()
	if len(domains) != len(vars) {
		return nil, fmt.Errorf("%w: %d variables but %d domains", ErrMalformedInstance, len(vars), len(domains))
	}
	maxValue := 0
	for i, d := range domains {
		if len(d) == 0 {
			return nil, fmt.Errorf("%w: variable %d has an empty initial domain", ErrMalformedInstance, i)
		}
		for _, val := range d {
			if val < 1 {
				return nil, fmt.Errorf("%w: variable %d has non-positive value %d", ErrMalformedInstance, i, val)
			}
			if val > maxValue {
				maxValue = val
			}
		}
	}
	initial := make([]ValueSet, len(domains))
	for i, d := range domains {
		initial[i] = NewValueSet(maxValue, d...)
	}
	s := &Solver{
		problem:  p,
		config:   config.clone(),
		initial:  initial,
		nvars:    len(vars),
		maxValue: maxValue,
	}
	if prop, ok := p.(Propagator); ok {
		s.prop = prop
	}
	if nb, ok := p.(Neighborly); ok {
		s.neighborly = nb
	}
	if dr, ok := p.(DegreeRanker); ok {
		s.degree = dr
	}
	if pos, ok := p.(Positioner); ok {
		s.positioner = pos
	}
	if cp, ok := p.(Completer); ok {
		s.completer = cp
	}
	return s, nil
}

// Solve runs one backtracking search. The context's deadline bounds
// wall-clock time; exceeding it, or the configured node budget, returns
// StatusTimedOut. The assignment and domain store are fully restored
// before returning on any non-solved outcome.
func (s *Solver) Solve(ctx context.Context) Result {
	rng := rand.New(rand.NewSource(s.config.Seed))
	sel := newSelector(s, s.config.VarStrategy, rng, s.config.randomTies)
	return s.solveOnce(ctx, sel, s.config.NodeBudget, 0)
}

func (s *Solver) solveOnce(ctx context.Context, sel *selector, budget int64, attempt int) Result {
	start := time.Now()
	st := &State{
		assignment: newAssignment(s.nvars),
		store:      NewDomainStore(s.initial),
		solver:     s,
		attempt:    attempt,
	}

	status := s.root(ctx, st, sel, budget)

	res := Result{Status: status, Stats: Stats{
		Nodes:      st.nodes,
		Backtracks: st.backtracks,
		Forced:     st.forced,
		Pruned:     st.pruned,
		MaxDepth:   st.maxDepth,
		Attempts:   1,
		Duration:   time.Since(start),
	}}
	if status == StatusSolved {
		res.Solution = st.assignment.Map()
	}
	return res
}

// root runs the initial propagation pass and then the recursive search.
// A contradiction already present in the givens is detected here and
// reported as StatusExhausted without entering the search at all.
func (s *Solver) root(ctx context.Context, st *State, sel *selector, budget int64) Status {
	if ctx.Err() != nil {
		return StatusTimedOut
	}
	snap := st.store.Snapshot()
	mark := st.assignment.mark()
	if s.prop != nil {
		if err := s.prop.Propagate(st); err != nil {
			st.undo(snap, mark)
			return StatusExhausted
		}
	}
	status := s.search(ctx, st, sel, budget)
	if status != StatusSolved {
		st.undo(snap, mark)
	}
	return status
}

// search is the recursive backtracking loop. Deadline and node budget
// are checked before anything else at every entry; exceeding either
// unwinds immediately as StatusTimedOut.
func (s *Solver) search(ctx context.Context, st *State, sel *selector, budget int64) Status {
	if ctx.Err() != nil {
		return StatusTimedOut
	}
	if budget > 0 && st.nodes >= budget {
		return StatusTimedOut
	}
	st.nodes++
	if st.depth > st.maxDepth {
		st.maxDepth = st.depth
	}

	if s.complete(st.assignment) {
		return StatusSolved
	}

	v, ok := sel.next(st)
	if !ok {
		// Every variable assigned but the completeness hook disagrees.
		return StatusExhausted
	}
	s.trace(TraceEvent{Kind: TraceVariableSelected, Variable: v, Depth: st.depth, Attempt: st.attempt})

	for _, value := range sel.orderValues(st, v) {
		if !s.problem.IsConsistent(v, value, st.assignment) {
			s.trace(TraceEvent{Kind: TraceValueRejected, Variable: v, Value: value, Depth: st.depth, Attempt: st.attempt, Reason: "inconsistent"})
			continue
		}

		snap := st.store.Snapshot()
		mark := st.assignment.mark()

		st.assignment.set(v, value)
		st.store.Fix(v, value)
		s.trace(TraceEvent{Kind: TraceAssigned, Variable: v, Value: value, Depth: st.depth, Attempt: st.attempt})

		dead := false
		if s.prop != nil {
			if err := s.prop.Propagate(st); err != nil {
				s.trace(TraceEvent{Kind: TraceValueRejected, Variable: v, Value: value, Depth: st.depth, Attempt: st.attempt, Reason: "propagation"})
				dead = true
			}
		}
		if !dead && s.config.ForwardChecking && s.neighborly != nil {
			if err := s.forwardCheck(st, v); err != nil {
				s.trace(TraceEvent{Kind: TraceValueRejected, Variable: v, Value: value, Depth: st.depth, Attempt: st.attempt, Reason: "domain wipeout"})
				dead = true
			}
		}

		if !dead {
			st.depth++
			status := s.search(ctx, st, sel, budget)
			st.depth--
			switch status {
			case StatusSolved:
				return StatusSolved
			case StatusTimedOut:
				st.undo(snap, mark)
				return StatusTimedOut
			}
		}

		st.undo(snap, mark)
		st.backtracks++
		s.trace(TraceEvent{Kind: TraceBacktracked, Variable: v, Value: value, Depth: st.depth, Attempt: st.attempt})
	}

	return StatusExhausted
}

// forwardCheck prunes the domains of unassigned neighbors of v down to
// values still consistent with the extended assignment. Returns
// ErrDomainWipeout if any neighbor's domain empties.
func (s *Solver) forwardCheck(st *State, v Variable) error {
	for _, w := range s.neighborly.Neighbors(v) {
		if st.assignment.Has(w) {
			continue
		}
		removed := st.store.Prune(w, func(value int) bool {
			return !s.problem.IsConsistent(w, value, st.assignment)
		})
		st.pruned += int64(removed)
		if removed > 0 && st.store.IsEmpty(w) {
			return ErrDomainWipeout
		}
	}
	return nil
}

func (s *Solver) complete(a *Assignment) bool {
	if s.completer != nil {
		return s.completer.IsComplete(a)
	}
	return a.Len() == s.nvars
}

func (s *Solver) trace(ev TraceEvent) {
	if s.config.Trace != nil {
		s.config.Trace(ev)
	}
}

// Value returns the value assigned to v, if any.
func (st *State) Value(v Variable) (int, bool) { return st.assignment.Value(v) }

// Assignment returns the current partial assignment. Callers must treat
// it as read-only.
func (st *State) Assignment() *Assignment { return st.assignment }

// Domain returns v's current candidate set.
func (st *State) Domain(v Variable) ValueSet { return st.store.Domain(v) }

// Force records a deduced assignment v = value. It fails with
// ErrInconsistent if v already holds a different value or value has been
// pruned from v's domain. Forced assignments are undone together with
// the tentative assignment that triggered them.
func (st *State) Force(v Variable, value int) error {
	if cur, ok := st.assignment.Value(v); ok {
		if cur == value {
			return nil
		}
		return ErrInconsistent
	}
	if !st.store.Fix(v, value) {
		return ErrInconsistent
	}
	st.assignment.set(v, value)
	st.forced++
	st.solver.trace(TraceEvent{Kind: TraceForced, Variable: v, Value: value, Depth: st.depth, Attempt: st.attempt})
	return nil
}

// Prune removes values of an unassigned variable's domain, returning
// ErrDomainWipeout if the domain empties.
func (st *State) Prune(v Variable, drop func(value int) bool) error {
	removed := st.store.Prune(v, drop)
	st.pruned += int64(removed)
	if removed > 0 && st.store.IsEmpty(v) {
		return ErrDomainWipeout
	}
	return nil
}

func (st *State) undo(snap Snapshot, mark int) {
	st.store.Restore(snap)
	st.assignment.truncate(mark)
}
