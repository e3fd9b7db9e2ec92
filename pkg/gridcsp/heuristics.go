// Package gridcsp provides constraint satisfaction search.
// This file implements variable and value ordering heuristics.
//
// The default policy is MRV (minimum remaining values) with degree
// tie-breaking for variables and LCV (least constraining value) for
// values. Alternate fixed orderings and full randomization exist to
// diversify search trajectories across restarts; heuristics affect
// speed, never correctness.
package gridcsp

import (
	"math/rand"
	"sort"
)

type selector struct {
	solver     *Solver
	strategy   Strategy
	rng        *rand.Rand
	randomTies bool

	// order is the base visiting order for the fixed strategies and
	// the input-order tie-break for MRV.
	order []Variable
}

func newSelector(s *Solver, strategy Strategy, rng *rand.Rand, randomTies bool) *selector {
	order := make([]Variable, s.nvars)
	for i := range order {
		order[i] = Variable(i)
	}
	switch strategy {
	case StrategyRandom:
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	case StrategyColumnMajor:
		if s.positioner != nil {
			sort.SliceStable(order, func(i, j int) bool {
				ri, ci := s.positioner.Position(order[i])
				rj, cj := s.positioner.Position(order[j])
				if ci != cj {
					return ci < cj
				}
				return ri < rj
			})
		}
	}
	return &selector{
		solver:     s,
		strategy:   strategy,
		rng:        rng,
		randomTies: randomTies,
		order:      order,
	}
}

// next chooses the unassigned variable to branch on. Returns false when
// every variable is assigned.
func (sel *selector) next(st *State) (Variable, bool) {
	if sel.strategy != StrategyMRV {
		for _, v := range sel.order {
			if !st.assignment.Has(v) {
				return v, true
			}
		}
		return 0, false
	}
	return sel.nextMRV(st)
}

// nextMRV selects by minimum remaining values, counting domain values
// still consistent with the partial assignment. Ties fall to the
// variable with the highest degree, then to input order (or randomly
// when restart diversification asks for it).
func (sel *selector) nextMRV(st *State) (Variable, bool) {
	best := Variable(-1)
	bestRemaining := 0
	bestDegree := 0
	nties := 0

	for _, v := range sel.order {
		if st.assignment.Has(v) {
			continue
		}
		remaining := sel.remainingValues(st, v)
		if best >= 0 && remaining > bestRemaining {
			continue
		}
		degree := sel.degreeOf(st, v)
		switch {
		case best < 0 || remaining < bestRemaining:
			best, bestRemaining, bestDegree, nties = v, remaining, degree, 1
		case degree > bestDegree:
			best, bestDegree, nties = v, degree, 1
		case degree == bestDegree:
			nties++
			// Reservoir pick keeps each tied variable equally likely.
			if sel.randomTies && sel.rng.Intn(nties) == 0 {
				best = v
			}
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

// remainingValues counts values of v's current domain that pass the
// consistency check against the partial assignment.
func (sel *selector) remainingValues(st *State, v Variable) int {
	n := 0
	st.store.Domain(v).Iterate(func(value int) {
		if sel.solver.problem.IsConsistent(v, value, st.assignment) {
			n++
		}
	})
	return n
}

func (sel *selector) degreeOf(st *State, v Variable) int {
	if sel.solver.degree != nil {
		return sel.solver.degree.Degree(v, st.assignment)
	}
	if sel.solver.neighborly != nil {
		return len(sel.solver.neighborly.Neighbors(v))
	}
	return 0
}

// orderValues orders v's candidate values for branching. MRV pairs with
// LCV lookahead when the problem exposes neighbors; the fixed strategies
// use ascending domain order; the random strategy shuffles.
func (sel *selector) orderValues(st *State, v Variable) []int {
	values := st.store.Domain(v).Values()
	switch sel.strategy {
	case StrategyRandom:
		sel.rng.Shuffle(len(values), func(i, j int) { values[i], values[j] = values[j], values[i] })
	case StrategyMRV:
		if sel.solver.neighborly != nil {
			sel.sortLeastConstraining(st, v, values)
		}
	}
	return values
}

// sortLeastConstraining orders values by how many options they would
// eliminate from unassigned neighbors' domains, fewest first. The count
// is computed by tentatively extending the assignment with each value
// and probing the neighbors' remaining candidates.
func (sel *selector) sortLeastConstraining(st *State, v Variable, values []int) {
	if len(values) < 2 {
		return
	}
	neighbors := sel.solver.neighborly.Neighbors(v)
	eliminated := make(map[int]int, len(values))
	for _, value := range values {
		st.assignment.set(v, value)
		killed := 0
		for _, w := range neighbors {
			if st.assignment.Has(w) {
				continue
			}
			st.store.Domain(w).Iterate(func(wval int) {
				if !sel.solver.problem.IsConsistent(w, wval, st.assignment) {
					killed++
				}
			})
		}
		st.assignment.unsetLast()
		eliminated[value] = killed
	}
	sort.SliceStable(values, func(i, j int) bool {
		return eliminated[values[i]] < eliminated[values[j]]
	})
}
