// Package gridcsp provides constraint satisfaction search.
// This file defines the capability interface problems implement to be
// solved by the engine, plus a generic scope/predicate problem type.
package gridcsp

import (
	"errors"
	"fmt"
)

// Problem is the contract between a puzzle and the engine. A problem
// supplies its variable set, the candidate values of each variable, and a
// consistency predicate; the engine is agnostic to what a board looks
// like.
//
// IsConsistent must be evaluated purely from the static constraints and
// the variables already present in the assignment. It must not depend on
// unassigned variables' domains. A constraint that references a currently
// unassigned variable is treated as satisfied (not yet falsifiable),
// except for aggregate quota and run-length checks, which fail early
// against partial lines.
type Problem interface {
	// Variables returns the ordered variable set. The engine requires
	// dense identifiers: the i-th entry must be Variable(i).
	Variables() []Variable

	// InitialDomains returns the ordered candidate values of each
	// variable, indexed the same way as Variables. Values are positive
	// integers. Domains must not contain values already inconsistent
	// with the static constraints alone.
	InitialDomains() [][]int

	// IsConsistent reports whether assigning value to v is compatible
	// with the current partial assignment. v itself is not present in
	// the assignment when this is called.
	IsConsistent(v Variable, value int, a *Assignment) bool
}

// Completer lets a problem override the completeness test. Without it,
// an assignment is complete when every variable is assigned.
type Completer interface {
	IsComplete(a *Assignment) bool
}

// Neighborly exposes the variables whose consistency can be affected by
// assigning v, typically cells sharing a row, column, or declared
// relation. The engine uses neighbors for forward checking and for the
// least-constraining-value lookahead; problems that do not implement it
// still solve correctly, just with weaker pruning.
type Neighborly interface {
	Neighbors(v Variable) []Variable
}

// DegreeRanker exposes the degree heuristic: how many active constraints
// v participates in, counting static relations and currently assigned
// neighbors. Used to break MRV ties.
type DegreeRanker interface {
	Degree(v Variable, a *Assignment) int
}

// Positioner exposes a grid position for a variable, enabling the
// column-major variable ordering strategy. Non-grid problems omit it.
type Positioner interface {
	Position(v Variable) (row, col int)
}

// Validator lets a problem reject malformed instances before search
// starts. The engine calls Validate during solver construction and wraps
// any error in ErrMalformedInstance.
type Validator interface {
	Validate() error
}

// Propagator deduces forced values after each assignment, pruning the
// search ahead of backtracking. Propagate is called once on the root
// state and then after every tentative assignment; it should run its
// deduction rules to a fixed point, recording forced assignments through
// State.Force so the engine can undo them symmetrically.
//
// Propagate returns ErrInconsistent (or ErrDomainWipeout) the moment a
// rule is violated or a domain empties; the engine treats either as a
// dead end and backtracks.
type Propagator interface {
	Propagate(st *State) error
}

// Constraint couples a variable scope with a predicate over a full
// sub-assignment restricted to that scope. Constraints are static for
// the lifetime of a problem instance.
type Constraint struct {
	// Scope lists the variables the predicate reads.
	Scope []Variable

	// Check evaluates the constraint on values keyed by scope variable.
	// It is only invoked once every scope variable is known.
	Check func(values map[Variable]int) bool
}

// ConstraintProblem is a generic Problem built from explicit scoped
// constraints, in the classic CSP formulation. It suits problems without
// exploitable grid structure, such as map coloring over an arbitrary
// adjacency graph.
//
// A constraint is checked only when all variables in its scope are
// assigned; until then it is trivially satisfied.
type ConstraintProblem struct {
	domains     [][]int
	constraints []Constraint
	byVar       [][]int // constraint indices touching each variable
}

// NewConstraintProblem builds a problem from per-variable candidate
// domains and a constraint list. Variable i has domain domains[i].
// Returns an error wrapping ErrMalformedInstance if any domain is empty,
// any value is non-positive, or a constraint scope references an
// undeclared variable.
func NewConstraintProblem(domains [][]int, constraints []Constraint) (*ConstraintProblem, error) {
	n := len(domains)
	if n == 0 {
		return nil, fmt.Errorf("%w: no variables", ErrMalformedInstance)
	}
	for i, d := range domains {
		if len(d) == 0 {
			return nil, fmt.Errorf("%w: variable %d has an empty domain", ErrMalformedInstance, i)
		}
		for _, val := range d {
			if val < 1 {
				return nil, fmt.Errorf("%w: variable %d has non-positive value %d", ErrMalformedInstance, i, val)
			}
		}
	}
	byVar := make([][]int, n)
	for ci, c := range constraints {
		if c.Check == nil {
			return nil, fmt.Errorf("%w: constraint %d has no predicate", ErrMalformedInstance, ci)
		}
		if len(c.Scope) == 0 {
			return nil, fmt.Errorf("%w: constraint %d has an empty scope", ErrMalformedInstance, ci)
		}
		for _, v := range c.Scope {
			if int(v) < 0 || int(v) >= n {
				return nil, fmt.Errorf("%w: constraint %d references undeclared variable %d", ErrMalformedInstance, ci, v)
			}
			byVar[v] = append(byVar[v], ci)
		}
	}
	return &ConstraintProblem{
		domains:     domains,
		constraints: constraints,
		byVar:       byVar,
	}, nil
}

// Variables implements Problem.
func (p *ConstraintProblem) Variables() []Variable {
	vars := make([]Variable, len(p.domains))
	for i := range vars {
		vars[i] = Variable(i)
	}
	return vars
}

// InitialDomains implements Problem.
func (p *ConstraintProblem) InitialDomains() [][]int { return p.domains }

// IsConsistent checks every constraint touching v whose scope is fully
// known under the assignment extended with v = value.
func (p *ConstraintProblem) IsConsistent(v Variable, value int, a *Assignment) bool {
	for _, ci := range p.byVar[v] {
		c := p.constraints[ci]
		values := make(map[Variable]int, len(c.Scope))
		known := true
		for _, sv := range c.Scope {
			if sv == v {
				values[sv] = value
				continue
			}
			val, ok := a.Value(sv)
			if !ok {
				known = false
				break
			}
			values[sv] = val
		}
		if known && !c.Check(values) {
			return false
		}
	}
	return true
}

// Neighbors returns the scope-mates of v across all constraints.
func (p *ConstraintProblem) Neighbors(v Variable) []Variable {
	seen := make(map[Variable]bool)
	var out []Variable
	for _, ci := range p.byVar[v] {
		for _, sv := range p.constraints[ci].Scope {
			if sv != v && !seen[sv] {
				seen[sv] = true
				out = append(out, sv)
			}
		}
	}
	return out
}

// Degree counts constraints on v with at least one other scope variable
// assigned, plus all binary constraints on v.
func (p *ConstraintProblem) Degree(v Variable, a *Assignment) int {
	degree := 0
	for _, ci := range p.byVar[v] {
		c := p.constraints[ci]
		if len(c.Scope) == 2 {
			degree++
			continue
		}
		for _, sv := range c.Scope {
			if sv != v && a.Has(sv) {
				degree++
				break
			}
		}
	}
	return degree
}

// Engine errors. ErrMalformedInstance is the only hard failure and is
// raised at construction, never during search. ErrInconsistent and
// ErrDomainWipeout are recoverable dead-end signals used by propagators
// and forward checking; the engine never surfaces them to callers.
var (
	ErrMalformedInstance = errors.New("malformed problem instance")
	ErrInconsistent      = errors.New("assignment is inconsistent")
	ErrDomainWipeout     = errors.New("domain wiped out")
)
