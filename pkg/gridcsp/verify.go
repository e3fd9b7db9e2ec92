// Package gridcsp provides constraint satisfaction search.
// This file implements independent solution verification, used by tests
// and available to callers that want a second opinion on a solution.
package gridcsp

import "fmt"

// Verify checks a complete solution against the problem: every variable
// must be assigned a value from its initial domain, and every
// assignment must be consistent with all the others. Returns nil for a
// valid solution, or an error naming the first offending variable.
//
// Verification is independent of the search: it re-evaluates the
// problem's consistency predicate from scratch for each variable.
func Verify(p Problem, solution map[Variable]int) error {
	vars := p.Variables()
	if len(solution) != len(vars) {
		return fmt.Errorf("solution assigns %d of %d variables", len(solution), len(vars))
	}
	domains := p.InitialDomains()
	for _, v := range vars {
		value, ok := solution[v]
		if !ok {
			return fmt.Errorf("variable %d is unassigned", v)
		}
		inDomain := false
		for _, d := range domains[v] {
			if d == value {
				inDomain = true
				break
			}
		}
		if !inDomain {
			return fmt.Errorf("variable %d holds %d, outside its domain", v, value)
		}
	}
	for _, v := range vars {
		rest := newAssignment(len(vars))
		for _, w := range vars {
			if w != v {
				rest.set(w, solution[w])
			}
		}
		if !p.IsConsistent(v, solution[v], rest) {
			return fmt.Errorf("variable %d = %d conflicts with the rest of the solution", v, solution[v])
		}
	}
	return nil
}
