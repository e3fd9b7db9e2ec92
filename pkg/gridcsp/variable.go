// Package gridcsp provides constraint satisfaction search.
// This file defines variables and the partial assignment threaded
// through the search.
package gridcsp

// Variable identifies a decision variable. Variables are dense indices
// into the problem's variable set: the i-th variable returned by
// Problem.Variables has Variable(i). Adapters map their own notion of
// position (a grid cell, a row, a named region) onto these indices.
type Variable int

// Assignment maps a subset of variables to chosen values. Entries are
// ordered by the depth at which they were made, so the engine can undo
// them in strict reverse order when backtracking.
//
// Values are positive integers; the meaning of a value (a symbol, a
// column, a digit, a color) belongs to the problem adapter. Zero marks
// an unassigned variable internally and is never a legal value.
type Assignment struct {
	values []int
	order  []Variable
}

func newAssignment(n int) *Assignment {
	return &Assignment{values: make([]int, n)}
}

// Len returns the number of assigned variables.
func (a *Assignment) Len() int { return len(a.order) }

// Has reports whether v is assigned.
func (a *Assignment) Has(v Variable) bool {
	return int(v) >= 0 && int(v) < len(a.values) && a.values[v] != 0
}

// Value returns the value assigned to v, and whether v is assigned.
func (a *Assignment) Value(v Variable) (int, bool) {
	if !a.Has(v) {
		return 0, false
	}
	return a.values[v], true
}

// Variables returns the assigned variables in assignment order.
func (a *Assignment) Variables() []Variable {
	out := make([]Variable, len(a.order))
	copy(out, a.order)
	return out
}

// Map returns a copy of the assignment as a plain map.
func (a *Assignment) Map() map[Variable]int {
	out := make(map[Variable]int, len(a.order))
	for _, v := range a.order {
		out[v] = a.values[v]
	}
	return out
}

// set records v = value. The caller guarantees v is unassigned.
func (a *Assignment) set(v Variable, value int) {
	a.values[v] = value
	a.order = append(a.order, v)
}

// unsetLast removes the most recent entry.
func (a *Assignment) unsetLast() {
	last := a.order[len(a.order)-1]
	a.values[last] = 0
	a.order = a.order[:len(a.order)-1]
}

// mark returns an undo token for the current depth.
func (a *Assignment) mark() int { return len(a.order) }

// truncate removes every entry made after the given mark, most recent first.
func (a *Assignment) truncate(m int) {
	for len(a.order) > m {
		a.unsetLast()
	}
}
