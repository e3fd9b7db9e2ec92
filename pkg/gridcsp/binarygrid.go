// Package gridcsp provides constraint satisfaction search.
// This file implements the binary grid puzzle adapter: fill an even
// square grid with two symbols so that each row and column holds exactly
// half of each, no more than two identical symbols run consecutively
// along a line, and declared cell relations hold ("=" cells match, "x"
// cells differ).
package gridcsp

import (
	"fmt"
	"strings"
)

// Symbols of the binary grid. Values in assignments and domains.
const (
	SymbolA = 1 // rendered as 'O'
	SymbolB = 2 // rendered as '>'
)

// Relation labels an edge between two orthogonally adjacent cells.
type Relation uint8

const (
	// RelNone places no constraint on the pair.
	RelNone Relation = iota

	// RelMatch requires both cells to hold the same symbol.
	RelMatch

	// RelDiffer requires the cells to hold different symbols.
	RelDiffer
)

type gridCell struct {
	row, col int
}

// BinaryGrid is a Problem over an n×n two-symbol grid. Only empty cells
// are variables; given cells are fixed input and contribute to every
// check without ever being branched on.
type BinaryGrid struct {
	size     int
	runLimit int
	quota    int

	given [][]int      // 0 = empty
	horiz [][]Relation // [row][col]: edge (row,col)-(row,col+1)
	vert  [][]Relation // [row][col]: edge (row,col)-(row+1,col)

	dirty bool
	cells []gridCell // variable -> cell
	index [][]int    // cell -> variable, -1 for givens
}

// NewBinaryGrid creates an empty puzzle of the given even size with no
// relations and no givens. The per-line quota is size/2 of each symbol
// and the run limit is 2.
func NewBinaryGrid(size int) (*BinaryGrid, error) {
	if size < 2 || size%2 != 0 {
		return nil, fmt.Errorf("%w: grid size must be even and positive, got %d", ErrMalformedInstance, size)
	}
	g := &BinaryGrid{
		size:     size,
		runLimit: 2,
		quota:    size / 2,
		given:    make([][]int, size),
		horiz:    make([][]Relation, size),
		vert:     make([][]Relation, size-1),
		dirty:    true,
	}
	for r := 0; r < size; r++ {
		g.given[r] = make([]int, size)
		g.horiz[r] = make([]Relation, size-1)
	}
	for r := 0; r < size-1; r++ {
		g.vert[r] = make([]Relation, size)
	}
	return g, nil
}

// Size returns the grid dimension.
func (g *BinaryGrid) Size() int { return g.size }

// SetRunLimit overrides the maximum run of identical symbols along a
// line. The default of 2 matches the standard puzzle.
func (g *BinaryGrid) SetRunLimit(limit int) error {
	if limit < 1 || limit >= g.size {
		return fmt.Errorf("%w: run limit %d out of range", ErrMalformedInstance, limit)
	}
	g.runLimit = limit
	return nil
}

// SetGiven fixes a cell to a symbol before solving.
func (g *BinaryGrid) SetGiven(row, col, symbol int) error {
	if row < 0 || row >= g.size || col < 0 || col >= g.size {
		return fmt.Errorf("%w: cell (%d,%d) out of range", ErrMalformedInstance, row, col)
	}
	if symbol != SymbolA && symbol != SymbolB {
		return fmt.Errorf("%w: symbol %d is not valid", ErrMalformedInstance, symbol)
	}
	g.given[row][col] = symbol
	g.dirty = true
	return nil
}

// SetHorizontal labels the edge between (row,col) and (row,col+1).
func (g *BinaryGrid) SetHorizontal(row, col int, rel Relation) error {
	if row < 0 || row >= g.size || col < 0 || col >= g.size-1 {
		return fmt.Errorf("%w: horizontal edge (%d,%d) out of range", ErrMalformedInstance, row, col)
	}
	g.horiz[row][col] = rel
	return nil
}

// SetVertical labels the edge between (row,col) and (row+1,col).
func (g *BinaryGrid) SetVertical(row, col int, rel Relation) error {
	if row < 0 || row >= g.size-1 || col < 0 || col >= g.size {
		return fmt.Errorf("%w: vertical edge (%d,%d) out of range", ErrMalformedInstance, row, col)
	}
	g.vert[row][col] = rel
	return nil
}

// build indexes the empty cells as variables in row-major order.
func (g *BinaryGrid) build() {
	if !g.dirty {
		return
	}
	g.cells = g.cells[:0]
	g.index = make([][]int, g.size)
	for r := 0; r < g.size; r++ {
		g.index[r] = make([]int, g.size)
		for c := 0; c < g.size; c++ {
			if g.given[r][c] == 0 {
				g.index[r][c] = len(g.cells)
				g.cells = append(g.cells, gridCell{row: r, col: c})
			} else {
				g.index[r][c] = -1
			}
		}
	}
	g.dirty = false
}

// Variables implements Problem: one variable per empty cell, row-major.
func (g *BinaryGrid) Variables() []Variable {
	g.build()
	vars := make([]Variable, len(g.cells))
	for i := range vars {
		vars[i] = Variable(i)
	}
	return vars
}

// InitialDomains implements Problem: both symbols for every empty cell.
func (g *BinaryGrid) InitialDomains() [][]int {
	g.build()
	domains := make([][]int, len(g.cells))
	for i := range domains {
		domains[i] = []int{SymbolA, SymbolB}
	}
	return domains
}

// Position implements Positioner.
func (g *BinaryGrid) Position(v Variable) (row, col int) {
	g.build()
	cell := g.cells[v]
	return cell.row, cell.col
}

// valueAt returns the symbol at (row,col) from givens or the
// assignment, or 0 for an empty cell.
func (g *BinaryGrid) valueAt(row, col int, a *Assignment) int {
	if s := g.given[row][col]; s != 0 {
		return s
	}
	if val, ok := a.Value(Variable(g.index[row][col])); ok {
		return val
	}
	return 0
}

// IsConsistent implements Problem. It checks the variable's row and
// column incrementally (a run already over the limit or a symbol count
// already over quota fails even with empty cells remaining) and the
// labeled relations on the cell's edges whose partner is known.
func (g *BinaryGrid) IsConsistent(v Variable, value int, a *Assignment) bool {
	g.build()
	cell := g.cells[v]
	at := func(r, c int) int {
		if r == cell.row && c == cell.col {
			return value
		}
		return g.valueAt(r, c, a)
	}

	line := make([]int, g.size)
	for c := 0; c < g.size; c++ {
		line[c] = at(cell.row, c)
	}
	if !g.lineConsistent(line) {
		return false
	}
	for r := 0; r < g.size; r++ {
		line[r] = at(r, cell.col)
	}
	if !g.lineConsistent(line) {
		return false
	}

	r, c := cell.row, cell.col
	if c > 0 && !relationHolds(g.horiz[r][c-1], at(r, c-1), value) {
		return false
	}
	if c < g.size-1 && !relationHolds(g.horiz[r][c], value, at(r, c+1)) {
		return false
	}
	if r > 0 && !relationHolds(g.vert[r-1][c], at(r-1, c), value) {
		return false
	}
	if r < g.size-1 && !relationHolds(g.vert[r][c], value, at(r+1, c)) {
		return false
	}
	return true
}

// lineConsistent checks one row or column, zeros marking empty cells.
// Empty cells break runs; counts must not exceed the quota, and a full
// line must hit the quota exactly.
func (g *BinaryGrid) lineConsistent(line []int) bool {
	run := 0
	last := 0
	countA, countB := 0, 0
	for _, s := range line {
		if s == 0 {
			run, last = 0, 0
			continue
		}
		if s == last {
			run++
			if run > g.runLimit {
				return false
			}
		} else {
			run, last = 1, s
		}
		if s == SymbolA {
			countA++
		} else {
			countB++
		}
	}
	if countA > g.quota || countB > g.quota {
		return false
	}
	if countA+countB == g.size && countA != g.quota {
		return false
	}
	return true
}

// relationHolds evaluates a labeled edge. An edge with an unknown side
// is not yet falsifiable.
func relationHolds(rel Relation, a, b int) bool {
	if rel == RelNone || a == 0 || b == 0 {
		return true
	}
	if rel == RelMatch {
		return a == b
	}
	return a != b
}

// Neighbors implements Neighborly: every other variable cell sharing
// the row or column. Relation partners are orthogonally adjacent and so
// always included.
func (g *BinaryGrid) Neighbors(v Variable) []Variable {
	g.build()
	cell := g.cells[v]
	out := make([]Variable, 0, 2*g.size-2)
	for c := 0; c < g.size; c++ {
		if c != cell.col && g.index[cell.row][c] >= 0 {
			out = append(out, Variable(g.index[cell.row][c]))
		}
	}
	for r := 0; r < g.size; r++ {
		if r != cell.row && g.index[r][cell.col] >= 0 {
			out = append(out, Variable(g.index[r][cell.col]))
		}
	}
	return out
}

// Degree implements DegreeRanker: labeled relations on the cell's edges
// plus known cells sharing its row or column.
func (g *BinaryGrid) Degree(v Variable, a *Assignment) int {
	g.build()
	cell := g.cells[v]
	r, c := cell.row, cell.col
	degree := 0
	if c > 0 && g.horiz[r][c-1] != RelNone {
		degree++
	}
	if c < g.size-1 && g.horiz[r][c] != RelNone {
		degree++
	}
	if r > 0 && g.vert[r-1][c] != RelNone {
		degree++
	}
	if r < g.size-1 && g.vert[r][c] != RelNone {
		degree++
	}
	for i := 0; i < g.size; i++ {
		if i != c && g.valueAt(r, i, a) != 0 {
			degree++
		}
		if i != r && g.valueAt(i, c, a) != 0 {
			degree++
		}
	}
	return degree
}

// Grid projects a solution onto a full size×size symbol matrix,
// combining givens with solved values. Render-only: the engine never
// sees this shape.
func (g *BinaryGrid) Grid(solution map[Variable]int) [][]int {
	g.build()
	out := make([][]int, g.size)
	for r := 0; r < g.size; r++ {
		out[r] = make([]int, g.size)
		copy(out[r], g.given[r])
	}
	for v, s := range solution {
		cell := g.cells[v]
		out[cell.row][cell.col] = s
	}
	return out
}

// Render returns a text picture of a solution, 'O' and '>' for the two
// symbols, '.' for cells missing from the map.
func (g *BinaryGrid) Render(solution map[Variable]int) string {
	grid := g.Grid(solution)
	var b strings.Builder
	for r := 0; r < g.size; r++ {
		for c := 0; c < g.size; c++ {
			if c > 0 {
				b.WriteByte(' ')
			}
			switch grid[r][c] {
			case SymbolA:
				b.WriteByte('O')
			case SymbolB:
				b.WriteByte('>')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
