// Package gridcsp provides constraint satisfaction search.
// This file implements the region queens adapter: place one queen per
// row so that all columns differ, every color region holds exactly one
// queen, and no two queens touch, not even diagonally.
package gridcsp

import (
	"fmt"
	"math/rand"
	"strings"
)

// RegionQueens is a Problem with one variable per board row; the value
// is the queen's column, 1-based. Regions partition the board into n
// colors, each of which must contain exactly one queen.
type RegionQueens struct {
	n       int
	regions [][]int // [row][col] -> region id in [0, n)
}

// NewRegionQueens creates the puzzle from an n×n region matrix with
// region identifiers in [0, n).
func NewRegionQueens(n int, regions [][]int) (*RegionQueens, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: board size must be positive, got %d", ErrMalformedInstance, n)
	}
	if len(regions) != n {
		return nil, fmt.Errorf("%w: region matrix has %d rows, want %d", ErrMalformedInstance, len(regions), n)
	}
	for r, row := range regions {
		if len(row) != n {
			return nil, fmt.Errorf("%w: region row %d has %d cells, want %d", ErrMalformedInstance, r, len(row), n)
		}
		for c, id := range row {
			if id < 0 || id >= n {
				return nil, fmt.Errorf("%w: region id %d at (%d,%d) out of range", ErrMalformedInstance, id, r, c)
			}
		}
	}
	return &RegionQueens{n: n, regions: regions}, nil
}

// RandomRegions generates an n×n region matrix with exactly n cells of
// each of n colors, shuffled by the seeded PRNG. Regions produced this
// way need not be contiguous.
func RandomRegions(n int, seed int64) [][]int {
	cells := make([]int, 0, n*n)
	for color := 0; color < n; color++ {
		for i := 0; i < n; i++ {
			cells = append(cells, color)
		}
	}
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(cells), func(i, j int) { cells[i], cells[j] = cells[j], cells[i] })
	regions := make([][]int, n)
	for r := 0; r < n; r++ {
		regions[r] = cells[r*n : (r+1)*n]
	}
	return regions
}

// Size returns the board dimension.
func (q *RegionQueens) Size() int { return q.n }

// Region returns the region id of a cell (0-based row and column).
func (q *RegionQueens) Region(row, col int) int { return q.regions[row][col] }

// Variables implements Problem: one variable per row.
func (q *RegionQueens) Variables() []Variable {
	vars := make([]Variable, q.n)
	for i := range vars {
		vars[i] = Variable(i)
	}
	return vars
}

// InitialDomains implements Problem: every column for every row.
func (q *RegionQueens) InitialDomains() [][]int {
	domains := make([][]int, q.n)
	for i := range domains {
		cols := make([]int, q.n)
		for c := range cols {
			cols[c] = c + 1
		}
		domains[i] = cols
	}
	return domains
}

// IsConsistent implements Problem. Placing a queen at (row, col) must
// keep all placed columns distinct, all occupied regions distinct, and
// no two queens within Chebyshev distance 1. With one queen per row,
// the touch check reduces to adjacent rows differing by more than one
// column.
func (q *RegionQueens) IsConsistent(v Variable, value int, a *Assignment) bool {
	row, col := int(v), value-1
	region := q.regions[row][col]
	for _, w := range a.Variables() {
		otherCol, _ := a.Value(w)
		otherCol--
		otherRow := int(w)
		if otherCol == col {
			return false
		}
		if q.regions[otherRow][otherCol] == region {
			return false
		}
		if abs(otherRow-row) == 1 && abs(otherCol-col) <= 1 {
			return false
		}
	}
	return true
}

// Neighbors implements Neighborly: every other row constrains this one.
func (q *RegionQueens) Neighbors(v Variable) []Variable {
	out := make([]Variable, 0, q.n-1)
	for i := 0; i < q.n; i++ {
		if Variable(i) != v {
			out = append(out, Variable(i))
		}
	}
	return out
}

// Columns projects a solution to 0-based column indices per row, -1
// for rows missing from the map.
func (q *RegionQueens) Columns(solution map[Variable]int) []int {
	cols := make([]int, q.n)
	for i := range cols {
		cols[i] = -1
	}
	for v, value := range solution {
		cols[v] = value - 1
	}
	return cols
}

// Render returns a text picture of a solution, 'Q' for queens and the
// region id for empty cells.
func (q *RegionQueens) Render(solution map[Variable]int) string {
	cols := q.Columns(solution)
	var b strings.Builder
	for r := 0; r < q.n; r++ {
		for c := 0; c < q.n; c++ {
			if c > 0 {
				b.WriteByte(' ')
			}
			if cols[r] == c {
				b.WriteByte('Q')
			} else {
				fmt.Fprintf(&b, "%d", q.regions[r][c])
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
