// Package gridcsp provides constraint satisfaction search.
// This file implements the classic 9x9 Sudoku adapter. Empty cells are
// the variables; givens are fixed input, validated at construction.
package gridcsp

import (
	"fmt"
	"strings"
)

const sudokuSize = 9

// Sudoku is a Problem over a 9×9 digit grid: each digit 1..9 appears
// exactly once per row, column, and 3×3 box.
type Sudoku struct {
	given [sudokuSize][sudokuSize]int // 0 = empty
	cells []gridCell                  // variable -> cell
	index [sudokuSize][sudokuSize]int // cell -> variable, -1 for givens
}

// NewSudoku creates the puzzle from a given grid, 0 for empty cells.
// Duplicate givens in a row, column, or box are rejected with
// ErrMalformedInstance: such an instance can never enter search.
func NewSudoku(given [sudokuSize][sudokuSize]int) (*Sudoku, error) {
	s := &Sudoku{given: given}
	for r := 0; r < sudokuSize; r++ {
		for c := 0; c < sudokuSize; c++ {
			d := given[r][c]
			if d < 0 || d > 9 {
				return nil, fmt.Errorf("%w: digit %d at (%d,%d) out of range", ErrMalformedInstance, d, r, c)
			}
			if d == 0 {
				s.index[r][c] = len(s.cells)
				s.cells = append(s.cells, gridCell{row: r, col: c})
			} else {
				s.index[r][c] = -1
			}
		}
	}
	if err := s.checkGivens(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Sudoku) checkGivens() error {
	for r := 0; r < sudokuSize; r++ {
		for c := 0; c < sudokuSize; c++ {
			d := s.given[r][c]
			if d == 0 {
				continue
			}
			for i := 0; i < sudokuSize; i++ {
				if i != c && s.given[r][i] == d {
					return fmt.Errorf("%w: digit %d repeated in row %d", ErrMalformedInstance, d, r)
				}
				if i != r && s.given[i][c] == d {
					return fmt.Errorf("%w: digit %d repeated in column %d", ErrMalformedInstance, d, c)
				}
			}
			br, bc := (r/3)*3, (c/3)*3
			for dr := 0; dr < 3; dr++ {
				for dc := 0; dc < 3; dc++ {
					rr, cc := br+dr, bc+dc
					if (rr != r || cc != c) && s.given[rr][cc] == d {
						return fmt.Errorf("%w: digit %d repeated in box (%d,%d)", ErrMalformedInstance, d, br/3, bc/3)
					}
				}
			}
		}
	}
	return nil
}

// Variables implements Problem: one variable per empty cell, row-major.
func (s *Sudoku) Variables() []Variable {
	vars := make([]Variable, len(s.cells))
	for i := range vars {
		vars[i] = Variable(i)
	}
	return vars
}

// InitialDomains implements Problem. Candidates already ruled out by
// givens in the cell's row, column, or box are excluded up front, so
// domains never carry values inconsistent with the static constraints.
func (s *Sudoku) InitialDomains() [][]int {
	domains := make([][]int, len(s.cells))
	for i, cell := range s.cells {
		var candidates []int
		for d := 1; d <= 9; d++ {
			if !s.givenConflicts(cell.row, cell.col, d) {
				candidates = append(candidates, d)
			}
		}
		domains[i] = candidates
	}
	return domains
}

func (s *Sudoku) givenConflicts(row, col, digit int) bool {
	for i := 0; i < sudokuSize; i++ {
		if s.given[row][i] == digit || s.given[i][col] == digit {
			return true
		}
	}
	br, bc := (row/3)*3, (col/3)*3
	for dr := 0; dr < 3; dr++ {
		for dc := 0; dc < 3; dc++ {
			if s.given[br+dr][bc+dc] == digit {
				return true
			}
		}
	}
	return false
}

// Position implements Positioner.
func (s *Sudoku) Position(v Variable) (row, col int) {
	cell := s.cells[v]
	return cell.row, cell.col
}

func (s *Sudoku) valueAt(row, col int, a *Assignment) int {
	if d := s.given[row][col]; d != 0 {
		return d
	}
	if val, ok := a.Value(Variable(s.index[row][col])); ok {
		return val
	}
	return 0
}

// IsConsistent implements Problem: the digit must not already appear in
// the cell's row, column, or box, among givens or assigned cells.
func (s *Sudoku) IsConsistent(v Variable, value int, a *Assignment) bool {
	cell := s.cells[v]
	for i := 0; i < sudokuSize; i++ {
		if i != cell.col && s.valueAt(cell.row, i, a) == value {
			return false
		}
		if i != cell.row && s.valueAt(i, cell.col, a) == value {
			return false
		}
	}
	br, bc := (cell.row/3)*3, (cell.col/3)*3
	for dr := 0; dr < 3; dr++ {
		for dc := 0; dc < 3; dc++ {
			r, c := br+dr, bc+dc
			if (r != cell.row || c != cell.col) && s.valueAt(r, c, a) == value {
				return false
			}
		}
	}
	return true
}

// Neighbors implements Neighborly: the variable cells sharing the row,
// column, or box.
func (s *Sudoku) Neighbors(v Variable) []Variable {
	cell := s.cells[v]
	seen := make(map[Variable]bool, 20)
	var out []Variable
	add := func(r, c int) {
		if r == cell.row && c == cell.col {
			return
		}
		if idx := s.index[r][c]; idx >= 0 && !seen[Variable(idx)] {
			seen[Variable(idx)] = true
			out = append(out, Variable(idx))
		}
	}
	for i := 0; i < sudokuSize; i++ {
		add(cell.row, i)
		add(i, cell.col)
	}
	br, bc := (cell.row/3)*3, (cell.col/3)*3
	for dr := 0; dr < 3; dr++ {
		for dc := 0; dc < 3; dc++ {
			add(br+dr, bc+dc)
		}
	}
	return out
}

// Degree implements DegreeRanker: assigned peers sharing a unit.
func (s *Sudoku) Degree(v Variable, a *Assignment) int {
	degree := 0
	for _, w := range s.Neighbors(v) {
		if a.Has(w) {
			degree++
		}
	}
	return degree
}

// Grid projects a solution onto a full digit matrix, combining givens
// with solved values.
func (s *Sudoku) Grid(solution map[Variable]int) [sudokuSize][sudokuSize]int {
	out := s.given
	for v, d := range solution {
		cell := s.cells[v]
		out[cell.row][cell.col] = d
	}
	return out
}

// Render returns a text picture of a solution with box separators.
func (s *Sudoku) Render(solution map[Variable]int) string {
	grid := s.Grid(solution)
	var b strings.Builder
	for r := 0; r < sudokuSize; r++ {
		if r > 0 && r%3 == 0 {
			b.WriteString("------+-------+------\n")
		}
		for c := 0; c < sudokuSize; c++ {
			if c > 0 {
				b.WriteByte(' ')
				if c%3 == 0 {
					b.WriteString("| ")
				}
			}
			if grid[r][c] == 0 {
				b.WriteByte('.')
			} else {
				fmt.Fprintf(&b, "%d", grid[r][c])
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
