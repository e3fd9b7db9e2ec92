package gridcsp

import "testing"

// completeBinaryGrid is a valid 6×6 two-symbol filling: three of each
// symbol per row and column, no run longer than two.
var completeBinaryGrid = [6][6]int{
	{1, 1, 2, 2, 1, 2},
	{2, 2, 1, 1, 2, 1},
	{1, 1, 2, 2, 1, 2},
	{2, 2, 1, 1, 2, 1},
	{1, 2, 1, 2, 1, 2},
	{2, 1, 2, 1, 2, 1},
}

// newTestGrid builds a 6×6 binary grid with the given cells of
// completeBinaryGrid fixed.
func newTestGrid(t *testing.T, givens ...[2]int) *BinaryGrid {
	t.Helper()
	g, err := NewBinaryGrid(6)
	if err != nil {
		t.Fatalf("NewBinaryGrid: %v", err)
	}
	for _, cell := range givens {
		r, c := cell[0], cell[1]
		if err := g.SetGiven(r, c, completeBinaryGrid[r][c]); err != nil {
			t.Fatalf("SetGiven(%d,%d): %v", r, c, err)
		}
	}
	return g
}

// solvedSudoku is the unique solution of the classic test puzzle.
var solvedSudoku = [9][9]int{
	{5, 3, 4, 6, 7, 8, 9, 1, 2},
	{6, 7, 2, 1, 9, 5, 3, 4, 8},
	{1, 9, 8, 3, 4, 2, 5, 6, 7},
	{8, 5, 9, 7, 6, 1, 4, 2, 3},
	{4, 2, 6, 8, 5, 3, 7, 9, 1},
	{7, 1, 3, 9, 2, 4, 8, 5, 6},
	{9, 6, 1, 5, 3, 7, 2, 8, 4},
	{2, 8, 7, 4, 1, 9, 6, 3, 5},
	{3, 4, 5, 2, 8, 6, 1, 7, 9},
}

// sudokuPuzzle is the classic instance solved by solvedSudoku.
var sudokuPuzzle = [9][9]int{
	{5, 3, 0, 0, 7, 0, 0, 0, 0},
	{6, 0, 0, 1, 9, 5, 0, 0, 0},
	{0, 9, 8, 0, 0, 0, 0, 6, 0},
	{8, 0, 0, 0, 6, 0, 0, 0, 3},
	{4, 0, 0, 8, 0, 3, 0, 0, 1},
	{7, 0, 0, 0, 2, 0, 0, 0, 6},
	{0, 6, 0, 0, 0, 0, 2, 8, 0},
	{0, 0, 0, 4, 1, 9, 0, 0, 5},
	{0, 0, 0, 0, 8, 0, 0, 7, 9},
}

// mustSolver builds a solver or fails the test.
func mustSolver(t *testing.T, p Problem, cfg *Config) *Solver {
	t.Helper()
	s, err := New(p, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}
