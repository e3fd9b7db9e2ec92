package gridcsp

import (
	"context"
	"errors"
	"testing"
)

// newPropagationState builds a solver and root state for direct
// propagation tests.
func newPropagationState(t *testing.T, g *BinaryGrid) (*Solver, *State) {
	t.Helper()
	s := mustSolver(t, g, nil)
	st := &State{
		assignment: newAssignment(s.nvars),
		store:      NewDomainStore(s.initial),
		solver:     s,
	}
	return s, st
}

// cellValue reads a cell after propagation, given or forced.
func cellValue(g *BinaryGrid, st *State, row, col int) int {
	return g.valueAt(row, col, st.Assignment())
}

func TestPropagateForcedOpposite(t *testing.T) {
	tests := []struct {
		name   string
		givens [][3]int // row, col, symbol
		forced [][3]int // row, col, expected symbol
	}{
		{
			name:   "pair forces both row ends",
			givens: [][3]int{{2, 2, SymbolA}, {2, 3, SymbolA}},
			forced: [][3]int{{2, 1, SymbolB}, {2, 4, SymbolB}},
		},
		{
			name:   "vertical pair forces below",
			givens: [][3]int{{0, 4, SymbolB}, {1, 4, SymbolB}},
			forced: [][3]int{{2, 4, SymbolA}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewBinaryGrid(6)
			if err != nil {
				t.Fatalf("NewBinaryGrid: %v", err)
			}
			for _, gv := range tt.givens {
				if err := g.SetGiven(gv[0], gv[1], gv[2]); err != nil {
					t.Fatalf("SetGiven: %v", err)
				}
			}
			_, st := newPropagationState(t, g)
			if err := g.Propagate(st); err != nil {
				t.Fatalf("Propagate: %v", err)
			}
			for _, f := range tt.forced {
				if got := cellValue(g, st, f[0], f[1]); got != f[2] {
					t.Errorf("cell (%d,%d) = %d after propagation, want %d", f[0], f[1], got, f[2])
				}
			}
		})
	}
}

func TestPropagateQuotaExhaustion(t *testing.T) {
	g, err := NewBinaryGrid(6)
	if err != nil {
		t.Fatalf("NewBinaryGrid: %v", err)
	}
	// Row 0 already holds its quota of SymbolA, spaced to avoid runs.
	for _, c := range []int{0, 2, 4} {
		if err := g.SetGiven(0, c, SymbolA); err != nil {
			t.Fatalf("SetGiven: %v", err)
		}
	}
	_, st := newPropagationState(t, g)
	if err := g.Propagate(st); err != nil {
		t.Fatalf("Propagate: %v", err)
	}
	for _, c := range []int{1, 3, 5} {
		if got := cellValue(g, st, 0, c); got != SymbolB {
			t.Errorf("cell (0,%d) = %d, want %d", c, got, SymbolB)
		}
	}
}

func TestPropagateOverQuotaFails(t *testing.T) {
	g, err := NewBinaryGrid(6)
	if err != nil {
		t.Fatalf("NewBinaryGrid: %v", err)
	}
	// Four of one symbol in a column exceeds the quota of three.
	for _, r := range []int{0, 1, 3, 4} {
		if err := g.SetGiven(r, 2, SymbolB); err != nil {
			t.Fatalf("SetGiven: %v", err)
		}
	}
	_, st := newPropagationState(t, g)
	if err := g.Propagate(st); !errors.Is(err, ErrInconsistent) {
		t.Fatalf("Propagate error = %v, want ErrInconsistent", err)
	}
}

func TestPropagateEqualityRelation(t *testing.T) {
	g, err := NewBinaryGrid(6)
	if err != nil {
		t.Fatalf("NewBinaryGrid: %v", err)
	}
	if err := g.SetGiven(3, 1, SymbolB); err != nil {
		t.Fatalf("SetGiven: %v", err)
	}
	if err := g.SetHorizontal(3, 1, RelMatch); err != nil {
		t.Fatalf("SetHorizontal: %v", err)
	}
	if err := g.SetVertical(3, 1, RelMatch); err != nil {
		t.Fatalf("SetVertical: %v", err)
	}
	_, st := newPropagationState(t, g)
	if err := g.Propagate(st); err != nil {
		t.Fatalf("Propagate: %v", err)
	}
	if got := cellValue(g, st, 3, 2); got != SymbolB {
		t.Errorf("cell (3,2) = %d, want %d (copied across =)", got, SymbolB)
	}
	if got := cellValue(g, st, 4, 1); got != SymbolB {
		t.Errorf("cell (4,1) = %d, want %d (copied across =)", got, SymbolB)
	}
}

// TestPropagateEqualitySandwichFails checks that a known cell flanked
// by two "=" edges along one line is refuted: both neighbors get the
// same symbol and the resulting run of three violates the run limit.
func TestPropagateEqualitySandwichFails(t *testing.T) {
	g, err := NewBinaryGrid(6)
	if err != nil {
		t.Fatalf("NewBinaryGrid: %v", err)
	}
	if err := g.SetGiven(2, 3, SymbolA); err != nil {
		t.Fatalf("SetGiven: %v", err)
	}
	if err := g.SetHorizontal(2, 2, RelMatch); err != nil {
		t.Fatalf("SetHorizontal: %v", err)
	}
	if err := g.SetHorizontal(2, 3, RelMatch); err != nil {
		t.Fatalf("SetHorizontal: %v", err)
	}
	_, st := newPropagationState(t, g)
	if err := g.Propagate(st); !errors.Is(err, ErrInconsistent) {
		t.Fatalf("Propagate error = %v, want ErrInconsistent", err)
	}
}

func TestPropagateRelationViolationFails(t *testing.T) {
	g, err := NewBinaryGrid(6)
	if err != nil {
		t.Fatalf("NewBinaryGrid: %v", err)
	}
	if err := g.SetGiven(0, 0, SymbolA); err != nil {
		t.Fatalf("SetGiven: %v", err)
	}
	if err := g.SetGiven(0, 1, SymbolB); err != nil {
		t.Fatalf("SetGiven: %v", err)
	}
	if err := g.SetHorizontal(0, 0, RelMatch); err != nil {
		t.Fatalf("SetHorizontal: %v", err)
	}
	_, st := newPropagationState(t, g)
	if err := g.Propagate(st); !errors.Is(err, ErrInconsistent) {
		t.Fatalf("Propagate error = %v, want ErrInconsistent", err)
	}
}

// TestPropagationUndoneOnBacktrack checks that forced assignments are
// reversed together with the domain restore.
func TestPropagationUndoneOnBacktrack(t *testing.T) {
	g, err := NewBinaryGrid(6)
	if err != nil {
		t.Fatalf("NewBinaryGrid: %v", err)
	}
	if err := g.SetGiven(1, 1, SymbolA); err != nil {
		t.Fatalf("SetGiven: %v", err)
	}
	s, st := newPropagationState(t, g)

	snap := st.store.Snapshot()
	mark := st.assignment.mark()

	// Assign the cell right of the given to the same symbol: the pair
	// forces opposites on both sides.
	v := Variable(g.index[1][2])
	st.assignment.set(v, SymbolA)
	st.store.Fix(v, SymbolA)
	if err := g.Propagate(st); err != nil {
		t.Fatalf("Propagate: %v", err)
	}
	if st.assignment.Len() < 2 {
		t.Fatalf("expected forced assignments beyond the trigger, got %d", st.assignment.Len())
	}

	st.undo(snap, mark)
	if st.assignment.Len() != 0 {
		t.Fatalf("assignment has %d entries after undo, want 0", st.assignment.Len())
	}
	for i := 0; i < s.nvars; i++ {
		if !st.store.Domain(Variable(i)).Equal(s.initial[i]) {
			t.Fatalf("domain %d not restored: %v", i, st.store.Domain(Variable(i)))
		}
	}
}

// TestRootContradictionIsExhausted checks that an instance refuted by
// the initial propagation pass reports exhausted without searching.
func TestRootContradictionIsExhausted(t *testing.T) {
	g, err := NewBinaryGrid(6)
	if err != nil {
		t.Fatalf("NewBinaryGrid: %v", err)
	}
	for _, r := range []int{0, 1, 3, 4} {
		if err := g.SetGiven(r, 0, SymbolA); err != nil {
			t.Fatalf("SetGiven: %v", err)
		}
	}
	res := mustSolver(t, g, nil).Solve(context.Background())
	if res.Status != StatusExhausted {
		t.Fatalf("Status = %v, want exhausted", res.Status)
	}
	if res.Stats.Backtracks != 0 {
		t.Fatalf("Backtracks = %d, want 0 (refuted before search)", res.Stats.Backtracks)
	}
}
