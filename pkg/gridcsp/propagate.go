// Package gridcsp provides constraint satisfaction search.
// This file implements the binary grid's propagation rules. After each
// tentative assignment (and once on the root state) the rules run to a
// fixed point, forcing values the constraints already determine:
//
//   - forced-opposite: two identical adjacent symbols along a line force
//     the complementary symbol into any empty cell bordering the pair,
//     a consequence of the run limit of 2.
//   - quota-exhaustion: a row or column already holding its full quota
//     of one symbol forces the other symbol into its remaining cells.
//   - labeled-equality: a "=" edge with one side known forces the other
//     side to the same symbol. A known cell sandwiched between two "="
//     edges is covered pairwise: both neighbors get forced in turn, and
//     the resulting run violation, if any, fails the pass.
//
// Every pass ends with a violation sweep over runs, quotas, and fully
// known labeled edges; the first violation or failed Force aborts
// propagation with ErrInconsistent, which the engine treats as a dead
// end. Forced assignments are recorded through State.Force, so the
// engine undoes them together with the triggering assignment.
package gridcsp

// opposite returns the complementary symbol.
func opposite(symbol int) int {
	if symbol == SymbolA {
		return SymbolB
	}
	return SymbolA
}

// Propagate implements Propagator for the binary grid.
func (g *BinaryGrid) Propagate(st *State) error {
	g.build()
	for {
		changed, err := g.propagateOnce(st)
		if err != nil {
			return err
		}
		if !changed {
			return nil
		}
	}
}

func (g *BinaryGrid) propagateOnce(st *State) (bool, error) {
	a := st.Assignment()
	changed := false

	force := func(row, col, symbol int) error {
		if err := st.Force(Variable(g.index[row][col]), symbol); err != nil {
			return err
		}
		changed = true
		return nil
	}

	// Forced-opposite: an empty cell next to a completed pair takes the
	// complementary symbol. Sound only under the standard run limit.
	if g.runLimit == 2 {
		for r := 0; r < g.size; r++ {
			for c := 0; c < g.size; c++ {
				if g.valueAt(r, c, a) != 0 {
					continue
				}
				if s := g.pairBeside(r, c, a); s != 0 {
					if err := force(r, c, opposite(s)); err != nil {
						return changed, err
					}
				}
			}
		}
	}

	// Quota-exhaustion: a line that already holds its full quota of one
	// symbol forces the other symbol everywhere else on the line.
	for i := 0; i < g.size; i++ {
		if err := g.exhaustLine(st, i, true, force); err != nil {
			return changed, err
		}
		if err := g.exhaustLine(st, i, false, force); err != nil {
			return changed, err
		}
	}

	// Labeled-equality: "=" edges copy known symbols across.
	for r := 0; r < g.size; r++ {
		for c := 0; c < g.size-1; c++ {
			if g.horiz[r][c] != RelMatch {
				continue
			}
			left, right := g.valueAt(r, c, st.Assignment()), g.valueAt(r, c+1, st.Assignment())
			if left != 0 && right == 0 {
				if err := force(r, c+1, left); err != nil {
					return changed, err
				}
			} else if left == 0 && right != 0 {
				if err := force(r, c, right); err != nil {
					return changed, err
				}
			}
		}
	}
	for r := 0; r < g.size-1; r++ {
		for c := 0; c < g.size; c++ {
			if g.vert[r][c] != RelMatch {
				continue
			}
			top, bottom := g.valueAt(r, c, st.Assignment()), g.valueAt(r+1, c, st.Assignment())
			if top != 0 && bottom == 0 {
				if err := force(r+1, c, top); err != nil {
					return changed, err
				}
			} else if top == 0 && bottom != 0 {
				if err := force(r, c, bottom); err != nil {
					return changed, err
				}
			}
		}
	}

	if err := g.checkViolations(st.Assignment()); err != nil {
		return changed, err
	}
	return changed, nil
}

// pairBeside returns the symbol of a completed identical pair adjacent
// to the empty cell (r,c) along its row or column, or 0 when none.
func (g *BinaryGrid) pairBeside(r, c int, a *Assignment) int {
	at := func(rr, cc int) int { return g.valueAt(rr, cc, a) }
	if c >= 2 {
		if s := at(r, c-1); s != 0 && s == at(r, c-2) {
			return s
		}
	}
	if c <= g.size-3 {
		if s := at(r, c+1); s != 0 && s == at(r, c+2) {
			return s
		}
	}
	if r >= 2 {
		if s := at(r-1, c); s != 0 && s == at(r-2, c) {
			return s
		}
	}
	if r <= g.size-3 {
		if s := at(r+1, c); s != 0 && s == at(r+2, c) {
			return s
		}
	}
	return 0
}

// exhaustLine applies quota-exhaustion to row i (isRow) or column i.
func (g *BinaryGrid) exhaustLine(st *State, i int, isRow bool, force func(row, col, symbol int) error) error {
	a := st.Assignment()
	at := func(j int) int {
		if isRow {
			return g.valueAt(i, j, a)
		}
		return g.valueAt(j, i, a)
	}
	countA, countB := 0, 0
	for j := 0; j < g.size; j++ {
		switch at(j) {
		case SymbolA:
			countA++
		case SymbolB:
			countB++
		}
	}
	if countA > g.quota || countB > g.quota {
		return ErrInconsistent
	}
	var fill int
	switch {
	case countA == g.quota && countB < g.quota:
		fill = SymbolB
	case countB == g.quota && countA < g.quota:
		fill = SymbolA
	default:
		return nil
	}
	for j := 0; j < g.size; j++ {
		if at(j) != 0 {
			continue
		}
		row, col := i, j
		if !isRow {
			row, col = j, i
		}
		if err := force(row, col, fill); err != nil {
			return err
		}
	}
	return nil
}

// checkViolations sweeps runs, quotas, and fully known labeled edges.
func (g *BinaryGrid) checkViolations(a *Assignment) error {
	line := make([]int, g.size)
	for i := 0; i < g.size; i++ {
		for j := 0; j < g.size; j++ {
			line[j] = g.valueAt(i, j, a)
		}
		if !g.lineConsistent(line) {
			return ErrInconsistent
		}
		for j := 0; j < g.size; j++ {
			line[j] = g.valueAt(j, i, a)
		}
		if !g.lineConsistent(line) {
			return ErrInconsistent
		}
	}
	for r := 0; r < g.size; r++ {
		for c := 0; c < g.size-1; c++ {
			if !relationHolds(g.horiz[r][c], g.valueAt(r, c, a), g.valueAt(r, c+1, a)) {
				return ErrInconsistent
			}
		}
	}
	for r := 0; r < g.size-1; r++ {
		for c := 0; c < g.size; c++ {
			if !relationHolds(g.vert[r][c], g.valueAt(r, c, a), g.valueAt(r+1, c, a)) {
				return ErrInconsistent
			}
		}
	}
	return nil
}
