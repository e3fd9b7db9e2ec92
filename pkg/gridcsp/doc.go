// Package gridcsp provides a finite-domain constraint satisfaction (CSP)
// search engine for grid and assignment puzzles.
//
// Version: 0.1.0
//
// The engine performs recursive backtracking search over problems described
// through a small capability interface: a variable set, per-variable candidate
// domains, and a consistency predicate. On top of that it layers MRV/degree
// variable selection, least-constraining-value ordering, forward checking,
// rule-based constraint propagation, and deadline/node-budget supervision
// with randomized restarts.
//
// Reference puzzle adapters ship in this package: a two-symbol binary grid
// with labeled cell relations, region-constrained N-Queens, classic 9x9
// Sudoku, and map coloring. Each adapter is a plain value implementing the
// Problem interface; none of them is privileged by the engine.
package gridcsp

// Version is the current version of the gridcsp engine.
const Version = "0.1.0"
