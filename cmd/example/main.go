// Package main walks through the gridcsp API: declaring a problem,
// configuring the solver, tracing the search, and supervising restarts.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gridlogic/gridcsp/pkg/gridcsp"
)

func main() {
	fmt.Println("=== gridcsp API Tour ===")
	fmt.Println()

	declaredProblem()
	tracedSearch()
	nodeBudget()
	supervisedRestarts()
}

// declaredProblem builds a tiny problem from explicit constraints.
func declaredProblem() {
	fmt.Println("1. Declaring a problem:")

	// Two variables over {1,2,3}; x < y as an explicit predicate.
	p, err := gridcsp.NewConstraintProblem(
		[][]int{{1, 2, 3}, {1, 2, 3}},
		[]gridcsp.Constraint{{
			Scope: []gridcsp.Variable{0, 1},
			Check: func(vals map[gridcsp.Variable]int) bool {
				return vals[0] < vals[1]
			},
		}},
	)
	if err != nil {
		fmt.Printf("   build failed: %v\n", err)
		return
	}
	solver, err := gridcsp.New(p, nil)
	if err != nil {
		fmt.Printf("   solver failed: %v\n", err)
		return
	}
	res := solver.Solve(context.Background())
	fmt.Printf("   x < y over {1,2,3} => %v, solution %v\n", res.Status, res.Solution)
	fmt.Println()
}

// tracedSearch shows the structured trace hook.
func tracedSearch() {
	fmt.Println("2. Tracing the search:")

	m, err := gridcsp.NewAustraliaMap([]string{"red", "green", "blue"})
	if err != nil {
		fmt.Printf("   build failed: %v\n", err)
		return
	}
	cfg := gridcsp.DefaultConfig()
	events := 0
	cfg.Trace = func(ev gridcsp.TraceEvent) {
		if events < 3 {
			fmt.Printf("   %v\n", ev.Kind)
		}
		events++
	}
	solver, err := gridcsp.New(m, cfg)
	if err != nil {
		fmt.Printf("   solver failed: %v\n", err)
		return
	}
	res := solver.Solve(context.Background())
	fmt.Printf("   ... %d events total, status %v\n", events, res.Status)
	fmt.Println()
}

// nodeBudget shows reproducible timeouts independent of wall clock.
func nodeBudget() {
	fmt.Println("3. Node budgets:")

	g, err := gridcsp.NewBinaryGrid(6)
	if err != nil {
		fmt.Printf("   build failed: %v\n", err)
		return
	}
	cfg := gridcsp.DefaultConfig()
	cfg.NodeBudget = 3
	solver, err := gridcsp.New(g, cfg)
	if err != nil {
		fmt.Printf("   solver failed: %v\n", err)
		return
	}
	res := solver.Solve(context.Background())
	fmt.Printf("   budget 3 => %v after %d nodes\n", res.Status, res.Stats.Nodes)
	fmt.Println()
}

// supervisedRestarts shows the outer restart loop.
func supervisedRestarts() {
	fmt.Println("4. Supervised restarts:")

	g, err := gridcsp.NewBinaryGrid(6)
	if err != nil {
		fmt.Printf("   build failed: %v\n", err)
		return
	}
	solver, err := gridcsp.New(g, nil)
	if err != nil {
		fmt.Printf("   solver failed: %v\n", err)
		return
	}
	rc := gridcsp.DefaultRestartConfig()
	rc.PerAttemptTimeout = 2 * time.Second
	res := solver.SolveWithRestarts(context.Background(), rc)
	fmt.Printf("   %v after %d attempt(s), %d nodes\n",
		res.Status, res.Stats.Attempts, res.Stats.Nodes)
}
