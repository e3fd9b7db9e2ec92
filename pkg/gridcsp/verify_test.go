package gridcsp

import (
	"context"
	"strings"
	"testing"
)

func TestVerifyAcceptsSolverOutput(t *testing.T) {
	m, err := NewAustraliaMap([]string{"red", "green", "blue"})
	if err != nil {
		t.Fatalf("NewAustraliaMap: %v", err)
	}
	res := mustSolver(t, m, nil).Solve(context.Background())
	if res.Status != StatusSolved {
		t.Fatalf("Status = %v, want solved", res.Status)
	}
	if err := Verify(m, res.Solution); err != nil {
		t.Fatalf("Verify rejected a solver solution: %v", err)
	}
}

func TestVerifyRejectsIncomplete(t *testing.T) {
	m, err := NewAustraliaMap([]string{"red", "green", "blue"})
	if err != nil {
		t.Fatalf("NewAustraliaMap: %v", err)
	}
	res := mustSolver(t, m, nil).Solve(context.Background())
	partial := make(map[Variable]int)
	for v, c := range res.Solution {
		partial[v] = c
	}
	delete(partial, 0)
	if err := Verify(m, partial); err == nil {
		t.Fatal("Verify accepted an incomplete solution")
	}
}

func TestVerifyRejectsOutOfDomain(t *testing.T) {
	m, err := NewAustraliaMap([]string{"red", "green", "blue"})
	if err != nil {
		t.Fatalf("NewAustraliaMap: %v", err)
	}
	res := mustSolver(t, m, nil).Solve(context.Background())
	tampered := make(map[Variable]int)
	for v, c := range res.Solution {
		tampered[v] = c
	}
	tampered[0] = 4 // palette has three colors
	err = Verify(m, tampered)
	if err == nil {
		t.Fatal("Verify accepted an out-of-domain value")
	}
	if !strings.Contains(err.Error(), "outside its domain") {
		t.Fatalf("error %q does not name the domain violation", err)
	}
}

func TestVerifyRejectsConflict(t *testing.T) {
	m, err := NewAustraliaMap([]string{"red", "green", "blue"})
	if err != nil {
		t.Fatalf("NewAustraliaMap: %v", err)
	}
	res := mustSolver(t, m, nil).Solve(context.Background())
	tampered := make(map[Variable]int)
	for v, c := range res.Solution {
		tampered[v] = c
	}
	// WA is region 0, NT region 1; give WA NT's color.
	tampered[0] = tampered[1]
	if err := Verify(m, tampered); err == nil {
		t.Fatal("Verify accepted conflicting neighbor colors")
	}
}
