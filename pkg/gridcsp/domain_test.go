package gridcsp

import "testing"

func TestValueSetBasics(t *testing.T) {
	tests := []struct {
		name      string
		max       int
		values    []int
		count     int
		has       []int
		hasNot    []int
		singleton bool
	}{
		{
			name:   "full range",
			max:    9,
			values: []int{1, 2, 3, 4, 5, 6, 7, 8, 9},
			count:  9,
			has:    []int{1, 5, 9},
			hasNot: []int{0, 10},
		},
		{
			name:      "single value",
			max:       6,
			values:    []int{4},
			count:     1,
			has:       []int{4},
			hasNot:    []int{1, 6},
			singleton: true,
		},
		{
			name:   "sparse across word boundary",
			max:    130,
			values: []int{1, 64, 65, 128, 130},
			count:  5,
			has:    []int{64, 65, 130},
			hasNot: []int{2, 63, 129},
		},
		{
			name:   "out of range values ignored",
			max:    4,
			values: []int{0, 1, 5, -3},
			count:  1,
			has:    []int{1},
			hasNot: []int{0, 5},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vs := NewValueSet(tt.max, tt.values...)
			if got := vs.Count(); got != tt.count {
				t.Errorf("Count() = %d, want %d", got, tt.count)
			}
			for _, v := range tt.has {
				if !vs.Has(v) {
					t.Errorf("Has(%d) = false, want true", v)
				}
			}
			for _, v := range tt.hasNot {
				if vs.Has(v) {
					t.Errorf("Has(%d) = true, want false", v)
				}
			}
			if got := vs.IsSingleton(); got != tt.singleton {
				t.Errorf("IsSingleton() = %v, want %v", got, tt.singleton)
			}
		})
	}
}

func TestValueSetWithoutIsImmutable(t *testing.T) {
	vs := NewValueSet(6, 1, 2, 3)
	smaller := vs.Without(2)
	if vs.Count() != 3 || !vs.Has(2) {
		t.Fatalf("Without mutated the receiver: %v", vs)
	}
	if smaller.Count() != 2 || smaller.Has(2) {
		t.Fatalf("Without(2) = %v, want {1,3}", smaller)
	}
}

func TestValueSetValuesAscending(t *testing.T) {
	vs := NewValueSet(9, 7, 2, 5)
	got := vs.Values()
	want := []int{2, 5, 7}
	if len(got) != len(want) {
		t.Fatalf("Values() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Values() = %v, want %v", got, want)
		}
	}
}

func TestValueSetOnly(t *testing.T) {
	vs := NewValueSet(6, 1, 2, 3)
	only := vs.Only(2)
	if !only.IsSingleton() || only.SingletonValue() != 2 {
		t.Fatalf("Only(2) = %v, want {2}", only)
	}
	if empty := vs.Only(5); !empty.IsEmpty() {
		t.Fatalf("Only(5) = %v, want empty", empty)
	}
}

func TestDomainStorePruneAndRestore(t *testing.T) {
	initial := []ValueSet{
		FullValueSet(4),
		FullValueSet(4),
		FullValueSet(4),
	}
	ds := NewDomainStore(initial)

	before := make([]ValueSet, len(initial))
	for i := range initial {
		before[i] = ds.Domain(Variable(i))
	}

	snap := ds.Snapshot()
	if removed := ds.Prune(0, func(v int) bool { return v > 2 }); removed != 2 {
		t.Fatalf("Prune removed %d values, want 2", removed)
	}
	if ds.Count(0) != 2 {
		t.Fatalf("domain 0 has %d values after prune, want 2", ds.Count(0))
	}
	if removed := ds.Prune(1, func(v int) bool { return true }); removed != 4 {
		t.Fatalf("Prune removed %d values, want 4", removed)
	}
	if !ds.IsEmpty(1) {
		t.Fatal("domain 1 should be empty after full prune")
	}
	// An empty domain is a dead-end signal, not an error; the store
	// must still restore cleanly.
	ds.Restore(snap)
	for i := range initial {
		if !ds.Domain(Variable(i)).Equal(before[i]) {
			t.Errorf("domain %d = %v after restore, want %v", i, ds.Domain(Variable(i)), before[i])
		}
	}
}

func TestDomainStoreNestedSnapshots(t *testing.T) {
	ds := NewDomainStore([]ValueSet{FullValueSet(6), FullValueSet(6)})

	outer := ds.Snapshot()
	ds.Prune(0, func(v int) bool { return v == 1 })
	inner := ds.Snapshot()
	ds.Prune(0, func(v int) bool { return v == 2 })
	ds.Prune(1, func(v int) bool { return v < 4 })

	ds.Restore(inner)
	if ds.Domain(0).Has(1) || !ds.Domain(0).Has(2) {
		t.Fatalf("inner restore wrong: domain 0 = %v", ds.Domain(0))
	}
	if ds.Count(1) != 6 {
		t.Fatalf("inner restore wrong: domain 1 = %v", ds.Domain(1))
	}

	ds.Restore(outer)
	if ds.Count(0) != 6 || ds.Count(1) != 6 {
		t.Fatalf("outer restore wrong: %v / %v", ds.Domain(0), ds.Domain(1))
	}
}

func TestDomainStoreFix(t *testing.T) {
	ds := NewDomainStore([]ValueSet{FullValueSet(6)})
	snap := ds.Snapshot()
	if !ds.Fix(0, 3) {
		t.Fatal("Fix(0, 3) = false, want true")
	}
	if !ds.Domain(0).IsSingleton() || ds.Domain(0).SingletonValue() != 3 {
		t.Fatalf("domain after Fix = %v, want {3}", ds.Domain(0))
	}
	if ds.Fix(0, 5) {
		t.Fatal("Fix to a pruned value should fail")
	}
	ds.Restore(snap)
	if ds.Count(0) != 6 {
		t.Fatalf("domain after restore = %v, want full", ds.Domain(0))
	}
}

func TestAssignmentOrderAndUndo(t *testing.T) {
	a := newAssignment(4)
	a.set(2, 5)
	mark := a.mark()
	a.set(0, 1)
	a.set(3, 2)

	if a.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", a.Len())
	}
	order := a.Variables()
	want := []Variable{2, 0, 3}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("Variables() = %v, want %v", order, want)
		}
	}

	a.truncate(mark)
	if a.Len() != 1 {
		t.Fatalf("Len() after truncate = %d, want 1", a.Len())
	}
	if _, ok := a.Value(0); ok {
		t.Fatal("variable 0 still assigned after truncate")
	}
	if v, ok := a.Value(2); !ok || v != 5 {
		t.Fatalf("variable 2 = %d,%v after truncate, want 5,true", v, ok)
	}
}
