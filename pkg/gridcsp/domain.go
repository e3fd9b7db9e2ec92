// Package gridcsp provides constraint satisfaction search.
// This file implements bitset candidate domains and the trail-backed
// domain store that makes pruning reversible.
package gridcsp

import (
	"fmt"
	"math/bits"
	"strings"
)

// ValueSet is a compact set of candidate values in the range [1, maxValue],
// represented as a bitset. Bit i of the word array represents value i+1,
// giving O(1) membership tests and hardware-popcount cardinality.
//
// ValueSet is immutable: mutating operations return a new set, so older
// sets on the undo trail stay valid.
type ValueSet struct {
	max   int
	words []uint64
}

// FullValueSet returns the set {1..maxValue}.
func FullValueSet(maxValue int) ValueSet {
	if maxValue <= 0 {
		return ValueSet{}
	}
	vs := ValueSet{max: maxValue, words: make([]uint64, (maxValue+63)/64)}
	for i := 0; i < maxValue; i++ {
		vs.words[i/64] |= 1 << uint(i%64)
	}
	return vs
}

// NewValueSet returns the set containing exactly the given values.
// Values outside [1, maxValue] are ignored.
func NewValueSet(maxValue int, values ...int) ValueSet {
	if maxValue <= 0 {
		return ValueSet{}
	}
	vs := ValueSet{max: maxValue, words: make([]uint64, (maxValue+63)/64)}
	for _, v := range values {
		if v >= 1 && v <= maxValue {
			vs.words[(v-1)/64] |= 1 << uint((v-1)%64)
		}
	}
	return vs
}

// Has reports whether value is in the set. O(1).
func (vs ValueSet) Has(value int) bool {
	if value < 1 || value > vs.max {
		return false
	}
	return (vs.words[(value-1)/64]>>uint((value-1)%64))&1 == 1
}

// Count returns the number of values in the set.
func (vs ValueSet) Count() int {
	n := 0
	for _, w := range vs.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// IsEmpty reports whether the set contains no values.
func (vs ValueSet) IsEmpty() bool {
	for _, w := range vs.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// IsSingleton reports whether the set contains exactly one value.
func (vs ValueSet) IsSingleton() bool { return vs.Count() == 1 }

// SingletonValue returns the single value of a singleton set.
// Returns 0 if the set is empty.
func (vs ValueSet) SingletonValue() int {
	for i, w := range vs.words {
		if w != 0 {
			return i*64 + bits.TrailingZeros64(w) + 1
		}
	}
	return 0
}

// Iterate calls f for each value in ascending order.
func (vs ValueSet) Iterate(f func(value int)) {
	for i, w := range vs.words {
		for w != 0 {
			low := w & -w
			f(i*64 + bits.TrailingZeros64(w) + 1)
			w &^= low
		}
	}
}

// Values returns the set's values as an ascending slice.
func (vs ValueSet) Values() []int {
	out := make([]int, 0, vs.Count())
	vs.Iterate(func(v int) { out = append(out, v) })
	return out
}

// Without returns a new set with value removed.
func (vs ValueSet) Without(value int) ValueSet {
	if !vs.Has(value) {
		return vs
	}
	words := make([]uint64, len(vs.words))
	copy(words, vs.words)
	words[(value-1)/64] &^= 1 << uint((value-1)%64)
	return ValueSet{max: vs.max, words: words}
}

// Only returns the set {value}, or the empty set if value is not present.
func (vs ValueSet) Only(value int) ValueSet {
	if !vs.Has(value) {
		return ValueSet{max: vs.max, words: make([]uint64, len(vs.words))}
	}
	words := make([]uint64, len(vs.words))
	words[(value-1)/64] = 1 << uint((value-1)%64)
	return ValueSet{max: vs.max, words: words}
}

// Equal reports whether both sets contain exactly the same values.
func (vs ValueSet) Equal(other ValueSet) bool {
	if vs.max != other.max || len(vs.words) != len(other.words) {
		return false
	}
	for i := range vs.words {
		if vs.words[i] != other.words[i] {
			return false
		}
	}
	return true
}

// MaxValue returns the upper bound of the set's value range.
func (vs ValueSet) MaxValue() int { return vs.max }

// String renders the set as "{1,3,5}".
func (vs ValueSet) String() string {
	var b strings.Builder
	b.WriteString("{")
	first := true
	vs.Iterate(func(v int) {
		if !first {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, "%d", v)
		first = false
	})
	b.WriteString("}")
	return b.String()
}

// Snapshot is an opaque undo token for a DomainStore. Restoring to a
// snapshot reverses every prune made after it, in reverse order.
type Snapshot int

type domainChange struct {
	v    Variable
	prev ValueSet
}

// DomainStore holds the current candidate domain of every variable and a
// change trail that makes all pruning reversible. Each prune records the
// variable's previous domain; Restore pops trail entries back to a
// snapshot, so any sequence of prunes can be undone with no residual
// effect.
//
// An empty domain after a prune is a dead-end signal for the search, not
// an error: the store itself accepts the empty state and restores it
// cleanly.
type DomainStore struct {
	domains []ValueSet
	trail   []domainChange
}

// NewDomainStore creates a store seeded with the given per-variable
// domains. The slice is copied; the caller's sets are not retained.
func NewDomainStore(domains []ValueSet) *DomainStore {
	ds := &DomainStore{domains: make([]ValueSet, len(domains))}
	copy(ds.domains, domains)
	return ds
}

// Snapshot returns a token for the store's current trail position.
func (ds *DomainStore) Snapshot() Snapshot { return Snapshot(len(ds.trail)) }

// Restore undoes every change made after the snapshot was taken.
func (ds *DomainStore) Restore(s Snapshot) {
	for len(ds.trail) > int(s) {
		ch := ds.trail[len(ds.trail)-1]
		ds.domains[ch.v] = ch.prev
		ds.trail = ds.trail[:len(ds.trail)-1]
	}
}

// Domain returns the current candidate set for v.
func (ds *DomainStore) Domain(v Variable) ValueSet { return ds.domains[v] }

// Count returns the size of v's current domain.
func (ds *DomainStore) Count(v Variable) int { return ds.domains[v].Count() }

// IsEmpty reports whether v's domain has been pruned to nothing.
func (ds *DomainStore) IsEmpty(v Variable) bool { return ds.domains[v].IsEmpty() }

// Prune removes every value of v's domain for which drop returns true,
// recording the change on the trail. Returns the number of values removed.
func (ds *DomainStore) Prune(v Variable, drop func(value int) bool) int {
	cur := ds.domains[v]
	next := cur
	removed := 0
	cur.Iterate(func(val int) {
		if drop(val) {
			next = next.Without(val)
			removed++
		}
	})
	if removed > 0 {
		ds.trail = append(ds.trail, domainChange{v: v, prev: cur})
		ds.domains[v] = next
	}
	return removed
}

// Fix narrows v's domain to the single value, recording the change.
// Returns false if value is not currently in v's domain; the store is
// left untouched in that case.
func (ds *DomainStore) Fix(v Variable, value int) bool {
	cur := ds.domains[v]
	if !cur.Has(value) {
		return false
	}
	if cur.IsSingleton() {
		return true
	}
	ds.trail = append(ds.trail, domainChange{v: v, prev: cur})
	ds.domains[v] = cur.Only(value)
	return true
}
