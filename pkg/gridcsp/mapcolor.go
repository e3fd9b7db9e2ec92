// Package gridcsp provides constraint satisfaction search.
// This file implements the map coloring adapter: assign a color to each
// named region so that no two neighboring regions share one.
package gridcsp

import "fmt"

// MapColoring is a Problem with one variable per region and one value
// per color (1-based index into the color list).
type MapColoring struct {
	regions []string
	colors  []string
	adj     [][]int // region index -> neighbor region indices
	byName  map[string]int
}

// NewMapColoring creates the puzzle from named regions, a neighbor map,
// and a color palette. A neighbor entry naming an undeclared region is
// rejected with ErrMalformedInstance. Adjacency is symmetrized: listing
// either direction of an edge is enough.
func NewMapColoring(regions []string, neighbors map[string][]string, colors []string) (*MapColoring, error) {
	if len(regions) == 0 {
		return nil, fmt.Errorf("%w: no regions", ErrMalformedInstance)
	}
	if len(colors) == 0 {
		return nil, fmt.Errorf("%w: no colors", ErrMalformedInstance)
	}
	m := &MapColoring{
		regions: regions,
		colors:  colors,
		adj:     make([][]int, len(regions)),
		byName:  make(map[string]int, len(regions)),
	}
	for i, name := range regions {
		if _, dup := m.byName[name]; dup {
			return nil, fmt.Errorf("%w: region %q declared twice", ErrMalformedInstance, name)
		}
		m.byName[name] = i
	}
	edges := make(map[[2]int]bool)
	for name, list := range neighbors {
		i, ok := m.byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: neighbor map references undeclared region %q", ErrMalformedInstance, name)
		}
		for _, other := range list {
			j, ok := m.byName[other]
			if !ok {
				return nil, fmt.Errorf("%w: region %q lists undeclared neighbor %q", ErrMalformedInstance, name, other)
			}
			if i == j {
				return nil, fmt.Errorf("%w: region %q neighbors itself", ErrMalformedInstance, name)
			}
			lo, hi := i, j
			if lo > hi {
				lo, hi = hi, lo
			}
			edges[[2]int{lo, hi}] = true
		}
	}
	for e := range edges {
		m.adj[e[0]] = append(m.adj[e[0]], e[1])
		m.adj[e[1]] = append(m.adj[e[1]], e[0])
	}
	return m, nil
}

// NewAustraliaMap returns the classic Australia map coloring instance
// over the given palette.
func NewAustraliaMap(colors []string) (*MapColoring, error) {
	regions := []string{"WA", "NT", "SA", "Q", "NSW", "V", "T"}
	neighbors := map[string][]string{
		"WA":  {"NT", "SA"},
		"NT":  {"SA", "Q"},
		"SA":  {"Q", "NSW", "V"},
		"Q":   {"NSW"},
		"NSW": {"V"},
		"T":   {},
	}
	return NewMapColoring(regions, neighbors, colors)
}

// Variables implements Problem: one variable per region, input order.
func (m *MapColoring) Variables() []Variable {
	vars := make([]Variable, len(m.regions))
	for i := range vars {
		vars[i] = Variable(i)
	}
	return vars
}

// InitialDomains implements Problem: the full palette for every region.
func (m *MapColoring) InitialDomains() [][]int {
	domains := make([][]int, len(m.regions))
	for i := range domains {
		palette := make([]int, len(m.colors))
		for c := range palette {
			palette[c] = c + 1
		}
		domains[i] = palette
	}
	return domains
}

// IsConsistent implements Problem: no assigned neighbor may hold the
// same color.
func (m *MapColoring) IsConsistent(v Variable, value int, a *Assignment) bool {
	for _, w := range m.adj[v] {
		if other, ok := a.Value(Variable(w)); ok && other == value {
			return false
		}
	}
	return true
}

// Neighbors implements Neighborly.
func (m *MapColoring) Neighbors(v Variable) []Variable {
	out := make([]Variable, len(m.adj[v]))
	for i, w := range m.adj[v] {
		out[i] = Variable(w)
	}
	return out
}

// Degree implements DegreeRanker: the region's static adjacency degree.
func (m *MapColoring) Degree(v Variable, a *Assignment) int {
	return len(m.adj[v])
}

// ColorNames projects a solution to a region-name -> color-name map.
func (m *MapColoring) ColorNames(solution map[Variable]int) map[string]string {
	out := make(map[string]string, len(solution))
	for v, c := range solution {
		out[m.regions[v]] = m.colors[c-1]
	}
	return out
}
