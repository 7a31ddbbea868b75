package search

import (
	"sort"

	"github.com/loki3/loki3.github.io/flexagon"
	"github.com/loki3/loki3.github.io/tracker"
)

// GroupByStructure partitions states by tracker.StructureKey.
// Groups are ordered by their first member; members keep their input order.
func GroupByStructure(states []*flexagon.Flexagon) [][]int {
	index := make(map[string]int)
	var groups [][]int
	for i, fx := range states {
		key := tracker.StructureKey(fx)
		g, ok := index[key]
		if !ok {
			g = len(groups)
			index[key] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], i)
	}
	return groups
}

// FindSubgraphs splits the states of an exploration into the components
// connected by one flex, treating its moves as undirected edges.
// States the flex never touches form singleton components.
// Components and their members are sorted ascending.
//
// Time:   O(V + E·C) in the worst case, C = size of the merged component.
// Memory: O(V).
func FindSubgraphs(moves [][]Move, flexName string) [][]int {
	comp := make([]int, len(moves)) // state -> component, -1 when unassigned
	for i := range comp {
		comp[i] = -1
	}
	var members [][]int // component -> states

	for from, ms := range moves {
		for _, m := range ms {
			if m.Flex != flexName {
				continue
			}
			to := m.State
			a, b := comp[from], comp[to]
			switch {
			case a == -1 && b == -1:
				c := len(members)
				comp[from] = c
				members = append(members, []int{from})
				if to != from {
					comp[to] = c
					members[c] = append(members[c], to)
				}
			case a == -1:
				comp[from] = b
				members[b] = append(members[b], from)
			case b == -1:
				comp[to] = a
				members[a] = append(members[a], to)
			case a != b:
				// fold the smaller component into the larger
				if len(members[a]) < len(members[b]) {
					a, b = b, a
				}
				for _, s := range members[b] {
					comp[s] = a
				}
				members[a] = append(members[a], members[b]...)
				members[b] = nil
			}
		}
	}

	var out [][]int
	for _, ms := range members {
		if len(ms) == 0 {
			continue
		}
		sorted := append([]int(nil), ms...)
		sort.Ints(sorted)
		out = append(out, sorted)
	}
	for i, c := range comp {
		if c == -1 {
			out = append(out, []int{i})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}
