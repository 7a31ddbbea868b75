package search

import (
	"fmt"

	"github.com/loki3/loki3.github.io/flex"
	"github.com/loki3/loki3.github.io/flexagon"
)

// mover enumerates the edges leaving a state.
type mover struct {
	n       int
	flip    bool
	names   []string
	flexes  []*flex.Flex
	shift   *flex.Flex
	unshift *flex.Flex
	over    *flex.Flex
}

func newMover(n int, cat flex.Catalog, o Options) (*mover, error) {
	names := o.Flexes
	if len(names) == 0 {
		names = cat.FlexNames()
	}
	m := &mover{
		n:       n,
		flip:    o.Flip,
		names:   names,
		shift:   flex.MakeShift(n),
		unshift: flex.MakeShiftBack(n),
		over:    flex.MakeTurnOver(n),
	}
	for _, name := range names {
		f, err := cat.Get(name)
		if err != nil {
			return nil, err
		}
		if f.PatCount() != n {
			return nil, fmt.Errorf("%w: flex %q has %d pats, flexagon %d", ErrPatCount, name, f.PatCount(), n)
		}
		m.flexes = append(m.flexes, f)
	}
	return m, nil
}

// rotations returns fx shifted by every hinge offset, paired with the signed
// shift count: r '>' shifts for r <= n/2, otherwise n-r '<' shifts.
func (m *mover) rotations(fx *flexagon.Flexagon) ([]*flexagon.Flexagon, []int) {
	out := make([]*flexagon.Flexagon, m.n)
	counts := make([]int, m.n)
	out[0] = fx
	cur := fx
	for r := 1; r < m.n; r++ {
		cur, _ = m.shift.Apply(cur)
		out[r] = cur
		if r <= m.n/2 {
			counts[r] = r
		} else {
			counts[r] = r - m.n
		}
	}
	return out, counts
}

// each calls fn for every move that applies to fx, in a fixed order:
// unflipped first, then by rotation, then by flex name.
func (m *mover) each(fx *flexagon.Flexagon, fn func(mv Move, next *flexagon.Flexagon) bool) {
	sides := []*flexagon.Flexagon{fx}
	if m.flip {
		over, _ := m.over.Apply(fx)
		sides = append(sides, over)
	}
	for s, side := range sides {
		rotated, counts := m.rotations(side)
		for r, base := range rotated {
			for i, f := range m.flexes {
				next, err := f.Apply(base)
				if err != nil {
					continue
				}
				if !fn(Move{Flip: s == 1, Rotation: counts[r], Flex: m.names[i]}, next) {
					return
				}
			}
		}
	}
}

// orient returns the cheapest flip/rotation combination under which fx has
// the same structure as want, as a Move without a flex. Each shift costs one
// step and turning over costs one more; ties go to the unflipped side and
// then to '>' shifts.
func (m *mover) orient(fx, want *flexagon.Flexagon) (Move, *flexagon.Flexagon, bool) {
	sides := []*flexagon.Flexagon{fx}
	if m.flip {
		over, _ := m.over.Apply(fx)
		sides = append(sides, over)
	}
	var (
		best     Move
		bestFx   *flexagon.Flexagon
		bestCost int
	)
	for s, side := range sides {
		rotated, counts := m.rotations(side)
		for r, base := range rotated {
			cost := s + absInt(counts[r])
			if bestFx != nil && cost >= bestCost {
				continue
			}
			if base.IsSameStructure(want) {
				best, bestFx, bestCost = Move{Flip: s == 1, Rotation: counts[r]}, base, cost
			}
		}
	}
	return best, bestFx, bestFx != nil
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
