package atomic

import (
	"fmt"

	"github.com/loki3/loki3.github.io/flex"
	"github.com/loki3/loki3.github.io/pat"
)

// Combine derives a single flex equivalent to sequence.
//
// It starts from the bare pattern "a # b" and applies each step, growing
// whatever structure the step needs. Growth is mirrored back onto the
// starting pattern, so at the end the grown start is the new flex's Input and
// the final state its Output. Leaves are renumbered 1..n in Input order.
func Combine(name, sequence string, cat Catalog) (*Flex, error) {
	seq, err := flex.ParseSequence(sequence)
	if err != nil {
		return nil, err
	}
	start := Pattern{OtherLeft: Remainder{Name: "a"}, OtherRight: Remainder{Name: "b"}}
	cur := start
	ids := pat.NewCounter(1)
	for i, step := range seq.Expand() {
		grow := step
		grow.Gen = flex.GenApply
		next, g, err := applyStep(cur, grow, cat, ids)
		if err != nil {
			return nil, &flex.StepError{Index: i, Step: step.String(), Err: err}
		}
		start = g.mirror(start)
		cur = next
	}

	renumber := numbering(start)
	f := &Flex{Name: name, Input: start.relabel(renumber), Output: cur.relabel(renumber)}
	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("combine %q: %w", sequence, err)
	}
	return f, nil
}

// mirror applies the growth recorded by generate to the pattern the
// sequence started from.
func (g *growth) mirror(p Pattern) Pattern {
	out := Pattern{
		OtherLeft:  p.OtherLeft,
		Left:       append([]ConnectedPat(nil), p.Left...),
		Right:      append([]ConnectedPat(nil), p.Right...),
		OtherRight: p.OtherRight,
	}
	for name, pulled := range g.pulled {
		switch name {
		case out.OtherLeft.Name:
			s := orient(pulled, g.flipped[name] != out.OtherLeft.Flipped)
			out.Left = append(inward(s), out.Left...)
		case out.OtherRight.Name:
			s := orient(pulled, g.flipped[name] != out.OtherRight.Flipped)
			out.Right = append(out.Right, s...)
		}
	}
	for _, sp := range g.splits {
		out.Left = splitLeaf(out.Left, sp)
		out.Right = splitLeaf(out.Right, sp)
	}
	return out
}

func orient(pats []ConnectedPat, flip bool) []ConnectedPat {
	if !flip {
		return pats
	}
	return segment{pats: pats}.flip().pats
}

// splitLeaf replaces the leaf sp.ID, wherever it sits and whichever side up,
// with the pair it was split into.
func splitLeaf(side []ConnectedPat, sp pat.Split) []ConnectedPat {
	pair := pat.Pair(pat.Leaf(sp.Left), pat.Leaf(sp.Right))
	for i, c := range side {
		faceUp, ok := c.Pat.FindID(sp.ID)
		if !ok {
			continue
		}
		repl := pair
		if faceUp != (sp.ID > 0) {
			repl = pair.Flip()
		}
		side[i].Pat = replaceLeaf(c.Pat, sp.ID, repl)
	}
	return side
}

func replaceLeaf(p *pat.Pat, id int, repl *pat.Pat) *pat.Pat {
	if p.IsLeaf() {
		if p.ID() == id || p.ID() == -id {
			return repl
		}
		return p
	}
	return pat.Pair(replaceLeaf(p.Left(), id, repl), replaceLeaf(p.Right(), id, repl))
}

// numbering maps the absolute leaf ids of p, in reading order, to 1..n.
func numbering(p Pattern) map[int]int {
	m := make(map[int]int)
	for _, side := range [][]ConnectedPat{p.Left, p.Right} {
		for _, c := range side {
			for _, id := range c.Pat.Leaves() {
				if id < 0 {
					id = -id
				}
				if _, ok := m[id]; !ok {
					m[id] = len(m) + 1
				}
			}
		}
	}
	return m
}

func (p Pattern) relabel(m map[int]int) Pattern {
	fn := func(id int) int {
		if id < 0 {
			return -m[-id]
		}
		return m[id]
	}
	out := Pattern{OtherLeft: p.OtherLeft, OtherRight: p.OtherRight}
	for _, c := range p.Left {
		out.Left = append(out.Left, ConnectedPat{Pat: c.Pat.Relabel(fn), Dir: c.Dir})
	}
	for _, c := range p.Right {
		out.Right = append(out.Right, ConnectedPat{Pat: c.Pat.Relabel(fn), Dir: c.Dir})
	}
	return out
}
