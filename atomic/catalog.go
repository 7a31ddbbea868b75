package atomic

import (
	"fmt"
	"sort"

	"github.com/loki3/loki3.github.io/flex"
	"github.com/loki3/loki3.github.io/pat"
)

// Catalog maps names to atomic flexes.
type Catalog map[string]*Flex

// Builtins returns the atomic building blocks:
//
//	>   a # 1 b        => a 1 # b           shift the hinge right
//	<   a 1 # b        => a # 1 b
//	^   a # b          => -b # -a           turn over
//	Ur  a # 1/ 2/ b    => a # [1,-2]/ b     fold the right pair together
//	Ul  a 1/ 2/ # b    => a [-1,2]/ # b     fold the left pair together
//
// plus Ur' and Ul'.
func Builtins() Catalog {
	shift := MustNew(flex.ShiftRight, "a # 1 b", "a 1 # b")
	back := shift.CreateInverse()
	back.Name = flex.ShiftLeft
	c := Catalog{
		shift.Name:    shift,
		back.Name:     back,
		flex.TurnOver: MustNew(flex.TurnOver, "a # b", "-b # -a"),
	}
	c.Add(MustNew("Ur", "a # 1/ 2/ b", "a # [1,-2]/ b"))
	c.Add(MustNew("Ul", "a 1/ 2/ # b", "a [-1,2]/ # b"))
	return c
}

// Get looks a flex up by name.
func (c Catalog) Get(name string) (*Flex, error) {
	f, ok := c[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", flex.ErrUnknownFlex, name)
	}
	return f, nil
}

// Add registers f and its inverse.
func (c Catalog) Add(f *Flex) {
	c[f.Name] = f
	inv := f.CreateInverse()
	c[inv.Name] = inv
}

// Names returns every name in sorted order.
func (c Catalog) Names() []string {
	out := make([]string, 0, len(c))
	for k := range c {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ApplySequence runs seq on p. Steps marked "+" or "*" grow the structure
// they need first; new ids come from ids.
func ApplySequence(p Pattern, seq flex.Sequence, cat Catalog, ids *pat.Counter) (Pattern, error) {
	for i, step := range seq.Expand() {
		next, _, err := applyStep(p, step, cat, ids)
		if err != nil {
			return Pattern{}, &flex.StepError{Index: i, Step: step.String(), Err: err}
		}
		p = next
	}
	return p, nil
}

// ApplyString parses s and applies it to the pattern text start,
// numbering new leaves after the largest id already present.
func ApplyString(start, s string, cat Catalog) (Pattern, error) {
	p, err := ParsePattern(start)
	if err != nil {
		return Pattern{}, err
	}
	seq, err := flex.ParseSequence(s)
	if err != nil {
		return Pattern{}, err
	}
	return ApplySequence(p, seq, cat, pat.NewCounter(p.MaxID()+1))
}

func applyStep(p Pattern, step flex.Step, cat Catalog, ids *pat.Counter) (Pattern, *growth, error) {
	f, err := cat.Get(step.Name)
	if err != nil {
		return Pattern{}, nil, err
	}
	var g *growth
	if step.Gen != flex.GenNone {
		if p, g, err = f.generate(p, ids); err != nil {
			return Pattern{}, nil, err
		}
		if step.Gen == flex.GenOnly {
			return p, g, nil
		}
	}
	out, err := f.Apply(p)
	if err != nil {
		return Pattern{}, nil, err
	}
	return out, g, nil
}
