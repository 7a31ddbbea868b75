package atomic

import (
	"fmt"

	"github.com/loki3/loki3.github.io/flex"
	"github.com/loki3/loki3.github.io/flexagon"
	"github.com/loki3/loki3.github.io/pat"
)

// Flex rewrites the pats around the hinge. Placeholders in Input bind the
// pats found there and remainders bind everything beyond them; Output says
// where each binding goes.
//
// A pat in Output without a direction takes the direction matched by the
// Input pat with the same top-left placeholder.
type Flex struct {
	Name   string
	Input  Pattern
	Output Pattern
}

// New parses input and output and checks that they use the same
// placeholders and remainders, each exactly once.
func New(name, input, output string) (*Flex, error) {
	in, err := ParsePattern(input)
	if err != nil {
		return nil, fmt.Errorf("flex %q input: %w", name, err)
	}
	out, err := ParsePattern(output)
	if err != nil {
		return nil, fmt.Errorf("flex %q output: %w", name, err)
	}
	f := &Flex{Name: name, Input: in, Output: out}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// MustNew is New for built-in definitions.
func MustNew(name, input, output string) *Flex {
	f, err := New(name, input, output)
	if err != nil {
		panic(err)
	}
	return f
}

func (f *Flex) validate() error {
	inIDs, inRems, err := placeholders(f.Input)
	if err != nil {
		return fmt.Errorf("flex %q input: %w", f.Name, err)
	}
	outIDs, outRems, err := placeholders(f.Output)
	if err != nil {
		return fmt.Errorf("flex %q output: %w", f.Name, err)
	}
	if !sameKeys(inIDs, outIDs) || !sameKeys(inRems, outRems) {
		return fmt.Errorf("%w: flex %q: input and output must use the same placeholders", ErrBadPattern, f.Name)
	}
	dirs := inputDirKeys(f.Input)
	for _, side := range [][]ConnectedPat{f.Output.Left, f.Output.Right} {
		for _, c := range side {
			if c.Dir == flexagon.DirAny && !dirs[topKey(c.Pat)] {
				return fmt.Errorf("%w: flex %q: no direction for output pat %s", ErrBadPattern, f.Name, c.Pat)
			}
		}
	}
	return nil
}

// placeholders collects the absolute leaf ids and remainder names of p,
// rejecting zero ids and repeats.
func placeholders(p Pattern) (map[int]bool, map[string]bool, error) {
	ids := make(map[int]bool)
	for _, side := range [][]ConnectedPat{p.Left, p.Right} {
		for _, c := range side {
			for _, id := range c.Pat.Leaves() {
				if id < 0 {
					id = -id
				}
				if id == 0 || ids[id] {
					return nil, nil, fmt.Errorf("%w: placeholder %d used twice or zero", ErrBadPattern, id)
				}
				ids[id] = true
			}
		}
	}
	rems := make(map[string]bool)
	for _, r := range []Remainder{p.OtherLeft, p.OtherRight} {
		if r.IsEmpty() {
			continue
		}
		if rems[r.Name] {
			return nil, nil, fmt.Errorf("%w: remainder %q used twice", ErrBadPattern, r.Name)
		}
		rems[r.Name] = true
	}
	return ids, rems, nil
}

func sameKeys[K comparable](a, b map[K]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

// topKey identifies a pattern pat by the absolute id of its top-left leaf.
func topKey(p *pat.Pat) int {
	id := p.Top()
	if id < 0 {
		return -id
	}
	return id
}

func inputDirKeys(p Pattern) map[int]bool {
	keys := make(map[int]bool)
	for _, side := range [][]ConnectedPat{p.Left, p.Right} {
		for _, c := range side {
			keys[topKey(c.Pat)] = true
		}
	}
	return keys
}

// binding is what matching Input against a pattern produced.
type binding struct {
	pats  pat.Matches
	dirs  map[int]flexagon.Dir
	rests map[string]segment
}

// match binds f.Input against p.
func (f *Flex) match(p Pattern) (*binding, error) {
	k, m := len(f.Input.Left), len(f.Input.Right)
	if len(p.Left) < k || len(p.Right) < m {
		return nil, fmt.Errorf("%w: %q needs %d left and %d right, have %d and %d",
			ErrNotEnoughPats, f.Name, k, m, len(p.Left), len(p.Right))
	}
	b := &binding{pats: make(pat.Matches), dirs: make(map[int]flexagon.Dir), rests: make(map[string]segment)}
	bindPat := func(want, have ConnectedPat) error {
		if want.Dir != flexagon.DirAny && want.Dir != have.Dir {
			return fmt.Errorf("%w: %q wants %s, have %s", ErrDirectionMismatch, f.Name, want, have)
		}
		if err := pat.MatchInto(have.Pat, want.Pat, b.pats); err != nil {
			return err
		}
		b.dirs[topKey(want.Pat)] = have.Dir
		return nil
	}
	inner := p.Left[len(p.Left)-k:]
	for i, want := range f.Input.Left {
		if err := bindPat(want, inner[i]); err != nil {
			return nil, err
		}
	}
	for i, want := range f.Input.Right {
		if err := bindPat(want, p.Right[i]); err != nil {
			return nil, err
		}
	}

	left := segment{pats: inward(p.Left[:len(p.Left)-k]), rem: p.OtherLeft}
	right := segment{pats: p.Right[m:], rem: p.OtherRight}
	if err := b.bindRest(f.Input.OtherLeft, left); err != nil {
		return nil, fmt.Errorf("flex %q: %w", f.Name, err)
	}
	if err := b.bindRest(f.Input.OtherRight, right); err != nil {
		return nil, fmt.Errorf("flex %q: %w", f.Name, err)
	}
	return b, nil
}

func (b *binding) bindRest(r Remainder, s segment) error {
	if r.IsEmpty() {
		if len(s.pats) > 0 || !s.rem.IsEmpty() {
			return fmt.Errorf("%w: nothing in the pattern absorbs %d extra pats", ErrBadPattern, len(s.pats))
		}
		return nil
	}
	if r.Flipped {
		s = s.flip()
	}
	b.rests[r.Name] = s
	return nil
}

func (b *binding) build(side []ConnectedPat) ([]ConnectedPat, error) {
	out := make([]ConnectedPat, len(side))
	for i, c := range side {
		built, err := pat.Build(c.Pat, b.pats)
		if err != nil {
			return nil, err
		}
		dir := c.Dir
		if dir == flexagon.DirAny {
			dir = b.dirs[topKey(c.Pat)]
		}
		out[i] = ConnectedPat{Pat: built, Dir: dir}
	}
	return out, nil
}

func (b *binding) rest(r Remainder) segment {
	if r.IsEmpty() {
		return segment{}
	}
	s := b.rests[r.Name]
	if r.Flipped {
		s = s.flip()
	}
	return s
}

// Apply rewrites p. The remainders of p, together with any pats beyond the
// ones Input lists, travel with the remainders of Input: flipping a
// remainder flips its pats, and a remainder moved across the hinge is laid
// out in the opposite reading order.
func (f *Flex) Apply(p Pattern) (Pattern, error) {
	b, err := f.match(p)
	if err != nil {
		return Pattern{}, err
	}
	left, err := b.build(f.Output.Left)
	if err != nil {
		return Pattern{}, fmt.Errorf("flex %q: %w", f.Name, err)
	}
	right, err := b.build(f.Output.Right)
	if err != nil {
		return Pattern{}, fmt.Errorf("flex %q: %w", f.Name, err)
	}
	var out Pattern
	outer, rem := b.rest(f.Output.OtherLeft).asLeft()
	out.OtherLeft, out.Left = rem, append(outer, left...)
	outer, rem = b.rest(f.Output.OtherRight).asRight()
	out.OtherRight, out.Right = rem, append(right, outer...)
	return out, nil
}

// CreateInverse swaps Input and Output and toggles the trailing "'" of the name.
func (f *Flex) CreateInverse() *Flex {
	return &Flex{Name: flex.InverseName(f.Name), Input: f.Output, Output: f.Input}
}

// growth records how Generate changed a pattern.
type growth struct {
	splits []pat.Split
	// pulled holds pats drawn out of a remainder, keyed by remainder name, in
	// the hinge-outwards order they now occupy next to it.
	pulled map[string][]ConnectedPat
	// flipped records the orientation of each remainder pats were drawn from.
	flipped map[string]bool
}

// Generate grows p until Input matches: missing pats are drawn out of the
// remainder on their side as new leaves, then leaves are split as Input's
// pat shapes require. New ids come from ids.
func (f *Flex) Generate(p Pattern, ids *pat.Counter) (Pattern, []pat.Split, error) {
	out, g, err := f.generate(p, ids)
	if err != nil {
		return Pattern{}, nil, err
	}
	return out, g.splits, nil
}

func (f *Flex) generate(p Pattern, ids *pat.Counter) (Pattern, *growth, error) {
	g := &growth{pulled: make(map[string][]ConnectedPat), flipped: make(map[string]bool)}

	left := append([]ConnectedPat(nil), p.Left...)
	if need := len(f.Input.Left) - len(left); need > 0 {
		if p.OtherLeft.IsEmpty() {
			return Pattern{}, nil, fmt.Errorf("%w: %q needs %d more on the left", ErrNotEnoughPats, f.Name, need)
		}
		// new pats sit next to the remainder, inward of it
		fresh := make([]ConnectedPat, need)
		for i := range fresh {
			fresh[i] = ConnectedPat{Pat: pat.Leaf(ids.Next()), Dir: dirFor(f.Input.Left[i].Dir)}
		}
		g.pulled[p.OtherLeft.Name] = inward(fresh)
		g.flipped[p.OtherLeft.Name] = p.OtherLeft.Flipped
		left = append(fresh, left...)
	}
	right := append([]ConnectedPat(nil), p.Right...)
	if need := len(f.Input.Right) - len(right); need > 0 {
		if p.OtherRight.IsEmpty() {
			return Pattern{}, nil, fmt.Errorf("%w: %q needs %d more on the right", ErrNotEnoughPats, f.Name, need)
		}
		fresh := make([]ConnectedPat, need)
		for i := range fresh {
			fresh[i] = ConnectedPat{Pat: pat.Leaf(ids.Next()), Dir: dirFor(f.Input.Right[len(right)+i].Dir)}
		}
		g.pulled[p.OtherRight.Name] = fresh
		g.flipped[p.OtherRight.Name] = p.OtherRight.Flipped
		right = append(right, fresh...)
	}

	inner := left[len(left)-len(f.Input.Left):]
	for i, want := range f.Input.Left {
		grown, splits := pat.CreatePattern(inner[i].Pat, want.Pat, ids)
		inner[i].Pat = grown
		g.splits = append(g.splits, splits...)
	}
	for i, want := range f.Input.Right {
		grown, splits := pat.CreatePattern(right[i].Pat, want.Pat, ids)
		right[i].Pat = grown
		g.splits = append(g.splits, splits...)
	}
	return Pattern{OtherLeft: p.OtherLeft, Left: left, Right: right, OtherRight: p.OtherRight}, g, nil
}

// dirFor is the direction given to a pat created for a slot wanting d.
func dirFor(d flexagon.Dir) flexagon.Dir {
	if d == flexagon.DirAny {
		return flexagon.DirSlash
	}
	return d
}

func (f *Flex) String() string {
	return f.Name + ": " + f.Input.String() + " => " + f.Output.String()
}
