package flex

import (
	"fmt"
	"sort"

	"github.com/loki3/loki3.github.io/flexagon"
	"github.com/loki3/loki3.github.io/pat"
)

// Names of the built-in rotation flexes.
const (
	ShiftRight   = ">"
	ShiftLeft    = "<"
	TurnOver     = "^"
	ChangeVertex = "~"
)

// IsRotation reports whether name is one of > < ^ ~.
func IsRotation(name string) bool {
	switch name {
	case ShiftRight, ShiftLeft, TurnOver, ChangeVertex:
		return true
	}
	return false
}

func identityPats(n int) []*pat.Pat {
	out := make([]*pat.Pat, n)
	for i := range out {
		out[i] = pat.Leaf(i + 1)
	}
	return out
}

// MakeShift returns ">": every pat moves one slot toward the front.
func MakeShift(n int) *Flex {
	output := make([]*pat.Pat, n)
	order := make([]int, n)
	for i := range output {
		output[i] = pat.Leaf((i+1)%n + 1)
		order[i] = (i+1)%n + 1
	}
	return &Flex{Name: ShiftRight, Input: identityPats(n), Output: output, OrderOfDirs: order, Rotation: flexagon.Right}
}

// MakeShiftBack returns "<", the inverse of ">".
func MakeShiftBack(n int) *Flex {
	f := MakeShift(n).CreateInverse()
	f.Name = ShiftLeft
	return f
}

// MakeTurnOver returns "^": the flexagon turned over, so the pats run
// backwards, each flipped, and the directions are reversed.
func MakeTurnOver(n int) *Flex {
	output := make([]*pat.Pat, n)
	order := make([]int, n)
	for i := range output {
		output[i] = pat.Leaf(-(n - i))
		order[i] = n - i
	}
	return &Flex{Name: TurnOver, Input: identityPats(n), Output: output, OrderOfDirs: order, Rotation: flexagon.ACB}
}

// MakeChangeVertex returns "~": the pats stay put, the current corner moves.
func MakeChangeVertex(n int) *Flex {
	return &Flex{Name: ChangeVertex, Input: identityPats(n), Output: identityPats(n), Rotation: flexagon.BAC}
}

// MakePinch returns the pinch flex "P" for an even pat count of at least 4.
// Pats are taken in pairs: the first pat of each pair must be folded, and its
// second half is pinched onto the pat that follows it.
//
//	[-2,1] -3 [-5,4] -6 ...  =>  -2 [1,-3] -5 [4,-6] ...
func MakePinch(n int) (*Flex, error) {
	if n < 4 || n%2 != 0 {
		return nil, &FlexError{Name: "P", Err: fmt.Errorf("%w: pinch flex needs an even pat count >= 4, got %d", ErrSizeMismatch, n)}
	}
	input := make([]*pat.Pat, 0, n)
	output := make([]*pat.Pat, 0, n)
	for g := 0; g < n/2; g++ {
		a, b, c := 3*g+1, 3*g+2, 3*g+3
		input = append(input, pat.Pair(pat.Leaf(-b), pat.Leaf(a)), pat.Leaf(-c))
		output = append(output, pat.Leaf(-b), pat.Pair(pat.Leaf(a), pat.Leaf(-c)))
	}
	return New("P", input, output, flexagon.ACB, nil, nil, nil)
}

// Catalog maps flex names to flexes.
type Catalog map[string]*Flex

// Builtins returns the catalog available for n pats: > < ^ ~, plus P and P'
// when the pinch flex applies.
func Builtins(n int) Catalog {
	c := Catalog{
		ShiftRight:   MakeShift(n),
		ShiftLeft:    MakeShiftBack(n),
		TurnOver:     MakeTurnOver(n),
		ChangeVertex: MakeChangeVertex(n),
	}
	if p, err := MakePinch(n); err == nil {
		c.Add(p)
	}
	return c
}

// Get looks a flex up by name.
func (c Catalog) Get(name string) (*Flex, error) {
	f, ok := c[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFlex, name)
	}
	return f, nil
}

// Add registers f and its inverse, replacing any flexes of the same names.
func (c Catalog) Add(f *Flex) {
	c[f.Name] = f
	inv := f.CreateInverse()
	c[inv.Name] = inv
}

// Clone returns a shallow copy; flexes are immutable so they are shared.
func (c Catalog) Clone() Catalog {
	out := make(Catalog, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
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

// FlexNames returns the sorted names of everything except > < ^ ~.
func (c Catalog) FlexNames() []string {
	out := make([]string, 0, len(c))
	for _, k := range c.Names() {
		if !IsRotation(k) {
			out = append(out, k)
		}
	}
	return out
}
