package flex

import (
	"fmt"
	"strings"

	"github.com/loki3/loki3.github.io/flexagon"
	"github.com/loki3/loki3.github.io/pat"
)

// New validates the parts of a flex and returns it.
//
//   - input, output and any non-empty direction arrays share one length
//   - input placeholders are non-zero and unique
//   - output uses exactly the input placeholders, each once (sign free)
//   - orderOfDirs, when given, is a signed permutation of 1..n
func New(name string, input, output []*pat.Pat, rotation flexagon.Rotation,
	inputDirs, outputDirs flexagon.DirectionsOpt, orderOfDirs []int) (*Flex, error) {
	n := len(input)
	if len(output) != n {
		return nil, &FlexError{Name: name, Err: fmt.Errorf("%w: %d inputs, %d outputs", ErrSizeMismatch, n, len(output))}
	}
	if (len(inputDirs) != 0 && len(inputDirs) != n) || (len(outputDirs) != 0 && len(outputDirs) != n) {
		return nil, &FlexError{Name: name, Err: fmt.Errorf("%w: directions for %d pats", ErrSizeMismatch, n)}
	}
	if len(orderOfDirs) != 0 && len(orderOfDirs) != n {
		return nil, &FlexError{Name: name, Err: fmt.Errorf("%w: order of directions for %d pats", ErrSizeMismatch, n)}
	}

	in := make(map[int]bool)
	for _, p := range input {
		for _, id := range p.Leaves() {
			a := absInt(id)
			if a == 0 || in[a] {
				return nil, &FlexError{Name: name, Err: fmt.Errorf("%w: placeholder %d", ErrBadFlexInput, id)}
			}
			in[a] = true
		}
	}
	out := make(map[int]bool)
	for _, p := range output {
		for _, id := range p.Leaves() {
			a := absInt(id)
			if !in[a] || out[a] {
				return nil, &FlexError{Name: name, Err: fmt.Errorf("%w: placeholder %d", ErrBadFlexOutput, id)}
			}
			out[a] = true
		}
	}
	if len(out) != len(in) {
		return nil, &FlexError{Name: name, Err: fmt.Errorf("%w: %d of %d placeholders used", ErrBadFlexOutput, len(out), len(in))}
	}

	if len(orderOfDirs) != 0 {
		seen := make([]bool, n+1)
		for _, o := range orderOfDirs {
			a := absInt(o)
			if a < 1 || a > n || seen[a] {
				return nil, &FlexError{Name: name, Err: fmt.Errorf("%w: order of directions %v", ErrBadDirections, orderOfDirs)}
			}
			seen[a] = true
		}
	}

	return &Flex{
		Name:        name,
		Input:       append([]*pat.Pat(nil), input...),
		Output:      append([]*pat.Pat(nil), output...),
		InputDirs:   inputDirs.Clone(),
		OutputDirs:  outputDirs.Clone(),
		OrderOfDirs: append([]int(nil), orderOfDirs...),
		Rotation:    rotation,
	}, nil
}

// FromDefinition parses and validates a plain flex description.
func FromDefinition(d Definition) (*Flex, error) {
	input, err := parseList(d.Input)
	if err != nil {
		return nil, &FlexError{Name: d.Name, Err: fmt.Errorf("%w: %w", ErrBadFlexInput, err)}
	}
	output, err := parseList(d.Output)
	if err != nil {
		return nil, &FlexError{Name: d.Name, Err: fmt.Errorf("%w: %w", ErrBadFlexOutput, err)}
	}
	rotation := flexagon.ABC
	if d.Rotation != "" {
		if rotation, err = flexagon.ParseRotation(d.Rotation); err != nil {
			return nil, &FlexError{Name: d.Name, Err: err}
		}
	}
	inDirs, err := flexagon.ParseDirectionsOpt(d.InputDirs)
	if err != nil {
		return nil, &FlexError{Name: d.Name, Err: fmt.Errorf("%w: %w", ErrBadDirections, err)}
	}
	outDirs, err := flexagon.ParseDirectionsOpt(d.OutputDirs)
	if err != nil {
		return nil, &FlexError{Name: d.Name, Err: fmt.Errorf("%w: %w", ErrBadDirections, err)}
	}
	return New(d.Name, input, output, rotation, inDirs, outDirs, d.OrderOfDirs)
}

func parseList(trees []pat.LeafTree) ([]*pat.Pat, error) {
	out := make([]*pat.Pat, len(trees))
	for i, t := range trees {
		p, err := pat.Parse(t)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

// Definition returns the plain description of f.
func (f *Flex) Definition() Definition {
	d := Definition{
		Name:        f.Name,
		Input:       make([]pat.LeafTree, len(f.Input)),
		Output:      make([]pat.LeafTree, len(f.Output)),
		Rotation:    f.Rotation.String(),
		InputDirs:   f.InputDirs.String(),
		OutputDirs:  f.OutputDirs.String(),
		OrderOfDirs: append([]int(nil), f.OrderOfDirs...),
	}
	for i, p := range f.Input {
		d.Input[i] = p.ToLeafTree()
	}
	for i, p := range f.Output {
		d.Output[i] = p.ToLeafTree()
	}
	return d
}

// PatCount returns the number of pats f applies to.
func (f *Flex) PatCount() int { return len(f.Input) }

// Apply runs f against fx and returns the resulting flexagon.
// fx is never modified; on failure the error wraps ErrCantApply together
// with the underlying shape or direction mismatch.
func (f *Flex) Apply(fx *flexagon.Flexagon) (*flexagon.Flexagon, error) {
	if fx.PatCount() != len(f.Input) {
		return nil, &FlexError{Name: f.Name, Err: fmt.Errorf("%w: %w: flex has %d pats, flexagon %d",
			ErrCantApply, ErrSizeMismatch, len(f.Input), fx.PatCount())}
	}

	// 1. match
	m, err := fx.MatchPattern(f.Input, f.InputDirs)
	if err != nil {
		return nil, &FlexError{Name: f.Name, Err: fmt.Errorf("%w: %w", ErrCantApply, err)}
	}

	// 2. rebuild
	pats := make([]*pat.Pat, len(f.Output))
	for i, o := range f.Output {
		if pats[i], err = pat.Build(o, m); err != nil {
			return nil, &FlexError{Name: f.Name, Err: fmt.Errorf("%w: %w", ErrBadFlexOutput, err)}
		}
	}

	// 3. directions
	old := fx.Directions()
	dirs := make(flexagon.Directions, len(old))
	for i := range dirs {
		if v, ok := f.OutputDirs.At(i); ok {
			dirs[i] = v
			continue
		}
		if len(f.OrderOfDirs) == 0 {
			dirs[i] = old[i]
			continue
		}
		o := f.OrderOfDirs[i]
		dirs[i] = old[absInt(o)-1]
		if o < 0 {
			dirs[i] = !dirs[i]
		}
	}

	// 4. corners
	corners := fx.Corners().Apply(f.Rotation, old[0])

	return fx.Replace(pats, dirs, corners)
}

// CanApply reports whether f would succeed on fx.
func (f *Flex) CanApply(fx *flexagon.Flexagon) bool {
	if fx.PatCount() != len(f.Input) || !f.InputDirs.Matches(fx.Directions()) {
		return false
	}
	return fx.HasPattern(f.Input)
}

// Generate grows fx until it has the structure f's input needs.
// New leaf ids come from ids; every split is returned.
func (f *Flex) Generate(fx *flexagon.Flexagon, ids *pat.Counter) (*flexagon.Flexagon, []pat.Split, error) {
	grown, splits, err := fx.CreatePattern(f.Input, ids)
	if err != nil {
		return nil, nil, &FlexError{Name: f.Name, Err: fmt.Errorf("%w: %w", ErrCantApply, err)}
	}
	return grown, splits, nil
}

// CreateInverse returns the flex that undoes f.
// Inverting twice yields a flex equal to f.
func (f *Flex) CreateInverse() *Flex {
	var order []int
	if len(f.OrderOfDirs) != 0 {
		order = make([]int, len(f.OrderOfDirs))
		for i, o := range f.OrderOfDirs {
			if o < 0 {
				order[-o-1] = -(i + 1)
			} else {
				order[o-1] = i + 1
			}
		}
	}
	return &Flex{
		Name:        InverseName(f.Name),
		Input:       append([]*pat.Pat(nil), f.Output...),
		Output:      append([]*pat.Pat(nil), f.Input...),
		InputDirs:   f.OutputDirs.Clone(),
		OutputDirs:  f.InputDirs.Clone(),
		OrderOfDirs: order,
		Rotation:    f.Rotation.Inverse(),
	}
}

// InverseName adds or removes a trailing '.
func InverseName(name string) string {
	if strings.HasSuffix(name, "'") {
		return strings.TrimSuffix(name, "'")
	}
	return name + "'"
}

// Equal reports whether f and o are the same rule.
func (f *Flex) Equal(o *Flex) bool {
	if f.Name != o.Name || f.Rotation != o.Rotation || len(f.Input) != len(o.Input) ||
		f.InputDirs.String() != o.InputDirs.String() || f.OutputDirs.String() != o.OutputDirs.String() ||
		len(f.OrderOfDirs) != len(o.OrderOfDirs) {
		return false
	}
	for i := range f.OrderOfDirs {
		if f.OrderOfDirs[i] != o.OrderOfDirs[i] {
			return false
		}
	}
	for i := range f.Input {
		if !f.Input[i].Equal(o.Input[i]) || !f.Output[i].Equal(o.Output[i]) {
			return false
		}
	}
	return true
}

// String renders the flex as "name: input -> output".
func (f *Flex) String() string {
	return fmt.Sprintf("%s: %s -> %s", f.Name, listString(f.Input), listString(f.Output))
}

func listString(pats []*pat.Pat) string {
	parts := make([]string, len(pats))
	for i, p := range pats {
		parts[i] = p.String()
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
