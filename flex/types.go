package flex

import (
	"errors"
	"fmt"

	"github.com/loki3/loki3.github.io/flexagon"
	"github.com/loki3/loki3.github.io/pat"
)

// Sentinel errors for flex definition and application.
var (
	// ErrSizeMismatch is returned when input, output or direction arrays differ in length.
	ErrSizeMismatch = errors.New("flex: size mismatch")

	// ErrBadFlexInput is returned when input placeholders are zero or repeated.
	ErrBadFlexInput = errors.New("flex: bad flex input")

	// ErrBadFlexOutput is returned when output placeholders don't use each input placeholder once.
	ErrBadFlexOutput = errors.New("flex: bad flex output")

	// ErrUnknownFlex is returned when a catalog has no flex of that name.
	ErrUnknownFlex = errors.New("flex: unknown flex")

	// ErrCantApply is returned when a flex doesn't fit the flexagon.
	ErrCantApply = errors.New("flex: can't apply")

	// ErrBadDirections is returned for malformed direction constraints or orderings.
	ErrBadDirections = errors.New("flex: bad directions")

	// ErrBadSequence is returned for a malformed flex sequence string.
	ErrBadSequence = errors.New("flex: bad sequence")
)

// FlexError ties a failure to the flex that produced it.
type FlexError struct {
	Name string
	Err  error
}

func (e *FlexError) Error() string { return fmt.Sprintf("flex %q: %v", e.Name, e.Err) }

func (e *FlexError) Unwrap() error { return e.Err }

// StepError reports which step of a sequence failed.
type StepError struct {
	// Index is the position of the failing step in the expanded sequence.
	Index int
	// Step is the failing token, e.g. "P'*".
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index, e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Flex is an immutable rewrite rule over every pat of a flexagon.
type Flex struct {
	// Name is how sequences refer to the flex; inverses end in '.
	Name string

	// Input holds one pattern per pat; placeholders are unique non-zero ids.
	Input []*pat.Pat

	// Output rebuilds each pat from Input's placeholders; a negative id
	// inserts the matched sub-pat flipped.
	Output []*pat.Pat

	// InputDirs is the direction precondition (empty means none).
	InputDirs flexagon.DirectionsOpt

	// OutputDirs overrides the resulting directions where constrained.
	OutputDirs flexagon.DirectionsOpt

	// OrderOfDirs says where each new direction comes from: entry i is the
	// 1-based old slot, negated when the direction flips. nil keeps slot i.
	OrderOfDirs []int

	// Rotation describes how the corners of pat 0 get permuted.
	Rotation flexagon.Rotation
}

// Definition is the plain, serialisable description of a flex.
type Definition struct {
	Name        string         `yaml:"name"`
	Input       []pat.LeafTree `yaml:"input"`
	Output      []pat.LeafTree `yaml:"output"`
	Rotation    string         `yaml:"rotation,omitempty"`
	InputDirs   string         `yaml:"inputDirs,omitempty"`
	OutputDirs  string         `yaml:"outputDirs,omitempty"`
	OrderOfDirs []int          `yaml:"orderOfDirs,omitempty"`
}

// Equality is the outcome of CheckEqual.
type Equality int

const (
	// Unequal means the sequences lead to different states.
	Unequal Equality = iota
	// Exact means both sequences produce the very same state.
	Exact
	// AFirst means they agree once a's structure has been generated.
	AFirst
	// BFirst means they agree once b's structure has been generated.
	BFirst
	// Approx means they agree after renumbering leaves.
	Approx
)

// String returns the conventional lower camel name, e.g. "aFirst".
func (e Equality) String() string {
	switch e {
	case Exact:
		return "exact"
	case AFirst:
		return "aFirst"
	case BFirst:
		return "bFirst"
	case Approx:
		return "approx"
	}
	return "unequal"
}
