package group

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Sentinel errors for group derivation.
var (
	// ErrUnsupportedFlex is returned when a generator can't be applied.
	ErrUnsupportedFlex = errors.New("group: unsupported flex")

	// ErrNotCyclic is returned when a generator doesn't cycle within the cap.
	ErrNotCyclic = errors.New("group: not cyclic")

	// ErrChangesStructure is returned when a generator alters pat structure.
	ErrChangesStructure = errors.New("group: generator changes structure")

	// ErrIncomplete is returned when a product isn't one of the elements.
	ErrIncomplete = errors.New("group: incomplete")

	// ErrRedundant is returned when two elements, or two products in a row, coincide.
	ErrRedundant = errors.New("group: redundant")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("group: invalid option supplied")
)

// Error names the sequence responsible for a derivation failure.
type Error struct {
	// Kind is one of the package sentinels.
	Kind error
	// Sequence is the generator or element involved.
	Sequence string
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %q: %v", e.Kind, e.Sequence, e.Err)
	}
	return fmt.Sprintf("%v: %q", e.Kind, e.Sequence)
}

// Unwrap exposes both the kind and the cause to errors.Is.
func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// DefaultCycleCap bounds how often a generator is applied while measuring its order.
const DefaultCycleCap = 1000

// Option configures Derive.
type Option func(*Options)

// Options holds Derive's parameters.
type Options struct {
	// CycleCap bounds the applications tried per generator.
	CycleCap int
	// Logger receives progress messages.
	Logger *zap.Logger

	err error
}

// DefaultOptions returns a cap of DefaultCycleCap and a no-op logger.
func DefaultOptions() Options {
	return Options{CycleCap: DefaultCycleCap, Logger: zap.NewNop()}
}

// WithCycleCap sets the per-generator cap; n must be positive.
func WithCycleCap(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: CycleCap must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.CycleCap = n
	}
}

// WithLogger sets the progress logger; nil is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// Table is the multiplication table of the group generated by some flex sequences.
type Table struct {
	// Generators are the generating sequences as given.
	Generators []string `yaml:"generators"`
	// Orders holds each generator's cycle length.
	Orders []int `yaml:"orders"`
	// Elements are the products of generator powers; Elements[0] is "".
	Elements []string `yaml:"elements"`
	// Rows[i][j] is the index of Elements[i] followed by Elements[j].
	Rows [][]int `yaml:"rows"`
	// Commutative reports whether Rows equals its transpose.
	Commutative bool `yaml:"commutative"`
	// Flexagon is the minimal flexagon on which every element works.
	Flexagon string `yaml:"flexagon"`
}

// Order returns the number of elements.
func (t *Table) Order() int { return len(t.Elements) }

// String renders the table with element indexes, one row per line.
func (t *Table) String() string {
	var sb strings.Builder
	for i, row := range t.Rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for j, v := range row {
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.Itoa(v))
		}
	}
	return sb.String()
}
