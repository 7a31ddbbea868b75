package search

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Sentinel errors for search execution.
var (
	// ErrUnreachable is returned when a level adds no new states before the target is found.
	ErrUnreachable = errors.New("search: target unreachable")

	// ErrStateLimit is returned when a search discovers more states than allowed.
	ErrStateLimit = errors.New("search: state limit reached")

	// ErrNotCyclic is reported when a sequence doesn't come back within the cycle cap.
	ErrNotCyclic = errors.New("search: no cycle found")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("search: invalid option supplied")

	// ErrPatCount is returned when the flexagons or flexes involved differ in pat count.
	ErrPatCount = errors.New("search: pat count mismatch")
)

// DefaultCycleCap bounds how often a sequence is repeated while looking for a cycle.
const DefaultCycleCap = 1000

// Option configures a search via functional arguments.
// If an Option is invalid (e.g. negative limit), it is recorded internally
// and surfaced as ErrOptionViolation by the constructor.
type Option func(*Options)

// Options holds the parameters shared by every search engine.
type Options struct {
	// Flip also tries every move with the flexagon turned over.
	Flip bool

	// MaxStates, if > 0, is the most states a search may hold, the start
	// included. Discovering one more stops it with ErrStateLimit.
	MaxStates int

	// CycleCap bounds the repetitions tried when measuring a cycle.
	CycleCap int

	// Flexes restricts the flexes tried; empty means every non-rotation
	// flex of the catalog.
	Flexes []string

	// Logger receives progress messages.
	Logger *zap.Logger

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with sane defaults:
//   - flipping enabled
//   - no state limit
//   - cycle cap DefaultCycleCap
//   - every catalog flex
//   - a no-op logger
func DefaultOptions() Options {
	return Options{
		Flip:     true,
		CycleCap: DefaultCycleCap,
		Logger:   zap.NewNop(),
	}
}

// atLimit reports whether a search holding count states must not add another.
func (o Options) atLimit(count int) bool {
	return o.MaxStates > 0 && count >= o.MaxStates
}

// WithFlip enables or disables moves made with the flexagon turned over.
func WithFlip(flip bool) Option {
	return func(o *Options) { o.Flip = flip }
}

// WithMaxStates stops a search after n states.
//
//	n > 0: limit to n states
//	n == 0: explicit no limit
//	n < 0: invalid option → ErrOptionViolation
func WithMaxStates(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxStates cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxStates = n
	}
}

// WithCycleCap sets how many repetitions a cycle may take; n must be positive.
func WithCycleCap(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: CycleCap must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.CycleCap = n
	}
}

// WithFlexes restricts the flexes tried to names.
func WithFlexes(names ...string) Option {
	return func(o *Options) {
		o.Flexes = append([]string(nil), names...)
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

func buildOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o, o.err
}

// Move is one edge of the state graph: optionally turn over, shift the
// current hinge, then apply a flex.
type Move struct {
	// Flip turns the flexagon over first.
	Flip bool
	// Rotation is the number of '>' shifts when positive, '<' when negative.
	Rotation int
	// Flex is the flex name.
	Flex string
	// State is the index of the resulting state.
	State int
}

// String renders the move as a flex sequence, e.g. "^>>P".
func (m Move) String() string {
	var sb strings.Builder
	if m.Flip {
		sb.WriteByte('^')
	}
	switch {
	case m.Rotation > 0:
		sb.WriteString(strings.Repeat(">", m.Rotation))
	case m.Rotation < 0:
		sb.WriteString(strings.Repeat("<", -m.Rotation))
	}
	sb.WriteString(m.Flex)
	return sb.String()
}

// JoinMoves concatenates moves into one flex sequence string.
func JoinMoves(moves []Move) string {
	var sb strings.Builder
	for _, m := range moves {
		sb.WriteString(m.String())
	}
	return sb.String()
}
