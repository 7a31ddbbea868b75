package search

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/loki3/loki3.github.io/flex"
	"github.com/loki3/loki3.github.io/flexagon"
	"github.com/loki3/loki3.github.io/tracker"
)

// CycleLength applies seq to fx again and again and returns the smallest
// k <= limit after which every leaf is back where it started in fx.
// A rotated or turned over copy of fx does not count.
// It returns ErrNotCyclic when limit is reached, or the step error that
// stopped the repetition.
func CycleLength(fx *flexagon.Flexagon, seq flex.Sequence, cat flex.Catalog, limit int) (int, error) {
	cur := fx
	for k := 1; k <= limit; k++ {
		res, err := flex.ApplySequence(cur, seq, cat)
		if err != nil {
			return 0, fmt.Errorf("repetition %d: %w", k, err)
		}
		cur = res.Flexagon
		if cur.IsSameState(fx) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w within %d repetitions of %s", ErrNotCyclic, limit, seq)
}

// GroupCycle is what FindGroupCycles learned about one target state.
type GroupCycle struct {
	// Target is the index of the target state in the input slice.
	Target int
	// Sequence leads from the start to the target and then re-orients the
	// flexagon so its pats line up with the start's structure.
	Sequence string
	// Length is how often Sequence must run to get back to the start.
	Length int
	// Err is set when no sequence was found (ErrUnreachable, ErrStateLimit)
	// or the sequence didn't cycle within the cap (ErrNotCyclic).
	Err error
}

// FindGroupCycles finds, for every state with the same structure as a start
// state, a sequence leading there and that sequence's cycle length.
// Each CheckNext call does one unit of work: one search level, or one cycle
// measurement.
type FindGroupCycles struct {
	opts    Options
	cat     flex.Catalog
	moves   *mover
	start   *flexagon.Flexagon
	states  []*flexagon.Flexagon
	targets []int

	current *FindShortest
	results []GroupCycle
}

// NewFindGroupCycles prepares a cycle search from states[start] to every other
// state of its structural class.
func NewFindGroupCycles(states []*flexagon.Flexagon, start int, cat flex.Catalog, opts ...Option) (*FindGroupCycles, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	if start < 0 || start >= len(states) {
		return nil, fmt.Errorf("%w: start %d of %d states", ErrOptionViolation, start, len(states))
	}
	fx := states[start]
	mv, err := newMover(fx.PatCount(), cat, o)
	if err != nil {
		return nil, err
	}
	want := tracker.StructureKey(fx)
	var targets []int
	for i, s := range states {
		if i != start && s.PatCount() == fx.PatCount() && tracker.StructureKey(s) == want {
			targets = append(targets, i)
		}
	}
	o.Logger.Debug("group cycle targets", zap.Int("count", len(targets)))
	return &FindGroupCycles{
		opts:    o,
		cat:     cat,
		moves:   mv,
		start:   fx,
		states:  states,
		targets: targets,
	}, nil
}

// CheckNext advances by one unit of work and returns true while more remains.
func (g *FindGroupCycles) CheckNext() bool {
	if len(g.results) == len(g.targets) {
		return false
	}
	target := g.targets[len(g.results)]
	if g.current == nil {
		s, err := NewFindShortest(g.start, g.states[target], g.cat, g.searchOptions()...)
		if err != nil {
			g.results = append(g.results, GroupCycle{Target: target, Err: err})
			return len(g.results) < len(g.targets)
		}
		g.current = s
		return true
	}
	if g.current.CheckLevel() {
		return true
	}
	g.results = append(g.results, g.measure(target, g.current))
	g.current = nil
	return len(g.results) < len(g.targets)
}

func (g *FindGroupCycles) searchOptions() []Option {
	return []Option{
		WithFlip(g.opts.Flip),
		WithMaxStates(g.opts.MaxStates),
		WithFlexes(g.moves.names...),
		WithLogger(g.opts.Logger),
	}
}

// measure turns a finished search into a GroupCycle.
func (g *FindGroupCycles) measure(target int, s *FindShortest) GroupCycle {
	res := GroupCycle{Target: target}
	if !s.Found() {
		res.Err = s.Err()
		return res
	}
	moves := s.Moves()
	end := s.Result()
	if len(moves) > 0 {
		// replay to get the concrete orientation the sequence leaves behind
		applied, err := flex.ApplyString(g.start, JoinMoves(moves), g.cat)
		if err != nil {
			res.Err = err
			return res
		}
		end = applied.Flexagon
	}
	extra, _, ok := g.moves.orient(end, g.start)
	if !ok {
		res.Err = fmt.Errorf("%w: no orientation matches the start", ErrNotCyclic)
		return res
	}
	res.Sequence = JoinMoves(moves) + extra.String()

	seq, err := flex.ParseSequence(res.Sequence)
	if err != nil {
		res.Err = err
		return res
	}
	res.Length, res.Err = CycleLength(g.start, seq, g.cat, g.opts.CycleCap)
	g.opts.Logger.Debug("group cycle",
		zap.Int("target", target), zap.String("sequence", res.Sequence), zap.Int("length", res.Length), zap.Error(res.Err))
	return res
}

// Run calls CheckNext until every target is handled.
func (g *FindGroupCycles) Run() []GroupCycle {
	for g.CheckNext() {
	}
	return g.Results()
}

// Targets returns the indexes of the states sharing the start's structure.
func (g *FindGroupCycles) Targets() []int { return append([]int(nil), g.targets...) }

// Results returns the cycles found so far, in target order.
func (g *FindGroupCycles) Results() []GroupCycle { return append([]GroupCycle(nil), g.results...) }
