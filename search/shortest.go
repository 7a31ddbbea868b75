package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/loki3/loki3.github.io/flex"
	"github.com/loki3/loki3.github.io/flexagon"
	"github.com/loki3/loki3.github.io/tracker"
)

// levelStep is one discovered edge: the move taken, the index of its
// predecessor in the previous level, and the state it reached.
type levelStep struct {
	move  Move
	prev  int
	state int
}

// FindShortest is a resumable breadth-first search for a shortest flex
// sequence between two states. Call CheckLevel until it returns false, or Run.
//
// Ties between equally short sequences are broken by discovery order:
// unflipped before flipped, fewer shifts first, then flex name.
type FindShortest struct {
	opts      Options
	moves     *mover
	tracker   *tracker.Tracker
	states    []*flexagon.Flexagon
	levels    [][]levelStep
	targetKey string

	done  bool
	found int // index into the last level, -1 until found
	err   error
}

// NewFindShortest prepares a search from start to target using flexes from cat.
// Returns ErrOptionViolation for bad options, ErrPatCount if the flexagons
// differ in size, or flex.ErrUnknownFlex for a missing flex.
func NewFindShortest(start, target *flexagon.Flexagon, cat flex.Catalog, opts ...Option) (*FindShortest, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	if start.PatCount() != target.PatCount() {
		return nil, fmt.Errorf("%w: %d vs %d", ErrPatCount, start.PatCount(), target.PatCount())
	}
	mv, err := newMover(start.PatCount(), cat, o)
	if err != nil {
		return nil, err
	}
	tr := tracker.New(start)
	s := &FindShortest{
		opts:      o,
		moves:     mv,
		tracker:   tr,
		states:    []*flexagon.Flexagon{start},
		levels:    [][]levelStep{{{prev: -1, state: 0}}},
		targetKey: tr.Key(target),
		found:     -1,
	}
	tr.FindMaybeAdd(start)
	if tr.KeyAt(0) == s.targetKey {
		s.done = true
		s.found = 0
	}
	return s, nil
}

// CheckLevel expands one more breadth-first level.
// It returns true while more work remains.
func (s *FindShortest) CheckLevel() bool {
	if s.done {
		return false
	}
	last := s.levels[len(s.levels)-1]
	var next []levelStep
	for i, st := range last {
		stop := false
		s.moves.each(s.states[st.state], func(mv Move, fx *flexagon.Flexagon) bool {
			idx, seen := s.tracker.FindMaybeAdd(fx)
			if seen {
				return true
			}
			if s.opts.atLimit(len(s.states)) {
				s.err = fmt.Errorf("%w: %d", ErrStateLimit, s.opts.MaxStates)
				stop = true
				return false
			}
			s.states = append(s.states, fx)
			mv.State = idx
			next = append(next, levelStep{move: mv, prev: i, state: idx})
			if s.tracker.KeyAt(idx) == s.targetKey {
				stop = true
				return false
			}
			return true
		})
		if stop {
			break
		}
	}

	if s.err != nil {
		s.done = true
		s.opts.Logger.Info("shortest search stopped", zap.Error(s.err), zap.Int("states", len(s.states)))
		return false
	}
	if len(next) == 0 {
		s.done = true
		s.err = fmt.Errorf("%w after %d levels", ErrUnreachable, len(s.levels)-1)
		s.opts.Logger.Info("target unreachable", zap.Int("levels", len(s.levels)-1), zap.Int("states", len(s.states)))
		return false
	}
	s.levels = append(s.levels, next)
	s.opts.Logger.Debug("level complete", zap.Int("level", len(s.levels)-1), zap.Int("states", len(s.states)))

	if s.tracker.KeyAt(next[len(next)-1].state) == s.targetKey {
		s.done = true
		s.found = len(next) - 1
		s.opts.Logger.Info("target found", zap.String("sequence", s.Sequence()), zap.Int("states", len(s.states)))
		return false
	}
	return true
}

// Run calls CheckLevel until the search finishes or ctx is done.
func (s *FindShortest) Run(ctx context.Context) error {
	for s.CheckLevel() {
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return s.err
}

// Found reports whether the target has been reached.
func (s *FindShortest) Found() bool { return s.found >= 0 }

// Err returns the reason the search failed, if it did.
func (s *FindShortest) Err() error { return s.err }

// StateCount returns the number of distinct states discovered so far.
func (s *FindShortest) StateCount() int { return len(s.states) }

// Levels returns the number of completed levels beyond the start.
func (s *FindShortest) Levels() int { return len(s.levels) - 1 }

// Moves walks predecessor links back from the target; nil until found.
func (s *FindShortest) Moves() []Move {
	if !s.Found() {
		return nil
	}
	var out []Move
	idx := s.found
	for lvl := len(s.levels) - 1; lvl > 0; lvl-- {
		st := s.levels[lvl][idx]
		out = append(out, st.move)
		idx = st.prev
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Sequence returns the flex sequence found, "" for start == target or when
// nothing was found.
func (s *FindShortest) Sequence() string { return JoinMoves(s.Moves()) }

// Result returns the state reached by the found sequence.
func (s *FindShortest) Result() *flexagon.Flexagon {
	if !s.Found() {
		return nil
	}
	return s.states[s.levels[len(s.levels)-1][s.found].state]
}

// Shortest runs a complete search and returns the sequence.
func Shortest(ctx context.Context, start, target *flexagon.Flexagon, cat flex.Catalog, opts ...Option) (string, error) {
	s, err := NewFindShortest(start, target, cat, opts...)
	if err != nil {
		return "", err
	}
	if err := s.Run(ctx); err != nil {
		return "", err
	}
	return s.Sequence(), nil
}
