package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/loki3/loki3.github.io/flex"
	"github.com/loki3/loki3.github.io/flexagon"
	"github.com/loki3/loki3.github.io/tracker"
)

// Explore enumerates every state reachable from a start state, one state per
// CheckNext call, and records each state's outgoing moves.
type Explore struct {
	opts    Options
	moves   *mover
	tracker *tracker.Tracker
	states  []*flexagon.Flexagon
	edges   [][]Move
	next    int
	err     error
}

// NewExplore prepares an exploration from start using flexes from cat.
func NewExplore(start *flexagon.Flexagon, cat flex.Catalog, opts ...Option) (*Explore, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	mv, err := newMover(start.PatCount(), cat, o)
	if err != nil {
		return nil, err
	}
	e := &Explore{
		opts:    o,
		moves:   mv,
		tracker: tracker.New(start),
		states:  []*flexagon.Flexagon{start},
		edges:   [][]Move{nil},
	}
	e.tracker.FindMaybeAdd(start)
	return e, nil
}

// CheckNext explores the next unexplored state.
// It returns true while unexplored states remain.
func (e *Explore) CheckNext() bool {
	if e.err != nil || e.next >= len(e.states) {
		return false
	}
	from := e.next
	var out []Move
	e.moves.each(e.states[from], func(mv Move, fx *flexagon.Flexagon) bool {
		idx, seen := e.tracker.FindMaybeAdd(fx)
		if !seen {
			if e.opts.atLimit(len(e.states)) {
				e.err = fmt.Errorf("%w: %d", ErrStateLimit, e.opts.MaxStates)
				return false
			}
			e.states = append(e.states, fx)
			e.edges = append(e.edges, nil)
		}
		mv.State = idx
		out = append(out, mv)
		return true
	})
	if e.err != nil {
		e.opts.Logger.Info("exploration stopped", zap.Error(e.err), zap.Int("states", len(e.states)))
		return false
	}
	e.edges[from] = out
	e.next++
	if e.next == len(e.states) {
		e.opts.Logger.Info("exploration complete", zap.Int("states", len(e.states)))
		return false
	}
	return true
}

// Run calls CheckNext until every state is explored or ctx is done.
func (e *Explore) Run(ctx context.Context) error {
	for e.CheckNext() {
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return e.err
}

// Err returns the reason exploration stopped early, if any.
func (e *Explore) Err() error { return e.err }

// Done reports whether every discovered state has been explored.
func (e *Explore) Done() bool { return e.err == nil && e.next >= len(e.states) }

// Explored returns how many states have had their moves recorded.
func (e *Explore) Explored() int { return e.next }

// States returns every discovered state, indexed as in Move.State.
func (e *Explore) States() []*flexagon.Flexagon {
	return append([]*flexagon.Flexagon(nil), e.states...)
}

// Moves returns the recorded moves out of state i.
func (e *Explore) Moves(i int) []Move { return append([]Move(nil), e.edges[i]...) }

// AllMoves returns the moves of every state.
func (e *Explore) AllMoves() [][]Move {
	out := make([][]Move, len(e.edges))
	for i := range e.edges {
		out[i] = e.Moves(i)
	}
	return out
}
