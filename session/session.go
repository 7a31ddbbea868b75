package session

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/loki3/loki3.github.io/flex"
	"github.com/loki3/loki3.github.io/flexagon"
	"github.com/loki3/loki3.github.io/pat"
)

// ErrNothingToUndo and ErrNothingToRedo are returned when the history is exhausted.
var (
	ErrNothingToUndo = errors.New("session: nothing to undo")
	ErrNothingToRedo = errors.New("session: nothing to redo")
)

// Entry is one undoable change.
type Entry struct {
	// Sequence is what was applied, as written.
	Sequence string
	// Flexagon is the state after Sequence.
	Flexagon *flexagon.Flexagon
	// Splits are the leaves grown while applying Sequence.
	Splits []pat.Split
}

// Manager holds a flexagon and the history of sequences applied to it.
type Manager struct {
	cat     flex.Catalog
	log     *zap.Logger
	start   *flexagon.Flexagon
	history []Entry
	pos     int // history[:pos] is applied
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger for applied, undone and redone changes.
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// New starts a session on fx using the flexes in cat.
func New(fx *flexagon.Flexagon, cat flex.Catalog, opts ...Option) *Manager {
	m := &Manager{cat: cat, log: zap.NewNop(), start: fx}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Current returns the flexagon after every applied change.
func (m *Manager) Current() *flexagon.Flexagon {
	if m.pos == 0 {
		return m.start
	}
	return m.history[m.pos-1].Flexagon
}

// Catalog returns the flexes the session applies.
func (m *Manager) Catalog() flex.Catalog { return m.cat }

// Apply runs seq on the current flexagon and drops anything that could be redone.
// With separatelyUndoable each expanded step becomes its own history entry;
// otherwise the whole sequence is one entry. On failure the session is left
// exactly as it was and the error names the failing step.
func (m *Manager) Apply(seq string, separatelyUndoable bool) error {
	parsed, err := flex.ParseSequence(seq)
	if err != nil {
		return err
	}
	ids := pat.NewCounter(m.Current().MaxID() + 1)
	base, saved := m.pos, append([]Entry(nil), m.history...)
	if !separatelyUndoable {
		res, err := flex.ApplySequenceWith(m.Current(), parsed, m.cat, ids)
		if err != nil {
			return err
		}
		m.push(Entry{Sequence: seq, Flexagon: res.Flexagon, Splits: res.Splits})
		m.log.Debug("applied", zap.String("sequence", seq), zap.Stringer("flexagon", res.Flexagon))
		return nil
	}

	for i, step := range parsed.Expand() {
		next, splits, err := flex.ApplyStep(m.Current(), step, m.cat, ids)
		if err != nil {
			m.history, m.pos = saved, base
			return &flex.StepError{Index: i, Step: step.String(), Err: err}
		}
		m.push(Entry{Sequence: step.String(), Flexagon: next, Splits: splits})
	}
	m.log.Debug("applied separately", zap.String("sequence", seq), zap.Int("steps", m.pos-base))
	return nil
}

func (m *Manager) push(e Entry) {
	m.history = append(m.history[:m.pos], e)
	m.pos++
}

// CanUndo reports whether Undo would do anything.
func (m *Manager) CanUndo() bool { return m.pos > 0 }

// CanRedo reports whether Redo would do anything.
func (m *Manager) CanRedo() bool { return m.pos < len(m.history) }

// Undo steps back one entry.
func (m *Manager) Undo() error {
	if !m.CanUndo() {
		return ErrNothingToUndo
	}
	m.pos--
	m.log.Debug("undo", zap.String("sequence", m.history[m.pos].Sequence))
	return nil
}

// Redo reapplies the most recently undone entry.
func (m *Manager) Redo() error {
	if !m.CanRedo() {
		return ErrNothingToRedo
	}
	m.log.Debug("redo", zap.String("sequence", m.history[m.pos].Sequence))
	m.pos++
	return nil
}

// History returns the applied entries, oldest first.
func (m *Manager) History() []Entry { return append([]Entry(nil), m.history[:m.pos]...) }

// Splits returns every leaf split by the applied entries, oldest first.
func (m *Manager) Splits() []pat.Split {
	var out []pat.Split
	for _, e := range m.history[:m.pos] {
		out = append(out, e.Splits...)
	}
	return out
}

// Reset drops the history and starts again from fx.
func (m *Manager) Reset(fx *flexagon.Flexagon) {
	m.start, m.history, m.pos = fx, nil, 0
}

func (m *Manager) String() string {
	return fmt.Sprintf("%s (%d/%d)", m.Current(), m.pos, len(m.history))
}
