package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/loki3/loki3.github.io/flex"
	"github.com/loki3/loki3.github.io/flexagon"
	"github.com/loki3/loki3.github.io/session"
)

func newSession(t *testing.T, opts ...session.Option) (*session.Manager, *flexagon.Flexagon) {
	t.Helper()
	plain, err := flexagon.Plain(4, nil)
	require.NoError(t, err)
	return session.New(plain, flex.Builtins(4), opts...), plain
}

// TestManager_UndoRedo verifies a single-entry apply and its undo and redo.
func TestManager_UndoRedo(t *testing.T) {
	m, plain := newSession(t)
	assert.False(t, m.CanUndo())
	assert.False(t, m.CanRedo())
	assert.ErrorIs(t, m.Undo(), session.ErrNothingToUndo)
	assert.ErrorIs(t, m.Redo(), session.ErrNothingToRedo)

	require.NoError(t, m.Apply("P*>", false))
	after := m.Current()
	assert.Equal(t, 6, after.LeafCount())
	assert.Len(t, m.History(), 1)
	assert.Len(t, m.Splits(), 2)

	require.NoError(t, m.Undo())
	assert.Same(t, plain, m.Current())
	assert.Empty(t, m.Splits())
	assert.True(t, m.CanRedo())

	require.NoError(t, m.Redo())
	assert.Same(t, after, m.Current())
	assert.False(t, m.CanRedo())
}

// TestManager_Separately verifies that each step becomes its own entry.
func TestManager_Separately(t *testing.T) {
	m, _ := newSession(t)
	require.NoError(t, m.Apply("P*>>P'", true))

	hist := m.History()
	require.Len(t, hist, 4)
	assert.Equal(t, "P*", hist[0].Sequence)
	assert.Equal(t, ">", hist[1].Sequence)
	assert.Equal(t, "P'", hist[3].Sequence)

	whole, err := flexagon.Plain(4, nil)
	require.NoError(t, err)
	res, err := flex.ApplyString(whole, "P*>>P'", flex.Builtins(4))
	require.NoError(t, err)
	assert.True(t, res.Flexagon.IsSameState(m.Current()))

	require.NoError(t, m.Undo())
	assert.True(t, hist[2].Flexagon.IsSameState(m.Current()))
}

// TestManager_Failure verifies that a failing batch leaves the session untouched.
func TestManager_Failure(t *testing.T) {
	m, _ := newSession(t)
	require.NoError(t, m.Apply("P*", false))
	require.NoError(t, m.Apply(">", false))
	require.NoError(t, m.Undo())
	before := m.Current()

	err := m.Apply(">PP", true)
	var se *flex.StepError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 2, se.Index)
	assert.ErrorIs(t, err, flex.ErrCantApply)
	assert.Same(t, before, m.Current())
	assert.Len(t, m.History(), 1)
	assert.True(t, m.CanRedo(), "redo survives a failed apply")

	assert.Error(t, m.Apply(">PP", false))
	assert.Same(t, before, m.Current())

	assert.ErrorIs(t, m.Apply("P(", false), flex.ErrBadSequence)
}

// TestManager_ApplyDropsRedo verifies that a new apply discards undone entries.
func TestManager_ApplyDropsRedo(t *testing.T) {
	m, plain := newSession(t)
	require.NoError(t, m.Apply("P*", false))
	require.NoError(t, m.Undo())
	require.NoError(t, m.Apply(">", false))
	assert.False(t, m.CanRedo())
	assert.Len(t, m.History(), 1)
	assert.Equal(t, "(1/1)", m.String()[len(m.String())-5:])

	m.Reset(plain)
	assert.False(t, m.CanUndo())
	assert.Same(t, plain, m.Current())
}

// TestManager_Logging verifies that changes are logged.
func TestManager_Logging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	m, _ := newSession(t, session.WithLogger(zap.New(core)))
	require.NoError(t, m.Apply("P*", false))
	require.NoError(t, m.Undo())
	assert.Equal(t, 1, logs.FilterMessage("applied").Len())
	assert.Equal(t, 1, logs.FilterMessage("undo").Len())
}
