package atomic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loki3/loki3.github.io/atomic"
	"github.com/loki3/loki3.github.io/flex"
	"github.com/loki3/loki3.github.io/flexagon"
	"github.com/loki3/loki3.github.io/pat"
)

// TestParsePattern verifies the text form in both directions.
func TestParsePattern(t *testing.T) {
	p, err := atomic.ParsePattern(`a 1/ [2,-3]\ # 4/ b`)
	require.NoError(t, err)
	assert.Equal(t, atomic.Remainder{Name: "a"}, p.OtherLeft)
	assert.Equal(t, atomic.Remainder{Name: "b"}, p.OtherRight)
	require.Len(t, p.Left, 2)
	require.Len(t, p.Right, 1)
	assert.Equal(t, "[2,-3]", p.Left[1].Pat.String())
	assert.Equal(t, flexagon.DirBackslash, p.Left[1].Dir)
	assert.Equal(t, flexagon.DirSlash, p.Right[0].Dir)
	assert.Equal(t, `a 1/ [2,-3]\ # 4/ b`, p.String())
	assert.Equal(t, 3, p.MaxID())
	assert.Equal(t, 3, p.PatCount())

	q, err := atomic.ParsePattern("-x  [ 1 , 2 ] #  -y")
	require.NoError(t, err)
	assert.Equal(t, "-x [1,2] # -y", q.String())
	assert.Equal(t, flexagon.DirAny, q.Left[0].Dir)

	bare, err := atomic.ParsePattern("#")
	require.NoError(t, err)
	assert.Equal(t, "#", bare.String())
}

// TestParsePattern_Errors verifies that malformed text is rejected.
func TestParsePattern_Errors(t *testing.T) {
	for _, s := range []string{
		"a 1 b",
		"a # # b",
		"1 a # b",
		"a # b 2",
		"a [1,2 # b",
		"a # 1 @",
		"a # [1,2,3] b",
	} {
		t.Run(s, func(t *testing.T) {
			_, err := atomic.ParsePattern(s)
			assert.ErrorIs(t, err, atomic.ErrBadPattern)
		})
	}
}

// TestNew_Validation verifies that input and output must use the same placeholders.
func TestNew_Validation(t *testing.T) {
	tests := []struct{ name, in, out string }{
		{"different ids", "a # 1 b", "a # 2 b"},
		{"extra id", "a # 1/ b", "a # [1,2]/ b"},
		{"repeated remainder", "a # 1 b", "a # 1 a"},
		{"repeated id", "a # 1 1 b", "a # 1 1 b"},
		{"undirected output", "a # [1,2] b", "a # 2 1 b"},
		{"bad text", "a # 1 b", "a 1 b"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := atomic.New("X", tc.in, tc.out)
			assert.ErrorIs(t, err, atomic.ErrBadPattern)
		})
	}
}

// TestBuiltins_Apply verifies each built-in on a concrete pattern.
func TestBuiltins_Apply(t *testing.T) {
	cat := atomic.Builtins()
	assert.Equal(t, []string{"<", ">", "Ul", "Ul'", "Ur", "Ur'", "^"}, cat.Names())

	tests := []struct{ flex, in, want string }{
		{">", `x # 5/ 6\ y`, `x 5/ # 6\ y`},
		{"<", `x 4\ 5/ # y`, `x 4\ # 5/ y`},
		{"^", `a 1/ # 2\ b`, `-b -2\ # -1/ -a`},
		{"^", `-b -2\ # -1/ -a`, `a 1/ # 2\ b`},
		{"Ur", "a # 1/ 2/ 3/ b", "a # [1,-2]/ 3/ b"},
		{"Ur'", "a # [1,-2]/ b", "a # 1/ 2/ b"},
		{"Ul", "a 1/ 2/ # b", "a [-1,2]/ # b"},
		{"Ul'", "a [-1,2]/ # b", "a 1/ 2/ # b"},
	}
	for _, tc := range tests {
		t.Run(tc.flex+" "+tc.in, func(t *testing.T) {
			f, err := cat.Get(tc.flex)
			require.NoError(t, err)
			out, err := f.Apply(atomic.MustParsePattern(tc.in))
			require.NoError(t, err)
			assert.Equal(t, tc.want, out.String())
		})
	}
}

// TestPattern_Flip verifies that Flip agrees with the "^" flex.
func TestPattern_Flip(t *testing.T) {
	p := atomic.MustParsePattern(`a 1/ [2,3]\ # 4/ b`)
	turned, err := atomic.Builtins()["^"].Apply(p)
	require.NoError(t, err)
	assert.True(t, p.Flip().Equal(turned))
	assert.True(t, p.Flip().Flip().Equal(p))
}

// TestApply_Errors verifies the failure modes of Apply.
func TestApply_Errors(t *testing.T) {
	cat := atomic.Builtins()

	_, err := cat[">"].Apply(atomic.MustParsePattern("a # b"))
	assert.ErrorIs(t, err, atomic.ErrNotEnoughPats)

	_, err = cat["Ur"].Apply(atomic.MustParsePattern(`a # 1/ 2\ b`))
	assert.ErrorIs(t, err, atomic.ErrDirectionMismatch)

	_, err = cat["Ur'"].Apply(atomic.MustParsePattern("a # 1/ b"))
	assert.Error(t, err)

	closed, err := atomic.New("Z", "# 1", "# 1")
	require.NoError(t, err)
	_, err = closed.Apply(atomic.MustParsePattern("# 1/ 2/"))
	assert.ErrorIs(t, err, atomic.ErrBadPattern)
}

// TestCreateInverse verifies that a flex followed by its inverse is the identity.
func TestCreateInverse(t *testing.T) {
	f := atomic.MustNew("Ur", "a # 1/ 2/ b", "a # [1,-2]/ b")
	inv := f.CreateInverse()
	assert.Equal(t, "Ur'", inv.Name)
	assert.Equal(t, "Ur", inv.CreateInverse().Name)

	p := atomic.MustParsePattern(`c 9\ # 7/ [5,6]/ 8/ d`)
	out, err := f.Apply(p)
	require.NoError(t, err)
	back, err := inv.Apply(out)
	require.NoError(t, err)
	assert.True(t, p.Equal(back), back.String())
}

// TestGenerate verifies that missing pats come out of remainders and leaves split.
func TestGenerate(t *testing.T) {
	cat := atomic.Builtins()
	tests := []struct{ seq, want string }{
		{">*", "a 1/ # b"},
		{">*>*", "a 1/ 2/ # b"},
		{"<*", "a # 1/ b"},
		{"Ur*", "a # [1,-2]/ b"},
		{"Ur'+", "a # [1,-2]/ b"},
		{"Ur'*", "a # 1/ 2/ b"},
		{"^>*", "-b 1/ # -a"},
	}
	for _, tc := range tests {
		t.Run(tc.seq, func(t *testing.T) {
			out, err := atomic.ApplyString("a # b", tc.seq, cat)
			require.NoError(t, err)
			assert.Equal(t, tc.want, out.String())
		})
	}

	grown, splits, err := cat["Ur'"].Generate(atomic.MustParsePattern("a # b"), pat.NewCounter(1))
	require.NoError(t, err)
	assert.Equal(t, "a # [1,-2]/ b", grown.String())
	assert.Equal(t, []pat.Split{{ID: 1, Left: 1, Right: -2}}, splits)

	_, err = atomic.ApplyString("# 1/", ">*>*", cat)
	assert.ErrorIs(t, err, atomic.ErrNotEnoughPats)
	var se *flex.StepError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 1, se.Index)

	_, err = atomic.ApplyString("a # b", "Q", cat)
	assert.ErrorIs(t, err, flex.ErrUnknownFlex)
}

// TestCombine verifies flexes derived from sequences of built-ins.
func TestCombine(t *testing.T) {
	cat := atomic.Builtins()
	tests := []struct{ seq, in, out string }{
		{">>", "a # 1/ 2/ b", "a 1/ 2/ # b"},
		{"^>^", "a -1/ # b", "a # -1/ b"},
		{"^^", "a # b", "a # b"},
		{"Ur Ur'", "a # 1/ 2/ b", "a # 1/ 2/ b"},
		{"Ur'", "a # [1,-2]/ b", "a # 1/ 2/ b"},
	}
	for _, tc := range tests {
		t.Run(tc.seq, func(t *testing.T) {
			f, err := atomic.Combine("X", tc.seq, cat)
			require.NoError(t, err)
			assert.Equal(t, tc.in, f.Input.String())
			assert.Equal(t, tc.out, f.Output.String())
		})
	}

	// turning over, shifting right and turning back shifts left
	left, err := atomic.Combine("L", "^>^", cat)
	require.NoError(t, err)
	p := atomic.MustParsePattern(`x 3\ 7/ # y`)
	got, err := left.Apply(p)
	require.NoError(t, err)
	want, err := cat["<"].Apply(p)
	require.NoError(t, err)
	assert.True(t, want.Equal(got), got.String())

	_, err = atomic.Combine("X", "Q", cat)
	assert.ErrorIs(t, err, flex.ErrUnknownFlex)
	_, err = atomic.Combine("X", "(", cat)
	assert.ErrorIs(t, err, flex.ErrBadSequence)
}
