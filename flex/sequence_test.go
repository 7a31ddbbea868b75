package flex_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/loki3/loki3.github.io/flex"
	"github.com/loki3/loki3.github.io/flexagon"
	"github.com/loki3/loki3.github.io/pat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseSequence_RoundTrip serialises and reparses to an equal sequence.
func TestParseSequence_RoundTrip(t *testing.T) {
	cases := []struct{ in, out string }{
		{"P* P+ >P>P P+ ^P P+ ^P^", "P*P+>P>PP+^PP+^P^"},
		{"(P)30", "(P)30"},
		{"((P>)2 T1' Sh*)3~<", "((P>)2T1'Sh*)3~<"},
		{"( P )", "(P)"},
		{"", ""},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			seq, err := flex.ParseSequence(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.out, seq.String())
			again, err := flex.ParseSequence(seq.String())
			require.NoError(t, err)
			assert.True(t, seq.Equal(again))
		})
	}
}

// TestParseSequence_Tokens checks names, suffixes and expansion.
func TestParseSequence_Tokens(t *testing.T) {
	seq, err := flex.ParseSequence("Sh'* (P>)2")
	require.NoError(t, err)
	require.Len(t, seq, 2)
	assert.Equal(t, "Sh'", seq[0].Name)
	assert.Equal(t, flex.GenApply, seq[0].Gen)
	assert.True(t, seq[1].IsGroup())
	assert.Equal(t, 2, seq[1].Repeat)
	assert.Equal(t, 5, seq.Len())

	var names []string
	for _, s := range seq.Expand() {
		names = append(names, s.String())
	}
	assert.Equal(t, []string{"Sh'*", "P", ">", "P", ">"}, names)
}

// TestParseSequence_Errors rejects malformed input.
func TestParseSequence_Errors(t *testing.T) {
	for _, s := range []string{"p", "P)", "(P", "(P)0", "P#", "'"} {
		_, err := flex.ParseSequence(s)
		assert.ErrorIs(t, err, flex.ErrBadSequence, s)
	}
	assert.Panics(t, func() { flex.MustParseSequence("(") })
}

// TestInvertSequence reverses, swaps shifts and toggles inverses.
func TestInvertSequence(t *testing.T) {
	cases := []struct{ in, want string }{
		{"P>", "<P'"},
		{"P* ^ Sh'+ <", ">Sh^P'"},
		{"(P>)3~", "~(<P')3"},
	}
	for _, tc := range cases {
		got, err := flex.InvertSequence(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
}

// TestApplySequence_Generation grows structure for + and *.
func TestApplySequence_Generation(t *testing.T) {
	cat := flex.Builtins(6)
	plain, _ := flexagon.Plain(6, nil)

	res, err := flex.ApplyString(plain, "P+", cat)
	require.NoError(t, err)
	assert.Equal(t, "[[1,-7],2,[3,-8],4,[5,-9],6]", res.Flexagon.PatsString())
	assert.Equal(t, []pat.Split{{ID: 1, Left: 1, Right: -7}, {ID: 3, Left: 3, Right: -8}, {ID: 5, Left: 5, Right: -9}}, res.Splits)

	res, err = flex.ApplyString(plain, "P*>", cat)
	require.NoError(t, err)
	assert.Len(t, res.States, 2)
	assert.Equal(t, 9, res.Flexagon.LeafCount())
	assert.Equal(t, "[1,2,3,4,5,6]", plain.PatsString())
}

// TestApplySequence_Failure names the failing step and leaves the input alone.
func TestApplySequence_Failure(t *testing.T) {
	cat := flex.Builtins(6)
	plain, _ := flexagon.Plain(6, nil)

	_, err := flex.ApplyString(plain, "P*P'P Q", cat)
	var se *flex.StepError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 3, se.Index)
	assert.Equal(t, "Q", se.Step)
	assert.ErrorIs(t, err, flex.ErrUnknownFlex)

	_, err = flex.ApplyString(plain, ">P", cat)
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 1, se.Index)
	assert.ErrorIs(t, err, flex.ErrCantApply)
	assert.ErrorIs(t, err, pat.ErrShapeMismatch)

	_, err = flex.ApplyString(plain, "P(", cat)
	assert.ErrorIs(t, err, flex.ErrBadSequence)
}

// TestCheckEqual covers exact, structure-first and unequal outcomes.
func TestCheckEqual(t *testing.T) {
	cat := flex.Builtins(6)
	plain, _ := flexagon.Plain(6, nil)
	cases := []struct {
		a, b string
		want flex.Equality
	}{
		{"P", "P", flex.Exact},
		{"P^^", "P", flex.Exact},
		{"P^P^", "^^", flex.AFirst},
		{"^^", "P^P^", flex.BFirst},
		{"(P>)3", "<<", flex.Unequal},
		{"P", ">", flex.Unequal},
	}
	for _, tc := range cases {
		t.Run(tc.a+" vs "+tc.b, func(t *testing.T) {
			got, err := flex.CheckEqual(plain, flex.MustParseSequence(tc.a), flex.MustParseSequence(tc.b), cat)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got, got.String())
		})
	}
	assert.Equal(t, "aFirst", flex.AFirst.String())
}

// TestCheckEqual_UserFlexes compares sequences that grow leaves in a different order.
func TestCheckEqual_UserFlexes(t *testing.T) {
	defs := `
flexes:
  - name: G
    input: [[1,2],3,4,5]
    output: [[1,2],3,4,5]
  - name: H
    input: [1,2,3,[4,5]]
    output: [1,2,3,[4,5]]
`
	cat, err := flex.LoadDefinitions(strings.NewReader(defs))
	require.NoError(t, err)
	cat.Merge(flex.Builtins(4))
	plain, _ := flexagon.Plain(4, nil)

	// G grows pat 0, which > then moves to the back: the same leaf H grows.
	got, err := flex.CheckEqual(plain, flex.MustParseSequence("<G>"), flex.MustParseSequence("H"), cat)
	require.NoError(t, err)
	assert.Equal(t, flex.Exact, got)

	// same structure, leaves numbered in a different order
	got, err = flex.CheckEqual(plain, flex.MustParseSequence("HG"), flex.MustParseSequence("GH"), cat)
	require.NoError(t, err)
	assert.Equal(t, flex.AFirst, got)
}
