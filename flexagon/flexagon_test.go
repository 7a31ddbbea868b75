package flexagon_test

import (
	"errors"
	"testing"

	"github.com/loki3/loki3.github.io/flexagon"
	"github.com/loki3/loki3.github.io/pat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hexahexa = "[[1,-18],[[4,-5],[2,-3]],[7,-6],[[10,-11],[8,-9]],[13,-12],[[16,-17],[14,-15]]]"

func mustPats(t *testing.T, s string) []*pat.Pat {
	t.Helper()
	pats, err := pat.ParseTreesString(s)
	require.NoError(t, err)
	return pats
}

// TestNew_Errors covers construction failures.
func TestNew_Errors(t *testing.T) {
	_, err := flexagon.FromString("[1]", "")
	assert.ErrorIs(t, err, pat.ErrTooFewPats)

	_, err = flexagon.FromString("[1,2,3]", "//")
	assert.ErrorIs(t, err, flexagon.ErrSizeMismatch)

	_, err = flexagon.FromString("[1,2,3]", "//x")
	assert.ErrorIs(t, err, flexagon.ErrBadDirections)

	_, err = flexagon.FromLeafTrees([]pat.LeafTree{1, []any{2}}, "")
	assert.ErrorIs(t, err, pat.ErrWrongArity)
}

// TestNew_LeafIDs rejects leaf id 0 and ids used twice.
func TestNew_LeafIDs(t *testing.T) {
	cases := []struct {
		name  string
		trees string
		id    int
		pat   int
	}{
		{"zero", "[1,[2,0],3]", 0, 1},
		{"repeated", "[1,2,[3,2]]", 2, 2},
		{"repeated other side", "[[1,-4],2,3,4]", 4, 3},
		{"same pat", "[[5,-5],1]", -5, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := flexagon.FromString(tc.trees, "")
			assert.ErrorIs(t, err, flexagon.ErrBadLeafID)
			var le *flexagon.LeafIDError
			require.True(t, errors.As(err, &le))
			assert.Equal(t, tc.id, le.ID)
			assert.Equal(t, tc.pat, le.Pat)
		})
	}

	_, err := flexagon.New([]*pat.Pat{pat.Leaf(1), pat.Leaf(-1)}, nil)
	assert.ErrorIs(t, err, flexagon.ErrBadLeafID)

	fx, err := flexagon.FromString(hexahexa, "")
	require.NoError(t, err)
	assert.Equal(t, 18, fx.LeafCount())
}

// TestFlexagon_Accessors checks the read-only snapshots handed to renderers.
func TestFlexagon_Accessors(t *testing.T) {
	fx, err := flexagon.FromString(hexahexa, "")
	require.NoError(t, err)

	assert.Equal(t, 6, fx.PatCount())
	assert.Equal(t, 18, fx.LeafCount())
	assert.Equal(t, []int{1, 4, 7, 10, 13, 16}, fx.TopIDs())
	assert.Equal(t, []int{18, 3, 6, 9, 12, 15}, fx.BottomIDs())
	assert.Equal(t, "//////", fx.Directions().String())
	assert.Equal(t, 18, fx.MaxID())
	assert.Equal(t, 1, fx.MinID())
	assert.Equal(t, hexahexa+" //////", fx.String())

	i, up, ok := fx.FindID(11)
	assert.True(t, ok)
	assert.False(t, up)
	assert.Equal(t, 3, i)

	// snapshots don't alias internal state
	d := fx.Directions()
	d[0] = false
	assert.Equal(t, "//////", fx.Directions().String())

	trees := fx.LeafTrees()
	again, err := flexagon.FromLeafTrees(trees, "")
	require.NoError(t, err)
	assert.True(t, again.IsSameState(fx))
}

// TestFlexagon_SameStateAndStructure compares leaf identity and shape.
func TestFlexagon_SameStateAndStructure(t *testing.T) {
	a, _ := flexagon.FromString("[[1,2],3,4]", "//\\")
	b, _ := flexagon.FromString("[[5,6],7,8]", "//\\")
	c, _ := flexagon.FromString("[[1,2],3,4]", "///")

	assert.True(t, a.IsSameState(a))
	assert.False(t, a.IsSameState(b))
	assert.True(t, a.IsSameStructure(b))
	assert.False(t, a.IsSameStructure(c))
}

// TestMatchPattern reports direction and shape failures separately.
func TestMatchPattern(t *testing.T) {
	fx, err := flexagon.FromString("[[1,-2],3,[4,5]]", "/\\/")
	require.NoError(t, err)

	m, err := fx.MatchPattern(mustPats(t, "[[1,2],3,-4]"), nil)
	require.NoError(t, err)
	assert.Equal(t, "[-5,-4]", m[4].String())

	want, _ := flexagon.ParseDirectionsOpt("//?")
	_, err = fx.MatchPattern(mustPats(t, "[1,2,3]"), want)
	var de *flexagon.DirectionError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "//?", de.Expected.String())
	assert.Equal(t, "/\\/", de.Actual.String())

	_, err = fx.MatchPattern(mustPats(t, "[1,[2,3],4]"), nil)
	assert.ErrorIs(t, err, pat.ErrShapeMismatch)
	assert.NotErrorIs(t, err, flexagon.ErrDirectionMismatch)

	_, err = fx.MatchPattern(mustPats(t, "[1,2]"), nil)
	assert.ErrorIs(t, err, flexagon.ErrSizeMismatch)

	assert.True(t, fx.HasPattern(mustPats(t, "[[1,2],3,4]")))
	assert.False(t, fx.HasPattern(mustPats(t, "[[1,2],[3,5],4]")))
}

// TestCreatePattern grows the pats that need more structure.
func TestCreatePattern(t *testing.T) {
	fx, err := flexagon.Plain(4, nil)
	require.NoError(t, err)
	ids := pat.NewCounter(fx.MaxID() + 1)
	grown, splits, err := fx.CreatePattern(mustPats(t, "[[1,2],3,4,[5,6]]"), ids)
	require.NoError(t, err)
	assert.Equal(t, "[[1,-5],2,3,[4,-6]]", grown.PatsString())
	assert.Len(t, splits, 2)
	assert.Equal(t, "[1,2,3,4]", fx.PatsString())
}

// TestNormalizeIDs relabels in reading order and is idempotent.
func TestNormalizeIDs(t *testing.T) {
	fx, err := flexagon.FromString("[[9,-7],-22,[3,[4,-11]]]", "")
	require.NoError(t, err)
	once := fx.NormalizeIDs()
	assert.Equal(t, "[[1,-2],-3,[4,[5,-6]]]", once.PatsString())
	twice := once.NormalizeIDs()
	assert.True(t, once.IsSameState(twice))
}

// TestDirections parses and matches the optional form.
func TestDirections(t *testing.T) {
	d, err := flexagon.ParseDirections("/\\//")
	require.NoError(t, err)
	assert.Equal(t, flexagon.Directions{true, false, true, true}, d)
	assert.Equal(t, "/\\//", d.String())

	opt, err := flexagon.ParseDirectionsOpt("?\\??")
	require.NoError(t, err)
	assert.True(t, opt.Matches(d))
	slash, ok := opt.At(1)
	assert.True(t, ok)
	assert.False(t, slash)
	_, ok = opt.At(0)
	assert.False(t, ok)

	assert.True(t, flexagon.DirectionsOpt(nil).Matches(d))
	bad, _ := flexagon.ParseDirectionsOpt("//")
	assert.False(t, bad.Matches(d))

	_, err = flexagon.ParseDirectionsOpt("/x")
	assert.ErrorIs(t, err, flexagon.ErrBadDirections)
}

// TestCorners checks every permutation and the Left/Right resolution.
func TestCorners(t *testing.T) {
	c := flexagon.NewCorners()
	cases := []struct {
		r     flexagon.Rotation
		slash bool
		want  string
	}{
		{flexagon.ABC, true, "ABC"},
		{flexagon.ACB, true, "ACB"},
		{flexagon.BAC, true, "BAC"},
		{flexagon.CBA, true, "CBA"},
		{flexagon.BCA, true, "BCA"},
		{flexagon.CAB, true, "CAB"},
		{flexagon.Left, true, "BCA"},
		{flexagon.Left, false, "CAB"},
		{flexagon.Right, true, "CAB"},
		{flexagon.Right, false, "BCA"},
	}
	for _, tc := range cases {
		t.Run(tc.r.String(), func(t *testing.T) {
			got := c.Apply(tc.r, tc.slash)
			assert.Equal(t, tc.want, got.String())
			back := got.Apply(tc.r.Inverse(), tc.slash)
			assert.Equal(t, "ABC", back.String())
		})
	}

	assert.False(t, c.Mirrored())
	assert.True(t, c.Apply(flexagon.ACB, true).Mirrored())
	assert.Equal(t, byte('B'), c.Apply(flexagon.BCA, true).Current())

	var zero flexagon.Corners
	assert.Equal(t, "ABC", zero.String())

	r, err := flexagon.ParseRotation("Right")
	require.NoError(t, err)
	assert.Equal(t, flexagon.Right, r)
	_, err = flexagon.ParseRotation("XYZ")
	assert.ErrorIs(t, err, flexagon.ErrBadRotation)
}
