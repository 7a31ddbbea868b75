package tracker_test

import (
	"strings"
	"testing"

	"github.com/loki3/loki3.github.io/flex"
	"github.com/loki3/loki3.github.io/flexagon"
	"github.com/loki3/loki3.github.io/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hexahexa = "[[1,-18],[[4,-5],[2,-3]],[7,-6],[[10,-11],[8,-9]],[13,-12],[[16,-17],[14,-15]]]"

func apply(t *testing.T, fx *flexagon.Flexagon, seq string) *flexagon.Flexagon {
	t.Helper()
	res, err := flex.ApplyString(fx, seq, flex.Builtins(fx.PatCount()))
	require.NoError(t, err, seq)
	return res.Flexagon
}

// TestKey_Invariance checks every rotation and both sides give one key.
func TestKey_Invariance(t *testing.T) {
	fx, err := flexagon.FromString("[[1,-2],3,[[4,5],-6],7,[8,-9]]", "//\\/\\")
	require.NoError(t, err)
	want := tracker.Key(fx, 1)

	for r := 0; r < fx.PatCount(); r++ {
		rotated := apply(t, fx, strings.Repeat(">", r))
		assert.Equal(t, want, tracker.Key(rotated, 1), "rotate %d", r)
		assert.Equal(t, want, tracker.Key(apply(t, rotated, "^"), 1), "rotate %d, flip", r)
		assert.Equal(t, tracker.StructureKey(fx), tracker.StructureKey(apply(t, rotated, "^")))
	}

	other, err := flexagon.FromString("[[1,-2],3,[[4,5],-6],7,[-9,8]]", "//\\/\\")
	require.NoError(t, err)
	assert.NotEqual(t, want, tracker.Key(other, 1))
	// different directions, different key
	swapped, err := flexagon.FromString("[[1,-2],3,[[4,5],-6],7,[8,-9]]", "/////")
	require.NoError(t, err)
	assert.NotEqual(t, want, tracker.Key(swapped, 1))
	assert.NotEqual(t, tracker.StructureKey(fx), tracker.StructureKey(swapped))
}

// TestKey_Fallback uses the smallest id when the reference is missing.
func TestKey_Fallback(t *testing.T) {
	fx, err := flexagon.FromString("[[3,-4],5,6]", "")
	require.NoError(t, err)
	assert.Equal(t, tracker.Key(fx, 3), tracker.Key(fx, 1))
	assert.Equal(t, "[3,-4]/5/6/", tracker.Key(fx, 1))
	assert.Equal(t, "[3,-4]/5/6/", tracker.Key(apply(t, fx, "^>"), 1))
}

// TestTracker_FindMaybeAdd hands out dense indexes.
func TestTracker_FindMaybeAdd(t *testing.T) {
	h, err := flexagon.FromString(hexahexa, "")
	require.NoError(t, err)
	tr := tracker.New(h)
	assert.Equal(t, 1, tr.RefID())

	i, found := tr.FindMaybeAdd(h)
	assert.Equal(t, 0, i)
	assert.False(t, found)

	p := apply(t, h, "P")
	i, found = tr.FindMaybeAdd(p)
	assert.Equal(t, 1, i)
	assert.False(t, found)

	// three rounds of pinch and shift bring back the start from another hinge
	i, found = tr.FindMaybeAdd(apply(t, h, "(P>)3"))
	assert.Equal(t, 0, i)
	assert.True(t, found)

	i, found = tr.Find(apply(t, h, "P>"))
	assert.True(t, found)
	assert.Equal(t, 1, i)

	_, found = tr.Find(apply(t, h, "P>P"))
	assert.False(t, found)
	assert.Equal(t, 2, tr.Count())
	assert.Equal(t, tracker.Key(h, 1), tr.KeyAt(0))
}

// TestMinimalRotation compares against every rotation.
func TestMinimalRotation(t *testing.T) {
	cases := [][]string{
		{"b", "a", "c", "a"},
		{"c", "b", "a"},
		{"a", "a", "a"},
		{"x"},
		{"b", "a", "b", "a", "a"},
		{"b", "a", "b", "a"},
		{"c", "a", "b", "a", "b", "a", "a", "c", "a"},
		{"d", "c", "b", "a", "a", "b", "c", "d"},
	}
	for _, s := range cases {
		orig := append([]string(nil), s...)
		got := tracker.MinimalRotation(s)
		best := strings.Join(s, ",")
		for r := 1; r < len(s); r++ {
			rot := append(append([]string(nil), s[r:]...), s[:r]...)
			if j := strings.Join(rot, ","); j < best {
				best = j
			}
		}
		assert.Equal(t, best, strings.Join(got, ","))
		assert.Equal(t, orig, s)
	}
	assert.Nil(t, tracker.MinimalRotation(nil))
}
