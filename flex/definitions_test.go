package flex_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/loki3/loki3.github.io/flex"
	"github.com/loki3/loki3.github.io/flexagon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadDefinitions reads flexes with every optional field.
func TestLoadDefinitions(t *testing.T) {
	defs := `
flexes:
  - name: Sw
    input: [[1,2],3,4]
    output: [1,[2,3],4]
    rotation: BCA
    inputDirs: "/?/"
    outputDirs: "?\\?"
    orderOfDirs: [1, -2, 3]
`
	cat, err := flex.LoadDefinitions(strings.NewReader(defs))
	require.NoError(t, err)
	assert.Equal(t, []string{"Sw", "Sw'"}, cat.Names())

	sw, _ := cat.Get("Sw")
	assert.Equal(t, flexagon.BCA, sw.Rotation)
	assert.Equal(t, "/?/", sw.InputDirs.String())
	assert.Equal(t, "?\\?", sw.OutputDirs.String())
	assert.Equal(t, []int{1, -2, 3}, sw.OrderOfDirs)

	inv, _ := cat.Get("Sw'")
	assert.Equal(t, flexagon.CAB, inv.Rotation)
	assert.Equal(t, "?\\?", inv.InputDirs.String())

	fx, _ := flexagon.FromString("[[5,6],7,8]", "///")
	out, err := sw.Apply(fx)
	require.NoError(t, err)
	assert.Equal(t, "[5,[6,7],8] /\\/", out.String())
	back, err := inv.Apply(out)
	require.NoError(t, err)
	assert.True(t, back.IsSameState(fx))

	var buf bytes.Buffer
	require.NoError(t, cat.MarshalDefinitions(&buf, "Sw"))
	again, err := flex.LoadDefinitions(&buf)
	require.NoError(t, err)
	sw2, _ := again.Get("Sw")
	assert.True(t, sw2.Equal(sw))
}

// TestLoadDefinitions_Errors surfaces the underlying sentinel.
func TestLoadDefinitions_Errors(t *testing.T) {
	cases := []struct {
		name, defs string
		want       error
	}{
		{"bad leaf", "flexes:\n  - name: A\n    input: [x, 1]\n    output: [1, 2]\n", flex.ErrBadFlexInput},
		{"bad output", "flexes:\n  - name: A\n    input: [1, 2]\n    output: [1, 3]\n", flex.ErrBadFlexOutput},
		{"bad dirs", "flexes:\n  - name: A\n    input: [1, 2]\n    output: [2, 1]\n    inputDirs: ab\n", flex.ErrBadDirections},
		{"bad rotation", "flexes:\n  - name: A\n    input: [1, 2]\n    output: [2, 1]\n    rotation: XYZ\n", flexagon.ErrBadRotation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := flex.LoadDefinitions(strings.NewReader(tc.defs))
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := flex.LoadDefinitions(strings.NewReader("flexes: {"))
	assert.Error(t, err)

	cat, err := flex.LoadDefinitions(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, cat)

	var buf bytes.Buffer
	assert.ErrorIs(t, flex.Builtins(4).MarshalDefinitions(&buf, "Nope"), flex.ErrUnknownFlex)
}
