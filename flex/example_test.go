package flex_test

import (
	"fmt"

	"github.com/loki3/loki3.github.io/flex"
	"github.com/loki3/loki3.github.io/flexagon"
)

// ExampleApplyString shifts the current hinge two pats to the right.
func ExampleApplyString() {
	fx, _ := flexagon.FromString("[[1,-5],2,[3,-6],4]", "")
	res, err := flex.ApplyString(fx, ">>", flex.Builtins(4))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(res.Flexagon.PatsString())
	// Output: [[3,-6],4,[1,-5],2]
}

// ExampleApplyString_pinch grows the structure the pinch flex needs, then applies it.
func ExampleApplyString_pinch() {
	fx, _ := flexagon.Plain(4, nil)
	res, err := flex.ApplyString(fx, "P*", flex.Builtins(4))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(res.Flexagon.PatsString())
	fmt.Println(len(res.Splits), "splits")
	// Output:
	// [1,[-5,2],3,[-6,4]]
	// 2 splits
}

// ExampleCheckEqual shows that nine rounds of pinch and shift leave the
// flexagon as it was once the pinch structure exists.
func ExampleCheckEqual() {
	fx, _ := flexagon.Plain(6, nil)
	eq, err := flex.CheckEqual(fx, flex.MustParseSequence("(P>)9"), flex.MustParseSequence("^^"), flex.Builtins(6))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(eq)
	// Output: aFirst
}
