package search_test

import (
	"context"
	"fmt"

	"github.com/loki3/loki3.github.io/flex"
	"github.com/loki3/loki3.github.io/flexagon"
	"github.com/loki3/loki3.github.io/search"
)

// ExampleShortest finds the single pinch separating two states.
func ExampleShortest() {
	cat := flex.Builtins(4)
	start, _ := flexagon.FromString("[[1,-5],2,[3,-6],4]", "")
	target, _ := flexagon.FromString("[1,[-5,2],3,[-6,4]]", "")

	seq, err := search.Shortest(context.Background(), start, target, cat, search.WithFlexes("P"))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(seq)
	// Output: P
}

// ExampleCycleLength shows that pinching at every other hinge takes nine
// rounds to put every leaf back.
func ExampleCycleLength() {
	cat := flex.Builtins(6)
	start, _ := flexagon.FromString("[[1,-18],[[4,-5],[2,-3]],[7,-6],[[10,-11],[8,-9]],[13,-12],[[16,-17],[14,-15]]]", "")
	n, err := search.CycleLength(start, flex.MustParseSequence("P>"), cat, 100)
	fmt.Println(n, err)
	// Output: 9 <nil>
}
