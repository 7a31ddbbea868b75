// Package atomic works with flexes written relative to the current hinge
// instead of over a whole flexagon.
//
// A Pattern lists a few pats on either side of the hinge, each with the
// direction of its next hinge, and names the rest of the flexagon with
// remainders:
//
//	a 1/ [2,-3]\ # 4/ b
//
// A Flex rewrites one Pattern into another. Because the remainders stand for
// any number of pats, an atomic flex works on flexagons of every size, and a
// sequence of them can be folded into a single derived flex with Combine.
// Generate grows pats out of remainders and splits leaves, so derivations
// can start from the bare pattern "a # b".
package atomic
