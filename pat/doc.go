// Package pat provides the immutable binary trees ("pats") that describe how
// paper leaves are stacked at one position of a flexagon.
//
// What
//
//   - A Pat is either a leaf carrying a signed, non-zero id (the sign tells
//     whether the leaf is face up) or an ordered pair of sub-pats.
//   - Pats are never mutated. Flip, Build and CreatePattern return new trees
//     that share every untouched subtree with their input.
//   - Patterns are Pats whose leaf ids are placeholders. Match binds every
//     placeholder to the sub-pat found at the same position; a negative
//     placeholder binds the mirrored sub-pat, and placeholder 0 means
//     "anything, don't record it".
//
// Leaf trees
//
//	The plain, external form of a pat is a "leaf tree": an integer, or a
//	two-element array of leaf trees. ParseTreeString accepts the JSON/YAML
//	flow syntax, e.g. "[[1,-18],[[4,-5],[2,-3]]]".
//
// Structure growth
//
//	CreatePattern grows a pat until it has at least the shape of a pattern.
//	Every leaf that has to be split is recorded as a Split so observers can
//	react to new leaves (e.g. to label the new faces).
//
// Errors
//
//   - ErrNotAnInteger        a leaf is not an integer.
//   - ErrWrongArity          an array does not have exactly two items.
//   - ErrTooFewPats          a flexagon description has fewer than two pats.
//   - ErrShapeMismatch       a pattern needs a pair where the pat has a leaf.
//   - ErrMissingPlaceholder  Build references a placeholder that was not matched.
package pat
