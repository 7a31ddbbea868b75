// Package flex defines flexes, the rewrite rules that take a flexagon from one
// state to the next, and the sequence language used to chain them.
//
// A Flex has one input and one output pattern per pat. Applying it is a pure,
// four step transform:
//
//  1. match the input patterns (and direction precondition) against the pats
//  2. rebuild every pat from the output pattern and the matches
//  3. compute the new directions: explicit outputs win, then OrderOfDirs,
//     otherwise each slot keeps its old value
//  4. permute the corner bookkeeping by the flex's Rotation
//
// CreateInverse swaps input and output and inverts the direction order and
// rotation; inverting twice gives back the same flex.
//
// Sequences
//
//	"P* >> (P^)3 Sh'" : flexes are an upper-case letter followed by lower-case
//	letters or digits, optionally "'" (inverse), then "+" (grow the needed
//	structure only) or "*" (grow, then apply). > < ^ ~ shift right, shift
//	left, turn over and change vertex. "(...)N" repeats a group N times.
//
// Catalogs
//
//	A Catalog maps names to flexes. Builtins(n) provides the flexes every
//	n-pat flexagon supports; LoadDefinitions adds user flexes from YAML.
//	Catalogs are plain values handed to every operation that needs them.
//
// Errors
//
//	Application failures wrap ErrCantApply together with the underlying
//	pat.ErrShapeMismatch or flexagon.ErrDirectionMismatch, so callers can tell
//	a wrong shape from a wrong direction with errors.Is. Sequence failures are
//	*StepError values carrying the index of the failing step.
package flex
