// Package flexagon holds the aggregate state of a flexagon: a fixed ring of
// pats, the direction of each hinge, and the corner bookkeeping of pat 0.
//
// A Flexagon is immutable. Flexes (package flex) read it through
// MatchPattern and produce a successor through Replace.
//
// Directions
//
//	'/' (true) and '\' (false) say which way the strip turns after each pat.
//	DirectionsOpt adds '?' for slots a flex doesn't care about.
//	Omitted directions default to all '/'.
//
// Corners
//
//	Each flex carries a Rotation describing how the three corners of the
//	current pat get permuted. Left and Right depend on pat 0's direction.
//
// Equality
//
//	IsSameState    every leaf and direction equal, in order.
//	IsSameStructure the same, ignoring leaf ids.
//
// Rotation- and mirror-invariant comparisons live in package tracker.
package flexagon
