// Package tracker canonicalises flexagon states so that searches recognise a
// state they have already seen, whichever pat happens to be first and
// whichever side is up.
//
// Key follows one reference leaf: the ring is read starting at the pat that
// holds it, forward when the leaf is face up and turned over when it is face
// down. StructureKey drops leaf ids and instead takes the minimal rotation of
// the pat shapes (Booth's algorithm), over both sides.
//
// Tracker is the memo table used by package search: FindMaybeAdd hands out
// dense indexes into the caller's state arena.
package tracker
