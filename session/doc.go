// Package session keeps a flexagon together with an undoable history of the
// flex sequences applied to it.
//
// A sequence is applied either as one history entry or, when asked for,
// as one entry per step, so that each step can be undone on its own. A
// sequence that fails part way through leaves the session as it was.
package session
