// Package search explores the graph whose nodes are flexagon states and whose
// edges are flexes.
//
// An edge out of a state is a Move: optionally turn the flexagon over, shift
// the current hinge by some number of pats, then apply one flex. States are
// compared with tracker keys, so rotated or turned-over copies of a state are
// one node.
//
// Engines
//
//   - FindShortest: breadth-first search for a shortest flex sequence from
//     one state to another. CheckLevel expands one level per call.
//   - Explore: breadth-first enumeration of every reachable state, recording
//     the moves out of each. CheckNext expands one state per call.
//   - FindGroupCycles: for every explored state with the start's structure,
//     a connecting sequence and its cycle length. CheckNext does one search
//     level or one cycle measurement per call.
//
// Every engine owns its state arena and its tracker. Nothing runs in the
// background: a caller that stops calling the step method has cancelled the
// search. Run drives a step method to completion and honours a context.
//
// Analysis helpers
//
//   - GroupByStructure: partition states by structure, ignoring leaf ids.
//   - FindSubgraphs:    components connected by one flex.
//   - CycleLength:      repetitions of a sequence until the start recurs exactly.
//
// Options
//
//	WithFlip(bool)      also try moves with the flexagon turned over (default on)
//	WithMaxStates(n)    hold at most n states, start included (0 = no limit)
//	WithCycleCap(n)     repetitions tried before ErrNotCyclic (default 1000)
//	WithFlexes(names…)  restrict the flexes tried
//	WithLogger(l)       progress logging through zap
//
// Errors
//
//   - ErrUnreachable      a level found nothing new before the target.
//   - ErrStateLimit       more states than WithMaxStates allows.
//   - ErrNotCyclic        no cycle within the cap; reported per result.
//   - ErrOptionViolation  a bad option value.
//   - ErrPatCount         flexagons or flexes of different sizes.
package search
