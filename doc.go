// Package flexagonator is a symbolic engine for flexagons: folded paper
// strips modelled as rings of pats (binary leaf trees) joined by hinges.
//
// The engine applies named flexes to these rings, growing the folded
// structure a flex needs on demand, and searches the graph of reachable
// states. Everything is organised in subpackages:
//
//	pat/        leaf trees, pattern matching and pattern creation
//	flexagon/   a ring of pats with hinge directions and corner tracking
//	flex/       flex definitions, built-in catalogue, sequence grammar
//	tracker/    rotation and flip invariant state keys
//	search/     shortest sequences, exploration, cycles and subgraphs
//	group/      Cayley tables of groups generated by flex sequences
//	atomic/     flexes written around a single hinge, and their composition
//	session/    an undo/redo history of applied sequences
//
// The flexagonator command in cmd/flexagonator drives all of them.
//
// Example:
//
//	cat := flex.Builtins(6)
//	plain, _ := flexagon.Plain(6, nil)
//	res, _ := flex.ApplyString(plain, "P*>P*", cat)
//	fmt.Println(res.Flexagon)
package flexagonator
