// Package group derives the Cayley table of the group generated by a few flex
// sequences acting on a flexagon.
//
// Derive measures the order of each generator, grows the smallest flexagon on
// which all of them can run, and then lists every product of generator powers
// as an element. Row i, column j of the table is the element reached by
// applying Elements[i] and then Elements[j]. States are compared leaf for
// leaf, so a product that only rotates or turns over the flexagon is a
// separate element.
//
//	t, err := group.Derive([]string{"P^"}, 6, nil, flex.Builtins(6))
//	// t.Orders == [2], t.Elements == ["", "P^"]
//
// Failures are reported as *Error, which wraps one of ErrUnsupportedFlex,
// ErrNotCyclic, ErrChangesStructure, ErrIncomplete or ErrRedundant.
package group
