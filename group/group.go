package group

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/loki3/loki3.github.io/flex"
	"github.com/loki3/loki3.github.io/flexagon"
	"github.com/loki3/loki3.github.io/pat"
)

// generator is one parsed generating sequence.
type generator struct {
	text  string
	seq   flex.Sequence
	order int
}

// power returns g repeated k times.
func (g generator) power(k int) flex.Sequence {
	return flex.Sequence{{Group: g.seq, Repeat: k}}
}

// Derive builds the Cayley table of the group generated by the given flex
// sequences on a patCount-pat flexagon with directions dirs (nil for all '/').
//
// Steps:
//  1. For each generator, grow structure with "*" until the leaf count stops
//     changing, then count applications until the same arrangement recurs.
//  2. Build the minimal flexagon every generator works on: repeatedly run
//     g*^order and its inverse from a plain flexagon until nothing grows.
//  3. Reject generators that change the structure of the minimal flexagon.
//  4. Elements are products g1^a1 g2^a2 … with ai < order(gi); two elements
//     reaching the same state are redundant. States are compared exactly, so
//     a product that only rotates the flexagon is not the identity.
//  5. Row i, column j holds the element reached by Elements[i] then Elements[j].
func Derive(generators []string, patCount int, dirs flexagon.Directions, cat flex.Catalog, opts ...Option) (*Table, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if len(generators) == 0 {
		return nil, fmt.Errorf("%w: no generators", ErrOptionViolation)
	}
	plain, err := flexagon.Plain(patCount, dirs)
	if err != nil {
		return nil, err
	}

	gens := make([]generator, len(generators))
	for i, text := range generators {
		seq, err := flex.ParseSequence(text)
		if err != nil {
			return nil, &Error{Kind: ErrUnsupportedFlex, Sequence: text, Err: err}
		}
		gens[i] = generator{text: text, seq: seq}
		if gens[i].order, err = grownOrder(plain, seq, cat, o.CycleCap); err != nil {
			return nil, &Error{Kind: kindOf(err), Sequence: text, Err: err}
		}
		o.Logger.Debug("generator order", zap.String("generator", text), zap.Int("order", gens[i].order))
	}

	minimal, err := buildMinimal(plain, gens, cat, o.CycleCap)
	if err != nil {
		return nil, err
	}
	o.Logger.Debug("minimal flexagon", zap.Stringer("flexagon", minimal), zap.Int("leaves", minimal.LeafCount()))

	for i := range gens {
		g := &gens[i]
		res, err := flex.ApplySequence(minimal, g.seq, cat)
		if err != nil {
			return nil, &Error{Kind: ErrUnsupportedFlex, Sequence: g.text, Err: err}
		}
		if !res.Flexagon.IsSameStructure(minimal) {
			return nil, &Error{Kind: ErrChangesStructure, Sequence: g.text}
		}
		// the minimal flexagon may carry structure the generator alone never grew
		if g.order, err = exactOrder(minimal, g.seq, cat, o.CycleCap); err != nil {
			return nil, &Error{Kind: kindOf(err), Sequence: g.text, Err: err}
		}
	}

	t := &Table{Flexagon: minimal.String()}
	for _, g := range gens {
		t.Generators = append(t.Generators, g.text)
		t.Orders = append(t.Orders, g.order)
	}

	index := make(map[string]int)
	for _, name := range elementNames(gens) {
		res, err := flex.ApplyString(minimal, name, cat)
		if err != nil {
			return nil, &Error{Kind: ErrUnsupportedFlex, Sequence: name, Err: err}
		}
		key := res.Flexagon.String()
		if prev, ok := index[key]; ok {
			return nil, &Error{Kind: ErrRedundant, Sequence: name, Err: fmt.Errorf("same state as %q", t.Elements[prev])}
		}
		index[key] = len(t.Elements)
		t.Elements = append(t.Elements, name)
	}

	t.Rows = make([][]int, len(t.Elements))
	for i, a := range t.Elements {
		row := make([]int, len(t.Elements))
		seen := make(map[int]bool, len(row))
		for j, b := range t.Elements {
			res, err := flex.ApplyString(minimal, a+b, cat)
			if err != nil {
				return nil, &Error{Kind: ErrIncomplete, Sequence: a + b, Err: err}
			}
			k, ok := index[res.Flexagon.String()]
			if !ok {
				return nil, &Error{Kind: ErrIncomplete, Sequence: a + b}
			}
			if seen[k] {
				return nil, &Error{Kind: ErrRedundant, Sequence: a + b, Err: fmt.Errorf("element %q repeats in row %d", t.Elements[k], i)}
			}
			seen[k] = true
			row[j] = k
		}
		t.Rows[i] = row
	}
	t.Commutative = isSymmetric(t.Rows)

	o.Logger.Info("group derived",
		zap.Strings("generators", t.Generators), zap.Int("order", t.Order()), zap.Bool("commutative", t.Commutative))
	return t, nil
}

// kindOf maps a cycle measurement error onto a package sentinel.
func kindOf(err error) error {
	if errors.Is(err, ErrNotCyclic) {
		return ErrNotCyclic
	}
	return ErrUnsupportedFlex
}

// grownOrder applies seq with generation until an application adds no leaves,
// then counts applications until that state recurs exactly. Growth during the
// count restarts it from the grown state.
func grownOrder(fx *flexagon.Flexagon, seq flex.Sequence, cat flex.Catalog, limit int) (int, error) {
	grow := seq.WithGeneration(flex.GenApply)
	ids := pat.NewCounter(fx.MaxID() + 1)
	cur := fx
	ref, leaves, k := cur, cur.LeafCount(), 0
	for tries := 0; tries < limit; tries++ {
		res, err := flex.ApplySequenceWith(cur, grow, cat, ids)
		if err != nil {
			return 0, err
		}
		cur = res.Flexagon
		if cur.LeafCount() != leaves {
			ref, leaves, k = cur, cur.LeafCount(), 0
			continue
		}
		k++
		if cur.IsSameState(ref) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w within %d applications", ErrNotCyclic, limit)
}

// exactOrder counts applications of seq on fx, without generation, until
// fx recurs.
func exactOrder(fx *flexagon.Flexagon, seq flex.Sequence, cat flex.Catalog, limit int) (int, error) {
	cur := fx
	for k := 1; k <= limit; k++ {
		res, err := flex.ApplySequence(cur, seq, cat)
		if err != nil {
			return 0, err
		}
		cur = res.Flexagon
		if cur.IsSameState(fx) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w within %d applications", ErrNotCyclic, limit)
}

// buildMinimal grows plain until every generator power can run on it.
func buildMinimal(plain *flexagon.Flexagon, gens []generator, cat flex.Catalog, limit int) (*flexagon.Flexagon, error) {
	ids := pat.NewCounter(plain.MaxID() + 1)
	fx := plain
	for pass := 0; pass < limit; pass++ {
		before := fx.LeafCount()
		for _, g := range gens {
			full := g.power(g.order)
			res, err := flex.ApplySequenceWith(fx, full.WithGeneration(flex.GenApply), cat, ids)
			if err != nil {
				return nil, &Error{Kind: ErrUnsupportedFlex, Sequence: g.text, Err: err}
			}
			back, err := flex.ApplySequence(res.Flexagon, full.Invert(), cat)
			if err != nil {
				return nil, &Error{Kind: ErrUnsupportedFlex, Sequence: g.text, Err: err}
			}
			fx = back.Flexagon
		}
		if fx.LeafCount() == before {
			return fx, nil
		}
	}
	return nil, &Error{Kind: ErrNotCyclic, Sequence: gens[0].text, Err: fmt.Errorf("structure still growing after %d passes", limit)}
}

// elementNames lists g1^a1 g2^a2 … for every ai < order(gi), the first
// generator's power varying fastest.
func elementNames(gens []generator) []string {
	total := 1
	for _, g := range gens {
		total *= g.order
	}
	names := make([]string, 0, total)
	powers := make([]int, len(gens))
	for n := 0; n < total; n++ {
		var sb strings.Builder
		for i, g := range gens {
			sb.WriteString(strings.Repeat(g.text, powers[i]))
		}
		names = append(names, sb.String())
		for i := range powers {
			powers[i]++
			if powers[i] < gens[i].order {
				break
			}
			powers[i] = 0
		}
	}
	return names
}

func isSymmetric(rows [][]int) bool {
	for i := range rows {
		for j := i + 1; j < len(rows); j++ {
			if rows[i][j] != rows[j][i] {
				return false
			}
		}
	}
	return true
}
