package flex

import (
	"github.com/loki3/loki3.github.io/flexagon"
	"github.com/loki3/loki3.github.io/pat"
)

// Result is the outcome of applying a sequence.
type Result struct {
	Flexagon *flexagon.Flexagon
	// Splits lists every leaf grown by "+" or "*" steps, in order.
	Splits []pat.Split
	// States holds the flexagon after each expanded step.
	States []*flexagon.Flexagon
}

// ApplySequence runs seq against fx using flexes from cat.
// Leaves grown by generation steps are numbered from fx.MaxID()+1.
// On failure nothing is returned but a *StepError naming the step; fx
// itself is immutable and so still describes the state before the call.
func ApplySequence(fx *flexagon.Flexagon, seq Sequence, cat Catalog) (*Result, error) {
	return ApplySequenceWith(fx, seq, cat, pat.NewCounter(fx.MaxID()+1))
}

// ApplySequenceWith is ApplySequence drawing new leaf ids from ids, so
// several calls can share one numbering.
func ApplySequenceWith(fx *flexagon.Flexagon, seq Sequence, cat Catalog, ids *pat.Counter) (*Result, error) {
	res := &Result{Flexagon: fx}
	for i, step := range seq.Expand() {
		next, splits, err := ApplyStep(res.Flexagon, step, cat, ids)
		if err != nil {
			return nil, &StepError{Index: i, Step: step.String(), Err: err}
		}
		res.Flexagon = next
		res.Splits = append(res.Splits, splits...)
		res.States = append(res.States, next)
	}
	return res, nil
}

// ApplyString parses s and applies it.
func ApplyString(fx *flexagon.Flexagon, s string, cat Catalog) (*Result, error) {
	seq, err := ParseSequence(s)
	if err != nil {
		return nil, err
	}
	return ApplySequence(fx, seq, cat)
}

// ApplyStep applies one named step, growing structure first when asked to.
func ApplyStep(fx *flexagon.Flexagon, step Step, cat Catalog, ids *pat.Counter) (*flexagon.Flexagon, []pat.Split, error) {
	f, err := cat.Get(step.Name)
	if err != nil {
		return nil, nil, err
	}
	var splits []pat.Split
	if step.Gen != GenNone {
		if fx, splits, err = f.Generate(fx, ids); err != nil {
			return nil, nil, err
		}
		if step.Gen == GenOnly {
			return fx, splits, nil
		}
	}
	out, err := f.Apply(fx)
	if err != nil {
		return nil, nil, err
	}
	return out, splits, nil
}

// CheckEqual compares the effect of sequences a and b on fx.
// Both run with every named flex generating the structure it needs.
//
//	Exact   both end in the same state
//	AFirst  after a's structure is built, a and b agree
//	BFirst  after b's structure is built, a and b agree
//	Approx  the end states agree after NormalizeIDs
//	Unequal otherwise
func CheckEqual(fx *flexagon.Flexagon, a, b Sequence, cat Catalog) (Equality, error) {
	ga, gb := a.WithGeneration(GenApply), b.WithGeneration(GenApply)
	ra, err := ApplySequence(fx, ga, cat)
	if err != nil {
		return Unequal, err
	}
	rb, err := ApplySequence(fx, gb, cat)
	if err != nil {
		return Unequal, err
	}
	if ra.Flexagon.IsSameState(rb.Flexagon) {
		return Exact, nil
	}
	if agree(ra.Flexagon, a, ga, gb, cat) {
		return AFirst, nil
	}
	if agree(rb.Flexagon, b, gb, ga, cat) {
		return BFirst, nil
	}
	if ra.Flexagon.NormalizeIDs().IsSameState(rb.Flexagon.NormalizeIDs()) {
		return Approx, nil
	}
	return Unequal, nil
}

// agree undoes first on end, then checks that first and second produce the
// same state from there.
func agree(end *flexagon.Flexagon, first, genFirst, genSecond Sequence, cat Catalog) bool {
	back, err := ApplySequence(end, first.Invert(), cat)
	if err != nil {
		return false
	}
	x, err := ApplySequence(back.Flexagon, genFirst, cat)
	if err != nil {
		return false
	}
	y, err := ApplySequence(back.Flexagon, genSecond, cat)
	if err != nil {
		return false
	}
	return x.Flexagon.IsSameState(y.Flexagon)
}
