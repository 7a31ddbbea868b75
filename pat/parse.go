package pat

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// Parse converts a leaf tree into a Pat.
// Integers become leaves; two-element arrays become pairs.
func Parse(tree LeafTree) (*Pat, error) {
	switch v := tree.(type) {
	case []any:
		if len(v) != 2 {
			return nil, &ParseError{Kind: ErrWrongArity, Tree: tree}
		}
		left, err := Parse(v[0])
		if err != nil {
			return nil, err
		}
		right, err := Parse(v[1])
		if err != nil {
			return nil, err
		}
		return Pair(left, right), nil
	case []int:
		if len(v) != 2 {
			return nil, &ParseError{Kind: ErrWrongArity, Tree: tree}
		}
		return Pair(Leaf(v[0]), Leaf(v[1])), nil
	case *Pat:
		if v == nil {
			return nil, &ParseError{Kind: ErrNotAnInteger, Tree: tree}
		}
		return v, nil
	}
	id, ok := toInt(tree)
	if !ok {
		return nil, &ParseError{Kind: ErrNotAnInteger, Tree: tree}
	}
	return Leaf(id), nil
}

// ParseTrees converts one leaf tree per pat. A flexagon needs at least two.
func ParseTrees(trees []LeafTree) ([]*Pat, error) {
	if len(trees) < 2 {
		return nil, &ParseError{Kind: ErrTooFewPats, Tree: trees}
	}
	pats := make([]*Pat, len(trees))
	for i, t := range trees {
		p, err := Parse(t)
		if err != nil {
			return nil, fmt.Errorf("pat %d: %w", i, err)
		}
		pats[i] = p
	}
	return pats, nil
}

// ParseTreeString parses a single leaf tree written in flow syntax, e.g. "[1,[-2,3]]".
func ParseTreeString(s string) (*Pat, error) {
	var tree any
	if err := yaml.Unmarshal([]byte(s), &tree); err != nil {
		return nil, &ParseError{Kind: ErrNotAnInteger, Tree: s}
	}
	return Parse(tree)
}

// ParseTreesString parses a list of leaf trees, e.g. "[[1,2],3,[4,5]]".
func ParseTreesString(s string) ([]*Pat, error) {
	var trees []any
	if err := yaml.Unmarshal([]byte(s), &trees); err != nil {
		return nil, &ParseError{Kind: ErrWrongArity, Tree: s}
	}
	return ParseTrees(trees)
}

// toInt accepts every integer type a decoder may hand back, plus integral floats.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n == math.Trunc(n) && !math.IsInf(n, 0) {
			return int(n), true
		}
	case float32:
		if float64(n) == math.Trunc(float64(n)) {
			return int(n), true
		}
	}
	return 0, false
}
