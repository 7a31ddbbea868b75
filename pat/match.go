package pat

import "fmt"

// Match walks p and pattern in lock-step and binds every placeholder.
//
//	id > 0: Matches[id] = sub-pat as found
//	id < 0: Matches[-id] = sub-pat flipped
//	id == 0: matches anything, nothing recorded
//
// A pair in pattern requires a pair in p; otherwise a *PatternError is returned.
func Match(p, pattern *Pat) (Matches, error) {
	m := make(Matches)
	if err := match(p, pattern, m); err != nil {
		return nil, err
	}
	return m, nil
}

// MatchInto is Match with a caller-supplied table, so several pats can share
// one placeholder namespace.
func MatchInto(p, pattern *Pat, m Matches) error {
	return match(p, pattern, m)
}

func match(p, pattern *Pat, m Matches) error {
	if pattern.IsLeaf() {
		switch id := pattern.id; {
		case id > 0:
			m[id] = p
		case id < 0:
			m[-id] = p.Flip()
		}
		return nil
	}
	if p.IsLeaf() {
		return &PatternError{Expected: pattern, Actual: p}
	}
	if err := match(p.left, pattern.left, m); err != nil {
		return err
	}
	return match(p.right, pattern.right, m)
}

// HasPattern reports whether p has at least the shape of pattern.
func HasPattern(p, pattern *Pat) bool {
	if pattern.IsLeaf() {
		return true
	}
	if p.IsLeaf() {
		return false
	}
	return HasPattern(p.left, pattern.left) && HasPattern(p.right, pattern.right)
}

// Build substitutes matched sub-pats into pattern.
// A negative placeholder inserts the flipped match.
func Build(pattern *Pat, m Matches) (*Pat, error) {
	if pattern.IsLeaf() {
		id := pattern.id
		neg := id < 0
		if neg {
			id = -id
		}
		found, ok := m[id]
		if !ok || id == 0 {
			return nil, fmt.Errorf("%w: %d", ErrMissingPlaceholder, pattern.id)
		}
		if neg {
			return found.Flip(), nil
		}
		return found, nil
	}
	left, err := Build(pattern.left, m)
	if err != nil {
		return nil, err
	}
	right, err := Build(pattern.right, m)
	if err != nil {
		return nil, err
	}
	return Pair(left, right), nil
}

// CreatePattern grows p until it has at least the shape of pattern.
// A leaf x that must become a pair turns into [x, -sign(x)*n], with n taken
// from ids; every such split is appended to the returned slice.
// Subtrees that already have the required shape are returned unchanged.
func CreatePattern(p, pattern *Pat, ids *Counter) (*Pat, []Split) {
	var splits []Split
	out := create(p, pattern, ids, &splits)
	return out, splits
}

func create(p, pattern *Pat, ids *Counter, splits *[]Split) *Pat {
	if pattern.IsLeaf() {
		return p
	}
	if p.IsLeaf() {
		x := p.id
		n := ids.Next()
		if x > 0 {
			n = -n
		}
		*splits = append(*splits, Split{ID: x, Left: x, Right: n})
		p = Pair(Leaf(x), Leaf(n))
	}
	left := create(p.left, pattern.left, ids, splits)
	right := create(p.right, pattern.right, ids, splits)
	if left == p.left && right == p.right {
		return p
	}
	return Pair(left, right)
}
