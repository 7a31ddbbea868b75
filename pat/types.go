package pat

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sentinel errors for pat parsing and matching.
var (
	// ErrNotAnInteger is returned when a leaf tree holds a non-integer leaf.
	ErrNotAnInteger = errors.New("pat: leaf is not an integer")

	// ErrWrongArity is returned when a leaf tree array does not hold exactly two items.
	ErrWrongArity = errors.New("pat: array must have exactly two items")

	// ErrTooFewPats is returned when fewer than two pats describe a flexagon.
	ErrTooFewPats = errors.New("pat: too few pats")

	// ErrShapeMismatch is returned when a pat doesn't have the shape a pattern requires.
	ErrShapeMismatch = errors.New("pat: pattern mismatch")

	// ErrMissingPlaceholder is returned when Build meets a placeholder with no match.
	ErrMissingPlaceholder = errors.New("pat: placeholder not matched")
)

// Pat is an immutable binary tree of signed leaf ids.
// The zero value is not a valid Pat; use Leaf or Pair.
type Pat struct {
	id          int
	left, right *Pat
}

// LeafTree is the plain nested description of a pat: an integer leaf or a
// two-element []any of leaf trees.
type LeafTree = any

// Matches maps placeholder ids (always positive) to the sub-pats they matched.
type Matches map[int]*Pat

// Split records a leaf that CreatePattern turned into a pair.
type Split struct {
	// ID is the leaf that was split.
	ID int
	// Left and Right are the ids of the new leaves; Left keeps ID.
	Left, Right int
}

// Counter hands out fresh leaf ids.
type Counter struct {
	next int
}

// NewCounter returns a Counter whose first id is next.
func NewCounter(next int) *Counter {
	if next < 1 {
		next = 1
	}
	return &Counter{next: next}
}

// Next returns a fresh id.
func (c *Counter) Next() int {
	id := c.next
	c.next++
	return id
}

// Peek returns the id Next would hand out without consuming it.
func (c *Counter) Peek() int { return c.next }

// ParseError is the tagged error returned when a leaf tree is malformed.
type ParseError struct {
	// Kind is one of ErrNotAnInteger, ErrWrongArity or ErrTooFewPats.
	Kind error
	// Tree is the offending (sub)tree.
	Tree any
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: %v", e.Kind, e.Tree)
}

func (e *ParseError) Unwrap() error { return e.Kind }

// PatternError reports where a pattern and a pat disagree.
type PatternError struct {
	// Expected is the pattern (sub)tree that failed to match.
	Expected *Pat
	// Actual is the pat (sub)tree found at the same position.
	Actual *Pat
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("%v: expected %s, got %s", ErrShapeMismatch, e.Expected, e.Actual)
}

func (e *PatternError) Unwrap() error { return ErrShapeMismatch }

// Leaf returns a leaf pat with the given id.
func Leaf(id int) *Pat { return &Pat{id: id} }

// Pair returns a pat with left stacked on right.
func Pair(left, right *Pat) *Pat { return &Pat{left: left, right: right} }

// IsLeaf reports whether p has no children.
func (p *Pat) IsLeaf() bool { return p.left == nil }

// ID returns the leaf id, or 0 for a pair.
func (p *Pat) ID() int {
	if !p.IsLeaf() {
		return 0
	}
	return p.id
}

// Left returns the upper child of a pair, or nil for a leaf.
func (p *Pat) Left() *Pat { return p.left }

// Right returns the lower child of a pair, or nil for a leaf.
func (p *Pat) Right() *Pat { return p.right }

// LeafCount returns the number of leaves in p.
func (p *Pat) LeafCount() int {
	if p.IsLeaf() {
		return 1
	}
	return p.left.LeafCount() + p.right.LeafCount()
}

// Top returns the id of the face visible from above.
func (p *Pat) Top() int {
	if p.IsLeaf() {
		return p.id
	}
	return p.left.Top()
}

// Bottom returns the id of the face visible from below.
func (p *Pat) Bottom() int {
	if p.IsLeaf() {
		return -p.id
	}
	return p.right.Bottom()
}

// Flip returns p turned over: every id negated and every pair swapped.
func (p *Pat) Flip() *Pat {
	if p.IsLeaf() {
		return Leaf(-p.id)
	}
	return Pair(p.right.Flip(), p.left.Flip())
}

// Equal reports whether p and o have the same shape and the same leaf ids.
func (p *Pat) Equal(o *Pat) bool {
	if p == o {
		return true
	}
	if p == nil || o == nil || p.IsLeaf() != o.IsLeaf() {
		return false
	}
	if p.IsLeaf() {
		return p.id == o.id
	}
	return p.left.Equal(o.left) && p.right.Equal(o.right)
}

// SameStructure reports whether p and o have the same shape, ignoring ids.
func (p *Pat) SameStructure(o *Pat) bool {
	if p.IsLeaf() || o.IsLeaf() {
		return p.IsLeaf() == o.IsLeaf()
	}
	return p.left.SameStructure(o.left) && p.right.SameStructure(o.right)
}

// String renders p as a leaf tree, e.g. "[1,[-2,3]]".
func (p *Pat) String() string {
	if p == nil {
		return "<nil>"
	}
	var sb strings.Builder
	p.write(&sb, false)
	return sb.String()
}

// Structure renders only the shape of p: "-" per leaf, e.g. "[-,[-,-]]".
func (p *Pat) Structure() string {
	var sb strings.Builder
	p.write(&sb, true)
	return sb.String()
}

func (p *Pat) write(sb *strings.Builder, shapeOnly bool) {
	if p.IsLeaf() {
		if shapeOnly {
			sb.WriteByte('-')
		} else {
			sb.WriteString(strconv.Itoa(p.id))
		}
		return
	}
	sb.WriteByte('[')
	p.left.write(sb, shapeOnly)
	sb.WriteByte(',')
	p.right.write(sb, shapeOnly)
	sb.WriteByte(']')
}

// Leaves returns the leaf ids of p from left to right.
func (p *Pat) Leaves() []int {
	out := make([]int, 0, p.LeafCount())
	return p.appendLeaves(out)
}

func (p *Pat) appendLeaves(out []int) []int {
	if p.IsLeaf() {
		return append(out, p.id)
	}
	return p.right.appendLeaves(p.left.appendLeaves(out))
}

// FindID looks for a leaf whose absolute id is abs(id).
// faceUp reports whether that leaf carries a positive id.
func (p *Pat) FindID(id int) (faceUp, ok bool) {
	if id < 0 {
		id = -id
	}
	if p.IsLeaf() {
		switch p.id {
		case id:
			return true, true
		case -id:
			return false, true
		}
		return false, false
	}
	if up, found := p.left.FindID(id); found {
		return up, true
	}
	return p.right.FindID(id)
}

// MinID returns the signed id of the leaf with the smallest absolute id.
func (p *Pat) MinID() int {
	best := 0
	for _, id := range p.Leaves() {
		if best == 0 || abs(id) < abs(best) {
			best = id
		}
	}
	return best
}

// MaxID returns the largest absolute leaf id in p.
func (p *Pat) MaxID() int {
	best := 0
	for _, id := range p.Leaves() {
		if abs(id) > best {
			best = abs(id)
		}
	}
	return best
}

// ToLeafTree converts p into its plain nested form.
func (p *Pat) ToLeafTree() LeafTree {
	if p.IsLeaf() {
		return p.id
	}
	return []any{p.left.ToLeafTree(), p.right.ToLeafTree()}
}

// Relabel returns a copy of p with every leaf id replaced by fn(id).
func (p *Pat) Relabel(fn func(id int) int) *Pat {
	if p.IsLeaf() {
		return Leaf(fn(p.id))
	}
	return Pair(p.left.Relabel(fn), p.right.Relabel(fn))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
