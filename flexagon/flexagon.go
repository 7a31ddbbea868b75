package flexagon

import (
	"errors"
	"fmt"
	"strings"

	"github.com/loki3/loki3.github.io/pat"
)

// Sentinel errors for flexagon construction and matching.
var (
	// ErrSizeMismatch is returned when pats, directions or patterns disagree in length.
	ErrSizeMismatch = errors.New("flexagon: size mismatch")

	// ErrBadDirections is returned when a direction string holds an unknown character.
	ErrBadDirections = errors.New("flexagon: bad directions")

	// ErrDirectionMismatch is returned when a direction precondition isn't met.
	ErrDirectionMismatch = errors.New("flexagon: direction mismatch")

	// ErrBadRotation is returned for an unknown rotation name.
	ErrBadRotation = errors.New("flexagon: bad rotation")

	// ErrBadLeafID is returned when a leaf id is 0 or used by two leaves.
	ErrBadLeafID = errors.New("flexagon: bad leaf id")
)

// DirectionError carries the expected and actual directions of a failed match.
type DirectionError struct {
	Expected DirectionsOpt
	Actual   Directions
}

func (e *DirectionError) Error() string {
	return fmt.Sprintf("%v: expected %s, got %s", ErrDirectionMismatch, e.Expected, e.Actual)
}

func (e *DirectionError) Unwrap() error { return ErrDirectionMismatch }

// LeafIDError names the offending leaf id and the pat it was found in.
type LeafIDError struct {
	ID  int
	Pat int
}

func (e *LeafIDError) Error() string {
	if e.ID == 0 {
		return fmt.Sprintf("%v: 0 in pat %d", ErrBadLeafID, e.Pat)
	}
	return fmt.Sprintf("%v: %d repeated in pat %d", ErrBadLeafID, e.ID, e.Pat)
}

func (e *LeafIDError) Unwrap() error { return ErrBadLeafID }

// Flexagon is an immutable ring of pats plus the direction of each hinge and
// the corner bookkeeping of pat 0.
type Flexagon struct {
	pats    []*pat.Pat
	dirs    Directions
	corners Corners
}

// New builds a flexagon. nil dirs means every pat is '/'.
func New(pats []*pat.Pat, dirs Directions) (*Flexagon, error) {
	if len(pats) < 2 {
		return nil, fmt.Errorf("%w: %d", pat.ErrTooFewPats, len(pats))
	}
	if dirs == nil {
		dirs = AllSlash(len(pats))
	}
	if len(dirs) != len(pats) {
		return nil, fmt.Errorf("%w: %d pats, %d directions", ErrSizeMismatch, len(pats), len(dirs))
	}
	if err := checkIDs(pats); err != nil {
		return nil, err
	}
	return &Flexagon{
		pats:    append([]*pat.Pat(nil), pats...),
		dirs:    dirs.Clone(),
		corners: NewCorners(),
	}, nil
}

// FromLeafTrees builds a flexagon from plain leaf trees and an optional
// direction string ("" means all '/').
func FromLeafTrees(trees []pat.LeafTree, dirs string) (*Flexagon, error) {
	pats, err := pat.ParseTrees(trees)
	if err != nil {
		return nil, err
	}
	return withDirString(pats, dirs)
}

// FromString builds a flexagon from a flow-syntax list of leaf trees,
// e.g. "[[1,-2],3,4,5]", and an optional direction string.
func FromString(trees, dirs string) (*Flexagon, error) {
	pats, err := pat.ParseTreesString(trees)
	if err != nil {
		return nil, err
	}
	return withDirString(pats, dirs)
}

func withDirString(pats []*pat.Pat, dirs string) (*Flexagon, error) {
	var d Directions
	if dirs != "" {
		var err error
		if d, err = ParseDirections(dirs); err != nil {
			return nil, err
		}
	}
	return New(pats, d)
}

// Plain builds a flexagon of n single-leaf pats with ids 1..n.
func Plain(n int, dirs Directions) (*Flexagon, error) {
	pats := make([]*pat.Pat, n)
	for i := range pats {
		pats[i] = pat.Leaf(i + 1)
	}
	return New(pats, dirs)
}

// WithCorners returns a copy of f whose corner bookkeeping is c.
func (f *Flexagon) WithCorners(c Corners) *Flexagon {
	return &Flexagon{pats: f.pats, dirs: f.dirs, corners: c}
}

// PatCount returns the number of pats.
func (f *Flexagon) PatCount() int { return len(f.pats) }

// LeafCount returns the total number of leaves across all pats.
func (f *Flexagon) LeafCount() int {
	n := 0
	for _, p := range f.pats {
		n += p.LeafCount()
	}
	return n
}

// Pat returns pat i.
func (f *Flexagon) Pat(i int) *pat.Pat { return f.pats[i] }

// Pats returns a copy of the pat slice.
func (f *Flexagon) Pats() []*pat.Pat { return append([]*pat.Pat(nil), f.pats...) }

// Directions returns a copy of the directions.
func (f *Flexagon) Directions() Directions { return f.dirs.Clone() }

// Corners returns the corner bookkeeping.
func (f *Flexagon) Corners() Corners { return f.corners }

// TopIDs returns the face visible from above on each pat.
func (f *Flexagon) TopIDs() []int {
	out := make([]int, len(f.pats))
	for i, p := range f.pats {
		out[i] = p.Top()
	}
	return out
}

// BottomIDs returns the face visible from below on each pat.
func (f *Flexagon) BottomIDs() []int {
	out := make([]int, len(f.pats))
	for i, p := range f.pats {
		out[i] = p.Bottom()
	}
	return out
}

// LeafTrees returns the plain nested form of every pat.
func (f *Flexagon) LeafTrees() []pat.LeafTree {
	out := make([]pat.LeafTree, len(f.pats))
	for i, p := range f.pats {
		out[i] = p.ToLeafTree()
	}
	return out
}

// PatsString renders the pats as a leaf tree list, e.g. "[[1,-2],3,4,5]".
func (f *Flexagon) PatsString() string {
	parts := make([]string, len(f.pats))
	for i, p := range f.pats {
		parts[i] = p.String()
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// String renders pats and directions, e.g. "[1,2,3,4] ////".
func (f *Flexagon) String() string {
	return f.PatsString() + " " + f.dirs.String()
}

// IsSameState reports whether every pat is leaf-equal and the directions match.
func (f *Flexagon) IsSameState(o *Flexagon) bool {
	if len(f.pats) != len(o.pats) || !f.dirs.Equal(o.dirs) {
		return false
	}
	for i := range f.pats {
		if !f.pats[i].Equal(o.pats[i]) {
			return false
		}
	}
	return true
}

// IsSameStructure is IsSameState ignoring leaf ids.
func (f *Flexagon) IsSameStructure(o *Flexagon) bool {
	if len(f.pats) != len(o.pats) || !f.dirs.Equal(o.dirs) {
		return false
	}
	for i := range f.pats {
		if !f.pats[i].SameStructure(o.pats[i]) {
			return false
		}
	}
	return true
}

// HasPattern reports whether every pat has at least the shape of the matching pattern.
func (f *Flexagon) HasPattern(patterns []*pat.Pat) bool {
	if len(patterns) != len(f.pats) {
		return false
	}
	for i, p := range f.pats {
		if !pat.HasPattern(p, patterns[i]) {
			return false
		}
	}
	return true
}

// MatchPattern matches patterns against all pats at once, sharing one
// placeholder table, after checking dirs (which may be empty).
func (f *Flexagon) MatchPattern(patterns []*pat.Pat, dirs DirectionsOpt) (pat.Matches, error) {
	if len(patterns) != len(f.pats) {
		return nil, fmt.Errorf("%w: %d patterns for %d pats", ErrSizeMismatch, len(patterns), len(f.pats))
	}
	if !dirs.Matches(f.dirs) {
		return nil, &DirectionError{Expected: dirs.Clone(), Actual: f.dirs.Clone()}
	}
	m := make(pat.Matches)
	for i, p := range f.pats {
		if err := pat.MatchInto(p, patterns[i], m); err != nil {
			return nil, fmt.Errorf("pat %d: %w", i, err)
		}
	}
	return m, nil
}

// CreatePattern grows every pat to at least the shape of its pattern.
func (f *Flexagon) CreatePattern(patterns []*pat.Pat, ids *pat.Counter) (*Flexagon, []pat.Split, error) {
	if len(patterns) != len(f.pats) {
		return nil, nil, fmt.Errorf("%w: %d patterns for %d pats", ErrSizeMismatch, len(patterns), len(f.pats))
	}
	pats := make([]*pat.Pat, len(f.pats))
	var splits []pat.Split
	for i, p := range f.pats {
		grown, s := pat.CreatePattern(p, patterns[i], ids)
		pats[i] = grown
		splits = append(splits, s...)
	}
	return &Flexagon{pats: pats, dirs: f.dirs, corners: f.corners}, splits, nil
}

// MaxID returns the largest absolute leaf id.
func (f *Flexagon) MaxID() int {
	best := 0
	for _, p := range f.pats {
		if m := p.MaxID(); m > best {
			best = m
		}
	}
	return best
}

// MinID returns the signed id whose absolute value is smallest.
func (f *Flexagon) MinID() int {
	best := 0
	for _, p := range f.pats {
		if m := p.MinID(); best == 0 || absInt(m) < absInt(best) {
			best = m
		}
	}
	return best
}

// FindID returns the pat holding abs(id) and whether that leaf is face up.
func (f *Flexagon) FindID(id int) (index int, faceUp, ok bool) {
	for i, p := range f.pats {
		if up, found := p.FindID(id); found {
			return i, up, true
		}
	}
	return -1, false, false
}

// NormalizeIDs relabels leaves 1..N in reading order, keeping every sign.
func (f *Flexagon) NormalizeIDs() *Flexagon {
	next := 0
	relabel := func(id int) int {
		next++
		if id < 0 {
			return -next
		}
		return next
	}
	pats := make([]*pat.Pat, len(f.pats))
	for i, p := range f.pats {
		pats[i] = p.Relabel(relabel)
	}
	return &Flexagon{pats: pats, dirs: f.dirs, corners: f.corners}
}

// Replace returns a new flexagon with the given pats, directions and corners.
// It is how flexes produce their result; the pat count must not change.
func (f *Flexagon) Replace(pats []*pat.Pat, dirs Directions, c Corners) (*Flexagon, error) {
	if len(pats) != len(f.pats) || len(dirs) != len(f.pats) {
		return nil, fmt.Errorf("%w: %d pats, %d directions, want %d", ErrSizeMismatch, len(pats), len(dirs), len(f.pats))
	}
	return &Flexagon{pats: append([]*pat.Pat(nil), pats...), dirs: dirs.Clone(), corners: c}, nil
}

// checkIDs rejects leaf id 0 and any id, of either sign, used twice.
func checkIDs(pats []*pat.Pat) error {
	seen := make(map[int]bool)
	for i, p := range pats {
		for _, id := range p.Leaves() {
			a := absInt(id)
			if a == 0 || seen[a] {
				return &LeafIDError{ID: id, Pat: i}
			}
			seen[a] = true
		}
	}
	return nil
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
