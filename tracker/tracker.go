package tracker

import (
	"strings"

	"github.com/loki3/loki3.github.io/flexagon"
)

// Key returns the canonical form of fx: identical for every rotation of the
// ring and for fx turned over.
//
// The walk starts at the pat holding abs(refID); if no pat holds it, at the
// pat holding the smallest id present. When that leaf is face up the pats are
// read forward, otherwise backwards and flipped. Each pat contributes its leaf
// tree followed by its direction.
func Key(fx *flexagon.Flexagon, refID int) string {
	start, up, ok := fx.FindID(refID)
	if !ok {
		start, up, _ = fx.FindID(fx.MinID())
	}
	n := fx.PatCount()
	dirs := fx.Directions()
	var sb strings.Builder
	for k := 0; k < n; k++ {
		if up {
			j := (start + k) % n
			sb.WriteString(fx.Pat(j).String())
			sb.WriteByte(dirChar(dirs[j]))
		} else {
			j := (start - k + n) % n
			sb.WriteString(fx.Pat(j).Flip().String())
			sb.WriteByte(dirChar(dirs[j]))
		}
	}
	return sb.String()
}

// StructureKey is Key ignoring leaf ids: the smaller of the minimal rotations
// of the pat shapes read forward and read turned over.
func StructureKey(fx *flexagon.Flexagon) string {
	n := fx.PatCount()
	dirs := fx.Directions()
	fwd := make([]string, n)
	back := make([]string, n)
	for j := 0; j < n; j++ {
		fwd[j] = fx.Pat(j).Structure() + string(dirChar(dirs[j]))
		r := n - 1 - j
		back[j] = fx.Pat(r).Flip().Structure() + string(dirChar(dirs[r]))
	}
	a := strings.Join(MinimalRotation(fwd), "")
	b := strings.Join(MinimalRotation(back), "")
	if b < a {
		return b
	}
	return a
}

func dirChar(slash bool) byte {
	if slash {
		return '/'
	}
	return '\\'
}

// Tracker remembers canonical keys so a search recognises states it has
// already seen, however they are rotated or turned over.
type Tracker struct {
	refID int
	index map[string]int
	keys  []string
}

// New returns a tracker keyed on start's smallest leaf id.
func New(start *flexagon.Flexagon) *Tracker {
	return NewWithRef(start.MinID())
}

// NewWithRef returns a tracker keyed on refID.
func NewWithRef(refID int) *Tracker {
	if refID < 0 {
		refID = -refID
	}
	return &Tracker{refID: refID, index: make(map[string]int)}
}

// RefID returns the reference leaf id.
func (t *Tracker) RefID() int { return t.refID }

// Key returns the canonical key of fx under this tracker's reference id.
func (t *Tracker) Key(fx *flexagon.Flexagon) string { return Key(fx, t.refID) }

// Find returns the index of fx if an equivalent state was added before.
func (t *Tracker) Find(fx *flexagon.Flexagon) (int, bool) {
	i, ok := t.index[t.Key(fx)]
	return i, ok
}

// FindMaybeAdd returns (index, true) for a known state; otherwise it records
// fx and returns (newIndex, false).
func (t *Tracker) FindMaybeAdd(fx *flexagon.Flexagon) (int, bool) {
	key := t.Key(fx)
	if i, ok := t.index[key]; ok {
		return i, true
	}
	i := len(t.keys)
	t.index[key] = i
	t.keys = append(t.keys, key)
	return i, false
}

// Count returns the number of distinct states recorded.
func (t *Tracker) Count() int { return len(t.keys) }

// KeyAt returns the key recorded at index i.
func (t *Tracker) KeyAt(i int) string { return t.keys[i] }
