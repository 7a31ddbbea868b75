package flexagon

import (
	"fmt"
	"strings"
)

// Directions records, per pat, whether the next pat is attached going '/' (true)
// or '\' (false).
type Directions []bool

// AllSlash returns n directions, all '/'.
func AllSlash(n int) Directions {
	d := make(Directions, n)
	for i := range d {
		d[i] = true
	}
	return d
}

// ParseDirections reads a string made of '/' and '\'.
func ParseDirections(s string) (Directions, error) {
	d := make(Directions, 0, len(s))
	for _, r := range s {
		switch r {
		case '/':
			d = append(d, true)
		case '\\':
			d = append(d, false)
		default:
			return nil, fmt.Errorf("%w: unexpected %q in %q", ErrBadDirections, r, s)
		}
	}
	return d, nil
}

// String renders d as '/' and '\' characters.
func (d Directions) String() string {
	var sb strings.Builder
	for _, slash := range d {
		if slash {
			sb.WriteByte('/')
		} else {
			sb.WriteByte('\\')
		}
	}
	return sb.String()
}

// Equal reports whether both have the same length and values.
func (d Directions) Equal(o Directions) bool {
	if len(d) != len(o) {
		return false
	}
	for i := range d {
		if d[i] != o[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of d.
func (d Directions) Clone() Directions {
	if d == nil {
		return nil
	}
	return append(Directions(nil), d...)
}

// Dir is one slot of a DirectionsOpt.
type Dir int8

const (
	// DirAny matches either direction.
	DirAny Dir = iota
	// DirSlash requires '/'.
	DirSlash
	// DirBackslash requires '\'.
	DirBackslash
)

// DirectionsOpt is a direction constraint where some slots don't matter.
// An empty DirectionsOpt matches everything.
type DirectionsOpt []Dir

// ParseDirectionsOpt reads a string made of '/', '\' and '?'.
func ParseDirectionsOpt(s string) (DirectionsOpt, error) {
	d := make(DirectionsOpt, 0, len(s))
	for _, r := range s {
		switch r {
		case '/':
			d = append(d, DirSlash)
		case '\\':
			d = append(d, DirBackslash)
		case '?':
			d = append(d, DirAny)
		default:
			return nil, fmt.Errorf("%w: unexpected %q in %q", ErrBadDirections, r, s)
		}
	}
	return d, nil
}

// String renders d using '/', '\' and '?'.
func (d DirectionsOpt) String() string {
	var sb strings.Builder
	for _, v := range d {
		switch v {
		case DirSlash:
			sb.WriteByte('/')
		case DirBackslash:
			sb.WriteByte('\\')
		default:
			sb.WriteByte('?')
		}
	}
	return sb.String()
}

// IsEmpty reports whether d constrains nothing.
func (d DirectionsOpt) IsEmpty() bool {
	for _, v := range d {
		if v != DirAny {
			return false
		}
	}
	return true
}

// Matches reports whether dirs satisfies every constrained slot.
func (d DirectionsOpt) Matches(dirs Directions) bool {
	if d.IsEmpty() {
		return true
	}
	if len(d) != len(dirs) {
		return false
	}
	for i, v := range d {
		if (v == DirSlash && !dirs[i]) || (v == DirBackslash && dirs[i]) {
			return false
		}
	}
	return true
}

// At returns the required value of slot i and whether slot i is constrained.
func (d DirectionsOpt) At(i int) (slash, ok bool) {
	if i < 0 || i >= len(d) || d[i] == DirAny {
		return false, false
	}
	return d[i] == DirSlash, true
}

// Clone returns an independent copy of d.
func (d DirectionsOpt) Clone() DirectionsOpt {
	if d == nil {
		return nil
	}
	return append(DirectionsOpt(nil), d...)
}
