package flexagon

import "fmt"

// Rotation tags how a flex permutes the three corners of the current pat.
type Rotation int

const (
	// ABC leaves the corners alone.
	ABC Rotation = iota
	// ACB swaps the second and third corners.
	ACB
	// BAC swaps the first and second corners.
	BAC
	// CBA swaps the first and third corners.
	CBA
	// BCA cycles the corners one step.
	BCA
	// CAB cycles the corners one step the other way.
	CAB
	// Left is BCA when pat 0 is '/' and CAB otherwise.
	Left
	// Right is CAB when pat 0 is '/' and BCA otherwise.
	Right
)

var rotationNames = [...]string{"ABC", "ACB", "BAC", "CBA", "BCA", "CAB", "Left", "Right"}

// String returns the rotation's name.
func (r Rotation) String() string {
	if r < 0 || int(r) >= len(rotationNames) {
		return fmt.Sprintf("Rotation(%d)", int(r))
	}
	return rotationNames[r]
}

// ParseRotation looks a rotation up by name (case sensitive).
func ParseRotation(s string) (Rotation, error) {
	for i, n := range rotationNames {
		if n == s {
			return Rotation(i), nil
		}
	}
	return ABC, fmt.Errorf("%w: unknown rotation %q", ErrBadRotation, s)
}

// Inverse returns the rotation that undoes r.
func (r Rotation) Inverse() Rotation {
	switch r {
	case BCA:
		return CAB
	case CAB:
		return BCA
	case Left:
		return Right
	case Right:
		return Left
	}
	return r
}

// Resolve turns Left/Right into a concrete permutation given pat 0's direction.
func (r Rotation) Resolve(firstSlash bool) Rotation {
	switch r {
	case Left:
		if firstSlash {
			return BCA
		}
		return CAB
	case Right:
		if firstSlash {
			return CAB
		}
		return BCA
	}
	return r
}

// Corners tracks which labelled corner of the current pat sits in each of the
// three positions. The zero value is the ABC arrangement.
type Corners struct {
	order [3]byte
}

// NewCorners returns corners in the ABC arrangement.
func NewCorners() Corners { return Corners{order: [3]byte{'A', 'B', 'C'}} }

// Apply permutes the corners according to r.
// firstSlash is pat 0's direction before the flex, used to resolve Left/Right.
func (c Corners) Apply(r Rotation, firstSlash bool) Corners {
	c = c.normalized()
	o := c.order
	switch r.Resolve(firstSlash) {
	case ACB:
		o[1], o[2] = o[2], o[1]
	case BAC:
		o[0], o[1] = o[1], o[0]
	case CBA:
		o[0], o[2] = o[2], o[0]
	case BCA:
		o = [3]byte{o[1], o[2], o[0]}
	case CAB:
		o = [3]byte{o[2], o[0], o[1]}
	}
	return Corners{order: o}
}

// Current returns the label of the corner in the first position.
func (c Corners) Current() byte { return c.normalized().order[0] }

// Mirrored reports whether the labels now run the opposite way around.
func (c Corners) Mirrored() bool {
	o := c.normalized().order
	switch string(o[:]) {
	case "ABC", "BCA", "CAB":
		return false
	}
	return true
}

// String renders the arrangement, e.g. "BCA".
func (c Corners) String() string {
	o := c.normalized().order
	return string(o[:])
}

func (c Corners) normalized() Corners {
	if c.order[0] == 0 {
		return NewCorners()
	}
	return c
}
