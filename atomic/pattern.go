package atomic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/loki3/loki3.github.io/flexagon"
	"github.com/loki3/loki3.github.io/pat"
)

// Sentinel errors for atomic patterns and flexes.
var (
	// ErrNotEnoughPats is returned when a side holds fewer pats than a flex needs
	// and has no remainder to grow them from.
	ErrNotEnoughPats = errors.New("atomic: not enough pats")

	// ErrBadPattern is returned for malformed pattern text or inconsistent flex definitions.
	ErrBadPattern = errors.New("atomic: bad pattern")

	// ErrDirectionMismatch is returned when a pat's direction isn't the one a flex requires.
	ErrDirectionMismatch = errors.New("atomic: direction mismatch")
)

// Remainder names the unlisted rest of a flexagon on one side of the hinge.
// The zero value means "nothing there".
type Remainder struct {
	Name    string
	Flipped bool
}

// IsEmpty reports whether r names nothing.
func (r Remainder) IsEmpty() bool { return r.Name == "" }

// Flip turns r over; an empty remainder stays empty.
func (r Remainder) Flip() Remainder {
	if r.IsEmpty() {
		return r
	}
	return Remainder{Name: r.Name, Flipped: !r.Flipped}
}

func (r Remainder) String() string {
	if r.Flipped {
		return "-" + r.Name
	}
	return r.Name
}

// ConnectedPat is a pat together with the direction of the hinge it shares
// with the next pat.
type ConnectedPat struct {
	Pat *pat.Pat
	Dir flexagon.Dir
}

// Flip turns the pat over; the direction stays with its slot.
func (c ConnectedPat) Flip() ConnectedPat {
	return ConnectedPat{Pat: c.Pat.Flip(), Dir: c.Dir}
}

func (c ConnectedPat) String() string {
	switch c.Dir {
	case flexagon.DirSlash:
		return c.Pat.String() + "/"
	case flexagon.DirBackslash:
		return c.Pat.String() + `\`
	}
	return c.Pat.String()
}

// Pattern is a stretch of a flexagon around the current hinge:
//
//	OtherLeft Left… # Right… OtherRight
//
// Left is listed left to right, so its last pat touches the hinge; Right is
// listed from the hinge outwards. The remainders stand for everything else.
// Patterns are values; methods never modify their receiver's slices.
type Pattern struct {
	OtherLeft  Remainder
	Left       []ConnectedPat
	Right      []ConnectedPat
	OtherRight Remainder
}

// String renders p as it is parsed, e.g. "a 1/ [2,-3]\ # 4/ b".
func (p Pattern) String() string {
	var parts []string
	if !p.OtherLeft.IsEmpty() {
		parts = append(parts, p.OtherLeft.String())
	}
	for _, c := range p.Left {
		parts = append(parts, c.String())
	}
	parts = append(parts, "#")
	for _, c := range p.Right {
		parts = append(parts, c.String())
	}
	if !p.OtherRight.IsEmpty() {
		parts = append(parts, p.OtherRight.String())
	}
	return strings.Join(parts, " ")
}

// PatCount returns the number of listed pats.
func (p Pattern) PatCount() int { return len(p.Left) + len(p.Right) }

// Equal reports whether both patterns list the same pats, directions and remainders.
func (p Pattern) Equal(o Pattern) bool {
	return p.OtherLeft == o.OtherLeft && p.OtherRight == o.OtherRight &&
		sameSide(p.Left, o.Left) && sameSide(p.Right, o.Right)
}

func sameSide(a, b []ConnectedPat) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Dir != b[i].Dir || !a[i].Pat.Equal(b[i].Pat) {
			return false
		}
	}
	return true
}

// MaxID returns the largest absolute leaf id in p.
func (p Pattern) MaxID() int {
	best := 0
	for _, side := range [][]ConnectedPat{p.Left, p.Right} {
		for _, c := range side {
			if m := c.Pat.MaxID(); m > best {
				best = m
			}
		}
	}
	return best
}

// Flip turns the whole pattern over: sides trade places, every pat and
// remainder flips, and the hinge stays put.
func (p Pattern) Flip() Pattern {
	left := segment{pats: inward(p.Left), rem: p.OtherLeft}
	right := segment{pats: p.Right, rem: p.OtherRight}
	var out Pattern
	out.Left, out.OtherLeft = right.flip().asLeft()
	out.Right, out.OtherRight = left.flip().asRight()
	return out
}

// segment holds one side's pats ordered from the hinge outwards, followed by
// that side's remainder.
type segment struct {
	pats []ConnectedPat
	rem  Remainder
}

func (s segment) flip() segment {
	out := segment{pats: make([]ConnectedPat, len(s.pats)), rem: s.rem.Flip()}
	for i, c := range s.pats {
		out.pats[i] = c.Flip()
	}
	return out
}

// asLeft lays s out in Left order (outermost first).
func (s segment) asLeft() ([]ConnectedPat, Remainder) { return inward(s.pats), s.rem }

func (s segment) asRight() ([]ConnectedPat, Remainder) {
	return append([]ConnectedPat(nil), s.pats...), s.rem
}

// inward returns a reversed copy of pats.
func inward(pats []ConnectedPat) []ConnectedPat {
	out := make([]ConnectedPat, len(pats))
	for i, c := range pats {
		out[len(pats)-1-i] = c
	}
	return out
}

// ParsePattern reads the text form of a Pattern. Tokens are separated by
// spaces; exactly one "#" marks the hinge.
//
//	a, -b        remainders (lowercase letters, optional '-'), outermost only
//	3, -4        leaf pats
//	[1,[-2,3]]   nested pats
//	suffix / \   the pat's direction; none means either
func ParsePattern(s string) (Pattern, error) {
	sc := &scanner{src: s}
	var (
		p       Pattern
		toks    []token
		hinge   = -1
		scanErr error
	)
	for {
		tok, ok, err := sc.next()
		if err != nil {
			scanErr = err
			break
		}
		if !ok {
			break
		}
		if tok.hinge {
			if hinge >= 0 {
				return Pattern{}, fmt.Errorf("%w: more than one '#' in %q", ErrBadPattern, s)
			}
			hinge = len(toks)
		}
		toks = append(toks, tok)
	}
	if scanErr != nil {
		return Pattern{}, scanErr
	}
	if hinge < 0 {
		return Pattern{}, fmt.Errorf("%w: missing '#' in %q", ErrBadPattern, s)
	}

	for i, tok := range toks[:hinge] {
		if !tok.rem.IsEmpty() {
			if i != 0 {
				return Pattern{}, fmt.Errorf("%w: remainder %q must be outermost", ErrBadPattern, tok.rem)
			}
			p.OtherLeft = tok.rem
			continue
		}
		p.Left = append(p.Left, tok.pat)
	}
	right := toks[hinge+1:]
	for i, tok := range right {
		if !tok.rem.IsEmpty() {
			if i != len(right)-1 {
				return Pattern{}, fmt.Errorf("%w: remainder %q must be outermost", ErrBadPattern, tok.rem)
			}
			p.OtherRight = tok.rem
			continue
		}
		p.Right = append(p.Right, tok.pat)
	}
	return p, nil
}

// MustParsePattern is ParsePattern for literals known to be valid.
func MustParsePattern(s string) Pattern {
	p, err := ParsePattern(s)
	if err != nil {
		panic(err)
	}
	return p
}

type token struct {
	hinge bool
	rem   Remainder
	pat   ConnectedPat
}

type scanner struct {
	src string
	pos int
}

func (sc *scanner) fail(format string, args ...any) error {
	return fmt.Errorf("%w: at %d: %s", ErrBadPattern, sc.pos, fmt.Sprintf(format, args...))
}

func (sc *scanner) next() (token, bool, error) {
	for sc.pos < len(sc.src) && sc.src[sc.pos] == ' ' {
		sc.pos++
	}
	if sc.pos >= len(sc.src) {
		return token{}, false, nil
	}
	start := sc.pos
	c := sc.src[sc.pos]
	switch {
	case c == '#':
		sc.pos++
		return token{hinge: true}, true, nil
	case c == '-' && sc.pos+1 < len(sc.src) && isLower(sc.src[sc.pos+1]), isLower(c):
		flipped := c == '-'
		if flipped {
			sc.pos++
		}
		nameStart := sc.pos
		for sc.pos < len(sc.src) && isLower(sc.src[sc.pos]) {
			sc.pos++
		}
		return token{rem: Remainder{Name: sc.src[nameStart:sc.pos], Flipped: flipped}}, true, nil
	case c == '[':
		depth := 0
		for sc.pos < len(sc.src) {
			switch sc.src[sc.pos] {
			case '[':
				depth++
			case ']':
				depth--
			}
			sc.pos++
			if depth == 0 {
				break
			}
		}
		if depth != 0 {
			return token{}, false, sc.fail("unbalanced '['")
		}
	case c == '-' || isDigit(c):
		sc.pos++
		for sc.pos < len(sc.src) && isDigit(sc.src[sc.pos]) {
			sc.pos++
		}
	default:
		return token{}, false, sc.fail("unexpected %q", c)
	}

	p, err := pat.ParseTreeString(sc.src[start:sc.pos])
	if err != nil {
		return token{}, false, fmt.Errorf("%w: %q: %w", ErrBadPattern, sc.src[start:sc.pos], err)
	}
	dir := flexagon.DirAny
	if sc.pos < len(sc.src) {
		switch sc.src[sc.pos] {
		case '/':
			dir = flexagon.DirSlash
			sc.pos++
		case '\\':
			dir = flexagon.DirBackslash
			sc.pos++
		}
	}
	return token{pat: ConnectedPat{Pat: p, Dir: dir}}, true, nil
}

func isLower(c byte) bool { return c >= 'a' && c <= 'z' }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
