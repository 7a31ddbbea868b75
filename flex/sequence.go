package flex

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Generation says whether a step grows the structure its flex needs.
type Generation int

const (
	// GenNone applies the flex as is.
	GenNone Generation = iota
	// GenOnly ("+") grows the structure but doesn't apply the flex.
	GenOnly
	// GenApply ("*") grows the structure and then applies the flex.
	GenApply
)

// Step is one token of a flex sequence: a flex, a rotation, or a repeated group.
type Step struct {
	// Name is a flex name (with a trailing ' for an inverse) or one of > < ^ ~.
	// It is empty for a group.
	Name string
	// Gen is the generation suffix of a named flex.
	Gen Generation
	// Group holds the steps of a parenthesised group.
	Group Sequence
	// Repeat is how many times Group runs.
	Repeat int
}

// IsGroup reports whether s is a parenthesised group.
func (s Step) IsGroup() bool { return s.Name == "" }

// String renders s the way ParseSequence reads it.
func (s Step) String() string {
	if s.IsGroup() {
		if s.Repeat == 1 {
			return "(" + s.Group.String() + ")"
		}
		return "(" + s.Group.String() + ")" + strconv.Itoa(s.Repeat)
	}
	switch s.Gen {
	case GenOnly:
		return s.Name + "+"
	case GenApply:
		return s.Name + "*"
	}
	return s.Name
}

// Sequence is a parsed flex sequence such as "P* >> (P^)3".
type Sequence []Step

// String concatenates every step without separators.
func (seq Sequence) String() string {
	var sb strings.Builder
	for _, s := range seq {
		sb.WriteString(s.String())
	}
	return sb.String()
}

// Expand flattens groups into a plain list of named steps.
func (seq Sequence) Expand() []Step {
	var out []Step
	for _, s := range seq {
		if !s.IsGroup() {
			out = append(out, s)
			continue
		}
		inner := s.Group.Expand()
		for i := 0; i < s.Repeat; i++ {
			out = append(out, inner...)
		}
	}
	return out
}

// Len returns the number of named steps after expansion.
func (seq Sequence) Len() int {
	n := 0
	for _, s := range seq {
		if s.IsGroup() {
			n += s.Repeat * s.Group.Len()
		} else {
			n++
		}
	}
	return n
}

// WithGeneration returns a copy of seq where every named flex uses gen.
// Rotations are left alone.
func (seq Sequence) WithGeneration(gen Generation) Sequence {
	out := make(Sequence, len(seq))
	for i, s := range seq {
		switch {
		case s.IsGroup():
			s.Group = s.Group.WithGeneration(gen)
		case !IsRotation(s.Name):
			s.Gen = gen
		}
		out[i] = s
	}
	return out
}

// Invert returns the sequence that undoes seq: steps reversed, > and <
// swapped, flex names toggled between plain and inverse, generation dropped.
func (seq Sequence) Invert() Sequence {
	out := make(Sequence, 0, len(seq))
	for i := len(seq) - 1; i >= 0; i-- {
		s := seq[i]
		switch {
		case s.IsGroup():
			out = append(out, Step{Group: s.Group.Invert(), Repeat: s.Repeat})
		case s.Name == ShiftRight:
			out = append(out, Step{Name: ShiftLeft})
		case s.Name == ShiftLeft:
			out = append(out, Step{Name: ShiftRight})
		case IsRotation(s.Name):
			out = append(out, Step{Name: s.Name})
		default:
			out = append(out, Step{Name: InverseName(s.Name)})
		}
	}
	return out
}

// Equal reports whether both sequences have the same steps.
func (seq Sequence) Equal(o Sequence) bool {
	if len(seq) != len(o) {
		return false
	}
	for i := range seq {
		a, b := seq[i], o[i]
		if a.Name != b.Name || a.Gen != b.Gen || a.Repeat != b.Repeat || !a.Group.Equal(b.Group) {
			return false
		}
	}
	return true
}

// ParseSequence reads a flex sequence.
//
//	flex     := [A-Z][a-z0-9]* "'"? ("+" | "*")?
//	rotation := ">" | "<" | "^" | "~"
//	group    := "(" sequence ")" digits?
//
// Whitespace between tokens is ignored.
func ParseSequence(s string) (Sequence, error) {
	p := &seqParser{src: []rune(s)}
	seq, err := p.sequence(0)
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.src) {
		return nil, p.fail("unexpected %q", p.src[p.pos])
	}
	return seq, nil
}

// MustParseSequence is ParseSequence for literals known to be valid.
func MustParseSequence(s string) Sequence {
	seq, err := ParseSequence(s)
	if err != nil {
		panic(err)
	}
	return seq
}

// InvertSequence parses s and returns its inverse in string form.
func InvertSequence(s string) (string, error) {
	seq, err := ParseSequence(s)
	if err != nil {
		return "", err
	}
	return seq.Invert().String(), nil
}

type seqParser struct {
	src []rune
	pos int
}

func (p *seqParser) fail(format string, args ...any) error {
	return fmt.Errorf("%w: at %d: %s", ErrBadSequence, p.pos, fmt.Sprintf(format, args...))
}

func (p *seqParser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(p.src[p.pos]) {
		p.pos++
	}
}

func (p *seqParser) sequence(depth int) (Sequence, error) {
	seq := Sequence{}
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			if depth > 0 {
				return nil, p.fail("missing ')'")
			}
			return seq, nil
		}
		r := p.src[p.pos]
		switch {
		case r == ')':
			if depth == 0 {
				return nil, p.fail("unbalanced ')'")
			}
			return seq, nil
		case r == '(':
			p.pos++
			inner, err := p.sequence(depth + 1)
			if err != nil {
				return nil, err
			}
			p.pos++ // ')'
			repeat := 1
			start := p.pos
			for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
				p.pos++
			}
			if p.pos > start {
				n, err := strconv.Atoi(string(p.src[start:p.pos]))
				if err != nil || n < 1 {
					return nil, p.fail("bad repeat count %q", string(p.src[start:p.pos]))
				}
				repeat = n
			}
			seq = append(seq, Step{Group: inner, Repeat: repeat})
		case IsRotation(string(r)):
			p.pos++
			seq = append(seq, Step{Name: string(r)})
		case r >= 'A' && r <= 'Z':
			step, err := p.flex()
			if err != nil {
				return nil, err
			}
			seq = append(seq, step)
		default:
			return nil, p.fail("unexpected %q", r)
		}
	}
}

func (p *seqParser) flex() (Step, error) {
	start := p.pos
	p.pos++
	for p.pos < len(p.src) {
		r := p.src[p.pos]
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			p.pos++
			continue
		}
		break
	}
	if p.pos < len(p.src) && p.src[p.pos] == '\'' {
		p.pos++
	}
	step := Step{Name: string(p.src[start:p.pos])}
	if p.pos < len(p.src) {
		switch p.src[p.pos] {
		case '+':
			step.Gen = GenOnly
			p.pos++
		case '*':
			step.Gen = GenApply
			p.pos++
		}
	}
	return step, nil
}
