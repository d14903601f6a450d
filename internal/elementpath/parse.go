package elementpath

import (
	"strconv"
	"strings"
)

// Parse parses a canonical element path string such as
//
//	macos://ui/AXApplication[@bundleId="com.apple.TextEdit"]/AXWindow/AXButton[@AXTitle="OK"][2]
//
// Attribute clauses may appear in any order; the result is normalized.
func Parse(input string) (Path, error) {
	rest, ok := strings.CutPrefix(input, Scheme)
	if !ok {
		return Path{}, prefixError(input)
	}
	if rest == "" {
		return Path{}, emptyError(input)
	}

	p := &parser{input: input, s: rest}
	var segs []Segment
	for {
		seg, err := p.segment(len(segs))
		if err != nil {
			return Path{}, err
		}
		segs = append(segs, seg)
		if p.eof() {
			break
		}
		if p.peek() != '/' {
			return Path{}, segmentError(input, len(segs)-1, "unexpected character "+strconv.QuoteRune(rune(p.peek())))
		}
		p.pos++
		if p.eof() {
			return Path{}, segmentError(input, len(segs), "trailing separator")
		}
	}
	return Path{segs: segs}, nil
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(input string) Path {
	p, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return p
}

// ParseSegment parses a single segment without the scheme prefix. Both the
// "[k]" sibling index and the "role#p" position are accepted.
func ParseSegment(input string) (Segment, error) {
	p := &parser{input: input, s: input}
	seg, err := p.segment(0)
	if err != nil {
		return Segment{}, err
	}
	if !p.eof() {
		return Segment{}, segmentError(input, 0, "unexpected trailing input")
	}
	return seg, nil
}

type parser struct {
	input string // original string, reported in errors
	s     string
	pos   int
}

func (p *parser) eof() bool { return p.pos >= len(p.s) }

func (p *parser) peek() byte { return p.s[p.pos] }

func (p *parser) segment(idx int) (Segment, error) {
	start := p.pos
	for !p.eof() {
		c := p.peek()
		if c == '[' || c == '#' || c == '/' {
			break
		}
		if c == ']' || c == '"' {
			return Segment{}, segmentError(p.input, idx, "invalid character in role")
		}
		p.pos++
	}
	seg := Segment{role: p.s[start:p.pos]}
	if seg.role == "" {
		return Segment{}, segmentError(p.input, idx, "empty role")
	}

	if !p.eof() && p.peek() == '#' {
		p.pos++
		n, err := p.number(idx)
		if err != nil {
			return Segment{}, err
		}
		seg.index = n
		seg.position = true
	}

	for !p.eof() && p.peek() == '[' {
		p.pos++
		if p.eof() {
			return Segment{}, segmentError(p.input, idx, "unterminated clause")
		}
		if p.peek() != '@' {
			n, err := p.number(idx)
			if err != nil {
				return Segment{}, err
			}
			if err := p.expect(idx, ']'); err != nil {
				return Segment{}, err
			}
			if seg.index != 0 {
				return Segment{}, segmentError(p.input, idx, "duplicate index")
			}
			seg.index = n
			continue
		}
		p.pos++
		key, value, err := p.attribute(idx)
		if err != nil {
			return Segment{}, err
		}
		if seg.attrs == nil {
			seg.attrs = make(map[string]string)
		}
		if _, dup := seg.attrs[key]; dup {
			return Segment{}, segmentError(p.input, idx, "duplicate attribute "+key)
		}
		seg.attrs[key] = value
	}
	return seg, nil
}

// number reads a positive decimal integer.
func (p *parser) number(idx int) (int, error) {
	start := p.pos
	for !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
		p.pos++
	}
	n, err := strconv.Atoi(p.s[start:p.pos])
	if err != nil || n <= 0 {
		return 0, segmentError(p.input, idx, "invalid index")
	}
	return n, nil
}

// attribute reads `key="value"]` after the leading "[@".
func (p *parser) attribute(idx int) (string, string, error) {
	start := p.pos
	for !p.eof() && p.peek() != '=' {
		if c := p.peek(); c == ']' || c == '"' || c == '[' {
			return "", "", segmentError(p.input, idx, "invalid attribute name")
		}
		p.pos++
	}
	key := p.s[start:p.pos]
	if key == "" || p.eof() {
		return "", "", segmentError(p.input, idx, "invalid attribute name")
	}
	p.pos++ // '='
	if err := p.expect(idx, '"'); err != nil {
		return "", "", err
	}

	var sb strings.Builder
	for {
		if p.eof() {
			return "", "", segmentError(p.input, idx, "unterminated attribute value")
		}
		c := p.peek()
		p.pos++
		if c == '"' {
			break
		}
		if c == '\\' {
			if p.eof() {
				return "", "", segmentError(p.input, idx, "unterminated attribute value")
			}
			next := p.peek()
			if next == '"' || next == '\\' {
				sb.WriteByte(next)
				p.pos++
				continue
			}
		}
		sb.WriteByte(c)
	}
	if err := p.expect(idx, ']'); err != nil {
		return "", "", err
	}
	return key, sb.String(), nil
}

func (p *parser) expect(idx int, c byte) error {
	if p.eof() || p.peek() != c {
		return segmentError(p.input, idx, "expected "+strconv.QuoteRune(rune(c)))
	}
	p.pos++
	return nil
}
