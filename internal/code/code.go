// Package code implements the parser's normalized input alphabet: a flat
// sequence of Code values derived from a source string, with line endings
// canonicalized and tabs virtually expanded to 4-column stops.
//
// A Code sequence is the only thing any other package in mdcore reads from;
// nothing downstream of here ever looks at the original string again.
package code

import "fmt"

// Kind discriminates the variants of Code.
type Kind int

// Kind values, matching the parser's alphabet.
const (
	// None is the end-of-input sentinel. It is never present in a Code
	// slice; Reader.At returns it past the end.
	None Kind = iota
	// CarriageReturnLineFeed is the single code produced for a "\r\n" pair.
	CarriageReturnLineFeed
	// Char is any other single code point, including '\r', '\n' alone,
	// and '\t' (which is followed by zero or more VirtualSpace codes).
	Char
	// VirtualSpace is emitted after a '\t' Char to expand the tab to the
	// next column divisible by 4, without mutating the source text.
	VirtualSpace
)

// Code is one element of the parser's normalized alphabet.
type Code struct {
	Kind Kind
	Char rune // valid when Kind == Char
}

// noneCode is the end-of-input Code (Kind None); it equals the zero Code.
var noneCode = Code{Kind: None}

// Is reports whether the code is a Char with one of the given runes.
func (c Code) Is(runes ...rune) bool {
	if c.Kind != Char {
		return false
	}
	for _, r := range runes {
		if c.Char == r {
			return true
		}
	}
	return false
}

// IsSpaceOrTab reports whether the code is a ' ', '\t', or VirtualSpace --
// the three codes that space_or_tab (construct.SpaceOrTab) consumes.
func (c Code) IsSpaceOrTab() bool {
	return c.Kind == VirtualSpace || c.Is(' ', '\t')
}

// IsLineEnding reports whether the code starts (and, for CRLF, completes) a
// line ending.
func (c Code) IsLineEnding() bool {
	return c.Kind == CarriageReturnLineFeed || c.Is('\n', '\r')
}

// IsEOF reports whether the code is the None sentinel.
func (c Code) IsEOF() bool { return c.Kind == None }

// Format implements fmt.Formatter, in the terse/verbose style used
// throughout this module's debug-facing types.
func (c Code) Format(f fmt.State, verb rune) {
	switch c.Kind {
	case None:
		fmt.Fprint(f, "EOF")
	case CarriageReturnLineFeed:
		fmt.Fprint(f, `"\r\n"`)
	case VirtualSpace:
		fmt.Fprint(f, "vspace")
	case Char:
		fmt.Fprintf(f, "%q", c.Char)
	default:
		fmt.Fprintf(f, "Code(invalid kind %d)", c.Kind)
	}
}

// Point is a position within a Code sequence: line/column for display,
// offset into the original source bytes, and index into the Code slice.
// Lines and columns are 1-based; offset and index are 0-based.
type Point struct {
	Line   int
	Column int
	Offset int
	Index  int
}

// String renders "line:column" for error/debug messages.
func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// tabSize is the column stop CommonMark tabs expand to.
const tabSize = 4

// FromString implements as_codes: it normalizes text into the Code
// alphabet, expanding tabs to virtual spaces and collapsing "\r\n" into a
// single CarriageReturnLineFeed code.
func FromString(text string) []Code {
	codes := make([]Code, 0, len(text))
	column := 1
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch r {
		case '\r':
			if i+1 < len(runes) && runes[i+1] == '\n' {
				codes = append(codes, Code{Kind: CarriageReturnLineFeed})
				i++
				column = 1
				continue
			}
			codes = append(codes, Code{Kind: Char, Char: '\r'})
			column = 1
		case '\n':
			codes = append(codes, Code{Kind: Char, Char: '\n'})
			column = 1
		case '\t':
			startColumn := column
			codes = append(codes, Code{Kind: Char, Char: '\t'})
			column++
			virtuals := (tabSize - 1) - (startColumn-1)%tabSize
			for v := 0; v < virtuals; v++ {
				codes = append(codes, Code{Kind: VirtualSpace})
				column++
			}
		default:
			codes = append(codes, Code{Kind: Char, Char: r})
			column++
		}
	}
	return codes
}

// Reader provides positional, lookahead-free reads over a Code slice,
// tracking the Point bookkeeping rules of §4.1: VirtualSpace advances
// column only, CarriageReturnLineFeed advances line and resets column
// while consuming two bytes of offset.
type Reader struct {
	codes []Code
	point Point
}

// NewReader creates a Reader over codes, starting at the given point (the
// tokenizer runtime uses this to resume mid-sequence for sub-tokenization).
func NewReader(codes []Code, at Point) *Reader {
	return &Reader{codes: codes, point: at}
}

// At returns the code at the reader's current index, or the None sentinel
// past the end of the sequence.
func (r *Reader) At() Code {
	if r.point.Index >= len(r.codes) {
		return noneCode
	}
	return r.codes[r.point.Index]
}

// Point returns the reader's current position.
func (r *Reader) Point() Point { return r.point }

// SetPoint forcibly repositions the reader, used by define_skip bridging.
func (r *Reader) SetPoint(p Point) { r.point = p }

// Advance consumes the code currently at the reader's position (which must
// equal code, a caller invariant checked by the tokenizer, not here) and
// returns the updated point.
func (r *Reader) Advance(c Code) Point {
	r.point = AdvancePoint(r.point, c)
	return r.point
}

// AdvancePoint returns the point that results from consuming c at p,
// implementing the column/offset/index bookkeeping rules of spec.md §4.1:
// VirtualSpace advances column only; CarriageReturnLineFeed advances line,
// resets column, and advances offset by the two bytes of "\r\n"; any other
// line-ending Char advances line and resets column; all other Chars
// advance column and offset by the rune's encoded length. Index always
// advances by exactly one, regardless of Kind.
func AdvancePoint(p Point, c Code) Point {
	switch c.Kind {
	case CarriageReturnLineFeed:
		p.Line++
		p.Column = 1
		p.Offset += 2
	case Char:
		if c.Char == '\n' || c.Char == '\r' {
			p.Line++
			p.Column = 1
		} else {
			p.Column++
		}
		p.Offset += len(string(c.Char))
	case VirtualSpace:
		p.Column++
	}
	p.Index++
	return p
}

// Len returns the number of codes in the underlying sequence.
func (r *Reader) Len() int { return len(r.codes) }
