package code_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/mdcore/internal/code"
)

func TestFromString(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		want []code.Code
	}{
		{
			name: "plain",
			in:   "ab",
			want: []code.Code{
				{Kind: code.Char, Char: 'a'},
				{Kind: code.Char, Char: 'b'},
			},
		},
		{
			name: "crlf collapses",
			in:   "a\r\nb",
			want: []code.Code{
				{Kind: code.Char, Char: 'a'},
				{Kind: code.CarriageReturnLineFeed},
				{Kind: code.Char, Char: 'b'},
			},
		},
		{
			name: "lone cr and lf stay chars",
			in:   "a\rb\nc",
			want: []code.Code{
				{Kind: code.Char, Char: 'a'},
				{Kind: code.Char, Char: '\r'},
				{Kind: code.Char, Char: 'b'},
				{Kind: code.Char, Char: '\n'},
				{Kind: code.Char, Char: 'c'},
			},
		},
		{
			name: "tab expands to next 4-column stop",
			in:   "\tx",
			want: []code.Code{
				{Kind: code.Char, Char: '\t'},
				{Kind: code.VirtualSpace},
				{Kind: code.VirtualSpace},
				{Kind: code.VirtualSpace},
				{Kind: code.Char, Char: 'x'},
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, code.FromString(tc.in))
		})
	}
}

func TestCodePredicates(t *testing.T) {
	assert.True(t, code.Code{Kind: code.Char, Char: ' '}.IsSpaceOrTab())
	assert.True(t, code.Code{Kind: code.Char, Char: '\t'}.IsSpaceOrTab())
	assert.True(t, code.Code{Kind: code.VirtualSpace}.IsSpaceOrTab())
	assert.False(t, code.Code{Kind: code.Char, Char: 'x'}.IsSpaceOrTab())

	assert.True(t, code.Code{Kind: code.CarriageReturnLineFeed}.IsLineEnding())
	assert.True(t, code.Code{Kind: code.Char, Char: '\n'}.IsLineEnding())
	assert.True(t, code.Code{Kind: code.Char, Char: '\r'}.IsLineEnding())
	assert.False(t, code.Code{Kind: code.Char, Char: 'x'}.IsLineEnding())

	assert.True(t, code.Code{Kind: code.None}.IsEOF())
	assert.False(t, code.Code{Kind: code.Char, Char: 'x'}.IsEOF())

	assert.True(t, code.Code{Kind: code.Char, Char: 'a'}.Is('a', 'b'))
	assert.False(t, code.Code{Kind: code.Char, Char: 'c'}.Is('a', 'b'))
}

func TestAdvancePointCRLF(t *testing.T) {
	p := code.Point{Line: 1, Column: 5, Offset: 4, Index: 2}
	p = code.AdvancePoint(p, code.Code{Kind: code.CarriageReturnLineFeed})
	require.Equal(t, code.Point{Line: 2, Column: 1, Offset: 6, Index: 3}, p)
}

func TestAdvancePointVirtualSpace(t *testing.T) {
	p := code.Point{Line: 1, Column: 1, Index: 0}
	p = code.AdvancePoint(p, code.Code{Kind: code.VirtualSpace})
	require.Equal(t, 2, p.Column)
	require.Equal(t, 1, p.Index)
	require.Equal(t, 0, p.Offset)
}

func TestReaderAtPastEndIsEOF(t *testing.T) {
	codes := code.FromString("a")
	r := code.NewReader(codes, code.Point{Line: 1, Column: 1})
	require.False(t, r.At().IsEOF())
	r.Advance(r.At())
	require.True(t, r.At().IsEOF())
}
