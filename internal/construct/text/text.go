// Package text implements the text-context inline constructs: character
// escapes/references (delegated to internal/construct/string's matchers,
// since their grammar is identical in either context), a minimal link
// construct (enough to exercise ParseState.Definitions), and the data
// fallback.
//
// Line break classification (hard vs soft) is not done here: a paragraph's
// eol is never part of any ChunkText span fed through this package (the
// sub-tokenization resolver bridges over it via DefineSkip, spec.md §4.3),
// so internal/construct/flow classifies it directly while it still has the
// trailing-space count at hand.
package text

import (
	"strings"

	stringconstruct "github.com/jcorbin/mdcore/internal/construct/string"
	"github.com/jcorbin/mdcore/internal/code"
	"github.com/jcorbin/mdcore/internal/event"
	"github.com/jcorbin/mdcore/internal/tokenizer"
)

// Root is the text-context entry state function.
func Root(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	return dispatch(t, c)
}

func dispatch(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if c.IsEOF() {
		return tokenizer.OkResult, nil
	}
	return t.Attempt(label, func(ok bool) tokenizer.StateFn {
		if ok {
			return dispatch
		}
		return t.Attempt(stringconstruct.CharacterEscape, func(ok bool) tokenizer.StateFn {
			if ok {
				return dispatch
			}
			return t.Attempt(stringconstruct.CharacterReference, func(ok bool) tokenizer.StateFn {
				if ok {
					return dispatch
				}
				return data
			})
		})
	})(t, c)
}

// label matches a minimal shortcut reference link: "[" 1*label_text "]",
// where the bracketed text, case-folded and whitespace-trimmed, is looked
// up against ParseState.Definitions. Full link grammar (inline
// destinations, nested brackets, images) is explicitly out of scope per
// spec.md §1; this exists only to exercise the Definitions lookup path
// end-to-end.
//
//	label ::= "[" 1*(text - "]") "]"
func label(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if !c.Is('[') {
		return tokenizer.NokResult, []code.Code{c}
	}
	t.Enter(event.LabelLink)
	t.Enter(event.Label)
	t.Consume(c)
	t.Scratch.LabelText = t.Scratch.LabelText[:0]
	return tokenizer.ContinueWith(labelInside), nil
}

func labelInside(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if c.Is(']') {
		t.Consume(c)
		t.Exit(event.Label)
		name := strings.ToLower(strings.TrimSpace(string(t.Scratch.LabelText)))
		if _, ok := t.ParseState().Definitions[name]; !ok {
			t.Exit(event.LabelLink)
			return tokenizer.NokResult, nil
		}
		t.Exit(event.LabelLink)
		return tokenizer.OkResult, nil
	}
	if c.IsEOF() || c.Is('[') {
		t.Exit(event.Label)
		t.Exit(event.LabelLink)
		return tokenizer.NokResult, []code.Code{c}
	}
	if c.Kind == code.Char {
		t.Scratch.LabelText = append(t.Scratch.LabelText, c.Char)
	}
	t.Consume(c)
	return tokenizer.ContinueWith(labelInside), nil
}

// data is the fallback: a maximal run of plain text-context content.
func data(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if c.IsEOF() {
		return tokenizer.OkResult, nil
	}
	t.Enter(event.Data)
	t.Consume(c)
	return tokenizer.ContinueWith(dataInside), nil
}

func dataInside(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if c.IsEOF() {
		t.Exit(event.Data)
		return tokenizer.OkResult, nil
	}
	if c.IsLineEnding() || c.Is('\\', '&', '[') {
		t.Exit(event.Data)
		// data is dispatch's bare final fallback (not wrapped in an
		// Attempt), so it alone must hand control back to dispatch here
		// rather than let this Ok be mistaken for the whole pass ending.
		return tokenizer.ContinueWith(dispatch), []code.Code{c}
	}
	t.Consume(c)
	return tokenizer.ContinueWith(dataInside), nil
}
