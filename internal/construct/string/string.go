// Package string implements the string-context inline constructs: runs of
// ordinary data, character escapes, and character references. These are
// what link reference definition labels/destinations/titles (and any other
// string-context content) are sub-tokenized through.
//
// Grounded the same way as internal/construct/flow: scandown has no direct
// inline-parsing equivalent, so these are written in the teacher's terse,
// state-function-per-case idiom rather than transliterated from any one
// scandown source.
//
// Named stringconstruct, not string, so that importers keep the predeclared
// string type usable unqualified.
package stringconstruct

import (
	"github.com/jcorbin/mdcore/internal/code"
	"github.com/jcorbin/mdcore/internal/event"
	"github.com/jcorbin/mdcore/internal/tokenizer"
)

// Root is the string-context entry state function.
func Root(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	return dispatch(t, c)
}

func dispatch(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if c.IsEOF() {
		return tokenizer.OkResult, nil
	}
	return t.Attempt(CharacterEscape, func(ok bool) tokenizer.StateFn {
		if ok {
			return dispatch
		}
		return t.Attempt(CharacterReference, func(ok bool) tokenizer.StateFn {
			if ok {
				return dispatch
			}
			return data
		})
	})(t, c)
}

// CharacterEscape matches a backslash followed by one ASCII punctuation
// character.
//
//	character_escape ::= "\" ascii_punctuation
func CharacterEscape(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if !c.Is('\\') {
		return tokenizer.NokResult, []code.Code{c}
	}
	t.Enter(event.CharacterEscape)
	t.Consume(c)
	return tokenizer.ContinueWith(characterEscapeValue), nil
}

func characterEscapeValue(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if !isASCIIPunctuation(c) {
		return tokenizer.NokResult, []code.Code{c}
	}
	t.Enter(event.CharacterEscapeValue)
	t.Consume(c)
	t.Exit(event.CharacterEscapeValue)
	t.Exit(event.CharacterEscape)
	return tokenizer.OkResult, nil
}

func isASCIIPunctuation(c code.Code) bool {
	return c.Is([]rune("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~")...)
}

// CharacterReference matches "&" ( "#" ( "x"|"X" hex+ | digit+ ) | alpha+ )
// ";".
//
//	character_reference ::= "&" ( "#" ( ( "x" | "X" ) 1*6hexdigit | 1*7digit ) | 1*31alpha ) ";"
func CharacterReference(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if !c.Is('&') {
		return tokenizer.NokResult, []code.Code{c}
	}
	t.Enter(event.CharacterReference)
	t.Consume(c)
	t.Scratch.CharRefNumeric = false
	t.Scratch.CharRefHex = false
	t.Scratch.CharRefSize = 0
	return tokenizer.ContinueWith(charRefStart), nil
}

func charRefStart(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if c.Is('#') {
		t.Consume(c)
		t.Scratch.CharRefNumeric = true
		return tokenizer.ContinueWith(charRefNumericStart), nil
	}
	if isASCIIAlpha(c) {
		t.Enter(event.CharacterReferenceValue)
		t.Consume(c)
		t.Scratch.CharRefSize = 1
		return tokenizer.ContinueWith(charRefNamedValue), nil
	}
	t.Exit(event.CharacterReference)
	return tokenizer.NokResult, []code.Code{c}
}

func charRefNumericStart(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if c.Is('x', 'X') {
		t.Consume(c)
		t.Scratch.CharRefHex = true
		return tokenizer.ContinueWith(charRefNumericValue), nil
	}
	if isASCIIDigit(c) {
		t.Enter(event.CharacterReferenceValue)
		t.Consume(c)
		t.Scratch.CharRefSize = 1
		return tokenizer.ContinueWith(charRefNumericValue), nil
	}
	t.Exit(event.CharacterReference)
	return tokenizer.NokResult, []code.Code{c}
}

func charRefNumericValue(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if t.Scratch.CharRefSize == 0 {
		valid := isASCIIDigit(c)
		if t.Scratch.CharRefHex {
			valid = isASCIIHexDigit(c)
		}
		if !valid {
			t.Exit(event.CharacterReference)
			return tokenizer.NokResult, []code.Code{c}
		}
		t.Enter(event.CharacterReferenceValue)
	}
	max := 7
	if t.Scratch.CharRefHex {
		max = 6
	}
	valid := isASCIIDigit(c)
	if t.Scratch.CharRefHex {
		valid = isASCIIHexDigit(c)
	}
	if valid && t.Scratch.CharRefSize < max {
		t.Consume(c)
		t.Scratch.CharRefSize++
		return tokenizer.ContinueWith(charRefNumericValue), nil
	}
	if t.Scratch.CharRefSize == 0 {
		t.Exit(event.CharacterReference)
		return tokenizer.NokResult, []code.Code{c}
	}
	t.Exit(event.CharacterReferenceValue)
	return charRefEnd(t, c)
}

func charRefNamedValue(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if isASCIIAlpha(c) && t.Scratch.CharRefSize < 31 {
		t.Consume(c)
		t.Scratch.CharRefSize++
		return tokenizer.ContinueWith(charRefNamedValue), nil
	}
	t.Exit(event.CharacterReferenceValue)
	return charRefEnd(t, c)
}

func charRefEnd(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if !c.Is(';') {
		t.Exit(event.CharacterReference)
		return tokenizer.NokResult, []code.Code{c}
	}
	t.Consume(c)
	t.Exit(event.CharacterReference)
	return tokenizer.OkResult, nil
}

func isASCIIAlpha(c code.Code) bool {
	return c.Kind == code.Char && ((c.Char >= 'a' && c.Char <= 'z') || (c.Char >= 'A' && c.Char <= 'Z'))
}

func isASCIIDigit(c code.Code) bool {
	return c.Kind == code.Char && c.Char >= '0' && c.Char <= '9'
}

func isASCIIHexDigit(c code.Code) bool {
	return isASCIIDigit(c) || (c.Kind == code.Char && ((c.Char >= 'a' && c.Char <= 'f') || (c.Char >= 'A' && c.Char <= 'F')))
}

// data is the fallback: one code of plain string-context content. Adjacent
// data codes are merged into a single Data event by continuing to consume
// until a construct-starting code (or EOF) is seen.
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
	if c.Is('\\', '&') {
		t.Exit(event.Data)
		// data is dispatch's bare final fallback (not wrapped in an
		// Attempt), so it alone must hand control back to dispatch here
		// rather than let this Ok be mistaken for the whole pass ending.
		return tokenizer.ContinueWith(dispatch), []code.Code{c}
	}
	t.Consume(c)
	return tokenizer.ContinueWith(dataInside), nil
}
