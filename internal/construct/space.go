// Package construct implements the shared, parameterized whitespace
// sub-state-machines of spec.md §4.2.3: space_or_tab and
// space_or_tab_eol. These are reused, unchanged, by every construct family
// (flow/string/text) that needs to consume runs of horizontal whitespace or
// an optional embedded line ending, exactly as
// original_source/src/construct/partial_space_or_tab.rs's Options/EolOptions
// split is reused across micromark-rs's construct modules.
package construct

import (
	"github.com/jcorbin/mdcore/internal/code"
	"github.com/jcorbin/mdcore/internal/event"
	"github.com/jcorbin/mdcore/internal/link"
	"github.com/jcorbin/mdcore/internal/tokenizer"
)

// SpaceOptions configures SpaceOrTabWithOptions.
type SpaceOptions struct {
	// Min and Max bound the allowed run length (inclusive); the construct
	// succeeds iff the consumed count is >= Min.
	Min, Max int
	// Kind is the token type to wrap the whitespace run in.
	Kind event.TokenType
	// Connect links this whitespace event to the previous linked event
	// rather than starting a new chain.
	Connect bool
	// HasContentType/ContentType: when HasContentType, the emitted event
	// is inserted into a content chain under ContentType.
	HasContentType bool
	ContentType    event.ContentType
}

// EOLOptions configures SpaceOrTabEOLWithOptions.
type EOLOptions struct {
	Connect        bool
	HasContentType bool
	ContentType    event.ContentType
}

// Unbounded is the "no maximum" sentinel for SpaceOptions.Max, mirroring
// the reference implementation's usize::MAX.
const Unbounded = int(^uint(0) >> 1)

// SpaceOrTab matches one-or-more space_or_tab codes.
//
//	space_or_tab ::= 1*( ' ' '\t' )
func SpaceOrTab() tokenizer.StateFn {
	return SpaceOrTabMinMax(1, Unbounded)
}

// SpaceOrTabMinMax matches between min and max space_or_tab codes.
//
//	space_or_tab_min_max ::= x*y( ' ' '\t' )
func SpaceOrTabMinMax(min, max int) tokenizer.StateFn {
	return SpaceOrTabWithOptions(SpaceOptions{Min: min, Max: max, Kind: event.SpaceOrTab})
}

// SpaceOrTabWithOptions matches space_or_tab per the given options.
func SpaceOrTabWithOptions(opts SpaceOptions) tokenizer.StateFn {
	return func(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
		return spaceStart(t, c, opts, 0)
	}
}

func spaceStart(t *tokenizer.Tokenizer, c code.Code, opts SpaceOptions, size int) (tokenizer.Result, []code.Code) {
	if c.IsSpaceOrTab() && opts.Max > 0 {
		if opts.HasContentType {
			t.EnterWithContent(opts.Kind, opts.ContentType)
			if opts.Connect {
				link.Link(t.Events, len(t.Events)-1)
			}
		} else {
			t.Enter(opts.Kind)
		}
		t.Consume(c)
		size++
		return tokenizer.ContinueWith(func(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
			return spaceInside(t, c, opts, size)
		}), nil
	}
	if opts.Min == 0 {
		return tokenizer.OkResult, []code.Code{c}
	}
	return tokenizer.NokResult, []code.Code{c}
}

func spaceInside(t *tokenizer.Tokenizer, c code.Code, opts SpaceOptions, size int) (tokenizer.Result, []code.Code) {
	if c.IsSpaceOrTab() && size < opts.Max {
		t.Consume(c)
		size++
		return tokenizer.ContinueWith(func(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
			return spaceInside(t, c, opts, size)
		}), nil
	}
	t.Exit(opts.Kind)
	if size >= opts.Min {
		return tokenizer.OkResult, []code.Code{c}
	}
	return tokenizer.NokResult, []code.Code{c}
}

// SpaceOrTabEOL matches either one-or-more space_or_tab with no line
// ending, or zero-or-more space_or_tab, exactly one line ending, and
// zero-or-more space_or_tab -- provided that second run is not itself
// followed by a blank line.
//
//	space_or_tab_eol ::= 1*( ' ' '\t' ) | 0*( ' ' '\t' ) eol 0*( ' ' '\t' )
func SpaceOrTabEOL() tokenizer.StateFn {
	return SpaceOrTabEOLWithOptions(EOLOptions{})
}

// SpaceOrTabEOLWithOptions matches space_or_tab_eol per the given options.
func SpaceOrTabEOLWithOptions(opts EOLOptions) tokenizer.StateFn {
	return func(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
		connect := false
		ok := false
		sub := SpaceOrTabWithOptions(SpaceOptions{
			Min: 1, Max: Unbounded,
			Kind:           event.SpaceOrTab,
			HasContentType: opts.HasContentType,
			ContentType:    opts.ContentType,
			Connect:        opts.Connect,
		})
		return t.Attempt(sub, func(matched bool) tokenizer.StateFn {
			if matched {
				ok = true
				if opts.HasContentType {
					connect = true
				}
			}
			return func(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
				return afterSpaceOrTab(t, c, opts, ok, connect)
			}
		})(t, c)
	}
}

func afterSpaceOrTab(t *tokenizer.Tokenizer, c code.Code, opts EOLOptions, ok, connect bool) (tokenizer.Result, []code.Code) {
	if c.IsLineEnding() {
		if opts.HasContentType {
			t.EnterWithContent(event.LineEnding, opts.ContentType)
			if connect {
				link.Link(t.Events, len(t.Events)-1)
			} else {
				connect = true
			}
		} else {
			t.Enter(event.LineEnding)
		}
		t.Consume(c)
		t.Exit(event.LineEnding)
		return tokenizer.ContinueWith(func(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
			return afterEOL(t, c, opts, connect)
		}), nil
	}
	if ok {
		return tokenizer.OkResult, []code.Code{c}
	}
	return tokenizer.NokResult, []code.Code{c}
}

func afterEOL(t *tokenizer.Tokenizer, c code.Code, opts EOLOptions, connect bool) (tokenizer.Result, []code.Code) {
	sub := SpaceOrTabWithOptions(SpaceOptions{
		Min: 1, Max: Unbounded,
		Kind:           event.SpaceOrTab,
		HasContentType: opts.HasContentType,
		ContentType:    opts.ContentType,
		Connect:        connect,
	})
	return t.AttemptOpt(sub, afterMoreSpaceOrTab)(t, c)
}

func afterMoreSpaceOrTab(_ *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if c.IsEOF() || c.IsLineEnding() {
		return tokenizer.NokResult, []code.Code{c}
	}
	return tokenizer.OkResult, []code.Code{c}
}

