// Package flow implements the flow-level (block) constructs dispatched at
// the start of every line: thematic breaks, ATX headings, indented and
// fenced code, block quotes, lists, link reference definitions, blank
// lines, and the paragraph fallback.
//
// Per spec.md §1, individual construct internals are explicitly out of
// scope -- only their shape as attemptable tokenizer.StateFns, and their
// registration order in Root, matters here. Each construct below is
// grounded on scandown/block.go's matching logic (trimIndent, delimiter,
// ordinal, fence, ruler), restructured from scandown's per-line byte-slice
// matching into the one-code-at-a-time attempt/check style spec.md
// requires.
package flow

import (
	"strings"

	"github.com/jcorbin/mdcore/internal/code"
	"github.com/jcorbin/mdcore/internal/construct"
	"github.com/jcorbin/mdcore/internal/event"
	"github.com/jcorbin/mdcore/internal/link"
	"github.com/jcorbin/mdcore/internal/tokenizer"
)

// Root is the flow entry state function: at the start of every line it
// tries each registered construct in turn, falling back to paragraph text
// when none match. Registration order mirrors scandown's opening
// if/else-if chain in BlockStack.Scan.
func Root(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	return lineStart(t, c)
}

func lineStart(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if c.IsEOF() {
		return tokenizer.OkResult, nil
	}
	return t.Attempt(indent4(blankLine), func(ok bool) tokenizer.StateFn {
		if ok {
			return lineStart
		}
		return t.Attempt(thematicBreak, func(ok bool) tokenizer.StateFn {
			if ok {
				return lineStart
			}
			return t.Attempt(atxHeading, func(ok bool) tokenizer.StateFn {
				if ok {
					return lineStart
				}
				return t.Attempt(codeFenced, func(ok bool) tokenizer.StateFn {
					if ok {
						return lineStart
					}
					return t.Attempt(blockQuote, func(ok bool) tokenizer.StateFn {
						if ok {
							return lineStart
						}
						return t.Attempt(indent4(listItem), func(ok bool) tokenizer.StateFn {
							if ok {
								return lineStart
							}
							return t.Attempt(indent4(linkDefinition), func(ok bool) tokenizer.StateFn {
								if ok {
									return lineStart
								}
								return t.Attempt(codeIndented, func(ok bool) tokenizer.StateFn {
									if ok {
										return lineStart
									}
									return paragraph
								})
							})
						})
					})
				})
			})
		})
	})(t, c)
}

// indent4 wraps a sub-construct that must see up to three leading spaces of
// indentation stripped first (lineStart wraps blank line, list item and
// link definition in it; scandown's trimIndent(tail, 0, 4) callers
// capture the same rule by checking indent == 4 to distinguish "this is an
// indented code block" from "this has ordinary indent").
func indent4(sub tokenizer.StateFn) tokenizer.StateFn {
	return func(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
		return t.AttemptOpt(construct.SpaceOrTabMinMax(0, 3), sub)(t, c)
	}
}

// blankLine matches a line containing only space_or_tab up to the line
// ending or EOF.
//
//	blank_line ::= space_or_tab? ( eol | eof )
func blankLine(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	sub := construct.SpaceOrTabMinMax(0, construct.Unbounded)
	return t.AttemptOpt(sub, blankLineAfterSpace)(t, c)
}

func blankLineAfterSpace(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if c.IsEOF() {
		return tokenizer.OkResult, []code.Code{c}
	}
	if c.IsLineEnding() {
		t.Enter(event.BlankLineEnding)
		t.Consume(c)
		t.Exit(event.BlankLineEnding)
		return tokenizer.OkResult, nil
	}
	return tokenizer.NokResult, []code.Code{c}
}

// thematicBreak matches 3+ of the same marker ('-', '_', '*'), optionally
// interspersed with space_or_tab, terminated by a line ending or EOF.
//
//	thematic_break ::= ( marker space_or_tab* ){3,}
func thematicBreak(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if !c.Is('-', '_', '*') {
		return tokenizer.NokResult, []code.Code{c}
	}
	t.Enter(event.ThematicBreak)
	marker := c.Char
	t.Consume(c)
	return tokenizer.ContinueWith(func(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
		return thematicBreakInside(t, c, marker, 1)
	}), nil
}

func thematicBreakInside(t *tokenizer.Tokenizer, c code.Code, marker rune, count int) (tokenizer.Result, []code.Code) {
	if c.Is(marker) {
		t.Consume(c)
		return tokenizer.ContinueWith(func(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
			return thematicBreakInside(t, c, marker, count+1)
		}), nil
	}
	if c.IsSpaceOrTab() {
		t.Consume(c)
		return tokenizer.ContinueWith(func(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
			return thematicBreakInside(t, c, marker, count)
		}), nil
	}
	if count < 3 || !(c.IsLineEnding() || c.IsEOF()) {
		t.Exit(event.ThematicBreak)
		return tokenizer.NokResult, []code.Code{c}
	}
	t.Exit(event.ThematicBreak)
	return tokenizer.OkResult, []code.Code{c}
}

// atxHeading matches 1-6 '#' followed by a space/tab or line ending, then a
// title run through the end of the line. A closing sequence of '#' is not
// recognized separately; it stays part of the title.
//
//	atx_heading ::= 1*6"#" ( space_or_tab 1*text )?
func atxHeading(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if !c.Is('#') {
		return tokenizer.NokResult, []code.Code{c}
	}
	t.Enter(event.Heading)
	t.Enter(event.HeadingAtxSequence)
	t.Consume(c)
	return tokenizer.ContinueWith(func(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
		return atxSequence(t, c, 1)
	}), nil
}

func atxSequence(t *tokenizer.Tokenizer, c code.Code, count int) (tokenizer.Result, []code.Code) {
	if c.Is('#') && count < 6 {
		t.Consume(c)
		return tokenizer.ContinueWith(func(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
			return atxSequence(t, c, count+1)
		}), nil
	}
	if !(c.IsSpaceOrTab() || c.IsLineEnding() || c.IsEOF()) {
		t.Exit(event.HeadingAtxSequence)
		t.Exit(event.Heading)
		return tokenizer.NokResult, []code.Code{c}
	}
	t.Exit(event.HeadingAtxSequence)
	t.Scratch.HeadingLevel = count
	return atxTitle(t, c)
}

func atxTitle(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if c.IsLineEnding() || c.IsEOF() {
		t.Exit(event.Heading)
		if c.IsLineEnding() {
			t.Enter(event.LineEnding)
			t.Consume(c)
			t.Exit(event.LineEnding)
			return tokenizer.OkResult, nil
		}
		return tokenizer.OkResult, []code.Code{c}
	}
	// The space_or_tab run separating the opening sequence from the title is
	// not itself title content, per atx_heading's own grammar above.
	return t.AttemptOpt(construct.SpaceOrTabMinMax(0, construct.Unbounded), atxTitleStart)(t, c)
}

func atxTitleStart(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if c.IsLineEnding() || c.IsEOF() {
		t.Exit(event.Heading)
		if c.IsLineEnding() {
			t.Enter(event.LineEnding)
			t.Consume(c)
			t.Exit(event.LineEnding)
			return tokenizer.OkResult, nil
		}
		return tokenizer.OkResult, []code.Code{c}
	}
	t.EnterWithContent(event.ChunkText, event.Text)
	t.Consume(c)
	return tokenizer.ContinueWith(atxTitleInside), nil
}

func atxTitleInside(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if c.IsLineEnding() || c.IsEOF() {
		t.Exit(event.ChunkText)
		t.Exit(event.Heading)
		if c.IsLineEnding() {
			t.Enter(event.LineEnding)
			t.Consume(c)
			t.Exit(event.LineEnding)
			return tokenizer.OkResult, nil
		}
		return tokenizer.OkResult, []code.Code{c}
	}
	t.Consume(c)
	return tokenizer.ContinueWith(atxTitleInside), nil
}

// codeFenced matches an opening fence of 3+ identical '`'/'~', an optional
// info string, the fenced content lines verbatim, and a matching closing
// fence (unterminated fences run to EOF, mirroring scandown's Codefence
// Block, which is likewise closed only by a later matching line or EOF).
//
//	code_fenced ::= fence_open *code_flow_chunk fence_close?
func codeFenced(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if !c.Is('`', '~') {
		return tokenizer.NokResult, []code.Code{c}
	}
	t.Enter(event.CodeFenced)
	t.Enter(event.CodeFencedFence)
	t.Enter(event.CodeFencedFenceSequence)
	delim := c.Char
	t.Consume(c)
	return tokenizer.ContinueWith(func(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
		return codeFencedSequence(t, c, delim, 1)
	}), nil
}

func codeFencedSequence(t *tokenizer.Tokenizer, c code.Code, delim rune, size int) (tokenizer.Result, []code.Code) {
	if c.Is(delim) {
		t.Consume(c)
		return tokenizer.ContinueWith(func(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
			return codeFencedSequence(t, c, delim, size+1)
		}), nil
	}
	t.Exit(event.CodeFencedFenceSequence)
	if size < 3 {
		t.Exit(event.CodeFencedFence)
		t.Exit(event.CodeFenced)
		return tokenizer.NokResult, []code.Code{c}
	}
	t.Scratch.FenceDelim = delim
	t.Scratch.FenceSize = size
	return codeFencedInfo(t, c)
}

func codeFencedInfo(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if c.IsLineEnding() || c.IsEOF() {
		t.Exit(event.CodeFencedFence)
		return codeFencedLineStart(t, c)
	}
	if c.IsSpaceOrTab() {
		t.Consume(c)
		return tokenizer.ContinueWith(codeFencedInfo), nil
	}
	t.Enter(event.CodeFencedFenceInfo)
	t.Consume(c)
	return tokenizer.ContinueWith(codeFencedInfoInside), nil
}

func codeFencedInfoInside(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if c.IsLineEnding() || c.IsEOF() {
		t.Exit(event.CodeFencedFenceInfo)
		t.Exit(event.CodeFencedFence)
		return codeFencedLineStart(t, c)
	}
	t.Consume(c)
	return tokenizer.ContinueWith(codeFencedInfoInside), nil
}

func codeFencedLineStart(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if c.IsLineEnding() {
		t.Enter(event.LineEnding)
		t.Consume(c)
		t.Exit(event.LineEnding)
		return tokenizer.ContinueWith(codeFencedLineStart), nil
	}
	if c.IsEOF() {
		t.Exit(event.CodeFenced)
		return tokenizer.OkResult, []code.Code{c}
	}
	closing := SpaceOrTabThenFenceClose(t.Scratch.FenceDelim, t.Scratch.FenceSize)
	return t.Attempt(closing, func(ok bool) tokenizer.StateFn {
		if ok {
			return func(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
				t.Exit(event.CodeFenced)
				return tokenizer.OkResult, []code.Code{c}
			}
		}
		t.Enter(event.CodeFlowChunk)
		return codeFencedChunk
	})(t, c)
}

func codeFencedChunk(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if c.IsLineEnding() || c.IsEOF() {
		t.Exit(event.CodeFlowChunk)
		return codeFencedLineStart(t, c)
	}
	t.Consume(c)
	return tokenizer.ContinueWith(codeFencedChunk), nil
}

// SpaceOrTabThenFenceClose recognizes up to 3 leading spaces followed by a
// closing fence run of delim at least size long, through to a line ending
// or EOF. It is exported so tests can drive it directly against fixtures.
func SpaceOrTabThenFenceClose(delim rune, size int) tokenizer.StateFn {
	return func(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
		next := func(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
			return fenceCloseSequence(t, c, delim, size, 0)
		}
		return t.AttemptOpt(construct.SpaceOrTabMinMax(0, 3), next)(t, c)
	}
}

func fenceCloseSequence(t *tokenizer.Tokenizer, c code.Code, delim rune, minSize, size int) (tokenizer.Result, []code.Code) {
	if c.Is(delim) {
		t.Consume(c)
		return tokenizer.ContinueWith(func(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
			return fenceCloseSequence(t, c, delim, minSize, size+1)
		}), nil
	}
	if size < minSize {
		return tokenizer.NokResult, []code.Code{c}
	}
	return t.AttemptOpt(construct.SpaceOrTabMinMax(0, construct.Unbounded), fenceCloseTail)(t, c)
}

func fenceCloseTail(_ *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if c.IsLineEnding() || c.IsEOF() {
		return tokenizer.OkResult, []code.Code{c}
	}
	return tokenizer.NokResult, []code.Code{c}
}

// codeIndented matches a line indented by 4+ spaces, verbatim through the
// line ending, continuing across any number of further lines indented by 4+
// spaces; a line without that indent, a blank one included, ends it --
// scandown's Codeblock Block type, minus its bufio.Scanner framing.
//
//	code_indented ::= indent(4) *code_flow_chunk
func codeIndented(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	sub := construct.SpaceOrTabMinMax(4, 4)
	return t.Attempt(sub, func(ok bool) tokenizer.StateFn {
		if !ok {
			return func(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
				return tokenizer.NokResult, []code.Code{c}
			}
		}
		t.Enter(event.CodeIndented)
		return codeIndentedChunkStart
	})(t, c)
}

func codeIndentedChunkStart(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if c.IsLineEnding() || c.IsEOF() {
		t.Exit(event.CodeIndented)
		return tokenizer.OkResult, []code.Code{c}
	}
	t.Enter(event.CodeFlowChunk)
	t.Consume(c)
	return tokenizer.ContinueWith(codeIndentedChunkInside), nil
}

func codeIndentedChunkInside(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if c.IsLineEnding() || c.IsEOF() {
		t.Exit(event.CodeFlowChunk)
		if !c.IsLineEnding() {
			t.Exit(event.CodeIndented)
			return tokenizer.OkResult, []code.Code{c}
		}
		t.Enter(event.LineEnding)
		t.Consume(c)
		t.Exit(event.LineEnding)
		return tokenizer.ContinueWith(t.Attempt(construct.SpaceOrTabMinMax(4, 4), func(ok bool) tokenizer.StateFn {
			if ok {
				return codeIndentedChunkStart
			}
			return func(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
				t.Exit(event.CodeIndented)
				return tokenizer.OkResult, []code.Code{c}
			}
		})), nil
	}
	t.Consume(c)
	return tokenizer.ContinueWith(codeIndentedChunkInside), nil
}

// blockQuote matches a '>' marker, optionally followed by one space/tab.
// The BlockQuote span closes right after them; the rest of the line is
// parsed by lineStart as ordinary flow content, and no container nesting
// is tracked (per spec.md §1's note that individual construct internals
// are not specified, only the marker itself is recognized here).
//
//	block_quote ::= ">" space_or_tab?
func blockQuote(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if !c.Is('>') {
		return tokenizer.NokResult, []code.Code{c}
	}
	t.Enter(event.BlockQuote)
	t.Enter(event.BlockQuoteMarker)
	t.Consume(c)
	t.Exit(event.BlockQuoteMarker)
	return tokenizer.ContinueWith(t.AttemptOpt(construct.SpaceOrTabMinMax(1, 1), func(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
		t.Exit(event.BlockQuote)
		return tokenizer.OkResult, []code.Code{c}
	})), nil
}

// paragraph is the fallback: every remaining non-blank line becomes a
// paragraph of chunk_text, linked into a chain across its lines so that
// sub-tokenization can resolve it as one logical run of inline content.
func paragraph(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if c.IsEOF() {
		return tokenizer.OkResult, nil
	}
	t.Scratch.ParagraphIndex = len(t.Events)
	t.Scratch.ParagraphKind = event.Paragraph
	t.Enter(event.Paragraph)
	t.EnterWithContent(event.ChunkText, event.Text)
	t.Scratch.TrailingSpaces = 0
	return paragraphInside(t, c)
}

// paragraphInside consumes one line of paragraph content. The eol between
// two lines of the same paragraph is not part of either line's ChunkText
// span (the sub-tokenizer bridges the gap via DefineSkip, spec.md §4.3), so
// it is classified here rather than by internal/construct/text: two or more
// trailing spaces make it a hard break, anything else a soft one -- mirrors
// CommonMark's "line ending preceded by two or more spaces" rule.
func paragraphInside(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if c.IsLineEnding() || c.IsEOF() {
		t.Exit(event.ChunkText)
		if c.IsEOF() {
			t.Exit(t.Scratch.ParagraphKind)
			return tokenizer.OkResult, nil
		}
		// A paragraph-interrupting setext underline can only follow the eol
		// right here, before it is reclassified as a soft/hard break; on
		// failure Attempt restores back to exactly this point (the
		// ChunkText exit above already happened outside the attempted
		// region, so it is not undone).
		return t.Attempt(setextUnderline, func(ok bool) tokenizer.StateFn {
			if ok {
				return func(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
					if c.IsEOF() {
						return tokenizer.OkResult, nil
					}
					return tokenizer.ContinueWith(lineStart), []code.Code{c}
				}
			}
			// Nok's remainder is whatever code the failed lookahead choked
			// on, not the eol itself -- capture eol here so paragraphBreak
			// still sees it, regardless of how deep the failure occurred.
			// The choked-on code is handed back after the break.
			eol := c
			return func(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
				res, _ := paragraphBreak(t, eol)
				return res, []code.Code{c}
			}
		})(t, c)
	}
	if c.IsSpaceOrTab() {
		t.Scratch.TrailingSpaces++
	} else {
		t.Scratch.TrailingSpaces = 0
	}
	t.Consume(c)
	return tokenizer.ContinueWith(paragraphInside), nil
}

// paragraphBreak runs once setextUnderline has failed to match: the eol just
// consumed is reclassified as a hard or soft line break per the trailing
// space count, and the paragraph either continues onto its next line or
// closes here.
func paragraphBreak(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	breakKind := event.LineBreakSoft
	if t.Scratch.TrailingSpaces >= 2 {
		breakKind = event.LineBreakHard
	}
	t.Enter(breakKind)
	t.Consume(c)
	t.Exit(breakKind)
	return tokenizer.ContinueWith(t.Attempt(paragraphContinuation, func(ok bool) tokenizer.StateFn {
		if ok {
			return paragraphNextLine
		}
		return func(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
			t.Exit(t.Scratch.ParagraphKind)
			if c.IsEOF() {
				return tokenizer.OkResult, nil
			}
			// paragraph is reached as lineStart's bare final fallback
			// (not itself wrapped in an Attempt), so it alone is
			// responsible for handing control back to lineStart once
			// it closes for any reason short of true end of input.
			return tokenizer.ContinueWith(lineStart), []code.Code{c}
		}
	})), nil
}

// paragraphContinuation checks (without consuming, on success the actual
// content is re-parsed by paragraphNextLine) that the next line is neither
// blank nor EOF, which would terminate the paragraph.
func paragraphContinuation(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if c.IsEOF() || c.IsLineEnding() {
		return tokenizer.NokResult, []code.Code{c}
	}
	return tokenizer.OkResult, []code.Code{c}
}

func paragraphNextLine(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	t.EnterWithContent(event.ChunkText, event.Text)
	// The previous line's ChunkText pair sits before the line break pair.
	link.To(t.Events, len(t.Events)-5, len(t.Events)-1)
	t.Scratch.TrailingSpaces = 0
	if c.IsSpaceOrTab() {
		t.Scratch.TrailingSpaces++
	}
	t.Consume(c)
	return tokenizer.ContinueWith(paragraphInside), nil
}

// setextUnderline matches a paragraph-interrupting setext heading
// underline: the eol ending the paragraph's last line, then (up to three
// leading spaces aside) a run of one marker ('=' or '-') optionally
// followed by space_or_tab, through to a line ending or EOF. On success it
// retypes the still-open Paragraph into a Heading via Tokenizer.Retype,
// mirroring scandown's block.go discarding the prior Paragraph block entry
// and replacing it with a Heading one when a setext ruler line is seen.
// Unlike scandown's shared ruler() (also used by thematic breaks, which do
// allow interspersed space_or_tab within the run), CommonMark's setext rule
// itself only allows a pure run of the marker, so only trailing
// space_or_tab is tolerated here.
//
//	setext_underline ::= eol space_or_tab{0,3} ( "="+ | "-"+ ) space_or_tab* ( eol | eof )
func setextUnderline(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if !c.IsLineEnding() {
		return tokenizer.NokResult, []code.Code{c}
	}
	t.Enter(event.LineEnding)
	t.Consume(c)
	t.Exit(event.LineEnding)
	return tokenizer.ContinueWith(t.AttemptOpt(construct.SpaceOrTabMinMax(0, 3), setextMarkerStart)), nil
}

func setextMarkerStart(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if !c.Is('=', '-') {
		return tokenizer.NokResult, []code.Code{c}
	}
	t.Enter(event.HeadingSetextUnderline)
	marker := c.Char
	t.Consume(c)
	return tokenizer.ContinueWith(func(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
		return setextMarkerInside(t, c, marker)
	}), nil
}

func setextMarkerInside(t *tokenizer.Tokenizer, c code.Code, marker rune) (tokenizer.Result, []code.Code) {
	if c.Is(marker) {
		t.Consume(c)
		return tokenizer.ContinueWith(func(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
			return setextMarkerInside(t, c, marker)
		}), nil
	}
	return setextMarkerTrailing(t, c, marker)
}

func setextMarkerTrailing(t *tokenizer.Tokenizer, c code.Code, marker rune) (tokenizer.Result, []code.Code) {
	if c.IsSpaceOrTab() {
		t.Consume(c)
		return tokenizer.ContinueWith(func(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
			return setextMarkerTrailing(t, c, marker)
		}), nil
	}
	if !(c.IsLineEnding() || c.IsEOF()) {
		t.Exit(event.HeadingSetextUnderline)
		return tokenizer.NokResult, []code.Code{c}
	}
	t.Exit(event.HeadingSetextUnderline)
	level := 2
	if marker == '=' {
		level = 1
	}
	t.Retype(t.Scratch.ParagraphIndex, t.Scratch.ParagraphKind, event.Heading)
	t.Scratch.ParagraphKind = event.Heading
	t.Scratch.HeadingLevel = level
	// Exit(Heading) before consuming the trailing eol, same as atxTitleInside:
	// the eol becomes a sibling LineEnding event, not part of the heading's
	// own span, so a renderer sees it as the ordinary inter-block separator.
	t.Exit(event.Heading)
	if c.IsLineEnding() {
		t.Enter(event.LineEnding)
		t.Consume(c)
		t.Exit(event.LineEnding)
		return tokenizer.OkResult, nil
	}
	return tokenizer.OkResult, []code.Code{c}
}

// listItem matches a list item marker -- a bullet or an ordinal -- followed
// by exactly one required space or tab. Like block_quote, only the marker
// itself is recognized; the rest of the line is parsed by lineStart as
// ordinary flow content, not as content nested in the item. Grounded on scandown's listMarker,
// which tries delimiter(line, 1, '-', '*', '+') before falling back to
// ordinal(line).
//
//	list_item ::= ( bullet | ordinal ) space_or_tab
//	bullet    ::= "-" / "*" / "+"
//	ordinal   ::= 1*9digit ( "." / ")" )
func listItem(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if c.Is('-', '*', '+') {
		t.Scratch.ListOrdered = false
		t.Scratch.ListDelim = c.Char
		t.Enter(event.ListUnordered)
		t.Enter(event.ListItem)
		t.Enter(event.ListItemMarker)
		t.Consume(c)
		t.Exit(event.ListItemMarker)
		return tokenizer.ContinueWith(listItemAfterMarker), nil
	}
	if isASCIIDigit(c) {
		t.Scratch.ListOrdered = true
		t.Enter(event.ListOrdered)
		t.Enter(event.ListItem)
		t.Enter(event.ListItemMarker)
		t.Consume(c)
		return tokenizer.ContinueWith(func(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
			return listOrderedDigits(t, c, 1)
		}), nil
	}
	return tokenizer.NokResult, []code.Code{c}
}

func listOrderedDigits(t *tokenizer.Tokenizer, c code.Code, width int) (tokenizer.Result, []code.Code) {
	if isASCIIDigit(c) && width < 9 {
		t.Consume(c)
		return tokenizer.ContinueWith(func(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
			return listOrderedDigits(t, c, width+1)
		}), nil
	}
	if !c.Is('.', ')') {
		t.Exit(event.ListItemMarker)
		closeListOpen(t)
		return tokenizer.NokResult, []code.Code{c}
	}
	t.Consume(c)
	t.Exit(event.ListItemMarker)
	return tokenizer.ContinueWith(listItemAfterMarker), nil
}

func listItemAfterMarker(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if !c.IsSpaceOrTab() {
		closeListOpen(t)
		return tokenizer.NokResult, []code.Code{c}
	}
	t.Enter(event.ListItemPrefix)
	t.Consume(c)
	t.Exit(event.ListItemPrefix)
	closeListOpen(t)
	return tokenizer.OkResult, nil
}

func closeListOpen(t *tokenizer.Tokenizer) {
	t.Exit(event.ListItem)
	if t.Scratch.ListOrdered {
		t.Exit(event.ListOrdered)
	} else {
		t.Exit(event.ListUnordered)
	}
}

func isASCIIDigit(c code.Code) bool {
	return c.Kind == code.Char && c.Char >= '0' && c.Char <= '9'
}

// linkDefinition matches a link reference definition: a bracketed label, a
// colon, a destination, and an optional title. This is the sole writer of
// ParseState.Definitions, which internal/construct/text's label construct
// reads during the later inline pass over chunk_text (spec.md §4.3's
// two-pass flow/inline split). No scandown or original_source precedent
// exists for reference-definition syntax; the label-matching technique
// (raw, case-folded, whitespace-trimmed text as the lookup key) is instead
// grounded on internal/construct/text's own label construct, so the two
// sides of the lookup agree on normalization.
//
//	definition  ::= "[" *label_text "]" ":" space_or_tab_eol?
//	                destination ( space_or_tab_eol title )? space_or_tab* ( eol | eof )
//	label_text  ::= text - "]"
//	destination ::= "<" *(text - ">") ">" | 1*(text - space_or_tab)
//	title       ::= "\"" *(text - "\"") "\"" | "'" *(text - "'") "'" | "(" *(text - ")") ")"
func linkDefinition(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if !c.Is('[') {
		return tokenizer.NokResult, []code.Code{c}
	}
	t.Enter(event.Definition)
	t.Enter(event.DefinitionLabel)
	t.Consume(c)
	t.Scratch.LabelText = t.Scratch.LabelText[:0]
	t.EnterWithContent(event.DefinitionLabelString, event.String)
	return tokenizer.ContinueWith(definitionLabelInside), nil
}

func definitionLabelInside(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if c.Is(']') {
		t.Exit(event.DefinitionLabelString)
		t.Consume(c)
		t.Exit(event.DefinitionLabel)
		return tokenizer.ContinueWith(definitionAfterLabel), nil
	}
	if c.IsEOF() || c.Is('[') {
		t.Exit(event.DefinitionLabelString)
		t.Exit(event.DefinitionLabel)
		t.Exit(event.Definition)
		return tokenizer.NokResult, []code.Code{c}
	}
	if c.Kind == code.Char {
		t.Scratch.LabelText = append(t.Scratch.LabelText, c.Char)
	}
	t.Consume(c)
	return tokenizer.ContinueWith(definitionLabelInside), nil
}

func definitionAfterLabel(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if !c.Is(':') {
		t.Exit(event.Definition)
		return tokenizer.NokResult, []code.Code{c}
	}
	t.Consume(c)
	return tokenizer.ContinueWith(t.AttemptOpt(construct.SpaceOrTabEOL(), definitionDestinationStart)), nil
}

func definitionDestinationStart(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if c.Is('<') {
		t.Enter(event.DefinitionDestination)
		t.Consume(c)
		t.EnterWithContent(event.DefinitionDestinationString, event.String)
		return tokenizer.ContinueWith(definitionDestinationBracketed), nil
	}
	if c.IsEOF() || c.IsSpaceOrTab() || c.IsLineEnding() {
		t.Exit(event.Definition)
		return tokenizer.NokResult, []code.Code{c}
	}
	t.Enter(event.DefinitionDestination)
	t.EnterWithContent(event.DefinitionDestinationString, event.String)
	t.Consume(c)
	return tokenizer.ContinueWith(definitionDestinationBare), nil
}

func definitionDestinationBracketed(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if c.Is('>') {
		t.Exit(event.DefinitionDestinationString)
		t.Consume(c)
		t.Exit(event.DefinitionDestination)
		return tokenizer.ContinueWith(definitionAfterDestination), nil
	}
	if c.IsEOF() || c.IsLineEnding() {
		t.Exit(event.DefinitionDestinationString)
		t.Exit(event.DefinitionDestination)
		t.Exit(event.Definition)
		return tokenizer.NokResult, []code.Code{c}
	}
	t.Consume(c)
	return tokenizer.ContinueWith(definitionDestinationBracketed), nil
}

func definitionDestinationBare(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if c.IsEOF() || c.IsSpaceOrTab() || c.IsLineEnding() {
		t.Exit(event.DefinitionDestinationString)
		t.Exit(event.DefinitionDestination)
		return definitionAfterDestination(t, c)
	}
	t.Consume(c)
	return tokenizer.ContinueWith(definitionDestinationBare), nil
}

func definitionAfterDestination(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	return t.AttemptOpt(construct.SpaceOrTabEOL(), definitionAfterDestinationSpace)(t, c)
}

func definitionAfterDestinationSpace(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if c.Is('"', '\'', '(') {
		return definitionTitleStart(t, c)
	}
	return definitionEnd(t, c)
}

var definitionTitleCloser = map[rune]rune{'"': '"', '\'': '\'', '(': ')'}

func definitionTitleStart(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	closer := definitionTitleCloser[c.Char]
	t.Enter(event.DefinitionTitle)
	t.Consume(c)
	t.EnterWithContent(event.DefinitionTitleString, event.String)
	return tokenizer.ContinueWith(func(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
		return definitionTitleInside(t, c, closer)
	}), nil
}

func definitionTitleInside(t *tokenizer.Tokenizer, c code.Code, closer rune) (tokenizer.Result, []code.Code) {
	if c.Is(closer) {
		t.Exit(event.DefinitionTitleString)
		t.Consume(c)
		t.Exit(event.DefinitionTitle)
		return tokenizer.ContinueWith(definitionEndTail), nil
	}
	if c.IsEOF() {
		t.Exit(event.DefinitionTitleString)
		t.Exit(event.DefinitionTitle)
		t.Exit(event.Definition)
		return tokenizer.NokResult, []code.Code{c}
	}
	t.Consume(c)
	return tokenizer.ContinueWith(func(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
		return definitionTitleInside(t, c, closer)
	}), nil
}

func definitionEndTail(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	return t.AttemptOpt(construct.SpaceOrTabMinMax(0, construct.Unbounded), definitionEnd)(t, c)
}

func definitionEnd(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if !(c.IsLineEnding() || c.IsEOF()) {
		t.Exit(event.Definition)
		return tokenizer.NokResult, []code.Code{c}
	}
	name := strings.ToLower(strings.TrimSpace(string(t.Scratch.LabelText)))
	t.ParseState().Definitions[name] = struct{}{}
	if c.IsLineEnding() {
		t.Enter(event.LineEnding)
		t.Consume(c)
		t.Exit(event.LineEnding)
		t.Exit(event.Definition)
		return tokenizer.OkResult, nil
	}
	t.Exit(event.Definition)
	return tokenizer.OkResult, []code.Code{c}
}
