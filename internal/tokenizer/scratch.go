package tokenizer

import "github.com/jcorbin/mdcore/internal/event"

// Scratch is the tokenizer's per-construct catch-all scratch storage,
// spec.md §3/§9's `tokenize_state`: a single mutable struct with one field
// (or small group of fields) per stateful construct family, kept as a
// plain value type so attempt/check can snapshot it by copying the struct.
//
// Nearly all fields are primitive; the one slice (LabelText) is deep-copied
// by the snapshot so a restore never aliases it. Nothing here is a pointer
// into Events, Codes, or another construct's state.
type Scratch struct {
	// space_or_tab / space_or_tab_eol (internal/construct)
	SpaceOrTabSize        int
	SpaceOrTabMin         int
	SpaceOrTabMax         int
	SpaceOrTabKind        event.TokenType
	SpaceOrTabContentType event.ContentType
	SpaceOrTabHasContent  bool
	SpaceOrTabConnect     bool
	SpaceOrTabEOLConnect  bool
	SpaceOrTabEOLOk       bool

	// thematic break / ATX heading / setext underline (internal/construct/flow)
	MarkerDelim  rune
	MarkerCount  int
	MarkerIndent int

	// ATX/setext heading level
	HeadingLevel int

	// paragraph-turned-heading tracking (internal/construct/flow): the open
	// paragraph's Enter index and current token kind, so a later setext
	// underline can Retype it without the paragraph construct itself
	// needing to know setext exists.
	ParagraphIndex int
	ParagraphKind  event.TokenType

	// fenced code (internal/construct/flow)
	FenceDelim  rune
	FenceSize   int
	FenceIndent int

	// list item / block quote (internal/construct/flow)
	ListDelim      rune
	ListOrdered    bool
	ListItemWidth  int
	ListItemIndent int
	BlockQuoteSize int

	// definition / label (internal/construct/flow, internal/construct/text)
	LabelBalance int
	LabelSize    int
	LabelText    []rune

	// character reference (internal/construct/string, internal/construct/text)
	CharRefNumeric bool
	CharRefHex     bool
	CharRefSize    int

	// line break hard/soft detection (internal/construct/flow)
	TrailingSpaces int
}
