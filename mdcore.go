// Package mdcore is the public façade over the tokenizer engine: it
// re-exports the value types an external renderer needs (Code, Point,
// Event, TokenType, ContentType) and the single Parse entry point.
//
// Per spec.md §1, stringly-typed options and HTML rendering from events are
// explicitly out of scope here -- those belong to an external collaborator
// (cmd/mdcoredump plays that role for inspection and debugging).
package mdcore

import (
	"github.com/jcorbin/mdcore/internal/code"
	"github.com/jcorbin/mdcore/internal/event"
	"github.com/jcorbin/mdcore/internal/parser"
)

// Code is one element of the parser's normalized input alphabet.
type Code = code.Code

// Point is a position within a Code sequence.
type Point = code.Point

// Event is one immutable Enter/Exit marker in the tokenizer's output log.
type Event = event.Event

// TokenType is the closed enumeration of markdown token kinds.
type TokenType = event.TokenType

// ContentType distinguishes the string and text inline root grammars.
type ContentType = event.ContentType

// Re-exported TokenType values an external renderer switches on.
const (
	Document                   = event.Document
	LineEnding                 = event.LineEnding
	SpaceOrTab                 = event.SpaceOrTab
	BlankLineEnding            = event.BlankLineEnding
	Paragraph                  = event.Paragraph
	ChunkText                  = event.ChunkText
	Heading                    = event.Heading
	HeadingAtxSequence         = event.HeadingAtxSequence
	HeadingSetextUnderline     = event.HeadingSetextUnderline
	ThematicBreak              = event.ThematicBreak
	CodeIndented               = event.CodeIndented
	CodeFenced                 = event.CodeFenced
	CodeFencedFence            = event.CodeFencedFence
	CodeFencedFenceSequence    = event.CodeFencedFenceSequence
	CodeFencedFenceInfo        = event.CodeFencedFenceInfo
	CodeFlowChunk              = event.CodeFlowChunk
	BlockQuote                 = event.BlockQuote
	BlockQuoteMarker           = event.BlockQuoteMarker
	ListOrdered                = event.ListOrdered
	ListUnordered              = event.ListUnordered
	ListItem                   = event.ListItem
	ListItemMarker             = event.ListItemMarker
	ListItemPrefix             = event.ListItemPrefix
	Definition                 = event.Definition
	DefinitionLabel            = event.DefinitionLabel
	DefinitionLabelString      = event.DefinitionLabelString
	DefinitionDestination      = event.DefinitionDestination
	DefinitionDestinationString = event.DefinitionDestinationString
	DefinitionTitle            = event.DefinitionTitle
	DefinitionTitleString      = event.DefinitionTitleString
	ChunkString                = event.ChunkString
	Data                       = event.Data
	CharacterEscape            = event.CharacterEscape
	CharacterEscapeValue       = event.CharacterEscapeValue
	CharacterReference         = event.CharacterReference
	CharacterReferenceValue    = event.CharacterReferenceValue
	LineBreakHard              = event.LineBreakHard
	LineBreakSoft              = event.LineBreakSoft
	LabelLink                  = event.LabelLink
	Label                      = event.Label

	String = event.String
	Text   = event.Text

	Enter = event.Enter
	Exit  = event.Exit
)

// Parse tokenizes src into its flat event log and normalized code sequence,
// driving the flow pass followed by as many sub-tokenization passes as
// needed to resolve every nested content chain (spec.md §4.3).
func Parse(src string) (events []Event, codes []Code) {
	return parser.Parse(src)
}
