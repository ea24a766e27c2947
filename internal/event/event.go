// Package event defines the tokenizer's append-only output log: immutable
// Enter/Exit markers, the closed enumeration of markdown token kinds, and
// the Link metadata that threads non-contiguous content chunks together for
// the sub-tokenization resolver.
package event

import (
	"fmt"

	"github.com/jcorbin/mdcore/internal/code"
)

// Type discriminates Enter from Exit.
type Type int

// Type values.
const (
	Enter Type = iota
	Exit
)

// Format implements fmt.Formatter.
func (t Type) Format(f fmt.State, _ rune) {
	if t == Enter {
		fmt.Fprint(f, "Enter")
	} else {
		fmt.Fprint(f, "Exit")
	}
}

// TokenType is the closed enumeration of markdown kinds events can carry.
// It is deliberately a flat int enum (not a string), per spec.md §9's
// preference for tagged variants over dynamic dispatch.
type TokenType int

// TokenType values. Construct packages only ever append to this list; the
// engine itself never switches on them: sub-tokenization finds its chunks
// (ChunkString, ChunkText) by their attached Link, not by their kind.
const (
	Document TokenType = iota
	LineEnding
	SpaceOrTab
	BlankLineEnding

	Paragraph
	ChunkText // content-bearing: void Enter/Exit wraps text-context content

	Heading
	HeadingAtxSequence
	HeadingSetextUnderline

	ThematicBreak

	CodeIndented
	CodeFenced
	CodeFencedFence
	CodeFencedFenceSequence
	CodeFencedFenceInfo
	CodeFlowChunk

	BlockQuote
	BlockQuoteMarker

	ListOrdered
	ListUnordered
	ListItem
	ListItemMarker
	ListItemPrefix

	Definition
	DefinitionLabel
	DefinitionLabelString // content-bearing: void Enter/Exit wraps string-context content
	DefinitionDestination
	DefinitionDestinationString
	DefinitionTitle
	DefinitionTitleString // content-bearing

	ChunkString // content-bearing, generic (escapes/char-refs inside string context)

	Data
	CharacterEscape
	CharacterEscapeValue
	CharacterReference
	CharacterReferenceValue
	LineBreakHard
	LineBreakSoft

	LabelLink
	LabelText
	LabelImage
	Label
	Resource
	ResourceDestination
	ResourceDestinationString
	ResourceTitle
	ResourceTitleString
)

// Format implements fmt.Formatter, giving each TokenType a readable name
// (mirroring scandown's BlockType.Format texture).
func (t TokenType) Format(f fmt.State, _ rune) {
	name, ok := tokenTypeNames[t]
	if !ok {
		fmt.Fprintf(f, "TokenType(%d)", int(t))
		return
	}
	fmt.Fprint(f, name)
}

var tokenTypeNames = map[TokenType]string{
	Document:                     "Document",
	LineEnding:                   "LineEnding",
	SpaceOrTab:                   "SpaceOrTab",
	BlankLineEnding:              "BlankLineEnding",
	Paragraph:                    "Paragraph",
	ChunkText:                    "ChunkText",
	Heading:                      "Heading",
	HeadingAtxSequence:           "HeadingAtxSequence",
	HeadingSetextUnderline:       "HeadingSetextUnderline",
	ThematicBreak:                "ThematicBreak",
	CodeIndented:                 "CodeIndented",
	CodeFenced:                   "CodeFenced",
	CodeFencedFence:              "CodeFencedFence",
	CodeFencedFenceSequence:      "CodeFencedFenceSequence",
	CodeFencedFenceInfo:          "CodeFencedFenceInfo",
	CodeFlowChunk:                "CodeFlowChunk",
	BlockQuote:                   "BlockQuote",
	BlockQuoteMarker:             "BlockQuoteMarker",
	ListOrdered:                  "ListOrdered",
	ListUnordered:                "ListUnordered",
	ListItem:                     "ListItem",
	ListItemMarker:               "ListItemMarker",
	ListItemPrefix:               "ListItemPrefix",
	Definition:                   "Definition",
	DefinitionLabel:              "DefinitionLabel",
	DefinitionLabelString:        "DefinitionLabelString",
	DefinitionDestination:        "DefinitionDestination",
	DefinitionDestinationString:  "DefinitionDestinationString",
	DefinitionTitle:              "DefinitionTitle",
	DefinitionTitleString:        "DefinitionTitleString",
	ChunkString:                  "ChunkString",
	Data:                         "Data",
	CharacterEscape:              "CharacterEscape",
	CharacterEscapeValue:         "CharacterEscapeValue",
	CharacterReference:          "CharacterReference",
	CharacterReferenceValue:      "CharacterReferenceValue",
	LineBreakHard:                "LineBreakHard",
	LineBreakSoft:                "LineBreakSoft",
	LabelLink:                    "LabelLink",
	LabelText:                    "LabelText",
	LabelImage:                   "LabelImage",
	Label:                        "Label",
	Resource:                     "Resource",
	ResourceDestination:          "ResourceDestination",
	ResourceDestinationString:    "ResourceDestinationString",
	ResourceTitle:                "ResourceTitle",
	ResourceTitleString:          "ResourceTitleString",
}

// ContentType distinguishes the two inline root grammars that a linked
// content chain is fed through by the resolver.
type ContentType int

// ContentType values.
const (
	String ContentType = iota + 1
	Text
)

// Format implements fmt.Formatter.
func (c ContentType) Format(f fmt.State, _ rune) {
	switch c {
	case String:
		fmt.Fprint(f, "String")
	case Text:
		fmt.Fprint(f, "Text")
	default:
		fmt.Fprintf(f, "ContentType(%d)", int(c))
	}
}

// Link attaches to a void Enter event (one whose matching Exit is the very
// next event) to mark it as a member of a content chain that must later be
// fed through a sub-tokenizer as one logical stream.
type Link struct {
	Previous    int // index into the owning Event slice, or -1
	Next        int // index into the owning Event slice, or -1
	ContentType ContentType
}

// HasPrevious reports whether the link has a previous chain member.
func (l *Link) HasPrevious() bool { return l != nil && l.Previous >= 0 }

// HasNext reports whether the link has a next chain member.
func (l *Link) HasNext() bool { return l != nil && l.Next >= 0 }

// Event is one immutable marker in the tokenizer's output log.
type Event struct {
	Type      Type
	Token     TokenType
	Point     code.Point
	Link      *Link // only ever set on Enter events
}

// Format implements fmt.Formatter, a terse "Enter(Paragraph)@1:1" style by
// default and a verbose form carrying link info under %+v, continuing the
// teacher's Format-method texture for debug-facing types.
func (e Event) Format(f fmt.State, verb rune) {
	fmt.Fprintf(f, "%v(%v)@%v", e.Type, e.Token, e.Point)
	if f.Flag('+') && e.Link != nil {
		fmt.Fprintf(f, " link{prev=%d next=%d type=%v}", e.Link.Previous, e.Link.Next, e.Link.ContentType)
	}
}

// NoIndex is the sentinel used in Link.Previous/Next for "no such member".
const NoIndex = -1
