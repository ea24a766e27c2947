package subtokenize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/mdcore/internal/code"
	stringconstruct "github.com/jcorbin/mdcore/internal/construct/string"
	"github.com/jcorbin/mdcore/internal/event"
	"github.com/jcorbin/mdcore/internal/subtokenize"
	"github.com/jcorbin/mdcore/internal/tokenizer"
)

func stringRoot(ct event.ContentType) tokenizer.StateFn {
	if ct != event.String {
		panic("subtokenize_test: only String content is exercised here")
	}
	return stringconstruct.Root
}

func chunkStringChain(kind event.TokenType, codes []code.Code) []event.Event {
	return []event.Event{
		{
			Type:  event.Enter,
			Token: kind,
			Point: code.Point{Line: 1, Column: 1, Index: 0},
			Link:  &event.Link{Previous: event.NoIndex, Next: event.NoIndex, ContentType: event.String},
		},
		{
			Type:  event.Exit,
			Token: kind,
			Point: code.Point{Line: 1, Column: 1, Index: len(codes)},
		},
	}
}

func TestSubtokenizeResolvesSingleSpanChunk(t *testing.T) {
	codes := code.FromString(`a&amp;b`)
	ps := tokenizer.NewParseState(codes)
	events := chunkStringChain(event.ChunkString, codes)

	resolved, done := subtokenize.Subtokenize(events, ps, stringRoot)
	require.True(t, done, "a chunk with no nested Link content resolves in a single pass")

	var sawData, sawCharRef, sawChunkString bool
	for _, ev := range resolved {
		switch ev.Token {
		case event.Data:
			sawData = true
		case event.CharacterReference:
			sawCharRef = true
		case event.ChunkString:
			sawChunkString = true
		}
	}
	assert.True(t, sawData)
	assert.True(t, sawCharRef)
	assert.False(t, sawChunkString, "ChunkString must be replaced by its resolved subevents")
}

func TestSubtokenizeBridgesTwoMemberChainViaDefineSkip(t *testing.T) {
	// Two non-contiguous spans of the same chain, as paragraph lines are
	// linked across their intervening eol (spec.md §4.3): "ab" then "cd",
	// with an untokenized gap between them in the shared Code vector.
	codes := code.FromString("ab\ncd")
	ps := tokenizer.NewParseState(codes)

	head := event.Event{
		Type:  event.Enter,
		Token: event.ChunkString,
		Point: code.Point{Line: 1, Column: 1, Index: 0},
		Link:  &event.Link{Previous: event.NoIndex, Next: 2, ContentType: event.String},
	}
	headExit := event.Event{Type: event.Exit, Token: event.ChunkString, Point: code.Point{Line: 1, Column: 3, Index: 2}}
	member := event.Event{
		Type:  event.Enter,
		Token: event.ChunkString,
		Point: code.Point{Line: 2, Column: 1, Index: 3},
		Link:  &event.Link{Previous: 0, Next: event.NoIndex, ContentType: event.String},
	}
	memberExit := event.Event{Type: event.Exit, Token: event.ChunkString, Point: code.Point{Line: 2, Column: 3, Index: 5}}

	events := []event.Event{head, headExit, member, memberExit}
	resolved, done := subtokenize.Subtokenize(events, ps, stringRoot)
	require.True(t, done)

	n := 0
	for _, ev := range resolved {
		if ev.Type == event.Enter && ev.Token == event.Data {
			n++
		}
	}
	assert.Equal(t, 2, n, "each member's span resolves to its own Data run")
}
