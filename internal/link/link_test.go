package link_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/mdcore/internal/event"
	"github.com/jcorbin/mdcore/internal/link"
)

func voidPair(tok event.TokenType) []event.Event {
	return []event.Event{
		{Type: event.Enter, Token: tok, Link: &event.Link{Previous: event.NoIndex, Next: event.NoIndex, ContentType: event.Text}},
		{Type: event.Exit, Token: tok},
	}
}

func TestToWiresChain(t *testing.T) {
	events := append(voidPair(event.ChunkText), voidPair(event.ChunkText)...)

	link.To(events, 0, 2)

	assert.Equal(t, 2, events[0].Link.Next)
	assert.Equal(t, 0, events[2].Link.Previous)
	assert.True(t, events[0].Link.HasNext())
	assert.True(t, events[2].Link.HasPrevious())
	assert.False(t, events[0].Link.HasPrevious())
	assert.False(t, events[2].Link.HasNext())
}

func TestLinkSugarUsesIndexMinusTwo(t *testing.T) {
	events := append(voidPair(event.ChunkText), voidPair(event.ChunkText)...)

	link.Link(events, 2)

	assert.Equal(t, 2, events[0].Link.Next)
	assert.Equal(t, 0, events[2].Link.Previous)
}

func TestToPanicsOnMismatchedContentType(t *testing.T) {
	events := append(voidPair(event.ChunkText), voidPair(event.ChunkText)...)
	events[2].Link.ContentType = event.String

	assert.Panics(t, func() { link.To(events, 0, 2) })
}

func TestToPanicsOnNonVoidEnter(t *testing.T) {
	events := []event.Event{
		{Type: event.Enter, Token: event.ChunkText, Link: &event.Link{Previous: event.NoIndex, Next: event.NoIndex}},
		{Type: event.Enter, Token: event.Paragraph},
	}
	assert.Panics(t, func() { link.To(events, 0, 1) })
}

func TestMustVoidEnterRequiresMatchingExitToken(t *testing.T) {
	events := []event.Event{
		{Type: event.Enter, Token: event.ChunkText, Link: &event.Link{}},
		{Type: event.Exit, Token: event.Paragraph},
	}
	require.Panics(t, func() { link.To(events, 0, 0) })
}
