package editmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/mdcore/internal/editmap"
	"github.com/jcorbin/mdcore/internal/event"
)

func tok(t event.TokenType) event.Event { return event.Event{Type: event.Enter, Token: t} }

func TestConsumeNoPatchesReturnsInput(t *testing.T) {
	events := []event.Event{tok(event.Data), tok(event.Data)}
	var m editmap.EditMap
	assert.Equal(t, events, m.Consume(events))
}

func TestConsumeSingleReplace(t *testing.T) {
	events := []event.Event{tok(event.Data), tok(event.ChunkText), tok(event.Paragraph)}
	var m editmap.EditMap
	m.Add(1, 1, []event.Event{tok(event.CharacterEscape), tok(event.CharacterEscapeValue)})

	got := m.Consume(events)
	want := []event.Event{tok(event.Data), tok(event.CharacterEscape), tok(event.CharacterEscapeValue), tok(event.Paragraph)}
	assert.Equal(t, want, got)
}

func TestAddCoalescesSameIndex(t *testing.T) {
	events := []event.Event{tok(event.Data), tok(event.ChunkText), tok(event.Paragraph)}
	var m editmap.EditMap
	m.Add(1, 1, []event.Event{tok(event.CharacterEscape)})
	m.Add(1, 1, []event.Event{tok(event.CharacterEscapeValue)})

	assert.Equal(t, 1, m.Len())
	got := m.Consume(events)
	want := []event.Event{tok(event.Data), tok(event.CharacterEscape), tok(event.CharacterEscapeValue), tok(event.Paragraph)}
	assert.Equal(t, want, got)
}

func TestAddConflictingRemoveCountsPanics(t *testing.T) {
	var m editmap.EditMap
	m.Add(1, 1, nil)
	assert.Panics(t, func() { m.Add(1, 2, nil) })
}

func TestConsumeOutOfOrderPatchesStillApplyInIndexOrder(t *testing.T) {
	events := []event.Event{tok(event.Data), tok(event.ChunkText), tok(event.Data), tok(event.ChunkText)}
	var m editmap.EditMap
	m.Add(3, 1, []event.Event{tok(event.CharacterReferenceValue)})
	m.Add(1, 1, []event.Event{tok(event.CharacterEscapeValue)})

	got := m.Consume(events)
	want := []event.Event{tok(event.Data), tok(event.CharacterEscapeValue), tok(event.Data), tok(event.CharacterReferenceValue)}
	assert.Equal(t, want, got)
}

func TestConsumeOverlappingPatchesPanics(t *testing.T) {
	events := []event.Event{tok(event.Data), tok(event.ChunkText), tok(event.Paragraph)}
	var m editmap.EditMap
	m.Add(0, 2, []event.Event{tok(event.CharacterEscape)})
	m.Add(1, 1, []event.Event{tok(event.CharacterReference)})

	assert.Panics(t, func() { m.Consume(events) })
}
