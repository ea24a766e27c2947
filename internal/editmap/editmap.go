// Package editmap implements the deferred patch log described by spec.md
// §4.4: a set of (index, remove, inserts) edits over an Event slice,
// flushed in a single left-to-right rebuild pass.
package editmap

import (
	"fmt"
	"sort"

	"github.com/jcorbin/mdcore/internal/event"
)

type patch struct {
	index   int
	remove  int
	inserts []event.Event
}

// EditMap accumulates patches against an event slice and applies them all
// in one pass. It is used exactly once per subtokenize.Subtokenize call and
// then discarded.
type EditMap struct {
	patches []patch
	byIndex map[int]int // index into patches, for coalescing same-index adds
}

// Add schedules a patch: remove `remove` events starting at `index`, and
// insert `inserts` in their place. Multiple adds at the same index coalesce
// their insertion lists (inserts are appended in call order). Overlapping
// patches at different, non-identical indices are an invariant violation;
// Consume panics on them -- they should never be reachable from a correct
// resolver pass.
func (m *EditMap) Add(index, remove int, inserts []event.Event) {
	if m.byIndex == nil {
		m.byIndex = make(map[int]int)
	}
	if pi, ok := m.byIndex[index]; ok {
		p := &m.patches[pi]
		if p.remove != remove {
			panic(fmt.Sprintf("editmap: conflicting remove counts at index %d: %d vs %d", index, p.remove, remove))
		}
		p.inserts = append(p.inserts, inserts...)
		return
	}
	m.byIndex[index] = len(m.patches)
	m.patches = append(m.patches, patch{index: index, remove: remove, inserts: append([]event.Event(nil), inserts...)})
}

// Consume applies all scheduled patches to events, in ascending index
// order, and returns the rebuilt slice. It enforces that patch windows do
// not overlap: that invariant violation panics rather than silently
// corrupting the log.
func (m *EditMap) Consume(events []event.Event) []event.Event {
	if len(m.patches) == 0 {
		return events
	}

	sort.Slice(m.patches, func(i, j int) bool { return m.patches[i].index < m.patches[j].index })

	out := make([]event.Event, 0, len(events))
	cursor := 0
	prevEnd := -1
	for _, p := range m.patches {
		if p.index < cursor {
			panic(fmt.Sprintf("editmap: overlapping patch at index %d (cursor already at %d)", p.index, cursor))
		}
		if p.index < prevEnd {
			panic(fmt.Sprintf("editmap: overlapping patch windows ending at %d, next starts at %d", prevEnd, p.index))
		}
		out = append(out, events[cursor:p.index]...)
		out = append(out, p.inserts...)
		cursor = p.index + p.remove
		prevEnd = cursor
	}
	out = append(out, events[cursor:]...)
	return out
}

// Len reports how many patches are currently scheduled.
func (m *EditMap) Len() int { return len(m.patches) }
