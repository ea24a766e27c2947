// Package link implements spec.md §4.5: wiring two void, link-bearing
// Enter events together into a chain that the sub-tokenization resolver
// will later feed through an inline tokenizer as one logical stream.
//
// It is deliberately a leaf package (it depends only on internal/event) so
// that both internal/construct (which links adjacent whitespace/content
// chunks as it emits them) and internal/subtokenize (which walks and
// rewrites chains) can depend on it without a cycle.
package link

import "github.com/jcorbin/mdcore/internal/event"

// Link connects the most recently closed void link-bearing event (at
// index-2, index-1) to the new one at index. It is sugar for
// LinkTo(events, index-2, index).
func Link(events []event.Event, index int) {
	To(events, index-2, index)
}

// To links two arbitrary void, link-bearing events together: a's Link.Next
// becomes b, and b's Link.Previous becomes a. Both must be Enter events, a
// must be immediately followed by its own Exit of the same token type (b
// may still be open), both must carry non-nil Link metadata, and their ContentType must match -- all
// invariant violations here indicate a programming error in a construct
// and panic rather than silently producing a malformed chain.
func To(events []event.Event, a, b int) {
	mustVoidEnter(events, a)
	if events[b].Type != event.Enter {
		panic("link: b is not an Enter event")
	}
	// Note: b's Exit may not exist yet (it is still open), so it is not
	// checked here.

	la := events[a].Link
	if la == nil {
		panic("link: a has no Link metadata")
	}
	lb := events[b].Link
	if lb == nil {
		panic("link: b has no Link metadata")
	}
	if la.ContentType != lb.ContentType {
		panic("link: a and b have mismatched ContentType")
	}

	la.Next = b
	lb.Previous = a
}

func mustVoidEnter(events []event.Event, i int) {
	if events[i].Type != event.Enter {
		panic("link: a is not an Enter event")
	}
	if i+1 >= len(events) || events[i+1].Type != event.Exit || events[i+1].Token != events[i].Token {
		panic("link: a is not a void Enter/Exit pair")
	}
}
