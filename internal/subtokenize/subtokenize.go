// Package subtokenize implements spec.md §4.3: threading linked
// content-bearing tokens (chunk-string and chunk-text spans) through a
// second, inline-level tokenizer pass, and splicing the resulting subevents
// back into the flat flow-level event log via an EditMap.
//
// subtokenize must be invoked repeatedly by the caller until it reports
// done; each pass can only resolve one level of nesting (text inside
// string inside flow), because a deeper level's own links are only
// discovered once its containing level has itself been tokenized.
package subtokenize

import (
	"github.com/jcorbin/mdcore/internal/code"
	"github.com/jcorbin/mdcore/internal/editmap"
	"github.com/jcorbin/mdcore/internal/event"
	"github.com/jcorbin/mdcore/internal/tokenizer"
)

// Root resolves a ContentType to the inline tokenizer entry state function
// for that root grammar. internal/parser supplies the concrete string/text
// root state functions so that this package does not itself depend on
// internal/construct/{string,text} -- keeping the dependency direction
// pointing from parser down to subtokenize, not sideways.
type Root func(ct event.ContentType) tokenizer.StateFn

// Subtokenize performs one resolution pass over events, as described by
// spec.md §4.3's nine steps. It returns the rewritten events and done =
// true once no subevent introduced a further link, meaning no more passes
// are needed.
func Subtokenize(events []event.Event, ps *tokenizer.ParseState, root Root) (result []event.Event, done bool) {
	var m editmap.EditMap
	done = true

	for index := 0; index < len(events); index++ {
		ev := events[index]
		if ev.Link == nil {
			continue
		}
		if ev.Type != event.Enter {
			panic("subtokenize: Link present on a non-Enter event")
		}
		// Only chain heads start a sub-tokenizer; non-head members are
		// visited as part of walking the chain from its head.
		if ev.Link.HasPrevious() {
			continue
		}

		cr := runChain(events, index, ps, root)
		if cr.introducedLink {
			done = false
		}
		for i := len(cr.slices) - 1; i >= 0; i-- {
			s := cr.slices[i]
			m.Add(s.memberIndex, 2, cr.subevents[s.start:s.end])
		}
	}

	result = m.Consume(events)
	return result, done
}

type slice struct {
	memberIndex int // index in the outer events slice of this chain member's Enter
	start, end  int // bounds within subevents
}

type chainResult struct {
	subevents      []event.Event
	slices         []slice
	introducedLink bool
}

// runChain feeds every member of the chain headed at headIndex through a
// fresh sub-tokenizer, in order -- bridging the gap between non-contiguous
// members with DefineSkip -- then partitions the resulting subevents back
// into per-member slices.
func runChain(events []event.Event, headIndex int, ps *tokenizer.ParseState, root Root) chainResult {
	head := events[headIndex]
	sub := tokenizer.New(head.Point, ps)
	start := root(head.Link.ContentType)

	linkIndex := headIndex
	first := true
	for {
		enter := events[linkIndex]
		exit := events[linkIndex+1]
		spanCodes := spanOf(ps.Codes, enter.Point.Index, exit.Point.Index)

		if !first {
			sub.DefineSkip(enter.Point)
		}
		first = false

		eof := enter.Link.Next == event.NoIndex
		sub.Push(spanCodes, start, eof)
		if res, done := sub.Done(); !done && res.State == tokenizer.Again {
			start = res.Next
		}

		if enter.Link.Next == event.NoIndex {
			break
		}
		linkIndex = enter.Link.Next
	}

	return partition(events, headIndex, sub.Events)
}

func spanOf(codes []code.Code, start, end int) []code.Code {
	if start < 0 {
		start = 0
	}
	if end > len(codes) {
		end = len(codes)
	}
	if end < start {
		end = start
	}
	return codes[start:end]
}

// partition walks the produced subevents, determining which member of the
// source chain each one belongs to (by comparing Enter positions against
// each member's Exit position), and applies the index-shift arithmetic of
// spec.md §4.3 step 7 to any deeper links a subevent still carries: a
// deeper link's Next/Previous indices are local to this sub-tokenizer's own
// event vector, and must be translated into the indices they will occupy
// once this chain's slices are spliced into the outer vector.
func partition(events []event.Event, headIndex int, subevents []event.Event) chainResult {
	var cr chainResult
	cr.subevents = subevents

	linkIndex := headIndex
	sliceStart := 0

	for subindex := 0; subindex < len(subevents); subindex++ {
		sub := &subevents[subindex]

		if sub.Type == event.Enter && sub.Point.Index >= events[linkIndex+1].Point.Index {
			cr.slices = append(cr.slices, slice{memberIndex: linkIndex, start: sliceStart, end: subindex})
			sliceStart = subindex
			linkIndex = events[linkIndex].Link.Next
		}

		if sub.Link != nil {
			cr.introducedLink = true

			if sub.Link.HasNext() {
				next := sub.Link.Next
				shift := linkIndex - len(cr.slices)*2
				sub.Link.Next = next + shift
				nextEv := &subevents[next]
				nextEv.Link.Previous = nextEv.Link.Previous + shift
			}
		}
	}

	cr.slices = append(cr.slices, slice{memberIndex: linkIndex, start: sliceStart, end: len(subevents)})
	return cr
}
