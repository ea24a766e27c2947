// Package parser wires the flow/string/text construct families together
// with the tokenizer runtime and the sub-tokenization resolver into the
// single Parse entry point: drive flow across the whole document, then
// resolve string/text content chains to a fixed point.
package parser

import (
	"github.com/jcorbin/mdcore/internal/code"
	"github.com/jcorbin/mdcore/internal/construct/flow"
	stringconstruct "github.com/jcorbin/mdcore/internal/construct/string"
	"github.com/jcorbin/mdcore/internal/construct/text"
	"github.com/jcorbin/mdcore/internal/event"
	"github.com/jcorbin/mdcore/internal/subtokenize"
	"github.com/jcorbin/mdcore/internal/tokenizer"
)

// root resolves a ContentType to its inline entry state function. It is the
// concrete Root value internal/subtokenize is driven with, kept here (not
// in internal/subtokenize itself) to avoid that package depending sideways
// on internal/construct/{string,text}.
func root(ct event.ContentType) tokenizer.StateFn {
	switch ct {
	case event.String:
		return stringconstruct.Root
	case event.Text:
		return text.Root
	default:
		panic("parser: unknown content type")
	}
}

// Parse tokenizes src per spec.md §4.3's two-pass pipeline: a single flow
// pass over the whole document, followed by as many subtokenize passes as
// it takes to resolve every nested content chain, one nesting level per
// pass, outermost first.
func Parse(src string) (events []event.Event, codes []code.Code) {
	codes = code.FromString(src)
	ps := tokenizer.NewParseState(codes)

	t := tokenizer.New(code.Point{Line: 1, Column: 1}, ps)
	t.Push(codes, flow.Root, true)
	result, done := t.Done()
	if !done || result.State != tokenizer.Ok {
		panic("parser: flow pass did not reach Ok")
	}
	events = t.Events

	for {
		resolved, done := subtokenize.Subtokenize(events, ps, root)
		events = resolved
		if done {
			break
		}
	}
	return events, codes
}
