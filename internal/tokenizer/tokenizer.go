// Package tokenizer implements the backtracking trampoline runtime of
// spec.md §4.2: a Tokenizer advances through a Code stream by invoking one
// pluggable state function per code, composing them with attempt/check
// combinators that snapshot and restore all tokenizer-owned state.
package tokenizer

import (
	"fmt"

	"github.com/jcorbin/mdcore/internal/code"
	"github.com/jcorbin/mdcore/internal/event"
)

// State is the outcome a StateFn reports for the current step.
type State int

// State values.
const (
	// Again means "call Result.Next with the next code"; the construct is
	// not yet finished.
	Again State = iota
	// Ok means the construct matched.
	Ok
	// Nok means the construct did not match; this is the sole failure
	// signal and is expected, not exceptional (spec.md §7).
	Nok
)

// Result is what a StateFn returns for the current step.
type Result struct {
	State State
	Next  StateFn // valid iff State == Again
}

// ContinueWith returns a Result that continues with next on the following code.
func ContinueWith(next StateFn) Result { return Result{State: Again, Next: next} }

// OkResult is the terminal "matched" Result.
var OkResult = Result{State: Ok}

// NokResult is the terminal "did not match" Result.
var NokResult = Result{State: Nok}

// StateFn is one step of the trampoline: given the tokenizer and the
// current code, it performs at most one Consume, any number of
// Enter/Exit/attempt/check calls, and returns either a continuation
// (Again) or a terminal verdict (Ok/Nok). When it returns Ok or Nok without
// having consumed the code it was given, it must return that code as its
// single-element remainder so the driving loop replays it to whatever
// state runs next.
type StateFn func(t *Tokenizer, c code.Code) (Result, []code.Code)

// ParseState is the immutable-after-construction context shared by every
// Tokenizer created during one parse: the full Code vector (read-only
// borrowed data, per spec.md §5) and cross-construct bookkeeping that must
// be visible across the two-pass flow/inline boundary -- concretely, the
// set of link reference definition labels discovered during the flow pass,
// which the text/string inline pass consults during sub-tokenization.
type ParseState struct {
	Codes []code.Code

	// Definitions holds the case-folded identifiers of every link
	// reference definition seen during the flow pass. It is written only
	// by the flow definition construct and only read once flow parsing
	// (and therefore the entire set of definitions) is complete, honoring
	// the two-pass rationale of spec.md §4.3.
	Definitions map[string]struct{}
}

// NewParseState creates a ParseState over a materialized Code vector.
func NewParseState(codes []code.Code) *ParseState {
	return &ParseState{Codes: codes, Definitions: map[string]struct{}{}}
}

// snapshot is the total state attempt/check capture and restore on
// rollback: scalar counters, the point, and the scratch value -- plus the
// event log length, used to truncate Events back on Nok.
type snapshot struct {
	eventsLen int
	point     code.Point
	previous  code.Code
	consumed  bool
	stackLen  int
	scratch   Scratch
	// labelText is a deep copy of scratch.LabelText at snapshot time: Scratch
	// is copied by value everywhere else, but a []rune field only copies its
	// header, so a restore would otherwise still see mutations an attempt
	// made to the shared backing array after rolling back.
	labelText []rune
}

// Tokenizer drives a single pass over (a span of) the Code stream,
// producing Events. It is created, driven to exhaustion, and discarded;
// see spec.md §3's "Lifecycle".
type Tokenizer struct {
	Events []event.Event

	point    code.Point
	previous code.Code
	consumed bool
	stack    []event.TokenType
	skip     map[int]int

	Scratch Scratch

	Interrupt bool // whether the current attempt may interrupt a paragraph

	parseState *ParseState

	queue []code.Code
	cur   StateFn
	done  bool
	final Result
}

// New creates a Tokenizer starting at point, sharing ps's read-only Code
// vector and cross-pass bookkeeping.
func New(point code.Point, ps *ParseState) *Tokenizer {
	return &Tokenizer{point: point, parseState: ps}
}

// ParseState returns the shared parse-wide context.
func (t *Tokenizer) ParseState() *ParseState { return t.parseState }

// Point returns the tokenizer's current position.
func (t *Tokenizer) Point() code.Point { return t.point }

// Previous returns the last code consumed, for lookback decisions (e.g.
// "was the previous code whitespace").
func (t *Tokenizer) Previous() code.Code { return t.previous }

// Consume records c as consumed and advances point per the rules of
// spec.md §4.1. It is a contract violation -- and panics -- to call
// Consume more than once for a single StateFn invocation.
func (t *Tokenizer) Consume(c code.Code) {
	if t.consumed {
		panic("tokenizer: Consume called more than once in a single state step")
	}
	t.consumed = true
	t.previous = c
	t.point = code.AdvancePoint(t.point, c)
}

// Enter appends an Enter event for kind at the current point and pushes
// kind onto the open-token stack.
func (t *Tokenizer) Enter(kind event.TokenType) {
	t.Events = append(t.Events, event.Event{Type: event.Enter, Token: kind, Point: t.point})
	t.stack = append(t.stack, kind)
}

// EnterWithContent is Enter plus an attached Link with both neighbors
// unset; the caller is responsible for wiring Previous/Next via
// link.Link/link.To (internal/link).
func (t *Tokenizer) EnterWithContent(kind event.TokenType, ct event.ContentType) {
	t.Events = append(t.Events, event.Event{
		Type:  event.Enter,
		Token: kind,
		Point: t.point,
		Link:  &event.Link{Previous: event.NoIndex, Next: event.NoIndex, ContentType: ct},
	})
	t.stack = append(t.stack, kind)
}

// Exit pops kind off the open-token stack (asserting it matches the top,
// an invariant violation otherwise) and appends an Exit event.
func (t *Tokenizer) Exit(kind event.TokenType) {
	if len(t.stack) == 0 {
		panic(fmt.Sprintf("tokenizer: Exit(%v) with no open token", kind))
	}
	top := t.stack[len(t.stack)-1]
	if top != kind {
		panic(fmt.Sprintf("tokenizer: Exit(%v) does not match open token %v", kind, top))
	}
	t.stack = t.stack[:len(t.stack)-1]
	t.Events = append(t.Events, event.Event{Type: event.Exit, Token: kind, Point: t.point})
}

// Retype converts the token kind of a still-open construct in place: the
// Enter event at index, and the matching entry on top of the open-token
// stack, must both currently be from, and become to instead. This is how
// setext heading recognition works -- a line opens a Paragraph, and only
// once a later line's underline is recognized does it turn out to have
// been a Heading all along, mirroring scandown's block.go discarding the
// prior Paragraph block entry and replacing it with a Heading one once a
// setext ruler line is seen. It panics if index or the stack top is not
// currently from, an invariant violation rather than an expected failure.
func (t *Tokenizer) Retype(index int, from, to event.TokenType) {
	if t.Events[index].Token != from {
		panic(fmt.Sprintf("tokenizer: Retype(%d): event is %v, not %v", index, t.Events[index].Token, from))
	}
	top := len(t.stack) - 1
	if top < 0 || t.stack[top] != from {
		panic(fmt.Sprintf("tokenizer: Retype(%v -> %v): %v is not the open token", from, to, from))
	}
	t.Events[index].Token = to
	t.stack[top] = to
}

// DefineSkip records that content parsing at line should treat index as its
// logical start, bridging the already-recognized container-prefix bytes of
// spec.md §3's `skip` field, and also realigns the tokenizer's point to
// exactly p -- the mechanism spec.md §4.3 relies on to bridge the gap
// between non-contiguous chunks of one content chain.
func (t *Tokenizer) DefineSkip(p code.Point) {
	if t.skip == nil {
		t.skip = map[int]int{}
	}
	t.skip[p.Line] = p.Index
	t.point = p
}

// Skip looks up a previously defined skip index for line.
func (t *Tokenizer) Skip(line int) (index int, ok bool) {
	index, ok = t.skip[line]
	return
}

func (t *Tokenizer) snapshot() snapshot {
	return snapshot{
		eventsLen: len(t.Events),
		point:     t.point,
		previous:  t.previous,
		consumed:  t.consumed,
		stackLen:  len(t.stack),
		scratch:   t.Scratch,
		labelText: append([]rune(nil), t.Scratch.LabelText...),
	}
}

func (t *Tokenizer) restore(s snapshot) {
	t.Events = t.Events[:s.eventsLen]
	t.point = s.point
	t.previous = s.previous
	t.consumed = s.consumed
	t.stack = t.stack[:s.stackLen]
	t.Scratch = s.scratch
	t.Scratch.LabelText = s.labelText
}

// Attempt drives sub to completion (Ok or Nok), restoring all tokenizer
// state on Nok, keeping it on Ok, and then invoking k with the outcome.
// The returned StateFn is itself the thing to schedule next -- it is not
// run until the trampoline feeds it a code.
func (t *Tokenizer) Attempt(sub StateFn, k func(ok bool) StateFn) StateFn {
	snap := t.snapshot()
	cur := sub
	var step StateFn
	step = func(t *Tokenizer, c code.Code) (Result, []code.Code) {
		res, remainder := cur(t, c)
		switch res.State {
		case Again:
			// res.Next may itself be another Attempt/AttemptOpt/Check step
			// that is only now resolving to its own terminal Ok/Nok, which
			// carries a remainder alongside its Again-shaped handoff to its
			// own k; that remainder must keep flowing outward through every
			// enclosing step, not just the innermost one, or the replayed
			// code is silently dropped instead of reaching the trampoline.
			cur = res.Next
			return ContinueWith(step), remainder
		case Ok:
			return ContinueWith(k(true)), remainder
		default: // Nok
			t.restore(snap)
			return ContinueWith(k(false)), remainder
		}
	}
	return step
}

// Check is Attempt's pure-lookahead sibling: it always restores, win or
// lose, before invoking k.
func (t *Tokenizer) Check(sub StateFn, k func(ok bool) StateFn) StateFn {
	snap := t.snapshot()
	cur := sub
	var step StateFn
	step = func(t *Tokenizer, c code.Code) (Result, []code.Code) {
		res, remainder := cur(t, c)
		switch res.State {
		case Again:
			cur = res.Next
			return ContinueWith(step), remainder
		default: // Ok or Nok
			t.restore(snap)
			return ContinueWith(k(res.State == Ok)), remainder
		}
	}
	return step
}

// AttemptOpt is Attempt for an optional construct: k runs regardless of the
// outcome, but the consumed prefix is kept only on success; on failure
// state is rolled back exactly as in Attempt.
func (t *Tokenizer) AttemptOpt(sub StateFn, k StateFn) StateFn {
	snap := t.snapshot()
	cur := sub
	var step StateFn
	step = func(t *Tokenizer, c code.Code) (Result, []code.Code) {
		res, remainder := cur(t, c)
		switch res.State {
		case Again:
			cur = res.Next
			return ContinueWith(step), remainder
		case Ok:
			return ContinueWith(k), remainder
		default: // Nok
			t.restore(snap)
			return ContinueWith(k), remainder
		}
	}
	return step
}

// Push feeds codes into the trampoline starting from (or resuming) start,
// returning the final Result once the queue drains. When eof is true, a
// trailing code.None is fed after codes so that states pattern-matching on
// end-of-input can finalize (closing open constructs, etc). Push may be
// called multiple times against the same Tokenizer with eof=false on all
// but the last call, to feed non-contiguous spans in sequence -- the usage
// spec.md §4.3's resolver relies on.
func (t *Tokenizer) Push(codes []code.Code, start StateFn, eof bool) Result {
	if t.done {
		panic("tokenizer: Push called after a terminal result was already reached")
	}

	queue := append([]code.Code(nil), codes...)
	if eof {
		queue = append(queue, code.Code{Kind: code.None})
	}

	cur := start
	if t.cur != nil {
		cur = t.cur
	}

	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]

		t.consumed = false
		res, remainder := cur(t, c)
		if len(remainder) > 0 {
			queue = append(append([]code.Code(nil), remainder...), queue...)
		}

		switch res.State {
		case Again:
			cur = res.Next
		case Ok, Nok:
			t.done = true
			t.final = res
			return res
		}
	}

	t.cur = cur
	return ContinueWith(cur)
}

// Done reports whether a terminal Ok/Nok has been reached.
func (t *Tokenizer) Done() (Result, bool) { return t.final, t.done }

// StackDepth returns the number of currently-open tokens, used by tests
// asserting the well-nestedness invariant incrementally.
func (t *Tokenizer) StackDepth() int { return len(t.stack) }
