package tokenizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/mdcore/internal/code"
	"github.com/jcorbin/mdcore/internal/event"
	"github.com/jcorbin/mdcore/internal/tokenizer"
)

// matchDigits matches one-or-more ASCII digit codes, wrapping them in an
// event.Data span -- enough shape to exercise Enter/Exit/Consume without
// pulling in any construct package.
func matchDigits(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if c.Kind != code.Char || c.Char < '0' || c.Char > '9' {
		return tokenizer.NokResult, []code.Code{c}
	}
	t.Enter(event.Data)
	t.Consume(c)
	return tokenizer.ContinueWith(digitsInside), nil
}

func digitsInside(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
	if c.Kind == code.Char && c.Char >= '0' && c.Char <= '9' {
		t.Consume(c)
		return tokenizer.ContinueWith(digitsInside), nil
	}
	t.Exit(event.Data)
	return tokenizer.OkResult, []code.Code{c}
}

func newTokenizer(src string) (*tokenizer.Tokenizer, []code.Code) {
	codes := code.FromString(src)
	ps := tokenizer.NewParseState(codes)
	return tokenizer.New(code.Point{Line: 1, Column: 1}, ps), codes
}

func TestAttemptRestoresStateOnNok(t *testing.T) {
	tz, codes := newTokenizer("abc")

	start := tz.Attempt(matchDigits, func(ok bool) tokenizer.StateFn {
		assert.False(t, ok)
		return func(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
			return tokenizer.OkResult, nil
		}
	})

	res := tz.Push(codes, start, true)
	require.Equal(t, tokenizer.Ok, res.State)
	assert.Empty(t, tz.Events, "a failed Attempt must leave no trace in the event log")
	assert.Equal(t, 1, tz.Point().Column, "a failed Attempt must restore point")
}

func TestAttemptKeepsStateOnOk(t *testing.T) {
	tz, codes := newTokenizer("123abc")

	start := tz.Attempt(matchDigits, func(ok bool) tokenizer.StateFn {
		assert.True(t, ok)
		return func(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
			return tokenizer.OkResult, nil
		}
	})

	res := tz.Push(codes, start, true)
	require.Equal(t, tokenizer.Ok, res.State)
	require.Len(t, tz.Events, 2)
	assert.Equal(t, event.Enter, tz.Events[0].Type)
	assert.Equal(t, event.Data, tz.Events[0].Token)
	assert.Equal(t, event.Exit, tz.Events[1].Type)
}

func TestCheckAlwaysRestores(t *testing.T) {
	tz, codes := newTokenizer("123abc")

	start := tz.Check(matchDigits, func(ok bool) tokenizer.StateFn {
		assert.True(t, ok, "digits do match, Check just must not keep the trace")
		return func(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
			return tokenizer.OkResult, nil
		}
	})

	res := tz.Push(codes, start, true)
	require.Equal(t, tokenizer.Ok, res.State)
	assert.Empty(t, tz.Events, "Check must never leave a trace, win or lose")
	assert.Equal(t, 1, tz.Point().Column)
}

func TestAttemptOptKeepsOnSuccessRestoresOnFailure(t *testing.T) {
	tz, codes := newTokenizer("123abc")

	after := func(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
		return tokenizer.OkResult, []code.Code{c}
	}
	start := tz.AttemptOpt(matchDigits, after)

	res := tz.Push(codes, start, true)
	require.Equal(t, tokenizer.Ok, res.State)
	require.Len(t, tz.Events, 2, "the successful optional match is kept")

	tz2, codes2 := newTokenizer("abc")
	start2 := tz2.AttemptOpt(matchDigits, after)
	res2 := tz2.Push(codes2, start2, true)
	require.Equal(t, tokenizer.Ok, res2.State)
	assert.Empty(t, tz2.Events, "a failed optional match leaves no trace")
}

// TestAttemptSurvivesNestedAgainChurn guards the composition bug found while
// building flow/string/text: a wrapper's own step closure must keep
// re-registering itself across any number of intermediate Again results --
// including ones produced by a sub's own nested Attempt calls -- right up
// until sub resolves to a bare Ok/Nok.
func TestAttemptSurvivesNestedAgainChurn(t *testing.T) {
	tz, codes := newTokenizer("12ab")

	// nested wraps matchDigits in its own Attempt, so the outer Attempt
	// below must see through two layers of step self-renewal before it
	// ever observes a terminal Ok.
	nested := func(tk *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
		return tk.Attempt(matchDigits, func(ok bool) tokenizer.StateFn {
			require.True(t, ok)
			return func(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
				return tokenizer.OkResult, []code.Code{c}
			}
		})(tk, c)
	}

	outerSaw := false
	start := tz.Attempt(nested, func(ok bool) tokenizer.StateFn {
		outerSaw = true
		require.True(t, ok)
		return func(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
			return tokenizer.OkResult, nil
		}
	})

	res := tz.Push(codes, start, true)
	require.Equal(t, tokenizer.Ok, res.State)
	assert.True(t, outerSaw, "outer Attempt's k must fire, after both digits")
	require.Len(t, tz.Events, 2)
}

func TestPushThreadsRemainderBeforeQueue(t *testing.T) {
	tz, codes := newTokenizer("1a2")

	// matchDigits matches '1', then stops on 'a' and hands it back as
	// remainder; record below must see that 'a' before the queued '2'.
	var seen []rune
	var record tokenizer.StateFn
	record = func(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
		if c.Kind == code.Char {
			seen = append(seen, c.Char)
		}
		if c.IsEOF() {
			return tokenizer.OkResult, nil
		}
		return tokenizer.ContinueWith(record), nil
	}

	start := tz.Attempt(matchDigits, func(ok bool) tokenizer.StateFn {
		require.True(t, ok)
		return record
	})

	res := tz.Push(codes, start, true)
	require.Equal(t, tokenizer.Ok, res.State)
	assert.Equal(t, []rune{'a', '2'}, seen)
}

func TestPushPanicsAfterDone(t *testing.T) {
	tz, codes := newTokenizer("1")
	start := func(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
		return tokenizer.OkResult, nil
	}
	tz.Push(codes, start, true)

	assert.Panics(t, func() {
		tz.Push(codes, start, true)
	})
}

func TestConsumeTwiceInOneStepPanics(t *testing.T) {
	tz, codes := newTokenizer("a")
	bad := func(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
		t.Consume(c)
		t.Consume(c)
		return tokenizer.OkResult, nil
	}
	assert.Panics(t, func() {
		tz.Push(codes, bad, true)
	})
}

func TestExitMismatchPanics(t *testing.T) {
	tz, codes := newTokenizer("a")
	bad := func(t *tokenizer.Tokenizer, c code.Code) (tokenizer.Result, []code.Code) {
		t.Enter(event.Data)
		t.Exit(event.Paragraph)
		return tokenizer.OkResult, nil
	}
	assert.Panics(t, func() {
		tz.Push(codes, bad, true)
	})
}

func TestDefineSkipRealignsPoint(t *testing.T) {
	tz, _ := newTokenizer("abcdef")
	p := code.Point{Line: 2, Column: 5, Index: 4}
	tz.DefineSkip(p)
	assert.Equal(t, p, tz.Point())
	idx, ok := tz.Skip(2)
	require.True(t, ok)
	assert.Equal(t, 4, idx)
}
