package prompt

import "slices"

type suspension struct {
	ch chan answer
}

type answer struct {
	value any
	stop  bool
}

// A Resume is a first-class handle to a suspended slice of computation:
// the suspension point, the prompt it belongs to, and every frame in
// between, including intermediate prompts.
//
// A one-shot resumption (from Yield) is consumed by its first invocation;
// invoking it again is a programming error. A multi-shot resumption (from
// MYield) may be invoked any number of times; each invocation re-runs the
// prompt body from the start on a fresh stack, answering suspension
// points from the captured snapshot up to the capture point and feeding
// the invocation's argument there. Invocations are therefore independent
// as long as the body is deterministic up to its suspension points;
// external side effects re-run on every invocation.
//
// A live one-shot resumption that is neither invoked nor dropped keeps
// its suspended slice parked forever; call Drop to release it.
type Resume struct {
	prompt       *Prompt
	sus          *suspension
	consumed     bool
	shouldUnwind bool

	multi    bool
	body     Body
	arg      any
	snapshot []any
}

func (r *Resume) consume(op string) {
	if r.multi {
		return
	}
	if r.consumed {
		panic("prompt: " + op + " of a dead one-shot resumption")
	}
	r.consumed = true
}

// Resume transfers control back to the suspension point, which observes v
// as the return value of its Yield. Resume returns once the interaction
// completes again: the body returned, or it yielded and the ytor ran to
// completion, in which case Resume returns the ytor's result.
func (r *Resume) Resume(v any) any {
	r.consume("resume")
	if r.multi {
		return enter(r.clone(v))
	}
	r.sus.ch <- answer{value: v}
	return r.prompt.interact()
}

// ResumeTail is Resume in tail position: the caller must not need control
// back before the interaction completes. Stack frames are runtime-managed
// here, so it shares Resume's implementation.
func (r *Resume) ResumeTail(v any) any {
	return r.Resume(v)
}

// Drop releases the resumption without transferring a value. The
// suspended slice is stopped: every stack between the suspension point
// and the prompt unwinds via runtime.Goexit, running deferred scope exits
// in LIFO order, innermost stack first.
//
// Dropping a multi-shot resumption only discards the handle; there is no
// suspended slice, captures having been torn down at MYield.
func (r *Resume) Drop() {
	r.consume("drop")
	if r.multi {
		return
	}
	r.sus.ch <- answer{stop: true}
	r.prompt.awaitStopped()
}

// ShouldUnwind reports whether dropping this resumption must unwind to
// run scope exits instead of releasing it directly. Drop already unwinds
// every stack it stops through runtime.Goexit, so this is always false
// here; it exists for callers layering their own unwind protocol on top.
func (r *Resume) ShouldUnwind() bool {
	return r.shouldUnwind
}

func (r *Resume) clone(pending any) *Prompt {
	return &Prompt{
		ch:         make(chan message),
		body:       r.body,
		arg:        r.arg,
		answers:    slices.Clone(r.snapshot),
		pending:    pending,
		hasPending: true,
	}
}
