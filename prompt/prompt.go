// Package prompt implements multi-prompt delimited control on top of
// goroutine-backed stacks.
//
// A prompt delimits a computation: Run starts the body on a fresh stack
// obtained from the gstack pool and returns the body's result on the
// parent stack. The body may suspend with Yield, reifying the slice of
// computation between the suspension point and the prompt as a Resume
// value which the parent can invoke zero, one, or (with MYield) multiple
// times.
//
// Control transfers are explicit and strictly interleaved: between a
// parent and its prompt exactly one side runs at any instant, and the
// departing side's writes are ordered before the arriving side's reads.
// Prompts and resumptions must not cross goroutines other than through
// the transfers implemented here; this is not checked.
package prompt

import (
	"runtime"

	"github.com/dispatchrun/effect/gstack"
	"github.com/dispatchrun/effect/internal/gls"
)

// Body is the entry point of a prompt. The result it returns goes to the
// call awaiting the prompt when the body completes: the Run call that
// started it or, after a suspension, the Resume invocation that last
// resumed it. A computation suspended and abandoned returns nothing.
type Body func(p *Prompt, arg any) any

// Ytor runs on the parent stack while the prompt is suspended. Its return
// value becomes the result of the call that was awaiting the prompt: the
// Run that started it, or the Resume invocation during which the prompt
// yielded. This holds whether or not the ytor invokes r.
type Ytor func(r *Resume, arg any) any

// A Prompt names a running delimited computation and the stack it runs on.
type Prompt struct {
	ch   chan message
	body Body
	arg  any

	// Answer log: every value injected into this prompt's suspension
	// points, in order. A multi-shot capture snapshots a prefix of it and
	// clones replay that prefix before running live.
	answers    []any
	cursor     int
	pending    any
	hasPending bool
	replayed   bool
}

type message interface{ message() }

type returned struct{ value any }
type panicked struct{ value any }
type stopped struct{}
type yielded struct {
	r    *Resume
	ytor Ytor
	arg  any
}
type myielded struct {
	sus      *suspension
	snapshot []any
	ytor     Ytor
	arg      any
}

func (returned) message() {}
func (panicked) message() {}
func (stopped) message()  {}
func (yielded) message()  {}
func (myielded) message() {}

// Run executes body on a fresh stack with self naming the new prompt, and
// returns on the current stack once the interaction completes: either the
// body returned, or it yielded and the ytor ran to completion, in which
// case Run returns the ytor's result.
func Run(body Body, arg any) any {
	return enter(&Prompt{
		ch:   make(chan message),
		body: body,
		arg:  arg,
	})
}

func enter(p *Prompt) any {
	inherited := gls.Get()
	gstack.Default.Go(func() { p.main(inherited) })
	return p.interact()
}

// main is the root of a prompt's stack. It forwards the outcome of the
// body to whichever stack currently awaits this prompt: a value, an
// in-flight panic, or a teardown acknowledgement when the stack was
// stopped through runtime.Goexit.
func (p *Prompt) main(inherited any) {
	completed := false
	var result any
	defer func() {
		gls.Clear()
		switch v := recover(); {
		case completed:
			p.ch <- returned{value: result}
		case v != nil:
			p.ch <- panicked{value: v}
		default:
			p.ch <- stopped{}
		}
	}()
	gls.Set(inherited)
	result = p.body(p, p.arg)
	completed = true
}

// interact waits for the next transfer of control back to this stack.
func (p *Prompt) interact() any {
	for {
		switch m := (<-p.ch).(type) {
		case returned:
			return m.value
		case panicked:
			// Continue the unwind on this stack.
			panic(m.value)
		case stopped:
			// This stack is part of a slice being torn down; the
			// acknowledgement propagates through this prompt's own root.
			runtime.Goexit()
		case yielded:
			return m.ytor(m.r, m.arg)
		case myielded:
			// The capture is complete: every invocation of a multi-shot
			// resumption replays from the snapshot, so the suspended
			// original is torn down before the ytor runs.
			m.sus.ch <- answer{stop: true}
			p.awaitStopped()
			r := &Resume{
				multi:    true,
				body:     p.body,
				arg:      p.arg,
				snapshot: m.snapshot,
			}
			return m.ytor(r, m.arg)
		}
	}
}

func (p *Prompt) awaitStopped() {
	switch m := (<-p.ch).(type) {
	case stopped:
	case panicked:
		panic(m.value)
	default:
		panic("prompt: suspended computation performed an effect while being dropped")
	}
}

// replayAnswer serves a suspension point from the answer log during a
// replay, or from the pending value at the capture point. It reports false
// once the prompt runs live.
func (p *Prompt) replayAnswer() (any, bool) {
	if p.cursor < len(p.answers) {
		v := p.answers[p.cursor]
		p.cursor++
		p.replayed = true
		return v, true
	}
	if p.hasPending {
		v := p.pending
		p.pending = nil
		p.hasPending = false
		p.answers = append(p.answers, v)
		p.cursor++
		p.replayed = false
		return v, true
	}
	return nil, false
}

// Yield suspends the computation delimited by p and transfers control to
// p's current parent, which runs ytor with a one-shot resumption of the
// suspension point. Yield returns the value the resumption is invoked
// with.
//
// Yield must be called from within the computation delimited by p.
func (p *Prompt) Yield(ytor Ytor, arg any) any {
	if v, ok := p.replayAnswer(); ok {
		return v
	}
	p.replayed = false
	sus := &suspension{ch: make(chan answer)}
	r := &Resume{prompt: p, sus: sus}
	p.ch <- yielded{r: r, ytor: ytor, arg: arg}
	a := <-sus.ch
	if a.stop {
		runtime.Goexit()
	}
	p.answers = append(p.answers, a.value)
	p.cursor++
	return a.value
}

// MYield is like Yield but captures a multi-shot resumption: the prompt's
// answer log is snapshotted, the suspended slice is torn down, and each
// invocation of the resumption re-runs the body against the snapshot (see
// Resume). The MYield call itself never returns in the capturing
// execution; it returns the invocation argument in each replay that
// reaches this suspension point.
func (p *Prompt) MYield(ytor Ytor, arg any) any {
	if v, ok := p.replayAnswer(); ok {
		return v
	}
	p.replayed = false
	snapshot := make([]any, p.cursor)
	copy(snapshot, p.answers[:p.cursor])
	sus := &suspension{ch: make(chan answer)}
	p.ch <- myielded{sus: sus, snapshot: snapshot, ytor: ytor, arg: arg}
	a := <-sus.ch
	if !a.stop {
		panic("prompt: multi-shot capture resumed in place")
	}
	runtime.Goexit()
	return nil
}

// Replayed reports whether the last suspension point on p was answered
// from the replay log rather than by a live resumption. Values from the
// log were recorded in a previous incarnation of the computation.
func (p *Prompt) Replayed() bool {
	return p.replayed
}
