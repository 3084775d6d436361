package effect

import "github.com/dispatchrun/effect/prompt"

// YieldFunc runs on the parent of the target handler's prompt while the
// yielding computation is suspended. It receives the resumption, the
// handler's data, and the yield argument; its return value becomes the
// result of the call that was awaiting the prompt (the Prompt call, or the
// Resume invocation during which the computation yielded), whether or not
// it invokes r.
type YieldFunc func(r *prompt.Resume, data, arg any) any

// resumeEnv crosses the suspension point on every resume: the value the
// yield returns, whether the yielder must unwind instead of continuing,
// and the resumer's shadow-stack top for relinking.
type resumeEnv struct {
	result any
	unwind bool
	top    *Handler
}

// YieldTo suspends the computation up to h's prompt and runs fun on the
// prompt's parent with a one-shot resumption. While suspended, the
// handler chain seen by fun starts at h's parent, so the handler does not
// observe itself; on resumption the yielder's chain is restored and h is
// relinked under the resumer's handlers.
//
// YieldTo returns the value the resumption was invoked with, or initiates
// an unwind to h when the resumer requested one.
func YieldTo(h *Handler, fun YieldFunc, arg any) any {
	return yieldTo(false, h, fun, arg)
}

// MYieldTo is like YieldTo but captures a multi-shot resumption; see
// prompt.MYield for the replay semantics.
func MYieldTo(h *Handler, fun YieldFunc, arg any) any {
	return yieldTo(true, h, fun, arg)
}

func yieldTo(multi bool, h *Handler, fun YieldFunc, arg any) any {
	if h == nil {
		panic("effect: yield to a nil handler")
	}
	if h.prompt == nil {
		panic("effect: yield to a handler without a prompt")
	}

	// Unlink the current handler top for the duration of the suspension.
	// The restore is deferred so that it also runs when the suspended
	// slice is torn down (drop, unwind) and the frames above must pop
	// against a consistent chain.
	yieldTop := Top()
	setTop(h.parent)
	defer setTop(yieldTop)

	ytor := func(r *prompt.Resume, arg any) any {
		return fun(r, h.data, arg)
	}
	var raw any
	if multi {
		raw = h.prompt.MYield(ytor, arg)
	} else {
		raw = h.prompt.Yield(ytor, arg)
	}
	replayed := h.prompt.Replayed()

	env, ok := raw.(*resumeEnv)
	if !ok {
		panic("effect: resumed with a foreign value")
	}
	// Relink under the resumer's handlers. Answers served from a replay
	// log skip this: their recorded tops belong to a previous incarnation.
	if !replayed {
		h.parent = env.top
	}

	if env.unwind {
		UnwindTo(h, func(_, arg any) any { return arg }, env.result)
	}
	return env.result
}

// Resume invokes a one-shot resumption: the suspended yield returns
// result, and Resume returns once the interaction completes again. For a
// multi-shot resumption it starts a fresh invocation instead.
func Resume(r *prompt.Resume, result any) any {
	return r.Resume(&resumeEnv{result: result, top: Top()})
}

// ResumeTail is Resume in tail position; the caller must not need control
// back before the interaction completes.
func ResumeTail(r *prompt.Resume, result any) any {
	return r.ResumeTail(&resumeEnv{result: result, top: Top()})
}

// ResumeUnwind resumes the suspended computation into an unwind: every
// scope between the suspension point and the target handler is torn down
// in LIFO order, across intermediate prompts, and the target's prompt
// completes with a nil result, which ResumeUnwind discards. ResumeUnwind
// returns once the unwind has completed.
func ResumeUnwind(r *prompt.Resume) {
	r.Resume(&resumeEnv{unwind: true, top: Top()})
}

// ResumeDrop releases a resumption without transferring a value,
// unwinding first when the resumption requires it.
func ResumeDrop(r *prompt.Resume) {
	if r.ShouldUnwind() {
		ResumeUnwind(r)
		return
	}
	r.Drop()
}
