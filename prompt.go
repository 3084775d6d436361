package effect

import "github.com/dispatchrun/effect/prompt"

// Prompt installs a handler of the given kind around body, running it on
// a fresh prompt. newData constructs the handler-local state on the
// prompt's own stack before the body starts, so the state stays
// addressable until the prompt returns or a handling unwind completes;
// nil means no state.
//
// The result is body's return value, or, when an unwind targets this
// handler, the unwind function's.
func Prompt(kind *Kind, newData func() any, body func(data, arg any) any, arg any) any {
	return prompt.Run(func(p *prompt.Prompt, arg any) any {
		return start(p, kind, newData, body, arg)
	}, arg)
}

func start(p *prompt.Prompt, kind *Kind, newData func() any, body func(data, arg any) any, arg any) (result any) {
	var data any
	if newData != nil {
		data = newData()
	}
	h := &Handler{kind: kind, prompt: p, data: data}
	// The catch runs after the frame is popped, with data still live.
	defer func() {
		if v := recover(); v != nil {
			uw, ok := v.(*unwindPanic)
			if !ok || uw.target != h {
				panic(v)
			}
			result = uw.fun(h.data, uw.arg)
		}
	}()
	push(h)
	defer pop(h)
	return body(h.data, arg)
}
