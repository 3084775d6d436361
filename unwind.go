package effect

// UnwindFunc runs when an unwind reaches its target: at the target's
// prompt, with the target's handler data still live. Its result becomes
// the result of the Prompt call that installed the target.
type UnwindFunc func(data, arg any) any

// unwindPanic is the sentinel carried by an unwinding computation. It
// travels as a panic value so that every deferred scope exit between the
// origin and the target runs, crossing prompt boundaries as it goes; the
// catch lives at the target's prompt handler, and any other frame that
// sees it must re-panic.
type unwindPanic struct {
	target *Handler
	fun    UnwindFunc
	arg    any
}

func (*unwindPanic) Error() string {
	return "effect: unwinding the stack; do not recover this value"
}

// UnwindTo aborts the current computation up to the prompt handler h,
// tearing down every intervening scope in LIFO order, then delivers
// fun(data, arg) as the result of h's Prompt call. It does not return.
func UnwindTo(h *Handler, fun UnwindFunc, arg any) {
	if h == nil || h.prompt == nil {
		panic("effect: unwind to a handler without a prompt")
	}
	panic(&unwindPanic{target: h, fun: fun, arg: arg})
}

// Unwinding reports whether a recovered value is an in-flight unwind. It
// is intended for deferred functions that need to distinguish unwinds
// from ordinary panics; the value must be re-panicked either way.
func Unwinding(v any) bool {
	_, ok := v.(*unwindPanic)
	return ok
}
