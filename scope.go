package effect

// Under runs fun(arg) with the handlers up to and including the innermost
// handler of the given kind hidden from Find. A handler uses it to call
// back into user code without re-entering itself: inside the under scope,
// Find(kind) returns the next handler of that kind further out.
func Under(under *Kind, fun func(arg any) any, arg any) any {
	h := &Handler{kind: UnderKind, under: under}
	push(h)
	defer pop(h)
	return fun(arg)
}

// Mask runs fun(arg) with one more handler of the given kind hidden from
// Find, counting inward from level from: Mask(k, 0, ...) makes
// Find(k) return the second-innermost handler of kind k.
func Mask(mask *Kind, from int, fun func(arg any) any, arg any) any {
	h := &Handler{kind: MaskKind, mask: mask, from: from}
	push(h)
	defer pop(h)
	return fun(arg)
}

// Finally runs fun(arg) with cleanup registered as a scope exit: it runs
// when fun returns, and when the scope is torn down by an unwind or a
// dropped resumption, in LIFO order with the other scope exits between a
// suspension point and its handler.
func Finally(cleanup func(), fun func(arg any) any, arg any) any {
	h := &Handler{kind: FinallyKind, data: cleanup}
	push(h)
	defer pop(h)
	defer cleanup()
	return fun(arg)
}
