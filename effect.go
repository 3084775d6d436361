// Package effect implements algebraic effect handlers on top of
// multi-prompt delimited control.
//
// Handlers form a per-goroutine shadow stack: a singly-linked LIFO list of
// frames, each associating a Kind with handler-local data and, for prompt
// handlers, with the prompt delimiting their extent. A computation
// performs an effect by locating the innermost visible handler of a kind
// with Find and suspending to it with YieldTo; the handler replies by
// invoking the resumption, by returning without it, or by unwinding the
// suspended computation.
//
// The shadow stack is logically continuous across prompt boundaries: a
// prompt handler frame lives on its prompt's stack and links, through its
// parent, to the frames of the stack that created it. Scoping primitives
// Under and Mask install frames that alter which handlers Find can see.
//
// All state is per-goroutine-tree and confined to the computation that
// created it; nothing here is safe to share across concurrent
// computations.
package effect

import (
	"github.com/dispatchrun/effect/internal/gls"
	"github.com/dispatchrun/effect/prompt"
)

// A Handler is a frame on the shadow stack.
type Handler struct {
	parent *Handler
	prompt *prompt.Prompt // nil for linear handlers
	kind   *Kind
	data   any

	under *Kind // UnderKind frames: hide handlers up to and including this kind
	mask  *Kind // MaskKind frames: hide the next handlers of this kind
	from  int
}

// Top returns the current innermost handler, or nil when no handler is
// installed on this computation.
func Top() *Handler {
	h, _ := gls.Get().(*Handler)
	return h
}

// Parent returns the handler enclosing h, or Top when h is nil.
func Parent(h *Handler) *Handler {
	if h == nil {
		return Top()
	}
	return h.parent
}

// Kind returns the kind h was installed with.
func (h *Handler) Kind() *Kind {
	return h.kind
}

// Data returns the handler-local state h was installed with.
func (h *Handler) Data() any {
	return h.data
}

func setTop(h *Handler) {
	if h == nil {
		gls.Clear()
		return
	}
	gls.Set(h)
}

func push(h *Handler) {
	h.parent = Top()
	setTop(h)
}

func pop(h *Handler) {
	if Top() != h {
		panic("effect: handler stack out of order")
	}
	setTop(h.parent)
}

// Linear installs a prompt-less handler frame of the given kind for the
// dynamic extent of fun(data, arg). Linear handlers are cheap: they live
// on the current stack and cannot be yielded to, but Find sees them and
// their data is readable through Data. The frame is popped on every exit
// path, including unwinds.
func Linear(kind *Kind, data any, fun func(data, arg any) any, arg any) any {
	h := &Handler{kind: kind, data: data}
	push(h)
	defer pop(h)
	return fun(h.data, arg)
}
