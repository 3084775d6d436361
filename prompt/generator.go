package prompt

// A Generator drives a computation that produces a stream of values, one
// prompt interaction per element.
//
// The type parameter R is the type of values the program receives from
// the generator (what it yields), and S is what the program can send back
// to a yield point.
type Generator[R, S any] struct {
	body    func(*Yielder[R, S])
	send    S
	recv    R
	r       *Resume
	started bool
	done    bool
}

// A Yielder is the producer-side handle passed to a generator body.
type Yielder[R, S any] struct {
	p *Prompt
}

type genYield struct {
	value  any
	resume *Resume
}

type genDone struct{}

// NewGenerator creates a generator which executes f as entry point. The
// body does not start until the first call to Next.
func NewGenerator[R, S any](f func(*Yielder[R, S])) *Generator[R, S] {
	return &Generator[R, S]{body: f}
}

// Yield sends v to the generator and pauses the execution of the body
// until the Next method is called again, returning the value set by Send
// (or the zero S).
func (y *Yielder[R, S]) Yield(v R) S {
	raw := y.p.Yield(func(r *Resume, arg any) any {
		return &genYield{value: arg, resume: r}
	}, v)
	s, _ := raw.(S)
	return s
}

// Next executes the generator until its next yield point, or until
// completion. It returns true if the body reached a yield point, after
// which Recv returns the yielded value.
func (g *Generator[R, S]) Next() bool {
	if g.done {
		return false
	}
	var out any
	if !g.started {
		g.started = true
		out = Run(func(p *Prompt, _ any) any {
			g.body(&Yielder[R, S]{p: p})
			return genDone{}
		}, nil)
	} else {
		r := g.r
		g.r = nil
		out = r.Resume(g.send)
		var zero S
		g.send = zero
	}
	if y, ok := out.(*genYield); ok {
		g.recv = y.value.(R)
		g.r = y.resume
		return true
	}
	g.done = true
	return false
}

// Recv returns the last value the generator yielded. It must be called
// only after a call to Next has returned true.
func (g *Generator[R, S]) Recv() R {
	return g.recv
}

// Send sets the value returned by the body's current yield point when the
// generator resumes. Only the last value sent before Next is observed.
func (g *Generator[R, S]) Send(v S) {
	g.send = v
}

// Stop interrupts the generator: the suspended body unwinds, running its
// deferred statements in inverse declaration order. Stop is idempotent;
// stopping a completed generator has no effect.
func (g *Generator[R, S]) Stop() {
	if g.done {
		return
	}
	g.done = true
	if g.r != nil {
		r := g.r
		g.r = nil
		r.Drop()
	}
}
