package gstack

import (
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

const (
	// DefaultLimit is the default bound on concurrently live stacks.
	DefaultLimit = 8192
	// DefaultCacheSize is the default number of idle stacks kept parked
	// for reuse.
	DefaultCacheSize = 64
)

// A Pool allocates and caches execution stacks.
//
// Allocation is bounded: once the limit is reached, further allocations
// are resource exhaustion and panic with a diagnostic. Stacks whose task
// returns normally park in the cache and are reused by later allocations.
type Pool struct {
	sem  *semaphore.Weighted
	idle chan *Stack
	log  *zap.Logger
	live atomic.Int64

	allocated atomic.Int64
	reused    atomic.Int64
}

// Default is the pool used by the prompt runtime.
var Default = NewPool()

// An Option configures a Pool.
type Option func(*config)

type config struct {
	limit     int64
	cacheSize int
	log       *zap.Logger
	registry  registerer
}

// WithLimit bounds the number of concurrently live stacks.
func WithLimit(n int64) Option {
	return func(c *config) { c.limit = n }
}

// WithCacheSize sets the number of idle stacks kept for reuse.
func WithCacheSize(n int) Option {
	return func(c *config) { c.cacheSize = n }
}

// WithLogger sets the logger used for stack lifecycle events; the default
// is a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *config) { c.log = log }
}

// NewPool creates a stack pool.
func NewPool(opts ...Option) *Pool {
	c := config{
		limit:     DefaultLimit,
		cacheSize: DefaultCacheSize,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	p := &Pool{
		sem:  semaphore.NewWeighted(c.limit),
		idle: make(chan *Stack, c.cacheSize),
		log:  c.log,
	}
	if c.registry != nil {
		c.registry.MustRegister(p.Collector())
	}
	return p
}

// Go runs task on a stack from the pool, reusing an idle stack when one is
// available. It returns as soon as the task has been handed off; the task
// runs concurrently with the caller.
//
// Go panics when the pool's stack limit is exceeded.
func (p *Pool) Go(task func()) {
	select {
	case s := <-p.idle:
		p.reused.Add(1)
		p.log.Debug("gstack reused", zap.Int64("live", p.live.Load()))
		s.tasks <- task
		return
	default:
	}
	if !p.sem.TryAcquire(1) {
		panic("gstack: stack limit exceeded")
	}
	s := &Stack{pool: p, tasks: make(chan func())}
	p.allocated.Add(1)
	p.live.Add(1)
	p.log.Debug("gstack allocated", zap.Int64("live", p.live.Load()))
	go s.run()
	s.tasks <- task
}

// park returns s to the cache; it reports false when the cache is full and
// the stack should retire instead.
func (p *Pool) park(s *Stack) bool {
	select {
	case p.idle <- s:
		return true
	default:
		return false
	}
}

func (p *Pool) retire(s *Stack) {
	p.live.Add(-1)
	p.sem.Release(1)
	p.log.Debug("gstack retired", zap.Int64("live", p.live.Load()))
}

// Drain retires all idle stacks. It does not affect stacks currently
// running a task.
func (p *Pool) Drain() {
	for {
		select {
		case s := <-p.idle:
			close(s.tasks)
		default:
			return
		}
	}
}
