package gstack

import "github.com/prometheus/client_golang/prometheus"

// registerer is the subset of prometheus.Registerer the pool needs to
// register its collector.
type registerer interface {
	MustRegister(...prometheus.Collector)
}

// WithRegistry registers the pool's collector with reg.
func WithRegistry(reg prometheus.Registerer) Option {
	return func(c *config) { c.registry = reg }
}

var (
	descLive = prometheus.NewDesc(
		"gstack_live_stacks",
		"Number of currently live execution stacks.",
		nil, nil,
	)
	descIdle = prometheus.NewDesc(
		"gstack_idle_stacks",
		"Number of idle execution stacks parked for reuse.",
		nil, nil,
	)
	descAllocated = prometheus.NewDesc(
		"gstack_allocated_stacks_total",
		"Total number of execution stacks allocated.",
		nil, nil,
	)
	descReused = prometheus.NewDesc(
		"gstack_reused_stacks_total",
		"Total number of times an idle stack was reused.",
		nil, nil,
	)
)

type collector struct {
	pool *Pool
}

// Collector returns a prometheus collector exporting the pool's counters.
func (p *Pool) Collector() prometheus.Collector {
	return collector{pool: p}
}

func (c collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- descLive
	ch <- descIdle
	ch <- descAllocated
	ch <- descReused
}

func (c collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(descLive, prometheus.GaugeValue, float64(c.pool.live.Load()))
	ch <- prometheus.MustNewConstMetric(descIdle, prometheus.GaugeValue, float64(len(c.pool.idle)))
	ch <- prometheus.MustNewConstMetric(descAllocated, prometheus.CounterValue, float64(c.pool.allocated.Load()))
	ch <- prometheus.MustNewConstMetric(descReused, prometheus.CounterValue, float64(c.pool.reused.Load()))
}
