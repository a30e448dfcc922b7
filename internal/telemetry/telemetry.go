// Package telemetry exports the engine's propagation and search counters
// as Prometheus metrics: a process-local snapshot turned into
// instrumentation a running service can scrape.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder receives propagation and search events. The engine calls it
// directly from its hot path, so implementations must be cheap and
// non-blocking (Prometheus counters satisfy this).
type Recorder interface {
	Narrowing()
	Failure()
	QueueSize(n int)
	Node()
	Backtrack()
	Solution()
}

// Metrics is the default Recorder: a fixed set of Prometheus collectors
// registered under the "iclp" namespace.
type Metrics struct {
	narrowings prometheus.Counter
	failures   prometheus.Counter
	nodes      prometheus.Counter
	backtracks prometheus.Counter
	solutions  prometheus.Counter
	queueSize  prometheus.Gauge
}

// NewMetrics constructs a Metrics recorder and registers its collectors
// with reg. Pass prometheus.NewRegistry() for an isolated registry (tests,
// multiple engines) or prometheus.DefaultRegisterer for the process-wide
// default.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		narrowings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "iclp", Name: "narrowing_ops_total",
			Help: "Interval narrowing operations applied by the propagation scheduler.",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "iclp", Name: "failures_total",
			Help: "Narrowings that collapsed a node to an empty interval.",
		}),
		nodes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "iclp", Name: "search_nodes_total",
			Help: "Search-tree nodes explored by Solve/SplitSolve/GlobalMinimum/GlobalMaximum.",
		}),
		backtracks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "iclp", Name: "backtracks_total",
			Help: "Trail rollbacks performed during search.",
		}),
		solutions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "iclp", Name: "solutions_total",
			Help: "Solutions yielded by the search layer.",
		}),
		queueSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "iclp", Name: "agenda_size",
			Help: "Current size of the propagation agenda.",
		}),
	}
	reg.MustRegister(m.narrowings, m.failures, m.nodes, m.backtracks, m.solutions, m.queueSize)
	return m
}

func (m *Metrics) Narrowing()      { m.narrowings.Inc() }
func (m *Metrics) Failure()        { m.failures.Inc() }
func (m *Metrics) QueueSize(n int) { m.queueSize.Set(float64(n)) }
func (m *Metrics) Node()           { m.nodes.Inc() }
func (m *Metrics) Backtrack()      { m.backtracks.Inc() }
func (m *Metrics) Solution()       { m.solutions.Inc() }
