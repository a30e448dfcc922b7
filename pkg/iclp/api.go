package iclp

import (
	"math"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/gitrdm/iclp/internal/telemetry"
)

// Engine is the public facade gluing the compiler, store, scheduler,
// search and host-binding layers together.
type Engine struct {
	store *Store
	cfg   Config
	log   *logrus.Entry
	stats *engineStats
}

// NewEngine constructs an Engine with the given options layered over
// DefaultConfig. Logging uses a per-engine logrus logger whose Entry
// carries structured fields.
//
// It panics with ErrHostUnavailable if the Go runtime's floating-point
// environment does not meet the IEEE-754 double-precision guarantees the
// numeric kernel requires (spec §7: a host-environment error is detected
// at initialisation and the engine refuses to proceed). This never
// triggers on a conforming Go runtime.
func NewEngine(opts ...Option) *Engine {
	if err := checkHostEnvironment(); err != nil {
		panic(err)
	}
	cfg := DefaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	logger := logrus.New()
	if cfg.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}
	logger.SetOutput(os.Stderr)
	entry := logger.WithField("component", "iclp")

	stats := newEngineStats()
	e := &Engine{cfg: cfg, log: entry, stats: stats}
	e.store = NewStore(cfg, entry, stats)
	return e
}

// UseMetrics wires a Prometheus telemetry.Metrics recorder into the
// engine's statistics, so its counters are also scraped externally.
func (e *Engine) UseMetrics(m *telemetry.Metrics) { e.stats.setRecorder(m) }

// Var is an opaque handle to a declared interval variable.
type Var struct {
	id     NodeID
	engine *Engine
}

// Declare creates a new variable of the given kind with bounds [lo, hi].
// Pass math.Inf(-1)/math.Inf(1) for the unbounded default per kind (real
// ±1e16, integer the platform int64 range).
func (e *Engine) Declare(name string, kind Kind, lo, hi float64) Var {
	iv := Full(kind)
	if !math.IsInf(lo, -1) {
		iv.Lo = lo
	}
	if !math.IsInf(hi, 1) {
		iv.Hi = hi
	}
	if kind == KindInteger {
		iv = iv.roundInward()
	}
	id := e.store.declare(name, OpNone, nil, iv)
	return Var{id: id, engine: e}
}

// DeclareAll declares one variable per name, all of the same kind and bounds, the
// list-form broadcast declaration.
func (e *Engine) DeclareAll(names []string, kind Kind, lo, hi float64) []Var {
	vars := make([]Var, len(names))
	for i, name := range names {
		vars[i] = e.Declare(name, kind, lo, hi)
	}
	return vars
}

// Domain returns v's current bounds and kind.
func (e *Engine) Domain(v Var) (lo, hi float64, kind Kind) {
	iv := e.store.get(v.id)
	return iv.Lo, iv.Hi, iv.Kind
}

// Range is Domain without the kind.
func (e *Engine) Range(v Var) (lo, hi float64) {
	iv := e.store.get(v.id)
	return iv.Lo, iv.Hi
}

func (e *Engine) LowerBound(v Var) float64 { return e.store.get(v.id).Lo }
func (e *Engine) UpperBound(v Var) float64 { return e.store.get(v.id).Hi }
func (e *Engine) Delta(v Var) float64      { return e.store.get(v.id).Delta() }
func (e *Engine) Midpoint(v Var) float64   { return e.store.get(v.id).Midpoint() }
func (e *Engine) Median(v Var) float64     { return e.store.get(v.id).Median() }

// IsDecided reports whether v has narrowed to a single point.
func (e *Engine) IsDecided(v Var) bool { return e.store.get(v.id).IsPoint() }

// Action names a per-variable trace level for Watch.
type Action int

const (
	ActionNone Action = iota
	ActionLog
	ActionTrace
)

// Watch sets v's trace action: events on v's node log at Debug (ActionLog)
// or Info (ActionTrace) instead of being silent.
func (e *Engine) Watch(v Var, action Action) {
	e.store.watch(v.id, traceAction(action))
}

// Stats returns a snapshot of the engine's propagation and search
// counters.
func (e *Engine) Stats() Statistics { return e.stats.snapshot() }

// ResetStats zeroes the engine's counters (keeping any wired Recorder).
func (e *Engine) ResetStats() { e.stats.reset() }

// Snapshot and Restore expose the store's trail mark for callers that
// want to manage backtracking themselves outside the search layer.
func (e *Engine) Snapshot() int    { return e.store.snapshot() }
func (e *Engine) Restore(mark int) { e.store.undo(mark); e.stats.recordBacktrack() }
