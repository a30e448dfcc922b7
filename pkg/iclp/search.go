package iclp

import (
	"context"
	"fmt"
	"math"
	"time"
)

// search.go implements the split-based search layer: Solve, SplitSolve,
// Absolve, Enumerate, GlobalMinimum, GlobalMaximum. The branch-and-bound
// shape uses an explicit recursive call per branch, backtracking via the
// store's trail between branches. The engine is single-threaded
// end-to-end, so there is no parallel-workers search option.

// SearchOption configures Solve/SplitSolve/GlobalMinimum/GlobalMaximum.
type SearchOption func(*searchConfig)

type searchConfig struct {
	precision    float64
	maxSolutions int
	nodeLimit    int
	timeLimit    time.Duration
	targetObj    *float64
}

func defaultSearchConfig() searchConfig {
	return searchConfig{precision: 1e-6, maxSolutions: 1, nodeLimit: 1_000_000}
}

func WithPrecision(p float64) SearchOption       { return func(c *searchConfig) { c.precision = p } }
func WithMaxSolutions(n int) SearchOption        { return func(c *searchConfig) { c.maxSolutions = n } }
func WithNodeLimit(n int) SearchOption           { return func(c *searchConfig) { c.nodeLimit = n } }
func WithTimeLimit(d time.Duration) SearchOption { return func(c *searchConfig) { c.timeLimit = d } }
func WithTargetObjective(v float64) SearchOption { return func(c *searchConfig) { c.targetObj = &v } }

// Box is one solution enclosure: the narrowed interval of every variable
// in vars, in order.
type Box []Interval

// offMidpoint returns a split point strictly between iv.Lo and iv.Hi but
// perturbed one representable step away from the true midpoint, toward
// Hi. Branches built as {Lo,m} / {m,Hi} around this point never both
// contain the exact midpoint, so a solution sitting precisely on it is
// isolated into exactly one branch instead of being re-discovered (and
// double-counted) from both halves — spec §4.7's "split avoiding
// solutions" distinguishing Solve from plain SplitSolve bisection.
func offMidpoint(iv Interval) float64 {
	mid := iv.Midpoint()
	if math.IsInf(mid, 0) {
		return mid
	}
	m := math.Nextafter(mid, iv.Hi)
	if m == mid || m > iv.Hi {
		return mid
	}
	return m
}

// bisectSearch is the shared branch-and-bound recursion behind Solve and
// SplitSolve: repeatedly split the widest remaining variable (above
// cfg.precision) at splitAt(iv), propagate each half, and recurse,
// collecting every box that bottoms out with all variables at or below
// the target precision, backtracking via the store's trail between
// branches.
func bisectSearch(ctx context.Context, e *Engine, vars []Var, cfg searchConfig, splitAt func(Interval) float64) ([]Box, error) {
	e.stats.startSearch()
	defer e.stats.finishSearch()

	var solutions []Box
	deadline := time.Now().Add(cfg.timeLimit)
	nodes := 0

	var rec func() error
	rec = func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if cfg.timeLimit > 0 && time.Now().After(deadline) {
			return nil
		}
		nodes++
		e.stats.recordNode()
		if nodes > cfg.nodeLimit {
			return nil
		}
		if len(solutions) >= cfg.maxSolutions && cfg.maxSolutions > 0 {
			return nil
		}

		idx := widestVarAbove(e, vars, cfg.precision)
		if idx < 0 {
			box := make(Box, len(vars))
			for i, v := range vars {
				box[i] = e.store.get(v.id)
			}
			solutions = append(solutions, box)
			e.stats.recordSolution()
			return nil
		}

		v := vars[idx]
		iv := e.store.get(v.id)
		m := splitAt(iv)

		for _, half := range [2]Interval{{Kind: iv.Kind, Lo: iv.Lo, Hi: m}, {Kind: iv.Kind, Lo: m, Hi: iv.Hi}} {
			mark := e.Snapshot()
			_, err := e.store.narrow(v.id, half)
			if err == nil {
				e.store.enqueue(v.id)
				err = e.runScheduler()
			}
			if err == nil {
				if rerr := rec(); rerr != nil {
					e.Restore(mark)
					return rerr
				}
			}
			e.Restore(mark)
			if len(solutions) >= cfg.maxSolutions && cfg.maxSolutions > 0 {
				return nil
			}
		}
		return nil
	}
	err := rec()
	return solutions, err
}

// Solve enumerates up to cfg.maxSolutions consistent boxes, splitting the
// widest remaining variable at a point perturbed off its true midpoint so
// an exact-midpoint solution is not independently rediscovered from both
// branches (spec §4.7 "split avoiding solutions").
func Solve(ctx context.Context, e *Engine, vars []Var, opts ...SearchOption) ([]Box, error) {
	cfg := defaultSearchConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return bisectSearch(ctx, e, vars, cfg, offMidpoint)
}

// SplitSolve performs plain bisection (split exactly at the true
// midpoint, with no solution-count cap by default) down to cfg.precision,
// spec §4.7's unfiltered counterpart to Solve: it may rediscover the same
// point solution from both halves when one lands exactly on a split.
func SplitSolve(ctx context.Context, e *Engine, vars []Var, opts ...SearchOption) ([]Box, error) {
	cfg := defaultSearchConfig()
	cfg.maxSolutions = 0
	for _, o := range opts {
		o(&cfg)
	}
	return bisectSearch(ctx, e, vars, cfg, Interval.Midpoint)
}

func widestVarAbove(e *Engine, vars []Var, precision float64) int {
	best, bestWidth := -1, precision
	for i, v := range vars {
		if w := e.store.get(v.id).Width(); w > bestWidth {
			best, bestWidth = i, w
		}
	}
	return best
}

// Absolve tightens v's bounds toward the true feasible range without
// branching: it binary-searches for the narrowest [lo,hi] still
// consistent with the constraint set, probing each candidate bound by
// trial-narrowing and restoring. This recovers the slack bounds-only
// consistency leaves behind, the classic role of CLP(BNR)'s absolve.
func Absolve(e *Engine, v Var, opts ...SearchOption) (Interval, error) {
	cfg := defaultSearchConfig()
	for _, o := range opts {
		o(&cfg)
	}
	iv := e.store.get(v.id)
	if iv.IsPoint() {
		return iv, nil
	}

	feasible := func(candidate Interval) bool {
		mark := e.Snapshot()
		defer e.Restore(mark)
		_, err := e.store.narrow(v.id, candidate)
		if err != nil {
			return false
		}
		e.store.enqueue(v.id)
		return e.runScheduler() == nil
	}

	lo, hi := iv.Lo, iv.Hi
	loBound := bisectFeasible(lo, hi, cfg.precision, func(x float64) bool {
		return feasible(Interval{Kind: iv.Kind, Lo: x, Hi: hi})
	})
	hiBound := bisectFeasible(hi, lo, cfg.precision, func(x float64) bool {
		return feasible(Interval{Kind: iv.Kind, Lo: loBound, Hi: x})
	})

	tightened := Interval{Kind: iv.Kind, Lo: loBound, Hi: hiBound}
	mark := e.Snapshot()
	if _, err := e.store.narrow(v.id, tightened); err != nil {
		e.Restore(mark)
		return iv, err
	}
	e.store.enqueue(v.id)
	if err := e.runScheduler(); err != nil {
		e.Restore(mark)
		return iv, err
	}
	return e.store.get(v.id), nil
}

// bisectFeasible finds the value closest to `from` (searching toward
// `towards`) for which ok still holds, to within tolerance.
func bisectFeasible(from, towards, tolerance float64, ok func(float64) bool) float64 {
	if ok(from) {
		return from
	}
	lo, hi := from, towards
	for i := 0; i < 64 && (hi-lo)*(hi-lo) > tolerance*tolerance; i++ {
		mid := lo + (hi-lo)/2
		if ok(mid) {
			hi = mid
		} else {
			lo = mid
		}
	}
	return hi
}

// Enumerate yields every value of v's finite integer/boolean domain, the
// one search operator that walks a discrete domain value-by-value rather
// than bisecting.
func Enumerate(e *Engine, v Var) ([]float64, error) {
	iv := e.store.get(v.id)
	if iv.Kind == KindReal {
		return nil, ErrTypeMismatch
	}
	var values []float64
	for x := iv.Lo; x <= iv.Hi; x++ {
		values = append(values, x)
	}
	return values, nil
}

// optimize is the branch-and-bound search behind GlobalMinimum and
// GlobalMaximum; direction is -1 for minimize, +1 for maximize.
func optimize(ctx context.Context, e *Engine, objective Var, vars []Var, direction float64, opts ...SearchOption) (Box, float64, error) {
	cfg := defaultSearchConfig()
	for _, o := range opts {
		o(&cfg)
	}
	e.stats.startSearch()
	defer e.stats.finishSearch()

	var bestBox Box
	bestVal := -direction * math.Inf(1)
	nodes := 0
	deadline := time.Now().Add(cfg.timeLimit)

	var rec func() error
	rec = func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if cfg.timeLimit > 0 && time.Now().After(deadline) {
			return nil
		}
		nodes++
		e.stats.recordNode()
		if nodes > cfg.nodeLimit {
			return nil
		}

		objIv := e.store.get(objective.id)
		bound := objIv.Hi
		if direction < 0 {
			bound = objIv.Lo
		}
		if bestBox != nil && direction*bound <= direction*bestVal {
			return nil // incumbent cutoff: this branch cannot beat the best found
		}

		idx := widestVarAbove(e, vars, cfg.precision)
		if idx < 0 {
			val := objIv.Midpoint()
			if bestBox == nil || direction*val > direction*bestVal {
				bestVal = val
				box := make(Box, len(vars))
				for i, v := range vars {
					box[i] = e.store.get(v.id)
				}
				bestBox = box
				e.stats.recordSolution()
				if cfg.targetObj != nil && direction*bestVal >= direction*(*cfg.targetObj) {
					return errTargetReached
				}
			}
			return nil
		}

		v := vars[idx]
		iv := e.store.get(v.id)
		mid := iv.Midpoint()
		halves := [2]Interval{{Kind: iv.Kind, Lo: iv.Lo, Hi: mid}, {Kind: iv.Kind, Lo: mid, Hi: iv.Hi}}
		// Explore the half more likely to improve the objective first so
		// the incumbent cutoff prunes sooner.
		if direction < 0 {
			halves[0], halves[1] = halves[1], halves[0]
		}
		for _, half := range halves {
			mark := e.Snapshot()
			_, err := e.store.narrow(v.id, half)
			if err == nil {
				e.store.enqueue(v.id)
				err = e.runScheduler()
			}
			if err == nil {
				if rerr := rec(); rerr != nil {
					e.Restore(mark)
					return rerr
				}
			}
			e.Restore(mark)
		}
		return nil
	}
	err := rec()
	if err == errTargetReached {
		err = nil
	}
	return bestBox, bestVal, err
}

// errTargetReached unwinds the branch-and-bound recursion as soon as
// SearchOption's WithTargetObjective threshold is met, without marking
// the search as failed.
var errTargetReached = fmt.Errorf("iclp: target objective reached")

// GlobalMinimum performs branch-and-bound minimization of objective over
// vars using an incumbent-cutoff search.
func GlobalMinimum(ctx context.Context, e *Engine, objective Var, vars []Var, opts ...SearchOption) (Box, float64, error) {
	return optimize(ctx, e, objective, vars, -1, opts...)
}

// GlobalMaximum performs branch-and-bound maximization of objective over
// vars.
func GlobalMaximum(ctx context.Context, e *Engine, objective Var, vars []Var, opts ...SearchOption) (Box, float64, error) {
	return optimize(ctx, e, objective, vars, 1, opts...)
}
