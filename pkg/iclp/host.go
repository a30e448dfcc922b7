package iclp

import "fmt"

// host.go implements the explicit bind(var, term) hook a host environment
// uses to tell the engine a variable has been decided externally: the
// direct equivalent of attributed-variable unification interception,
// trimmed to the one operation an interval engine actually needs —
// reacting to an external decision about a variable's value by narrowing
// and rescheduling — rather than a full substitution/walk unification
// engine.

// Bind narrows v to term and reruns propagation. term is either a numeric
// value (narrows v to that point; a Rational narrows v to its
// WidenLo/WidenHi enclosure) or another Var (merges the two
// variables' feasible ranges by posting their equality — structurally
// equivalent to watcher-list union without requiring first-class node
// aliasing).
func (e *Engine) Bind(v Var, term interface{}) error {
	if v.engine != e {
		return ErrUnknownVar
	}
	switch t := term.(type) {
	case int:
		return e.bindNumber(v, float64(t))
	case int64:
		return e.bindNumber(v, float64(t))
	case float64:
		return e.bindNumber(v, t)
	case Rational:
		iv := Interval{Kind: e.store.node(v.id).iv.Kind, Lo: t.WidenLo(), Hi: t.WidenHi()}
		if _, err := e.store.narrow(v.id, iv); err != nil {
			return err
		}
		e.store.enqueue(v.id)
		return e.runScheduler()
	case Var:
		if t.engine != e {
			return ErrUnknownVar
		}
		return Post(e, Bin{Op: OpEq, X: VarRef{V: v}, Y: VarRef{V: t}})
	default:
		return fmt.Errorf("iclp: Bind: unsupported term type %T", term)
	}
}

func (e *Engine) bindNumber(v Var, value float64) error {
	if _, err := e.store.narrow(v.id, Point(e.store.node(v.id).iv.Kind, value)); err != nil {
		return err
	}
	e.store.enqueue(v.id)
	return e.runScheduler()
}
