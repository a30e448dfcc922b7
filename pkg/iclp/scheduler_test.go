package iclp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSchedulerPropagatesThroughIntermediateNode exercises the fixed-point
// loop over a nested expression: (X + 1) * 2 == 10. The "X+1" node is an
// intermediate value consumed by the "*2" node; narrowing the outer node
// must cascade all the way back through the intermediate node to X. This
// is the scenario the scheduler's explicit operand re-enqueue exists for:
// without it, a backward narrowing landing on an intermediate node would
// never re-trigger that node's own contractor.
func TestSchedulerPropagatesThroughIntermediateNode(t *testing.T) {
	e := NewEngine()
	x := e.Declare("x", KindReal, -100, 100)

	sum := Bin{Op: OpAdd, X: VarRef{V: x}, Y: Num{Value: 1}}
	doubled := Bin{Op: OpMul, X: sum, Y: Num{Value: 2}}
	err := Post(e, Bin{Op: OpEq, X: doubled, Y: Num{Value: 10}})
	assert.NoError(t, err)

	lo, hi := e.Range(x)
	assert.InDelta(t, 4.0, lo, 1e-6)
	assert.InDelta(t, 4.0, hi, 1e-6)
}

// TestSchedulerFixedPointOnLinearSystem posts a two-equation linear system
// sharing both variables through independent sub-expressions and checks
// that propagation alone (no search) reaches a sound enclosure: the true
// solution must remain inside the bounds (soundness is unconditional; full
// point convergence from pure bounds consistency is not guaranteed by the
// engine, and is instead the job of Solve).
func TestSchedulerFixedPointOnLinearSystem(t *testing.T) {
	e := NewEngine()
	x := e.Declare("x", KindReal, -1000, 1000)
	y := e.Declare("y", KindReal, -1000, 1000)

	err := Post(e,
		Bin{Op: OpEq, X: Bin{Op: OpAdd, X: VarRef{V: x}, Y: VarRef{V: y}}, Y: Num{Value: 10}},
		Bin{Op: OpEq, X: Bin{Op: OpSub, X: VarRef{V: x}, Y: VarRef{V: y}}, Y: Num{Value: 2}},
	)
	assert.NoError(t, err)

	xlo, xhi := e.Range(x)
	ylo, yhi := e.Range(y)
	assert.True(t, xlo <= 6 && 6 <= xhi, "x enclosure must contain true solution 6")
	assert.True(t, ylo <= 4 && 4 <= yhi, "y enclosure must contain true solution 4")
}

// TestSchedulerInconsistentFails posts two constraints with no common
// solution and checks the engine reports ErrInconsistent rather than
// silently producing an empty interval.
func TestSchedulerInconsistentFails(t *testing.T) {
	e := NewEngine()
	x := e.Declare("x", KindReal, 0, 10)

	err := Post(e,
		Bin{Op: OpEq, X: VarRef{V: x}, Y: Num{Value: 3}},
		Bin{Op: OpEq, X: VarRef{V: x}, Y: Num{Value: 7}},
	)
	assert.ErrorIs(t, err, ErrInconsistent)
}
