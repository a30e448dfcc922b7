package iclp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// X declared on [0,10] with X==5 exactly on the true midpoint. Propagation
// already pins X to 5 before Solve splits anything; Solve must report that
// point as exactly one box, not as one box per half.
func TestSolveAvoidsMidpointDuplication(t *testing.T) {
	e := NewEngine()
	x := e.Declare("x", KindReal, 0, 10)
	err := Post(e, Bin{Op: OpEq, X: VarRef{V: x}, Y: Num{Value: 5}})
	assert.NoError(t, err)

	boxes, err := Solve(context.Background(), e, []Var{x}, WithPrecision(1e-6), WithMaxSolutions(10))
	assert.NoError(t, err)
	assert.Len(t, boxes, 1)
	assert.InDelta(t, 5.0, boxes[0][0].Midpoint(), 1e-6)
}

func TestSplitSolveBisectsToPrecision(t *testing.T) {
	e := NewEngine()
	x := e.Declare("x", KindReal, 0, 1)
	boxes, err := SplitSolve(context.Background(), e, []Var{x}, WithPrecision(0.1))
	assert.NoError(t, err)
	assert.NotEmpty(t, boxes)
	for _, b := range boxes {
		assert.LessOrEqual(t, b[0].Width(), 0.1)
	}
}

func TestAbsolveTightensBounds(t *testing.T) {
	e := NewEngine()
	x := e.Declare("x", KindReal, -1000, 1000)
	err := Post(e, Bin{Op: OpEq, X: VarRef{V: x}, Y: Num{Value: 3}})
	assert.NoError(t, err)

	tightened, err := Absolve(e, x, WithPrecision(1e-6))
	assert.NoError(t, err)
	assert.InDelta(t, 3.0, tightened.Lo, 1e-5)
	assert.InDelta(t, 3.0, tightened.Hi, 1e-5)
}

func TestEnumerateWalksIntegerDomain(t *testing.T) {
	e := NewEngine()
	x := e.Declare("x", KindInteger, 1, 5)
	values, err := Enumerate(e, x)
	assert.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, values)
}

func TestEnumerateRejectsRealDomain(t *testing.T) {
	e := NewEngine()
	x := e.Declare("x", KindReal, 0, 1)
	_, err := Enumerate(e, x)
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

// minimize X+Y subject to X+Y>=3, X in [0,10], Y in [0,10]; optimum is 3.
func TestGlobalMinimumFindsBoundaryOptimum(t *testing.T) {
	e := NewEngine()
	x := e.Declare("x", KindReal, 0, 10)
	y := e.Declare("y", KindReal, 0, 10)
	sum := Bin{Op: OpAdd, X: VarRef{V: x}, Y: VarRef{V: y}}
	err := Post(e, Bin{Op: OpLe, X: Num{Value: 3}, Y: sum})
	assert.NoError(t, err)

	obj := e.Declare("obj", KindReal, 0, 20)
	err = Post(e, Bin{Op: OpEq, X: VarRef{V: obj}, Y: sum})
	assert.NoError(t, err)

	_, val, err := GlobalMinimum(context.Background(), e, obj, []Var{x, y}, WithPrecision(1e-3))
	assert.NoError(t, err)
	assert.InDelta(t, 3.0, val, 1e-2)
}

// With a target objective set below the true optimum, GlobalMaximum must
// stop as soon as the incumbent crosses it rather than exploring the
// full tree to the true maximum.
func TestGlobalMaximumStopsAtTargetObjective(t *testing.T) {
	e := NewEngine()
	x := e.Declare("x", KindReal, 0, 10)

	_, val, err := GlobalMaximum(context.Background(), e, x, []Var{x}, WithPrecision(1e-3), WithTargetObjective(4.0))
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, val, 4.0)
	assert.Less(t, val, 10.0)
}

func TestMedianZeroStraddling(t *testing.T) {
	iv := Interval{Kind: KindReal, Lo: -4, Hi: 9}
	assert.Equal(t, 0.0, iv.Median())
}

func TestMedianPositiveGeometric(t *testing.T) {
	iv := Interval{Kind: KindReal, Lo: 4, Hi: 9}
	assert.InDelta(t, 6.0, iv.Median(), 1e-9)
}

func TestMedianNegativeGeometric(t *testing.T) {
	iv := Interval{Kind: KindReal, Lo: -9, Hi: -4}
	assert.InDelta(t, -6.0, iv.Median(), 1e-9)
}

func TestMedianOnPoint(t *testing.T) {
	assert.Equal(t, 7.0, Point(KindReal, 7).Median())
}
