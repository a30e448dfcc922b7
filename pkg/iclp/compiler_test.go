package iclp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostMultipleConstraints(t *testing.T) {
	e := NewEngine()
	x := e.Declare("x", KindInteger, 0, 20)

	err := Post(e,
		Bin{Op: OpLe, X: VarRef{V: x}, Y: Num{Value: 10}},
		Bin{Op: OpLe, X: Num{Value: 5}, Y: VarRef{V: x}},
	)
	assert.NoError(t, err)
	lo, hi := e.Range(x)
	assert.Equal(t, 5.0, lo)
	assert.Equal(t, 10.0, hi)
}

func TestNaryFlattensAssociativeChain(t *testing.T) {
	e := NewEngine()
	a := e.Declare("a", KindReal, 1, 1)
	b := e.Declare("b", KindReal, 2, 2)
	c := e.Declare("c", KindReal, 3, 3)
	sum := e.Declare("sum", KindReal, -100, 100)

	err := Post(e, Bin{
		Op: OpEq,
		X:  Nary{Op: OpAdd, Args: []Expr{VarRef{V: a}, VarRef{V: b}, VarRef{V: c}}},
		Y:  VarRef{V: sum},
	})
	assert.NoError(t, err)
	assert.Equal(t, 6.0, e.LowerBound(sum))
}

func TestPostNonBooleanExpressionFails(t *testing.T) {
	e := NewEngine()
	x := e.Declare("x", KindReal, 0, 10)

	err := Post(e, Bin{Op: OpAdd, X: VarRef{V: x}, Y: Num{Value: 1}})
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestCompileUnsupportedOperatorFails(t *testing.T) {
	e := NewEngine()
	x := e.Declare("x", KindReal, 0, 10)

	err := Post(e, Bin{Op: Op(9999), X: VarRef{V: x}, Y: Num{Value: 1}})
	assert.ErrorIs(t, err, ErrUnsupportedOperator)
}

func TestIntegralCoercionRoundsInward(t *testing.T) {
	e := NewEngine()
	x := e.Declare("x", KindReal, 1.2, 4.8)
	n := e.Declare("n", KindInteger, -100, 100)

	err := Post(e, Bin{Op: OpEq, X: Unary{Op: OpIntegral, X: VarRef{V: x}}, Y: VarRef{V: n}})
	assert.NoError(t, err)
	lo, hi := e.Range(n)
	assert.Equal(t, 2.0, lo)
	assert.Equal(t, 4.0, hi)
}
