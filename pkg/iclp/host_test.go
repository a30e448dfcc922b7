package iclp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBindNumberNarrowsToPoint(t *testing.T) {
	e := NewEngine()
	x := e.Declare("x", KindReal, -10, 10)

	err := e.Bind(x, 3.5)
	assert.NoError(t, err)
	assert.True(t, e.IsDecided(x))
	assert.Equal(t, 3.5, e.LowerBound(x))
}

func TestBindNumberOutOfRangeFails(t *testing.T) {
	e := NewEngine()
	x := e.Declare("x", KindInteger, 0, 9)

	err := e.Bind(x, 42)
	assert.ErrorIs(t, err, ErrInconsistent)
}

func TestBindVarMergesViaEquality(t *testing.T) {
	e := NewEngine()
	x := e.Declare("x", KindReal, 0, 10)
	y := e.Declare("y", KindReal, 5, 20)

	err := e.Bind(x, y)
	assert.NoError(t, err)
	lo, hi := e.Range(x)
	assert.Equal(t, 5.0, lo)
	assert.Equal(t, 10.0, hi)
	xlo, xhi, xkind := e.Domain(x)
	ylo, yhi, ykind := e.Domain(y)
	assert.Equal(t, [3]interface{}{xlo, xhi, xkind}, [3]interface{}{ylo, yhi, ykind})
}

func TestCheckHostEnvironmentPassesOnGoRuntime(t *testing.T) {
	assert.NoError(t, checkHostEnvironment())
}

func TestNewEngineDoesNotPanicOnConformingHost(t *testing.T) {
	assert.NotPanics(t, func() { NewEngine() })
}

func TestBindUnknownVarFails(t *testing.T) {
	e1 := NewEngine()
	e2 := NewEngine()
	x := e1.Declare("x", KindReal, 0, 1)

	err := e2.Bind(x, 0.5)
	assert.ErrorIs(t, err, ErrUnknownVar)
}
