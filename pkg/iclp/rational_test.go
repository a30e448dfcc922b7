package iclp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRationalNewNormalizes(t *testing.T) {
	cases := []struct {
		name             string
		num, den         int64
		wantNum, wantDen int64
	}{
		{"simple fraction", 3, 4, 3, 4},
		{"reduces to lowest terms", 6, 8, 3, 4},
		{"negative numerator", -3, 4, -3, 4},
		{"negative denominator", 3, -4, -3, 4},
		{"both negative", -3, -4, 3, 4},
		{"zero numerator", 0, 5, 0, 1},
		{"integer", 5, 1, 5, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := NewRational(c.num, c.den)
			assert.Equal(t, c.wantNum, r.Num)
			assert.Equal(t, c.wantDen, r.Den)
		})
	}
}

func TestRationalNewRationalPanicsOnZeroDenominator(t *testing.T) {
	assert.Panics(t, func() { NewRational(1, 0) })
}

func TestRationalArithmetic(t *testing.T) {
	half := NewRational(1, 2)
	third := NewRational(1, 3)

	assert.True(t, half.Add(third).Equals(NewRational(5, 6)))
	assert.True(t, half.Sub(third).Equals(NewRational(1, 6)))
	assert.True(t, half.Mul(third).Equals(NewRational(1, 6)))
	assert.True(t, half.Div(third).Equals(NewRational(3, 2)))
	assert.True(t, half.Neg().Equals(NewRational(-1, 2)))
}

func TestRationalDivByZeroPanics(t *testing.T) {
	assert.Panics(t, func() { NewRational(1, 2).Div(NewRational(0, 1)) })
}

func TestRationalCmp(t *testing.T) {
	assert.Equal(t, -1, NewRational(1, 3).Cmp(NewRational(1, 2)))
	assert.Equal(t, 1, NewRational(2, 3).Cmp(NewRational(1, 2)))
	assert.Equal(t, 0, NewRational(2, 4).Cmp(NewRational(1, 2)))
}

func TestRationalPredicates(t *testing.T) {
	assert.True(t, NewRational(0, 1).IsZero())
	assert.True(t, NewRational(3, 4).IsPositive())
	assert.True(t, NewRational(-3, 4).IsNegative())
}

func TestRationalToFloatAndString(t *testing.T) {
	assert.InDelta(t, 0.5, NewRational(1, 2).ToFloat(), 1e-12)
	assert.Equal(t, "1/2", NewRational(1, 2).String())
	assert.Equal(t, "5", NewRational(5, 1).String())
}

// WidenLo/WidenHi must bracket the true rational value even when it is
// not exactly representable as a float64 (e.g. 1/3).
func TestRationalWidenBracketsTrueValue(t *testing.T) {
	third := NewRational(1, 3)
	lo := third.WidenLo()
	hi := third.WidenHi()
	assert.LessOrEqual(t, lo, third.ToFloat())
	assert.GreaterOrEqual(t, hi, third.ToFloat())
	// 1/3 is not a float64, so the true value lies strictly between them.
	assert.Less(t, lo, hi)
}

func TestRationalTooLarge(t *testing.T) {
	r := NewRational(1, 1000)
	assert.True(t, r.TooLarge(100))
	assert.False(t, r.TooLarge(10000))
}

func TestFromFloatApproximatesExactFraction(t *testing.T) {
	r := FromFloat(0.25, 1000)
	assert.Equal(t, int64(1), r.Num)
	assert.Equal(t, int64(4), r.Den)
}

func TestFromFloatPanicsOnNaNOrInf(t *testing.T) {
	assert.Panics(t, func() { FromFloat(math.NaN(), 100) })
	assert.Panics(t, func() { FromFloat(math.Inf(1), 100) })
}
