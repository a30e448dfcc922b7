package iclp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContractAddNarrowsBackward(t *testing.T) {
	// x + y = 10, x in [0,3] => y must narrow to [7,10]
	result := Point(KindReal, 10)
	x := Interval{Kind: KindReal, Lo: 0, Hi: 3}
	y := Full(KindReal)

	_, args, _, err := contractAdd(result, []Interval{x, y})
	assert.NoError(t, err)
	assert.InDelta(t, 7, args[1].Lo, 1e-9)
	assert.InDelta(t, 10, args[1].Hi, 1e-9)
}

func TestContractMulSoundness(t *testing.T) {
	a := Interval{Kind: KindReal, Lo: -2, Hi: 3}
	b := Interval{Kind: KindReal, Lo: -1, Hi: 4}
	result := Full(KindReal)

	newResult, _, _, err := contractMul(result, []Interval{a, b})
	assert.NoError(t, err)
	// every product of a point in a and a point in b must lie in newResult
	for _, av := range []float64{-2, 0, 3} {
		for _, bv := range []float64{-1, 0, 4} {
			assert.True(t, newResult.Contains(av*bv), "newResult should contain %v*%v", av, bv)
		}
	}
}

func TestContractAbsForward(t *testing.T) {
	a := Interval{Kind: KindReal, Lo: -3, Hi: 5}
	result := Full(KindReal)
	newResult, _, _, err := contractAbs(result, []Interval{a})
	assert.NoError(t, err)
	assert.Equal(t, 0.0, newResult.Lo)
	assert.Equal(t, 5.0, newResult.Hi)
}

func TestContractEqDisjointForcesFalse(t *testing.T) {
	a := Interval{Kind: KindReal, Lo: 0, Hi: 1}
	b := Interval{Kind: KindReal, Lo: 2, Hi: 3}
	result := Full(KindBoolean)
	newResult, _, persistent, err := contractEq(result, []Interval{a, b})
	assert.NoError(t, err)
	assert.True(t, newResult.IsPoint())
	assert.Equal(t, 0.0, newResult.Lo)
	assert.True(t, persistent)
}

func TestContractEqDecidedTrueNarrowsOperands(t *testing.T) {
	a := Interval{Kind: KindReal, Lo: 0, Hi: 10}
	b := Interval{Kind: KindReal, Lo: 5, Hi: 20}
	result := Point(KindBoolean, 1)
	_, args, _, err := contractEq(result, []Interval{a, b})
	assert.NoError(t, err)
	assert.Equal(t, 5.0, args[0].Lo)
	assert.Equal(t, 10.0, args[0].Hi)
	assert.Equal(t, args[0], args[1])
}

func TestContractLeDecided(t *testing.T) {
	a := Interval{Kind: KindReal, Lo: 0, Hi: 1}
	b := Interval{Kind: KindReal, Lo: 5, Hi: 6}
	result := Full(KindBoolean)
	newResult, _, persistent, err := contractLe(result, []Interval{a, b})
	assert.NoError(t, err)
	assert.Equal(t, 1.0, newResult.Lo)
	assert.True(t, persistent)
}
