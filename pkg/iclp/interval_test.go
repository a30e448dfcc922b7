package iclp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntervalIntersect(t *testing.T) {
	cases := []struct {
		name    string
		a, b    Interval
		wantLo  float64
		wantHi  float64
		empty   bool
	}{
		{"overlap", Interval{KindReal, 0, 10}, Interval{KindReal, 5, 15}, 5, 10, false},
		{"disjoint", Interval{KindReal, 0, 1}, Interval{KindReal, 2, 3}, 2, 1, true},
		{"nested", Interval{KindReal, 0, 10}, Interval{KindReal, 3, 4}, 3, 4, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, _ := c.a.Intersect(c.b)
			assert.Equal(t, c.wantLo, got.Lo)
			assert.Equal(t, c.wantHi, got.Hi)
			assert.Equal(t, c.empty, got.Empty())
		})
	}
}

func TestIntervalMidpoint(t *testing.T) {
	unbounded := Interval{Kind: KindReal, Lo: math.Inf(-1), Hi: math.Inf(1)}
	assert.Equal(t, 0.0, unbounded.Midpoint())
	assert.Equal(t, 5.0, Interval{Kind: KindReal, Lo: 0, Hi: 10}.Midpoint())
	assert.Equal(t, 3.0, Point(KindReal, 3).Midpoint())
}

func TestIntervalRoundInward(t *testing.T) {
	iv := Interval{Kind: KindInteger, Lo: 1.2, Hi: 4.8}.roundInward()
	assert.Equal(t, 2.0, iv.Lo)
	assert.Equal(t, 4.0, iv.Hi)
}

func TestIntervalDeltaOnPoint(t *testing.T) {
	assert.Equal(t, 0.0, Point(KindReal, 7).Delta())
}
