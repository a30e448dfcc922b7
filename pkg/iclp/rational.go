package iclp

import (
	"fmt"
	"math"
)

// Rational represents an exact fraction with a normalized integer numerator
// and denominator. Interval bounds themselves are float64; a Rational is
// turned into an enclosing pair of float64 bounds with WidenLo/WidenHi.
type Rational struct {
	Num int64
	Den int64 // always > 0 after normalization
}

// NewRational creates num/den in normalized form. Panics if den is zero.
func NewRational(num, den int64) Rational {
	if den == 0 {
		panic("rational: division by zero")
	}
	if num == 0 {
		return Rational{Num: 0, Den: 1}
	}
	if den < 0 {
		num, den = -num, -den
	}
	g := gcd(abs64(num), abs64(den))
	return Rational{Num: num / g, Den: den / g}
}

func (r Rational) Add(o Rational) Rational {
	return NewRational(r.Num*o.Den+o.Num*r.Den, r.Den*o.Den)
}

func (r Rational) Sub(o Rational) Rational {
	return NewRational(r.Num*o.Den-o.Num*r.Den, r.Den*o.Den)
}

func (r Rational) Mul(o Rational) Rational {
	return NewRational(r.Num*o.Num, r.Den*o.Den)
}

func (r Rational) Div(o Rational) Rational {
	if o.Num == 0 {
		panic("rational: division by zero")
	}
	return NewRational(r.Num*o.Den, r.Den*o.Num)
}

func (r Rational) Neg() Rational { return Rational{Num: -r.Num, Den: r.Den} }

func (r Rational) IsZero() bool     { return r.Num == 0 }
func (r Rational) IsPositive() bool { return r.Num > 0 }
func (r Rational) IsNegative() bool { return r.Num < 0 }

// Cmp returns -1, 0, or 1 as r is less than, equal to, or greater than o.
func (r Rational) Cmp(o Rational) int {
	lhs := r.Num * o.Den
	rhs := o.Num * r.Den
	switch {
	case lhs < rhs:
		return -1
	case lhs > rhs:
		return 1
	default:
		return 0
	}
}

func (r Rational) ToFloat() float64 { return float64(r.Num) / float64(r.Den) }

func (r Rational) String() string {
	if r.Den == 1 {
		return fmt.Sprintf("%d", r.Num)
	}
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

func (r Rational) Equals(o Rational) bool { return r.Num == o.Num && r.Den == o.Den }

// WidenLo returns the nearest float64 that is <= r (outward rounding for a
// lower bound). Exact when r.ToFloat() already rounds down to r. The
// comparison is exact while Num and Den fit in 53 bits.
func (r Rational) WidenLo() float64 {
	f := r.ToFloat()
	if math.FMA(f, float64(r.Den), -float64(r.Num)) > 0 {
		return math.Nextafter(f, math.Inf(-1))
	}
	return f
}

// WidenHi returns the nearest float64 that is >= r (outward rounding for an
// upper bound).
func (r Rational) WidenHi() float64 {
	f := r.ToFloat()
	if math.FMA(f, float64(r.Den), -float64(r.Num)) < 0 {
		return math.Nextafter(f, math.Inf(1))
	}
	return f
}

// TooLarge reports whether r's denominator, or the magnitude of its
// numerator, has grown past maxDen, the point
// at which the exact rational rep should fall back to rounded float64 per
// the configurable "max size before automatic conversion to float".
func (r Rational) TooLarge(maxDen int64) bool {
	return r.Den > maxDen || r.Num > maxDen || r.Num < -maxDen
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

func abs64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

// FromFloat approximates f as a rational with denominator at most
// maxDenominator, using the continued-fraction algorithm.
func FromFloat(f float64, maxDenominator int64) Rational {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		panic("rational: cannot convert NaN or Inf to rational")
	}
	sign := int64(1)
	if f < 0 {
		sign = -1
		f = -f
	}
	tolerance := 1.0 / float64(maxDenominator*maxDenominator)
	h1, h2 := int64(f), int64(1)
	k1, k2 := int64(1), int64(0)
	remaining := f - float64(int64(f))

	for k1 <= maxDenominator {
		if math.Abs(float64(h1)/float64(k1)-f) < tolerance {
			return NewRational(sign*h1, k1)
		}
		if remaining < tolerance {
			break
		}
		a := int64(1.0 / remaining)
		h1, h2 = a*h1+h2, h1
		k1, k2 = a*k1+k2, k1
		remaining = 1.0/remaining - float64(a)
	}
	if k1 > maxDenominator && k2 > 0 {
		return NewRational(sign*h2, k2)
	}
	return NewRational(sign*h1, k1)
}
