package iclp

import "math"

// numeric.go implements the rounded numeric kernel: directed-rounding
// arithmetic over float64 using math.Nextafter to step a plain-rounded
// result outward by one ULP. Go has no FLT_ROUNDS control, so this
// "nexttoward pairs" technique is not a fallback, it is the kernel.
// addLo/addHi return a sum that is exactly representable without stepping.

func addLo(a, b float64) float64 {
	s := a + b
	if s-a == b && s-b == a {
		return s
	}
	return math.Nextafter(s, math.Inf(-1))
}

func addHi(a, b float64) float64 {
	s := a + b
	if s-a == b && s-b == a {
		return s
	}
	return math.Nextafter(s, math.Inf(1))
}

func subLo(a, b float64) float64 { return math.Nextafter(a-b, math.Inf(-1)) }
func subHi(a, b float64) float64 { return math.Nextafter(a-b, math.Inf(1)) }

func mulLo(a, b float64) float64 { return math.Nextafter(a*b, math.Inf(-1)) }
func mulHi(a, b float64) float64 { return math.Nextafter(a*b, math.Inf(1)) }

func divLo(a, b float64) float64 {
	if b == 0 {
		return signedInf(a, -1)
	}
	return math.Nextafter(a/b, math.Inf(-1))
}

func divHi(a, b float64) float64 {
	if b == 0 {
		return signedInf(a, 1)
	}
	return math.Nextafter(a/b, math.Inf(1))
}

func signedInf(numerator float64, dir int) float64 {
	if numerator == 0 {
		return math.NaN()
	}
	sign := 1.0
	if numerator < 0 {
		sign = -1.0
	}
	return math.Inf(int(sign) * dir)
}

func sqrtLo(a float64) float64 {
	if a < 0 {
		return math.NaN()
	}
	return math.Nextafter(math.Sqrt(a), math.Inf(-1))
}

func sqrtHi(a float64) float64 {
	if a < 0 {
		return math.NaN()
	}
	return math.Nextafter(math.Sqrt(a), math.Inf(1))
}

// powLo/powHi enclose a^b outward. Integer exponents are handled exactly
// via repeated squaring with outward-rounded multiplies; non-integer
// exponents fall back to math.Pow stepped outward by one ULP.
func powLo(a, b float64) float64 {
	if b == math.Trunc(b) && math.Abs(b) <= 64 {
		return intPow(a, int(b), false)
	}
	return math.Nextafter(math.Pow(a, b), math.Inf(-1))
}

func powHi(a, b float64) float64 {
	if b == math.Trunc(b) && math.Abs(b) <= 64 {
		return intPow(a, int(b), true)
	}
	return math.Nextafter(math.Pow(a, b), math.Inf(1))
}

func intPow(a float64, n int, roundUp bool) float64 {
	neg := n < 0
	if neg {
		n = -n
	}
	mul := mulLo
	if roundUp {
		mul = mulHi
	}
	result := 1.0
	base := a
	for n > 0 {
		if n&1 == 1 {
			result = mul(result, base)
		}
		base = mul(base, base)
		n >>= 1
	}
	if neg {
		if roundUp {
			return divHi(1, result)
		}
		return divLo(1, result)
	}
	return result
}

// expRange, logRange, sinRange, cosRange, tanRange enclose the image of a
// monotone-or-bounded transcendental function over [lo, hi]. exp and log
// are monotone, so the image is just the endpoint images rounded outward;
// sin/cos/tan require checking whether an extremum falls inside the
// argument interval.

func expRange(lo, hi float64) (float64, float64) {
	return math.Nextafter(math.Exp(lo), math.Inf(-1)), math.Nextafter(math.Exp(hi), math.Inf(1))
}

func logRange(lo, hi float64) (float64, float64) {
	if lo < 0 {
		return math.NaN(), math.NaN()
	}
	var l float64
	if lo == 0 {
		l = math.Inf(-1)
	} else {
		l = math.Nextafter(math.Log(lo), math.Inf(-1))
	}
	h := math.Nextafter(math.Log(hi), math.Inf(1))
	return l, h
}

// sinRange encloses sin([lo,hi]) by sampling endpoints and any ±π/2+kπ
// extrema contained in the interval.
func sinRange(lo, hi float64) (float64, float64) {
	return periodicRange(lo, hi, math.Sin, math.Pi/2)
}

func cosRange(lo, hi float64) (float64, float64) {
	return periodicRange(lo, hi, math.Cos, 0)
}

// periodicRange encloses f([lo,hi]) for a ±1-bounded periodic f whose
// extrema occur at phase+k*π, by evaluating the endpoints plus every
// extremum point that lands inside [lo, hi].
func periodicRange(lo, hi float64, f func(float64) float64, phase float64) (float64, float64) {
	if hi-lo >= 2*math.Pi {
		return -1, 1
	}
	minV := math.Nextafter(f(lo), math.Inf(-1))
	maxV := math.Nextafter(f(lo), math.Inf(1))
	consider := func(x float64) {
		v := f(x)
		if vl := math.Nextafter(v, math.Inf(-1)); vl < minV {
			minV = vl
		}
		if vh := math.Nextafter(v, math.Inf(1)); vh > maxV {
			maxV = vh
		}
	}
	consider(hi)
	k := math.Floor((lo - phase) / math.Pi)
	for x := phase + k*math.Pi; x <= hi+1e-9; x += math.Pi {
		if x >= lo-1e-9 && x <= hi+1e-9 {
			consider(x)
		}
	}
	return minV, maxV
}

func tanRange(lo, hi float64) (float64, float64) {
	// tan has a pole at π/2+kπ; if one falls strictly inside, the image is
	// unbounded in both directions.
	k := math.Floor((lo - math.Pi/2) / math.Pi)
	for x := math.Pi/2 + k*math.Pi; x <= hi+1e-9; x += math.Pi {
		if x > lo+1e-9 && x < hi-1e-9 {
			return math.Inf(-1), math.Inf(1)
		}
	}
	return math.Nextafter(math.Tan(lo), math.Inf(-1)), math.Nextafter(math.Tan(hi), math.Inf(1))
}
