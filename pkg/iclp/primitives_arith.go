package iclp

import "math"

// Contractor narrows a constraint's result node and its operand nodes
// given their current intervals. persistent reports that no future call
// can narrow further, letting the scheduler retire the node from the
// agenda for good.
type Contractor func(result Interval, args []Interval) (newResult Interval, newArgs []Interval, persistent bool, err error)

var opContractors = map[Op]Contractor{}

func registerContractor(op Op, c Contractor) { opContractors[op] = c }

func init() {
	registerContractor(OpAdd, contractAdd)
	registerContractor(OpSub, contractSub)
	registerContractor(OpMul, contractMul)
	registerContractor(OpDiv, contractDiv)
	registerContractor(OpAbs, contractAbs)
	registerContractor(OpMin, contractMin)
	registerContractor(OpMax, contractMax)
	registerContractor(OpSqrt, contractSqrt)
	registerContractor(OpPow, contractPow)
}

func allPoints(ivs ...Interval) bool {
	for _, iv := range ivs {
		if !iv.IsPoint() {
			return false
		}
	}
	return true
}

// contractAdd implements result = a + b: forward image from the operand
// corners, then backward narrowing of each operand from the result and
// the other operand.
func contractAdd(result Interval, args []Interval) (Interval, []Interval, bool, error) {
	a, b := args[0], args[1]
	fwd := Interval{Kind: result.Kind, Lo: addLo(a.Lo, b.Lo), Hi: addHi(a.Hi, b.Hi)}
	result, _ = result.Intersect(fwd)

	newA, _ := a.Intersect(Interval{Kind: a.Kind, Lo: subLo(result.Lo, b.Hi), Hi: subHi(result.Hi, b.Lo)})
	newB, _ := b.Intersect(Interval{Kind: b.Kind, Lo: subLo(result.Lo, a.Hi), Hi: subHi(result.Hi, a.Lo)})
	return result, []Interval{newA, newB}, allPoints(result, newA, newB), nil
}

// contractSub implements result = a - b.
func contractSub(result Interval, args []Interval) (Interval, []Interval, bool, error) {
	a, b := args[0], args[1]
	fwd := Interval{Kind: result.Kind, Lo: subLo(a.Lo, b.Hi), Hi: subHi(a.Hi, b.Lo)}
	result, _ = result.Intersect(fwd)

	newA, _ := a.Intersect(Interval{Kind: a.Kind, Lo: addLo(result.Lo, b.Lo), Hi: addHi(result.Hi, b.Hi)})
	newB, _ := b.Intersect(Interval{Kind: b.Kind, Lo: subLo(a.Lo, result.Hi), Hi: subHi(a.Hi, result.Lo)})
	return result, []Interval{newA, newB}, allPoints(result, newA, newB), nil
}

// mulBounds computes the outward-rounded image of a*b over all four corner
// products, the standard interval-multiplication rule.
func mulBounds(a, b Interval) (lo, hi float64) {
	c1, c1h := mulLo(a.Lo, b.Lo), mulHi(a.Lo, b.Lo)
	c2, c2h := mulLo(a.Lo, b.Hi), mulHi(a.Lo, b.Hi)
	c3, c3h := mulLo(a.Hi, b.Lo), mulHi(a.Hi, b.Lo)
	c4, c4h := mulLo(a.Hi, b.Hi), mulHi(a.Hi, b.Hi)
	lo = math.Min(math.Min(c1, c2), math.Min(c3, c4))
	hi = math.Max(math.Max(c1h, c2h), math.Max(c3h, c4h))
	return lo, hi
}

// contractMul implements result = a * b. Backward division by an operand
// whose interval straddles zero cannot soundly narrow the other operand
// (the quotient would be an unbounded union of two rays), so that case is
// left unchanged rather than producing an unsound hull.
func contractMul(result Interval, args []Interval) (Interval, []Interval, bool, error) {
	a, b := args[0], args[1]
	lo, hi := mulBounds(a, b)
	result, _ = result.Intersect(Interval{Kind: result.Kind, Lo: lo, Hi: hi})

	newA := a
	if !(b.Lo <= 0 && b.Hi >= 0) {
		lo, hi := divBounds(result, b)
		newA, _ = a.Intersect(Interval{Kind: a.Kind, Lo: lo, Hi: hi})
	}
	newB := b
	if !(a.Lo <= 0 && a.Hi >= 0) {
		lo, hi := divBounds(result, a)
		newB, _ = b.Intersect(Interval{Kind: b.Kind, Lo: lo, Hi: hi})
	}
	return result, []Interval{newA, newB}, allPoints(result, newA, newB), nil
}

// divBounds computes the outward-rounded image of a/b, requiring the
// caller to have already excluded b straddling zero.
func divBounds(a, b Interval) (lo, hi float64) {
	c1, c1h := divLo(a.Lo, b.Lo), divHi(a.Lo, b.Lo)
	c2, c2h := divLo(a.Lo, b.Hi), divHi(a.Lo, b.Hi)
	c3, c3h := divLo(a.Hi, b.Lo), divHi(a.Hi, b.Lo)
	c4, c4h := divLo(a.Hi, b.Hi), divHi(a.Hi, b.Hi)
	lo = math.Min(math.Min(c1, c2), math.Min(c3, c4))
	hi = math.Max(math.Max(c1h, c2h), math.Max(c3h, c4h))
	return lo, hi
}

// contractDiv implements result = a / b.
func contractDiv(result Interval, args []Interval) (Interval, []Interval, bool, error) {
	a, b := args[0], args[1]
	if b.Lo <= 0 && b.Hi >= 0 && !b.IsPoint() {
		// divisor straddles zero: no sound narrowing of result either.
		return result, []Interval{a, b}, false, nil
	}
	lo, hi := divBounds(a, b)
	result, _ = result.Intersect(Interval{Kind: result.Kind, Lo: lo, Hi: hi})

	lo, hi = mulBounds(result, b)
	newA, _ := a.Intersect(Interval{Kind: a.Kind, Lo: lo, Hi: hi})

	newB := b
	if !(result.Lo <= 0 && result.Hi >= 0 && !result.IsPoint()) {
		lo, hi = divBounds(a, result)
		newB, _ = b.Intersect(Interval{Kind: b.Kind, Lo: lo, Hi: hi})
	}
	return result, []Interval{newA, newB}, allPoints(result, newA, newB), nil
}

// contractAbs implements result = |a| over continuous bounds.
func contractAbs(result Interval, args []Interval) (Interval, []Interval, bool, error) {
	a := args[0]
	var fwd Interval
	switch {
	case a.Lo >= 0:
		fwd = a
	case a.Hi <= 0:
		fwd = Interval{Kind: a.Kind, Lo: -a.Hi, Hi: -a.Lo}
	default:
		fwd = Interval{Kind: a.Kind, Lo: 0, Hi: math.Max(-a.Lo, a.Hi)}
	}
	result, _ = result.Intersect(fwd)

	newA := a
	switch {
	case a.Lo >= 0:
		newA, _ = a.Intersect(result)
	case a.Hi <= 0:
		newA, _ = a.Intersect(Interval{Kind: a.Kind, Lo: -result.Hi, Hi: -result.Lo})
	default:
		lo := math.Max(a.Lo, -result.Hi)
		hi := math.Min(a.Hi, result.Hi)
		newA, _ = a.Intersect(Interval{Kind: a.Kind, Lo: lo, Hi: hi})
	}
	return result, []Interval{newA}, allPoints(result, newA), nil
}

// contractMin implements result = min(a, b): bounds-consistent, not fully
// arc-consistent, on ordering constraints.
func contractMin(result Interval, args []Interval) (Interval, []Interval, bool, error) {
	a, b := args[0], args[1]
	fwd := Interval{Kind: result.Kind, Lo: math.Min(a.Lo, b.Lo), Hi: math.Min(a.Hi, b.Hi)}
	result, _ = result.Intersect(fwd)

	newA, _ := a.Intersect(Interval{Kind: a.Kind, Lo: result.Lo, Hi: a.Hi})
	newB, _ := b.Intersect(Interval{Kind: b.Kind, Lo: result.Lo, Hi: b.Hi})
	return result, []Interval{newA, newB}, allPoints(result, newA, newB), nil
}

// contractMax implements result = max(a, b).
func contractMax(result Interval, args []Interval) (Interval, []Interval, bool, error) {
	a, b := args[0], args[1]
	fwd := Interval{Kind: result.Kind, Lo: math.Max(a.Lo, b.Lo), Hi: math.Max(a.Hi, b.Hi)}
	result, _ = result.Intersect(fwd)

	newA, _ := a.Intersect(Interval{Kind: a.Kind, Lo: a.Lo, Hi: result.Hi})
	newB, _ := b.Intersect(Interval{Kind: b.Kind, Lo: b.Lo, Hi: result.Hi})
	return result, []Interval{newA, newB}, allPoints(result, newA, newB), nil
}

// contractSqrt implements result = sqrt(a), a >= 0.
func contractSqrt(result Interval, args []Interval) (Interval, []Interval, bool, error) {
	a := args[0]
	newA, _ := a.Intersect(Interval{Kind: a.Kind, Lo: 0, Hi: math.Inf(1)})
	fwd := Interval{Kind: result.Kind, Lo: sqrtLo(newA.Lo), Hi: sqrtHi(newA.Hi)}
	result, _ = result.Intersect(fwd)

	lo, hi := mulBounds(result, result)
	newA, _ = newA.Intersect(Interval{Kind: a.Kind, Lo: lo, Hi: hi})
	return result, []Interval{newA}, allPoints(result, newA), nil
}

// contractPow implements result = a^n for a constant integer exponent
// carried as the (point) second argument. Backward narrowing of the base
// is left to the scheduler's other constraints for exponents other than 2,
// where the inverse is not single-valued.
func contractPow(result Interval, args []Interval) (Interval, []Interval, bool, error) {
	a, n := args[0], args[1]
	if !n.IsPoint() {
		return result, args, false, nil
	}
	exp := n.Lo
	lo, hi := powLo(a.Lo, exp), powHi(a.Hi, exp)
	if lo > hi {
		lo, hi = hi, lo
	}
	if exp == math.Trunc(exp) && int(exp)%2 == 0 && a.Lo <= 0 && a.Hi >= 0 {
		lo = 0
	}
	result, _ = result.Intersect(Interval{Kind: result.Kind, Lo: lo, Hi: hi})

	newA := a
	if exp == 2 {
		lo2, hi2 := sqrtLo(math.Max(result.Lo, 0)), sqrtHi(math.Max(result.Hi, 0))
		if a.Lo >= 0 {
			newA, _ = a.Intersect(Interval{Kind: a.Kind, Lo: lo2, Hi: hi2})
		} else if a.Hi <= 0 {
			newA, _ = a.Intersect(Interval{Kind: a.Kind, Lo: -hi2, Hi: -lo2})
		}
	}
	return result, []Interval{newA, n}, allPoints(result, newA), nil
}
