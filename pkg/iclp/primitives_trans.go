package iclp

func init() {
	registerContractor(OpExp, contractExp)
	registerContractor(OpLog, contractLog)
	registerContractor(OpSin, contractSin)
	registerContractor(OpCos, contractCos)
	registerContractor(OpTan, contractTan)
}

// contractExp implements result = exp(a). exp is monotone, so backward
// narrowing of a from result uses log, the same range-enclosure the
// forward direction of OpLog uses.
func contractExp(result Interval, args []Interval) (Interval, []Interval, bool, error) {
	a := args[0]
	lo, hi := expRange(a.Lo, a.Hi)
	result, _ = result.Intersect(Interval{Kind: result.Kind, Lo: lo, Hi: hi})

	if result.Lo > 0 {
		lo, hi = logRange(result.Lo, result.Hi)
		a, _ = a.Intersect(Interval{Kind: a.Kind, Lo: lo, Hi: hi})
	}
	return result, []Interval{a}, allPoints(result, a), nil
}

// contractLog implements result = log(a), a > 0.
func contractLog(result Interval, args []Interval) (Interval, []Interval, bool, error) {
	a := args[0]
	newA, _ := a.Intersect(Interval{Kind: a.Kind, Lo: 0, Hi: a.Hi})
	lo, hi := logRange(newA.Lo, newA.Hi)
	result, _ = result.Intersect(Interval{Kind: result.Kind, Lo: lo, Hi: hi})

	lo, hi = expRange(result.Lo, result.Hi)
	newA, _ = newA.Intersect(Interval{Kind: a.Kind, Lo: lo, Hi: hi})
	return result, []Interval{newA}, allPoints(result, newA), nil
}

// contractSin/contractCos/contractTan enclose the forward image of their
// periodic function and leave the operand unconstrained on the way back:
// the inverse of a periodic function over an interval is in general a
// union of disjoint intervals, which Interval cannot represent, so
// backward narrowing is left to whatever other constraints bound the
// argument: this engine targets bounds consistency rather than full arc
// consistency on operators where the inverse image is awkward to enclose.
func contractSin(result Interval, args []Interval) (Interval, []Interval, bool, error) {
	a := args[0]
	lo, hi := sinRange(a.Lo, a.Hi)
	result, _ = result.Intersect(Interval{Kind: result.Kind, Lo: lo, Hi: hi})
	return result, []Interval{a}, false, nil
}

func contractCos(result Interval, args []Interval) (Interval, []Interval, bool, error) {
	a := args[0]
	lo, hi := cosRange(a.Lo, a.Hi)
	result, _ = result.Intersect(Interval{Kind: result.Kind, Lo: lo, Hi: hi})
	return result, []Interval{a}, false, nil
}

func contractTan(result Interval, args []Interval) (Interval, []Interval, bool, error) {
	a := args[0]
	lo, hi := tanRange(a.Lo, a.Hi)
	result, _ = result.Intersect(Interval{Kind: result.Kind, Lo: lo, Hi: hi})
	return result, []Interval{a}, false, nil
}
