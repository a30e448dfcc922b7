package iclp

func init() {
	registerContractor(OpEq, contractEq)
	registerContractor(OpNe, contractNe)
	registerContractor(OpLt, contractLt)
	registerContractor(OpLe, contractLe)
	registerContractor(OpSubset, contractSubset)
}

// boolResult intersects result (a boolean-kind node) with the decided
// value v and reports whether that was consistent with result's current
// interval.
func boolResult(result Interval, v float64) (Interval, bool) {
	return result.Intersect(Point(KindBoolean, v))
}

// contractEq implements Z = (A == B) over continuous bounds: Z narrows to
// 0 once A and B cannot overlap, to 1 once both are the same point, and
// narrowing Z to a decided point 1 backward-propagates A and B to their
// intersection.
func contractEq(result Interval, args []Interval) (Interval, []Interval, bool, error) {
	a, b := args[0], args[1]
	persistent := false

	if !a.Overlaps(b) {
		result, _ = boolResult(result, 0)
		persistent = true
	} else if a.IsPoint() && b.IsPoint() && a.Lo == b.Lo {
		result, _ = boolResult(result, 1)
		persistent = true
	}

	newA, newB := a, b
	if result.IsPoint() {
		switch result.Lo {
		case 1:
			if !a.Overlaps(b) {
				return result, args, true, ErrInconsistent
			}
			inter, _ := a.Intersect(b)
			newA, _ = a.Intersect(inter)
			newB, _ = b.Intersect(inter)
		case 0:
			if a.IsPoint() && b.IsPoint() && a.Lo == b.Lo {
				return result, args, true, ErrInconsistent
			}
		}
	}
	return result, []Interval{newA, newB}, persistent || allPoints(result, newA, newB), nil
}

// contractNe implements Z = (A != B): the mirror image of contractEq.
func contractNe(result Interval, args []Interval) (Interval, []Interval, bool, error) {
	a, b := args[0], args[1]
	persistent := false

	if !a.Overlaps(b) {
		result, _ = boolResult(result, 1)
		persistent = true
	} else if a.IsPoint() && b.IsPoint() && a.Lo == b.Lo {
		result, _ = boolResult(result, 0)
		persistent = true
	}

	newA, newB := a, b
	if result.IsPoint() && result.Lo == 0 {
		if a.Overlaps(b) {
			inter, _ := a.Intersect(b)
			newA, _ = a.Intersect(inter)
			newB, _ = b.Intersect(inter)
		} else {
			return result, args, true, ErrInconsistent
		}
	}
	if result.IsPoint() && result.Lo == 1 && a.IsPoint() && b.IsPoint() && a.Lo == b.Lo {
		return result, args, true, ErrInconsistent
	}
	return result, []Interval{newA, newB}, persistent || allPoints(result, newA, newB), nil
}

// contractLt implements Z = (A < B), treated bounds-consistently like <=
// since continuous floating bounds carry no meaningful strict/non-strict
// distinction at the narrowing granularity this engine works at.
func contractLt(result Interval, args []Interval) (Interval, []Interval, bool, error) {
	return orderingContractor(result, args, false)
}

// contractLe implements Z = (A <= B).
func contractLe(result Interval, args []Interval) (Interval, []Interval, bool, error) {
	return orderingContractor(result, args, true)
}

func orderingContractor(result Interval, args []Interval, _ bool) (Interval, []Interval, bool, error) {
	a, b := args[0], args[1]
	persistent := false

	if a.Hi <= b.Lo {
		result, _ = boolResult(result, 1)
		persistent = true
	} else if a.Lo > b.Hi {
		result, _ = boolResult(result, 0)
		persistent = true
	}

	newA, newB := a, b
	if result.IsPoint() {
		switch result.Lo {
		case 1:
			newA, _ = a.Intersect(Interval{Kind: a.Kind, Lo: a.Lo, Hi: b.Hi})
			newB, _ = b.Intersect(Interval{Kind: b.Kind, Lo: a.Lo, Hi: b.Hi})
		case 0:
			newA, _ = a.Intersect(Interval{Kind: a.Kind, Lo: b.Lo, Hi: a.Hi})
			newB, _ = b.Intersect(Interval{Kind: b.Kind, Lo: b.Lo, Hi: a.Hi})
		}
	}
	return result, []Interval{newA, newB}, persistent || allPoints(result, newA, newB), nil
}

// contractSubset implements Z = (A subset B). Not persistent once decided
// true: B can still narrow (shrink) on later rounds, which can turn a true
// containment false again, so the relation is re-checked every round.
func contractSubset(result Interval, args []Interval) (Interval, []Interval, bool, error) {
	a, b := args[0], args[1]
	contained := b.Lo <= a.Lo && a.Hi <= b.Hi

	if contained {
		result, _ = boolResult(result, 1)
	} else if !a.Overlaps(b) {
		result, _ = boolResult(result, 0)
	}

	newA := a
	if result.IsPoint() && result.Lo == 1 {
		newA, _ = a.Intersect(b)
	}
	return result, []Interval{newA, b}, false, nil
}
