package iclp

func init() {
	registerContractor(OpAnd, contractAnd)
	registerContractor(OpOr, contractOr)
	registerContractor(OpXor, contractXor)
	registerContractor(OpNand, contractNand)
	registerContractor(OpNor, contractNor)
	registerContractor(OpImp, contractImp)
	registerContractor(OpNot, contractNot)
	registerContractor(OpIntegral, contractIntegral)
}

// boolTruthTable implements forward+backward propagation for any binary
// boolean connective from its truth table: one shared narrowing routine
// parameterized by the specific relation.
func boolTruthTable(result Interval, args []Interval, f func(a, b int) int) (Interval, []Interval, bool, error) {
	a, b := args[0], args[1]
	possible := map[int]bool{}
	for _, av := range possibleBools(a) {
		for _, bv := range possibleBools(b) {
			possible[f(av, bv)] = true
		}
	}
	result, _ = result.Intersect(boolUnion(possible))

	newA, newB := a, b
	if result.IsPoint() {
		want := int(result.Lo)
		aVals, bVals := map[int]bool{}, map[int]bool{}
		for _, av := range possibleBools(a) {
			for _, bv := range possibleBools(b) {
				if f(av, bv) == want {
					aVals[av] = true
					bVals[bv] = true
				}
			}
		}
		newA, _ = a.Intersect(boolUnion(aVals))
		newB, _ = b.Intersect(boolUnion(bVals))
	}
	return result, []Interval{newA, newB}, allPoints(result, newA, newB), nil
}

func possibleBools(iv Interval) []int {
	out := []int{}
	if iv.Contains(0) {
		out = append(out, 0)
	}
	if iv.Contains(1) {
		out = append(out, 1)
	}
	return out
}

func boolUnion(vals map[int]bool) Interval {
	switch {
	case vals[0] && vals[1]:
		return Interval{Kind: KindBoolean, Lo: 0, Hi: 1}
	case vals[0]:
		return Point(KindBoolean, 0)
	case vals[1]:
		return Point(KindBoolean, 1)
	default:
		return Interval{Kind: KindBoolean, Lo: 1, Hi: 0} // empty: no value survives
	}
}

func contractAnd(result Interval, args []Interval) (Interval, []Interval, bool, error) {
	return boolTruthTable(result, args, func(a, b int) int { return a & b })
}

func contractOr(result Interval, args []Interval) (Interval, []Interval, bool, error) {
	return boolTruthTable(result, args, func(a, b int) int { return a | b })
}

func contractXor(result Interval, args []Interval) (Interval, []Interval, bool, error) {
	return boolTruthTable(result, args, func(a, b int) int { return a ^ b })
}

func contractNand(result Interval, args []Interval) (Interval, []Interval, bool, error) {
	return boolTruthTable(result, args, func(a, b int) int {
		if a&b == 1 {
			return 0
		}
		return 1
	})
}

func contractNor(result Interval, args []Interval) (Interval, []Interval, bool, error) {
	return boolTruthTable(result, args, func(a, b int) int {
		if a|b == 1 {
			return 0
		}
		return 1
	})
}

func contractImp(result Interval, args []Interval) (Interval, []Interval, bool, error) {
	return boolTruthTable(result, args, func(a, b int) int {
		if a == 1 && b == 0 {
			return 0
		}
		return 1
	})
}

// contractNot implements Z = !A, a unary connective with only one operand.
func contractNot(result Interval, args []Interval) (Interval, []Interval, bool, error) {
	a := args[0]
	possible := map[int]bool{}
	for _, av := range possibleBools(a) {
		v := 1
		if av == 1 {
			v = 0
		}
		possible[v] = true
	}
	result, _ = result.Intersect(boolUnion(possible))

	newA := a
	if result.IsPoint() {
		want := 1
		if result.Lo == 1 {
			want = 0
		}
		newA, _ = a.Intersect(Point(a.Kind, float64(want)))
	}
	return result, []Interval{newA}, allPoints(result, newA), nil
}

// contractIntegral implements the "integral" coercion node: result is A
// rounded inward to the nearest representable integers, failing if no
// integer remains in A's range.
func contractIntegral(result Interval, args []Interval) (Interval, []Interval, bool, error) {
	a := args[0]
	rounded := Interval{Kind: KindInteger, Lo: a.Lo, Hi: a.Hi}.roundInward()
	newA, _ := a.Intersect(rounded)
	result, _ = result.Intersect(rounded)
	return result, []Interval{newA}, allPoints(result, newA), nil
}
