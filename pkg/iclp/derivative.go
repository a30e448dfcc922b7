package iclp

import "fmt"

// PartialDerivative symbolically differentiates expr with respect to wrt,
// returning a new Expr. Differentiation never descends into relations
// (Eq/Lt/...) or boolean connectives — only the arithmetic and
// transcendental operators have defined derivatives; higher-order
// derivatives are left to the caller applying PartialDerivative again to
// its own output, rather than a dedicated meta-contractor.
func PartialDerivative(expr Expr, wrt Var) (Expr, error) {
	switch e := expr.(type) {
	case Num:
		return Num{0}, nil
	case VarRef:
		if e.V.id == wrt.id {
			return Num{1}, nil
		}
		return Num{0}, nil
	case Unary:
		dx, err := PartialDerivative(e.X, wrt)
		if err != nil {
			return nil, err
		}
		return differentiateUnary(e.Op, e.X, dx)
	case Bin:
		dx, err := PartialDerivative(e.X, wrt)
		if err != nil {
			return nil, err
		}
		dy, err := PartialDerivative(e.Y, wrt)
		if err != nil {
			return nil, err
		}
		return differentiateBin(e.Op, e.X, e.Y, dx, dy)
	case Nary:
		if len(e.Args) == 0 {
			return Num{0}, nil
		}
		acc := e.Args[0]
		for _, arg := range e.Args[1:] {
			acc = Bin{Op: e.Op, X: acc, Y: arg}
		}
		return PartialDerivative(acc, wrt)
	default:
		return nil, fmt.Errorf("iclp: PartialDerivative: expression %T has no defined derivative", expr)
	}
}

func differentiateUnary(op Op, x, dx Expr) (Expr, error) {
	switch op {
	case OpAbs:
		// d/dx |x| = sign(x)*dx; approximated with x/|x| * dx, valid away
		// from x=0 where |x| is not differentiable.
		return Bin{Op: OpMul, X: Bin{Op: OpDiv, X: x, Y: Unary{Op: OpAbs, X: x}}, Y: dx}, nil
	case OpSqrt:
		return Bin{Op: OpDiv, X: dx, Y: Bin{Op: OpMul, X: Num{2}, Y: Unary{Op: OpSqrt, X: x}}}, nil
	case OpExp:
		return Bin{Op: OpMul, X: Unary{Op: OpExp, X: x}, Y: dx}, nil
	case OpLog:
		return Bin{Op: OpDiv, X: dx, Y: x}, nil
	case OpSin:
		return Bin{Op: OpMul, X: Unary{Op: OpCos, X: x}, Y: dx}, nil
	case OpCos:
		return Bin{Op: OpMul, X: Num{-1}, Y: Bin{Op: OpMul, X: Unary{Op: OpSin, X: x}, Y: dx}}, nil
	case OpTan:
		sec2 := Bin{Op: OpAdd, X: Num{1}, Y: Bin{Op: OpPow, X: Unary{Op: OpTan, X: x}, Y: Num{2}}}
		return Bin{Op: OpMul, X: sec2, Y: dx}, nil
	default:
		return nil, fmt.Errorf("%w: no derivative rule for %s", ErrUnsupportedOperator, op)
	}
}

func differentiateBin(op Op, x, y, dx, dy Expr) (Expr, error) {
	switch op {
	case OpAdd:
		return Bin{Op: OpAdd, X: dx, Y: dy}, nil
	case OpSub:
		return Bin{Op: OpSub, X: dx, Y: dy}, nil
	case OpMul:
		return Bin{Op: OpAdd,
			X: Bin{Op: OpMul, X: dx, Y: y},
			Y: Bin{Op: OpMul, X: x, Y: dy},
		}, nil
	case OpDiv:
		num := Bin{Op: OpSub, X: Bin{Op: OpMul, X: dx, Y: y}, Y: Bin{Op: OpMul, X: x, Y: dy}}
		den := Bin{Op: OpMul, X: y, Y: y}
		return Bin{Op: OpDiv, X: num, Y: den}, nil
	case OpPow:
		// Only the constant-exponent case (d/dx x^n = n*x^(n-1)*dx) is
		// supported, matching contractPow's constant-exponent restriction.
		n, ok := y.(Num)
		if !ok {
			return nil, fmt.Errorf("iclp: PartialDerivative: OpPow requires a constant exponent")
		}
		coeff := Num{n.Value}
		reduced := Bin{Op: OpPow, X: x, Y: Num{n.Value - 1}}
		return Bin{Op: OpMul, X: Bin{Op: OpMul, X: coeff, Y: reduced}, Y: dx}, nil
	case OpMin, OpMax:
		// No single-valued derivative at the crossover point; propagate
		// the derivative of whichever operand is larger/smaller as a
		// sound approximation away from the crossover, selected with
		// s = (x-y)/|x-y|: min gives (dx+dy - s*(dx-dy))/2, max gives
		// (dx+dy + s*(dx-dy))/2.
		diff := Bin{Op: OpSub, X: x, Y: y}
		s := Bin{Op: OpDiv, X: diff, Y: Unary{Op: OpAbs, X: diff}}
		signed := Bin{Op: OpMul, X: s, Y: Bin{Op: OpSub, X: dx, Y: dy}}
		combine := OpSub
		if op == OpMax {
			combine = OpAdd
		}
		return Bin{Op: OpDiv, X: Bin{Op: combine, X: Bin{Op: OpAdd, X: dx, Y: dy}, Y: signed}, Y: Num{2}}, nil
	default:
		return nil, fmt.Errorf("%w: no derivative rule for %s", ErrUnsupportedOperator, op)
	}
}
