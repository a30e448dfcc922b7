package iclp

import "fmt"

// Expr is a constraint expression AST node, the input to Post: a
// declarative tree of variable references and operators that can nest
// arbitrarily deep.
type Expr interface {
	// compile lowers e into the store, returning the NodeID holding its
	// value, recursively compiling and wiring operand subexpressions.
	compile(e *Engine) (NodeID, error)
}

// Num is a constant literal.
type Num struct{ Value float64 }

func (n Num) compile(e *Engine) (NodeID, error) {
	return e.store.declare("", OpNone, nil, Point(KindReal, n.Value)), nil
}

// VarRef references a previously declared variable.
type VarRef struct{ V Var }

func (v VarRef) compile(e *Engine) (NodeID, error) {
	if v.V.engine != e {
		return 0, ErrUnknownVar
	}
	return v.V.id, nil
}

// Unary applies a unary operator (Abs, Sqrt, Exp, Log, Sin, Cos, Tan, Not,
// Integral) to X.
type Unary struct {
	Op Op
	X  Expr
}

func (u Unary) compile(e *Engine) (NodeID, error) {
	xid, err := u.X.compile(e)
	if err != nil {
		return 0, err
	}
	if _, ok := opContractors[u.Op]; !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedOperator, u.Op)
	}
	resultKind := resultKindFor(u.Op, e.store.node(xid).iv.Kind)
	id := e.store.declare("", u.Op, []NodeID{xid}, Full(resultKind))
	e.store.enqueue(id)
	return id, nil
}

// Bin applies a binary operator (Add, Sub, Mul, Div, Pow, Min, Max, Eq,
// Ne, Lt, Le, Subset, And, Or, Xor, Nand, Nor, Imp) to X and Y.
type Bin struct {
	Op   Op
	X, Y Expr
}

func (b Bin) compile(e *Engine) (NodeID, error) {
	xid, err := b.X.compile(e)
	if err != nil {
		return 0, err
	}
	yid, err := b.Y.compile(e)
	if err != nil {
		return 0, err
	}
	if _, ok := opContractors[b.Op]; !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedOperator, b.Op)
	}
	resultKind := resultKindFor(b.Op, e.store.node(xid).iv.Kind)
	id := e.store.declare("", b.Op, []NodeID{xid, yid}, Full(resultKind))
	e.store.enqueue(id)
	return id, nil
}

// Nary flattens an associative chain (sums of more than two terms,
// products of more than two factors) into nested binary nodes.
type Nary struct {
	Op   Op
	Args []Expr
}

func (n Nary) compile(e *Engine) (NodeID, error) {
	if len(n.Args) == 0 {
		return 0, fmt.Errorf("iclp: nary %s requires at least one argument", n.Op)
	}
	acc := n.Args[0]
	for _, arg := range n.Args[1:] {
		acc = Bin{Op: n.Op, X: acc, Y: arg}
	}
	return acc.compile(e)
}

func resultKindFor(op Op, operandKind Kind) Kind {
	switch op {
	case OpEq, OpNe, OpLt, OpLe, OpSubset, OpAnd, OpOr, OpXor, OpNand, OpNor, OpImp, OpNot:
		return KindBoolean
	case OpIntegral:
		return KindInteger
	default:
		return operandKind
	}
}

// Post compiles and registers one or more relation expressions as
// constraints pinned to "true", the top-level call a `{C1, C2, ...}`
// constraint block lowers into. Each rel must be a boolean-valued
// expression (Eq/Ne/Lt/Le/Subset/And/Or/... or a VarRef to a boolean
// variable); Post binds its result node to the boolean point 1 and runs
// propagation to a fixed point after each one, matching the comma-list's
// left-to-right compile-then-install order.
func Post(e *Engine, rels ...Expr) error {
	for _, rel := range rels {
		if err := postOne(e, rel); err != nil {
			return err
		}
	}
	return nil
}

func postOne(e *Engine, rel Expr) error {
	id, err := rel.compile(e)
	if err != nil {
		return err
	}
	n := e.store.node(id)
	if n.iv.Kind != KindBoolean {
		return fmt.Errorf("%w: Post requires a boolean-valued expression", ErrTypeMismatch)
	}
	if _, err := e.store.narrow(id, Point(KindBoolean, 1)); err != nil {
		return err
	}
	e.store.enqueue(id)
	return e.runScheduler()
}
