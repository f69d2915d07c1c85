package dimcalc

import "strconv"

// Calc evaluates every expression in src. Each result is a float64 for
// unitless values, or a string for values with units, quotients of values
// with the same unit, and bare text. If cfg is nil, the default Config is
// used. If any expression fails, Calc returns no results.
func Calc(src string, cfg *Config) ([]any, error) {
	rs, err := Eval(src, cfg)
	if err != nil {
		return nil, err
	}
	r := make([]any, len(rs))
	for i, v := range rs {
		r[i] = v.Interface()
	}
	return r, nil
}

// Eval evaluates every expression in src and returns typed results.
func Eval(src string, cfg *Config) ([]Result, error) {
	exprs, err := Parse(src, cfg)
	if err != nil {
		return nil, err
	}
	r := make([]Result, len(exprs))
	for i, e := range exprs {
		r[i], err = e.Eval()
		if err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Eval evaluates the expression.
func (e *Expr) Eval() (Result, error) {
	if e.n.kind == nodeStr {
		return Result{Text: e.n.name, IsText: true}, nil
	}
	v, err := e.n.eval(e.cfg)
	if err != nil {
		return Result{}, err
	}
	return Result{Value: v}, nil
}

// eval computes the value of the node.
func (n *node) eval(cfg *Config) (Value, error) {
	switch n.kind {
	case nodeNum:
		return Value{Num: n.num, Unit: n.unit}, nil
	case nodeName:
		if n.fn != nil {
			return Value{}, &NameError{Name: n.name}
		}
		return Value{Num: n.num}, nil
	case nodeStr:
		return Value{}, &StringError{Col: n.pos, Text: n.name, Operand: true}
	case nodeCall:
		args := make([]Value, len(n.args))
		for i, a := range n.args {
			v, err := a.eval(cfg)
			if err != nil {
				return Value{}, err
			}
			args[i] = v
		}
		if _, ok := n.fn.(magnitudeFunc); ok {
			var err error
			args, err = cfg.harmonize(n.name, args)
			if err != nil {
				return Value{}, err
			}
		}
		v, err := n.fn.Call(cfg, args)
		if err != nil {
			return Value{}, err
		}
		return Value{Num: v.Num, Unit: v.Unit}, nil
	case nodeNeg:
		v, err := n.left.eval(cfg)
		if err != nil {
			return Value{}, err
		}
		return v.Neg(), nil
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		l, err := n.left.eval(cfg)
		if err != nil {
			return Value{}, err
		}
		r, err := n.right.eval(cfg)
		if err != nil {
			return Value{}, err
		}
		return cfg.arith(binops[n.kind], l, r)
	default:
		panic("dimcalc: invalid AST node " + n.kind.String())
	}
}

// arith combines two values, tracing rule resolution when units differ.
func (cfg *Config) arith(op Operator, l, r Value) (Value, error) {
	if l.Unit != r.Unit && op != OpPow {
		if ev := cfg.log.Debug(); ev.Enabled() {
			_, k, ok := cfg.conv.Lookup(op, l.Unit, r.Unit)
			if ok {
				ev = ev.Stringer("rule", k)
			}
			ev.Str("op", op.String()).Str("left", l.String()).Str("right", r.String()).Bool("matched", ok).Msg("resolve units")
		}
	}
	return cfg.conv.apply(op, l, r)
}

// NameError is an error from using a function name as a value.
type NameError struct {
	// Name is the function name.
	Name string
}

func (err *NameError) Error() string {
	return "cannot use function " + strconv.Quote(err.Name) + " as a value"
}

// PowerError is an error from exponentiation with a unit on either operand.
type PowerError struct {
	Base, Exp Value
}

func (err *PowerError) Error() string {
	return "power requires unitless operands, got " + err.Base.String() + " ^ " + err.Exp.String()
}

// IncompatibleUnitsError is an error from combining values whose units have
// no applicable conversion rule.
type IncompatibleUnitsError struct {
	// Op is the operator, or the function name if Call is true.
	Op string
	// Left and Right are the operands. For calls, Left is the first argument
	// and Right is the first argument that could not be brought to its unit.
	Left, Right Value
	// Call is whether the error is from the arguments of a function call.
	Call bool
}

func (err *IncompatibleUnitsError) Error() string {
	l, r := unitName(err.Left.Unit), unitName(err.Right.Unit)
	if err.Call {
		return "cannot mix incompatible units " + l + " and " + r + " in call to " + err.Op
	}
	return "incompatible units " + l + " and " + r + " for " + err.Left.String() + " " + err.Op + " " + err.Right.String()
}
