package dimcalc

import (
	"math"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// Func is a function callable from expressions.
type Func interface {
	// Call evaluates the function. args has a length for which CanCall
	// returned true. Call may modify the elements of args. The result's
	// unit is chosen by the function.
	Call(cfg *Config, args []Value) (Value, error)

	// CanCall returns whether the function can be called with n arguments.
	// The parser rejects calls with other numbers of arguments.
	CanCall(n int) bool
}

// magnitudeFunc is implemented by functions that operate only on magnitudes.
// The evaluator brings the arguments of such functions to a common unit
// before calling them.
type magnitudeFunc interface {
	Func
	magnitudes()
}

var globalfuncs = map[string]Func{
	"abs":   Monadic(math.Abs),
	"sin":   Monadic(math.Sin),
	"cos":   Monadic(math.Cos),
	"tan":   Monadic(math.Tan),
	"sqrt":  domainMonadic("sqrt", math.Sqrt, nonneg),
	"floor": Monadic(math.Floor),
	"ceil":  Monadic(math.Ceil),
	"round": Monadic(round),
	"log":   domainMonadic("log", bigLog, nonneg),
	"exp":   Monadic(bigExp),
	"pow":   UnitFunc(2, 2, pow),
	"max":   Variadic(math.Inf(-1), math.Max),
	"min":   Variadic(math.Inf(1), math.Min),
}

type monadic struct {
	f func(float64) float64
	// in reports whether its argument is in the domain of f, if not nil.
	in   func(float64) bool
	name string
}

func (m monadic) Call(cfg *Config, args []Value) (Value, error) {
	x := args[0]
	if m.in != nil && !m.in(x.Num) {
		return Value{}, &DomainError{X: x, Arg: 1, Func: m.name}
	}
	return Value{Num: m.f(x.Num), Unit: x.Unit}, nil
}

func (m monadic) CanCall(n int) bool {
	return n == 1
}

func (monadic) magnitudes() {}

// Monadic wraps a function of one variable into a Func. The result has the
// unit of the argument.
func Monadic(f func(float64) float64) Func {
	return monadic{f: f}
}

func domainMonadic(name string, f func(float64) float64, in func(float64) bool) Func {
	return monadic{f: f, in: in, name: name}
}

type variadic struct {
	id float64
	f  func(x, y float64) float64
}

func (v variadic) Call(cfg *Config, args []Value) (Value, error) {
	r := Value{Num: v.id}
	for _, a := range args {
		r.Num = v.f(r.Num, a.Num)
		if r.Unit == "" {
			r.Unit = a.Unit
		}
	}
	return r, nil
}

func (variadic) CanCall(n int) bool {
	return n > 0
}

func (variadic) magnitudes() {}

// Variadic wraps a reduction into a Func of one or more arguments. The
// result is f applied in turn to id and each argument's magnitude, and it has
// the unit of the first argument that has one.
func Variadic(id float64, f func(x, y float64) float64) Func {
	return variadic{id, f}
}

type unitfunc struct {
	min, max int
	f        func(cfg *Config, args []Value) (Value, error)
}

func (u unitfunc) Call(cfg *Config, args []Value) (Value, error) {
	return u.f(cfg, args)
}

func (u unitfunc) CanCall(n int) bool {
	return u.min <= n && (u.max < 0 || n <= u.max)
}

// UnitFunc wraps a function that handles units itself into a Func accepting
// from min to max arguments. If max is negative, there is no upper limit.
func UnitFunc(min, max int, f func(cfg *Config, args []Value) (Value, error)) Func {
	return unitfunc{min, max, f}
}

func pow(cfg *Config, args []Value) (Value, error) {
	if args[1].Unit != "" {
		return Value{}, &IncompatibleUnitsError{Op: "pow", Left: args[0], Right: args[1], Call: true}
	}
	return Value{Num: math.Pow(args[0].Num, args[1].Num), Unit: args[0].Unit}, nil
}

// round rounds half up, so round(-2.5) is -2. x - floor(x) is exact, so
// values just under a half never round up.
func round(x float64) float64 {
	t := math.Floor(x)
	if x-t >= 0.5 {
		t++
	}
	return t
}

func nonneg(x float64) bool {
	return !(x < 0)
}

// bigprec is the precision of intermediate results computed with bigfloat.
const bigprec = 96

// bigExp computes e^x correctly rounded.
func bigExp(x float64) float64 {
	switch {
	case math.IsNaN(x), math.IsInf(x, 0), x > 710, x < -746:
		return math.Exp(x)
	case x == 0:
		return 1
	}
	in := new(big.Float).SetPrec(bigprec).SetFloat64(x)
	r, _ := bigfloat.Exp(new(big.Float).SetPrec(bigprec), in).Float64()
	return r
}

// bigLog computes the natural logarithm of x correctly rounded.
func bigLog(x float64) float64 {
	switch {
	case math.IsNaN(x), math.IsInf(x, 1), x == 0:
		return math.Log(x)
	case x == 1:
		return 0
	}
	in := new(big.Float).SetPrec(bigprec).SetFloat64(x)
	r, _ := bigfloat.Log(new(big.Float).SetPrec(bigprec), in).Float64()
	return r
}

// harmonize brings the arguments of a call to name to a common unit
// according to the unit policy of cfg.
func (cfg *Config) harmonize(name string, args []Value) ([]Value, error) {
	if len(args) < 2 {
		return args, nil
	}
	unit := args[0].Unit
	if cfg.fnunits == FuncUnitsStrict {
		for _, a := range args[1:] {
			if a.Unit != unit {
				return nil, &IncompatibleUnitsError{Op: name, Left: args[0], Right: a, Call: true}
			}
		}
		return args, nil
	}
	// Find the unit the rules settle on. A rule may move the sum to a unit
	// different from either operand's.
	for _, a := range args[1:] {
		if a.Unit == unit {
			continue
		}
		z, ok := cfg.normalize(unit, a)
		if !ok {
			return nil, &IncompatibleUnitsError{Op: name, Left: args[0], Right: a, Call: true}
		}
		unit = z.Unit
		break
	}
	for i, a := range args {
		if a.Unit == unit {
			continue
		}
		z, ok := cfg.normalize(unit, a)
		if !ok || z.Unit != unit {
			return nil, &IncompatibleUnitsError{Op: name, Left: args[0], Right: a, Call: true}
		}
		args[i] = z
	}
	return args, nil
}

// normalize expresses v in unit by adding it to zero of that unit. Only rules
// naming both units apply. Wildcard rules may relate their operands rather
// than convert between them, as percentages do.
func (cfg *Config) normalize(unit string, v Value) (Value, bool) {
	f, k, ok := cfg.conv.Lookup(OpAdd, unit, v.Unit)
	if !ok || k.Left == Wildcard || k.Right == Wildcard {
		return Value{}, false
	}
	z, err := f(Value{Unit: unit}, v)
	if err != nil {
		return Value{}, false
	}
	return Value{Num: z.Num, Unit: z.Unit}, true
}

// DomainError is an error returned when a function is called on arguments
// outside its domain.
type DomainError struct {
	// X is the out-of-domain argument.
	X Value
	// Arg is the 1-based index of the argument.
	Arg int
	// Func is a name identifying the function.
	Func string
}

func (err *DomainError) Error() string {
	r := err.X.String() + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	return r
}
