package dimcalc

import (
	"math"
	"strconv"
	"strings"
)

// Operator is an arithmetic operator.
type Operator byte

const (
	OpAdd Operator = '+'
	OpSub Operator = '-'
	OpMul Operator = '*'
	OpDiv Operator = '/'
	OpPow Operator = '^'
)

func (op Operator) String() string {
	return string(rune(op))
}

// on applies op to plain magnitudes.
func (op Operator) on(x, y float64) float64 {
	switch op {
	case OpAdd:
		return x + y
	case OpSub:
		return x - y
	case OpMul:
		return x * y
	case OpDiv:
		return x / y
	case OpPow:
		return math.Pow(x, y)
	}
	panic("dimcalc: unknown operator " + strconv.Quote(op.String()))
}

// Value is a magnitude with an optional unit. The zero Value is unitless zero.
type Value struct {
	// Num is the magnitude.
	Num float64
	// Unit is the unit, or the empty string for a unitless value.
	Unit string

	// quo is set on the result of dividing two values of the same unit.
	quo bool
}

// Unitless returns a Value with no unit.
func Unitless(x float64) Value {
	return Value{Num: x}
}

// Dim returns a Value with the given unit.
func Dim(x float64, unit string) Value {
	return Value{Num: x, Unit: unit}
}

// IsUnitless returns whether v has no unit.
func (v Value) IsUnitless() bool {
	return v.Unit == ""
}

// SameUnitQuotient returns whether v resulted from dividing two values of the
// same unit, e.g. 6km / 2km. Such values are unitless but display as text.
func (v Value) SameUnitQuotient() bool {
	return v.quo
}

// Neg returns -v.
func (v Value) Neg() Value {
	v.Num = -v.Num
	return v
}

// Add returns v + w using the conversions in cfg.
func (v Value) Add(w Value, cfg *Config) (Value, error) {
	return cfg.conversions().apply(OpAdd, v, w)
}

// Sub returns v - w using the conversions in cfg.
func (v Value) Sub(w Value, cfg *Config) (Value, error) {
	return cfg.conversions().apply(OpSub, v, w)
}

// Mul returns v * w using the conversions in cfg.
func (v Value) Mul(w Value, cfg *Config) (Value, error) {
	return cfg.conversions().apply(OpMul, v, w)
}

// Div returns v / w using the conversions in cfg.
func (v Value) Div(w Value, cfg *Config) (Value, error) {
	return cfg.conversions().apply(OpDiv, v, w)
}

// Pow returns v ^ w. Both operands must be unitless.
func (v Value) Pow(w Value) (Value, error) {
	if v.Unit != "" || w.Unit != "" {
		return Value{}, &PowerError{Base: v, Exp: w}
	}
	return Value{Num: math.Pow(v.Num, w.Num)}, nil
}

// String formats v as its magnitude followed immediately by its unit.
func (v Value) String() string {
	return FormatNum(v.Num) + v.Unit
}

// FormatNum formats x with the fewest digits that represent it exactly.
// Magnitudes at least 1e21 or less than 1e-6 use exponent notation.
func FormatNum(x float64) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "Infinity"
	case math.IsInf(x, -1):
		return "-Infinity"
	case x == 0:
		return "0"
	}
	if a := math.Abs(x); a < 1e21 && a >= 1e-6 {
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	s := strconv.FormatFloat(x, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	return mant + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
}

// Result is the result of evaluating one expression.
type Result struct {
	// Value is the numeric result. It is meaningful only if IsText is false.
	Value Value
	// Text is the text of a string expression.
	Text string
	// IsText is true if the expression was a string.
	IsText bool
}

// Interface returns r in its presentation form: a float64 for unitless
// results, or a string for strings, values with units, and quotients of
// values with the same unit.
func (r Result) Interface() any {
	switch {
	case r.IsText:
		return r.Text
	case r.Value.quo:
		return FormatNum(r.Value.Num)
	case r.Value.Unit == "":
		return r.Value.Num
	}
	return r.Value.String()
}

func (r Result) String() string {
	if r.IsText {
		return r.Text
	}
	return r.Value.String()
}
