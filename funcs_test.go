package dimcalc

import (
	"errors"
	"math"
	"reflect"
	"regexp"
	"testing"
)

func TestBigExpLog(t *testing.T) {
	cases := []struct {
		x    float64
		exp  float64
		log  float64
		name string
	}{
		{0, 1, math.Inf(-1), "zero"},
		{1, math.E, 0, "one"},
		{2, 7.38905609893065, math.Ln2, "two"},
		{10, 22026.465794806718, math.Ln10, "ten"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := bigExp(c.x); math.Abs(got-c.exp) > 1e-12*c.exp {
				t.Errorf("exp(%v): want %v, got %v", c.x, c.exp, got)
			}
			if got := bigLog(c.x); got != c.log && math.Abs(got-c.log) > 1e-15 {
				t.Errorf("log(%v): want %v, got %v", c.x, c.log, got)
			}
		})
	}
	if !math.IsNaN(bigExp(math.NaN())) || !math.IsNaN(bigLog(math.NaN())) {
		t.Error("NaN not preserved")
	}
	if !math.IsInf(bigExp(1000), 1) || bigExp(-1000) != 0 {
		t.Errorf("exp overflow: %v %v", bigExp(1000), bigExp(-1000))
	}
	if !math.IsInf(bigLog(math.Inf(1)), 1) {
		t.Errorf("log(Inf) = %v", bigLog(math.Inf(1)))
	}
}

func TestRound(t *testing.T) {
	cases := []struct{ x, want float64 }{
		{0, 0},
		{0.4, 0},
		{0.5, 1},
		{1.5, 2},
		{2.5, 3},
		{-0.5, 0},
		{-1.5, -1},
		{-2.5, -2},
		{-2.6, -3},
		{0.49999999999999994, 0},
		{4503599627370497, 4503599627370497},
		{-4503599627370497, -4503599627370497},
		{math.Inf(1), math.Inf(1)},
	}
	for _, c := range cases {
		if got := round(c.x); got != c.want {
			t.Errorf("round(%v): want %v, got %v", c.x, c.want, got)
		}
	}
}

func TestDomainError(t *testing.T) {
	cases := []struct {
		src string
		fn  string
		x   Value
	}{
		{"sqrt(-1)", "sqrt", Dim(-1, "")},
		{"sqrt(-4px)", "sqrt", Dim(-4, "px")},
		{"log(-1em)", "log", Dim(-1, "em")},
		{"log(2 - 3)", "log", Unitless(-1)},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			_, err := Calc(c.src, nil)
			var derr *DomainError
			if !errors.As(err, &derr) {
				t.Fatalf("want DomainError, got %T (%v)", err, err)
			}
			if derr.Func != c.fn || derr.X != c.x || derr.Arg != 1 {
				t.Errorf("want %s(%v), got %+v", c.fn, c.x, derr)
			}
			if !regexp.MustCompile(`outside domain of ` + c.fn).MatchString(err.Error()) {
				t.Errorf("bad message %q", err.Error())
			}
		})
	}
	// The boundary is in the domain.
	if r, err := Calc("sqrt(0) log(0)", nil); err != nil || r[0] != 0.0 || !math.IsInf(r[1].(float64), -1) {
		t.Errorf("sqrt(0) log(0): %v, %v", r, err)
	}
}

func TestFuncUnits(t *testing.T) {
	cases := []struct {
		name string
		fn   Func
		args []Value
		want Value
	}{
		{"abs", Monadic(math.Abs), []Value{Dim(-3, "px")}, Dim(3, "px")},
		{"floor", Monadic(math.Floor), []Value{Dim(2.7, "em")}, Dim(2, "em")},
		{"max", Variadic(math.Inf(-1), math.Max), []Value{Dim(1, "px"), Dim(3, "px")}, Dim(3, "px")},
		{"min-unitless", Variadic(math.Inf(1), math.Min), []Value{Unitless(4), Unitless(-1)}, Unitless(-1)},
		{"max-firstunit", Variadic(math.Inf(-1), math.Max), []Value{Unitless(4), Dim(9, "px")}, Dim(9, "px")},
		{"pow", UnitFunc(2, 2, pow), []Value{Dim(3, "px"), Unitless(2)}, Dim(9, "px")},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if !c.fn.CanCall(len(c.args)) {
				t.Fatalf("cannot call with %d args", len(c.args))
			}
			got, err := c.fn.Call(defaultConfig, c.args)
			if err != nil {
				t.Fatal(err)
			}
			if got != c.want {
				t.Errorf("want %v, got %v", c.want, got)
			}
		})
	}
	var uerr *IncompatibleUnitsError
	if _, err := pow(defaultConfig, []Value{Unitless(2), Dim(2, "px")}); !errors.As(err, &uerr) || !uerr.Call {
		t.Errorf("pow with unit exponent: %v", err)
	}
}

func TestCanCall(t *testing.T) {
	cases := []struct {
		name string
		fn   Func
		yes  []int
		no   []int
	}{
		{"monadic", Monadic(math.Abs), []int{1}, []int{0, 2}},
		{"variadic", Variadic(0, math.Max), []int{1, 2, 10}, []int{0}},
		{"binary", UnitFunc(2, 2, pow), []int{2}, []int{0, 1, 3}},
		{"unbounded", UnitFunc(1, -1, pow), []int{1, 2, 100}, []int{0}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			for _, n := range c.yes {
				if !c.fn.CanCall(n) {
					t.Errorf("cannot call with %d", n)
				}
			}
			for _, n := range c.no {
				if c.fn.CanCall(n) {
					t.Errorf("can call with %d", n)
				}
			}
		})
	}
}

func TestHarmonize(t *testing.T) {
	toPx := func(l, r Value) (Value, error) {
		x, y := l.Num, r.Num
		if l.Unit == "rem" {
			x *= 16
		}
		if r.Unit == "rem" {
			y *= 16
		}
		return Dim(x+y, "px"), nil
	}
	rules := []Rule{
		{Key(OpAdd, "px", "rem"), toPx},
		{Key(OpAdd, "rem", "px"), toPx},
	}
	strict := NewConfig(AddConversions(rules...))
	convert := strict.With(FuncUnits(FuncUnitsConvert))
	loose := convert.With(AddConversions(Rule{Key(OpAdd, Wildcard, "%"), func(l, r Value) (Value, error) {
		return Dim(l.Num*(1+r.Num/100), l.Unit), nil
	}}))
	cases := []struct {
		name string
		cfg  *Config
		args []Value
		want []Value
		err  bool
	}{
		{"one", strict, []Value{Dim(1, "rem")}, []Value{Dim(1, "rem")}, false},
		{"same", strict, []Value{Dim(1, "px"), Dim(2, "px")}, []Value{Dim(1, "px"), Dim(2, "px")}, false},
		{"strict", strict, []Value{Dim(1, "rem"), Dim(2, "px")}, nil, true},
		{"strict-unitless", strict, []Value{Unitless(1), Dim(2, "px")}, nil, true},
		{"convert", convert, []Value{Dim(1, "rem"), Dim(2, "px")}, []Value{Dim(16, "px"), Dim(2, "px")}, false},
		{"convert-first", convert, []Value{Dim(2, "px"), Dim(1, "rem")}, []Value{Dim(2, "px"), Dim(16, "px")}, false},
		{"convert-many", convert, []Value{Dim(1, "rem"), Dim(1, "rem"), Dim(2, "px")}, []Value{Dim(16, "px"), Dim(16, "px"), Dim(2, "px")}, false},
		{"convert-norule", convert, []Value{Dim(1, "rem"), Dim(2, "em")}, nil, true},
		{"convert-wildcard", loose, []Value{Dim(10, "px"), Dim(50, "%")}, nil, true},
		{"convert-wildcard-exact", loose, []Value{Dim(1, "rem"), Dim(2, "px")}, []Value{Dim(16, "px"), Dim(2, "px")}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := c.cfg.harmonize("f", append([]Value(nil), c.args...))
			if (err != nil) != c.err {
				t.Fatalf("want error %t, got %v", c.err, err)
			}
			if err != nil {
				if _, ok := err.(*IncompatibleUnitsError); !ok {
					t.Errorf("wrong error type %T", err)
				}
				return
			}
			if !reflect.DeepEqual(got, c.want) {
				t.Errorf("want %v, got %v", c.want, got)
			}
		})
	}
}
