package dimcalc_test

import (
	"bytes"
	"math"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/zephyrtronium/dimcalc"
)

func TestConfigDefaults(t *testing.T) {
	cfg := dimcalc.NewConfig()
	if !reflect.DeepEqual(cfg.Units(), dimcalc.CSSUnits) {
		t.Errorf("want units %v, got %v", dimcalc.CSSUnits, cfg.Units())
	}
	if !cfg.AllowsStrings() || !cfg.AllowsMultipleExpressions() {
		t.Error("strings or multiple expressions disallowed by default")
	}
	if p := cfg.FuncUnitPolicy(); p != dimcalc.FuncUnitsStrict {
		t.Errorf("want strict function units, got %v", p)
	}
	for _, name := range []string{"abs", "sin", "cos", "tan", "sqrt", "floor", "ceil", "round", "log", "exp", "pow", "max", "min"} {
		if cfg.Func(name) == nil {
			t.Errorf("missing function %s", name)
		}
	}
	consts := map[string]float64{
		"PI":      math.Pi,
		"E":       math.E,
		"LN2":     math.Ln2,
		"LN10":    math.Ln10,
		"LOG2E":   math.Log2E,
		"LOG10E":  math.Log10E,
		"SQRT1_2": math.Sqrt2 / 2,
		"SQRT2":   math.Sqrt2,
	}
	for name, want := range consts {
		if got, ok := cfg.Const(name); !ok || got != want {
			t.Errorf("%s: want %v, got %v %t", name, want, got, ok)
		}
	}
	var nilcfg *dimcalc.Config
	if !reflect.DeepEqual(nilcfg.Units(), cfg.Units()) || nilcfg.Func("abs") == nil {
		t.Error("nil config does not act as default")
	}
}

func TestConfigWith(t *testing.T) {
	base := dimcalc.NewConfig()
	cfg := base.With(
		dimcalc.Units("km", "m", "km"),
		dimcalc.MoreUnits("cm", "m"),
		dimcalc.SetConst("TAU", 2*math.Pi),
		dimcalc.SetFunc("abs", nil),
		dimcalc.AllowStrings(false),
		dimcalc.AllowMultipleExpressions(false),
		dimcalc.FuncUnits(dimcalc.FuncUnitsConvert),
	)
	if want := []string{"km", "m", "cm"}; !reflect.DeepEqual(cfg.Units(), want) {
		t.Errorf("want units %v, got %v", want, cfg.Units())
	}
	if !cfg.AllowsUnit("cm") || cfg.AllowsUnit("px") {
		t.Error("wrong unit set")
	}
	if v, ok := cfg.Const("TAU"); !ok || v != 2*math.Pi {
		t.Errorf("TAU = %v %t", v, ok)
	}
	if cfg.Func("abs") != nil || cfg.Func("sin") == nil {
		t.Error("wrong functions after removing abs")
	}
	if cfg.AllowsStrings() || cfg.AllowsMultipleExpressions() || cfg.FuncUnitPolicy() != dimcalc.FuncUnitsConvert {
		t.Error("flags not applied")
	}
	// The original is unchanged.
	if !base.AllowsUnit("px") || base.Func("abs") == nil || !base.AllowsStrings() {
		t.Error("With modified its receiver")
	}
	if _, ok := base.Const("TAU"); ok {
		t.Error("With added a constant to its receiver")
	}
}

func TestConfigReplace(t *testing.T) {
	cfg := dimcalc.NewConfig(
		dimcalc.DisableDefaultFuncs(),
		dimcalc.SetConsts(map[string]float64{"ONE": 1}),
		dimcalc.SetFuncs(map[string]dimcalc.Func{"neg": dimcalc.Monadic(func(x float64) float64 { return -x })}),
	)
	names := cfg.Names()
	sort.Strings(names)
	if want := []string{"ONE", "neg"}; !reflect.DeepEqual(names, want) {
		t.Errorf("want names %v, got %v", want, names)
	}
	r, err := dimcalc.Calc("neg(ONE) ONE", cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(r, []any{-1.0, 1.0}) {
		t.Errorf("want [-1 1], got %v", r)
	}
	// PI is no longer a constant, so it is text.
	r, err = dimcalc.Calc("PI", cfg)
	if err != nil || !reflect.DeepEqual(r, []any{"PI"}) {
		t.Errorf("PI: %v, %v", r, err)
	}
}

func TestConfigLogger(t *testing.T) {
	var b bytes.Buffer
	cfg := dimcalc.NewConfig(dimcalc.Logger(zerolog.New(&b).Level(zerolog.DebugLevel)))
	if _, err := dimcalc.Calc("2 * 3px", cfg); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), `"level":"debug"`) {
		t.Errorf("no debug logs: %q", b.String())
	}
	b.Reset()
	if _, err := dimcalc.Calc("2 * 3px", cfg.With(dimcalc.Logger(zerolog.Nop()))); err != nil {
		t.Fatal(err)
	}
	if b.Len() != 0 {
		t.Errorf("logs after replacing logger: %q", b.String())
	}
}

func TestFuncUnitPolicyString(t *testing.T) {
	if s := dimcalc.FuncUnitsStrict.String(); s != "strict" {
		t.Errorf("strict prints as %q", s)
	}
	if s := dimcalc.FuncUnitsConvert.String(); s != "convert" {
		t.Errorf("convert prints as %q", s)
	}
}
