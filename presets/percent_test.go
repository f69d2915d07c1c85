package presets_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/zephyrtronium/dimcalc"
	"github.com/zephyrtronium/dimcalc/presets"
)

type calcCase struct {
	src  string
	want []any
}

func runCalc(t *testing.T, cfg *dimcalc.Config, cases []calcCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			got, err := dimcalc.Calc(c.src, cfg)
			if err != nil {
				t.Fatalf("%q failed: %v", c.src, err)
			}
			if !reflect.DeepEqual(got, c.want) {
				t.Errorf("%q: want %#v, got %#v", c.src, c.want, got)
			}
		})
	}
}

func TestPercent(t *testing.T) {
	runCalc(t, presets.Percent(nil), []calcCase{
		{"100px + 10%", []any{"110px"}},
		{"100rem + 25%", []any{"125rem"}},
		{"80em + 50%", []any{"120em"}},
		{"10% + 100px", []any{"110px"}},
		{"25% + 100rem", []any{"125rem"}},
		{"100px - 10%", []any{"90px"}},
		{"80em - 50%", []any{"40em"}},
		{"10% - 100px", []any{"-90px"}},
		{"25% - 100rem", []any{"-75rem"}},
		{"100px * 10%", []any{"10px"}},
		{"80em * 50%", []any{"40em"}},
		{"10% * 100px", []any{"10px"}},
		{"10% * 2", []any{"20%"}},
		{"2 * 10%", []any{"20%"}},
		{"100px / 10%", []any{"1000px"}},
		{"100rem / 25%", []any{"400rem"}},
		{"80em / 50%", []any{"160em"}},
		{"10% / 2px", []any{"5%"}},
		{"100% / 4rem", []any{"25%"}},
		{"10% + 20%", []any{"30%"}},
		{"(100px + 10%) * 2", []any{"220px"}},
		{"(200px - 50%) / 2", []any{"50px"}},
		{"max(100px * 10%, 5px)", []any{"10px"}},
		{"100px + 10% 200rem - 25%", []any{"110px", "150rem"}},
	})
}

func TestPercentKeepsConfig(t *testing.T) {
	base := dimcalc.NewConfig(dimcalc.AllowStrings(false))
	cfg := presets.Percent(base)
	if cfg.AllowsStrings() {
		t.Error("Percent lost options")
	}
	if _, err := dimcalc.Calc("100px + 10%", base); err == nil {
		t.Error("Percent modified its argument")
	}
}

func TestPercentFuncUnits(t *testing.T) {
	cfg := presets.Percent(dimcalc.NewConfig(dimcalc.FuncUnits(dimcalc.FuncUnitsConvert)))
	for _, src := range []string{"min(10px, 50%)", "max(10px, 50%)", "max(50%, 10px)"} {
		t.Run(src, func(t *testing.T) {
			got, err := dimcalc.Calc(src, cfg)
			var uerr *dimcalc.IncompatibleUnitsError
			if !errors.As(err, &uerr) || !uerr.Call {
				t.Errorf("%q: want incompatible units in call, got %v, %v", src, got, err)
			}
		})
	}
	runCalc(t, cfg, []calcCase{
		{"max(5%, 10%)", []any{"10%"}},
		{"min(100px + 10%, 50px)", []any{"50px"}},
	})
}
