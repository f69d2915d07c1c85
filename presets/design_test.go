package presets_test

import (
	"reflect"
	"testing"

	"github.com/zephyrtronium/dimcalc"
	"github.com/zephyrtronium/dimcalc/presets"
)

func TestDesignTool(t *testing.T) {
	runCalc(t, presets.DesignTool(0), []calcCase{
		{"10px + 20px", []any{"30px"}},
		{"1rem + 2rem", []any{"3rem"}},
		{"10% + 20%", []any{"30%"}},
		{"1rem + 8px", []any{"24px"}},
		{"32px - 1rem", []any{"16px"}},
		{"8px + 1rem", []any{"24px"}},
		{"1rem - 8px", []any{"8px"}},
		{"10px + 5", []any{"15px"}},
		{"2 + 10px", []any{"12px"}},
		{"10px - 5", []any{"5px"}},
		{"100px + 10%", []any{"110px"}},
		{"100rem - 25%", []any{"75rem"}},
		{"100px * 10%", []any{"10px"}},
		{"100rem / 25%", []any{"400rem"}},
		{"(1rem + 8px) * 2", []any{"48px"}},
		{"(32px - 1rem) / 2", []any{"8px"}},
		{"1rem + 8px + 10%", []any{"26.4px"}},
		{"max(1rem, 10rem)", []any{"10rem"}},
	})
	runCalc(t, presets.DesignTool(10), []calcCase{
		{"1rem + 5px", []any{"15px"}},
		{"20px - 1rem", []any{"10px"}},
	})
}

func TestDesignToolErrors(t *testing.T) {
	cfg := presets.DesignTool(presets.DefaultBaseSize)
	cases := []struct {
		src string
		err error
	}{
		{"10em + 20em", new(dimcalc.UnsupportedUnitError)},
		{"10vh", new(dimcalc.UnsupportedUnitError)},
		{"solid", new(dimcalc.StringError)},
		{"10px solid", new(dimcalc.StringError)},
		{"10px 20px", new(dimcalc.MultipleExpressionsError)},
		{"10px + 20px 30rem", new(dimcalc.MultipleExpressionsError)},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			_, err := dimcalc.Calc(c.src, cfg)
			if reflect.TypeOf(err) != reflect.TypeOf(c.err) {
				t.Errorf("want %T, got %T (%v)", c.err, err, err)
			}
		})
	}
}

func TestDesignToolOptions(t *testing.T) {
	cfg := presets.DesignTool(16, dimcalc.AllowMultipleExpressions(true))
	runCalc(t, cfg, []calcCase{
		{"1rem + 8px 10px", []any{"24px", "10px"}},
	})
}
