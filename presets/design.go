package presets

import "github.com/zephyrtronium/dimcalc"

// DefaultBaseSize is the number of px in one rem when none is given.
const DefaultBaseSize = 16

// DesignTool returns a Config for design tools that work in px. It allows
// only px, rem, and %, rejects strings and multiple expressions, converts
// rem to px at baseSize px per rem when the two are mixed, lets unitless
// values add to px, and handles percentages as Percent does. If baseSize is
// not positive, DefaultBaseSize is used. opts are applied before the rules
// are added.
func DesignTool(baseSize float64, opts ...dimcalc.Option) *dimcalc.Config {
	if !(baseSize > 0) {
		baseSize = DefaultBaseSize
	}
	cfg := dimcalc.NewConfig(
		dimcalc.Units("px", "rem", "%"),
		dimcalc.AllowStrings(false),
		dimcalc.AllowMultipleExpressions(false),
	).With(opts...)
	return Percent(dimcalc.AddUnitConversions(cfg, DesignRules(baseSize)...))
}

// DesignRules returns the px and rem rules used by DesignTool.
func DesignRules(baseSize float64) []dimcalc.Rule {
	px := func(v dimcalc.Value) float64 {
		if v.Unit == "rem" {
			return v.Num * baseSize
		}
		return v.Num
	}
	add := func(l, r dimcalc.Value) (dimcalc.Value, error) {
		return dimcalc.Dim(px(l)+px(r), "px"), nil
	}
	sub := func(l, r dimcalc.Value) (dimcalc.Value, error) {
		return dimcalc.Dim(px(l)-px(r), "px"), nil
	}
	return []dimcalc.Rule{
		{Key: dimcalc.Key(dimcalc.OpAdd, "px", "rem"), Fn: add},
		{Key: dimcalc.Key(dimcalc.OpAdd, "rem", "px"), Fn: add},
		{Key: dimcalc.Key(dimcalc.OpSub, "px", "rem"), Fn: sub},
		{Key: dimcalc.Key(dimcalc.OpSub, "rem", "px"), Fn: sub},
		{Key: dimcalc.Key(dimcalc.OpAdd, "px", ""), Fn: add},
		{Key: dimcalc.Key(dimcalc.OpAdd, "", "px"), Fn: add},
		{Key: dimcalc.Key(dimcalc.OpSub, "px", ""), Fn: sub},
	}
}
