// Package presets provides ready-made dimcalc configurations: percent
// arithmetic, a design-tool setup with px and rem, dimension tables of
// convertible units, and unit profiles read from YAML.
package presets

import "github.com/zephyrtronium/dimcalc"

// Percent returns a copy of cfg in which percentages combine with values of
// any unit as a fraction of the other operand: 100px + 10% is 110px, and
// 100px * 10% is 10px. If cfg is nil, the default Config is used.
func Percent(cfg *dimcalc.Config) *dimcalc.Config {
	return dimcalc.AddUnitConversions(cfg, PercentRules()...)
}

// PercentRules returns the conversion rules used by Percent.
func PercentRules() []dimcalc.Rule {
	w := dimcalc.Wildcard
	return []dimcalc.Rule{
		{Key: dimcalc.Key(dimcalc.OpAdd, "%", w), Fn: func(p, x dimcalc.Value) (dimcalc.Value, error) {
			return dimcalc.Dim(share(x, p)+x.Num, x.Unit), nil
		}},
		{Key: dimcalc.Key(dimcalc.OpAdd, w, "%"), Fn: func(x, p dimcalc.Value) (dimcalc.Value, error) {
			return dimcalc.Dim(share(x, p)+x.Num, x.Unit), nil
		}},
		{Key: dimcalc.Key(dimcalc.OpSub, "%", w), Fn: func(p, x dimcalc.Value) (dimcalc.Value, error) {
			return dimcalc.Dim(share(x, p)-x.Num, x.Unit), nil
		}},
		{Key: dimcalc.Key(dimcalc.OpSub, w, "%"), Fn: func(x, p dimcalc.Value) (dimcalc.Value, error) {
			return dimcalc.Dim(x.Num-share(x, p), x.Unit), nil
		}},
		{Key: dimcalc.Key(dimcalc.OpMul, "%", w), Fn: func(p, x dimcalc.Value) (dimcalc.Value, error) {
			if x.IsUnitless() {
				return dimcalc.Dim(p.Num*x.Num, "%"), nil
			}
			return dimcalc.Dim(share(x, p), x.Unit), nil
		}},
		{Key: dimcalc.Key(dimcalc.OpMul, w, "%"), Fn: func(x, p dimcalc.Value) (dimcalc.Value, error) {
			if x.IsUnitless() {
				return dimcalc.Dim(x.Num*p.Num, "%"), nil
			}
			return dimcalc.Dim(share(x, p), x.Unit), nil
		}},
		{Key: dimcalc.Key(dimcalc.OpDiv, "%", w), Fn: func(p, x dimcalc.Value) (dimcalc.Value, error) {
			return dimcalc.Dim(p.Num/x.Num, "%"), nil
		}},
		{Key: dimcalc.Key(dimcalc.OpDiv, w, "%"), Fn: func(x, p dimcalc.Value) (dimcalc.Value, error) {
			return dimcalc.Dim(x.Num*100/p.Num, x.Unit), nil
		}},
	}
}

// share is the portion of x given by the percentage p.
func share(x, p dimcalc.Value) float64 {
	return (x.Num / 100) * p.Num
}
