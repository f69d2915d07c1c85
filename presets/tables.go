package presets

import (
	"errors"
	"fmt"
	"math"

	"github.com/zephyrtronium/dimcalc"
)

// Table is a family of units that convert to each other by fixed factors,
// such as km, m, cm, and mm.
type Table struct {
	units []string
	// scale is the number of the smallest unit in each unit.
	scale map[string]float64
}

// NewTable creates a table from units ordered from largest to smallest and
// the factors between adjacent units, so that one units[i] is factors[i]
// units[i+1].
func NewTable(units []string, factors []float64) (*Table, error) {
	if len(units) == 0 {
		return nil, errors.New("dimension table has no units")
	}
	if len(factors) != len(units)-1 {
		return nil, fmt.Errorf("dimension table with %d units needs %d factors, not %d", len(units), len(units)-1, len(factors))
	}
	t := Table{
		units: append([]string(nil), units...),
		scale: make(map[string]float64, len(units)),
	}
	s := 1.0
	for i := len(units) - 1; i >= 0; i-- {
		u := units[i]
		if u == "" {
			return nil, fmt.Errorf("dimension table unit %d is empty", i+1)
		}
		if _, ok := t.scale[u]; ok {
			return nil, fmt.Errorf("dimension table repeats unit %q", u)
		}
		t.scale[u] = s
		if i > 0 {
			f := factors[i-1]
			if !(f > 0) || math.IsInf(f, 0) {
				return nil, fmt.Errorf("dimension table factor from %s to %s must be positive and finite, not %v", units[i-1], u, f)
			}
			s *= f
		}
	}
	return &t, nil
}

func mustTable(units []string, factors []float64) *Table {
	t, err := NewTable(units, factors)
	if err != nil {
		panic(err)
	}
	return t
}

var (
	// Length is km, m, cm, and mm.
	Length = mustTable([]string{"km", "m", "cm", "mm"}, []float64{1000, 100, 10})
	// Time is h, min, s, and ms.
	Time = mustTable([]string{"h", "min", "s", "ms"}, []float64{60, 60, 1000})
	// Weight is kg, g, and mg.
	Weight = mustTable([]string{"kg", "g", "mg"}, []float64{1000, 1000})
)

// Units returns the units of the table from largest to smallest.
func (t *Table) Units() []string {
	return append([]string(nil), t.units...)
}

// Factor returns the number of to in one from.
func (t *Table) Factor(from, to string) (float64, bool) {
	a, ok := t.scale[from]
	if !ok {
		return 0, false
	}
	b, ok := t.scale[to]
	if !ok {
		return 0, false
	}
	return a / b, true
}

// Rules returns conversion rules applying op to every pair of distinct units
// in the table. The result is in the smaller unit of the pair. Only OpAdd and
// OpSub have rules; other operators return nil.
func (t *Table) Rules(op dimcalc.Operator) []dimcalc.Rule {
	if op != dimcalc.OpAdd && op != dimcalc.OpSub {
		return nil
	}
	var r []dimcalc.Rule
	for _, a := range t.units {
		for _, b := range t.units {
			if a == b {
				continue
			}
			r = append(r, dimcalc.Rule{Key: dimcalc.Key(op, a, b), Fn: t.combine(op, a, b)})
		}
	}
	return r
}

func (t *Table) combine(op dimcalc.Operator, left, right string) dimcalc.ConversionFunc {
	sign := 1.0
	if op == dimcalc.OpSub {
		sign = -1
	}
	if f, _ := t.Factor(left, right); f > 1 {
		return func(l, r dimcalc.Value) (dimcalc.Value, error) {
			return dimcalc.Dim(l.Num*f+sign*r.Num, right), nil
		}
	}
	f, _ := t.Factor(right, left)
	return func(l, r dimcalc.Value) (dimcalc.Value, error) {
		return dimcalc.Dim(l.Num+sign*(r.Num*f), left), nil
	}
}

// Dimensions returns a copy of cfg that allows the units of tables and
// converts between them for addition and subtraction. If cfg is nil, the
// default Config is used.
func Dimensions(cfg *dimcalc.Config, tables ...*Table) *dimcalc.Config {
	var units []string
	var rules []dimcalc.Rule
	for _, t := range tables {
		units = append(units, t.units...)
		rules = append(rules, t.Rules(dimcalc.OpAdd)...)
		rules = append(rules, t.Rules(dimcalc.OpSub)...)
	}
	return cfg.With(dimcalc.MoreUnits(units...), dimcalc.AddConversions(rules...))
}
