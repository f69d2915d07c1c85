package dimcalc

// Wildcard matches any unit, including no unit, in a ConversionKey.
const Wildcard = "*"

// ConversionKey identifies the operator and operand units a conversion
// applies to. The empty string denotes a unitless operand.
type ConversionKey struct {
	Op    Operator
	Left  string
	Right string
}

// Key returns the ConversionKey for op applied to units left and right.
func Key(op Operator, left, right string) ConversionKey {
	return ConversionKey{Op: op, Left: left, Right: right}
}

func (k ConversionKey) String() string {
	return unitName(k.Left) + " " + k.Op.String() + " " + unitName(k.Right)
}

// ConversionFunc combines two values with different units. The result's unit
// is chosen by the function.
type ConversionFunc func(l, r Value) (Value, error)

// Rule associates a ConversionFunc with the key it handles.
type Rule struct {
	Key ConversionKey
	Fn  ConversionFunc
}

// Conversions is a registry of rules for combining values with different
// units. A Conversions is immutable once built.
type Conversions struct {
	m map[ConversionKey]ConversionFunc
}

// NewConversions creates a registry holding rules. Later rules replace
// earlier ones with the same key.
func NewConversions(rules ...Rule) *Conversions {
	c := &Conversions{m: make(map[ConversionKey]ConversionFunc, len(rules))}
	c.add(rules)
	return c
}

func (c *Conversions) add(rules []Rule) {
	for _, r := range rules {
		if r.Fn == nil {
			delete(c.m, r.Key)
			continue
		}
		c.m[r.Key] = r.Fn
	}
}

// with returns a copy of c with rules added.
func (c *Conversions) with(rules []Rule) *Conversions {
	r := &Conversions{m: make(map[ConversionKey]ConversionFunc, c.Len()+len(rules))}
	if c != nil {
		for k, v := range c.m {
			r.m[k] = v
		}
	}
	r.add(rules)
	return r
}

// Len returns the number of rules in c.
func (c *Conversions) Len() int {
	if c == nil {
		return 0
	}
	return len(c.m)
}

// Lookup finds the rule for op applied to units left and right. It tries the
// exact key, then a wildcard right unit, then a wildcard left unit, then both
// wildcards. The returned key is the one that matched.
func (c *Conversions) Lookup(op Operator, left, right string) (ConversionFunc, ConversionKey, bool) {
	if c == nil {
		return nil, ConversionKey{}, false
	}
	keys := [...]ConversionKey{
		{op, left, right},
		{op, left, Wildcard},
		{op, Wildcard, right},
		{op, Wildcard, Wildcard},
	}
	for _, k := range keys {
		if f := c.m[k]; f != nil {
			return f, k, true
		}
	}
	return nil, ConversionKey{}, false
}

// apply combines l and r with op. Values of the same unit combine directly.
// Otherwise a registered rule decides, and failing that, multiplication and
// division by a unitless value keep the other operand's unit.
func (c *Conversions) apply(op Operator, l, r Value) (Value, error) {
	if op == OpPow {
		return l.Pow(r)
	}
	if l.Unit == r.Unit {
		x := op.on(l.Num, r.Num)
		if op == OpDiv && l.Unit != "" {
			return Value{Num: x, quo: true}, nil
		}
		return Value{Num: x, Unit: l.Unit}, nil
	}
	if f, _, ok := c.Lookup(op, l.Unit, r.Unit); ok {
		v, err := f(l, r)
		if err != nil {
			return Value{}, err
		}
		return Value{Num: v.Num, Unit: v.Unit}, nil
	}
	switch {
	case op == OpMul && l.Unit == "":
		return Value{Num: l.Num * r.Num, Unit: r.Unit}, nil
	case (op == OpMul || op == OpDiv) && r.Unit == "":
		return Value{Num: op.on(l.Num, r.Num), Unit: l.Unit}, nil
	case op == OpDiv && l.Unit == "":
		return Value{Num: l.Num / r.Num, Unit: r.Unit}, nil
	}
	return Value{}, &IncompatibleUnitsError{Op: op.String(), Left: l, Right: r}
}

// defaultRules are the conversions a Config has unless replaced.
func defaultRules() []Rule {
	keepRight := func(l, r Value) (Value, error) {
		return Value{Num: l.Num * r.Num, Unit: r.Unit}, nil
	}
	return []Rule{
		{Key(OpMul, "", Wildcard), keepRight},
		{Key(OpMul, Wildcard, ""), func(l, r Value) (Value, error) {
			return Value{Num: l.Num * r.Num, Unit: l.Unit}, nil
		}},
		{Key(OpDiv, Wildcard, ""), func(l, r Value) (Value, error) {
			return Value{Num: l.Num / r.Num, Unit: l.Unit}, nil
		}},
		{Key(OpDiv, "", Wildcard), func(l, r Value) (Value, error) {
			return Value{Num: l.Num / r.Num, Unit: r.Unit}, nil
		}},
		{Key(OpDiv, Wildcard, Wildcard), func(l, r Value) (Value, error) {
			if l.Unit != r.Unit {
				return Value{}, &IncompatibleUnitsError{Op: "/", Left: l, Right: r}
			}
			return Value{Num: l.Num / r.Num}, nil
		}},
	}
}

// unitName names a unit for messages.
func unitName(u string) string {
	if u == "" {
		return "unitless"
	}
	return u
}
