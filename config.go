package dimcalc

import (
	"math"

	"github.com/rs/zerolog"
)

// Config holds the units, functions, constants, and conversions used to
// evaluate expressions. A Config is never modified after it is created, so
// it is safe to share between concurrent calls.
type Config struct {
	units   []string
	unitset map[string]bool
	funcs   map[string]Func
	consts  map[string]float64
	conv    *Conversions
	strs    bool
	multi   bool
	fnunits FuncUnitPolicy
	log     zerolog.Logger
}

// FuncUnitPolicy controls how functions of several arguments treat arguments
// with different units.
type FuncUnitPolicy int8

const (
	// FuncUnitsStrict requires all arguments to have exactly the same unit.
	FuncUnitsStrict FuncUnitPolicy = iota
	// FuncUnitsConvert converts arguments to a common unit using the
	// addition rules of the conversion registry.
	FuncUnitsConvert
)

func (p FuncUnitPolicy) String() string {
	switch p {
	case FuncUnitsStrict:
		return "strict"
	case FuncUnitsConvert:
		return "convert"
	}
	return "FuncUnitPolicy(?)"
}

// CSSUnits are the units allowed by default.
var CSSUnits = []string{"px", "em", "rem", "%", "vh", "vw", "vmin", "vmax", "cm", "mm", "in", "pt", "pc"}

var defaultConsts = map[string]float64{
	"PI":      math.Pi,
	"E":       math.E,
	"LN2":     math.Ln2,
	"LN10":    math.Ln10,
	"LOG2E":   math.Log2E,
	"LOG10E":  math.Log10E,
	"SQRT1_2": math.Sqrt2 / 2,
	"SQRT2":   math.Sqrt2,
}

// Option is an option used when creating a Config.
type Option interface {
	cfgOption()
}

type (
	unitsopt     []string
	moreunitsopt []string
	funcopt      struct {
		name string
		fn   Func
	}
	funcsopt  map[string]Func
	nofuncopt struct{}
	constopt  struct {
		name string
		val  float64
	}
	constsopt map[string]float64
	convopt   []Rule
	noconvopt struct{}
	stropt    bool
	multiopt  bool
	fnunitopt FuncUnitPolicy
	logopt    zerolog.Logger
)

func (unitsopt) cfgOption()     {}
func (moreunitsopt) cfgOption() {}
func (funcopt) cfgOption()      {}
func (funcsopt) cfgOption()     {}
func (nofuncopt) cfgOption()    {}
func (constopt) cfgOption()     {}
func (constsopt) cfgOption()    {}
func (convopt) cfgOption()      {}
func (noconvopt) cfgOption()    {}
func (stropt) cfgOption()       {}
func (multiopt) cfgOption()     {}
func (fnunitopt) cfgOption()    {}
func (logopt) cfgOption()       {}

// Units replaces the allowed units. Order is kept for error messages.
func Units(units ...string) Option {
	return unitsopt(units)
}

// MoreUnits adds to the allowed units.
func MoreUnits(units ...string) Option {
	return moreunitsopt(units)
}

// SetFunc adds a function, or removes it if fn is nil.
func SetFunc(name string, fn Func) Option {
	return funcopt{name, fn}
}

// SetFuncs adds any number of functions. Nil entries remove functions.
func SetFuncs(funcs map[string]Func) Option {
	return funcsopt(funcs)
}

// DisableDefaultFuncs removes all functions added before it.
func DisableDefaultFuncs() Option {
	return nofuncopt{}
}

// SetConst adds a constant.
func SetConst(name string, val float64) Option {
	return constopt{name, val}
}

// SetConsts replaces all constants.
func SetConsts(consts map[string]float64) Option {
	return constsopt(consts)
}

// AddConversions adds conversion rules, replacing rules with the same key.
// A rule with a nil Fn removes the rule for its key.
func AddConversions(rules ...Rule) Option {
	return convopt(rules)
}

// NoConversions removes all conversion rules, including the defaults.
// Multiplication and division by unitless values still work.
func NoConversions() Option {
	return noconvopt{}
}

// AllowStrings sets whether bare text is allowed in expressions.
func AllowStrings(allow bool) Option {
	return stropt(allow)
}

// AllowMultipleExpressions sets whether an input may hold several
// expressions, e.g. "10px solid red".
func AllowMultipleExpressions(allow bool) Option {
	return multiopt(allow)
}

// FuncUnits sets the unit policy for functions of several arguments.
func FuncUnits(p FuncUnitPolicy) Option {
	return fnunitopt(p)
}

// Logger sets the logger for debug tracing. The default discards everything.
func Logger(l zerolog.Logger) Option {
	return logopt(l)
}

var defaultConfig *Config

func init() {
	defaultConfig = NewConfig()
}

// Default returns the default Config.
func Default() *Config {
	return defaultConfig
}

// NewConfig creates a Config with CSS units, the standard functions and
// constants, the default conversions, and strings and multiple expressions
// allowed, then applies opts.
func NewConfig(opts ...Option) *Config {
	cfg := Config{
		units:   CSSUnits,
		funcs:   globalfuncs,
		consts:  defaultConsts,
		conv:    NewConversions(defaultRules()...),
		strs:    true,
		multi:   true,
		fnunits: FuncUnitsStrict,
		log:     zerolog.Nop(),
	}
	return cfg.With(opts...)
}

// With creates a copy of cfg and applies options to it. cfg is unchanged.
func (cfg *Config) With(opts ...Option) *Config {
	if cfg == nil {
		cfg = defaultConfig
	}
	n := Config{
		units:   append([]string(nil), cfg.units...),
		funcs:   make(map[string]Func, len(cfg.funcs)),
		consts:  make(map[string]float64, len(cfg.consts)),
		conv:    cfg.conv,
		strs:    cfg.strs,
		multi:   cfg.multi,
		fnunits: cfg.fnunits,
		log:     cfg.log,
	}
	for k, v := range cfg.funcs {
		n.funcs[k] = v
	}
	for k, v := range cfg.consts {
		n.consts[k] = v
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case unitsopt:
			n.units = append(n.units[:0:0], opt...)
		case moreunitsopt:
			n.units = append(n.units, opt...)
		case funcopt:
			n.setFunc(opt.name, opt.fn)
		case funcsopt:
			for k, v := range opt {
				n.setFunc(k, v)
			}
		case nofuncopt:
			n.funcs = make(map[string]Func)
		case constopt:
			n.consts[opt.name] = opt.val
		case constsopt:
			n.consts = make(map[string]float64, len(opt))
			for k, v := range opt {
				n.consts[k] = v
			}
		case convopt:
			// Each Config owns its registry once modified, so earlier
			// snapshots never observe new rules.
			n.conv = n.conv.with(opt)
		case noconvopt:
			n.conv = NewConversions()
		case stropt:
			n.strs = bool(opt)
		case multiopt:
			n.multi = bool(opt)
		case fnunitopt:
			n.fnunits = FuncUnitPolicy(opt)
		case logopt:
			n.log = zerolog.Logger(opt)
		default:
			panic("dimcalc: unknown option type")
		}
	}
	n.units = dedup(n.units)
	n.unitset = make(map[string]bool, len(n.units))
	for _, u := range n.units {
		n.unitset[u] = true
	}
	return &n
}

func (cfg *Config) setFunc(name string, fn Func) {
	if fn == nil {
		delete(cfg.funcs, name)
		return
	}
	cfg.funcs[name] = fn
}

// AddUnitConversions returns a copy of cfg with rules added to its
// conversion registry. cfg itself is not modified. If cfg is nil, the rules
// are added to the default Config.
func AddUnitConversions(cfg *Config, rules ...Rule) *Config {
	return cfg.With(AddConversions(rules...))
}

// Units returns the allowed units in order.
func (cfg *Config) Units() []string {
	if cfg == nil {
		cfg = defaultConfig
	}
	return append([]string(nil), cfg.units...)
}

// AllowsUnit returns whether unit may appear as a number suffix.
func (cfg *Config) AllowsUnit(unit string) bool {
	if cfg == nil {
		cfg = defaultConfig
	}
	return cfg.unitset[unit]
}

// Func returns the function with the given name, or nil if there is none.
func (cfg *Config) Func(name string) Func {
	if cfg == nil {
		cfg = defaultConfig
	}
	return cfg.funcs[name]
}

// Const returns the value of the named constant.
func (cfg *Config) Const(name string) (float64, bool) {
	if cfg == nil {
		cfg = defaultConfig
	}
	v, ok := cfg.consts[name]
	return v, ok
}

func (cfg *Config) hasConst(name string) bool {
	_, ok := cfg.consts[name]
	return ok
}

// Names returns the names of all functions and constants, for completion.
func (cfg *Config) Names() []string {
	if cfg == nil {
		cfg = defaultConfig
	}
	r := make([]string, 0, len(cfg.funcs)+len(cfg.consts))
	for k := range cfg.funcs {
		r = append(r, k)
	}
	for k := range cfg.consts {
		r = append(r, k)
	}
	return r
}

// Conversions returns the conversion registry.
func (cfg *Config) Conversions() *Conversions {
	return cfg.conversions()
}

func (cfg *Config) conversions() *Conversions {
	if cfg == nil {
		return defaultConfig.conv
	}
	return cfg.conv
}

// AllowsStrings returns whether bare text is allowed.
func (cfg *Config) AllowsStrings() bool {
	if cfg == nil {
		cfg = defaultConfig
	}
	return cfg.strs
}

// AllowsMultipleExpressions returns whether inputs may hold several
// expressions.
func (cfg *Config) AllowsMultipleExpressions() bool {
	if cfg == nil {
		cfg = defaultConfig
	}
	return cfg.multi
}

// FuncUnitPolicy returns the unit policy for functions.
func (cfg *Config) FuncUnitPolicy() FuncUnitPolicy {
	if cfg == nil {
		cfg = defaultConfig
	}
	return cfg.fnunits
}

func dedup(s []string) []string {
	seen := make(map[string]bool, len(s))
	r := s[:0]
	for _, v := range s {
		if seen[v] {
			continue
		}
		seen[v] = true
		r = append(r, v)
	}
	return r
}
