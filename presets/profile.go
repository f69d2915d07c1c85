package presets

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/dimcalc"
)

// Profile describes a configuration in YAML:
//
//	preset: design
//	base_size: 10
//	more_units: [pt]
//	function_units: convert
//	ratios:
//	  - {from: pt, to: px, factor: 1.333}
//	tables:
//	  - units: [km, m, cm, mm]
//	    factors: [1000, 100, 10]
//
// Fields left out keep the values of the preset.
type Profile struct {
	// Preset names the starting configuration, as for Named.
	Preset string `yaml:"preset"`
	// BaseSize is the px per rem of the design preset.
	BaseSize float64 `yaml:"base_size"`
	// Units replaces the allowed units.
	Units []string `yaml:"units"`
	// MoreUnits adds allowed units.
	MoreUnits []string `yaml:"more_units"`
	// Strings and Multiple allow bare text and multiple expressions.
	Strings  *bool `yaml:"strings"`
	Multiple *bool `yaml:"multiple"`
	// FunctionUnits is strict or convert.
	FunctionUnits string `yaml:"function_units"`
	// Percent adds percent arithmetic.
	Percent bool `yaml:"percent"`
	// Constants adds named constants.
	Constants map[string]float64 `yaml:"constants"`
	// Ratios are pairs of convertible units.
	Ratios []Ratio `yaml:"ratios"`
	// Tables are families of convertible units.
	Tables []TableSpec `yaml:"tables"`
}

// Ratio states that one From is Factor of To.
type Ratio struct {
	From   string  `yaml:"from"`
	To     string  `yaml:"to"`
	Factor float64 `yaml:"factor"`
}

// TableSpec is the YAML form of a Table.
type TableSpec struct {
	Units   []string  `yaml:"units"`
	Factors []float64 `yaml:"factors"`
}

// ParseProfile reads a profile. Unknown fields are errors. An empty document
// is an empty profile.
func ParseProfile(r io.Reader) (*Profile, error) {
	var p Profile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	return &p, nil
}

// LoadProfile reads a profile from a file and builds its Config.
func LoadProfile(path string) (*dimcalc.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	defer f.Close()
	p, err := ParseProfile(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg, err := p.Config()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Config builds the Config the profile describes.
func (p *Profile) Config() (*dimcalc.Config, error) {
	var base *dimcalc.Config
	switch p.Preset {
	case "", "css":
		base = dimcalc.NewConfig()
	case "percent":
		base = Percent(nil)
	case "design":
		base = DesignTool(p.BaseSize)
	default:
		return nil, fmt.Errorf("unknown preset %q", p.Preset)
	}
	var opts []dimcalc.Option
	if p.Units != nil {
		opts = append(opts, dimcalc.Units(p.Units...))
	}
	if len(p.MoreUnits) != 0 {
		opts = append(opts, dimcalc.MoreUnits(p.MoreUnits...))
	}
	if p.Strings != nil {
		opts = append(opts, dimcalc.AllowStrings(*p.Strings))
	}
	if p.Multiple != nil {
		opts = append(opts, dimcalc.AllowMultipleExpressions(*p.Multiple))
	}
	switch p.FunctionUnits {
	case "":
	case "strict":
		opts = append(opts, dimcalc.FuncUnits(dimcalc.FuncUnitsStrict))
	case "convert":
		opts = append(opts, dimcalc.FuncUnits(dimcalc.FuncUnitsConvert))
	default:
		return nil, fmt.Errorf("function_units must be strict or convert, not %q", p.FunctionUnits)
	}
	for name, v := range p.Constants {
		opts = append(opts, dimcalc.SetConst(name, v))
	}
	cfg := base.With(opts...)
	var tables []*Table
	for _, r := range p.Ratios {
		t, err := NewTable([]string{r.From, r.To}, []float64{r.Factor})
		if err != nil {
			return nil, fmt.Errorf("bad ratio %s to %s: %w", r.From, r.To, err)
		}
		tables = append(tables, t)
	}
	for i, s := range p.Tables {
		t, err := NewTable(s.Units, s.Factors)
		if err != nil {
			return nil, fmt.Errorf("bad table %d: %w", i+1, err)
		}
		tables = append(tables, t)
	}
	if len(tables) != 0 {
		cfg = Dimensions(cfg, tables...)
	}
	if p.Percent {
		cfg = Percent(cfg)
	}
	return cfg, nil
}

// Names lists the presets Named accepts.
var Names = []string{"css", "percent", "design"}

// Named returns the named preset: css for the defaults, percent for Percent,
// or design for DesignTool with the default base size.
func Named(name string) (*dimcalc.Config, error) {
	p := Profile{Preset: name}
	return p.Config()
}
