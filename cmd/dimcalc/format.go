package main

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/zephyrtronium/dimcalc"
)

// maxFrac is the most fraction digits shown for localized numbers.
const maxFrac = 10

// formatter formats results, optionally for a locale.
type formatter struct {
	p *message.Printer
}

// newFormatter creates a formatter for the given BCP 47 tag. An empty tag
// formats results as dimcalc does.
func newFormatter(locale string) (*formatter, error) {
	if locale == "" {
		return &formatter{}, nil
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, err
	}
	return &formatter{p: message.NewPrinter(tag)}, nil
}

func (f *formatter) format(r dimcalc.Result) string {
	if f == nil || f.p == nil || r.IsText {
		return r.String()
	}
	x := r.Value.Num
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return r.String()
	}
	s := f.p.Sprintf("%v", number.Decimal(x, number.MaxFractionDigits(maxFrac)))
	if r.Value.SameUnitQuotient() {
		return s
	}
	return s + r.Value.Unit
}
