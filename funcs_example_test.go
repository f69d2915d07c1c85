package dimcalc_test

import (
	"fmt"

	"github.com/zephyrtronium/dimcalc"
)

func ExampleFunc() {
	// nargs counts its arguments. It handles units itself, so its arguments
	// may have any units.
	nargs := dimcalc.UnitFunc(0, -1, func(cfg *dimcalc.Config, args []dimcalc.Value) (dimcalc.Value, error) {
		return dimcalc.Unitless(float64(len(args))), nil
	})
	cfg := dimcalc.NewConfig(dimcalc.SetFunc("nargs", nargs))

	for _, src := range []string{"nargs(1)", "nargs(1px, 2em, 3%)", "nargs(1, nargs(2, 3))"} {
		exprs, err := dimcalc.Parse(src, cfg)
		if err != nil {
			panic(err)
		}
		r, err := exprs[0].Eval()
		if err != nil {
			panic(err)
		}
		fmt.Println(r, exprs[0])
	}

	// Output:
	// 1 (nargs((1)))
	// 3 (nargs((1px), (2em), (3%)))
	// 2 (nargs((1), (nargs((2), (3)))))
}

func ExampleCalc() {
	r, err := dimcalc.Calc("10px * 2 solid 6em / 2em -1 * PI", nil)
	if err != nil {
		panic(err)
	}
	for _, v := range r {
		fmt.Printf("%T %v\n", v, v)
	}

	// Output:
	// string 20px
	// string solid
	// string 3
	// float64 -3.141592653589793
}

func ExampleAddUnitConversions() {
	const base = 16
	cfg := dimcalc.AddUnitConversions(nil,
		dimcalc.Rule{
			Key: dimcalc.Key(dimcalc.OpAdd, "rem", "px"),
			Fn: func(l, r dimcalc.Value) (dimcalc.Value, error) {
				return dimcalc.Dim(l.Num*base+r.Num, "px"), nil
			},
		},
	)
	r, err := dimcalc.Calc("1.5rem + 8px", cfg)
	fmt.Println(r, err)
	_, err = dimcalc.Calc("8px + 1.5rem", cfg)
	fmt.Println(err)

	// Output:
	// [32px] <nil>
	// incompatible units px and rem for 8px + 1.5rem
}
