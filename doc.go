// Package dimcalc evaluates arithmetic on dimensional values, in the manner
// of CSS calc().
//
// Numbers may carry a unit suffix, as in "10px + 2px" or "1.5rem * 2". Values
// with the same unit combine directly. Values with different units combine
// according to conversion rules in a Config, looked up by operator and the
// units of both operands. A rule may name a specific unit or the Wildcard on
// either side, so a single rule can teach every unit how to combine with
// percentages.
//
// An input may hold several expressions side by side: "10px solid red"
// evaluates to "10px", "solid", and "red", and "1+1 2+2" to 2 and 4. Configs
// can disallow bare text and multiple expressions.
//
// The usual precedence applies, "^" is right-associative, and a minus sign
// directly before a number is part of it unless it follows a value. So
// "-2^2" is 4, while "5 - -3" is 8.
package dimcalc
