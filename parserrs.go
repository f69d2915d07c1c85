package dimcalc

import (
	"strconv"
	"strings"
)

// OperatorError is an error indicating an operator token in a position where
// it cannot appear. It implements InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the token that was not understood.
	Operator string
	// Unary is whether the parser expected a unary operator at the time.
	Unary bool
	// Prev is the operator immediately preceding this one, if the error is
	// due to consecutive operators.
	Prev string
}

func (err *OperatorError) Error() string {
	switch {
	case err.Prev == "-" && err.Operator == "-":
		return errpos(err.Col, "consecutive minus operators are not allowed")
	case err.Prev != "":
		return errpos(err.Col, "consecutive operators are not allowed: "+err.Prev+err.Operator)
	case err.Unary:
		return errpos(err.Col, "unknown unary operator "+strconv.Quote(err.Operator))
	}
	return errpos(err.Col, "unknown binary operator "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int {
	return err.Col
}

// BracketError is an error indicating unbalanced parentheses in the input.
// It implements InputError.
type BracketError struct {
	// Col is the position of the unmatched parenthesis.
	Col int
	// Left is the opening parenthesis, or empty if a closing one was
	// unmatched.
	Left string
	// Right is the closing parenthesis, or empty if an opening one was
	// unmatched.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "unmatched closing parenthesis")
	}
	return errpos(err.Col, "unmatched opening parenthesis")
}

func (err *BracketError) Pos() int {
	return err.Col
}

// SeparatorError is an error indicating a comma outside the argument list of
// a function call. It implements InputError.
type SeparatorError struct {
	// Col is the position of the separator.
	Col int
	// Sep is the separator.
	Sep string
}

func (err *SeparatorError) Error() string {
	return errpos(err.Col, strconv.Quote(err.Sep)+" is only allowed between function arguments")
}

func (err *SeparatorError) Pos() int {
	return err.Col
}

// CallError is an error indicating an invalid function call. It implements
// InputError.
type CallError struct {
	// Col is the position of the opening parenthesis of the call.
	Col int
	// Func is the name of the called function, or of the constant that
	// was called. It is empty if the callee was not a name.
	Func string
	// Len is the number of arguments in the call.
	Len int
	// NotFunc is true if the callee is not a function.
	NotFunc bool
}

func (err *CallError) Error() string {
	switch {
	case err.NotFunc && err.Func == "":
		return errpos(err.Col, "cannot invoke an expression as a function")
	case err.NotFunc:
		return errpos(err.Col, "cannot invoke "+err.Func+" as a function")
	case err.Len == 0:
		return errpos(err.Col, "function "+err.Func+" called with no arguments")
	}
	return errpos(err.Col, "cannot call "+err.Func+" with "+strconv.Itoa(err.Len)+" arguments")
}

func (err *CallError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating an empty expression or
// subexpression.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col <= 1 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// TrailingTokenError is an error indicating a token left over after a
// complete expression.
type TrailingTokenError struct {
	// Col is the position of the token.
	Col int
	// Text is the token.
	Text string
}

func (err *TrailingTokenError) Error() string {
	return errpos(err.Col, "unexpected "+strconv.Quote(err.Text)+" after expression")
}

func (err *TrailingTokenError) Pos() int {
	return err.Col
}

// UnsupportedUnitError is an error indicating a number with a unit suffix
// that is not in the allowed units list.
type UnsupportedUnitError struct {
	// Col is the position of the number.
	Col int
	// Unit is the unsupported suffix.
	Unit string
	// Allowed is the allowed units list.
	Allowed []string
}

func (err *UnsupportedUnitError) Error() string {
	return errpos(err.Col, "invalid unit "+strconv.Quote(err.Unit)+"; allowed units are: "+strings.Join(err.Allowed, ", "))
}

func (err *UnsupportedUnitError) Pos() int {
	return err.Col
}

// StringError is an error indicating text in an expression where strings are
// not allowed.
type StringError struct {
	// Col is the position of the text.
	Col int
	// Text is the text.
	Text string
	// Operand is true if strings are allowed in general but the text was used
	// as an operand of arithmetic or a function call.
	Operand bool
}

func (err *StringError) Error() string {
	if err.Operand {
		return errpos(err.Col, "string "+strconv.Quote(err.Text)+" cannot be used in arithmetic")
	}
	return errpos(err.Col, "strings are not allowed in expressions: "+strconv.Quote(err.Text))
}

func (err *StringError) Pos() int {
	return err.Col
}

// MultipleExpressionsError is an error indicating that the input contains
// more than one expression when only one is allowed.
type MultipleExpressionsError struct {
	// Col is the position of the start of the second expression.
	Col int
	// Count is the number of expressions in the input.
	Count int
}

func (err *MultipleExpressionsError) Error() string {
	return errpos(err.Col, "multiple expressions are not allowed (found "+strconv.Itoa(err.Count)+")")
}

func (err *MultipleExpressionsError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*SeparatorError)(nil)
	_ InputError = (*CallError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*TrailingTokenError)(nil)
	_ InputError = (*UnsupportedUnitError)(nil)
	_ InputError = (*StringError)(nil)
	_ InputError = (*MultipleExpressionsError)(nil)
	_ InputError = (*LexError)(nil)
)
