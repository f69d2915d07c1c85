package dimcalc

import (
	"errors"
	"strconv"
	"unicode"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
	// num is the value of a number or number-with-unit token.
	num float64
	// unit is the unit suffix of a number-with-unit token.
	unit string
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int8

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenNum is a unitless number.
	tokenNum
	// tokenDim is a number with a unit suffix, e.g. 10px.
	tokenDim
	// tokenFunc is the name of a configured function.
	tokenFunc
	// tokenConst is the name of a configured constant.
	tokenConst
	// tokenString is bare text, evaluated as itself.
	tokenString

	tokenPlus
	tokenMinus
	tokenStar
	tokenSlash
	tokenCaret
	tokenOpen
	tokenClose
	tokenComma

	// tokenSpace is whitespace. The lexer tracks it to decide whether a minus
	// sign belongs to a number, but never emits it.
	tokenSpace
)

var tokenNames = [...]string{
	tokenNone:   "None",
	tokenEOF:    "EOF",
	tokenNum:    "Num",
	tokenDim:    "Dim",
	tokenFunc:   "Func",
	tokenConst:  "Const",
	tokenString: "String",
	tokenPlus:   "+",
	tokenMinus:  "-",
	tokenStar:   "*",
	tokenSlash:  "/",
	tokenCaret:  "^",
	tokenOpen:   "(",
	tokenClose:  ")",
	tokenComma:  ",",
	tokenSpace:  "Space",
}

func (k tokenKind) String() string {
	if k < 0 || int(k) >= len(tokenNames) {
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenNames[k]
}

// isOp reports whether k is an arithmetic operator.
func (k tokenKind) isOp() bool {
	return tokenPlus <= k && k <= tokenCaret
}

// yieldsValue reports whether a minus sign following k must be an operator
// rather than the sign of a number.
func (k tokenKind) yieldsValue() bool {
	switch k {
	case tokenNum, tokenDim, tokenFunc, tokenConst, tokenClose:
		return true
	}
	return false
}

// punct maps single-rune tokens to their kinds.
var punct = map[rune]tokenKind{
	'+': tokenPlus,
	'-': tokenMinus,
	'*': tokenStar,
	'/': tokenSlash,
	'^': tokenCaret,
	'(': tokenOpen,
	')': tokenClose,
	',': tokenComma,
}

type lexer struct {
	src []rune
	// i is the index of the next rune to scan.
	i   int
	cfg *Config
	// prev is the kind of the last token scanned, including whitespace.
	prev tokenKind
}

// lex scans all tokens in src. The result does not include the EOF token.
func lex(src string, cfg *Config) ([]lexToken, error) {
	l := lexer{src: []rune(src), cfg: cfg}
	var toks []lexToken
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokenEOF {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

// next scans the next token from the input.
func (l *lexer) next() (lexToken, error) {
	for l.i < len(l.src) && unicode.IsSpace(l.src[l.i]) {
		l.i++
		l.prev = tokenSpace
	}
	tok := lexToken{pos: l.i + 1}
	if l.i >= len(l.src) {
		tok.kind = tokenEOF
		return tok, nil
	}
	r := l.src[l.i]
	switch {
	case isDigit(r), r == '.' && l.digitAt(l.i+1):
		if err := l.scanNum(&tok); err != nil {
			return tok, err
		}
	case r == '-' && !l.prev.yieldsValue() && l.numberAt(l.i+1):
		// A minus that can't be subtraction is the sign of a number.
		if err := l.scanNum(&tok); err != nil {
			return tok, err
		}
	case isLetter(r):
		if err := l.scanIdent(&tok); err != nil {
			return tok, err
		}
	default:
		k, ok := punct[r]
		if !ok {
			if err := l.scanString(&tok); err != nil {
				return tok, err
			}
			break
		}
		l.i++
		tok.text = string(r)
		tok.kind = k
		if k.isOp() && l.prev.isOp() {
			return tok, &OperatorError{Col: tok.pos, Operator: tok.text, Prev: tokenNames[l.prev]}
		}
	}
	l.prev = tok.kind
	return tok, nil
}

func (l *lexer) digitAt(i int) bool {
	return i < len(l.src) && isDigit(l.src[i])
}

// numberAt reports whether a number starts at i.
func (l *lexer) numberAt(i int) bool {
	if l.digitAt(i) {
		return true
	}
	return i < len(l.src) && l.src[i] == '.' && l.digitAt(i+1)
}

// scanNum scans a number with an optional sign and unit suffix. The suffix
// must be an allowed unit.
func (l *lexer) scanNum(tok *lexToken) error {
	start := l.i
	if l.src[l.i] == '-' {
		l.i++
	}
	for l.digitAt(l.i) {
		l.i++
	}
	if l.i < len(l.src) && l.src[l.i] == '.' {
		l.i++
		for l.digitAt(l.i) {
			l.i++
		}
	}
	end := l.i
	for l.i < len(l.src) && isUnitRune(l.src[l.i]) {
		l.i++
	}
	tok.text = string(l.src[start:l.i])
	num, err := strconv.ParseFloat(string(l.src[start:end]), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		// The scanner only accepts text that ParseFloat understands.
		panic("dimcalc: invalid number " + strconv.Quote(tok.text) + ": " + err.Error())
	}
	tok.num = num
	if end == l.i {
		tok.kind = tokenNum
		return nil
	}
	unit := string(l.src[end:l.i])
	if !l.cfg.AllowsUnit(unit) {
		return &UnsupportedUnitError{Col: tok.pos, Unit: unit, Allowed: l.cfg.Units()}
	}
	tok.kind = tokenDim
	tok.unit = unit
	return nil
}

// scanIdent scans a function or constant name. Any other word is a string.
func (l *lexer) scanIdent(tok *lexToken) error {
	start := l.i
	end := l.i
	for end < len(l.src) && (isLetter(l.src[end]) || isDigit(l.src[end]) || l.src[end] == '_') {
		end++
	}
	word := string(l.src[start:end])
	switch {
	case l.cfg.funcs[word] != nil:
		tok.kind = tokenFunc
	case l.cfg.hasConst(word):
		tok.kind = tokenConst
	default:
		return l.scanString(tok)
	}
	l.i = end
	tok.text = word
	return nil
}

// scanString scans text up to the next whitespace.
func (l *lexer) scanString(tok *lexToken) error {
	start := l.i
	for l.i < len(l.src) && !unicode.IsSpace(l.src[l.i]) {
		l.i++
	}
	tok.text = string(l.src[start:l.i])
	if !l.cfg.strs {
		switch r := l.src[start]; {
		case isLetter(r), r == '\'', r == '"':
			return &StringError{Col: tok.pos, Text: tok.text}
		default:
			return &LexError{Text: string(r), Col: tok.pos}
		}
	}
	tok.kind = tokenString
	return nil
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

func isUnitRune(r rune) bool {
	return isLetter(r) || isDigit(r) || r == '%'
}

// LexError indicates an invalid character. It implements InputError.
type LexError struct {
	// Text is the invalid character.
	Text string
	// Kind is the type of token the lexer was scanning, or the empty string
	// if a token kind hadn't been decided.
	Kind string
	// Col is the position of the invalid character.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Kind == "" {
		return "invalid character at " + pos + ": " + err.Text
	}
	return "invalid " + err.Kind + " token at " + pos + ": " + err.Text
}

func (err *LexError) Pos() int {
	return err.Col
}
