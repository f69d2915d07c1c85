package dimcalc

// Expr = num | dim | const | string | Call | Neg | Plus | Add | Sub | Mul | Div | Pow | '(' Expr ')'
// Call = func '(' Expr { ',' Expr } ')'
// Neg = '-' Expr
// Plus = '+' Expr
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr
// Div = Expr '/' Expr
// Pow = Expr '^' Expr

// Expr is one parsed expression. The functions and constants it names are
// resolved against the Config used to parse it, and it evaluates with that
// same Config.
type Expr struct {
	// n is the root node of the expression.
	n   *node
	cfg *Config
}

// String formats the expression fully parenthesized. The result parses to
// the same expression with the same Config.
func (e *Expr) String() string {
	return e.n.String()
}

// IsText returns whether the expression is bare text.
func (e *Expr) IsText() bool {
	return e.n.kind == nodeStr
}

// Parse parses the expressions in src. If cfg is nil, the default Config is
// used. Errors resulting from invalid input implement InputError.
func Parse(src string, cfg *Config) ([]*Expr, error) {
	if cfg == nil {
		cfg = defaultConfig
	}
	toks, err := lex(src, cfg)
	if err != nil {
		return nil, err
	}
	stmts, err := split(toks, cfg)
	if err != nil {
		return nil, err
	}
	exprs := make([]*Expr, 0, len(stmts))
	for _, stmt := range stmts {
		n, err := parseStmt(stmt, cfg)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, &Expr{n: n, cfg: cfg})
	}
	return exprs, nil
}

// operator is the parsing information for an operator token.
type operator struct {
	// bp is the binding power of the operator as an infix. Higher binds
	// more tightly.
	bp int8
	// right is whether the operator is right-associative.
	right bool
	// op is the node the operator creates.
	op nodeKind
}

// binop returns the infix operator for a token kind. Tokens that can't
// continue an expression have binding power 0.
func binop(k tokenKind) operator {
	switch k {
	case tokenOpen:
		return operator{bp: 50, op: nodeCall}
	case tokenCaret:
		return operator{bp: 40, right: true, op: nodePow}
	case tokenStar:
		return operator{bp: 30, op: nodeMul}
	case tokenSlash:
		return operator{bp: 30, op: nodeDiv}
	case tokenPlus:
		return operator{bp: 20, op: nodeAdd}
	case tokenMinus:
		return operator{bp: 20, op: nodeSub}
	}
	return operator{}
}

// prefixbp is the binding power of the operand of unary + and -.
const prefixbp = 20

type parser struct {
	toks []lexToken
	i    int
	cfg  *Config
	// end is the column just past the last token.
	end int
}

func parseStmt(toks []lexToken, cfg *Config) (*node, error) {
	last := toks[len(toks)-1]
	p := parser{toks: toks, cfg: cfg, end: last.pos + len([]rune(last.text))}
	n, err := p.parse(0)
	if err != nil {
		return nil, err
	}
	if p.i < len(p.toks) {
		tok := p.toks[p.i]
		return nil, &TrailingTokenError{Col: tok.pos, Text: tok.text}
	}
	return n, nil
}

func (p *parser) peek() lexToken {
	if p.i >= len(p.toks) {
		return lexToken{kind: tokenEOF, pos: p.end}
	}
	return p.toks[p.i]
}

func (p *parser) next() lexToken {
	tok := p.peek()
	if p.i < len(p.toks) {
		p.i++
	}
	return tok
}

// parse parses an expression, continuing while the next operator binds more
// tightly than rbp.
func (p *parser) parse(rbp int8) (*node, error) {
	left, err := p.nud(p.next())
	if err != nil {
		return nil, err
	}
	for binop(p.peek().kind).bp > rbp {
		left, err = p.led(left, p.next())
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

// nud parses a token that begins an expression.
func (p *parser) nud(tok lexToken) (*node, error) {
	switch tok.kind {
	case tokenNum, tokenDim:
		return &node{kind: nodeNum, pos: tok.pos, name: tok.text, num: tok.num, unit: tok.unit}, nil
	case tokenConst:
		v, _ := p.cfg.Const(tok.text)
		return &node{kind: nodeName, pos: tok.pos, name: tok.text, num: v}, nil
	case tokenFunc:
		return &node{kind: nodeName, pos: tok.pos, name: tok.text, fn: p.cfg.funcs[tok.text]}, nil
	case tokenString:
		return &node{kind: nodeStr, pos: tok.pos, name: tok.text}, nil
	case tokenPlus:
		return p.parse(prefixbp)
	case tokenMinus:
		operand, err := p.parse(prefixbp)
		if err != nil {
			return nil, err
		}
		return &node{kind: nodeNeg, pos: tok.pos, left: operand}, nil
	case tokenOpen:
		inner, err := p.parse(0)
		if err != nil {
			return nil, err
		}
		if err := p.close(tok); err != nil {
			return nil, err
		}
		return inner, nil
	case tokenStar, tokenSlash, tokenCaret:
		return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true}
	case tokenClose:
		return nil, &EmptyExpressionError{Col: tok.pos, End: tok.text}
	case tokenComma:
		return nil, &SeparatorError{Col: tok.pos, Sep: tok.text}
	case tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.pos}
	}
	panic("dimcalc: no null denotation for " + tok.String())
}

// led parses a token that continues the expression left.
func (p *parser) led(left *node, tok lexToken) (*node, error) {
	op := binop(tok.kind)
	if op.op == nodeCall {
		return p.call(left, tok)
	}
	rbp := op.bp
	if op.right {
		rbp--
	}
	right, err := p.parse(rbp)
	if err != nil {
		return nil, err
	}
	return &node{kind: op.op, pos: tok.pos, left: left, right: right}, nil
}

// call parses the argument list of a call to left. open is the opening
// parenthesis, already consumed.
func (p *parser) call(left *node, open lexToken) (*node, error) {
	if left.kind != nodeName || left.fn == nil {
		name := ""
		if left.kind == nodeName {
			name = left.name
		}
		return nil, &CallError{Col: open.pos, Func: name, NotFunc: true}
	}
	if p.peek().kind == tokenClose {
		return nil, &CallError{Col: open.pos, Func: left.name}
	}
	var args []*node
	for {
		arg, err := p.parse(0)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.peek().kind != tokenComma {
			break
		}
		p.next()
	}
	if err := p.close(open); err != nil {
		return nil, err
	}
	if !left.fn.CanCall(len(args)) {
		return nil, &CallError{Col: open.pos, Func: left.name, Len: len(args)}
	}
	return &node{kind: nodeCall, pos: left.pos, name: left.name, fn: left.fn, args: args}, nil
}

// close consumes the parenthesis closing open.
func (p *parser) close(open lexToken) error {
	tok := p.next()
	switch tok.kind {
	case tokenClose:
		return nil
	case tokenEOF:
		return &BracketError{Col: open.pos, Left: open.text}
	case tokenComma:
		return &SeparatorError{Col: tok.pos, Sep: tok.text}
	}
	return &TrailingTokenError{Col: tok.pos, Text: tok.text}
}
