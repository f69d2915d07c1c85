package dimcalc

// endsGroup returns whether an expression can end with a token of kind k.
func endsGroup(k tokenKind) bool {
	switch k {
	case tokenNum, tokenDim, tokenConst, tokenString, tokenClose:
		return true
	}
	return false
}

// startsGroup returns whether a new expression begins with a token of kind k
// when it follows a token that can end one.
func startsGroup(k tokenKind) bool {
	switch k {
	case tokenNum, tokenDim, tokenString, tokenOpen, tokenFunc, tokenConst:
		return true
	}
	return false
}

// split divides a token list into independent expressions. Expressions are
// separated wherever a value is followed directly by another value outside
// parentheses, as in "10px solid red" or "1+1 2+2".
func split(toks []lexToken, cfg *Config) ([][]lexToken, error) {
	if len(toks) == 0 {
		return nil, &EmptyExpressionError{Col: 1}
	}
	var (
		stmts [][]lexToken
		opens []int
		start int
	)
	for i, tok := range toks {
		switch tok.kind {
		case tokenOpen:
			opens = append(opens, tok.pos)
		case tokenClose:
			if len(opens) == 0 {
				return nil, &BracketError{Col: tok.pos, Right: tok.text}
			}
			opens = opens[:len(opens)-1]
		case tokenComma:
			if len(opens) == 0 {
				return nil, &SeparatorError{Col: tok.pos, Sep: tok.text}
			}
		}
		if len(opens) == 0 && i+1 < len(toks) && endsGroup(tok.kind) && startsGroup(toks[i+1].kind) {
			stmts = append(stmts, toks[start:i+1:i+1])
			start = i + 1
		}
	}
	if len(opens) != 0 {
		return nil, &BracketError{Col: opens[len(opens)-1], Left: "("}
	}
	stmts = append(stmts, toks[start:])
	cfg.log.Debug().Int("tokens", len(toks)).Int("expressions", len(stmts)).Msg("split input")
	if len(stmts) > 1 && !cfg.multi {
		return nil, &MultipleExpressionsError{Col: stmts[1][0].pos, Count: len(stmts)}
	}
	return stmts, nil
}
