package rules

import (
	"github.com/mohamedkhairy/stock-alerts/pkg/indicator"
)

// termParser walks the tokens of a single clause
type termParser struct {
	src    string
	tokens []token
	pos    int
}

// matchTerm recognizes "call OP operand" and "call crosses_above|crosses_below call"
func matchTerm(src string, tokens []token) (Term, error) {
	p := &termParser{src: src, tokens: tokens}

	left, err := p.call()
	if err != nil {
		return nil, err
	}

	tok, ok := p.next()
	if !ok {
		return nil, p.syntaxError(len(p.tokens)-1, "expected a comparison operator or crossover")
	}

	var term Term
	switch tok.kind {
	case tokCross:
		right, err := p.call()
		if err != nil {
			return nil, err
		}
		cross := &Cross{Left: left, Right: right, Direction: Direction(tok.text)}
		if err := validateCross(cross); err != nil {
			return nil, p.syntaxError(0, err.Error())
		}
		term = cross

	case tokOp:
		if err := ValidateOperator(tok.text); err != nil {
			return nil, p.syntaxError(p.pos-1, err.Error())
		}
		right, err := p.operand()
		if err != nil {
			return nil, err
		}
		cmp := &Comparison{Left: left, Op: Operator(tok.text), Right: right}
		if err := validateComparison(cmp); err != nil {
			return nil, p.syntaxError(0, err.Error())
		}
		term = cmp

	default:
		return nil, p.syntaxError(p.pos-1, "expected a comparison operator or crossover")
	}

	if p.pos < len(p.tokens) {
		return nil, p.syntaxError(p.pos, "unexpected trailing input")
	}
	return term, nil
}

// call parses IDENT ( '(' [param {',' param}] ')' )?
func (p *termParser) call() (indicator.Call, error) {
	start := p.pos
	tok, ok := p.next()
	if !ok {
		return indicator.Call{}, p.syntaxError(len(p.tokens)-1, "expected an indicator")
	}
	if tok.kind != tokIdent {
		return indicator.Call{}, p.syntaxError(start, "expected an indicator")
	}
	name := tok.text

	var params []string
	if next, ok := p.peek(); ok && next.kind == tokLParen {
		p.pos++
		list, err := p.params()
		if err != nil {
			return indicator.Call{}, err
		}
		params = list
	}

	return indicator.NewCall(name, params)
}

// params parses a parameter list after '(' through the closing ')'
func (p *termParser) params() ([]string, error) {
	var params []string

	if next, ok := p.peek(); ok && next.kind == tokRParen {
		p.pos++
		return params, nil
	}

	for {
		tok, ok := p.next()
		if !ok {
			return nil, p.syntaxError(len(p.tokens)-1, "unclosed parameter list")
		}
		switch tok.kind {
		case tokNumber, tokString, tokIdent:
			params = append(params, tok.text)
		default:
			return nil, p.syntaxError(p.pos-1, "expected a parameter")
		}

		sep, ok := p.next()
		if !ok {
			return nil, p.syntaxError(len(p.tokens)-1, "unclosed parameter list")
		}
		switch sep.kind {
		case tokComma:
			continue
		case tokRParen:
			return params, nil
		default:
			return nil, p.syntaxError(p.pos-1, "expected ',' or ')'")
		}
	}
}

// operand parses a literal or, on an identifier, another indicator call
func (p *termParser) operand() (Operand, error) {
	tok, ok := p.peek()
	if !ok {
		return Operand{}, p.syntaxError(len(p.tokens)-1, "expected a value")
	}

	switch tok.kind {
	case tokNumber, tokString:
		p.pos++
		lit, err := indicator.ParseValue(tok.text)
		if err != nil {
			return Operand{}, err
		}
		return Operand{Literal: &lit}, nil
	case tokIdent:
		call, err := p.call()
		if err != nil {
			return Operand{}, err
		}
		return Operand{Call: &call}, nil
	}

	return Operand{}, p.syntaxError(p.pos, "expected a value")
}

func (p *termParser) next() (token, bool) {
	if p.pos >= len(p.tokens) {
		return token{}, false
	}
	tok := p.tokens[p.pos]
	p.pos++
	return tok, true
}

func (p *termParser) peek() (token, bool) {
	if p.pos >= len(p.tokens) {
		return token{}, false
	}
	return p.tokens[p.pos], true
}

// syntaxError reports the source text from token i to the end of the clause
func (p *termParser) syntaxError(i int, reason string) error {
	if i < 0 {
		i = 0
	}
	last := p.tokens[len(p.tokens)-1]
	fragment := p.src[p.tokens[i].pos:last.end]
	return &ExpressionSyntaxError{Fragment: fragment, Reason: reason}
}
