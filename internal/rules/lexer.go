package rules

import (
	"strings"
)

type tokenKind int

const (
	tokIdent tokenKind = iota
	tokNumber
	tokString
	tokOp
	tokLParen
	tokRParen
	tokComma
	tokAnd
	tokOr
	tokCross
)

func (k tokenKind) String() string {
	switch k {
	case tokIdent:
		return "identifier"
	case tokNumber:
		return "number"
	case tokString:
		return "string"
	case tokOp:
		return "operator"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokComma:
		return "','"
	case tokAnd:
		return "AND"
	case tokOr:
		return "OR"
	case tokCross:
		return "crossover"
	}
	return "token"
}

// token is one lexeme; pos and end index into the source text
type token struct {
	kind tokenKind
	text string
	pos  int
	end  int
}

// operators in longest-first order so ">=" never lexes as ">" followed by "="
var operatorTokens = []string{">=", "<=", "==", "!=", ">", "<"}

// lex splits an expression into tokens. "&&" and "||" are read as AND and OR.
// Keywords and operators inside quoted strings stay part of the string.
func lex(src string) ([]token, error) {
	var tokens []token
	i := 0

	for i < len(src) {
		c := src[i]

		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++

		case c == '(':
			tokens = append(tokens, token{kind: tokLParen, text: "(", pos: i, end: i + 1})
			i++

		case c == ')':
			tokens = append(tokens, token{kind: tokRParen, text: ")", pos: i, end: i + 1})
			i++

		case c == ',':
			tokens = append(tokens, token{kind: tokComma, text: ",", pos: i, end: i + 1})
			i++

		case c == '"':
			closing := strings.IndexByte(src[i+1:], '"')
			if closing < 0 {
				return nil, &ExpressionSyntaxError{Fragment: src[i:], Reason: "unterminated string"}
			}
			end := i + closing + 2
			tokens = append(tokens, token{kind: tokString, text: src[i:end], pos: i, end: end})
			i = end

		case strings.HasPrefix(src[i:], "&&"):
			tokens = append(tokens, token{kind: tokAnd, text: "AND", pos: i, end: i + 2})
			i += 2

		case strings.HasPrefix(src[i:], "||"):
			tokens = append(tokens, token{kind: tokOr, text: "OR", pos: i, end: i + 2})
			i += 2

		case isDigit(c) || c == '.' || (c == '-' && i+1 < len(src) && (isDigit(src[i+1]) || src[i+1] == '.')):
			start := i
			i++
			for i < len(src) && (isDigit(src[i]) || src[i] == '.') {
				i++
			}
			// unit suffix; validated later by the literal parser
			for i < len(src) && (isLetter(src[i]) || src[i] == '%') {
				i++
			}
			tokens = append(tokens, token{kind: tokNumber, text: src[start:i], pos: start, end: i})

		case isLetter(c) || c == '_':
			start := i
			for i < len(src) && (isLetter(src[i]) || isDigit(src[i]) || src[i] == '_') {
				i++
			}
			tokens = append(tokens, identToken(src[start:i], start, i))

		default:
			op := matchOperator(src[i:])
			if op == "" {
				return nil, &ExpressionSyntaxError{Fragment: src[i:], Reason: "unexpected character"}
			}
			tokens = append(tokens, token{kind: tokOp, text: op, pos: i, end: i + len(op)})
			i += len(op)
		}
	}

	return tokens, nil
}

func identToken(text string, pos, end int) token {
	kind := tokIdent
	switch text {
	case "AND":
		kind = tokAnd
	case "OR":
		kind = tokOr
	case string(CrossesAbove), string(CrossesBelow):
		kind = tokCross
	}
	return token{kind: kind, text: text, pos: pos, end: end}
}

func matchOperator(s string) string {
	for _, op := range operatorTokens {
		if strings.HasPrefix(s, op) {
			return op
		}
	}
	return ""
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
