package rules

import (
	"fmt"
	"strings"

	"github.com/mohamedkhairy/stock-alerts/internal/models"
)

// Parse tokenizes an expression and splits it into OR groups of AND clauses.
// OR is always the outermost grouping. Each clause is parsed on its own, so a
// malformed clause is recorded in Clause.Err without discarding its neighbours.
// Parse fails only when the text cannot be tokenized.
func Parse(src string) (*Expression, error) {
	if strings.TrimSpace(src) == "" {
		return nil, models.ErrEmptyExpression
	}

	tokens, err := lex(src)
	if err != nil {
		return nil, err
	}

	expr := &Expression{Source: src}
	for _, orPart := range splitTokens(tokens, tokOr) {
		var group Group
		for _, andPart := range splitTokens(orPart, tokAnd) {
			group.Clauses = append(group.Clauses, parseClause(src, andPart))
		}
		expr.Groups = append(expr.Groups, group)
	}

	return expr, nil
}

// Check parses src and returns the first error found in any clause
func Check(src string) error {
	expr, err := Parse(src)
	if err != nil {
		return err
	}
	for _, group := range expr.Groups {
		for _, clause := range group.Clauses {
			if clause.Err != nil {
				return fmt.Errorf("%q: %w", clause.Text, clause.Err)
			}
		}
	}
	return nil
}

// splitTokens splits tokens on every separator of the given kind. Empty parts are kept.
func splitTokens(tokens []token, sep tokenKind) [][]token {
	parts := [][]token{{}}
	for _, tok := range tokens {
		if tok.kind == sep {
			parts = append(parts, []token{})
			continue
		}
		parts[len(parts)-1] = append(parts[len(parts)-1], tok)
	}
	return parts
}

func parseClause(src string, tokens []token) Clause {
	if len(tokens) == 0 {
		return Clause{Err: &ExpressionSyntaxError{Fragment: src, Reason: "empty condition around AND/OR"}}
	}

	text := src[tokens[0].pos:tokens[len(tokens)-1].end]
	term, err := matchTerm(src, tokens)
	if err != nil {
		return Clause{Text: text, Err: err}
	}
	return Clause{Text: text, Term: term}
}
