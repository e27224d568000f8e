package rules

import (
	"fmt"

	"github.com/mohamedkhairy/stock-alerts/pkg/indicator"
)

// Error types raised while parsing or evaluating an expression. ValueParseError,
// UnknownIndicatorError and InsufficientDataError live in pkg/indicator and are
// aliased here so callers can match every DSL error from one package.
type (
	ValueParseError       = indicator.ValueParseError
	UnknownIndicatorError = indicator.UnknownIndicatorError
	InsufficientDataError = indicator.InsufficientDataError
)

// ExpressionSyntaxError is returned when part of an expression cannot be parsed
type ExpressionSyntaxError struct {
	Fragment string
	Reason   string
}

func (e *ExpressionSyntaxError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("syntax error near %q", e.Fragment)
	}
	return fmt.Sprintf("syntax error near %q: %s", e.Fragment, e.Reason)
}
