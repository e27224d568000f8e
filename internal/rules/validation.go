package rules

import (
	"fmt"

	"github.com/mohamedkhairy/stock-alerts/pkg/indicator"
)

// ValidateOperator validates that an operator is supported
func ValidateOperator(op string) error {
	validOps := map[string]bool{
		">":  true,
		"<":  true,
		">=": true,
		"<=": true,
		"==": true,
		"!=": true,
	}

	if !validOps[op] {
		return fmt.Errorf("unsupported operator: %s (supported: >, <, >=, <=, ==, !=)", op)
	}

	return nil
}

// operandType returns the static type of a comparison operand
func operandType(o Operand) indicator.ValueKind {
	if o.Call != nil {
		return o.Call.Kind.Result()
	}
	return o.Literal.Kind
}

// operandLabel names an operand in error messages
func operandLabel(o Operand) string {
	if o.Call != nil {
		return o.Call.Kind.String()
	}
	return o.Literal.String()
}

// validateComparison checks operand types: ordering operators need numbers on
// both sides, == and != need both sides of the same type
func validateComparison(c *Comparison) error {
	left := c.Left.Kind.Result()
	right := operandType(c.Right)

	switch c.Op {
	case OpEqual, OpNotEqual:
		if left != right {
			return fmt.Errorf("cannot compare %s %s with %s value", c.Left.Kind, left, right)
		}
	default:
		if left != indicator.Numeric {
			return fmt.Errorf("operator %s requires numeric operands, %s is %s", c.Op, c.Left.Kind, left)
		}
		if right != indicator.Numeric {
			return fmt.Errorf("operator %s requires numeric operands, %s is %s", c.Op, operandLabel(c.Right), right)
		}
	}
	return nil
}

// validateCross checks that both sides of a crossover are numeric
func validateCross(c *Cross) error {
	if c.Left.Kind.Result() != indicator.Numeric || c.Right.Kind.Result() != indicator.Numeric {
		return fmt.Errorf("%s requires numeric indicators on both sides", c.Direction)
	}
	return nil
}
