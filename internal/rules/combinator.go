package rules

import (
	"fmt"
	"math"
	"strings"

	"github.com/mohamedkhairy/stock-alerts/internal/models"
	"github.com/mohamedkhairy/stock-alerts/pkg/indicator"
)

// epsilon for numeric == and != comparisons
const epsilon = 0.0001

// evaluateExpression ORs the groups; every group is evaluated so the explanation covers all of them
func evaluateExpression(expr *Expression, bars []models.Bar) EvaluationResult {
	matched := false
	parts := make([]string, 0, len(expr.Groups))

	for _, group := range expr.Groups {
		result := evaluateGroup(group, bars)
		matched = matched || result.Matched
		parts = append(parts, result.Explanation)
	}

	return EvaluationResult{Matched: matched, Explanation: strings.Join(parts, " OR ")}
}

// evaluateGroup ANDs the clauses of one group
func evaluateGroup(group Group, bars []models.Bar) EvaluationResult {
	matched := true
	parts := make([]string, 0, len(group.Clauses))

	for _, clause := range group.Clauses {
		result := evaluateClause(clause, bars)
		matched = matched && result.Matched
		parts = append(parts, result.Explanation)
	}

	return EvaluationResult{Matched: matched, Explanation: strings.Join(parts, " AND ")}
}

// evaluateClause turns a parse or evaluation failure into a non-matching result
func evaluateClause(clause Clause, bars []models.Bar) EvaluationResult {
	if clause.Err != nil {
		return EvaluationResult{Explanation: clause.Err.Error()}
	}

	var (
		result EvaluationResult
		err    error
	)
	switch t := clause.Term.(type) {
	case *Comparison:
		result, err = evaluateComparison(t, bars)
	case *Cross:
		result, err = evaluateCross(t, bars)
	default:
		err = fmt.Errorf("unsupported term %T", clause.Term)
	}
	if err != nil {
		return EvaluationResult{Explanation: err.Error()}
	}
	return result
}

func evaluateComparison(c *Comparison, bars []models.Bar) (EvaluationResult, error) {
	left, err := indicator.Compute(bars, c.Left)
	if err != nil {
		return EvaluationResult{}, err
	}

	var right indicator.Value
	rightText := ""
	if c.Right.Call != nil {
		right, err = indicator.Compute(bars, *c.Right.Call)
		if err != nil {
			return EvaluationResult{}, err
		}
		rightText = fmt.Sprintf("%s = %s", c.Right.Call.Label(), right.Format())
	} else {
		right = *c.Right.Literal
		rightText = right.String()
	}

	matched, err := compare(left, c.Op, right)
	if err != nil {
		return EvaluationResult{}, err
	}

	leftText := fmt.Sprintf("%s = %s", c.Left.Label(), left.Format())
	if matched {
		return EvaluationResult{
			Matched:     true,
			Explanation: fmt.Sprintf("%s %s %s", leftText, c.Op, rightText),
		}, nil
	}
	return EvaluationResult{
		Explanation: fmt.Sprintf("%s (not %s %s)", leftText, c.Op, rightText),
	}, nil
}

// compare applies op to two values of the same kind
func compare(left indicator.Value, op Operator, right indicator.Value) (bool, error) {
	if left.Kind != right.Kind {
		return false, fmt.Errorf("cannot compare %s value with %s value", left.Kind, right.Kind)
	}

	if left.Kind == indicator.Text {
		switch op {
		case OpEqual:
			return left.Str == right.Str, nil
		case OpNotEqual:
			return left.Str != right.Str, nil
		}
		return false, fmt.Errorf("operator %s requires numeric operands", op)
	}

	a, b := left.Num, right.Num
	switch op {
	case OpGreater:
		return a > b, nil
	case OpLess:
		return a < b, nil
	case OpGreaterEqual:
		return a >= b, nil
	case OpLessEqual:
		return a <= b, nil
	case OpEqual:
		return math.Abs(a-b) < epsilon, nil
	case OpNotEqual:
		return math.Abs(a-b) >= epsilon, nil
	}
	return false, fmt.Errorf("unsupported operator: %s", op)
}

// evaluateCross compares both calls at the previous bar (offset 1) and the current bar (offset 0)
func evaluateCross(c *Cross, bars []models.Bar) (EvaluationResult, error) {
	prevLeft, err := indicator.Compute(bars, c.Left.At(1))
	if err != nil {
		return EvaluationResult{}, err
	}
	prevRight, err := indicator.Compute(bars, c.Right.At(1))
	if err != nil {
		return EvaluationResult{}, err
	}
	curLeft, err := indicator.Compute(bars, c.Left.At(0))
	if err != nil {
		return EvaluationResult{}, err
	}
	curRight, err := indicator.Compute(bars, c.Right.At(0))
	if err != nil {
		return EvaluationResult{}, err
	}

	l1, r1, l0, r0 := prevLeft.Num, prevRight.Num, curLeft.Num, curRight.Num

	var matched bool
	verb := "above"
	switch c.Direction {
	case CrossesAbove:
		matched = l1 <= r1 && l0 > r0
	case CrossesBelow:
		verb = "below"
		matched = l1 >= r1 && l0 < r0
	default:
		return EvaluationResult{}, fmt.Errorf("unsupported crossover: %s", c.Direction)
	}

	detail := fmt.Sprintf("(%s: %s -> %s, %s: %s -> %s)",
		c.Left.Label(), prevLeft.Format(), curLeft.Format(),
		c.Right.Label(), prevRight.Format(), curRight.Format())

	if matched {
		return EvaluationResult{
			Matched:     true,
			Explanation: fmt.Sprintf("%s crossed %s %s %s", c.Left.Label(), verb, c.Right.Label(), detail),
		}, nil
	}
	return EvaluationResult{
		Explanation: fmt.Sprintf("%s did not cross %s %s %s", c.Left.Label(), verb, c.Right.Label(), detail),
	}, nil
}
