package rules

import (
	"github.com/mohamedkhairy/stock-alerts/pkg/indicator"
)

// Operator is a comparison operator
type Operator string

const (
	OpGreater      Operator = ">"
	OpLess         Operator = "<"
	OpGreaterEqual Operator = ">="
	OpLessEqual    Operator = "<="
	OpEqual        Operator = "=="
	OpNotEqual     Operator = "!="
)

// Direction is the direction of a crossover
type Direction string

const (
	CrossesAbove Direction = "crosses_above"
	CrossesBelow Direction = "crosses_below"
)

// Literal is a typed constant on the right of a comparison
type Literal = indicator.Value

// Term is a single condition: a *Comparison or a *Cross
type Term interface {
	term()
}

// Operand is the right side of a comparison: a literal, or another indicator call
type Operand struct {
	Literal *Literal
	Call    *indicator.Call
}

// Comparison is "indicator(params) OP operand"
type Comparison struct {
	Left  indicator.Call
	Op    Operator
	Right Operand
}

func (*Comparison) term() {}

// Cross is "indicator(params) crosses_above|crosses_below indicator(params)"
type Cross struct {
	Left      indicator.Call
	Right     indicator.Call
	Direction Direction
}

func (*Cross) term() {}

// Clause is one parsed term together with its source text.
// Err is set instead of Term when the text could not be parsed.
type Clause struct {
	Text string
	Term Term
	Err  error
}

// Group is a run of clauses joined by AND
type Group struct {
	Clauses []Clause
}

// Expression is a flat OR of AND groups. There is no parenthesization:
// "A AND B OR C" always means (A AND B) OR C.
type Expression struct {
	Source string
	Groups []Group
}

// EvaluationResult is the outcome of evaluating one expression against one series
type EvaluationResult struct {
	Matched     bool   `json:"matched"`
	Explanation string `json:"explanation"`
}
