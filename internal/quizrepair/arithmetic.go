package quizrepair

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Operator is one of the four supported arithmetic operators.
type Operator string

const (
	OpAdd      Operator = "+"
	OpSubtract Operator = "-"
	OpMultiply Operator = "×"
	OpDivide   Operator = "÷"
)

// ArithmeticExpression is a two-operand integer expression recognised in question text.
type ArithmeticExpression struct {
	Left     int64
	Operator Operator
	Right    int64
}

func operatorFor(r rune) (Operator, bool) {
	switch r {
	case '+':
		return OpAdd, true
	case '-':
		return OpSubtract, true
	case '×', '*':
		return OpMultiply, true
	case '÷', '/':
		return OpDivide, true
	}
	return "", false
}

func isOperand(r rune) bool {
	return r >= '0' && r <= '9'
}

// ParseArithmetic recognises questions of the form "<int> <op> <int>".
// Every character other than ASCII digits, operators and whitespace is
// discarded first, so "8 × 2 = ?" and "What is 12 ÷ 3?" both match.
// Exactly one operator between exactly two numbers is required.
func ParseArithmetic(text string) (ArithmeticExpression, bool) {
	var tokens []string
	var number strings.Builder

	flush := func() {
		if number.Len() > 0 {
			tokens = append(tokens, number.String())
			number.Reset()
		}
	}

	for _, r := range text {
		switch {
		case isOperand(r):
			number.WriteRune(r)
		case unicode.IsSpace(r):
			flush()
		default:
			if op, ok := operatorFor(r); ok {
				flush()
				tokens = append(tokens, string(op))
				continue
			}
			// dropped as if absent
		}
	}
	flush()

	if len(tokens) != 3 {
		return ArithmeticExpression{}, false
	}
	left, err := strconv.ParseInt(tokens[0], 10, 64)
	if err != nil {
		return ArithmeticExpression{}, false
	}
	right, err := strconv.ParseInt(tokens[2], 10, 64)
	if err != nil {
		return ArithmeticExpression{}, false
	}
	op := Operator(tokens[1])
	switch op {
	case OpAdd, OpSubtract, OpMultiply, OpDivide:
	default:
		return ArithmeticExpression{}, false
	}
	return ArithmeticExpression{Left: left, Operator: op, Right: right}, true
}

// Evaluate computes the exact integer result.
// It reports false on division by zero, a non-integer quotient or int64 overflow.
func (e ArithmeticExpression) Evaluate() (int64, bool) {
	a, b := e.Left, e.Right
	switch e.Operator {
	case OpAdd:
		if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
			return 0, false
		}
		return a + b, true
	case OpSubtract:
		if (b < 0 && a > math.MaxInt64+b) || (b > 0 && a < math.MinInt64+b) {
			return 0, false
		}
		return a - b, true
	case OpMultiply:
		if a == 0 || b == 0 {
			return 0, true
		}
		r := a * b
		if r/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
			return 0, false
		}
		return r, true
	case OpDivide:
		if b == 0 || a%b != 0 {
			return 0, false
		}
		if a == math.MinInt64 && b == -1 {
			return 0, false
		}
		return a / b, true
	}
	return 0, false
}
