package quizrepair

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseArithmetic(t *testing.T) {
	tests := []struct {
		text   string
		want   ArithmeticExpression
		wantOK bool
	}{
		{"8 × 2 = ?", ArithmeticExpression{8, OpMultiply, 2}, true},
		{"8*2", ArithmeticExpression{8, OpMultiply, 2}, true},
		{"12 ÷ 3 = ?", ArithmeticExpression{12, OpDivide, 3}, true},
		{"12/3", ArithmeticExpression{12, OpDivide, 3}, true},
		{"15 + 27 kaç eder?", ArithmeticExpression{15, OpAdd, 27}, true},
		{"Ali'nin 9 elması var, 4 - ü yedi", ArithmeticExpression{}, false},
		{"100 - 1", ArithmeticExpression{100, OpSubtract, 1}, true},
		{"What is the capital of France?", ArithmeticExpression{}, false},
		{"3 apples and 2 pears", ArithmeticExpression{}, false},
		{"1 + 2 + 3", ArithmeticExpression{}, false},
		{"-3 + 2", ArithmeticExpression{}, false},
		{"+ 3", ArithmeticExpression{}, false},
		{"99999999999999999999 + 1", ArithmeticExpression{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ParseArithmetic(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestArithmeticExpression_Evaluate(t *testing.T) {
	tests := []struct {
		name   string
		expr   ArithmeticExpression
		want   int64
		wantOK bool
	}{
		{"add", ArithmeticExpression{2, OpAdd, 3}, 5, true},
		{"subtract negative result", ArithmeticExpression{2, OpSubtract, 5}, -3, true},
		{"multiply", ArithmeticExpression{8, OpMultiply, 2}, 16, true},
		{"multiply by zero", ArithmeticExpression{0, OpMultiply, 7}, 0, true},
		{"divide exact", ArithmeticExpression{12, OpDivide, 3}, 4, true},
		{"divide by zero", ArithmeticExpression{10, OpDivide, 0}, 0, false},
		{"divide non-integer", ArithmeticExpression{7, OpDivide, 2}, 0, false},
		{"add overflow", ArithmeticExpression{math.MaxInt64, OpAdd, 1}, 0, false},
		{"subtract overflow", ArithmeticExpression{math.MinInt64, OpSubtract, 1}, 0, false},
		{"multiply overflow", ArithmeticExpression{math.MaxInt64, OpMultiply, 2}, 0, false},
		{"unknown operator", ArithmeticExpression{1, Operator("%"), 2}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.expr.Evaluate()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPadOptions_NearMaxInt(t *testing.T) {
	got := padOptions([]string{"9223372036854775807"}, math.MaxInt64, 4)
	assert.Equal(t, []string{"9223372036854775807", "9223372036854775806", "9223372036854775805", "9223372036854775804"}, got)
}
