package quizrepair

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"edu-quiz/internal/domain"
)

// RepairQuestion fixes the options, correct index and explanation of a
// two-operand arithmetic question so the marked answer is the true result.
// Questions that are not arithmetic, or whose result is not a representable
// integer, are returned unchanged with repaired == false.
func (v *ResponseValidator) RepairQuestion(q domain.QuizQuestion) (fixed domain.QuizQuestion, repaired bool) {
	expr, ok := ParseArithmetic(q.Text)
	if !ok {
		return q, false
	}
	result, ok := expr.Evaluate()
	if !ok {
		return q, false
	}
	expected := strconv.FormatInt(result, 10)

	options := make([]string, len(q.Options))
	for i, o := range q.Options {
		options[i] = strings.TrimSpace(o)
	}
	if !slices.Contains(options, expected) {
		if len(options) == 0 {
			options = append(options, expected)
		} else {
			options[0] = expected
		}
	}

	options = dedupe(options)
	options = keepWithAnswer(options, expected, domain.OptionsPerQuestion)
	options = padOptions(options, result, domain.OptionsPerQuestion)

	q.Options = options
	q.CorrectAnswerIndex = slices.Index(options, expected)
	q.Explanation = Explain(v.locale, expr, result)
	return q, true
}

// dedupe removes repeated options, keeping the first occurrence.
func dedupe(options []string) []string {
	seen := make(map[string]struct{}, len(options))
	out := make([]string, 0, len(options))
	for _, o := range options {
		if _, ok := seen[o]; ok {
			continue
		}
		seen[o] = struct{}{}
		out = append(out, o)
	}
	return out
}

// keepWithAnswer trims options to size, always keeping answer and otherwise preserving order.
func keepWithAnswer(options []string, answer string, size int) []string {
	if len(options) <= size {
		return options
	}
	out := make([]string, 0, size)
	others := 0
	for _, o := range options {
		if o == answer {
			out = append(out, o)
			continue
		}
		if others < size-1 {
			out = append(out, o)
			others++
		}
	}
	return out
}

// padOptions appends result+1, result+2, ... (skipping values already present) until size is reached.
func padOptions(options []string, result int64, size int) []string {
	for n := int64(1); len(options) < size; n++ {
		candidate := strconv.FormatInt(distractor(result, n), 10)
		if slices.Contains(options, candidate) {
			continue
		}
		options = append(options, candidate)
	}
	return options
}

func distractor(result, n int64) int64 {
	if result > math.MaxInt64-n {
		return result - n
	}
	return result + n
}
