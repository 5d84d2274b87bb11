package quizrepair

import "fmt"

// Locale selects the language of synthesized explanations.
type Locale string

const (
	LocaleTurkish Locale = "tr"
	LocaleEnglish Locale = "en"
)

type explanationTemplate struct {
	words  map[Operator]string
	format string // operands: left, operator word, right, result
}

var explanationTemplates = map[Locale]explanationTemplate{
	LocaleTurkish: {
		words: map[Operator]string{
			OpAdd:      "artı",
			OpSubtract: "eksi",
			OpMultiply: "çarpı",
			OpDivide:   "bölü",
		},
		format: "%d %s %d işleminin sonucu %d eder.",
	},
	LocaleEnglish: {
		words: map[Operator]string{
			OpAdd:      "plus",
			OpSubtract: "minus",
			OpMultiply: "times",
			OpDivide:   "divided by",
		},
		format: "%d %s %d equals %d.",
	},
}

// ParseLocale maps a configured locale name to a supported Locale, defaulting to Turkish.
func ParseLocale(s string) Locale {
	if _, ok := explanationTemplates[Locale(s)]; ok {
		return Locale(s)
	}
	return LocaleTurkish
}

// Explain renders the explanation for an expression and its result.
func Explain(locale Locale, expr ArithmeticExpression, result int64) string {
	tmpl, ok := explanationTemplates[locale]
	if !ok {
		tmpl = explanationTemplates[LocaleTurkish]
	}
	return fmt.Sprintf(tmpl.format, expr.Left, tmpl.words[expr.Operator], expr.Right, result)
}
