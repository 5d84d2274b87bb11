// Package quizrepair turns untrusted generated text into structurally valid
// quiz and curriculum payloads, and corrects the marked answer of simple
// arithmetic questions.
package quizrepair

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"edu-quiz/internal/domain"
	"edu-quiz/internal/logger"

	"go.uber.org/zap"
)

// ResponseValidator parses and repairs generated quiz text. It holds no
// mutable state and is safe for concurrent use.
type ResponseValidator struct {
	locale Locale
}

// Option configures a ResponseValidator.
type Option func(*ResponseValidator)

// WithLocale sets the language of synthesized explanations.
func WithLocale(locale Locale) Option {
	return func(v *ResponseValidator) {
		v.locale = ParseLocale(string(locale))
	}
}

// NewResponseValidator creates a validator using Turkish explanations unless configured otherwise.
func NewResponseValidator(opts ...Option) *ResponseValidator {
	v := &ResponseValidator{locale: LocaleTurkish}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Locale returns the explanation locale in use.
func (v *ResponseValidator) Locale() Locale {
	return v.locale
}

var defaultValidator = NewResponseValidator()

// ParseAndRepair runs the default validator.
func ParseAndRepair(rawText string) (*domain.QuizGenerationResult, error) {
	return defaultValidator.ParseAndRepair(rawText)
}

// optionText accepts both "16" and 16 for an option.
type optionText string

func (o *optionText) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*o = optionText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*o = optionText(n.String())
	return nil
}

// answerIndex accepts 2, 2.0 and "2" for correctAnswer.
type answerIndex int

func (a *answerIndex) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("correctAnswer %q is not an integer: %w", s, err)
		}
		*a = answerIndex(n)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	if i, err := n.Int64(); err == nil {
		*a = answerIndex(i)
		return nil
	}
	f, err := n.Float64()
	if err != nil {
		return err
	}
	*a = answerIndex(int64(f))
	return nil
}

type rawQuestion struct {
	Question      string       `json:"question"`
	Options       []optionText `json:"options"`
	CorrectAnswer answerIndex  `json:"correctAnswer"`
	Explanation   string       `json:"explanation"`
}

type rawQuiz struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Questions   []rawQuestion `json:"questions"`
}

func (rq rawQuestion) toDomain() domain.QuizQuestion {
	options := make([]string, len(rq.Options))
	for i, o := range rq.Options {
		options[i] = string(o)
	}
	return domain.QuizQuestion{
		Text:               rq.Question,
		Options:            options,
		CorrectAnswerIndex: int(rq.CorrectAnswer),
		Explanation:        rq.Explanation,
	}
}

// ParseAndRepair extracts the quiz JSON embedded in rawText, checks that
// every question has question, options and correctAnswer, and repairs
// arithmetic questions. It fails with MALFORMED_RESPONSE when no JSON object
// can be found and INVALID_SCHEMA when required fields are missing.
func (v *ResponseValidator) ParseAndRepair(rawText string) (*domain.QuizGenerationResult, error) {
	l := logger.Get()

	payload, err := ExtractJSON(rawText)
	if err != nil {
		l.Warn("No JSON object in generated quiz text", zap.Int("length", len(rawText)))
		return nil, err
	}

	schema, err := quizValidator()
	if err != nil {
		return nil, domain.NewInternalError("failed to compile quiz schema", err)
	}
	if err := validateDocument(schema, payload); err != nil {
		l.Warn("Generated quiz failed schema validation", zap.Error(err))
		return nil, domain.NewInvalidSchemaError("Generated quiz is missing required fields", err)
	}

	var raw rawQuiz
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, domain.NewInvalidSchemaError("Generated quiz has unexpected field types", err)
	}

	result := &domain.QuizGenerationResult{
		Title:       strings.TrimSpace(raw.Title),
		Description: strings.TrimSpace(raw.Description),
		Questions:   make([]domain.QuizQuestion, 0, len(raw.Questions)),
	}
	repairedCount := 0
	for _, rq := range raw.Questions {
		q, repaired := v.RepairQuestion(rq.toDomain())
		if repaired {
			repairedCount++
			l.Debug("Repaired arithmetic question",
				zap.String("question", q.Text),
				zap.String("answer", q.CorrectOption()),
			)
		}
		result.Questions = append(result.Questions, q)
	}

	l.Debug("Parsed generated quiz",
		zap.Int("questions", len(result.Questions)),
		zap.Int("arithmetic_repaired", repairedCount),
	)
	return result, nil
}

// ParseCurriculum extracts generated curriculum content.
// It fails with MALFORMED_RESPONSE or INVALID_SCHEMA like ParseAndRepair.
func (v *ResponseValidator) ParseCurriculum(rawText string) (*domain.CurriculumContent, error) {
	payload, err := ExtractJSON(rawText)
	if err != nil {
		return nil, err
	}

	schema, err := curriculumValidator()
	if err != nil {
		return nil, domain.NewInternalError("failed to compile curriculum schema", err)
	}
	if err := validateDocument(schema, payload); err != nil {
		logger.Get().Warn("Generated curriculum failed schema validation", zap.Error(err))
		return nil, domain.NewInvalidSchemaError("Generated curriculum is missing required fields", err)
	}

	var content domain.CurriculumContent
	if err := json.Unmarshal([]byte(payload), &content); err != nil {
		return nil, domain.NewInvalidSchemaError("Generated curriculum has unexpected field types", err)
	}
	for i := range content.Lessons {
		content.Lessons[i].Position = i
	}
	return &content, nil
}
