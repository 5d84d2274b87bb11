package domain

import (
	"math"
	"strings"
	"time"
)

// Difficulty is the requested difficulty of a generated quiz.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// OptionsPerQuestion is the number of answer options every question carries after repair.
const OptionsPerQuestion = 4

// QuizQuestion is a single multiple-choice question.
type QuizQuestion struct {
	ID                 string   `json:"id,omitempty" yaml:"id,omitempty"`
	Text               string   `json:"question" yaml:"question"`
	Options            []string `json:"options" yaml:"options"`
	CorrectAnswerIndex int      `json:"correctAnswer" yaml:"correctAnswer"`
	Explanation        string   `json:"explanation,omitempty" yaml:"explanation,omitempty"`
}

// CorrectOption returns the option the question marks as correct, or "" when the index is out of range.
func (q QuizQuestion) CorrectOption() string {
	if q.CorrectAnswerIndex < 0 || q.CorrectAnswerIndex >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectAnswerIndex]
}

// QuizGenerationResult is the structured payload produced from generated text.
type QuizGenerationResult struct {
	Title       string         `json:"title" yaml:"title"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Questions   []QuizQuestion `json:"questions" yaml:"questions"`
}

// QuizGenerationRequest describes the quiz an educator asked to generate.
type QuizGenerationRequest struct {
	Title         string
	Description   string
	Grade         string
	Difficulty    Difficulty
	QuestionCount int
	Locale        string
}

// Quiz is a persisted quiz with its questions and assigned students.
type Quiz struct {
	ID               string
	Title            string
	Description      string
	Grade            string
	Difficulty       Difficulty
	Questions        []QuizQuestion
	AssignedStudents []string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Validate checks the invariants a quiz must satisfy before it is stored.
func (q *Quiz) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(q.Title) == "" {
		errs = append(errs, NewMissingFieldError("title"))
	}
	if len(q.Questions) == 0 {
		errs = append(errs, NewMissingFieldError("questions"))
	}
	for _, question := range q.Questions {
		if strings.TrimSpace(question.Text) == "" {
			errs = append(errs, NewMissingFieldError("question"))
			break
		}
		if question.CorrectAnswerIndex < 0 || question.CorrectAnswerIndex >= len(question.Options) {
			errs = append(errs, NewOutOfRangeError("correctAnswer", question.CorrectAnswerIndex, 0, len(question.Options)-1))
			break
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Score scores a set of selected option indexes against the quiz.
// Missing answers count as wrong. The score is the rounded percentage of correct answers.
func (q *Quiz) Score(answers []int) (correct int, score int) {
	for i, question := range q.Questions {
		if i < len(answers) && answers[i] == question.CorrectAnswerIndex {
			correct++
		}
	}
	if len(q.Questions) == 0 {
		return 0, 0
	}
	return correct, RoundPercent(float64(correct) / float64(len(q.Questions)) * 100)
}

// RoundPercent rounds half away from zero for the non-negative values used in scoring.
func RoundPercent(v float64) int {
	return int(math.Floor(v + 0.5))
}
