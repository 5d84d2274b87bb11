package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleQuiz() *Quiz {
	return &Quiz{
		ID:    "q1",
		Title: "Çarpma",
		Questions: []QuizQuestion{
			{Text: "2 × 3 = ?", Options: []string{"6", "5", "7", "8"}, CorrectAnswerIndex: 0},
			{Text: "4 × 2 = ?", Options: []string{"6", "8", "7", "9"}, CorrectAnswerIndex: 1},
			{Text: "3 × 3 = ?", Options: []string{"6", "8", "9", "10"}, CorrectAnswerIndex: 2},
		},
	}
}

func TestQuiz_Score(t *testing.T) {
	tests := []struct {
		name        string
		answers     []int
		wantCorrect int
		wantScore   int
	}{
		{"all correct", []int{0, 1, 2}, 3, 100},
		{"two of three rounds up", []int{0, 1, 3}, 2, 67},
		{"one of three rounds down", []int{0, 0, 0}, 1, 33},
		{"missing answers count as wrong", []int{0}, 1, 33},
		{"none", nil, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			correct, score := sampleQuiz().Score(tt.answers)
			assert.Equal(t, tt.wantCorrect, correct)
			assert.Equal(t, tt.wantScore, score)
		})
	}
}

func TestQuiz_Score_NoQuestions(t *testing.T) {
	q := &Quiz{Title: "empty"}
	correct, score := q.Score([]int{1, 2})
	assert.Equal(t, 0, correct)
	assert.Equal(t, 0, score)
}

func TestQuiz_Validate(t *testing.T) {
	assert.NoError(t, sampleQuiz().Validate())

	q := sampleQuiz()
	q.Title = "  "
	err := q.Validate()
	var verrs ValidationErrors
	assert.True(t, errors.As(err, &verrs))
	assert.Equal(t, "title", verrs[0].Field)

	q = sampleQuiz()
	q.Questions[1].CorrectAnswerIndex = 4
	err = q.Validate()
	assert.True(t, errors.As(err, &verrs))
	assert.Equal(t, CodeOutOfRange, verrs[0].Code)
}

func TestQuizQuestion_CorrectOption(t *testing.T) {
	q := QuizQuestion{Options: []string{"a", "b"}, CorrectAnswerIndex: 1}
	assert.Equal(t, "b", q.CorrectOption())
	q.CorrectAnswerIndex = 2
	assert.Equal(t, "", q.CorrectOption())
}

func TestStudent_AddResult(t *testing.T) {
	s := &Student{ID: "s1", Name: "Ayşe"}
	s.AddResult(QuizResult{QuizID: "q1", Score: 80})
	assert.Equal(t, 80, s.Progress)

	s.AddResult(QuizResult{QuizID: "q2", Score: 65})
	// (80 + 65) / 2 = 72.5
	assert.Equal(t, 73, s.Progress)
	assert.Len(t, s.QuizResults, 2)
}

func TestStudent_Stats(t *testing.T) {
	s := &Student{ID: "s1"}
	assert.Equal(t, StudentStats{}, s.Stats())

	s.AddResult(QuizResult{Score: 100})
	s.AddResult(QuizResult{Score: 50})
	stats := s.Stats()
	assert.Equal(t, 2, stats.QuizCount)
	assert.Equal(t, 75, stats.AverageScore)
	assert.Equal(t, 100, stats.HighestScore)
	assert.Equal(t, 10, stats.TotalQuestions)
	// 5 + round(2.5)=3
	assert.Equal(t, 8, stats.CorrectAnswers)
	assert.Equal(t, 2, stats.WrongAnswers)
}

func TestStudent_MatchesName(t *testing.T) {
	s := &Student{Name: "Mehmet Yılmaz"}
	assert.True(t, s.MatchesName(""))
	assert.True(t, s.MatchesName("meh"))
	assert.False(t, s.MatchesName("ali"))
}

func TestIsCode(t *testing.T) {
	err := NewQuizNotFoundError("x")
	assert.True(t, IsCode(err, CodeQuizNotFound))
	assert.False(t, IsCode(err, CodeNotFound))
	assert.False(t, IsCode(errors.New("plain"), CodeQuizNotFound))
}
