package domain

import (
	"strings"
	"time"
)

// QuestionsPerResult is the number of questions assumed behind a single recorded result
// when deriving correct/wrong counts from a percentage.
const QuestionsPerResult = 5

// DateLayout is the calendar date format used for birth, join and result dates.
const DateLayout = "2006-01-02"

// QuizResult records one completed quiz attempt by a student.
type QuizResult struct {
	ID        string `json:"id"`
	StudentID string `json:"studentId"`
	QuizID    string `json:"quizId"`
	QuizTitle string `json:"quizTitle"`
	Score     int    `json:"score"`
	Date      string `json:"date"`
}

// Student is a learner on the class roster.
type Student struct {
	ID          string
	Name        string
	BirthDate   string
	School      string
	Grade       string
	JoinDate    string
	Progress    int
	QuizResults []QuizResult
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AddResult appends a result and recomputes Progress as the rounded mean score.
func (s *Student) AddResult(result QuizResult) {
	s.QuizResults = append(s.QuizResults, result)
	s.Progress = s.averageScore()
}

func (s *Student) averageScore() int {
	if len(s.QuizResults) == 0 {
		return 0
	}
	total := 0
	for _, r := range s.QuizResults {
		total += r.Score
	}
	return RoundPercent(float64(total) / float64(len(s.QuizResults)))
}

// MatchesName reports a case-insensitive substring match on the student's name.
func (s *Student) MatchesName(query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s.Name), strings.ToLower(query))
}

// StudentStats summarises a student's recorded results.
type StudentStats struct {
	QuizCount      int `json:"quizCount"`
	AverageScore   int `json:"averageScore"`
	HighestScore   int `json:"highestScore"`
	TotalQuestions int `json:"totalQuestions"`
	CorrectAnswers int `json:"correctAnswers"`
	WrongAnswers   int `json:"wrongAnswers"`
}

// Stats derives per-student statistics from the recorded results.
func (s *Student) Stats() StudentStats {
	stats := StudentStats{QuizCount: len(s.QuizResults)}
	for _, r := range s.QuizResults {
		stats.TotalQuestions += QuestionsPerResult
		stats.CorrectAnswers += RoundPercent(float64(r.Score) / 100 * QuestionsPerResult)
		if r.Score > stats.HighestScore {
			stats.HighestScore = r.Score
		}
	}
	stats.WrongAnswers = stats.TotalQuestions - stats.CorrectAnswers
	stats.AverageScore = s.averageScore()
	return stats
}
