package dto

import "edu-quiz/internal/domain"

// CreateStudentRequest registers a new student on the roster
// @Description Request body for creating a student
type CreateStudentRequest struct {
	Name      string `json:"name" validate:"required,notblank,max=200"`
	BirthDate string `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
	School    string `json:"school" validate:"max=200"`
	Grade     string `json:"grade" validate:"required,oneof=1 2 3 4"`
}

// UpdateStudentRequest holds the student fields that may be changed
type UpdateStudentRequest struct {
	Name      *string `json:"name" validate:"omitempty,notblank,max=200"`
	BirthDate *string `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
	School    *string `json:"school" validate:"omitempty,max=200"`
	Grade     *string `json:"grade" validate:"omitempty,oneof=1 2 3 4"`
}

// AddResultRequest records a quiz result taken outside the app
type AddResultRequest struct {
	QuizID    string `json:"quizId" validate:"required"`
	QuizTitle string `json:"quizTitle" validate:"required"`
	Score     int    `json:"score" validate:"min=0,max=100"`
	Date      string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// StudentResponse represents a student in the API response
// @Description Student information
type StudentResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	BirthDate   string              `json:"birthDate"`
	School      string              `json:"school"`
	Grade       string              `json:"grade"`
	JoinDate    string              `json:"joinDate"`
	Progress    int                 `json:"progress"`
	QuizResults []domain.QuizResult `json:"quizResults"`
}

// ToStudentResponse converts a domain student for the API
func ToStudentResponse(s *domain.Student) StudentResponse {
	results := s.QuizResults
	if results == nil {
		results = []domain.QuizResult{}
	}
	return StudentResponse{
		ID:          s.ID,
		Name:        s.Name,
		BirthDate:   s.BirthDate,
		School:      s.School,
		Grade:       s.Grade,
		JoinDate:    s.JoinDate,
		Progress:    s.Progress,
		QuizResults: results,
	}
}
