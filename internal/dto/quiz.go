package dto

import (
	"time"

	"edu-quiz/internal/domain"
)

// GenerateQuizRequest asks the model for a new multiple-choice quiz
// @Description Request body for generating a quiz
type GenerateQuizRequest struct {
	Title         string `json:"title" validate:"required,notblank,max=200"`
	Description   string `json:"description" validate:"max=1000"`
	Grade         string `json:"grade" validate:"required,oneof=1 2 3 4"`
	Difficulty    string `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	QuestionCount int    `json:"questionCount" validate:"omitempty,min=1,max=20"`
	Locale        string `json:"locale" validate:"omitempty,oneof=tr en"`
}

// RepairRequest carries raw model output to run through the validator
// @Description Request body for repairing raw generated text
type RepairRequest struct {
	Raw string `json:"raw" validate:"required"`
}

// QuestionResponse represents a quiz question in the API response
type QuestionResponse struct {
	ID            string   `json:"id,omitempty"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// QuizResponse represents a quiz in the API response
// @Description Quiz information
type QuizResponse struct {
	ID               string             `json:"id"`
	Title            string             `json:"title"`
	Description      string             `json:"description"`
	Grade            string             `json:"grade"`
	Difficulty       string             `json:"difficulty"`
	Questions        []QuestionResponse `json:"questions"`
	AssignedStudents []string           `json:"assignedStudents"`
	CreatedAt        time.Time          `json:"createdAt"`
}

// RepairResponse is the repaired quiz payload
type RepairResponse struct {
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Questions   []QuestionResponse `json:"questions"`
}

// UpdateQuizRequest holds the quiz fields that may be changed. Nil fields are left untouched.
type UpdateQuizRequest struct {
	Title       *string `json:"title" validate:"omitempty,notblank,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Grade       *string `json:"grade" validate:"omitempty,oneof=1 2 3 4"`
	Difficulty  *string `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
}

// AssignRequest replaces the students assigned to a quiz
type AssignRequest struct {
	StudentIDs []string `json:"studentIds" validate:"dive,required"`
}

// SubmitRequest is one student's answers, indexed by question position
type SubmitRequest struct {
	StudentID string `json:"studentId" validate:"required"`
	Answers   []int  `json:"answers" validate:"required"`
}

// SubmissionResponse reports the graded attempt
type SubmissionResponse struct {
	QuizID    string `json:"quizId"`
	StudentID string `json:"studentId"`
	Correct   int    `json:"correct"`
	Total     int    `json:"total"`
	Score     int    `json:"score"`
	Progress  int    `json:"progress"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ToQuestionResponses converts domain questions for the API
func ToQuestionResponses(questions []domain.QuizQuestion) []QuestionResponse {
	out := make([]QuestionResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, QuestionResponse{
			ID:            q.ID,
			Question:      q.Text,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswerIndex,
			Explanation:   q.Explanation,
		})
	}
	return out
}

// ToQuizResponse converts a domain quiz for the API
func ToQuizResponse(q *domain.Quiz) QuizResponse {
	assigned := q.AssignedStudents
	if assigned == nil {
		assigned = []string{}
	}
	return QuizResponse{
		ID:               q.ID,
		Title:            q.Title,
		Description:      q.Description,
		Grade:            q.Grade,
		Difficulty:       string(q.Difficulty),
		Questions:        ToQuestionResponses(q.Questions),
		AssignedStudents: assigned,
		CreatedAt:        q.CreatedAt,
	}
}
