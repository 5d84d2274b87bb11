package dto

import "edu-quiz/internal/domain"

// LessonRequest is a manually authored lesson
type LessonRequest struct {
	Title      string   `json:"title" validate:"required,notblank"`
	Content    string   `json:"content" validate:"required,notblank"`
	Objectives []string `json:"objectives"`
	Activities []string `json:"activities"`
	Duration   string   `json:"duration"`
}

// CreateModuleRequest creates a module. Lessons are optional; a module
// without lessons is generated from its title.
// @Description Request body for creating a curriculum module
type CreateModuleRequest struct {
	Title       string          `json:"title" validate:"required,notblank,max=200"`
	Description string          `json:"description" validate:"max=1000"`
	Lessons     []LessonRequest `json:"lessons" validate:"dive"`
}

// GenerateModuleRequest asks the model to draft a module for a topic
type GenerateModuleRequest struct {
	Topic string `json:"topic" validate:"required,notblank,max=200"`
}

// ModuleResponse represents a curriculum module in the API response
// @Description Curriculum module information
type ModuleResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Lessons     []domain.Lesson `json:"lessons"`
}

// ToLesson converts a lesson request to the domain type
func (r LessonRequest) ToLesson() domain.Lesson {
	return domain.Lesson{
		Title:      r.Title,
		Content:    r.Content,
		Objectives: r.Objectives,
		Activities: r.Activities,
		Duration:   r.Duration,
	}
}

// ToModuleResponse converts a domain module for the API
func ToModuleResponse(m *domain.Module) ModuleResponse {
	lessons := m.Lessons
	if lessons == nil {
		lessons = []domain.Lesson{}
	}
	return ModuleResponse{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Lessons:     lessons,
	}
}
