package domain

import "time"

// Lesson is one unit of a curriculum module.
type Lesson struct {
	ID         string   `json:"id,omitempty"`
	ModuleID   string   `json:"-"`
	Position   int      `json:"-"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Objectives []string `json:"objectives,omitempty"`
	Activities []string `json:"activities,omitempty"`
	Duration   string   `json:"duration,omitempty"`
}

// Module is a curriculum module grouping ordered lessons.
type Module struct {
	ID          string
	Title       string
	Description string
	Lessons     []Lesson
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CurriculumContent is the structured payload produced by curriculum generation.
type CurriculumContent struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Lessons     []Lesson `json:"lessons"`
}
