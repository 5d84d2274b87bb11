package seedmodels

import "edu-quiz/internal/domain"

// SeedLesson is one lesson entry in the JSON seed file.
type SeedLesson struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Objectives []string `json:"objectives"`
	Activities []string `json:"activities"`
	Duration   string   `json:"duration"`
}

// SeedModule is a curriculum module entry in the JSON seed file.
type SeedModule struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Lessons     []SeedLesson `json:"lessons"`
}

// ToDomain converts the seed entry into a module ready to save.
func (m SeedModule) ToDomain() *domain.Module {
	module := &domain.Module{
		Title:       m.Title,
		Description: m.Description,
		Lessons:     make([]domain.Lesson, 0, len(m.Lessons)),
	}
	for _, l := range m.Lessons {
		module.Lessons = append(module.Lessons, domain.Lesson{
			Title:      l.Title,
			Content:    l.Content,
			Objectives: l.Objectives,
			Activities: l.Activities,
			Duration:   l.Duration,
		})
	}
	return module
}
