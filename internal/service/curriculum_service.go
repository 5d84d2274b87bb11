package service

import (
	"context"
	"strings"

	"edu-quiz/internal/domain"
	"edu-quiz/internal/dto"
	"edu-quiz/internal/logger"

	"go.uber.org/zap"
)

// CurriculumService defines curriculum module operations.
type CurriculumService interface {
	// CreateModule stores a module with manual lessons, or generates the
	// lessons from the title when none are given.
	CreateModule(ctx context.Context, req *dto.CreateModuleRequest) (*dto.ModuleResponse, error)
	GenerateModule(ctx context.Context, topic string) (*dto.ModuleResponse, error)
	ListModules(ctx context.Context) ([]dto.ModuleResponse, error)
	GetModule(ctx context.Context, id string) (*dto.ModuleResponse, error)
	DeleteModule(ctx context.Context, id string) error
	AddLesson(ctx context.Context, moduleID string, req *dto.LessonRequest) (*dto.ModuleResponse, error)
	DeleteLesson(ctx context.Context, moduleID, lessonID string) error
}

type curriculumService struct {
	repo      domain.CurriculumRepository
	generator domain.CurriculumGenerationService
	tm        domain.TransactionManager
}

func NewCurriculumService(repo domain.CurriculumRepository, generator domain.CurriculumGenerationService, tm domain.TransactionManager) CurriculumService {
	return &curriculumService{repo: repo, generator: generator, tm: tm}
}

func (s *curriculumService) CreateModule(ctx context.Context, req *dto.CreateModuleRequest) (*dto.ModuleResponse, error) {
	if len(req.Lessons) == 0 {
		return s.generateAndSave(ctx, req.Title, req.Description)
	}

	module := &domain.Module{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Lessons:     make([]domain.Lesson, 0, len(req.Lessons)),
	}
	for i, l := range req.Lessons {
		lesson := l.ToLesson()
		lesson.Position = i
		module.Lessons = append(module.Lessons, lesson)
	}
	return s.save(ctx, module)
}

func (s *curriculumService) GenerateModule(ctx context.Context, topic string) (*dto.ModuleResponse, error) {
	return s.generateAndSave(ctx, topic, "")
}

func (s *curriculumService) generateAndSave(ctx context.Context, title, description string) (*dto.ModuleResponse, error) {
	title = strings.TrimSpace(title)
	content, err := s.generator.GenerateCurriculum(ctx, title)
	if err != nil {
		return nil, asDomainError(err, "Failed to generate curriculum")
	}

	module := &domain.Module{
		Title:       title,
		Description: strings.TrimSpace(description),
		Lessons:     content.Lessons,
	}
	if module.Description == "" {
		module.Description = content.Description
	}
	return s.save(ctx, module)
}

func (s *curriculumService) save(ctx context.Context, module *domain.Module) (*dto.ModuleResponse, error) {
	err := s.tm.WithTransaction(ctx, func(ctx context.Context) error {
		return s.repo.SaveModule(ctx, module)
	})
	if err != nil {
		return nil, asDomainError(err, "Failed to save curriculum module")
	}
	logger.Get().Info("Curriculum module saved",
		zap.String("moduleID", module.ID),
		zap.Int("lessons", len(module.Lessons)),
	)
	resp := dto.ToModuleResponse(module)
	return &resp, nil
}

func (s *curriculumService) ListModules(ctx context.Context) ([]dto.ModuleResponse, error) {
	modules, err := s.repo.ListModules(ctx)
	if err != nil {
		return nil, asDomainError(err, "Failed to list curriculum modules")
	}
	out := make([]dto.ModuleResponse, 0, len(modules))
	for _, m := range modules {
		out = append(out, dto.ToModuleResponse(m))
	}
	return out, nil
}

func (s *curriculumService) load(ctx context.Context, id string) (*domain.Module, error) {
	module, err := s.repo.GetModuleByID(ctx, id)
	if err != nil {
		return nil, asDomainError(err, "Failed to get curriculum module")
	}
	if module == nil {
		return nil, domain.NewModuleNotFoundError(id)
	}
	return module, nil
}

func (s *curriculumService) GetModule(ctx context.Context, id string) (*dto.ModuleResponse, error) {
	module, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.ToModuleResponse(module)
	return &resp, nil
}

func (s *curriculumService) DeleteModule(ctx context.Context, id string) error {
	err := s.tm.WithTransaction(ctx, func(ctx context.Context) error {
		return s.repo.DeleteModule(ctx, id)
	})
	if err != nil {
		return asDomainError(err, "Failed to delete curriculum module")
	}
	logger.Get().Info("Curriculum module deleted", zap.String("moduleID", id))
	return nil
}

func (s *curriculumService) AddLesson(ctx context.Context, moduleID string, req *dto.LessonRequest) (*dto.ModuleResponse, error) {
	var module *domain.Module
	err := s.tm.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		module, err = s.load(ctx, moduleID)
		if err != nil {
			return err
		}
		lesson := req.ToLesson()
		lesson.ModuleID = moduleID
		if err := s.repo.AddLesson(ctx, &lesson); err != nil {
			return err
		}
		module.Lessons = append(module.Lessons, lesson)
		return nil
	})
	if err != nil {
		return nil, asDomainError(err, "Failed to add lesson")
	}
	resp := dto.ToModuleResponse(module)
	return &resp, nil
}

func (s *curriculumService) DeleteLesson(ctx context.Context, moduleID, lessonID string) error {
	if err := s.repo.DeleteLesson(ctx, moduleID, lessonID); err != nil {
		return asDomainError(err, "Failed to delete lesson")
	}
	return nil
}
