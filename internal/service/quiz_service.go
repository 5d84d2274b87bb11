package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"edu-quiz/internal/config"
	"edu-quiz/internal/domain"
	"edu-quiz/internal/dto"
	"edu-quiz/internal/logger"
	"edu-quiz/internal/quizrepair"

	"go.uber.org/zap"
)

// QuizService defines the interface for quiz-related operations
type QuizService interface {
	GenerateQuiz(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.QuizResponse, error)
	// RepairRaw runs raw model output through the response validator without persisting it.
	RepairRaw(ctx context.Context, raw string, locale string) (*dto.RepairResponse, error)
	ListQuizzes(ctx context.Context) ([]dto.QuizResponse, error)
	GetQuiz(ctx context.Context, id string) (*dto.QuizResponse, error)
	UpdateQuiz(ctx context.Context, id string, req *dto.UpdateQuizRequest) (*dto.QuizResponse, error)
	DeleteQuiz(ctx context.Context, id string) error
	AssignStudents(ctx context.Context, quizID string, studentIDs []string) (*dto.QuizResponse, error)
	SubmitAnswers(ctx context.Context, quizID string, req *dto.SubmitRequest) (*dto.SubmissionResponse, error)
}

type quizService struct {
	repo      domain.QuizRepository
	students  domain.StudentRepository
	progress  StudentService
	generator domain.QuizGenerationService
	tm        domain.TransactionManager
	cfg       config.QuizConfig
	now       func() time.Time
}

// NewQuizService creates a new instance of quizService
func NewQuizService(
	repo domain.QuizRepository,
	students domain.StudentRepository,
	progress StudentService,
	generator domain.QuizGenerationService,
	tm domain.TransactionManager,
	cfg config.QuizConfig,
) QuizService {
	return &quizService{
		repo:      repo,
		students:  students,
		progress:  progress,
		generator: generator,
		tm:        tm,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *quizService) GenerateQuiz(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.QuizResponse, error) {
	genReq := domain.QuizGenerationRequest{
		Title:         strings.TrimSpace(req.Title),
		Description:   strings.TrimSpace(req.Description),
		Grade:         req.Grade,
		Difficulty:    domain.Difficulty(req.Difficulty),
		QuestionCount: req.QuestionCount,
		Locale:        req.Locale,
	}
	if genReq.QuestionCount <= 0 {
		genReq.QuestionCount = s.cfg.DefaultQuestionCount
	}
	if genReq.Difficulty == "" {
		genReq.Difficulty = domain.DifficultyMedium
	}
	if genReq.Locale == "" {
		genReq.Locale = s.cfg.Locale
	}

	result, err := s.generator.GenerateQuiz(ctx, genReq)
	if err != nil {
		return nil, asDomainError(err, "Failed to generate quiz")
	}
	if len(result.Questions) == 0 {
		return nil, domain.NewInvalidSchemaError("Generated quiz contains no questions", nil)
	}

	description := genReq.Description
	if description == "" {
		description = defaultDescription(genReq)
	}
	quiz := &domain.Quiz{
		Title:       genReq.Title,
		Description: description,
		Grade:       genReq.Grade,
		Difficulty:  genReq.Difficulty,
		Questions:   result.Questions,
	}
	if err := quiz.Validate(); err != nil {
		return nil, err
	}

	err = s.tm.WithTransaction(ctx, func(ctx context.Context) error {
		return s.repo.SaveQuiz(ctx, quiz)
	})
	if err != nil {
		return nil, asDomainError(err, "Failed to save quiz")
	}

	logger.Get().Info("Quiz saved",
		zap.String("quizID", quiz.ID),
		zap.Int("questions", len(quiz.Questions)),
	)
	resp := dto.ToQuizResponse(quiz)
	return &resp, nil
}

func defaultDescription(req domain.QuizGenerationRequest) string {
	if quizrepair.ParseLocale(req.Locale) == quizrepair.LocaleEnglish {
		return fmt.Sprintf("Grade %s - %d-question %s quiz", req.Grade, req.QuestionCount, req.Title)
	}
	return fmt.Sprintf("%s. Sınıf - %d soruluk %s quizi", req.Grade, req.QuestionCount, req.Title)
}

func (s *quizService) RepairRaw(ctx context.Context, raw string, locale string) (*dto.RepairResponse, error) {
	if locale == "" {
		locale = s.cfg.Locale
	}
	v := quizrepair.NewResponseValidator(quizrepair.WithLocale(quizrepair.ParseLocale(locale)))
	result, err := v.ParseAndRepair(raw)
	if err != nil {
		return nil, err
	}
	return &dto.RepairResponse{
		Title:       result.Title,
		Description: result.Description,
		Questions:   dto.ToQuestionResponses(result.Questions),
	}, nil
}

func (s *quizService) ListQuizzes(ctx context.Context) ([]dto.QuizResponse, error) {
	quizzes, err := s.repo.ListQuizzes(ctx)
	if err != nil {
		return nil, asDomainError(err, "Failed to list quizzes")
	}
	out := make([]dto.QuizResponse, 0, len(quizzes))
	for _, q := range quizzes {
		out = append(out, dto.ToQuizResponse(q))
	}
	return out, nil
}

func (s *quizService) load(ctx context.Context, id string) (*domain.Quiz, error) {
	quiz, err := s.repo.GetQuizByID(ctx, id)
	if err != nil {
		return nil, asDomainError(err, "Failed to get quiz")
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(id)
	}
	return quiz, nil
}

func (s *quizService) GetQuiz(ctx context.Context, id string) (*dto.QuizResponse, error) {
	quiz, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.ToQuizResponse(quiz)
	return &resp, nil
}

func (s *quizService) UpdateQuiz(ctx context.Context, id string, req *dto.UpdateQuizRequest) (*dto.QuizResponse, error) {
	quiz, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		quiz.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		quiz.Description = strings.TrimSpace(*req.Description)
	}
	if req.Grade != nil {
		quiz.Grade = *req.Grade
	}
	if req.Difficulty != nil {
		quiz.Difficulty = domain.Difficulty(*req.Difficulty)
	}
	if err := quiz.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateQuiz(ctx, quiz); err != nil {
		return nil, asDomainError(err, "Failed to update quiz")
	}
	resp := dto.ToQuizResponse(quiz)
	return &resp, nil
}

func (s *quizService) DeleteQuiz(ctx context.Context, id string) error {
	err := s.tm.WithTransaction(ctx, func(ctx context.Context) error {
		return s.repo.DeleteQuiz(ctx, id)
	})
	if err != nil {
		return asDomainError(err, "Failed to delete quiz")
	}
	logger.Get().Info("Quiz deleted", zap.String("quizID", id))
	return nil
}

// AssignStudents replaces the quiz's assignment set. Duplicate IDs collapse
// and every ID must name an existing student.
func (s *quizService) AssignStudents(ctx context.Context, quizID string, studentIDs []string) (*dto.QuizResponse, error) {
	quiz, err := s.load(ctx, quizID)
	if err != nil {
		return nil, err
	}

	unique := make([]string, 0, len(studentIDs))
	seen := make(map[string]struct{}, len(studentIDs))
	for _, id := range studentIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	err = s.tm.WithTransaction(ctx, func(ctx context.Context) error {
		for _, id := range unique {
			student, err := s.students.GetStudentByID(ctx, id)
			if err != nil {
				return err
			}
			if student == nil {
				return domain.NewStudentNotFoundError(id)
			}
		}
		return s.repo.ReplaceAssignments(ctx, quizID, unique)
	})
	if err != nil {
		return nil, asDomainError(err, "Failed to assign students")
	}

	quiz.AssignedStudents = unique
	resp := dto.ToQuizResponse(quiz)
	return &resp, nil
}

// SubmitAnswers grades one attempt and records it on the student.
func (s *quizService) SubmitAnswers(ctx context.Context, quizID string, req *dto.SubmitRequest) (*dto.SubmissionResponse, error) {
	quiz, err := s.load(ctx, quizID)
	if err != nil {
		return nil, err
	}

	correct, score := quiz.Score(req.Answers)
	student, err := s.progress.AddQuizResult(ctx, req.StudentID, domain.QuizResult{
		QuizID:    quiz.ID,
		QuizTitle: quiz.Title,
		Score:     score,
		Date:      s.now().Format(domain.DateLayout),
	})
	if err != nil {
		return nil, err
	}

	return &dto.SubmissionResponse{
		QuizID:    quiz.ID,
		StudentID: req.StudentID,
		Correct:   correct,
		Total:     len(quiz.Questions),
		Score:     score,
		Progress:  student.Progress,
	}, nil
}
