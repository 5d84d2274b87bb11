package service

import (
	"context"
	"strings"
	"time"

	"edu-quiz/internal/domain"
	"edu-quiz/internal/dto"
	"edu-quiz/internal/logger"

	"go.uber.org/zap"
)

// StudentService defines roster and progress operations.
type StudentService interface {
	CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error)
	GetStudent(ctx context.Context, id string) (*dto.StudentResponse, error)
	// ListStudents returns every student whose name contains query, ignoring case.
	ListStudents(ctx context.Context, query string) ([]dto.StudentResponse, error)
	UpdateStudent(ctx context.Context, id string, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error)
	DeleteStudent(ctx context.Context, id string) error
	AddQuizResult(ctx context.Context, studentID string, result domain.QuizResult) (*dto.StudentResponse, error)
	GetStats(ctx context.Context, id string) (*domain.StudentStats, error)
}

type studentService struct {
	repo domain.StudentRepository
	tm   domain.TransactionManager
	now  func() time.Time
}

func NewStudentService(repo domain.StudentRepository, tm domain.TransactionManager) StudentService {
	return &studentService{repo: repo, tm: tm, now: time.Now}
}

func (s *studentService) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	student := &domain.Student{
		Name:      strings.TrimSpace(req.Name),
		BirthDate: req.BirthDate,
		School:    strings.TrimSpace(req.School),
		Grade:     req.Grade,
		JoinDate:  s.now().Format(domain.DateLayout),
	}
	if err := s.repo.CreateStudent(ctx, student); err != nil {
		return nil, asDomainError(err, "Failed to create student")
	}
	logger.Get().Info("Student created", zap.String("studentID", student.ID))
	resp := dto.ToStudentResponse(student)
	return &resp, nil
}

func (s *studentService) load(ctx context.Context, id string) (*domain.Student, error) {
	student, err := s.repo.GetStudentByID(ctx, id)
	if err != nil {
		return nil, asDomainError(err, "Failed to get student")
	}
	if student == nil {
		return nil, domain.NewStudentNotFoundError(id)
	}
	return student, nil
}

func (s *studentService) GetStudent(ctx context.Context, id string) (*dto.StudentResponse, error) {
	student, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.ToStudentResponse(student)
	return &resp, nil
}

func (s *studentService) ListStudents(ctx context.Context, query string) ([]dto.StudentResponse, error) {
	students, err := s.repo.ListStudents(ctx)
	if err != nil {
		return nil, asDomainError(err, "Failed to list students")
	}
	query = strings.TrimSpace(query)
	out := make([]dto.StudentResponse, 0, len(students))
	for _, st := range students {
		if st.MatchesName(query) {
			out = append(out, dto.ToStudentResponse(st))
		}
	}
	return out, nil
}

func (s *studentService) UpdateStudent(ctx context.Context, id string, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error) {
	student, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		student.Name = strings.TrimSpace(*req.Name)
	}
	if req.BirthDate != nil {
		student.BirthDate = *req.BirthDate
	}
	if req.School != nil {
		student.School = strings.TrimSpace(*req.School)
	}
	if req.Grade != nil {
		student.Grade = *req.Grade
	}
	if err := s.repo.UpdateStudent(ctx, student); err != nil {
		return nil, asDomainError(err, "Failed to update student")
	}
	resp := dto.ToStudentResponse(student)
	return &resp, nil
}

func (s *studentService) DeleteStudent(ctx context.Context, id string) error {
	if err := s.repo.DeleteStudent(ctx, id); err != nil {
		return asDomainError(err, "Failed to delete student")
	}
	logger.Get().Info("Student deleted", zap.String("studentID", id))
	return nil
}

// AddQuizResult appends result to the student and stores the recomputed progress.
// A missing date defaults to today.
func (s *studentService) AddQuizResult(ctx context.Context, studentID string, result domain.QuizResult) (*dto.StudentResponse, error) {
	var student *domain.Student
	err := s.tm.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		student, err = s.load(ctx, studentID)
		if err != nil {
			return err
		}
		result.StudentID = studentID
		if result.Date == "" {
			result.Date = s.now().Format(domain.DateLayout)
		}
		student.AddResult(result)
		if err := s.repo.AddQuizResult(ctx, &result, student.Progress); err != nil {
			return err
		}
		student.QuizResults[len(student.QuizResults)-1] = result
		return nil
	})
	if err != nil {
		return nil, asDomainError(err, "Failed to record quiz result")
	}
	logger.Get().Info("Quiz result recorded",
		zap.String("studentID", studentID),
		zap.String("quizID", result.QuizID),
		zap.Int("score", result.Score),
		zap.Int("progress", student.Progress),
	)
	resp := dto.ToStudentResponse(student)
	return &resp, nil
}

func (s *studentService) GetStats(ctx context.Context, id string) (*domain.StudentStats, error) {
	student, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	stats := student.Stats()
	return &stats, nil
}
