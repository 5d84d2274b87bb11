package handler_test

import (
	"context"
	"time"

	"edu-quiz/internal/domain"
	"edu-quiz/internal/dto"
)

// --- Manual Mocks ---

// MockQuizService
type MockQuizService struct {
	GenerateQuizFunc   func(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.QuizResponse, error)
	RepairRawFunc      func(ctx context.Context, raw, locale string) (*dto.RepairResponse, error)
	ListQuizzesFunc    func(ctx context.Context) ([]dto.QuizResponse, error)
	GetQuizFunc        func(ctx context.Context, id string) (*dto.QuizResponse, error)
	UpdateQuizFunc     func(ctx context.Context, id string, req *dto.UpdateQuizRequest) (*dto.QuizResponse, error)
	DeleteQuizFunc     func(ctx context.Context, id string) error
	AssignStudentsFunc func(ctx context.Context, quizID string, studentIDs []string) (*dto.QuizResponse, error)
	SubmitAnswersFunc  func(ctx context.Context, quizID string, req *dto.SubmitRequest) (*dto.SubmissionResponse, error)
}

func (m *MockQuizService) GenerateQuiz(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.QuizResponse, error) {
	if m.GenerateQuizFunc != nil {
		return m.GenerateQuizFunc(ctx, req)
	}
	panic("MockQuizService.GenerateQuizFunc not implemented")
}
func (m *MockQuizService) RepairRaw(ctx context.Context, raw, locale string) (*dto.RepairResponse, error) {
	if m.RepairRawFunc != nil {
		return m.RepairRawFunc(ctx, raw, locale)
	}
	panic("MockQuizService.RepairRawFunc not implemented")
}
func (m *MockQuizService) ListQuizzes(ctx context.Context) ([]dto.QuizResponse, error) {
	if m.ListQuizzesFunc != nil {
		return m.ListQuizzesFunc(ctx)
	}
	panic("MockQuizService.ListQuizzesFunc not implemented")
}
func (m *MockQuizService) GetQuiz(ctx context.Context, id string) (*dto.QuizResponse, error) {
	if m.GetQuizFunc != nil {
		return m.GetQuizFunc(ctx, id)
	}
	panic("MockQuizService.GetQuizFunc not implemented")
}
func (m *MockQuizService) UpdateQuiz(ctx context.Context, id string, req *dto.UpdateQuizRequest) (*dto.QuizResponse, error) {
	if m.UpdateQuizFunc != nil {
		return m.UpdateQuizFunc(ctx, id, req)
	}
	panic("MockQuizService.UpdateQuizFunc not implemented")
}
func (m *MockQuizService) DeleteQuiz(ctx context.Context, id string) error {
	if m.DeleteQuizFunc != nil {
		return m.DeleteQuizFunc(ctx, id)
	}
	panic("MockQuizService.DeleteQuizFunc not implemented")
}
func (m *MockQuizService) AssignStudents(ctx context.Context, quizID string, studentIDs []string) (*dto.QuizResponse, error) {
	if m.AssignStudentsFunc != nil {
		return m.AssignStudentsFunc(ctx, quizID, studentIDs)
	}
	panic("MockQuizService.AssignStudentsFunc not implemented")
}
func (m *MockQuizService) SubmitAnswers(ctx context.Context, quizID string, req *dto.SubmitRequest) (*dto.SubmissionResponse, error) {
	if m.SubmitAnswersFunc != nil {
		return m.SubmitAnswersFunc(ctx, quizID, req)
	}
	panic("MockQuizService.SubmitAnswersFunc not implemented")
}

// MockStudentService
type MockStudentService struct {
	CreateStudentFunc func(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error)
	GetStudentFunc    func(ctx context.Context, id string) (*dto.StudentResponse, error)
	ListStudentsFunc  func(ctx context.Context, query string) ([]dto.StudentResponse, error)
	UpdateStudentFunc func(ctx context.Context, id string, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error)
	DeleteStudentFunc func(ctx context.Context, id string) error
	AddQuizResultFunc func(ctx context.Context, studentID string, result domain.QuizResult) (*dto.StudentResponse, error)
	GetStatsFunc      func(ctx context.Context, id string) (*domain.StudentStats, error)
}

func (m *MockStudentService) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	if m.CreateStudentFunc != nil {
		return m.CreateStudentFunc(ctx, req)
	}
	panic("MockStudentService.CreateStudentFunc not implemented")
}
func (m *MockStudentService) GetStudent(ctx context.Context, id string) (*dto.StudentResponse, error) {
	if m.GetStudentFunc != nil {
		return m.GetStudentFunc(ctx, id)
	}
	panic("MockStudentService.GetStudentFunc not implemented")
}
func (m *MockStudentService) ListStudents(ctx context.Context, query string) ([]dto.StudentResponse, error) {
	if m.ListStudentsFunc != nil {
		return m.ListStudentsFunc(ctx, query)
	}
	panic("MockStudentService.ListStudentsFunc not implemented")
}
func (m *MockStudentService) UpdateStudent(ctx context.Context, id string, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error) {
	if m.UpdateStudentFunc != nil {
		return m.UpdateStudentFunc(ctx, id, req)
	}
	panic("MockStudentService.UpdateStudentFunc not implemented")
}
func (m *MockStudentService) DeleteStudent(ctx context.Context, id string) error {
	if m.DeleteStudentFunc != nil {
		return m.DeleteStudentFunc(ctx, id)
	}
	panic("MockStudentService.DeleteStudentFunc not implemented")
}
func (m *MockStudentService) AddQuizResult(ctx context.Context, studentID string, result domain.QuizResult) (*dto.StudentResponse, error) {
	if m.AddQuizResultFunc != nil {
		return m.AddQuizResultFunc(ctx, studentID, result)
	}
	panic("MockStudentService.AddQuizResultFunc not implemented")
}
func (m *MockStudentService) GetStats(ctx context.Context, id string) (*domain.StudentStats, error) {
	if m.GetStatsFunc != nil {
		return m.GetStatsFunc(ctx, id)
	}
	panic("MockStudentService.GetStatsFunc not implemented")
}

// MockCurriculumService
type MockCurriculumService struct {
	CreateModuleFunc   func(ctx context.Context, req *dto.CreateModuleRequest) (*dto.ModuleResponse, error)
	GenerateModuleFunc func(ctx context.Context, topic string) (*dto.ModuleResponse, error)
	ListModulesFunc    func(ctx context.Context) ([]dto.ModuleResponse, error)
	GetModuleFunc      func(ctx context.Context, id string) (*dto.ModuleResponse, error)
	DeleteModuleFunc   func(ctx context.Context, id string) error
	AddLessonFunc      func(ctx context.Context, moduleID string, req *dto.LessonRequest) (*dto.ModuleResponse, error)
	DeleteLessonFunc   func(ctx context.Context, moduleID, lessonID string) error
}

func (m *MockCurriculumService) CreateModule(ctx context.Context, req *dto.CreateModuleRequest) (*dto.ModuleResponse, error) {
	if m.CreateModuleFunc != nil {
		return m.CreateModuleFunc(ctx, req)
	}
	panic("MockCurriculumService.CreateModuleFunc not implemented")
}
func (m *MockCurriculumService) GenerateModule(ctx context.Context, topic string) (*dto.ModuleResponse, error) {
	if m.GenerateModuleFunc != nil {
		return m.GenerateModuleFunc(ctx, topic)
	}
	panic("MockCurriculumService.GenerateModuleFunc not implemented")
}
func (m *MockCurriculumService) ListModules(ctx context.Context) ([]dto.ModuleResponse, error) {
	if m.ListModulesFunc != nil {
		return m.ListModulesFunc(ctx)
	}
	panic("MockCurriculumService.ListModulesFunc not implemented")
}
func (m *MockCurriculumService) GetModule(ctx context.Context, id string) (*dto.ModuleResponse, error) {
	if m.GetModuleFunc != nil {
		return m.GetModuleFunc(ctx, id)
	}
	panic("MockCurriculumService.GetModuleFunc not implemented")
}
func (m *MockCurriculumService) DeleteModule(ctx context.Context, id string) error {
	if m.DeleteModuleFunc != nil {
		return m.DeleteModuleFunc(ctx, id)
	}
	panic("MockCurriculumService.DeleteModuleFunc not implemented")
}
func (m *MockCurriculumService) AddLesson(ctx context.Context, moduleID string, req *dto.LessonRequest) (*dto.ModuleResponse, error) {
	if m.AddLessonFunc != nil {
		return m.AddLessonFunc(ctx, moduleID, req)
	}
	panic("MockCurriculumService.AddLessonFunc not implemented")
}
func (m *MockCurriculumService) DeleteLesson(ctx context.Context, moduleID, lessonID string) error {
	if m.DeleteLessonFunc != nil {
		return m.DeleteLessonFunc(ctx, moduleID, lessonID)
	}
	panic("MockCurriculumService.DeleteLessonFunc not implemented")
}

// MockDashboardService
type MockDashboardService struct {
	GetDashboardFunc func(ctx context.Context) (*dto.DashboardResponse, error)
}

func (m *MockDashboardService) GetDashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	if m.GetDashboardFunc != nil {
		return m.GetDashboardFunc(ctx)
	}
	panic("MockDashboardService.GetDashboardFunc not implemented")
}

// MockAuthService
type MockAuthService struct {
	LoginFunc        func(ctx context.Context, email, password string) (*dto.LoginResponse, error)
	RegisterFunc     func(ctx context.Context, req *dto.RegisterRequest) (*dto.MessageResponse, error)
	RefreshTokenFunc func(ctx context.Context, refreshToken string) (string, string, error)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	panic("MockAuthService.LoginFunc not implemented")
}
func (m *MockAuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.MessageResponse, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	panic("MockAuthService.RegisterFunc not implemented")
}

// ValidateJWT accepts the bearer token "valid-token" only.
func (m *MockAuthService) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	if tokenString == validToken {
		return &dto.AuthClaims{UserID: "demo", TokenType: "access"}, nil
	}
	return nil, domain.NewUnauthorizedError("invalid token")
}
func (m *MockAuthService) CreateJWT(ctx context.Context, user *domain.User, ttl time.Duration, tokenType string) (string, error) {
	panic("MockAuthService.CreateJWT not implemented")
}
func (m *MockAuthService) RefreshToken(ctx context.Context, refreshToken string) (string, string, error) {
	if m.RefreshTokenFunc != nil {
		return m.RefreshTokenFunc(ctx, refreshToken)
	}
	panic("MockAuthService.RefreshTokenFunc not implemented")
}
