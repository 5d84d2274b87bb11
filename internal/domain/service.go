package domain

import "context"

// QuizRepository defines the interface for quiz persistence
type QuizRepository interface {
	// SaveQuiz persists a new quiz together with its questions
	SaveQuiz(ctx context.Context, quiz *Quiz) error

	// GetQuizByID retrieves a quiz with questions and assignments. Returns nil, nil when absent.
	GetQuizByID(ctx context.Context, id string) (*Quiz, error)

	// ListQuizzes returns all quizzes, newest first
	ListQuizzes(ctx context.Context) ([]*Quiz, error)

	// UpdateQuiz updates quiz metadata (not questions)
	UpdateQuiz(ctx context.Context, quiz *Quiz) error

	// DeleteQuiz removes a quiz, its questions and assignments
	DeleteQuiz(ctx context.Context, id string) error

	// ReplaceAssignments replaces the set of students assigned to a quiz
	ReplaceAssignments(ctx context.Context, quizID string, studentIDs []string) error

	// CountQuizzes returns the number of stored quizzes
	CountQuizzes(ctx context.Context) (int, error)
}

// StudentRepository defines the interface for student persistence
type StudentRepository interface {
	CreateStudent(ctx context.Context, student *Student) error
	GetStudentByID(ctx context.Context, id string) (*Student, error)
	ListStudents(ctx context.Context) ([]*Student, error)
	UpdateStudent(ctx context.Context, student *Student) error
	DeleteStudent(ctx context.Context, id string) error

	// AddQuizResult stores the result and the student's recomputed progress
	AddQuizResult(ctx context.Context, result *QuizResult, progress int) error

	CountStudents(ctx context.Context) (int, error)
	AverageProgress(ctx context.Context) (float64, error)
}

// CurriculumRepository defines the interface for curriculum persistence
type CurriculumRepository interface {
	SaveModule(ctx context.Context, module *Module) error
	GetModuleByID(ctx context.Context, id string) (*Module, error)
	ListModules(ctx context.Context) ([]*Module, error)
	DeleteModule(ctx context.Context, id string) error
	AddLesson(ctx context.Context, lesson *Lesson) error
	DeleteLesson(ctx context.Context, moduleID, lessonID string) error
	CountModules(ctx context.Context) (int, error)
}

// TransactionManager runs fn inside a single database transaction carried on ctx.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
