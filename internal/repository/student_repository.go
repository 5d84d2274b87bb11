package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"edu-quiz/internal/domain"
	"edu-quiz/internal/repository/models"
	"edu-quiz/internal/util"

	"github.com/jmoiron/sqlx"
)

const (
	studentColumns = `id, name, birth_date, school, grade, join_date, progress, created_at, updated_at`
	resultColumns  = `id, student_id, quiz_id, quiz_title, score, result_date, created_at`
)

// StudentDatabaseAdapter implements domain.StudentRepository.
type StudentDatabaseAdapter struct {
	db *sqlx.DB
}

func NewStudentDatabaseAdapter(db *sqlx.DB) domain.StudentRepository {
	return &StudentDatabaseAdapter{db: db}
}

func (a *StudentDatabaseAdapter) CreateStudent(ctx context.Context, student *domain.Student) error {
	if student == nil {
		return fmt.Errorf("cannot save nil student")
	}
	if student.ID == "" {
		student.ID = util.NewULID()
	}
	now := time.Now()
	student.CreatedAt, student.UpdatedAt = now, now
	m := toModelStudent(student)

	_, err := GetExecutor(ctx, a.db).ExecContext(ctx,
		`INSERT INTO students (`+studentColumns+`) VALUES (:1, :2, :3, :4, :5, :6, :7, :8, :9)`,
		m.ID, m.Name, m.BirthDate, m.School, m.Grade, m.JoinDate, m.Progress, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create student: %w", err)
	}
	return nil
}

// GetStudentByID returns nil, nil when no student has the id.
func (a *StudentDatabaseAdapter) GetStudentByID(ctx context.Context, id string) (*domain.Student, error) {
	exec := GetExecutor(ctx, a.db)

	var m models.Student
	if err := exec.GetContext(ctx, &m, `SELECT `+studentColumns+` FROM students WHERE id = :1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get student by ID %s: %w", id, err)
	}

	var results []models.QuizResult
	if err := exec.SelectContext(ctx, &results,
		`SELECT `+resultColumns+` FROM quiz_results WHERE student_id = :1 ORDER BY created_at, id`, id); err != nil {
		return nil, fmt.Errorf("failed to get results of student %s: %w", id, err)
	}
	return toDomainStudent(&m, results), nil
}

// ListStudents returns every student ordered by name, with their results.
func (a *StudentDatabaseAdapter) ListStudents(ctx context.Context) ([]*domain.Student, error) {
	exec := GetExecutor(ctx, a.db)

	var rows []models.Student
	if err := exec.SelectContext(ctx, &rows, `SELECT `+studentColumns+` FROM students ORDER BY name, id`); err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	if len(rows) == 0 {
		return []*domain.Student{}, nil
	}

	var results []models.QuizResult
	if err := exec.SelectContext(ctx, &results,
		`SELECT `+resultColumns+` FROM quiz_results ORDER BY created_at, id`); err != nil {
		return nil, fmt.Errorf("failed to list quiz results: %w", err)
	}
	byStudent := make(map[string][]models.QuizResult)
	for _, r := range results {
		byStudent[r.StudentID] = append(byStudent[r.StudentID], r)
	}

	students := make([]*domain.Student, 0, len(rows))
	for i := range rows {
		students = append(students, toDomainStudent(&rows[i], byStudent[rows[i].ID]))
	}
	return students, nil
}

// UpdateStudent rewrites the profile fields; progress changes only through AddQuizResult.
func (a *StudentDatabaseAdapter) UpdateStudent(ctx context.Context, student *domain.Student) error {
	if student == nil || student.ID == "" {
		return fmt.Errorf("cannot update student with empty ID")
	}
	student.UpdatedAt = time.Now()
	m := toModelStudent(student)

	res, err := GetExecutor(ctx, a.db).ExecContext(ctx,
		`UPDATE students SET name = :1, birth_date = :2, school = :3, grade = :4, updated_at = :5 WHERE id = :6`,
		m.Name, m.BirthDate, m.School, m.Grade, m.UpdatedAt, m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update student %s: %w", student.ID, err)
	}
	if ok, err := affectedOne(res); err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	} else if !ok {
		return domain.NewStudentNotFoundError(student.ID)
	}
	return nil
}

func (a *StudentDatabaseAdapter) DeleteStudent(ctx context.Context, id string) error {
	res, err := GetExecutor(ctx, a.db).ExecContext(ctx, `DELETE FROM students WHERE id = :1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete student %s: %w", id, err)
	}
	if ok, err := affectedOne(res); err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	} else if !ok {
		return domain.NewStudentNotFoundError(id)
	}
	return nil
}

// AddQuizResult inserts result and stores progress on the student row.
func (a *StudentDatabaseAdapter) AddQuizResult(ctx context.Context, result *domain.QuizResult, progress int) error {
	if result == nil {
		return fmt.Errorf("cannot save nil quiz result")
	}
	exec := GetExecutor(ctx, a.db)
	if result.ID == "" {
		result.ID = util.NewULID()
	}
	now := time.Now()

	_, err := exec.ExecContext(ctx,
		`INSERT INTO quiz_results (`+resultColumns+`) VALUES (:1, :2, :3, :4, :5, :6, :7)`,
		result.ID, result.StudentID, result.QuizID, result.QuizTitle, result.Score, result.Date, now,
	)
	if err != nil {
		return fmt.Errorf("failed to save quiz result: %w", err)
	}

	res, err := exec.ExecContext(ctx,
		`UPDATE students SET progress = :1, updated_at = :2 WHERE id = :3`,
		progress, now, result.StudentID,
	)
	if err != nil {
		return fmt.Errorf("failed to update progress of student %s: %w", result.StudentID, err)
	}
	if ok, err := affectedOne(res); err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	} else if !ok {
		return domain.NewStudentNotFoundError(result.StudentID)
	}
	return nil
}

func (a *StudentDatabaseAdapter) CountStudents(ctx context.Context) (int, error) {
	var n int
	if err := GetExecutor(ctx, a.db).GetContext(ctx, &n, `SELECT COUNT(*) FROM students`); err != nil {
		return 0, fmt.Errorf("failed to count students: %w", err)
	}
	return n, nil
}

// AverageProgress is 0 when there are no students.
func (a *StudentDatabaseAdapter) AverageProgress(ctx context.Context) (float64, error) {
	var avg float64
	if err := GetExecutor(ctx, a.db).GetContext(ctx, &avg, `SELECT NVL(AVG(progress), 0) FROM students`); err != nil {
		return 0, fmt.Errorf("failed to average student progress: %w", err)
	}
	return avg, nil
}

func toModelStudent(s *domain.Student) *models.Student {
	return &models.Student{
		ID:        s.ID,
		Name:      s.Name,
		BirthDate: util.StringToNullString(s.BirthDate),
		School:    util.StringToNullString(s.School),
		Grade:     s.Grade,
		JoinDate:  s.JoinDate,
		Progress:  s.Progress,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toDomainStudent(m *models.Student, results []models.QuizResult) *domain.Student {
	s := &domain.Student{
		ID:          m.ID,
		Name:        m.Name,
		BirthDate:   util.NullStringToString(m.BirthDate),
		School:      util.NullStringToString(m.School),
		Grade:       m.Grade,
		JoinDate:    m.JoinDate,
		Progress:    m.Progress,
		QuizResults: make([]domain.QuizResult, 0, len(results)),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	for _, r := range results {
		s.QuizResults = append(s.QuizResults, domain.QuizResult{
			ID:        r.ID,
			StudentID: r.StudentID,
			QuizID:    r.QuizID,
			QuizTitle: r.QuizTitle,
			Score:     r.Score,
			Date:      r.ResultDate,
		})
	}
	return s
}
