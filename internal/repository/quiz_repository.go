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
	quizColumns     = `id, title, description, grade, difficulty, created_at, updated_at`
	questionColumns = `id, quiz_id, position, question_text, options, correct_answer, explanation`
)

// QuizDatabaseAdapter implements domain.QuizRepository.
type QuizDatabaseAdapter struct {
	db *sqlx.DB
}

func NewQuizDatabaseAdapter(db *sqlx.DB) domain.QuizRepository {
	return &QuizDatabaseAdapter{db: db}
}

// SaveQuiz inserts the quiz, its questions and assignments. Run it inside a
// transaction to keep the rows together.
func (a *QuizDatabaseAdapter) SaveQuiz(ctx context.Context, quiz *domain.Quiz) error {
	if quiz == nil {
		return fmt.Errorf("cannot save nil quiz")
	}
	exec := GetExecutor(ctx, a.db)

	if quiz.ID == "" {
		quiz.ID = util.NewULID()
	}
	now := time.Now()
	quiz.CreatedAt, quiz.UpdatedAt = now, now
	m := toModelQuiz(quiz)

	_, err := exec.ExecContext(ctx,
		`INSERT INTO quizzes (`+quizColumns+`) VALUES (:1, :2, :3, :4, :5, :6, :7)`,
		m.ID, m.Title, m.Description, m.Grade, m.Difficulty, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save quiz: %w", err)
	}

	for i := range quiz.Questions {
		if quiz.Questions[i].ID == "" {
			quiz.Questions[i].ID = util.NewULID()
		}
		q := toModelQuestion(quiz.ID, i, quiz.Questions[i])
		_, err := exec.ExecContext(ctx,
			`INSERT INTO quiz_questions (`+questionColumns+`) VALUES (:1, :2, :3, :4, :5, :6, :7)`,
			q.ID, q.QuizID, q.Position, q.QuestionText, q.Options, q.CorrectAnswer, q.Explanation,
		)
		if err != nil {
			return fmt.Errorf("failed to save question %d of quiz %s: %w", i, quiz.ID, err)
		}
	}

	return insertAssignments(ctx, exec, quiz.ID, quiz.AssignedStudents, now)
}

// GetQuizByID returns nil, nil when no quiz has the id.
func (a *QuizDatabaseAdapter) GetQuizByID(ctx context.Context, id string) (*domain.Quiz, error) {
	exec := GetExecutor(ctx, a.db)

	var m models.Quiz
	err := exec.GetContext(ctx, &m, `SELECT `+quizColumns+` FROM quizzes WHERE id = :1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by ID %s: %w", id, err)
	}

	var questions []models.QuizQuestion
	if err := exec.SelectContext(ctx, &questions,
		`SELECT `+questionColumns+` FROM quiz_questions WHERE quiz_id = :1 ORDER BY position`, id); err != nil {
		return nil, fmt.Errorf("failed to get questions of quiz %s: %w", id, err)
	}

	var assignments []models.QuizAssignment
	if err := exec.SelectContext(ctx, &assignments,
		`SELECT quiz_id, student_id, assigned_at FROM quiz_assignments WHERE quiz_id = :1 ORDER BY assigned_at, student_id`, id); err != nil {
		return nil, fmt.Errorf("failed to get assignments of quiz %s: %w", id, err)
	}

	return toDomainQuiz(&m, questions, assignments), nil
}

// ListQuizzes returns every quiz, newest first, with questions and assignments.
func (a *QuizDatabaseAdapter) ListQuizzes(ctx context.Context) ([]*domain.Quiz, error) {
	exec := GetExecutor(ctx, a.db)

	var rows []models.Quiz
	if err := exec.SelectContext(ctx, &rows, `SELECT `+quizColumns+` FROM quizzes ORDER BY created_at DESC, id DESC`); err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	if len(rows) == 0 {
		return []*domain.Quiz{}, nil
	}

	var questions []models.QuizQuestion
	if err := exec.SelectContext(ctx, &questions,
		`SELECT `+questionColumns+` FROM quiz_questions ORDER BY quiz_id, position`); err != nil {
		return nil, fmt.Errorf("failed to list quiz questions: %w", err)
	}
	var assignments []models.QuizAssignment
	if err := exec.SelectContext(ctx, &assignments,
		`SELECT quiz_id, student_id, assigned_at FROM quiz_assignments ORDER BY assigned_at, student_id`); err != nil {
		return nil, fmt.Errorf("failed to list quiz assignments: %w", err)
	}

	questionsByQuiz := make(map[string][]models.QuizQuestion)
	for _, q := range questions {
		questionsByQuiz[q.QuizID] = append(questionsByQuiz[q.QuizID], q)
	}
	assignmentsByQuiz := make(map[string][]models.QuizAssignment)
	for _, as := range assignments {
		assignmentsByQuiz[as.QuizID] = append(assignmentsByQuiz[as.QuizID], as)
	}

	quizzes := make([]*domain.Quiz, 0, len(rows))
	for i := range rows {
		quizzes = append(quizzes, toDomainQuiz(&rows[i], questionsByQuiz[rows[i].ID], assignmentsByQuiz[rows[i].ID]))
	}
	return quizzes, nil
}

// UpdateQuiz rewrites title, description, grade and difficulty.
func (a *QuizDatabaseAdapter) UpdateQuiz(ctx context.Context, quiz *domain.Quiz) error {
	if quiz == nil || quiz.ID == "" {
		return fmt.Errorf("cannot update quiz with empty ID")
	}
	quiz.UpdatedAt = time.Now()
	m := toModelQuiz(quiz)

	res, err := GetExecutor(ctx, a.db).ExecContext(ctx,
		`UPDATE quizzes SET title = :1, description = :2, grade = :3, difficulty = :4, updated_at = :5 WHERE id = :6`,
		m.Title, m.Description, m.Grade, m.Difficulty, m.UpdatedAt, m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update quiz %s: %w", quiz.ID, err)
	}
	if ok, err := affectedOne(res); err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	} else if !ok {
		return domain.NewQuizNotFoundError(quiz.ID)
	}
	return nil
}

// DeleteQuiz removes the quiz; questions and assignments cascade.
func (a *QuizDatabaseAdapter) DeleteQuiz(ctx context.Context, id string) error {
	res, err := GetExecutor(ctx, a.db).ExecContext(ctx, `DELETE FROM quizzes WHERE id = :1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete quiz %s: %w", id, err)
	}
	if ok, err := affectedOne(res); err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	} else if !ok {
		return domain.NewQuizNotFoundError(id)
	}
	return nil
}

func (a *QuizDatabaseAdapter) ReplaceAssignments(ctx context.Context, quizID string, studentIDs []string) error {
	exec := GetExecutor(ctx, a.db)
	if _, err := exec.ExecContext(ctx, `DELETE FROM quiz_assignments WHERE quiz_id = :1`, quizID); err != nil {
		return fmt.Errorf("failed to clear assignments of quiz %s: %w", quizID, err)
	}
	return insertAssignments(ctx, exec, quizID, studentIDs, time.Now())
}

func (a *QuizDatabaseAdapter) CountQuizzes(ctx context.Context) (int, error) {
	var n int
	if err := GetExecutor(ctx, a.db).GetContext(ctx, &n, `SELECT COUNT(*) FROM quizzes`); err != nil {
		return 0, fmt.Errorf("failed to count quizzes: %w", err)
	}
	return n, nil
}

func insertAssignments(ctx context.Context, exec DBTX, quizID string, studentIDs []string, at time.Time) error {
	for _, studentID := range studentIDs {
		_, err := exec.ExecContext(ctx,
			`INSERT INTO quiz_assignments (quiz_id, student_id, assigned_at) VALUES (:1, :2, :3)`,
			quizID, studentID, at,
		)
		if err != nil {
			return fmt.Errorf("failed to assign student %s to quiz %s: %w", studentID, quizID, err)
		}
	}
	return nil
}

func toModelQuiz(q *domain.Quiz) *models.Quiz {
	return &models.Quiz{
		ID:          q.ID,
		Title:       q.Title,
		Description: util.StringToNullString(q.Description),
		Grade:       q.Grade,
		Difficulty:  string(q.Difficulty),
		CreatedAt:   q.CreatedAt,
		UpdatedAt:   q.UpdatedAt,
	}
}

func toModelQuestion(quizID string, position int, q domain.QuizQuestion) models.QuizQuestion {
	return models.QuizQuestion{
		ID:            q.ID,
		QuizID:        quizID,
		Position:      position,
		QuestionText:  q.Text,
		Options:       models.StringSlice(q.Options),
		CorrectAnswer: q.CorrectAnswerIndex,
		Explanation:   util.StringToNullString(q.Explanation),
	}
}

func toDomainQuiz(m *models.Quiz, questions []models.QuizQuestion, assignments []models.QuizAssignment) *domain.Quiz {
	quiz := &domain.Quiz{
		ID:               m.ID,
		Title:            m.Title,
		Description:      util.NullStringToString(m.Description),
		Grade:            m.Grade,
		Difficulty:       domain.Difficulty(m.Difficulty),
		Questions:        make([]domain.QuizQuestion, 0, len(questions)),
		AssignedStudents: make([]string, 0, len(assignments)),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	for _, q := range questions {
		quiz.Questions = append(quiz.Questions, domain.QuizQuestion{
			ID:                 q.ID,
			Text:               q.QuestionText,
			Options:            []string(q.Options),
			CorrectAnswerIndex: q.CorrectAnswer,
			Explanation:        util.NullStringToString(q.Explanation),
		})
	}
	for _, as := range assignments {
		quiz.AssignedStudents = append(quiz.AssignedStudents, as.StudentID)
	}
	return quiz
}
