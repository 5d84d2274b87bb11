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
	moduleColumns = `id, title, description, created_at, updated_at`
	lessonColumns = `id, module_id, position, title, content, objectives, activities, duration, created_at`
)

// CurriculumDatabaseAdapter implements domain.CurriculumRepository.
type CurriculumDatabaseAdapter struct {
	db *sqlx.DB
}

func NewCurriculumDatabaseAdapter(db *sqlx.DB) domain.CurriculumRepository {
	return &CurriculumDatabaseAdapter{db: db}
}

// SaveModule inserts the module and its lessons in order.
func (a *CurriculumDatabaseAdapter) SaveModule(ctx context.Context, module *domain.Module) error {
	if module == nil {
		return fmt.Errorf("cannot save nil module")
	}
	exec := GetExecutor(ctx, a.db)
	if module.ID == "" {
		module.ID = util.NewULID()
	}
	now := time.Now()
	module.CreatedAt, module.UpdatedAt = now, now

	_, err := exec.ExecContext(ctx,
		`INSERT INTO curriculum_modules (`+moduleColumns+`) VALUES (:1, :2, :3, :4, :5)`,
		module.ID, module.Title, util.StringToNullString(module.Description), now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to save module: %w", err)
	}

	for i := range module.Lessons {
		module.Lessons[i].ModuleID = module.ID
		module.Lessons[i].Position = i
		if err := insertLesson(ctx, exec, &module.Lessons[i], now); err != nil {
			return err
		}
	}
	return nil
}

// GetModuleByID returns nil, nil when no module has the id.
func (a *CurriculumDatabaseAdapter) GetModuleByID(ctx context.Context, id string) (*domain.Module, error) {
	exec := GetExecutor(ctx, a.db)

	var m models.CurriculumModule
	if err := exec.GetContext(ctx, &m, `SELECT `+moduleColumns+` FROM curriculum_modules WHERE id = :1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get module by ID %s: %w", id, err)
	}

	var lessons []models.Lesson
	if err := exec.SelectContext(ctx, &lessons,
		`SELECT `+lessonColumns+` FROM lessons WHERE module_id = :1 ORDER BY position`, id); err != nil {
		return nil, fmt.Errorf("failed to get lessons of module %s: %w", id, err)
	}
	return toDomainModule(&m, lessons), nil
}

func (a *CurriculumDatabaseAdapter) ListModules(ctx context.Context) ([]*domain.Module, error) {
	exec := GetExecutor(ctx, a.db)

	var rows []models.CurriculumModule
	if err := exec.SelectContext(ctx, &rows, `SELECT `+moduleColumns+` FROM curriculum_modules ORDER BY created_at, id`); err != nil {
		return nil, fmt.Errorf("failed to list modules: %w", err)
	}
	if len(rows) == 0 {
		return []*domain.Module{}, nil
	}

	var lessons []models.Lesson
	if err := exec.SelectContext(ctx, &lessons, `SELECT `+lessonColumns+` FROM lessons ORDER BY module_id, position`); err != nil {
		return nil, fmt.Errorf("failed to list lessons: %w", err)
	}
	byModule := make(map[string][]models.Lesson)
	for _, l := range lessons {
		byModule[l.ModuleID] = append(byModule[l.ModuleID], l)
	}

	modules := make([]*domain.Module, 0, len(rows))
	for i := range rows {
		modules = append(modules, toDomainModule(&rows[i], byModule[rows[i].ID]))
	}
	return modules, nil
}

func (a *CurriculumDatabaseAdapter) DeleteModule(ctx context.Context, id string) error {
	res, err := GetExecutor(ctx, a.db).ExecContext(ctx, `DELETE FROM curriculum_modules WHERE id = :1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete module %s: %w", id, err)
	}
	if ok, err := affectedOne(res); err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	} else if !ok {
		return domain.NewModuleNotFoundError(id)
	}
	return nil
}

// AddLesson appends lesson after the module's existing lessons.
func (a *CurriculumDatabaseAdapter) AddLesson(ctx context.Context, lesson *domain.Lesson) error {
	if lesson == nil {
		return fmt.Errorf("cannot save nil lesson")
	}
	exec := GetExecutor(ctx, a.db)

	var next int
	if err := exec.GetContext(ctx, &next,
		`SELECT NVL(MAX(position) + 1, 0) FROM lessons WHERE module_id = :1`, lesson.ModuleID); err != nil {
		return fmt.Errorf("failed to read lesson position: %w", err)
	}
	lesson.Position = next

	now := time.Now()
	if err := insertLesson(ctx, exec, lesson, now); err != nil {
		return err
	}
	if _, err := exec.ExecContext(ctx,
		`UPDATE curriculum_modules SET updated_at = :1 WHERE id = :2`, now, lesson.ModuleID); err != nil {
		return fmt.Errorf("failed to touch module %s: %w", lesson.ModuleID, err)
	}
	return nil
}

func (a *CurriculumDatabaseAdapter) DeleteLesson(ctx context.Context, moduleID, lessonID string) error {
	res, err := GetExecutor(ctx, a.db).ExecContext(ctx,
		`DELETE FROM lessons WHERE id = :1 AND module_id = :2`, lessonID, moduleID)
	if err != nil {
		return fmt.Errorf("failed to delete lesson %s: %w", lessonID, err)
	}
	if ok, err := affectedOne(res); err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	} else if !ok {
		return domain.NewNotFoundError(fmt.Sprintf("Lesson with ID %s not found in module %s", lessonID, moduleID))
	}
	return nil
}

func (a *CurriculumDatabaseAdapter) CountModules(ctx context.Context) (int, error) {
	var n int
	if err := GetExecutor(ctx, a.db).GetContext(ctx, &n, `SELECT COUNT(*) FROM curriculum_modules`); err != nil {
		return 0, fmt.Errorf("failed to count modules: %w", err)
	}
	return n, nil
}

func insertLesson(ctx context.Context, exec DBTX, lesson *domain.Lesson, at time.Time) error {
	if lesson.ID == "" {
		lesson.ID = util.NewULID()
	}
	_, err := exec.ExecContext(ctx,
		`INSERT INTO lessons (`+lessonColumns+`) VALUES (:1, :2, :3, :4, :5, :6, :7, :8, :9)`,
		lesson.ID, lesson.ModuleID, lesson.Position, lesson.Title, lesson.Content,
		models.StringSlice(lesson.Objectives), models.StringSlice(lesson.Activities),
		util.StringToNullString(lesson.Duration), at,
	)
	if err != nil {
		return fmt.Errorf("failed to save lesson %q: %w", lesson.Title, err)
	}
	return nil
}

func toDomainModule(m *models.CurriculumModule, lessons []models.Lesson) *domain.Module {
	module := &domain.Module{
		ID:          m.ID,
		Title:       m.Title,
		Description: util.NullStringToString(m.Description),
		Lessons:     make([]domain.Lesson, 0, len(lessons)),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	for _, l := range lessons {
		module.Lessons = append(module.Lessons, domain.Lesson{
			ID:         l.ID,
			ModuleID:   l.ModuleID,
			Position:   l.Position,
			Title:      l.Title,
			Content:    l.Content,
			Objectives: []string(l.Objectives),
			Activities: []string(l.Activities),
			Duration:   util.NullStringToString(l.Duration),
		})
	}
	return module
}
