package service

import (
	"context"

	"edu-quiz/internal/domain"
	"edu-quiz/internal/dto"

	"golang.org/x/sync/errgroup"
)

// DashboardService summarises the classroom.
type DashboardService interface {
	GetDashboard(ctx context.Context) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	quizzes  domain.QuizRepository
	students domain.StudentRepository
	modules  domain.CurriculumRepository
}

func NewDashboardService(quizzes domain.QuizRepository, students domain.StudentRepository, modules domain.CurriculumRepository) DashboardService {
	return &dashboardService{quizzes: quizzes, students: students, modules: modules}
}

// GetDashboard runs the count queries concurrently; the first failure cancels the rest.
func (s *dashboardService) GetDashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	var (
		resp     dto.DashboardResponse
		progress float64
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		resp.QuizCount, err = s.quizzes.CountQuizzes(ctx)
		return err
	})
	g.Go(func() (err error) {
		resp.StudentCount, err = s.students.CountStudents(ctx)
		return err
	})
	g.Go(func() (err error) {
		resp.ModuleCount, err = s.modules.CountModules(ctx)
		return err
	})
	g.Go(func() (err error) {
		progress, err = s.students.AverageProgress(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, asDomainError(err, "Failed to load dashboard")
	}
	resp.AverageProgress = domain.RoundPercent(progress)
	return &resp, nil
}
