package service

import (
	"context"
	"errors"
	"testing"

	"edu-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_GetDashboard(t *testing.T) {
	quizzes := new(MockQuizRepository)
	students := new(MockStudentRepository)
	modules := new(MockCurriculumRepository)
	quizzes.On("CountQuizzes", mock.Anything).Return(4, nil)
	students.On("CountStudents", mock.Anything).Return(12, nil)
	students.On("AverageProgress", mock.Anything).Return(72.5, nil)
	modules.On("CountModules", mock.Anything).Return(3, nil)

	resp, err := NewDashboardService(quizzes, students, modules).GetDashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, resp.QuizCount)
	assert.Equal(t, 12, resp.StudentCount)
	assert.Equal(t, 3, resp.ModuleCount)
	assert.Equal(t, 73, resp.AverageProgress)
}

func TestDashboardService_GetDashboard_Error(t *testing.T) {
	quizzes := new(MockQuizRepository)
	students := new(MockStudentRepository)
	modules := new(MockCurriculumRepository)
	quizzes.On("CountQuizzes", mock.Anything).Return(0, errors.New("ORA-03113"))
	students.On("CountStudents", mock.Anything).Return(1, nil).Maybe()
	students.On("AverageProgress", mock.Anything).Return(0.0, nil).Maybe()
	modules.On("CountModules", mock.Anything).Return(0, nil).Maybe()

	_, err := NewDashboardService(quizzes, students, modules).GetDashboard(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeInternal))
}
