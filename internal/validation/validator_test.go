package validation

import (
	"testing"

	"edu-quiz/internal/domain"
	"edu-quiz/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_GenerateQuizRequest(t *testing.T) {
	v := NewValidator()

	require.NoError(t, v.Struct(dto.GenerateQuizRequest{Title: "Toplama", Grade: "2", Difficulty: "easy", QuestionCount: 5}))

	err := v.Struct(dto.GenerateQuizRequest{Title: "   ", Grade: "7", QuestionCount: 25})
	require.Error(t, err)
	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	byField := map[string]domain.ErrorCode{}
	for _, e := range verrs {
		byField[e.Field] = e.Code
	}
	assert.Equal(t, domain.CodeMissingField, byField["title"])
	assert.Equal(t, domain.CodeInvalidFormat, byField["grade"])
	assert.Equal(t, domain.CodeOutOfRange, byField["questionCount"])
}

func TestValidator_NestedLessons(t *testing.T) {
	v := NewValidator()

	err := v.Struct(dto.CreateModuleRequest{
		Title:   "Kesirler",
		Lessons: []dto.LessonRequest{{Title: "Yarım", Content: ""}},
	})
	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 1)
	assert.Equal(t, "lessons[0].content", verrs[0].Field)
	assert.Equal(t, domain.CodeMissingField, verrs[0].Code)
}

func TestValidator_LoginRequest(t *testing.T) {
	v := NewValidator()

	err := v.Struct(dto.LoginRequest{Email: "not-an-email", Password: "x"})
	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "email", verrs[0].Field)
	assert.Equal(t, domain.CodeInvalidFormat, verrs[0].Code)
}
