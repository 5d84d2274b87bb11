package handler

import (
	"edu-quiz/internal/dto"
	"edu-quiz/internal/service"
	"edu-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service   service.QuizService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService, validator *validation.Validator) *QuizHandler {
	return &QuizHandler{
		service:   service,
		validator: validator,
	}
}

// GenerateQuiz godoc
// @Summary Generate a quiz
// @Description Generates a multiple-choice quiz with the configured model, repairs arithmetic answers and stores it.
// @Tags quiz
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.GenerateQuizRequest true "Quiz parameters"
// @Success 201 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 422 {object} middleware.ErrorResponse "Generated text could not be repaired"
// @Failure 502 {object} middleware.ErrorResponse "Model provider failed"
// @Router /quizzes/generate [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}
	resp, err := h.service.GenerateQuiz(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// RepairQuiz godoc
// @Summary Repair raw generated text
// @Description Extracts the quiz JSON from raw model output and repairs arithmetic answers without storing anything.
// @Tags quiz
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.RepairRequest true "Raw text"
// @Param locale query string false "Explanation language (tr or en)"
// @Success 200 {object} dto.RepairResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Router /quizzes/repair [post]
func (h *QuizHandler) RepairQuiz(c *fiber.Ctx) error {
	var req dto.RepairRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}
	resp, err := h.service.RepairRaw(c.UserContext(), req.Raw, c.Query("locale"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ListQuizzes godoc
// @Summary List quizzes
// @Tags quiz
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} dto.QuizResponse
// @Router /quizzes [get]
func (h *QuizHandler) ListQuizzes(c *fiber.Ctx) error {
	resp, err := h.service.ListQuizzes(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetQuiz godoc
// @Summary Get a quiz
// @Tags quiz
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.QuizResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	resp, err := h.service.GetQuiz(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// UpdateQuiz godoc
// @Summary Update quiz details
// @Tags quiz
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Quiz ID"
// @Param request body dto.UpdateQuizRequest true "Fields to change"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id} [put]
func (h *QuizHandler) UpdateQuiz(c *fiber.Ctx) error {
	var req dto.UpdateQuizRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}
	resp, err := h.service.UpdateQuiz(c.UserContext(), c.Params("id"), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// DeleteQuiz godoc
// @Summary Delete a quiz
// @Tags quiz
// @Security ApiKeyAuth
// @Param id path string true "Quiz ID"
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id} [delete]
func (h *QuizHandler) DeleteQuiz(c *fiber.Ctx) error {
	if err := h.service.DeleteQuiz(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AssignStudents godoc
// @Summary Assign students to a quiz
// @Description Replaces the set of students assigned to the quiz.
// @Tags quiz
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Quiz ID"
// @Param request body dto.AssignRequest true "Student IDs"
// @Success 200 {object} dto.QuizResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id}/assignments [put]
func (h *QuizHandler) AssignStudents(c *fiber.Ctx) error {
	var req dto.AssignRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}
	resp, err := h.service.AssignStudents(c.UserContext(), c.Params("id"), req.StudentIDs)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SubmitAnswers godoc
// @Summary Submit a student's answers
// @Description Grades the answers and records the result on the student.
// @Tags quiz
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Quiz ID"
// @Param request body dto.SubmitRequest true "Answers"
// @Success 201 {object} dto.SubmissionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id}/submissions [post]
func (h *QuizHandler) SubmitAnswers(c *fiber.Ctx) error {
	var req dto.SubmitRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}
	resp, err := h.service.SubmitAnswers(c.UserContext(), c.Params("id"), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}
