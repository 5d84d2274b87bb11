package handler

import (
	"edu-quiz/internal/domain"
	"edu-quiz/internal/dto"
	"edu-quiz/internal/service"
	"edu-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// StudentHandler handles roster and progress requests
type StudentHandler struct {
	service   service.StudentService
	validator *validation.Validator
}

func NewStudentHandler(service service.StudentService, validator *validation.Validator) *StudentHandler {
	return &StudentHandler{service: service, validator: validator}
}

// ListStudents godoc
// @Summary List students
// @Description Lists students, optionally filtered by a case-insensitive name search.
// @Tags students
// @Produce json
// @Security ApiKeyAuth
// @Param q query string false "Name search"
// @Success 200 {array} dto.StudentResponse
// @Router /students [get]
func (h *StudentHandler) ListStudents(c *fiber.Ctx) error {
	resp, err := h.service.ListStudents(c.UserContext(), c.Query("q"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// CreateStudent godoc
// @Summary Add a student
// @Tags students
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateStudentRequest true "Student"
// @Success 201 {object} dto.StudentResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /students [post]
func (h *StudentHandler) CreateStudent(c *fiber.Ctx) error {
	var req dto.CreateStudentRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}
	resp, err := h.service.CreateStudent(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetStudent godoc
// @Summary Get a student
// @Tags students
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Student ID"
// @Success 200 {object} dto.StudentResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /students/{id} [get]
func (h *StudentHandler) GetStudent(c *fiber.Ctx) error {
	resp, err := h.service.GetStudent(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// UpdateStudent godoc
// @Summary Update a student
// @Tags students
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Student ID"
// @Param request body dto.UpdateStudentRequest true "Fields to change"
// @Success 200 {object} dto.StudentResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /students/{id} [put]
func (h *StudentHandler) UpdateStudent(c *fiber.Ctx) error {
	var req dto.UpdateStudentRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}
	resp, err := h.service.UpdateStudent(c.UserContext(), c.Params("id"), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// DeleteStudent godoc
// @Summary Remove a student
// @Tags students
// @Security ApiKeyAuth
// @Param id path string true "Student ID"
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse
// @Router /students/{id} [delete]
func (h *StudentHandler) DeleteStudent(c *fiber.Ctx) error {
	if err := h.service.DeleteStudent(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddQuizResult godoc
// @Summary Record a quiz result
// @Description Appends a result and recomputes the student's progress.
// @Tags students
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Student ID"
// @Param request body dto.AddResultRequest true "Result"
// @Success 201 {object} dto.StudentResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /students/{id}/results [post]
func (h *StudentHandler) AddQuizResult(c *fiber.Ctx) error {
	var req dto.AddResultRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}
	resp, err := h.service.AddQuizResult(c.UserContext(), c.Params("id"), domain.QuizResult{
		QuizID:    req.QuizID,
		QuizTitle: req.QuizTitle,
		Score:     req.Score,
		Date:      req.Date,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetStats godoc
// @Summary Student statistics
// @Tags students
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Student ID"
// @Success 200 {object} domain.StudentStats
// @Failure 404 {object} middleware.ErrorResponse
// @Router /students/{id}/stats [get]
func (h *StudentHandler) GetStats(c *fiber.Ctx) error {
	resp, err := h.service.GetStats(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
