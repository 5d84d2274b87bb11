package handler

import (
	"edu-quiz/internal/dto"
	"edu-quiz/internal/service"
	"edu-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CurriculumHandler handles curriculum module requests
type CurriculumHandler struct {
	service   service.CurriculumService
	validator *validation.Validator
}

func NewCurriculumHandler(service service.CurriculumService, validator *validation.Validator) *CurriculumHandler {
	return &CurriculumHandler{service: service, validator: validator}
}

// ListModules godoc
// @Summary List curriculum modules
// @Tags curriculum
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} dto.ModuleResponse
// @Router /modules [get]
func (h *CurriculumHandler) ListModules(c *fiber.Ctx) error {
	resp, err := h.service.ListModules(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// CreateModule godoc
// @Summary Create a curriculum module
// @Description Stores the given lessons, or generates them from the title when none are given.
// @Tags curriculum
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateModuleRequest true "Module"
// @Success 201 {object} dto.ModuleResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /modules [post]
func (h *CurriculumHandler) CreateModule(c *fiber.Ctx) error {
	var req dto.CreateModuleRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}
	resp, err := h.service.CreateModule(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GenerateModule godoc
// @Summary Generate a curriculum module
// @Tags curriculum
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.GenerateModuleRequest true "Topic"
// @Success 201 {object} dto.ModuleResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /modules/generate [post]
func (h *CurriculumHandler) GenerateModule(c *fiber.Ctx) error {
	var req dto.GenerateModuleRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}
	resp, err := h.service.GenerateModule(c.UserContext(), req.Topic)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetModule godoc
// @Summary Get a curriculum module
// @Tags curriculum
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Module ID"
// @Success 200 {object} dto.ModuleResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /modules/{id} [get]
func (h *CurriculumHandler) GetModule(c *fiber.Ctx) error {
	resp, err := h.service.GetModule(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// DeleteModule godoc
// @Summary Delete a curriculum module
// @Tags curriculum
// @Security ApiKeyAuth
// @Param id path string true "Module ID"
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse
// @Router /modules/{id} [delete]
func (h *CurriculumHandler) DeleteModule(c *fiber.Ctx) error {
	if err := h.service.DeleteModule(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddLesson godoc
// @Summary Add a lesson
// @Tags curriculum
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Module ID"
// @Param request body dto.LessonRequest true "Lesson"
// @Success 201 {object} dto.ModuleResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /modules/{id}/lessons [post]
func (h *CurriculumHandler) AddLesson(c *fiber.Ctx) error {
	var req dto.LessonRequest
	if err := bindJSON(c, h.validator, &req); err != nil {
		return err
	}
	resp, err := h.service.AddLesson(c.UserContext(), c.Params("id"), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// DeleteLesson godoc
// @Summary Delete a lesson
// @Tags curriculum
// @Security ApiKeyAuth
// @Param id path string true "Module ID"
// @Param lessonId path string true "Lesson ID"
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse
// @Router /modules/{id}/lessons/{lessonId} [delete]
func (h *CurriculumHandler) DeleteLesson(c *fiber.Ctx) error {
	if err := h.service.DeleteLesson(c.UserContext(), c.Params("id"), c.Params("lessonId")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
