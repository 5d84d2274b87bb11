package handler

import (
	"edu-quiz/internal/domain"
	"edu-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// bindJSON decodes the request body into out and validates its struct tags.
func bindJSON(c *fiber.Ctx, v *validation.Validator, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return domain.NewInvalidInputError("Request body is not valid JSON")
	}
	return v.Struct(out)
}
