package middleware

import (
	"edu-quiz/internal/domain"
	"edu-quiz/internal/util"

	"github.com/gofiber/fiber/v2"
)

// ValidateIDParams rejects requests whose named path parameters are not ULIDs.
func ValidateIDParams(names ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var errs domain.ValidationErrors
		for _, name := range names {
			if v := c.Params(name); !util.IsULID(v) {
				errs = append(errs, domain.NewInvalidFormatError(name, v))
			}
		}
		if len(errs) > 0 {
			return errs
		}
		return c.Next()
	}
}
