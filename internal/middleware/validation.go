package middleware

import (
	"interview-agent/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const (
	LocalHistoryLimit = "validated_limit"
	LocalRecordID     = "validated_id"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateHistoryQuery checks the optional limit query parameter.
func (vm *ValidationMiddleware) ValidateHistoryQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, errs := vm.validator.ValidateHistoryLimit(c.Query("limit"))
		if len(errs) > 0 {
			return errs
		}
		c.Locals(LocalHistoryLimit, limit)
		return c.Next()
	}
}

// ValidateRecordID checks the :id path parameter.
func (vm *ValidationMiddleware) ValidateRecordID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, errs := vm.validator.ValidateRecordID(c.Params("id"))
		if len(errs) > 0 {
			return errs
		}
		c.Locals(LocalRecordID, id)
		return c.Next()
	}
}
