package serverutils

import (
	"errors"

	"livelabs-be/internal/apperror"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps domain error codes onto HTTP statuses so
// controllers can return service errors untouched.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		status := fiber.StatusInternalServerError
		switch code, _ := apperror.CodeOf(err); code {
		case apperror.CodeNotFound:
			status = fiber.StatusNotFound
		case apperror.CodePermissionDenied:
			status = fiber.StatusForbidden
		case apperror.CodeValidation:
			status = fiber.StatusUnprocessableEntity
		case apperror.CodeNoEligibleRun:
			status = fiber.StatusConflict
		case apperror.CodeTransientStore:
			status = fiber.StatusServiceUnavailable
		}

		return ctx.Status(status).JSON(ErrorResponse(status, err.Error()))
	}
}
