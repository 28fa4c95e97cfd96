package controller

import (
	"errors"

	"feature-prioritizer/internal/dto"
	"feature-prioritizer/internal/pkg/logger"
	"feature-prioritizer/internal/pkg/serverutils"
	"feature-prioritizer/internal/service"
	"feature-prioritizer/pkg/prioritization"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps domain and request errors to status codes and
// the JSON error envelope.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code, res := errorResponse(err)
		if code >= fiber.StatusInternalServerError {
			log.Error("http", "Unhandled error", map[string]interface{}{
				"path":  ctx.Path(),
				"error": err.Error(),
			})
		}
		return ctx.Status(code).JSON(res)
	}
}

func errorResponse(err error) (int, serverutils.Response[any]) {
	var (
		validationErr *prioritization.ValidationError
		requestErr    *serverutils.RequestError
		parseErr      *prioritization.ParseError
		fiberErr      *fiber.Error
	)

	switch {
	case errors.As(err, &validationErr):
		return fiber.StatusUnprocessableEntity, serverutils.ValidationErrorResponse(fiber.StatusUnprocessableEntity, "Validation failed", validationErr.Messages)
	case errors.As(err, &requestErr):
		return fiber.StatusBadRequest, serverutils.ValidationErrorResponse(fiber.StatusBadRequest, "Invalid request", requestErr.Messages)
	case errors.Is(err, service.ErrFeatureNotFound), errors.Is(err, service.ErrUnknownTemplate):
		return fiber.StatusNotFound, serverutils.ErrorResponse(fiber.StatusNotFound, err.Error())
	case errors.As(err, &parseErr),
		errors.Is(err, service.ErrInvalidBackup),
		errors.Is(err, service.ErrNotEnoughToCompare),
		errors.Is(err, prioritization.ErrUnknownFramework),
		errors.Is(err, dto.ErrInvalidPriority):
		return fiber.StatusBadRequest, serverutils.ErrorResponse(fiber.StatusBadRequest, err.Error())
	case errors.As(err, &fiberErr):
		return fiberErr.Code, serverutils.ErrorResponse(fiberErr.Code, fiberErr.Message)
	default:
		return fiber.StatusInternalServerError, serverutils.ErrorResponse(fiber.StatusInternalServerError, "Internal server error")
	}
}
