package serverutils

import (
	"errors"

	"github.com/byndl-mvp/PoC-sub002/internal/apperrors"
	"github.com/byndl-mvp/PoC-sub002/internal/pkg/logger"
	"github.com/byndl-mvp/PoC-sub002/pkg/llm"

	"github.com/gofiber/fiber/v2"
)

// NewErrorHandler maps service errors to HTTP statuses. Unknown errors are
// logged with their route and returned as opaque 500s.
func NewErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "internal server error"

		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
			message = fiberErr.Message
		case errors.Is(err, apperrors.ErrSessionNotFound),
			errors.Is(err, apperrors.ErrDocumentNotFound),
			errors.Is(err, apperrors.ErrPositionNotFound):
			code = fiber.StatusNotFound
			message = err.Error()
		case errors.Is(err, apperrors.ErrSessionNotReady):
			code = fiber.StatusConflict
			message = err.Error()
		case errors.Is(err, llm.ErrProviderUnavailable):
			code = fiber.StatusServiceUnavailable
			message = err.Error()
		case errors.Is(err, apperrors.ErrCatalogLoad):
			code = fiber.StatusServiceUnavailable
			message = err.Error()
		default:
			if log != nil {
				log.Error("HTTP", "unhandled error", map[string]interface{}{
					"error": err.Error(),
					"path":  ctx.Path(),
				})
			}
		}

		return ctx.Status(code).JSON(ErrorResponse(message, nil))
	}
}
