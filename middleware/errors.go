package middleware

import (
	"ecommerce/apperror"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestID returns the correlation id assigned by the requestid middleware.
func RequestID(c *fiber.Ctx) string {
	if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
		return rid
	}
	return c.GetRespHeader(fiber.HeaderXRequestID)
}

// ErrorHandler is the outer boundary for every error returned by a handler. Known errors map to
// their status and message; anything else becomes a generic 500 logged with the request id.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := apperror.HTTPStatus(err)
		message := apperror.Message(err)

		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
			message = fe.Message
		}

		if status >= fiber.StatusInternalServerError {
			log.Error("Request failed",
				zap.String("request_id", RequestID(c)),
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
			message = "Internal server error"
		}

		return JsonResponse(c, status, false, message, nil)
	}
}
