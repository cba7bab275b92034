package apperror

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Normalize maps err to an API error when it belongs to a known kind. The
// second result is false for anything that should surface as a 500.
func Normalize(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Detail: "Not found.", Err: err}, true
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &Error{
			Kind:   KindValidation,
			Status: http.StatusBadRequest,
			Detail: "A record with these values already exists.",
			Err:    err,
		}, true
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) && fiberErr.Code < http.StatusInternalServerError {
		return &Error{Kind: KindClient, Status: fiberErr.Code, Detail: fiberErr.Message, Err: err}, true
	}

	return nil, false
}

// Handler returns the Fiber error handler that renders every known error
// kind into the envelope. Unknown errors are logged and answered with a
// plain 500.
func Handler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		apiErr, ok := Normalize(err)
		if !ok {
			logger.Error("unhandled error",
				zap.Error(err),
				zap.String("method", utils.CopyString(c.Method())),
				zap.String("path", utils.CopyString(c.Path())),
				zap.Any("request_id", c.Locals("requestid")),
			)
			c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
			return c.Status(fiber.StatusInternalServerError).SendString(http.StatusText(http.StatusInternalServerError))
		}

		logger.Debug("request rejected",
			zap.String("kind", string(apiErr.Kind)),
			zap.Int("status", apiErr.Status),
			zap.String("method", utils.CopyString(c.Method())),
			zap.String("path", utils.CopyString(c.Path())),
			zap.Error(err),
		)

		if apiErr.AuthHeader != "" {
			c.Set(fiber.HeaderWWWAuthenticate, apiErr.AuthHeader)
		}
		if apiErr.RetryAfter > 0 {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(apiErr.RetryAfter))
		}
		return c.Status(apiErr.Status).JSON(apiErr.Envelope())
	}
}
