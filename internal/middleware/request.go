package middleware

import (
	"time"

	"interview-agent/internal/logger"
	"interview-agent/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

const RequestIDHeader = fiber.HeaderXRequestID

// RequestIDContextKey is the fiber Locals key holding the request id.
const RequestIDContextKey = "requestid"

// RequestIDMiddleware assigns every request a ULID unless the client sent an X-Request-ID.
func RequestIDMiddleware() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     RequestIDHeader,
		ContextKey: RequestIDContextKey,
		Generator:  util.NewULID,
	})
}

// RequestID returns the id assigned by RequestIDMiddleware, or "".
func RequestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(RequestIDContextKey).(string); ok {
		return id
	}
	return ""
}

// RequestLogger writes one structured line per request.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()
		if err != nil {
			// Let the app error handler write the response so the logged status is final.
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		logger.Get().Info("HTTP Request",
			zap.String("request_id", RequestID(c)),
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get(fiber.HeaderUserAgent)),
		)

		return nil
	}
}
