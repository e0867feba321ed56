package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type AccessLogMiddleware struct {
	logger *log.Logger
}

func NewAccessLogMiddleware(logger *log.Logger) *AccessLogMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &AccessLogMiddleware{logger: logger}
}

func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
			c.Set("X-Request-ID", rid)
		}

		err := c.Next()

		dur := time.Since(start)
		status := c.Response().StatusCode()

		if m != nil && m.logger != nil {
			userID := "-"
			if uid, ok := UserIDFromCtx(c); ok {
				userID = uid.String()
			}
			m.logger.Printf(
				"HTTP access | rid=%s ip=%s user_id=%s method=%s path=%s status=%d latency=%s ua=%q",
				rid, c.IP(), userID, c.Method(), c.OriginalURL(), status, dur, c.Get("User-Agent"),
			)
		}

		return err
	}
}
