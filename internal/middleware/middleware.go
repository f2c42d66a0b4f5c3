package middleware

import (
	"runtime/debug"
	"time"

	"github.com/DGonNine/teacher-management/config"
	"github.com/DGonNine/teacher-management/pkg/apperror"
	"github.com/DGonNine/teacher-management/pkg/apperror/status"
	"github.com/DGonNine/teacher-management/pkg/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/google/uuid"
)

// Setup installs the middleware chain in order: request id, panic recovery,
// access log, CORS, then the connection limiter.
func Setup(app *fiber.App, cfg config.Config) {
	app.Use(requestIDMiddleware())
	app.Use(panicRecoveryMiddleware())
	app.Use(accessLogMiddleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.Cors.AllowOrigins,
		AllowMethods:  cfg.Cors.AllowMethods,
		AllowHeaders:  cfg.Cors.AllowHeaders,
		ExposeHeaders: []string{fiber.HeaderXRequestID},
	}))
	app.Use(connectionLimiterMiddleware(NewConnectionLimiter(cfg.Server.Concurrency)))
}

// ConnectionLimiter limits the number of concurrent connections
type ConnectionLimiter struct {
	limit    int
	waitlist chan struct{}
}

func NewConnectionLimiter(limit int) *ConnectionLimiter {
	return &ConnectionLimiter{
		limit:    limit,
		waitlist: make(chan struct{}, limit),
	}
}

func (cl *ConnectionLimiter) Acquire() bool {
	select {
	case cl.waitlist <- struct{}{}:
		return true
	default:
		return false
	}
}

func (cl *ConnectionLimiter) Release() {
	select {
	case <-cl.waitlist:
	default:
	}
}

// connectionLimiterMiddleware rejects requests beyond the limit with 503
func connectionLimiterMiddleware(limiter *ConnectionLimiter) fiber.Handler {
	return func(c fiber.Ctx) error {
		if !limiter.Acquire() {
			return apperror.WriteError(config.ModuleServer, c, fiber.StatusServiceUnavailable,
				apperror.FormatCode(status.ServerBusy), "server is at maximum capacity")
		}
		defer limiter.Release()
		return c.Next()
	}
}

// requestIDMiddleware keeps an incoming X-Request-ID or assigns a new one.
func requestIDMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		id := c.Get(fiber.HeaderXRequestID)
		if id == "" {
			id = uuid.NewString()
			c.Request().Header.Set(fiber.HeaderXRequestID, id)
		}
		c.Set(fiber.HeaderXRequestID, id)
		return c.Next()
	}
}

func accessLogMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		fields := map[string]interface{}{
			"http_method": c.Method(),
			"path":        c.Path(),
			"status_code": c.Response().StatusCode(),
			"latency_ms":  time.Since(start).Milliseconds(),
			"ip":          c.IP(),
			"request_id":  c.Get(fiber.HeaderXRequestID),
		}
		if err != nil {
			fields["error"] = err.Error()
		}
		logger.WithFields(fields).Info("request")
		return err
	}
}

// panicRecoveryMiddleware creates a middleware for panic recovery
func panicRecoveryMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		defer func() {
			if r := recover(); r != nil {
				// Log the panic with stack trace
				stack := debug.Stack()
				logger.WithFields(map[string]interface{}{
					"panic":      r,
					"method":     c.Method(),
					"path":       c.Path(),
					"ip":         c.IP(),
					"user_agent": c.Get(fiber.HeaderUserAgent),
					"request_id": c.Get(fiber.HeaderXRequestID),
					"stack":      string(stack),
				}).Error("panic recovered")

				err := apperror.WriteError(config.ModuleServer, c, fiber.StatusInternalServerError,
					apperror.FormatCode(status.Internal), "internal server error")
				if err != nil {
					logger.Error(err, "failed to send error response")
				}
			}
		}()
		return c.Next()
	}
}
