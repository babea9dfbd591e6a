package logger

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const RequestIDKey = "X-Request-ID"

// FromContext returns the request-scoped logger. Handlers run behind the
// request-id and auth middlewares, so when no logger was stored yet the
// fallback enriches the global one with whatever those middlewares recorded:
// the request id plus the acting superadmin, which keeps admin mutations
// attributable.
func FromContext(c echo.Context) *zap.Logger {
	if ctxLogger, ok := c.Get("logger").(*zap.Logger); ok {
		return ctxLogger
	}

	fields := make([]zap.Field, 0, 2)
	if requestID, ok := c.Get(RequestIDKey).(string); ok && requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}
	if actor, ok := c.Get("user_id").(string); ok && actor != "" {
		fields = append(fields, zap.String("actor_id", actor))
	}

	return GetLogger().With(fields...)
}
