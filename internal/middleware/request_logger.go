// Package middleware holds the HTTP middleware shared by the API surface.
package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RequestLoggerConfig configures the structured request logger.
type RequestLoggerConfig struct {
	// SkipPaths are not logged at all, e.g. health checks.
	SkipPaths []string
	// SlowRequestThreshold promotes requests slower than this to WARN.
	// Batch uploads buffer the whole multipart body, so this is generous.
	SlowRequestThreshold time.Duration
}

// DefaultRequestLoggerConfig returns the settings used by the server.
func DefaultRequestLoggerConfig() RequestLoggerConfig {
	return RequestLoggerConfig{
		SkipPaths:            []string{"/health"},
		SlowRequestThreshold: 5 * time.Second,
	}
}

// RequestLogger returns a middleware that logs one structured line per
// request: method, path, status, duration, body size and the request id
// assigned upstream.
func RequestLogger(config ...RequestLoggerConfig) fiber.Handler {
	cfg := DefaultRequestLoggerConfig()
	if len(config) > 0 {
		cfg = config[0]
	}

	skip := make(map[string]bool, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = true
	}

	return func(c *fiber.Ctx) error {
		if skip[c.Path()] {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()
		elapsed := time.Since(start)

		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		var ev *zerolog.Event
		switch {
		case status >= 500:
			ev = log.Error()
		case status >= 400:
			ev = log.Warn()
		case cfg.SlowRequestThreshold > 0 && elapsed > cfg.SlowRequestThreshold:
			ev = log.Warn().Bool("slow", true)
		default:
			ev = log.Info()
		}

		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", elapsed).
			Int("bytes_in", len(c.Body()))
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			ev.Str("request_id", rid)
		}
		ev.Msg("Request handled")

		return err
	}
}
