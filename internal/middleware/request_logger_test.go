package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLoggerPassesThrough(t *testing.T) {
	app := fiber.New()
	app.Use(RequestLogger())
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("listo") })
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequestLoggerPreservesHandlerError(t *testing.T) {
	app := fiber.New()
	app.Use(RequestLogger(RequestLoggerConfig{SlowRequestThreshold: time.Second}))
	app.Get("/falla", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "no existe")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/falla", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
