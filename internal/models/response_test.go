package models

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLogs swaps the default logger for one writing into a buffer.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func errorApp(err error) *fiber.App {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return RespondWithError(c, err)
	})
	return app
}

func TestRespondWithError(t *testing.T) {
	t.Run("internal cause is logged, never serialized", func(t *testing.T) {
		logs := captureLogs(t)
		app := errorApp(NewInternalError(errors.New(`pq: relation "jobs" does not exist`)))

		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "Internal server error")
		assert.NotContains(t, string(body), "relation")

		assert.Contains(t, logs.String(), "relation")
	})

	t.Run("AI failure cause is logged", func(t *testing.T) {
		logs := captureLogs(t)
		app := errorApp(NewAIGenerationError(errors.New("anthropic: status 529")))

		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.NotContains(t, string(body), "529")
		assert.Contains(t, logs.String(), "529")
	})

	t.Run("client errors are not logged here", func(t *testing.T) {
		logs := captureLogs(t)
		app := errorApp(NewNotFoundError("Job"))

		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		assert.Empty(t, logs.String())
	})

	t.Run("bare errors become a generic 500 and are logged", func(t *testing.T) {
		logs := captureLogs(t)
		app := errorApp(errors.New("boom"))

		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.NotContains(t, string(body), "boom")
		assert.Contains(t, logs.String(), "boom")
	})
}
