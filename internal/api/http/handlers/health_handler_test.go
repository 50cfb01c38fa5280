package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func readyResponse(t *testing.T, h *HealthHandler) (int, map[string]any) {
	t.Helper()
	app := fiber.New()
	app.Get("/health/ready", h.Ready)
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health/ready", nil))
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestReadyWhenDependenciesAnswer(t *testing.T) {
	ok := pingerFunc(func(context.Context) error { return nil })
	status, body := readyResponse(t, NewHealthHandler("audit-tracker", "test", ok, ok))

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ready", body["status"])
	assert.Equal(t, map[string]any{"postgres": "ok", "redis": "ok"}, body["dependencies"])
}

func TestNotReadyWhenRedisIsDown(t *testing.T) {
	ok := pingerFunc(func(context.Context) error { return nil })
	down := pingerFunc(func(context.Context) error { return errors.New("connection refused") })
	status, body := readyResponse(t, NewHealthHandler("audit-tracker", "test", ok, down))

	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	details := body["error"].(map[string]any)["details"].(map[string]any)
	assert.Equal(t, "ok", details["postgres"])
	assert.Equal(t, "connection refused", details["redis"])
}

func TestReadySkipsMissingDependencies(t *testing.T) {
	status, body := readyResponse(t, NewHealthHandler("audit-tracker", "test", nil, nil))

	assert.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, body["dependencies"])
}
