package server_test

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/cmdpipe/cqrs/command"
	"github.com/rise-and-shine/cmdpipe/http/server"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"plain error", errors.New("x"), fiber.StatusInternalServerError},
		{"validation", errx.New("x", errx.WithType(errx.T_Validation)), fiber.StatusBadRequest},
		{"not found", errx.New("x", errx.WithType(errx.T_NotFound)), fiber.StatusNotFound},
		{"conflict", errx.New("x", errx.WithType(errx.T_Conflict)), fiber.StatusConflict},
		{"no handler", errx.New("x", errx.WithCode(command.CodeNoHandlerRegistered)), fiber.StatusNotImplemented},
		{"fiber method not allowed", fiber.ErrMethodNotAllowed, fiber.StatusBadRequest},
		{"fiber not found", fiber.ErrNotFound, fiber.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, server.StatusOf(tt.err))
		})
	}
}

func TestErrorResponse(t *testing.T) {
	for _, hide := range []bool{false, true} {
		srv := server.NewHTTPServer(server.Config{HideErrorDetails: hide})
		srv.RegisterRouter(func(r fiber.Router) {
			r.Get("/", func(*fiber.Ctx) error {
				return errx.New("title is required",
					errx.WithCode("INVALID_TITLE"),
					errx.WithType(errx.T_Validation),
					errx.WithFields(errx.M{"title": "is required"}),
					errx.WithDetails(errx.D{"max": 10}),
				)
			})
		})

		resp, err := srv.App().Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
		require.NoError(t, err)
		defer resp.Body.Close()

		var body struct {
			Error struct {
				Code    string            `json:"code"`
				Trace   string            `json:"trace"`
				Fields  map[string]string `json:"fields"`
				Details map[string]any    `json:"details"`
			} `json:"error"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_TITLE", body.Error.Code)
		assert.Equal(t, map[string]string{"title": "is required"}, body.Error.Fields)
		if hide {
			assert.Empty(t, body.Error.Trace)
			assert.Empty(t, body.Error.Details)
		} else {
			assert.EqualValues(t, 10, body.Error.Details["max"])
		}
	}
}

func TestConfig_Address(t *testing.T) {
	assert.Equal(t, "localhost:8080", server.Config{Host: "localhost", Port: 8080}.Address())
}
