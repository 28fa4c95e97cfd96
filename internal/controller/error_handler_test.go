package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"feature-prioritizer/internal/dto"
	"feature-prioritizer/internal/pkg/logger"
	"feature-prioritizer/internal/pkg/serverutils"
	"feature-prioritizer/internal/service"
	"feature-prioritizer/pkg/prioritization"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandlerMiddleware(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"validation", &prioritization.ValidationError{Messages: []string{prioritization.MsgNameRequired}}, 422},
		{"request", &serverutils.RequestError{Messages: []string{"Ids failed on min=2"}}, 400},
		{"not found", service.ErrFeatureNotFound, 404},
		{"unknown template", fmt.Errorf("%w: x", service.ErrUnknownTemplate), 404},
		{"backup", &service.BackupError{Err: errors.New("bad json")}, 400},
		{"csv", &prioritization.ParseError{Source: "csv", Err: prioritization.ErrEmptyCSV}, 400},
		{"framework", prioritization.ErrUnknownFramework, 400},
		{"priority", dto.ErrInvalidPriority, 400},
		{"compare", service.ErrNotEnoughToCompare, 400},
		{"fiber", fiber.NewError(fiber.StatusMethodNotAllowed, "nope"), 405},
		{"other", errors.New("boom"), 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(ErrorHandlerMiddleware(logger.NewNopLogger()))
			app.Get("/", func(*fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.code, resp.StatusCode)

			var body serverutils.Response[any]
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.code, body.Code)
		})
	}
}

func TestValidationErrorsAreListed(t *testing.T) {
	_, res := errorResponse(&prioritization.ValidationError{Messages: []string{"a", "b"}})
	assert.Equal(t, []string{"a", "b"}, res.Errors)
}
