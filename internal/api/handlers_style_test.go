// handlers_style_test.go - Tests for style default handlers
package api

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/wsi-annotator/backend/internal/geometry"
)

func TestGetStyles(t *testing.T) {
	geometry.ResetDefaultStyles()
	e := echo.New()
	h, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/styles", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if assert.NoError(t, h.HandleGetStyles(c)) {
		var resp struct {
			Defaults map[string]map[string]any `json:"defaults"`
		}
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp.Defaults, 5)
		assert.Equal(t, "rgba(0,0,0,0)", resp.Defaults["rectangle"]["fillColor"])
		assert.Equal(t, 2.0, resp.Defaults["rectangle"]["lineWidth"])
	}
}

func TestUpdateStyles(t *testing.T) {
	geometry.ResetDefaultStyles()
	t.Cleanup(geometry.ResetDefaultStyles)

	e := echo.New()
	h, _ := newTestHandler()

	rulesYAML := `
defaults:
  rectangle:
    line_color: "#ff0000"
    line_width: 4
  ellipse:
    fill_color: "rgba(0,255,0,0.5)"
`
	req := jsonRequest(http.MethodPost, "/api/styles", updateStylesRequest{
		Data: base64.StdEncoding.EncodeToString([]byte(rulesYAML)),
	})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if assert.NoError(t, h.HandleUpdateStyles(c)) {
		assert.JSONEq(t, `{"applied":2}`, rec.Body.String())
	}

	rect := geometry.DefaultStyle(geometry.TypeRectangle)
	assert.Equal(t, "#ff0000", rect["lineColor"])
	assert.Equal(t, 4.0, rect["lineWidth"])
	// Untouched properties keep their previous defaults.
	assert.Equal(t, "rgba(0,0,0,0)", rect["fillColor"])

	ellipse := geometry.DefaultStyle(geometry.TypeEllipse)
	assert.Equal(t, "rgba(0,255,0,0.5)", ellipse["fillColor"])
}

func TestUpdateStylesValidation(t *testing.T) {
	tests := []struct {
		name    string
		request updateStylesRequest
		errCode string
	}{
		{
			name:    "empty data",
			request: updateStylesRequest{Data: ""},
			errCode: "VALIDATION_ERROR",
		},
		{
			name:    "invalid base64",
			request: updateStylesRequest{Data: "!!not-base64!!"},
			errCode: "BAD_REQUEST",
		},
		{
			name:    "invalid yaml",
			request: updateStylesRequest{Data: base64.StdEncoding.EncodeToString([]byte("defaults: ["))},
			errCode: "BAD_REQUEST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			h, _ := newTestHandler()

			req := jsonRequest(http.MethodPost, "/api/styles", tt.request)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := h.HandleUpdateStyles(c)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			apiErr, ok := err.(*APIError)
			if !ok {
				t.Fatalf("expected APIError, got %T", err)
			}
			if apiErr.Code != tt.errCode {
				t.Errorf("expected error code %s, got %s", tt.errCode, apiErr.Code)
			}
		})
	}
}
