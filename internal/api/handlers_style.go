// handlers_style.go - Style default configuration handlers
package api

import (
	"encoding/base64"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/wsi-annotator/backend/internal/geometry"
	"github.com/wsi-annotator/backend/internal/models"
	"gopkg.in/yaml.v3"
)

var elementTypes = []geometry.ElementType{
	geometry.TypePoint,
	geometry.TypeRectangle,
	geometry.TypeEllipse,
	geometry.TypeCircle,
	geometry.TypePolyline,
}

// HandleGetStyles returns the currently registered per-type style defaults.
func (h *Handler) HandleGetStyles(c echo.Context) error {
	defaults := make(map[string]map[string]any, len(elementTypes))
	for _, t := range elementTypes {
		defaults[string(t)] = geometry.DefaultStyle(t)
	}
	return c.JSON(http.StatusOK, map[string]any{"defaults": defaults})
}

type updateStylesRequest struct {
	Data string `json:"data"` // Base64-encoded YAML
}

// HandleUpdateStyles uploads a YAML style-rules document and applies it to
// the registered defaults.
func (h *Handler) HandleUpdateStyles(c echo.Context) error {
	var req updateStylesRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	if req.Data == "" {
		return NewValidationError("data")
	}

	decoded, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		return NewBadRequestError("invalid base64 data", err)
	}

	var rules models.StyleRules
	if err := yaml.Unmarshal(decoded, &rules); err != nil {
		return NewBadRequestError("invalid style rules YAML", err)
	}

	applied := 0
	for name, rule := range rules.Defaults {
		props := rule.Properties()
		if len(props) == 0 {
			continue
		}
		geometry.SetDefaultStyle(geometry.ElementType(name), props)
		applied++
	}

	return c.JSON(http.StatusOK, map[string]any{"applied": applied})
}

// ApplyStyleRules loads default styles from a YAML file at startup. A
// missing file is not an error.
func ApplyStyleRules(data []byte) error {
	var rules models.StyleRules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return err
	}
	for name, rule := range rules.Defaults {
		geometry.SetDefaultStyle(geometry.ElementType(name), rule.Properties())
	}
	return nil
}
