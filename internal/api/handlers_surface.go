// handlers_surface.go - Viewing surface handlers
package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/wsi-annotator/backend/internal/viewport"
)

type createSurfaceRequest struct {
	Name   string  `json:"name"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// surfaceStateRequest mirrors viewport.State: absent fields stay unchanged.
type surfaceStateRequest struct {
	Left   *float64 `json:"left"`
	Top    *float64 `json:"top"`
	Scale  *float64 `json:"scale"`
	Width  *float64 `json:"width"`
	Height *float64 `json:"height"`
}

// HandleCreateSurface registers a new viewing surface.
func (h *Handler) HandleCreateSurface(c echo.Context) error {
	var req createSurfaceRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	if req.Width <= 0 {
		return NewValidationError("width")
	}
	if req.Height <= 0 {
		return NewValidationError("height")
	}

	surface, state := h.surfaceMgr.Create(req.Name, req.Width, req.Height)
	return c.JSON(http.StatusCreated, map[string]any{
		"surface": surface,
		"state":   state,
	})
}

// HandleListSurfaces returns all active surfaces.
func (h *Handler) HandleListSurfaces(c echo.Context) error {
	return c.JSON(http.StatusOK, h.surfaceMgr.List())
}

// HandleGetSurface returns a surface and its viewport state.
func (h *Handler) HandleGetSurface(c echo.Context) error {
	id := c.Param("id")

	surface, state, ok := h.surfaceMgr.Get(id)
	if !ok {
		return NewNotFoundError("surface", id)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"surface": surface,
		"state":   state,
	})
}

// HandleDeleteSurface removes a surface.
func (h *Handler) HandleDeleteSurface(c echo.Context) error {
	id := c.Param("id")

	if !h.surfaceMgr.Remove(id) {
		return NewNotFoundError("surface", id)
	}
	return c.NoContent(http.StatusNoContent)
}

// HandleSetSurfaceState applies a partial viewport update. A scale change
// zooms about the viewport center.
func (h *Handler) HandleSetSurfaceState(c echo.Context) error {
	id := c.Param("id")

	var req surfaceStateRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}

	state, ok := h.surfaceMgr.SetState(id, viewport.State{
		Left:   req.Left,
		Top:    req.Top,
		Scale:  req.Scale,
		Width:  req.Width,
		Height: req.Height,
	})
	if !ok {
		return NewNotFoundError("surface", id)
	}
	return c.JSON(http.StatusOK, state)
}

// HandleSurfaceBounds returns the visible image-space region.
func (h *Handler) HandleSurfaceBounds(c echo.Context) error {
	id := c.Param("id")

	bounds, ok := h.surfaceMgr.Bounds(id)
	if !ok {
		return NewNotFoundError("surface", id)
	}
	return c.JSON(http.StatusOK, bounds)
}

// HandleSurfaceProject maps an image-space point to screen pixels.
func (h *Handler) HandleSurfaceProject(c echo.Context) error {
	id := c.Param("id")

	x, err := strconv.ParseFloat(c.QueryParam("x"), 64)
	if err != nil {
		return NewValidationError("x")
	}
	y, err := strconv.ParseFloat(c.QueryParam("y"), 64)
	if err != nil {
		return NewValidationError("y")
	}

	sx, sy, ok := h.surfaceMgr.Project(id, x, y)
	if !ok {
		return NewNotFoundError("surface", id)
	}
	return c.JSON(http.StatusOK, map[string]float64{"x": sx, "y": sy})
}

// HandleSetSurfaceCenter recenters the surface on an image-space point.
func (h *Handler) HandleSetSurfaceCenter(c echo.Context) error {
	id := c.Param("id")

	var req struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}

	state, ok := h.surfaceMgr.SetCenter(id, req.X, req.Y)
	if !ok {
		return NewNotFoundError("surface", id)
	}
	return c.JSON(http.StatusOK, state)
}

// HandleSetSurfaceZoom sets the log2 zoom level. Higher levels mean a
// larger scale (visually zoomed out); clients rely on this convention.
func (h *Handler) HandleSetSurfaceZoom(c echo.Context) error {
	id := c.Param("id")

	var req struct {
		Level float64 `json:"level"`
	}
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}

	state, ok := h.surfaceMgr.SetZoom(id, req.Level)
	if !ok {
		return NewNotFoundError("surface", id)
	}
	return c.JSON(http.StatusOK, state)
}

// HandleSurfaceKeepAlive refreshes a surface's cleanup timer.
func (h *Handler) HandleSurfaceKeepAlive(c echo.Context) error {
	id := c.Param("id")

	if !h.surfaceMgr.Touch(id) {
		return NewNotFoundError("surface", id)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
