// handlers_annotation.go - Annotation document CRUD and export handlers
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/wsi-annotator/backend/internal/geometry"
	"github.com/wsi-annotator/backend/internal/storage"
)

type annotationRequest struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Elements    []geometry.Element `json:"elements"`
}

func (r *annotationRequest) validate() error {
	if r.Name == "" {
		return NewValidationError("name")
	}
	return nil
}

// HandleCreateAnnotation creates a new annotation document.
func (h *Handler) HandleCreateAnnotation(c echo.Context) error {
	var req annotationRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	if err := req.validate(); err != nil {
		return err
	}

	a, err := h.store.Create(req.Name, req.Description, req.Elements)
	if err != nil {
		return NewInternalError("failed to create annotation", err)
	}
	return c.JSON(http.StatusCreated, a)
}

// HandleListAnnotations returns the most recently updated annotations.
func (h *Handler) HandleListAnnotations(c echo.Context) error {
	limit := 50
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return NewValidationError("limit")
		}
		limit = n
	}

	list, err := h.store.List(limit)
	if err != nil {
		return NewInternalError("failed to list annotations", err)
	}
	return c.JSON(http.StatusOK, list)
}

// HandleGetAnnotation fetches one annotation document.
func (h *Handler) HandleGetAnnotation(c echo.Context) error {
	id := c.Param("id")

	a, err := h.store.Get(id)
	if errors.Is(err, storage.ErrNotFound) {
		return NewNotFoundError("annotation", id)
	}
	if err != nil {
		return NewInternalError("failed to fetch annotation", err)
	}
	return c.JSON(http.StatusOK, a)
}

// HandleUpdateAnnotation replaces an annotation document's content.
func (h *Handler) HandleUpdateAnnotation(c echo.Context) error {
	id := c.Param("id")

	var req annotationRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	if err := req.validate(); err != nil {
		return err
	}

	a, err := h.store.Update(id, req.Name, req.Description, req.Elements)
	if errors.Is(err, storage.ErrNotFound) {
		return NewNotFoundError("annotation", id)
	}
	if err != nil {
		return NewInternalError("failed to update annotation", err)
	}
	return c.JSON(http.StatusOK, a)
}

// HandleDeleteAnnotation removes an annotation document.
func (h *Handler) HandleDeleteAnnotation(c echo.Context) error {
	id := c.Param("id")

	err := h.store.Delete(id)
	if errors.Is(err, storage.ErrNotFound) {
		return NewNotFoundError("annotation", id)
	}
	if err != nil {
		return NewInternalError("failed to delete annotation", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// HandleAnnotationGeoJSON converts a document's elements to a GeoJSON
// FeatureCollection. Elements that fail to convert are dropped so a
// partially corrupt document still renders its valid features.
func (h *Handler) HandleAnnotationGeoJSON(c echo.Context) error {
	fc, err := h.annotationFeatures(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fc)
}

// HandleAnnotationGeoJSONMsgpack returns the FeatureCollection in
// MessagePack format for clients that poll frequently.
func (h *Handler) HandleAnnotationGeoJSONMsgpack(c echo.Context) error {
	fc, err := h.annotationFeatures(c)
	if err != nil {
		return err
	}

	data, err := msgpack.Marshal(fc)
	if err != nil {
		return NewInternalError("failed to encode msgpack", err)
	}
	return c.Blob(http.StatusOK, "application/msgpack", data)
}

func (h *Handler) annotationFeatures(c echo.Context) (geometry.FeatureCollection, error) {
	id := c.Param("id")

	a, err := h.store.Get(id)
	if errors.Is(err, storage.ErrNotFound) {
		return geometry.FeatureCollection{}, NewNotFoundError("annotation", id)
	}
	if err != nil {
		return geometry.FeatureCollection{}, NewInternalError("failed to fetch annotation", err)
	}
	return geometry.ConvertAll(a.Elements, nil), nil
}
