// routes.go - Handler wiring and route registration
package api

import (
	"github.com/labstack/echo/v4"
	"github.com/wsi-annotator/backend/internal/session"
	"github.com/wsi-annotator/backend/internal/storage"
)

// Handler holds all API handler dependencies.
type Handler struct {
	store      storage.Store
	surfaceMgr *session.Manager
	version    string
}

// NewHandler creates the API handler.
func NewHandler(store storage.Store, surfaceMgr *session.Manager, version string) *Handler {
	return &Handler{
		store:      store,
		surfaceMgr: surfaceMgr,
		version:    version,
	}
}

// RegisterRoutes registers all API routes with the Echo instance.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.HTTPErrorHandler = ErrorHandler

	apiGroup := e.Group("/api")

	apiGroup.GET("/health", h.HandleHealth)

	// Annotation documents
	annotationGroup := apiGroup.Group("/annotations")
	annotationGroup.POST("", h.HandleCreateAnnotation)
	annotationGroup.GET("", h.HandleListAnnotations)
	annotationGroup.GET("/:id", h.HandleGetAnnotation)
	annotationGroup.PUT("/:id", h.HandleUpdateAnnotation)
	annotationGroup.DELETE("/:id", h.HandleDeleteAnnotation)
	annotationGroup.GET("/:id/geojson", h.HandleAnnotationGeoJSON)
	annotationGroup.GET("/:id/geojson/msgpack", h.HandleAnnotationGeoJSONMsgpack)

	// Viewing surfaces
	surfaceGroup := apiGroup.Group("/surfaces")
	surfaceGroup.POST("", h.HandleCreateSurface)
	surfaceGroup.GET("", h.HandleListSurfaces)
	surfaceGroup.GET("/:id", h.HandleGetSurface)
	surfaceGroup.DELETE("/:id", h.HandleDeleteSurface)
	surfaceGroup.PUT("/:id/state", h.HandleSetSurfaceState)
	surfaceGroup.GET("/:id/bounds", h.HandleSurfaceBounds)
	surfaceGroup.GET("/:id/project", h.HandleSurfaceProject)
	surfaceGroup.PUT("/:id/center", h.HandleSetSurfaceCenter)
	surfaceGroup.PUT("/:id/zoom", h.HandleSetSurfaceZoom)
	surfaceGroup.POST("/:id/keepalive", h.HandleSurfaceKeepAlive)
	surfaceGroup.GET("/:id/ws", h.HandleSurfaceWebSocket)

	// Style defaults
	apiGroup.GET("/styles", h.HandleGetStyles)
	apiGroup.POST("/styles", h.HandleUpdateStyles)
}
