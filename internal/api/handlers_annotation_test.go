// handlers_annotation_test.go - Tests for annotation document handlers
package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/wsi-annotator/backend/internal/geometry"
	"github.com/wsi-annotator/backend/internal/models"
	"github.com/wsi-annotator/backend/internal/session"
	"github.com/wsi-annotator/backend/internal/testutil"
)

func newTestHandler() (*Handler, *testutil.MockStore) {
	store := testutil.NewMockStore()
	return NewHandler(store, session.NewManager(), "test"), store
}

func jsonRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestAnnotationCRUD(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler()

	// 1. Create
	req := jsonRequest(http.MethodPost, "/api/annotations", annotationRequest{
		Name: "tumor-region",
		Elements: []geometry.Element{
			{Type: geometry.TypePoint, Center: []float64{10, 20, 0}},
		},
	})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if assert.NoError(t, h.HandleCreateAnnotation(c)) {
		assert.Equal(t, http.StatusCreated, rec.Code)
	}

	var created models.Annotation
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Len(t, created.Elements, 1)

	// 2. Fetch
	req = httptest.NewRequest(http.MethodGet, "/api/annotations/"+created.ID, nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(created.ID)
	if assert.NoError(t, h.HandleGetAnnotation(c)) {
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"tumor-region"`)
	}

	// 3. Update
	req = jsonRequest(http.MethodPut, "/api/annotations/"+created.ID, annotationRequest{
		Name:        "tumor-region-2",
		Description: "revised",
		Elements:    []geometry.Element{},
	})
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(created.ID)
	if assert.NoError(t, h.HandleUpdateAnnotation(c)) {
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"tumor-region-2"`)
	}

	// 4. List
	req = httptest.NewRequest(http.MethodGet, "/api/annotations", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	if assert.NoError(t, h.HandleListAnnotations(c)) {
		var list []models.AnnotationInfo
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
		assert.Len(t, list, 1)
	}

	// 5. Delete
	req = httptest.NewRequest(http.MethodDelete, "/api/annotations/"+created.ID, nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(created.ID)
	if assert.NoError(t, h.HandleDeleteAnnotation(c)) {
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}

	err := h.HandleGetAnnotation(c)
	if assert.Error(t, err) {
		apiErr, ok := err.(*APIError)
		assert.True(t, ok)
		assert.Equal(t, "NOT_FOUND", apiErr.Code)
	}
}

func TestCreateAnnotationValidation(t *testing.T) {
	tests := []struct {
		name    string
		request annotationRequest
		errCode string
	}{
		{
			name:    "missing name",
			request: annotationRequest{Name: ""},
			errCode: "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			h, _ := newTestHandler()

			req := jsonRequest(http.MethodPost, "/api/annotations", tt.request)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := h.HandleCreateAnnotation(c)
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

func TestAnnotationGeoJSON(t *testing.T) {
	e := echo.New()
	h, store := newTestHandler()

	a, err := store.Create("mixed", "", []geometry.Element{
		{ID: "p1", Type: geometry.TypePoint, Center: []float64{1, 2, 0}},
		{ID: "bad", Type: "squiggle"},
		{ID: "c1", Type: geometry.TypeCircle, Center: []float64{0, 0, 0}, Radius: 5},
	})
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/annotations/"+a.ID+"/geojson", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(a.ID)

	if assert.NoError(t, h.HandleAnnotationGeoJSON(c)) {
		var fc geometry.FeatureCollection
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fc))
		assert.Equal(t, "FeatureCollection", fc.Type)
		// The unknown element is dropped, valid ones keep their order.
		if assert.Len(t, fc.Features, 2) {
			assert.Equal(t, "p1", fc.Features[0].ID)
			assert.Equal(t, "c1", fc.Features[1].ID)
		}
	}
}

func TestAnnotationGeoJSONMsgpack(t *testing.T) {
	e := echo.New()
	h, store := newTestHandler()

	a, err := store.Create("points", "", []geometry.Element{
		{Type: geometry.TypePoint, Center: []float64{3, 4, 0}},
	})
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/annotations/"+a.ID+"/geojson/msgpack", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(a.ID)

	if assert.NoError(t, h.HandleAnnotationGeoJSONMsgpack(c)) {
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/msgpack", rec.Header().Get(echo.HeaderContentType))

		var decoded map[string]any
		assert.NoError(t, msgpack.Unmarshal(rec.Body.Bytes(), &decoded))
	}
}
