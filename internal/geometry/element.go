// Package geometry converts between native map-library shapes, canonical
// annotation elements, and portable GeoJSON-style geometry. All conversions
// are pure functions; no shared mutable state beyond the style-default
// registry and no I/O.
package geometry

import "fmt"

// ElementType identifies the shape kind of a canonical annotation element.
type ElementType string

const (
	TypePoint     ElementType = "point"
	TypeRectangle ElementType = "rectangle"
	TypeEllipse   ElementType = "ellipse"
	TypeCircle    ElementType = "circle"
	TypePolyline  ElementType = "polyline"
)

// Element is the persisted, map-library-agnostic representation of one
// annotation shape. Which fields are meaningful depends on Type:
//
//	point:     Center
//	rectangle: Center, Width, Height, Rotation, optional Normal
//	ellipse:   same fields as rectangle
//	circle:    Center, Radius
//	polyline:  Points, Closed, optional Holes (closed only)
//
// Rotation is in radians, counter-clockwise from the positive x-axis of the
// top edge. Coordinates are [x, y, z] triples; z is carried through storage
// and dropped when emitting portable geometry.
type Element struct {
	ID   string      `json:"id,omitempty"`
	Type ElementType `json:"type"`

	Center   []float64 `json:"center,omitempty"`
	Width    float64   `json:"width,omitempty"`
	Height   float64   `json:"height,omitempty"`
	Rotation float64   `json:"rotation,omitempty"`
	Normal   []float64 `json:"normal,omitempty"`
	Radius   float64   `json:"radius,omitempty"`

	Points [][]float64   `json:"points,omitempty"`
	Closed bool          `json:"closed,omitempty"`
	Holes  [][][]float64 `json:"holes,omitempty"`

	// Style. Colors are CSS color strings; a disabled fill or stroke is
	// encoded as a fully transparent color, never by omitting the field,
	// so elements merge with style defaults unambiguously.
	FillColor string  `json:"fillColor,omitempty"`
	LineColor string  `json:"lineColor,omitempty"`
	LineWidth float64 `json:"lineWidth,omitempty"`
	Label     string  `json:"label,omitempty"`
}

// Geometry is a portable GeoJSON-style representation of one element.
// Coordinates holds []float64 for Point, [][]float64 for LineString and
// [][][]float64 for Polygon.
type Geometry struct {
	Type           string      `json:"type"`
	Coordinates    any         `json:"coordinates"`
	AnnotationType ElementType `json:"annotationType"`
}

// Feature pairs a geometry with its merged style properties.
type Feature struct {
	Type       string         `json:"type"`
	ID         string         `json:"id,omitempty"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// FeatureCollection is the batch conversion result.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// UnknownTypeError is returned by single-element conversions when the shape
// or element type has no registered handler. Batch conversions catch it and
// drop the offending entry instead.
type UnknownTypeError struct {
	Type string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown annotation type %q", e.Type)
}
