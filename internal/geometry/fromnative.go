package geometry

import (
	"fmt"
	"math"
)

// FromNative converts a native map-library shape into a canonical element.
// Returns *UnknownTypeError when the shape type has no registered handler.
func FromNative(shape NativeShape) (Element, error) {
	el := Element{
		FillColor: encodeStyleColor(
			styleBool(shape, "fill", true),
			styleString(shape, "fillColor", "#000000"),
			styleFloat(shape, "fillOpacity", 1),
		),
		LineColor: encodeStyleColor(
			styleBool(shape, "stroke", true),
			styleString(shape, "strokeColor", "#000000"),
			styleFloat(shape, "strokeOpacity", 1),
		),
		LineWidth: styleFloat(shape, "strokeWidth", 2),
	}

	coords := shape.Coordinates()

	switch shape.Type() {
	case NativePoint:
		if len(coords) == 0 {
			return Element{}, fmt.Errorf("point shape has no coordinates")
		}
		el.Type = TypePoint
		el.Center = coordinate3(coords[0])

	case NativeRectangle:
		if len(coords) != 4 {
			return Element{}, fmt.Errorf("rectangle shape has %d corners, want 4", len(coords))
		}
		// The corner winding is load-bearing: c1-c0 is the left edge,
		// c2-c1 the top edge. A different order produces a wrong but
		// plausible-looking rotation, not an error.
		topX := coords[2][0] - coords[1][0]
		topY := coords[2][1] - coords[1][1]
		leftX := coords[1][0] - coords[0][0]
		leftY := coords[1][1] - coords[0][1]

		el.Type = TypeRectangle
		el.Rotation = math.Atan2(topY, topX)
		el.Width = math.Hypot(topX, topY)
		el.Height = math.Hypot(leftX, leftY)
		el.Center = meanCoordinate(coords)

	case NativePolygon:
		el.Type = TypePolyline
		el.Closed = true
		el.Points = stripClosingPoint(coordinates3(coords))

	case NativeLine:
		el.Type = TypePolyline
		el.Closed = false
		el.Points = coordinates3(coords)

	default:
		return Element{}, &UnknownTypeError{Type: shape.Type()}
	}

	return el, nil
}

// ConvertShapes converts a batch of native shapes to a FeatureCollection.
// Shapes that fail to convert are dropped; valid shapes keep their order.
func ConvertShapes(shapes []NativeShape) FeatureCollection {
	fc := FeatureCollection{
		Type:     "FeatureCollection",
		Features: []Feature{},
	}
	for _, shape := range shapes {
		el, err := FromNative(shape)
		if err != nil {
			continue
		}
		feature, err := ToFeature(el, nil)
		if err != nil {
			continue
		}
		fc.Features = append(fc.Features, feature)
	}
	return fc
}

func styleBool(shape NativeShape, name string, def bool) bool {
	if v, ok := shape.Style(name); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

func styleString(shape NativeShape, name string, def string) string {
	if v, ok := shape.Style(name); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

func styleFloat(shape NativeShape, name string, def float64) float64 {
	if v, ok := shape.Style(name); ok {
		switch n := v.(type) {
		case float64:
			return n
		case int:
			return float64(n)
		}
	}
	return def
}

// coordinate3 pads a coordinate to an [x, y, z] triple.
func coordinate3(coord []float64) []float64 {
	out := []float64{0, 0, 0}
	copy(out, coord)
	return out
}

func coordinates3(coords [][]float64) [][]float64 {
	out := make([][]float64, len(coords))
	for i, c := range coords {
		out[i] = coordinate3(c)
	}
	return out
}

func meanCoordinate(coords [][]float64) []float64 {
	mean := []float64{0, 0, 0}
	if len(coords) == 0 {
		return mean
	}
	for _, c := range coords {
		p := coordinate3(c)
		mean[0] += p[0]
		mean[1] += p[1]
		mean[2] += p[2]
	}
	n := float64(len(coords))
	mean[0] /= n
	mean[1] /= n
	mean[2] /= n
	return mean
}

// stripClosingPoint removes a duplicated closing point on input. Canonical
// points never repeat the first point; ring closure is re-applied when
// emitting portable geometry.
func stripClosingPoint(points [][]float64) [][]float64 {
	if len(points) < 2 {
		return points
	}
	first, last := points[0], points[len(points)-1]
	if first[0] == last[0] && first[1] == last[1] {
		return points[:len(points)-1]
	}
	return points
}
