package geometry

import "math"

// ToGeometry converts a canonical element to portable GeoJSON-style
// geometry. Returns *UnknownTypeError when the element type has no handler.
//
// Rotation handling differs by type and both behaviors are preserved as
// observed in the upstream annotation schema: rectangle and ellipse apply
// their rotation to the four corner points before emitting Polygon
// coordinates, while circle emits its axis-aligned bounding box and never
// rotates.
func ToGeometry(el Element) (Geometry, error) {
	switch el.Type {
	case TypePoint:
		return Geometry{
			Type:           "Point",
			Coordinates:    dropZ(el.Center),
			AnnotationType: TypePoint,
		}, nil

	case TypeRectangle, TypeEllipse:
		ring := closeRing(rotatedCorners(el.Center, el.Width, el.Height, el.Rotation))
		return Geometry{
			Type:           "Polygon",
			Coordinates:    [][][]float64{ring},
			AnnotationType: el.Type,
		}, nil

	case TypeCircle:
		ring := closeRing(rotatedCorners(el.Center, 2*el.Radius, 2*el.Radius, 0))
		return Geometry{
			Type:           "Polygon",
			Coordinates:    [][][]float64{ring},
			AnnotationType: TypeCircle,
		}, nil

	case TypePolyline:
		if !el.Closed {
			return Geometry{
				Type:           "LineString",
				Coordinates:    dropZAll(el.Points),
				AnnotationType: TypePolyline,
			}, nil
		}
		rings := [][][]float64{closeRing(dropZAll(el.Points))}
		for _, hole := range el.Holes {
			rings = append(rings, closeRing(dropZAll(hole)))
		}
		return Geometry{
			Type:           "Polygon",
			Coordinates:    rings,
			AnnotationType: TypePolyline,
		}, nil

	default:
		return Geometry{}, &UnknownTypeError{Type: string(el.Type)}
	}
}

// ToFeature converts one element to a GeoJSON Feature with merged style
// properties. Override properties take precedence over the element's own
// style, which takes precedence over the type's registered defaults.
func ToFeature(el Element, overrides map[string]any) (Feature, error) {
	geom, err := ToGeometry(el)
	if err != nil {
		return Feature{}, err
	}
	return Feature{
		Type:       "Feature",
		ID:         el.ID,
		Geometry:   geom,
		Properties: mergedProperties(el, overrides),
	}, nil
}

// ConvertAll converts a batch of canonical elements to a FeatureCollection.
// Elements that fail to convert are dropped so a partially corrupt
// annotation document still yields its valid features, in original order.
func ConvertAll(elements []Element, overrides map[string]any) FeatureCollection {
	fc := FeatureCollection{
		Type:     "FeatureCollection",
		Features: []Feature{},
	}
	for _, el := range elements {
		feature, err := ToFeature(el, overrides)
		if err != nil {
			continue
		}
		fc.Features = append(fc.Features, feature)
	}
	return fc
}

// rotatedCorners returns the four corners of a center/width/height box
// rotated counter-clockwise about its center. Corner order matches the
// winding FromNative expects: c1-c0 is the left edge (height), c2-c1 the
// top edge (width).
func rotatedCorners(center []float64, width, height, rotation float64) [][]float64 {
	cx, cy := centerXY(center)
	local := [4][2]float64{
		{-width / 2, -height / 2},
		{-width / 2, height / 2},
		{width / 2, height / 2},
		{width / 2, -height / 2},
	}

	sin, cos := math.Sin(rotation), math.Cos(rotation)
	corners := make([][]float64, 4)
	for i, l := range local {
		corners[i] = []float64{
			cx + l[0]*cos - l[1]*sin,
			cy + l[0]*sin + l[1]*cos,
		}
	}
	return corners
}

func centerXY(center []float64) (float64, float64) {
	var x, y float64
	if len(center) > 0 {
		x = center[0]
	}
	if len(center) > 1 {
		y = center[1]
	}
	return x, y
}

// dropZ reduces a coordinate to its [x, y] pair.
func dropZ(coord []float64) []float64 {
	x, y := 0.0, 0.0
	if len(coord) > 0 {
		x = coord[0]
	}
	if len(coord) > 1 {
		y = coord[1]
	}
	return []float64{x, y}
}

func dropZAll(points [][]float64) [][]float64 {
	out := make([][]float64, len(points))
	for i, p := range points {
		out[i] = dropZ(p)
	}
	return out
}

// closeRing duplicates the first point as the last to close the ring, the
// GeoJSON Polygon convention. Closure is an output-time convention only;
// canonical points never repeat the first point.
func closeRing(points [][]float64) [][]float64 {
	if len(points) == 0 {
		return points
	}
	return append(points, points[0])
}
