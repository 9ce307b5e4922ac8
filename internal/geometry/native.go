package geometry

// Native shape type names as exposed by the map-rendering library.
const (
	NativePoint     = "point"
	NativeRectangle = "rectangle"
	NativePolygon   = "polygon"
	NativeLine      = "line"
)

// NativeShape is the only view of the map-rendering library this package
// depends on: a type name, a coordinate list, and keyed style options.
type NativeShape interface {
	Type() string
	Coordinates() [][]float64
	Style(name string) (any, bool)
}

// Shape is a concrete NativeShape, used when handing converted elements
// back to a rendering surface and as a test fixture.
type Shape struct {
	Kind   string
	Coords [][]float64
	Styles map[string]any
}

func (s *Shape) Type() string { return s.Kind }

func (s *Shape) Coordinates() [][]float64 { return s.Coords }

func (s *Shape) Style(name string) (any, bool) {
	v, ok := s.Styles[name]
	return v, ok
}

// ToNative converts a canonical element back to a native shape for
// redrawing. Ellipses and circles are rendered as rectangle shapes (the
// rendering layer styles them back into curves); rotation is baked into the
// corners for rectangles and ellipses, and a circle always produces an
// axis-aligned square of side 2*radius.
func ToNative(el Element) (*Shape, error) {
	styles := nativeStyles(el)

	switch el.Type {
	case TypePoint:
		return &Shape{Kind: NativePoint, Coords: [][]float64{dropZ(el.Center)}, Styles: styles}, nil

	case TypeRectangle, TypeEllipse:
		corners := rotatedCorners(el.Center, el.Width, el.Height, el.Rotation)
		return &Shape{Kind: NativeRectangle, Coords: corners, Styles: styles}, nil

	case TypeCircle:
		corners := rotatedCorners(el.Center, 2*el.Radius, 2*el.Radius, 0)
		return &Shape{Kind: NativeRectangle, Coords: corners, Styles: styles}, nil

	case TypePolyline:
		kind := NativeLine
		if el.Closed {
			kind = NativePolygon
		}
		return &Shape{Kind: kind, Coords: dropZAll(el.Points), Styles: styles}, nil

	default:
		return nil, &UnknownTypeError{Type: string(el.Type)}
	}
}

// nativeStyles splits the element's baked-alpha color strings back into the
// flag/color/opacity triples the map library expects.
func nativeStyles(el Element) map[string]any {
	styles := make(map[string]any)

	if fill, err := ParseColor(el.FillColor); err == nil {
		styles["fill"] = fill.A > 0
		styles["fillColor"] = Color{R: fill.R, G: fill.G, B: fill.B, A: 1}.String()
		styles["fillOpacity"] = fill.A
	}
	if stroke, err := ParseColor(el.LineColor); err == nil {
		styles["stroke"] = stroke.A > 0
		styles["strokeColor"] = Color{R: stroke.R, G: stroke.G, B: stroke.B, A: 1}.String()
		styles["strokeOpacity"] = stroke.A
	}
	if el.LineWidth != 0 {
		styles["strokeWidth"] = el.LineWidth
	}
	return styles
}
