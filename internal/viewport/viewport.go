// Package viewport owns the mapping between image-pixel and screen-pixel
// coordinates for a single rendering surface.
package viewport

import "math"

// Event identifies the kind of change a listener is notified about.
type Event int

const (
	// EventScale fires when the scale changes, always before the
	// EventTranslate of the same update.
	EventScale Event = iota
	// EventTranslate fires after the position maps have been recomputed.
	EventTranslate
)

// Listener receives change notifications from a Viewport.
type Listener func(Event)

// State is a partial state update. Nil fields are left unchanged.
type State struct {
	Left   *float64
	Top    *float64
	Scale  *float64
	Width  *float64
	Height *float64
}

// Bounds is the visible region in image-pixel space.
type Bounds struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// Viewport maps image-pixel coordinates to screen-pixel coordinates, driven
// by pan (left, top), zoom (scale, in image pixels per screen pixel) and the
// screen size (width, height).
//
// Inputs are not validated; degenerate values propagate silently into
// degenerate transforms. Callers are trusted.
type Viewport struct {
	left   float64
	top    float64
	scale  float64
	width  float64
	height float64

	// Derived, recomputed on every state change.
	x          AffineMap
	y          AffineMap
	imageScale AffineMap
	pixelScale AffineMap

	listeners map[int]Listener
	order     []int
	nextID    int
}

// New creates a viewport for a screen of the given size, at scale 1 with the
// image origin in the top-left corner.
func New(width, height float64) *Viewport {
	v := &Viewport{
		scale:     1,
		width:     width,
		height:    height,
		listeners: make(map[int]Listener),
	}
	v.recompute()
	return v
}

// OnChange registers a listener and returns an id usable with Off. Listeners
// are invoked in registration order. A listener may itself call SetState;
// events from such a nested update are delivered depth-first, before the
// outer dispatch continues.
func (v *Viewport) OnChange(fn Listener) int {
	id := v.nextID
	v.nextID++
	v.listeners[id] = fn
	v.order = append(v.order, id)
	return id
}

// Off removes a previously registered listener.
func (v *Viewport) Off(id int) {
	if _, ok := v.listeners[id]; !ok {
		return
	}
	delete(v.listeners, id)
	for i, o := range v.order {
		if o == id {
			v.order = append(v.order[:i], v.order[i+1:]...)
			break
		}
	}
}

func (v *Viewport) emit(ev Event) {
	// Iterate over a snapshot so listeners may subscribe, unsubscribe or
	// trigger nested updates without corrupting the dispatch.
	ids := make([]int, len(v.order))
	copy(ids, v.order)
	for _, id := range ids {
		if fn, ok := v.listeners[id]; ok {
			fn(ev)
		}
	}
}

// SetState applies a partial state update. When the scale is among the
// updated fields the change is applied as a zoom about the viewport center:
// the pan is shifted by (oldScale-newScale)/2 of the screen size so the
// midpoint of the visible region is preserved. The scale event is emitted
// strictly before the position maps are recomputed and the translate event
// fires; combined pan+zoom consumers rely on that ordering.
func (v *Viewport) SetState(s State) {
	if s.Left != nil {
		v.left = *s.Left
	}
	if s.Top != nil {
		v.top = *s.Top
	}
	if s.Width != nil {
		v.width = *s.Width
	}
	if s.Height != nil {
		v.height = *s.Height
	}
	if s.Scale != nil {
		delta := (v.scale - *s.Scale) / 2
		v.left += delta * v.width
		v.top += delta * v.height
		v.scale = *s.Scale
		v.emit(EventScale)
	}
	v.recompute()
	v.emit(EventTranslate)
}

func (v *Viewport) recompute() {
	b := v.Bounds()
	v.x = AffineMap{
		Domain: [2]float64{b.Left, b.Right},
		Range:  [2]float64{0, v.width},
	}
	v.y = AffineMap{
		Domain: [2]float64{b.Top, b.Bottom},
		Range:  [2]float64{0, v.height},
	}
	v.imageScale = AffineMap{
		Domain: [2]float64{0, 1},
		Range:  [2]float64{0, v.scale},
	}
	// Reserved for non-1:1 device pixel ratios.
	v.pixelScale = AffineMap{
		Domain: [2]float64{0, 1},
		Range:  [2]float64{0, 1},
	}
}

// Bounds returns the visible region in image-pixel space.
func (v *Viewport) Bounds() Bounds {
	return Bounds{
		Left:   v.left,
		Top:    v.top,
		Right:  v.left + v.scale*v.width,
		Bottom: v.top + v.scale*v.height,
	}
}

// ToScreen maps an image-space point to screen pixels.
func (v *Viewport) ToScreen(x, y float64) (float64, float64) {
	return v.x.Apply(x), v.y.Apply(y)
}

// ToImage maps a screen-space point back to image pixels.
func (v *Viewport) ToImage(x, y float64) (float64, float64) {
	return v.x.Invert(x), v.y.Invert(y)
}

// ImageLengthToScreen maps an image-space length (radius, stroke width) to a
// screen-space length. Shape renderers use the inverse of the zero-preserving
// image scale map here, which for a linear zero-origin scale is len/scale.
// This direction is intentional; do not flip it to a forward Apply.
func (v *Viewport) ImageLengthToScreen(l float64) float64 {
	return v.imageScale.Invert(l)
}

// PixelLengthToScreen maps a screen length through the pixel scale. Identity
// until non-1:1 pixel ratios are supported.
func (v *Viewport) PixelLengthToScreen(l float64) float64 {
	return v.pixelScale.Apply(l)
}

// Center returns the image-space midpoint of the current bounds.
func (v *Viewport) Center() (float64, float64) {
	b := v.Bounds()
	return (b.Left + b.Right) / 2, (b.Top + b.Bottom) / 2
}

// SetCenter repositions the pan so the given image-space point becomes the
// center of the visible region at the current scale.
func (v *Viewport) SetCenter(x, y float64) {
	left := x - v.scale*v.width/2
	top := y - v.scale*v.height/2
	v.SetState(State{Left: &left, Top: &top})
}

// Zoom returns log2 of the current scale. Note the sign convention: a higher
// level means a larger scale, i.e. more image per screen pixel (visually
// zoomed out). Downstream callers depend on this; it is not a bug.
func (v *Viewport) Zoom() float64 {
	return math.Log2(v.scale)
}

// SetZoom sets the scale to 2^level, zooming about the viewport center.
func (v *Viewport) SetZoom(level float64) {
	scale := math.Pow(2, level)
	v.SetState(State{Scale: &scale})
}

// Left returns the pan offset along x in image pixels.
func (v *Viewport) Left() float64 { return v.left }

// Top returns the pan offset along y in image pixels.
func (v *Viewport) Top() float64 { return v.top }

// Scale returns the current scale in image pixels per screen pixel.
func (v *Viewport) Scale() float64 { return v.scale }

// Width returns the screen width in pixels.
func (v *Viewport) Width() float64 { return v.width }

// Height returns the screen height in pixels.
func (v *Viewport) Height() float64 { return v.height }
