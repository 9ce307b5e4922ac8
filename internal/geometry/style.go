package geometry

import "sync"

// Registered per-type style defaults. Updatable at runtime via the style
// configuration endpoint; guarded for concurrent readers.
var (
	styleMu       sync.RWMutex
	defaultStyles = map[ElementType]map[string]any{
		TypePoint:     newDefaultStyle(),
		TypeRectangle: newDefaultStyle(),
		TypeEllipse:   newDefaultStyle(),
		TypeCircle:    newDefaultStyle(),
		TypePolyline:  newDefaultStyle(),
	}
)

func newDefaultStyle() map[string]any {
	return map[string]any{
		"fillColor": "rgba(0,0,0,0)",
		"lineColor": "rgb(0,0,0)",
		"lineWidth": 2.0,
	}
}

// DefaultStyle returns a copy of the registered defaults for a type.
func DefaultStyle(t ElementType) map[string]any {
	styleMu.RLock()
	defer styleMu.RUnlock()

	out := make(map[string]any)
	for k, v := range defaultStyles[t] {
		out[k] = v
	}
	return out
}

// SetDefaultStyle merges props into the registered defaults for a type.
// Unknown types are ignored.
func SetDefaultStyle(t ElementType, props map[string]any) {
	styleMu.Lock()
	defer styleMu.Unlock()

	reg, ok := defaultStyles[t]
	if !ok {
		return
	}
	for k, v := range props {
		reg[k] = v
	}
}

// ResetDefaultStyles restores the built-in defaults for every type.
func ResetDefaultStyles() {
	styleMu.Lock()
	defer styleMu.Unlock()

	for t := range defaultStyles {
		defaultStyles[t] = newDefaultStyle()
	}
}

// mergedProperties builds a feature property map with precedence:
// per-call overrides > the element's own style fields > registered defaults.
func mergedProperties(el Element, overrides map[string]any) map[string]any {
	props := DefaultStyle(el.Type)

	if el.FillColor != "" {
		props["fillColor"] = el.FillColor
	}
	if el.LineColor != "" {
		props["lineColor"] = el.LineColor
	}
	if el.LineWidth != 0 {
		props["lineWidth"] = el.LineWidth
	}
	if el.Label != "" {
		props["label"] = el.Label
	}

	for k, v := range overrides {
		props[k] = v
	}
	return props
}
