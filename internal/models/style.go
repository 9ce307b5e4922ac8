package models

// StyleRules defines the YAML document for per-type annotation style
// defaults. Keys of Defaults are element type names (point, rectangle,
// ellipse, circle, polyline).
type StyleRules struct {
	Defaults map[string]StyleRule `json:"defaults" yaml:"defaults"`
}

// StyleRule holds the overridable default style properties for one type.
type StyleRule struct {
	FillColor string  `json:"fillColor,omitempty" yaml:"fill_color,omitempty"`
	LineColor string  `json:"lineColor,omitempty" yaml:"line_color,omitempty"`
	LineWidth float64 `json:"lineWidth,omitempty" yaml:"line_width,omitempty"`
}

// Properties converts a rule into the property map merged by the converter.
func (r StyleRule) Properties() map[string]any {
	props := make(map[string]any)
	if r.FillColor != "" {
		props["fillColor"] = r.FillColor
	}
	if r.LineColor != "" {
		props["lineColor"] = r.LineColor
	}
	if r.LineWidth != 0 {
		props["lineWidth"] = r.LineWidth
	}
	return props
}
