package models

import "time"

// Surface describes one viewing surface: a screen-sized window onto a slide
// image, with its own viewport state.
type Surface struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// SurfaceState is the serializable snapshot of a surface's viewport.
type SurfaceState struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Scale  float64 `json:"scale"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Zoom   float64 `json:"zoom"`
}
