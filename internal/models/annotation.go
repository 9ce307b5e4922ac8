// Package models contains domain types for the slide annotation backend.
package models

import (
	"time"

	"github.com/wsi-annotator/backend/internal/geometry"
)

// Annotation is a persisted annotation document: a named collection of
// canonical elements attached to one slide image.
type Annotation struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Elements    []geometry.Element `json:"elements"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// AnnotationInfo is the list-view projection of an annotation document.
type AnnotationInfo struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	ElementCount int       `json:"elementCount"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
