// Package storage persists annotation documents.
package storage

import (
	"errors"

	"github.com/wsi-annotator/backend/internal/geometry"
	"github.com/wsi-annotator/backend/internal/models"
)

// ErrNotFound is returned when no annotation exists for the given id.
var ErrNotFound = errors.New("annotation not found")

// Store defines the interface for annotation document storage.
type Store interface {
	Create(name, description string, elements []geometry.Element) (*models.Annotation, error)
	Get(id string) (*models.Annotation, error)
	List(limit int) ([]*models.AnnotationInfo, error)
	Update(id, name, description string, elements []geometry.Element) (*models.Annotation, error)
	Delete(id string) error
	Close() error
}
