// Package testutil provides in-memory test doubles.
package testutil

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/wsi-annotator/backend/internal/geometry"
	"github.com/wsi-annotator/backend/internal/models"
	"github.com/wsi-annotator/backend/internal/storage"
)

// MockStore implements storage.Store in memory for handler tests.
type MockStore struct {
	mu          sync.RWMutex
	annotations map[string]*models.Annotation
	nextID      int

	// FailNext forces the next call to fail, for error-path tests.
	FailNext bool
}

// NewMockStore creates an empty mock store.
func NewMockStore() *MockStore {
	return &MockStore{annotations: make(map[string]*models.Annotation)}
}

func (m *MockStore) failIfRequested() error {
	if m.FailNext {
		m.FailNext = false
		return fmt.Errorf("mock store failure")
	}
	return nil
}

func (m *MockStore) Create(name, description string, elements []geometry.Element) (*models.Annotation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.failIfRequested(); err != nil {
		return nil, err
	}
	if elements == nil {
		elements = []geometry.Element{}
	}

	m.nextID++
	now := time.Now().UTC()
	a := &models.Annotation{
		ID:          fmt.Sprintf("mock-%d", m.nextID),
		Name:        name,
		Description: description,
		Elements:    elements,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.annotations[a.ID] = a
	return a, nil
}

func (m *MockStore) Get(id string) (*models.Annotation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.annotations[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return a, nil
}

func (m *MockStore) List(limit int) ([]*models.AnnotationInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}

	list := []*models.AnnotationInfo{}
	for _, a := range m.annotations {
		list = append(list, &models.AnnotationInfo{
			ID:           a.ID,
			Name:         a.Name,
			Description:  a.Description,
			ElementCount: len(a.Elements),
			UpdatedAt:    a.UpdatedAt,
		})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].UpdatedAt.After(list[j].UpdatedAt) })
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (m *MockStore) Update(id, name, description string, elements []geometry.Element) (*models.Annotation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.annotations[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if elements == nil {
		elements = []geometry.Element{}
	}
	a.Name = name
	a.Description = description
	a.Elements = elements
	a.UpdatedAt = time.Now().UTC()
	return a, nil
}

func (m *MockStore) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.annotations[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.annotations, id)
	return nil
}

func (m *MockStore) Close() error { return nil }
