// Package session manages viewing surfaces: one viewport per rendering
// surface, created on demand and cleaned up when idle.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wsi-annotator/backend/internal/models"
	"github.com/wsi-annotator/backend/internal/viewport"
)

// MaxSurfaces limits concurrent surfaces to prevent unbounded growth.
const MaxSurfaces = 64

// KeepAliveWindow is how long a recently accessed surface is protected from
// cleanup.
const KeepAliveWindow = 5 * time.Minute

type surfaceState struct {
	surface      *models.Surface
	viewport     *viewport.Viewport
	lastAccessed time.Time
}

// Manager owns all active viewing surfaces. The viewport itself is
// single-threaded by contract; the manager's lock serializes all access so
// concurrent HTTP handlers never touch a viewport simultaneously.
type Manager struct {
	mu       sync.Mutex
	surfaces map[string]*surfaceState
}

// NewManager creates an empty surface manager.
func NewManager() *Manager {
	return &Manager{surfaces: make(map[string]*surfaceState)}
}

// Create registers a new surface with the given screen size and returns its
// metadata and initial viewport state.
func (m *Manager) Create(name string, width, height float64) (*models.Surface, models.SurfaceState) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.evictOldestLocked()

	s := &models.Surface{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	state := &surfaceState{
		surface:      s,
		viewport:     viewport.New(width, height),
		lastAccessed: time.Now(),
	}
	m.surfaces[s.ID] = state

	return s, snapshot(state.viewport)
}

// evictOldestLocked drops the least recently accessed surfaces when at
// capacity. Caller holds the lock.
func (m *Manager) evictOldestLocked() {
	for len(m.surfaces) >= MaxSurfaces {
		var oldestID string
		var oldest time.Time
		for id, state := range m.surfaces {
			if oldestID == "" || state.lastAccessed.Before(oldest) {
				oldestID = id
				oldest = state.lastAccessed
			}
		}
		delete(m.surfaces, oldestID)
		fmt.Printf("[Surfaces] Evicted surface %s to stay under limit\n", shortID(oldestID))
	}
}

// Get returns a surface and its current viewport state.
func (m *Manager) Get(id string) (*models.Surface, models.SurfaceState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.surfaces[id]
	if !ok {
		return nil, models.SurfaceState{}, false
	}
	state.lastAccessed = time.Now()
	return state.surface, snapshot(state.viewport), true
}

// List returns all surfaces.
func (m *Manager) List() []*models.Surface {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := make([]*models.Surface, 0, len(m.surfaces))
	for _, state := range m.surfaces {
		list = append(list, state.surface)
	}
	return list
}

// SetState applies a partial viewport update and returns the new state.
func (m *Manager) SetState(id string, s viewport.State) (models.SurfaceState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.surfaces[id]
	if !ok {
		return models.SurfaceState{}, false
	}
	state.lastAccessed = time.Now()
	state.viewport.SetState(s)
	return snapshot(state.viewport), true
}

// Bounds returns the visible image-space region of a surface.
func (m *Manager) Bounds(id string) (viewport.Bounds, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.surfaces[id]
	if !ok {
		return viewport.Bounds{}, false
	}
	state.lastAccessed = time.Now()
	return state.viewport.Bounds(), true
}

// Project maps an image-space point to screen pixels on a surface.
func (m *Manager) Project(id string, x, y float64) (float64, float64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.surfaces[id]
	if !ok {
		return 0, 0, false
	}
	state.lastAccessed = time.Now()
	sx, sy := state.viewport.ToScreen(x, y)
	return sx, sy, true
}

// SetCenter recenters the surface on an image-space point.
func (m *Manager) SetCenter(id string, x, y float64) (models.SurfaceState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.surfaces[id]
	if !ok {
		return models.SurfaceState{}, false
	}
	state.lastAccessed = time.Now()
	state.viewport.SetCenter(x, y)
	return snapshot(state.viewport), true
}

// SetZoom sets the surface's log2 zoom level.
func (m *Manager) SetZoom(id string, level float64) (models.SurfaceState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.surfaces[id]
	if !ok {
		return models.SurfaceState{}, false
	}
	state.lastAccessed = time.Now()
	state.viewport.SetZoom(level)
	return snapshot(state.viewport), true
}

// Subscribe registers a viewport change listener on a surface. The returned
// cancel function unregisters it. Listeners run while the manager lock is
// held and must not block.
func (m *Manager) Subscribe(id string, fn viewport.Listener) (func(), bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.surfaces[id]
	if !ok {
		return nil, false
	}
	listenerID := state.viewport.OnChange(fn)
	vp := state.viewport
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		vp.Off(listenerID)
	}, true
}

// Touch refreshes a surface's keep-alive timestamp.
func (m *Manager) Touch(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.surfaces[id]
	if !ok {
		return false
	}
	state.lastAccessed = time.Now()
	return true
}

// Remove deletes a surface.
func (m *Manager) Remove(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.surfaces[id]; !ok {
		return false
	}
	delete(m.surfaces, id)
	return true
}

// CleanupOld removes surfaces idle for longer than maxAge, keeping anything
// accessed within the keep-alive window.
func (m *Manager) CleanupOld(maxAge time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	keepAlive := time.Now().Add(-KeepAliveWindow)

	for id, state := range m.surfaces {
		if state.lastAccessed.After(keepAlive) {
			continue
		}
		if state.lastAccessed.Before(cutoff) {
			delete(m.surfaces, id)
			fmt.Printf("[Surfaces] Cleaned up idle surface %s (last accessed %s ago)\n",
				shortID(id), time.Since(state.lastAccessed).Round(time.Second))
		}
	}
}

func snapshot(v *viewport.Viewport) models.SurfaceState {
	return models.SurfaceState{
		Left:   v.Left(),
		Top:    v.Top(),
		Scale:  v.Scale(),
		Width:  v.Width(),
		Height: v.Height(),
		Zoom:   v.Zoom(),
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
