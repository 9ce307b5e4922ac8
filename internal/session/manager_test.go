package session

import (
	"testing"
	"time"

	"github.com/wsi-annotator/backend/internal/viewport"
)

func TestCreateAndGet(t *testing.T) {
	m := NewManager()

	s, state := m.Create("slide-1", 800, 600)
	if s.ID == "" {
		t.Fatal("Expected a surface id")
	}
	if state.Scale != 1 || state.Width != 800 || state.Height != 600 {
		t.Errorf("Expected initial state scale=1 800x600, got %+v", state)
	}

	got, state2, ok := m.Get(s.ID)
	if !ok {
		t.Fatal("Expected surface to exist")
	}
	if got.Name != "slide-1" {
		t.Errorf("Expected name slide-1, got %s", got.Name)
	}
	if state2 != state {
		t.Errorf("Expected unchanged state, got %+v", state2)
	}
}

func TestSetStateAndBounds(t *testing.T) {
	m := NewManager()
	s, _ := m.Create("", 100, 50)

	scale := 2.0
	state, ok := m.SetState(s.ID, viewport.State{Scale: &scale})
	if !ok {
		t.Fatal("Expected SetState to succeed")
	}
	if state.Left != -50 || state.Top != -25 {
		t.Errorf("Expected scale-about-center pan (-50,-25), got (%v,%v)", state.Left, state.Top)
	}

	b, ok := m.Bounds(s.ID)
	if !ok {
		t.Fatal("Expected Bounds to succeed")
	}
	if b.Right != 150 || b.Bottom != 75 {
		t.Errorf("Expected bounds right=150 bottom=75, got %+v", b)
	}
}

func TestProject(t *testing.T) {
	m := NewManager()
	s, _ := m.Create("", 100, 100)

	sx, sy, ok := m.Project(s.ID, 50, 50)
	if !ok {
		t.Fatal("Expected Project to succeed")
	}
	if sx != 50 || sy != 50 {
		t.Errorf("Expected identity projection at scale 1, got (%v,%v)", sx, sy)
	}

	if _, _, ok := m.Project("missing", 0, 0); ok {
		t.Error("Expected Project on missing surface to fail")
	}
}

func TestSubscribeReceivesEvents(t *testing.T) {
	m := NewManager()
	s, _ := m.Create("", 100, 100)

	var events []viewport.Event
	cancel, ok := m.Subscribe(s.ID, func(ev viewport.Event) { events = append(events, ev) })
	if !ok {
		t.Fatal("Expected Subscribe to succeed")
	}

	scale := 4.0
	m.SetState(s.ID, viewport.State{Scale: &scale})
	if len(events) != 2 || events[0] != viewport.EventScale || events[1] != viewport.EventTranslate {
		t.Fatalf("Expected scale then translate, got %v", events)
	}

	cancel()
	m.SetState(s.ID, viewport.State{Scale: &scale})
	if len(events) != 2 {
		t.Errorf("Expected no events after cancel, got %d", len(events))
	}
}

func TestRemoveAndCleanup(t *testing.T) {
	m := NewManager()
	s, _ := m.Create("", 10, 10)

	if !m.Remove(s.ID) {
		t.Fatal("Expected Remove to succeed")
	}
	if m.Remove(s.ID) {
		t.Error("Expected second Remove to fail")
	}

	s2, _ := m.Create("", 10, 10)
	// Backdate the surface past both the keep-alive window and max age.
	m.surfaces[s2.ID].lastAccessed = time.Now().Add(-time.Hour)
	m.CleanupOld(30 * time.Minute)

	if _, _, ok := m.Get(s2.ID); ok {
		t.Error("Expected aged surface to be cleaned up")
	}
}
