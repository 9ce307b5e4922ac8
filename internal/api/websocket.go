// websocket.go - Viewport event streaming over WebSocket
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/wsi-annotator/backend/internal/viewport"
)

// WebSocket message types for the surface protocol
const (
	// Client -> Server
	MsgTypeSetState = "setState"
	MsgTypePing     = "ping"

	// Server -> Client
	MsgTypeScale     = "scale"
	MsgTypeTranslate = "translate"
	MsgTypeError     = "error"
	MsgTypePong      = "pong"
)

// WSMessage is the envelope for both directions.
type WSMessage struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// wsWriter serializes writes; the reader loop and the event goroutine both
// send on the same connection.
type wsWriter struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (w *wsWriter) write(msg WSMessage) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return w.conn.WriteJSON(msg)
}

// HandleSurfaceWebSocket streams viewport change events for one surface and
// accepts state updates from the client. For a combined pan+zoom update the
// client always receives the scale event before the translate event.
func (h *Handler) HandleSurfaceWebSocket(c echo.Context) error {
	id := c.Param("id")
	if _, _, ok := h.surfaceMgr.Get(id); !ok {
		return NewNotFoundError("surface", id)
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return NewInternalError("websocket upgrade failed", err)
	}
	defer conn.Close()
	w := &wsWriter{conn: conn}

	// Viewport listeners run under the manager lock and must not block;
	// events are queued and serialized by a dedicated writer goroutine.
	events := make(chan viewport.Event, 64)
	cancel, ok := h.surfaceMgr.Subscribe(id, func(ev viewport.Event) {
		select {
		case events <- ev:
		default:
			// Slow consumer; drop rather than stall the surface.
		}
	})
	if !ok {
		return NewNotFoundError("surface", id)
	}
	defer cancel()

	done := make(chan struct{})
	defer close(done)
	go h.writeSurfaceEvents(w, id, events, done)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return nil
		}

		var msg WSMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			w.write(WSMessage{Type: MsgTypeError, Timestamp: nowMillis()})
			continue
		}

		switch msg.Type {
		case MsgTypePing:
			h.surfaceMgr.Touch(id)
			w.write(WSMessage{Type: MsgTypePong, Timestamp: nowMillis()})
		case MsgTypeSetState:
			var req surfaceStateRequest
			if err := json.Unmarshal(msg.Payload, &req); err != nil {
				w.write(WSMessage{Type: MsgTypeError, Timestamp: nowMillis()})
				continue
			}
			h.surfaceMgr.SetState(id, viewport.State{
				Left:   req.Left,
				Top:    req.Top,
				Scale:  req.Scale,
				Width:  req.Width,
				Height: req.Height,
			})
		default:
			w.write(WSMessage{Type: MsgTypeError, Timestamp: nowMillis()})
		}
	}
}

func (h *Handler) writeSurfaceEvents(w *wsWriter, id string, events <-chan viewport.Event, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case ev := <-events:
			msgType := MsgTypeTranslate
			if ev == viewport.EventScale {
				msgType = MsgTypeScale
			}

			_, state, ok := h.surfaceMgr.Get(id)
			if !ok {
				return
			}
			payload, err := json.Marshal(state)
			if err != nil {
				fmt.Printf("[Surface %s] Failed to encode state: %v\n", shortID(id), err)
				continue
			}
			if err := w.write(WSMessage{
				Type:      msgType,
				Payload:   payload,
				Timestamp: nowMillis(),
			}); err != nil {
				return
			}
		}
	}
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
