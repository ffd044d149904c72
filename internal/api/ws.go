package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/thekoushikdurgas/windowsportfoillo/internal/notify"
)

const (
	// A peer that misses a pong for pongWait is considered gone.
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	writeWait  = 10 * time.Second
)

// Origin checking happens after the upgrade so rejections can carry a proper
// 1008 close frame instead of a bare HTTP 403.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// envelope is the inbound client message frame.
type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// wsConn serializes writes; gorilla connections forbid concurrent writers and
// broadcasts arrive from other clients' reader goroutines.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsConn) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(v)
}

func (c *wsConn) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

func (c *wsConn) closeWith(code int, reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	msg := websocket.FormatCloseMessage(code, reason)
	_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}

// HandleWS upgrades the connection, applies the origin admission policy,
// registers the client and runs its receive loop until disconnect.
func (h *Handlers) HandleWS(w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get("Origin")

	raw, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer raw.Close()

	wc := &wsConn{conn: raw}

	if !notify.Allowed(origin, h.AllowedOrigins, h.Environment) {
		h.Metrics.OriginRejected()
		h.Log.Warn("websocket origin rejected", zap.String("origin", origin))
		wc.closeWith(websocket.ClosePolicyViolation, "Origin not allowed")
		return
	}

	connID := uuid.NewString()
	conn := &notify.Connection{ID: connID, Send: wc.writeJSON}
	if err := h.Registry.Add(conn); err != nil {
		// Duplicate uuid means something is badly wrong; close rather than
		// serve a connection the registry cannot see.
		h.Log.Error("connection registration failed",
			zap.String("connection_id", connID), zap.Error(err))
		wc.closeWith(websocket.CloseInternalServerErr, "registration failed")
		return
	}
	h.Metrics.ConnectionOpened()
	log := h.Log.With(zap.String("connection_id", connID))
	log.Info("websocket connected", zap.String("origin", origin))

	defer func() {
		h.Registry.Remove(connID)
		h.Metrics.ConnectionClosed()
		log.Info("websocket disconnected")
	}()

	// Liveness: ping on a ticker, expect pongs to refresh the read deadline.
	raw.SetReadDeadline(time.Now().Add(pongWait))
	raw.SetPongHandler(func(string) error {
		raw.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := wc.ping(); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	for {
		_, msg, err := raw.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("websocket read error", zap.Error(err))
			}
			return
		}
		h.handleClientMessage(wc, msg, log)
	}
}

// handleClientMessage routes one inbound frame. Malformed frames are reported
// back to the sender only; the connection stays open.
func (h *Handlers) handleClientMessage(wc *wsConn, msg []byte, log *zap.Logger) {
	var env envelope
	if err := json.Unmarshal(msg, &env); err != nil {
		h.sendError(wc, "invalid JSON", log)
		return
	}

	switch env.Type {
	case "send_notification":
		var req notify.Request
		if err := json.Unmarshal(env.Data, &req); err != nil {
			h.sendError(wc, "invalid notification payload", log)
			return
		}
		if _, err := h.Dispatcher.Dispatch(req); err != nil {
			h.sendError(wc, err.Error(), log)
		}
	default:
		h.sendError(wc, "unknown message type", log)
	}
}

func (h *Handlers) sendError(wc *wsConn, detail string, log *zap.Logger) {
	if err := wc.writeJSON(map[string]string{"error": detail}); err != nil {
		log.Warn("error reply failed", zap.Error(err))
	}
}
