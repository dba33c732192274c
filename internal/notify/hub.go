package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-booking/internal/logger"
	"github.com/iliyamo/cinema-booking/internal/model"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxInboundSize = 512
	sendBuffer     = 16
)

// Message is the frame written to WebSocket clients.
type Message struct {
	Event string             `json:"event"`
	Data  model.SeatsChanged `json:"data"`
}

// Hub keeps the connected WebSocket clients and broadcasts seat events to
// them. A client may subscribe to a single screening with ?screeningId=.
type Hub struct {
	upgrader websocket.Upgrader
	log      *logger.Logger

	mu      sync.RWMutex
	clients map[*wsClient]struct{}
}

type wsClient struct {
	conn        *websocket.Conn
	send        chan []byte
	screeningID uint64 // 0 receives every screening
}

// NewHub builds a Hub. An empty origins list or "*" accepts any Origin.
func NewHub(log *logger.Logger, origins []string) *Hub {
	if log == nil {
		log = logger.Discard()
	}
	h := &Hub{log: log.WithComponent("ws"), clients: map[*wsClient]struct{}{}}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(origins),
	}
	return h
}

func originChecker(origins []string) func(r *http.Request) bool {
	allowed := map[string]bool{}
	for _, o := range origins {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		allowed[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return len(allowed) == 0 || origin == "" || allowed[origin]
	}
}

func (h *Hub) Name() string { return "websocket" }

// Clients reports how many connections are registered.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeWS upgrades the request and registers the connection until the peer
// goes away.
func (h *Hub) ServeWS(c echo.Context) error {
	var screeningID uint64
	if raw := c.QueryParam("screeningId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid screeningId"})
		}
		screeningID = id
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// the upgrader has already written the error response
		h.log.WithError(err).Debug("websocket upgrade failed")
		return nil
	}
	cl := &wsClient{conn: conn, send: make(chan []byte, sendBuffer), screeningID: screeningID}
	h.register(cl)
	go h.writePump(cl)
	h.readPump(cl)
	return nil
}

func (h *Hub) register(cl *wsClient) {
	h.mu.Lock()
	h.clients[cl] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(cl *wsClient) {
	h.mu.Lock()
	if _, ok := h.clients[cl]; ok {
		delete(h.clients, cl)
		close(cl.send)
	}
	h.mu.Unlock()
}

// readPump discards inbound frames; it exists to process control frames
// and notice when the peer disconnects.
func (h *Hub) readPump(cl *wsClient) {
	defer func() {
		h.unregister(cl)
		_ = cl.conn.Close()
	}()
	cl.conn.SetReadLimit(maxInboundSize)
	_ = cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(cl *wsClient) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = cl.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-cl.send:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := cl.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Send queues the event for every matching client. Clients whose buffer is
// full are skipped for this event.
func (h *Hub) Send(_ context.Context, event string, payload model.SeatsChanged) error {
	frame, err := json.Marshal(Message{Event: event, Data: payload})
	if err != nil {
		return err
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for cl := range h.clients {
		if cl.screeningID != 0 && cl.screeningID != payload.ScreeningID {
			continue
		}
		select {
		case cl.send <- frame:
		default:
			h.log.Warn("websocket client too slow, dropping event", "event", event)
		}
	}
	return nil
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for cl := range h.clients {
		delete(h.clients, cl)
		close(cl.send)
	}
}
