package handlers

import (
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/songbook-dev/songbook/internal/utils"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// RefreshEvent is pushed to a user's sockets after one of their songs changes.
type RefreshEvent struct {
	Type   string `json:"type"`
	Action string `json:"action,omitempty"`
	SongID string `json:"song_id,omitempty"`
}

// client serialises writes; gorilla connections allow one concurrent writer.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}

	return c.conn.WriteJSON(v)
}

func (c *client) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}

	return c.conn.WriteMessage(websocket.PingMessage, nil)
}

// Hub tracks open websocket connections per user.
type Hub struct {
	allowedOrigins []string
	upgrader       websocket.Upgrader

	mu      sync.RWMutex
	clients map[string]map[*client]struct{}
}

func NewHub(allowedOrigins []string) *Hub {
	h := &Hub{
		allowedOrigins: allowedOrigins,
		clients:        make(map[string]map[*client]struct{}),
	}

	h.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return slices.Contains(h.allowedOrigins, r.Header.Get("Origin"))
		},
	}

	return h
}

func (h *Hub) register(userID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*client]struct{})
	}

	h.clients[userID][c] = struct{}{}
}

func (h *Hub) unregister(userID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.clients[userID]; ok {
		delete(clients, c)

		if len(clients) == 0 {
			delete(h.clients, userID)
		}
	}
}

// Connections returns how many sockets are open for userID.
func (h *Hub) Connections(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients[userID])
}

// BroadcastRefresh notifies every socket of userID. Sockets that fail the
// write are closed and forgotten.
func (h *Hub) BroadcastRefresh(userID, action, songID string) {
	if h == nil {
		return
	}

	h.mu.RLock()
	targets := make([]*client, 0, len(h.clients[userID]))
	for c := range h.clients[userID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	event := RefreshEvent{Type: "refresh", Action: action, SongID: songID}

	for _, c := range targets {
		if err := c.writeJSON(event); err != nil {
			log.Warn().Err(err).Str("user_id", userID).Msg("Failed to broadcast refresh")
			h.unregister(userID, c)
			c.conn.Close()
		}
	}
}

func (h *Handler) WebSocket(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		utils.RespondUnauthorized(ctx)
		return
	}

	conn, err := h.hub.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)

	if err != nil {
		log.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	h.hub.serve(userID, &client{conn: conn})
}

func (h *Hub) serve(userID string, c *client) {
	conn := c.conn
	conn.SetReadLimit(maxMessageSize)

	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Warn().Err(err).Msg("Failed to set initial read deadline")
		conn.Close()
		return
	}

	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	h.register(userID, c)

	defer func() {
		h.unregister(userID, c)
		conn.Close()
		log.Debug().Str("user_id", userID).Msg("WebSocket connection closed")
	}()

	if err := c.writeJSON(RefreshEvent{Type: "connected"}); err != nil {
		log.Warn().Err(err).Msg("Failed to send welcome message")
		return
	}

	done := make(chan struct{})
	defer close(done)

	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := c.ping(); err != nil {
					log.Debug().Err(err).Str("user_id", userID).Msg("Ping failed")
					return
				}
			}
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("user_id", userID).Msg("WebSocket error")
			}
			return
		}
	}
}
