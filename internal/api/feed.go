package api

import (
	"net/http"
	"sync"

	"dareboard/internal/model"
	"dareboard/pkg/auth"
	"dareboard/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// FeedHub fans engagement events out to every connected websocket client.
// It implements service.EngagementNotifier.
type FeedHub struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]struct{}
}

func NewFeedHub() *FeedHub {
	return &FeedHub{
		clients: make(map[*websocket.Conn]struct{}),
	}
}

type feedEvent struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// EngagementCreated broadcasts a freshly recorded engagement. A client whose
// write fails is dropped from the hub.
func (h *FeedHub) EngagementCreated(engagement *model.Engagement) {
	log := logger.Logger()

	event := feedEvent{
		Type: "engagement_created",
		Data: toEngagementResponse(engagement),
	}

	out, err := json.Marshal(event)
	if err != nil {
		log.Error("failed to marshal feed event", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, out); err != nil {
			log.Info("dropping feed client", zap.Error(err))
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

func (h *FeedHub) register(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()
}

func (h *FeedHub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	if _, ok := h.clients[conn]; ok {
		conn.Close()
		delete(h.clients, conn)
	}
	h.mu.Unlock()
}

type feedRoutes struct {
	hub *FeedHub
	a   *auth.TelegramAuth
}

func NewFeedRoutes(handler *gin.RouterGroup, hub *FeedHub, a *auth.TelegramAuth) {
	r := &feedRoutes{hub: hub, a: a}

	feed := handler.Group("/feed")
	feed.Use(a.TelegramAuthMiddleware())
	{
		feed.GET("/ws", r.handleWebSocket)
	}
}

func (r *feedRoutes) handleWebSocket(c *gin.Context) {
	log := logger.Logger()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	r.hub.register(conn)

	go r.readLoop(conn)
}

// readLoop drains incoming frames so ping/pong and close handshakes work; the
// feed itself is write-only.
func (r *feedRoutes) readLoop(conn *websocket.Conn) {
	defer r.hub.unregister(conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Logger().Info("websocket unexpected close", zap.Error(err))
			}
			return
		}
	}
}
