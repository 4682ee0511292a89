package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	ws "github.com/seu-repo/tradeinsight/internal/adapter/websocket"
)

// EventsHandler upgrades authenticated requests to a websocket that
// streams the caller's dataset events.
type EventsHandler struct {
	hub *ws.Hub
	log *zap.Logger
}

func NewEventsHandler(hub *ws.Hub, log *zap.Logger) *EventsHandler {
	return &EventsHandler{hub: hub, log: log}
}

// Register mounts /ws on r behind auth.
func (h *EventsHandler) Register(r fiber.Router, auth fiber.Handler) {
	r.Get("/ws", auth, h.upgradeRequired, websocket.New(h.serve))
}

func (h *EventsHandler) upgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

func (h *EventsHandler) serve(conn *websocket.Conn) {
	uid, _ := conn.Locals("user_id").(string)
	if uid == "" {
		h.log.Warn("websocket without user, closing")
		conn.Close()
		return
	}
	h.log.Debug("websocket connected", zap.String("user_id", uid))
	h.hub.Serve(conn, uid)
}
