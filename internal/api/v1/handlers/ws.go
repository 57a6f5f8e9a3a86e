package handlers

import (
	"wtms/internal/middleware"
	ws "wtms/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// UpgradeWS hanya meneruskan request yang meminta upgrade websocket.
func UpgradeWS(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		c.Locals("allowed", true)
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Stream mengirim event submission milik worker ke koneksi websocket.
// Pesan dari client diabaikan; loop baca hanya mendeteksi koneksi putus.
func (h *Handler) Stream() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		id, ok := conn.Locals(middleware.LocalWorkerID).(int64)
		if !ok {
			_ = conn.Close()
			return
		}
		client := &ws.Client{WorkerID: id, Conn: conn}
		h.deps.Hub.Register(client)
		defer h.deps.Hub.Unregister(client)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	})
}
