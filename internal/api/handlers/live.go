package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/aquawatch/aquawatch/internal/pkg/logger"
	"github.com/aquawatch/aquawatch/internal/ws"
)

type LiveHandler struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
	logger   *logger.Logger
}

func NewLiveHandler(hub *ws.Hub, log *logger.Logger) *LiveHandler {
	return &LiveHandler{
		hub:    hub,
		logger: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser dashboards connect cross-origin in development;
			// CORS policy is enforced at the router level
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Serve upgrades the connection and attaches it to the live feed hub
func (h *LiveHandler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WarnWithErr(err, "WebSocket upgrade failed")
		return
	}

	client := ws.NewClient(h.hub, conn, h.logger)
	go client.WritePump()
	go client.ReadPump()
}
