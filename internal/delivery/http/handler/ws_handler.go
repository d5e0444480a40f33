package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"gse-tracker/internal/logger"
	"gse-tracker/internal/middleware"
	"gse-tracker/internal/notify"
	equipmentUsecase "gse-tracker/internal/usecase/equipment"
	"gse-tracker/pkg/utils"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Cross-origin policy is enforced by the CORS middleware on the
	// upgrade request; the upgrader itself accepts all origins.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSHandler streams change events for one equipment unit over a
// WebSocket. Events are hints only; clients re-fetch state on receipt.
type WSHandler struct {
	hub       *notify.Hub
	equipment *equipmentUsecase.Service
}

func NewWSHandler(hub *notify.Hub, equipment *equipmentUsecase.Service) *WSHandler {
	return &WSHandler{hub: hub, equipment: equipment}
}

// Watch handles GET /api/v1/equipment/:id/watch
func (h *WSHandler) Watch(c *gin.Context) {
	equipmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid equipment id")
		return
	}

	// Reuse the read gate so a watcher sees exactly what a GET would.
	if _, err := h.equipment.GetEquipment(c.Request.Context(), middleware.GetUserID(c), equipmentID); err != nil {
		respondError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	events, cancel := h.hub.Subscribe(equipmentID)
	defer cancel()

	// Drain client frames so close and pong handling works; watchers
	// never send application data.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case event := <-events:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
