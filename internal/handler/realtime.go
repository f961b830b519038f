package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"hopeplates/internal/domain"
	"hopeplates/internal/realtime"
	"hopeplates/internal/service"
)

const pingInterval = 30 * time.Second

// RealtimeHandler upgrades NGO dashboards to a websocket match feed.
type RealtimeHandler struct {
	hub         *realtime.Hub
	authService *service.AuthService
	upgrader    websocket.Upgrader
}

// NewRealtimeHandler creates a new RealtimeHandler.
func NewRealtimeHandler(hub *realtime.Hub, authService *service.AuthService) *RealtimeHandler {
	return &RealtimeHandler{
		hub:         hub,
		authService: authService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origins are enforced by the CORS layer.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Subscribe handles GET /api/ws?token=...
func (h *RealtimeHandler) Subscribe(c *gin.Context) {
	claims, err := h.authService.ParseToken(c.Query("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	if claims.Role != domain.RoleNGO || claims.NGOID == "" {
		respondError(c, service.ErrInvalidToken)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	client := realtime.NewClient(claims.NGOID, conn)
	h.hub.Register(client)
	defer h.hub.Unregister(client)

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := client.Ping(); err != nil {
					return
				}
			}
		}
	}()

	client.ReadLoop()
}
