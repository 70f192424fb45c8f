package http

import (
	"context"
	"errors"
	"net/http"

	"cusceda/pkg/logger"
	"cusceda/services/notification/internal/entity"
	"cusceda/services/notification/internal/repo/pubsub"
	"cusceda/services/notification/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type NotificationHandler struct {
	notificationUseCase usecase.NotificationUseCase
	redisClient         *redis.Client
	logger              *logger.Logger
}

func NewNotificationHandler(notificationUseCase usecase.NotificationUseCase, redisClient *redis.Client, logger *logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationUseCase: notificationUseCase,
		redisClient:         redisClient,
		logger:              logger,
	}
}

type MarkReadRequest struct {
	ID string `json:"id"`
}

// GetNotifications godoc
// @Summary      List admin notifications
// @Description  Records new business events as notifications, then returns the caller's feed newest first
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]interface{}
// @Router       /admin/notifications [get]
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	notifications, err := h.notificationUseCase.AggregateAndList(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to get notifications for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": notifications})
}

// MarkAsRead godoc
// @Summary      Mark a notification as read
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body MarkReadRequest true "Notification id"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /admin/notifications [patch]
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Notification ID required"})
		return
	}

	notification, err := h.notificationUseCase.MarkRead(c.Request.Context(), req.ID)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Notification not found"})
		case errors.Is(err, entity.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Notification ID required"})
		default:
			h.logger.Error("Failed to mark notification %s as read: %v", req.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to mark as read"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": notification})
}

// HandleWebSocket godoc
// @Summary      Live notification stream
// @Description  Relays notifications inserted for the caller as JSON text frames
// @Tags         notifications
// @Security     BearerAuth
// @Param        token query string false "JWT when the Authorization header cannot be set"
// @Router       /admin/notifications/ws [get]
func (h *NotificationHandler) HandleWebSocket(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if h.redisClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Live updates unavailable"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade connection to WebSocket: %v", err)
		return
	}
	defer conn.Close()

	h.logger.Info("WebSocket connected for user %s", userID)

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	sub := h.redisClient.Subscribe(ctx, pubsub.Channel(userID))
	defer sub.Close()

	go func() {
		defer cancel()
		messages := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
					h.logger.Error("Failed to write WebSocket message: %v", err)
					return
				}
			}
		}
	}()

	// Reads only detect the client going away; gorilla answers pings itself.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn("WebSocket read error: %v", err)
			}
			break
		}
	}

	h.logger.Info("WebSocket disconnected for user %s", userID)
}
