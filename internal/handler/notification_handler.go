package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/triautami12/aplikasi-lapor-fasilkom/internal/middleware"
	"github.com/triautami12/aplikasi-lapor-fasilkom/internal/service"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
	authService         *service.AuthService
}

func NewNotificationHandler(notificationService *service.NotificationService, authService *service.AuthService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		authService:         authService,
	}
}

// Handles GET /notifications - the recipient's notifications, newest first,
// plus the unread count.
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	c.JSON(http.StatusOK, h.notificationService.ListForUser(user.Identifier))
}

// Handles PATCH /notifications/read-all. Idempotent.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	h.notificationService.MarkAllRead(user.Identifier)
	c.JSON(http.StatusOK, gin.H{"message": "all notifications marked as read"})
}

// Handles GET /notifications/stream - live notifications over SSE. The token
// arrives as a query param because EventSource cannot set headers.
func (h *NotificationHandler) StreamNotifications(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, err := h.authService.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	client := h.notificationService.RegisterClient(user.Identifier)
	defer h.notificationService.UnregisterClient(client)

	c.SSEvent("connected", gin.H{"status": "connected", "user_identifier": user.Identifier})
	c.Writer.Flush()

	clientGone := c.Request.Context().Done()
	for {
		select {
		case <-clientGone:
			return
		case notification, ok := <-client.Channel:
			if !ok {
				return
			}
			data, _ := json.Marshal(notification)
			c.SSEvent("notification", string(data))
			c.Writer.Flush()
		}
	}
}
