package handler

import (
	"net/http"
	"strconv"

	"social-service/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) GetLastNotifications(c *gin.Context) {
	params, ok := requireQuery(c, "username")
	if !ok {
		return
	}

	notifications, err := h.notificationService.GetLastNotifications(c.Request.Context(), params[0])
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) CountUnread(c *gin.Context) {
	params, ok := requireQuery(c, "username")
	if !ok {
		return
	}

	count, err := h.notificationService.CountUnread(c.Request.Context(), params[0])
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, count)
}

func (h *NotificationHandler) RemoveNotification(c *gin.Context) {
	idParam := c.Param("id")
	id, err := strconv.ParseUint(idParam, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a number"})
		return
	}

	payload, err := h.notificationService.RemoveNotification(c.Request.Context(), uint(id))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

func (h *NotificationHandler) RegisterRoutes(r *gin.RouterGroup) {
	notifications := r.Group("/notification")
	{
		notifications.GET("/getLast", h.GetLastNotifications)
		notifications.GET("/countUnread", h.CountUnread)
		notifications.DELETE("/:id", h.RemoveNotification)
	}
}
