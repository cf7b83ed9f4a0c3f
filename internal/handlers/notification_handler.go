package handlers

import (
	"recipebox/internal/middleware"
	"recipebox/internal/services"

	"github.com/gofiber/fiber/v2"
)

// NotificationHandler handles HTTP requests for notifications. Every route
// requires a logged-in user.
type NotificationHandler struct {
	service *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(service *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// RegisterRoutes registers the notification routes with the Fiber app.
func (h *NotificationHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	notifications := router.Group("/notifications", requireAuth)
	notifications.Get("/unread_count", h.HandleUnreadCount)
	notifications.Patch("/mark_all_read", h.HandleMarkAllRead)
	notifications.Get("/user/:user_id", h.HandleGetUserNotifications)
	notifications.Patch("/:id/mark_read", h.HandleMarkRead)
}

// HandleGetUserNotifications lists the caller's notifications, newest first.
func (h *NotificationHandler) HandleGetUserNotifications(c *fiber.Ctx) error {
	userID, err := idParam(c, "user_id")
	if err != nil {
		return err
	}
	notifications, err := h.service.ListForUser(c.UserContext(), middleware.CurrentUserID(c), userID)
	if err != nil {
		return err
	}
	return c.JSON(notifications)
}

// HandleMarkRead marks one of the caller's notifications as read.
func (h *NotificationHandler) HandleMarkRead(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	notification, err := h.service.MarkRead(c.UserContext(), middleware.CurrentUserID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(notification)
}

// HandleUnreadCount returns the number of unread notifications of the caller.
func (h *NotificationHandler) HandleUnreadCount(c *fiber.Ctx) error {
	count, err := h.service.UnreadCount(c.UserContext(), middleware.CurrentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"unread_count": count})
}

// HandleMarkAllRead marks all notifications of the caller as read.
func (h *NotificationHandler) HandleMarkAllRead(c *fiber.Ctx) error {
	updated, err := h.service.MarkAllRead(c.UserContext(), middleware.CurrentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"updated": updated})
}
