package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/theleywin/masheel-api/src/lib"
)

// GetUserNotifications returns all notifications for the authenticated user, newest first
func (h *Handler) GetUserNotifications(c *fiber.Ctx) error {
	user := currentUser(c)
	notifications, err := h.Notifications.List(c.UserContext(), user.ID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(notifications)
}

// MarkNotificationAsRead marks a notification as read for the authenticated user
func (h *Handler) MarkNotificationAsRead(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid notification ID"))
	}

	user := currentUser(c)
	notification, err := h.Notifications.MarkRead(c.UserContext(), user.ID, uint(id))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(notification)
}

// DeleteNotification deletes a notification owned by the authenticated user
func (h *Handler) DeleteNotification(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid notification ID"))
	}

	user := currentUser(c)
	if err := h.Notifications.Delete(c.UserContext(), user.ID, uint(id)); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(lib.MessageResponse("Notification deleted successfully"))
}
