package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/theleywin/masheel-api/src/controllers"
)

// NotificationRoutes sets up notification-related routes for listing, marking as read, and deleting notifications
func NotificationRoutes(app *fiber.App, h *controllers.Handler, protect fiber.Handler) {
	notification := app.Group("/api/v1/notifications", protect)

	notification.Get("/", h.GetUserNotifications)
	notification.Put("/:id/read", h.MarkNotificationAsRead)
	notification.Delete("/:id", h.DeleteNotification)
}
