package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/theleywin/masheel-api/src/controllers"
)

// MessageRoutes sets up routes for reading a conversation and sending messages
func MessageRoutes(app *fiber.App, h *controllers.Handler, protect fiber.Handler) {
	message := app.Group("/api/v1/messages", protect)

	message.Get("/", h.GetConversation)
	message.Post("/", h.SendMessage)
}
