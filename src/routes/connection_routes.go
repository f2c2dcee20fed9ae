package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/theleywin/masheel-api/src/controllers"
)

// ConnectionRoutes sets up routes for sending, answering and listing connection requests
func ConnectionRoutes(app *fiber.App, h *controllers.Handler, protect fiber.Handler) {
	connection := app.Group("/api/v1/connections", protect)

	connection.Get("/", h.GetUserConnections)
	connection.Post("/", h.SendConnectionRequest)
	connection.Get("/requests", h.GetConnectionRequests)
	connection.Put("/:email/accept", h.AcceptConnectionRequest)
	connection.Put("/:email/reject", h.RejectConnectionRequest)
	connection.Get("/:email/status", h.GetConnectionStatus)
	connection.Delete("/:email", h.RemoveConnection)
}
