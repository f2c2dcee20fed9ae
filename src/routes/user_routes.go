package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/theleywin/masheel-api/src/controllers"
)

// UserRoutes sets up user-related routes for profiles and recommendations
func UserRoutes(app *fiber.App, h *controllers.Handler, protect fiber.Handler) {
	user := app.Group("/api/v1/users", protect)

	user.Put("/profile", h.UpdateProfile)
	user.Get("/:email", h.GetPublicProfile)
	user.Get("/:email/recommendations", h.GetRecommendations)
	user.Post("/:email/recommendations", h.CreateRecommendation)
}
