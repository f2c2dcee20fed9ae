package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/theleywin/masheel-api/src/controllers"
)

// AuthRoutes sets up authentication-related routes for signup, login and getting the current user
func AuthRoutes(app *fiber.App, h *controllers.Handler, protect fiber.Handler) {
	auth := app.Group("/api/v1/auth")

	auth.Post("/signup", h.Signup)
	auth.Post("/login", h.Login)
	auth.Get("/me", protect, h.GetCurrentUser)
}
