package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/theleywin/masheel-api/src/controllers"
	"github.com/theleywin/masheel-api/src/middleware"
)

// NewApp builds the fiber app with the standard middleware stack and every
// route registered.
func NewApp(h *controllers.Handler, corsOrigins string, withReset bool) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "masheel-api",
		UnescapePath: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	Register(app, h, withReset)
	return app
}

// Register mounts every API route on app. The reset route is only mounted
// when withReset is true.
func Register(app *fiber.App, h *controllers.Handler, withReset bool) {
	protect := middleware.ProtectRoute(h.Tokens, h.Accounts)

	AuthRoutes(app, h, protect)
	UserRoutes(app, h, protect)
	ConnectionRoutes(app, h, protect)
	MessageRoutes(app, h, protect)
	NotificationRoutes(app, h, protect)

	if withReset {
		app.Post("/api/v1/reset", h.ResetDatabase)
	}

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Ohh you are lost, read the API documentation to find your way back home :)",
		})
	})
}
