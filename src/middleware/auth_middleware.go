package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/theleywin/masheel-api/src/lib"
	"github.com/theleywin/masheel-api/src/services"
)

// ProtectRoute checks for a valid bearer token, loads the account it belongs
// to and attaches it to the request context under "user".
func ProtectRoute(tokens lib.TokenIssuer, accounts *services.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("Unauthorized - No token provided"))
		}

		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("Unauthorized - Invalid token format"))
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("Unauthorized - Invalid token"))
		}

		account, err := accounts.FindByEmail(c.UserContext(), claims.Email)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("Unauthorized - Account not found"))
		}

		c.Locals("user", *account)
		return c.Next()
	}
}
