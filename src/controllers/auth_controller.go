package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/theleywin/masheel-api/src/models"
	"github.com/theleywin/masheel-api/src/services"
)

// Signup registers an account and returns a token for it. Payloads that carry
// a requirement create the detailed profile in the same transaction.
func (h *Handler) Signup(c *fiber.Ctx) error {
	var input services.NewAccount
	if err := c.BodyParser(&input); err != nil {
		return badBody(c)
	}

	var (
		account *models.Account
		err     error
	)
	if input.Requirement != nil {
		account, err = h.Accounts.CreateDetailed(c.UserContext(), input)
	} else {
		account, err = h.Accounts.CreateBasic(c.UserContext(), input)
	}
	if err != nil {
		return h.fail(c, err)
	}

	token, err := h.Tokens.Sign(account.Email)
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"token":   token,
	})
}

// Login checks email and password and returns a token carrying the email
func (h *Handler) Login(c *fiber.Ctx) error {
	var loginData struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&loginData); err != nil {
		return badBody(c)
	}
	if loginData.Email == "" || loginData.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Email and password are required",
		})
	}

	account, err := h.Accounts.Authenticate(c.UserContext(), loginData.Email, loginData.Password)
	if err != nil {
		return h.fail(c, err)
	}

	token, err := h.Tokens.Sign(account.Email)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Logged in successfully",
		"token":   token,
	})
}

// GetCurrentUser returns the authenticated account's full profile
func (h *Handler) GetCurrentUser(c *fiber.Ctx) error {
	user := currentUser(c)
	profile, err := h.Accounts.FindSecure(c.UserContext(), user.Email)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(profile)
}
