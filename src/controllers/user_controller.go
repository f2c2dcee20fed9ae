package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/theleywin/masheel-api/src/lib"
	"github.com/theleywin/masheel-api/src/services"
)

// GetPublicProfile returns another account's profile without credentials
func (h *Handler) GetPublicProfile(c *fiber.Ctx) error {
	profile, err := h.Accounts.FindSecure(c.UserContext(), c.Params("email"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(profile)
}

// UpdateProfile applies a list of {"set", "as"} updates to the authenticated account
func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	var updates []services.Update
	if err := c.BodyParser(&updates); err != nil {
		return badBody(c)
	}

	user := currentUser(c)
	if err := h.Accounts.Update(c.UserContext(), user.Email, updates); err != nil {
		return h.fail(c, err)
	}

	profile, err := h.Accounts.FindSecure(c.UserContext(), user.Email)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Successfully updated user",
		"user":    profile,
	})
}

// CreateRecommendation adds the authenticated account's recommendation to another profile
func (h *Handler) CreateRecommendation(c *fiber.Ctx) error {
	var req struct {
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	user := currentUser(c)
	rec, err := h.Recommendations.Add(c.UserContext(), user.Email, c.Params("email"), req.Description)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}

// GetRecommendations lists the recommendations on a profile, newest first
func (h *Handler) GetRecommendations(c *fiber.Ctx) error {
	recs, err := h.Recommendations.List(c.UserContext(), c.Params("email"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(recs)
}

// ResetDatabase drops and recreates every table. Only mounted in development.
func (h *Handler) ResetDatabase(c *fiber.Ctx) error {
	if err := h.Store.Reset(c.UserContext()); err != nil {
		return h.fail(c, err)
	}
	h.Log.Warn("database reset")
	return c.JSON(lib.MessageResponse("Successfully reset DB"))
}
