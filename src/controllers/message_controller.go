package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/theleywin/masheel-api/src/lib"
)

// GetConversation returns the messages between the authenticated user and ?other, oldest first
func (h *Handler) GetConversation(c *fiber.Ctx) error {
	other := c.Query("other")
	if other == "" {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("other is required"))
	}

	user := currentUser(c)
	conversation, err := h.Conversations.FindConversation(c.UserContext(), user.Email, other)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(conversation)
}

// SendMessage sends a message to a connected account. Accounts that are not
// connected cannot message each other.
func (h *Handler) SendMessage(c *fiber.Ctx) error {
	var req struct {
		Body     string `json:"body"`
		Receiver string `json:"receiver"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if req.Receiver == "" {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("receiver is required"))
	}

	user := currentUser(c)
	connected, err := h.Graph.IsConnected(c.UserContext(), user.Email, req.Receiver)
	if err != nil {
		return h.fail(c, err)
	}
	if !connected {
		return c.Status(fiber.StatusForbidden).JSON(lib.MessageResponse("Connect with user before sending them a message!"))
	}

	msg, err := h.Messages.Send(c.UserContext(), user.Email, req.Body, req.Receiver)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}
