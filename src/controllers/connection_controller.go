package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/theleywin/masheel-api/src/lib"
	"github.com/theleywin/masheel-api/src/models"
)

// SendConnectionRequest sends a connection request from the authenticated user
// to the receiver, optionally with a first message
func (h *Handler) SendConnectionRequest(c *fiber.Ctx) error {
	var req struct {
		Receiver string  `json:"receiver"`
		Message  *string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if !lib.ValidEmail(req.Receiver) {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("receiver must be a valid email address"))
	}

	user := currentUser(c)
	var err error
	if req.Message != nil {
		err = h.Graph.SendRequestWithMessage(c.UserContext(), user.Email, req.Receiver, *req.Message)
	} else {
		err = h.Graph.SendRequest(c.UserContext(), user.Email, req.Receiver)
	}
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(lib.MessageResponse("Connection request sent successfully"))
}

// AcceptConnectionRequest accepts the pending request that :email sent to the authenticated user
func (h *Handler) AcceptConnectionRequest(c *fiber.Ctx) error {
	user := currentUser(c)
	if err := h.Graph.AcceptRequest(c.UserContext(), c.Params("email"), user.Email); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(lib.MessageResponse("Connection accepted successfully"))
}

// RejectConnectionRequest rejects the pending request that :email sent to the authenticated user
func (h *Handler) RejectConnectionRequest(c *fiber.Ctx) error {
	user := currentUser(c)
	if err := h.Graph.RejectRequest(c.UserContext(), c.Params("email"), user.Email); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(lib.MessageResponse("Connection request rejected"))
}

// GetConnectionRequests returns all pending connection requests for the authenticated user
func (h *Handler) GetConnectionRequests(c *fiber.Ctx) error {
	user := currentUser(c)
	requests, err := h.Graph.PendingRequests(c.UserContext(), user.Email)
	if err != nil {
		return h.fail(c, err)
	}

	type ConnectionRequestResponse struct {
		ID        uint              `json:"id"`
		Sender    models.AccountDto `json:"sender"`
		Status    string            `json:"status"`
		CreatedAt string            `json:"createdAt"`
		UpdatedAt string            `json:"updatedAt"`
	}

	response := make([]ConnectionRequestResponse, 0, len(requests))
	for _, conn := range requests {
		response = append(response, ConnectionRequestResponse{
			ID:        conn.ID,
			Sender:    conn.Sender.Dto(),
			Status:    string(models.RequestReceived),
			CreatedAt: conn.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			UpdatedAt: conn.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return c.JSON(response)
}

// GetUserConnections returns the emails of all accounts connected to the
// authenticated user; ?expand=true returns account summaries instead
func (h *Handler) GetUserConnections(c *fiber.Ctx) error {
	user := currentUser(c)
	if c.QueryBool("expand") {
		accounts, err := h.Graph.ListConnectedAccounts(c.UserContext(), user.Email)
		if err != nil {
			return h.fail(c, err)
		}
		return c.JSON(accounts)
	}

	connections, err := h.Graph.ListConnections(c.UserContext(), user.Email)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(connections)
}

// RemoveConnection removes the connection between the authenticated user and :email
func (h *Handler) RemoveConnection(c *fiber.Ctx) error {
	user := currentUser(c)
	if err := h.Graph.RemoveConnection(c.UserContext(), user.Email, c.Params("email")); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(lib.MessageResponse("Connection removed successfully"))
}

// GetConnectionStatus returns the connection status between the authenticated user and :email
func (h *Handler) GetConnectionStatus(c *fiber.Ctx) error {
	user := currentUser(c)
	status, err := h.Graph.Status(c.UserContext(), user.Email, c.Params("email"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"status": status,
	})
}
