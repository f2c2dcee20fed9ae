package controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/theleywin/masheel-api/src/lib"
	"github.com/theleywin/masheel-api/src/models"
	"github.com/theleywin/masheel-api/src/services"
	"github.com/theleywin/masheel-api/src/store"
)

// Handler groups the HTTP handlers and the services they call.
type Handler struct {
	Accounts        *services.AccountService
	Graph           *services.ConnectionGraph
	Messages        *services.MessageDispatch
	Conversations   *services.ConversationAssembler
	Notifications   *services.NotificationService
	Recommendations *services.RecommendationService
	Tokens          lib.TokenIssuer
	Store           *store.Store
	Log             *zap.Logger
}

// currentUser returns the account attached by middleware.ProtectRoute
func currentUser(c *fiber.Ctx) models.Account {
	return c.Locals("user").(models.Account)
}

// fail writes err as a JSON message with the status matching its kind.
// Storage failures are logged; clients only see a generic message for them.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := lib.StatusFor(err)
	if status >= fiber.StatusInternalServerError {
		h.Log.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err))
	}
	return c.Status(status).JSON(lib.MessageResponse(lib.ClientMessage(err)))
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
}

// NewHandler wires every service onto st.
func NewHandler(st *store.Store, tokens lib.TokenIssuer, hasher lib.CredentialHasher, log *zap.Logger, opts ...services.DispatchOption) *Handler {
	dispatch := services.NewMessageDispatch(st, log, opts...)
	return &Handler{
		Accounts:        services.NewAccountService(st, hasher, log),
		Graph:           services.NewConnectionGraph(st, dispatch, log),
		Messages:        dispatch,
		Conversations:   services.NewConversationAssembler(st),
		Notifications:   services.NewNotificationService(st),
		Recommendations: services.NewRecommendationService(st),
		Tokens:          tokens,
		Store:           st,
		Log:             log,
	}
}
