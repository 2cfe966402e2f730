package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Peterleoo/Livora/internal/dto"
	"github.com/Peterleoo/Livora/internal/pkg/serverutils"
	"github.com/Peterleoo/Livora/internal/service"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	CreateConversation(ctx *fiber.Ctx) error
	Chat(ctx *fiber.Ctx) error
	ResetConversation(ctx *fiber.Ctx) error
	Sign(ctx *fiber.Ctx) error
}

type assistantController struct {
	assistantService service.IAssistantService
	signingService   service.ISigningService
}

func NewAssistantController(
	assistantService service.IAssistantService,
	signingService service.ISigningService,
) IAssistantController {
	return &assistantController{
		assistantService: assistantService,
		signingService:   signingService,
	}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("conversation", c.CreateConversation)
	h.Delete("conversation/:id", c.ResetConversation)
	h.Post("chat", c.Chat)
	h.Post("sign/:listingId", c.Sign)
}

func (c *assistantController) CreateConversation(ctx *fiber.Ctx) error {
	var req dto.CreateConversationRequest
	if err := ctx.BodyParser(&req); err != nil && !errors.Is(err, fiber.ErrUnprocessableEntity) {
		return err
	}

	res, err := c.assistantService.StartConversation(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Session not found")
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create conversation", res))
}

func (c *assistantController) Chat(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.assistantService.SubmitTurn(ctx.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrConversationNotFound):
			return fiber.NewError(fiber.StatusNotFound, "Conversation not found")
		case errors.Is(err, service.ErrTurnInFlight):
			return fiber.NewError(fiber.StatusConflict, "A turn is already in flight")
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success chat", res))
}

func (c *assistantController) ResetConversation(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	if err := c.assistantService.ResetConversation(ctx.Context(), id); err != nil {
		if errors.Is(err, service.ErrConversationNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Conversation not found")
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success reset conversation", nil))
}

func (c *assistantController) Sign(ctx *fiber.Ctx) error {
	listingId := ctx.Params("listingId")

	res, err := c.signingService.Sign(ctx.Context(), listingId)
	if err != nil {
		if errors.Is(err, service.ErrListingNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Listing not found")
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success sign listing", res))
}
