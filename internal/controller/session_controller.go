package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Peterleoo/Livora/internal/dto"
	"github.com/Peterleoo/Livora/internal/pkg/serverutils"
	"github.com/Peterleoo/Livora/internal/service"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	BulkDelete(ctx *fiber.Ctx) error
}

type sessionController struct {
	sessionService service.ISessionService
}

func NewSessionController(sessionService service.ISessionService) ISessionController {
	return &sessionController{
		sessionService: sessionService,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant/v1/sessions")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Post("bulk-delete", c.BulkDelete)
	h.Get(":id", c.Show)
	h.Delete(":id", c.Delete)
}

func (c *sessionController) List(ctx *fiber.Ctx) error {
	res, err := c.sessionService.List(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list sessions", res))
}

func (c *sessionController) Show(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	res, err := c.sessionService.Show(ctx.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Session not found")
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show session", res))
}

func (c *sessionController) Delete(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	if err := c.sessionService.Delete(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete session", nil))
}

func (c *sessionController) BulkDelete(ctx *fiber.Ctx) error {
	var req dto.DeleteSessionsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.sessionService.DeleteMany(ctx.Context(), req.Ids); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete sessions", nil))
}
