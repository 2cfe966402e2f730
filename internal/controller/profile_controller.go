package controller

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Peterleoo/Livora/internal/dto"
	"github.com/Peterleoo/Livora/internal/pkg/serverutils"
	"github.com/Peterleoo/Livora/internal/service"
)

type IProfileController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
}

type profileController struct {
	profileService service.IProfileService
}

func NewProfileController(profileService service.IProfileService) IProfileController {
	return &profileController{
		profileService: profileService,
	}
}

func (c *profileController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant/v1/profile")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.Show)
	h.Put("", c.Update)
}

func (c *profileController) Show(ctx *fiber.Ctx) error {
	res, err := c.profileService.Show(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show profile", res))
}

func (c *profileController) Update(ctx *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.profileService.Update(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update profile", res))
}
