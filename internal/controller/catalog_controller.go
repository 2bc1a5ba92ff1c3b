package controller

import (
	"github.com/byndl-mvp/PoC-sub002/internal/pkg/serverutils"
	"github.com/byndl-mvp/PoC-sub002/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICatalogController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	Rebuild(ctx *fiber.Ctx) error
}

type catalogController struct {
	service service.ICatalogService
}

func NewCatalogController(service service.ICatalogService) ICatalogController {
	return &catalogController{service: service}
}

func (c *catalogController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/catalog/v1")
	h.Post("/rebuild", c.Rebuild)
	h.Get(":gewerk", c.Show)
}

func (c *catalogController) Show(ctx *fiber.Ctx) error {
	res, err := c.service.Get(ctx.Context(), ctx.Params("gewerk"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show catalog", res))
}

func (c *catalogController) Rebuild(ctx *fiber.Ctx) error {
	res, err := c.service.Rebuild(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success rebuild catalog", res))
}
