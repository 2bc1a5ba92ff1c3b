package controller

import (
	"github.com/byndl-mvp/PoC-sub002/internal/dto"
	"github.com/byndl-mvp/PoC-sub002/internal/pkg/serverutils"
	"github.com/byndl-mvp/PoC-sub002/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISpecificationController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	ListBySession(ctx *fiber.Ctx) error
	UpdatePosition(ctx *fiber.Ctx) error
	CreateMissingPositions(ctx *fiber.Ctx) error
}

type specificationController struct {
	service service.ISpecificationService
}

func NewSpecificationController(service service.ISpecificationService) ISpecificationController {
	return &specificationController{service: service}
}

func (c *specificationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/specification/v1")
	h.Post("/generate", c.Generate)
	h.Get("/session/:sessionId", c.ListBySession)
	h.Get(":id", c.Show)
	h.Patch(":id/positions/:nummer", c.UpdatePosition)
	h.Post(":id/missing-positions", c.CreateMissingPositions)
}

func (c *specificationController) Generate(ctx *fiber.Ctx) error {
	var req dto.GenerateSpecificationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Generate(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate specification", res))
}

func (c *specificationController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid document id")
	}

	res, err := c.service.Get(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show specification", res))
}

func (c *specificationController) ListBySession(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	res, err := c.service.ListBySession(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list specifications", res))
}

func (c *specificationController) UpdatePosition(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid document id")
	}

	var req dto.UpdatePositionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Nummer = ctx.Params("nummer")

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdatePosition(ctx.Context(), id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update position", res))
}

func (c *specificationController) CreateMissingPositions(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid document id")
	}

	res, err := c.service.CreateMissingPositions(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create missing positions", res))
}
