package controller

import (
	"livelabs-be/internal/apperror"
	"livelabs-be/internal/dto"
	"livelabs-be/internal/pkg/serverutils"
	"livelabs-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	CreateSite(ctx *fiber.Ctx) error
	ListSites(ctx *fiber.Ctx) error
	CreateParticipant(ctx *fiber.Ctx) error
	ListParticipants(ctx *fiber.Ctx) error
	VerifyParticipant(ctx *fiber.Ctx) error
	Sweep(ctx *fiber.Ctx) error
	Export(ctx *fiber.Ctx) error
}

type adminController struct {
	adminService     service.IAdminService
	lifecycleService service.ILifecycleService
	exportService    service.IExportService
}

func NewAdminController(
	adminService service.IAdminService,
	lifecycleService service.ILifecycleService,
	exportService service.IExportService,
) IAdminController {
	return &adminController{
		adminService:     adminService,
		lifecycleService: lifecycleService,
		exportService:    exportService,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin")
	h.Use(serverutils.JwtMiddleware)
	h.Post("site", c.CreateSite)
	h.Get("site", c.ListSites)
	h.Post("participant", c.CreateParticipant)
	h.Get("participant", c.ListParticipants)
	h.Post("participant/:id/verify", c.VerifyParticipant)
	h.Post("sweep", c.Sweep)
	h.Get("export/:site_id/:period", c.Export)
}

func (c *adminController) CreateSite(ctx *fiber.Ctx) error {
	var req dto.CreateSiteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.adminService.CreateSite(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create site", res))
}

func (c *adminController) ListSites(ctx *fiber.Ctx) error {
	res, err := c.adminService.ListSites(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list sites", res))
}

func (c *adminController) CreateParticipant(ctx *fiber.Ctx) error {
	var req dto.CreateParticipantRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.adminService.CreateParticipant(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create participant", res))
}

func (c *adminController) ListParticipants(ctx *fiber.Ctx) error {
	res, err := c.adminService.ListParticipants(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list participants", res))
}

func (c *adminController) VerifyParticipant(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.NewValidation("invalid participant id")
	}

	if err := c.adminService.VerifyParticipant(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success verify participant", nil))
}

func (c *adminController) Sweep(ctx *fiber.Ctx) error {
	res, err := c.lifecycleService.Sweep(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success run sweep", res))
}

func (c *adminController) Export(ctx *fiber.Ctx) error {
	res, err := c.exportService.ExportPeriod(ctx.Context(), ctx.Params("site_id"), ctx.Params("period"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success export period", res))
}
