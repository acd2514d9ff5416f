package controller

import (
	"livelabs-be/internal/dto"
	"livelabs-be/internal/entity"
	"livelabs-be/internal/pkg/serverutils"
	"livelabs-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISiteController interface {
	RegisterRoutes(r fiber.Router)
	ListQueries(ctx *fiber.Ctx) error
	UpsertQueries(ctx *fiber.Ctx) error
	DeleteQueries(ctx *fiber.Ctx) error
	UploadDoclist(ctx *fiber.Ctx) error
	Ranking(ctx *fiber.Ctx) error
	AddFeedback(ctx *fiber.Ctx) error
}

type siteController struct {
	queryService    service.IQueryService
	servingService  service.IServingService
	feedbackService service.IFeedbackService
	auth            fiber.Handler
}

func NewSiteController(
	queryService service.IQueryService,
	servingService service.IServingService,
	feedbackService service.IFeedbackService,
	auth fiber.Handler,
) ISiteController {
	return &siteController{
		queryService:    queryService,
		servingService:  servingService,
		feedbackService: feedbackService,
		auth:            auth,
	}
}

func (c *siteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/site")
	h.Use(c.auth)
	h.Get("query", c.ListQueries)
	h.Put("query", c.UpsertQueries)
	h.Delete("query", c.DeleteQueries)
	h.Put("doclist/:qid", c.UploadDoclist)
	h.Get("ranking/:site_qid", c.Ranking)
	h.Put("feedback/:sid", c.AddFeedback)
}

func siteFromLocals(ctx *fiber.Ctx) *entity.Site {
	return ctx.Locals("site").(*entity.Site)
}

func (c *siteController) ListQueries(ctx *fiber.Ctx) error {
	site := siteFromLocals(ctx)

	res, err := c.queryService.ListForSite(ctx.Context(), site.Id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list queries", res))
}

func (c *siteController) UpsertQueries(ctx *fiber.Ctx) error {
	site := siteFromLocals(ctx)

	var req dto.UploadQueriesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.SiteId = site.Id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.queryService.UpsertQueries(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upsert queries", res))
}

func (c *siteController) DeleteQueries(ctx *fiber.Ctx) error {
	site := siteFromLocals(ctx)

	if err := c.queryService.DeleteQueries(ctx.Context(), site.Id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete queries", nil))
}

func (c *siteController) UploadDoclist(ctx *fiber.Ctx) error {
	site := siteFromLocals(ctx)

	var req dto.UploadDoclistRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.SiteId = site.Id
	req.QueryId = ctx.Params("qid")

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.queryService.UploadDoclist(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upload doclist", res))
}

func (c *siteController) Ranking(ctx *fiber.Ctx) error {
	site := siteFromLocals(ctx)

	req := dto.RankingRequest{
		SiteId:  site.Id,
		SiteQid: ctx.Params("site_qid"),
	}

	res, err := c.servingService.SelectForServing(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success select ranking", res))
}

func (c *siteController) AddFeedback(ctx *fiber.Ctx) error {
	site := siteFromLocals(ctx)

	var req dto.AddFeedbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.SiteId = site.Id
	req.Sid = ctx.Params("sid")

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.feedbackService.AddFeedback(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success add feedback", res))
}
