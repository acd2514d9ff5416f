package controller

import (
	"livelabs-be/internal/dto"
	"livelabs-be/internal/entity"
	"livelabs-be/internal/pkg/serverutils"
	"livelabs-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IParticipantController interface {
	RegisterRoutes(r fiber.Router)
	ListQueries(ctx *fiber.Ctx) error
	ListRuns(ctx *fiber.Ctx) error
	ShowRun(ctx *fiber.Ctx) error
	SubmitRun(ctx *fiber.Ctx) error
	ReactivateRun(ctx *fiber.Ctx) error
	ListFeedback(ctx *fiber.Ctx) error
}

type participantController struct {
	queryService     service.IQueryService
	runService       service.IRunService
	lifecycleService service.ILifecycleService
	feedbackService  service.IFeedbackService
	auth             fiber.Handler
}

func NewParticipantController(
	queryService service.IQueryService,
	runService service.IRunService,
	lifecycleService service.ILifecycleService,
	feedbackService service.IFeedbackService,
	auth fiber.Handler,
) IParticipantController {
	return &participantController{
		queryService:     queryService,
		runService:       runService,
		lifecycleService: lifecycleService,
		feedbackService:  feedbackService,
		auth:             auth,
	}
}

func (c *participantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/participant")
	h.Use(c.auth)
	h.Get("query", c.ListQueries)
	h.Get("run", c.ListRuns)
	h.Get("run/:qid", c.ShowRun)
	h.Put("run/:qid", c.SubmitRun)
	h.Post("run/:qid/reactivate", c.ReactivateRun)
	h.Get("feedback", c.ListFeedback)
}

func participantFromLocals(ctx *fiber.Ctx) *entity.Participant {
	return ctx.Locals("participant").(*entity.Participant)
}

func (c *participantController) ListQueries(ctx *fiber.Ctx) error {
	participant := participantFromLocals(ctx)

	res, err := c.queryService.ListForParticipant(ctx.Context(), participant)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list queries", res))
}

func (c *participantController) ListRuns(ctx *fiber.Ctx) error {
	participant := participantFromLocals(ctx)

	res, err := c.runService.ListBound(ctx.Context(), participant.Id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list runs", res))
}

func (c *participantController) ShowRun(ctx *fiber.Ctx) error {
	participant := participantFromLocals(ctx)

	res, err := c.runService.Show(ctx.Context(), ctx.Params("qid"), participant.Id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show run", res))
}

func (c *participantController) SubmitRun(ctx *fiber.Ctx) error {
	participant := participantFromLocals(ctx)

	var req dto.SubmitRunRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.QueryId = ctx.Params("qid")
	req.ParticipantId = participant.Id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.runService.Submit(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success submit run", res))
}

func (c *participantController) ReactivateRun(ctx *fiber.Ctx) error {
	participant := participantFromLocals(ctx)

	req := dto.ReactivateRunRequest{
		QueryId:       ctx.Params("qid"),
		ParticipantId: participant.Id,
	}

	res, err := c.lifecycleService.Reactivate(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success reactivate run", res))
}

func (c *participantController) ListFeedback(ctx *fiber.Ctx) error {
	participant := participantFromLocals(ctx)

	res, err := c.feedbackService.GetFeedback(ctx.Context(), participant.Id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list feedback", res))
}
