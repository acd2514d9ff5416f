package service

import (
	"context"
	"fmt"
	"time"

	"livelabs-be/internal/apperror"
	"livelabs-be/internal/config"
	"livelabs-be/internal/dto"
	"livelabs-be/internal/entity"
	"livelabs-be/internal/repository/specification"
	"livelabs-be/internal/repository/unitofwork"
	"livelabs-be/pkg/events"
	pktNats "livelabs-be/pkg/nats"

	"github.com/google/uuid"
)

type IRunService interface {
	Submit(ctx context.Context, req *dto.SubmitRunRequest) (*dto.SubmitRunResponse, error)
	Show(ctx context.Context, queryId string, participantId uuid.UUID) (*dto.ShowRunResponse, error)
	ListBound(ctx context.Context, participantId uuid.UUID) (*dto.ListBoundRunsResponse, error)
}

type runService struct {
	uowFactory     unitofwork.RepositoryFactory
	challenge      config.ChallengeConfig
	eventPublisher *pktNats.Publisher
	now            func() time.Time
}

func NewRunService(
	uowFactory unitofwork.RepositoryFactory,
	challenge config.ChallengeConfig,
	eventPublisher *pktNats.Publisher,
) IRunService {
	return &runService{
		uowFactory:     uowFactory,
		challenge:      challenge,
		eventPublisher: eventPublisher,
		now:            time.Now,
	}
}

// Submit stores a new run for the (query, participant) pair. The previous
// run of the pair is removed in the same transaction and the binding is
// re-pointed, so exactly one run per pair survives.
func (s *runService) Submit(ctx context.Context, req *dto.SubmitRunRequest) (*dto.SubmitRunResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	query, err := uow.QueryRepository().FindByID(ctx, req.QueryId)
	if err != nil {
		return nil, err
	}
	if query == nil {
		return nil, apperror.NewNotFound("query %s not found", req.QueryId)
	}

	participant, err := uow.ParticipantRepository().FindByID(ctx, req.ParticipantId)
	if err != nil {
		return nil, err
	}
	if participant == nil || !participant.RegisteredFor(query.SiteId) {
		return nil, apperror.NewPermissionDenied("participant is not registered for site %s", query.SiteId)
	}

	if len(req.Doclist) == 0 {
		return nil, apperror.NewValidation("doclist must not be empty")
	}

	now := s.now()

	// Test queries are frozen during an evaluation window: a pair that
	// already bound a run inside the window cannot replace it until the
	// window closes.
	if query.Type == entity.QueryTypeTest {
		if period := s.challenge.ActivePeriod(now); period != nil {
			binding, err := uow.BindingRepository().FindOne(ctx,
				specification.ByQueryID{QueryID: query.Id},
				specification.ByParticipantID{ParticipantID: participant.Id},
			)
			if err != nil {
				return nil, err
			}
			if binding != nil && !binding.BoundAt.Before(period.Start) {
				return nil, apperror.NewValidation(
					"run for test query %s was already submitted during period %s", query.Id, period.Name)
			}
		}
	}

	doclist := make([]entity.RunDocument, 0, len(req.Doclist))
	for _, d := range req.Doclist {
		doc, err := uow.DocumentRepository().FindByID(ctx, d.DocId)
		if err != nil {
			return nil, err
		}
		if doc == nil {
			return nil, apperror.NewNotFound("document %s not found", d.DocId)
		}
		doclist = append(doclist, entity.RunDocument{
			DocId:     doc.Id,
			SiteDocId: doc.SiteDocId,
		})
	}

	run := entity.Run{
		Id:            uuid.New(),
		ParticipantId: participant.Id,
		QueryId:       query.Id,
		SiteQid:       query.SiteQid,
		RunLabel:      req.RunLabel,
		Doclist:       doclist,
		CreationTime:  now,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	if err := uow.RunRepository().DeleteByPair(ctx, query.Id, participant.Id); err != nil {
		uow.Rollback()
		return nil, err
	}
	if err := uow.RunRepository().Create(ctx, &run); err != nil {
		uow.Rollback()
		return nil, err
	}
	if err := uow.BindingRepository().Upsert(ctx, &entity.Binding{
		QueryId:       query.Id,
		ParticipantId: participant.Id,
		RunLabel:      run.RunLabel,
		BoundAt:       now,
	}); err != nil {
		uow.Rollback()
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	// Event delivery is auxiliary; failures must not fail the submission.
	if s.eventPublisher != nil {
		evt := events.NewRunSubmittedEvent(run.Id, run.QueryId, run.RunLabel, run.ParticipantId)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish run.submitted event: %v\n", err)
		}
	}

	return &dto.SubmitRunResponse{
		RunId:    run.Id,
		QueryId:  run.QueryId,
		RunLabel: run.RunLabel,
	}, nil
}

// ListBound reports every run a participant currently has bound, with the
// lifecycle state the next sweep would assign it.
func (s *runService) ListBound(ctx context.Context, participantId uuid.UUID) (*dto.ListBoundRunsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	bindings, err := uow.BindingRepository().FindAll(ctx,
		specification.ByParticipantID{ParticipantID: participantId},
	)
	if err != nil {
		return nil, err
	}

	now := s.now()
	views := make([]dto.BoundRunView, 0, len(bindings))
	for _, binding := range bindings {
		query, err := uow.QueryRepository().FindByID(ctx, binding.QueryId)
		if err != nil {
			return nil, err
		}
		run, err := uow.RunRepository().FindOne(ctx,
			specification.ByQueryID{QueryID: binding.QueryId},
			specification.ByParticipantID{ParticipantID: participantId},
		)
		if err != nil {
			return nil, err
		}
		if query == nil || run == nil {
			continue
		}

		c := Classify(now, s.challenge.RunAgeThresholdDays, s.challenge.ReactivationPeriodDays,
			[]BoundRun{{Query: query, Binding: binding, Run: run}})

		state, reason := "fresh", ""
		switch {
		case len(c.DeletableByDoclist) > 0:
			state, reason = "deletable", ReasonDoclist
		case len(c.DeletableByAge) > 0:
			state, reason = "deletable", ReasonAge
		case len(c.OutdatedByDoclist) > 0:
			state, reason = "outdated", ReasonDoclist
		case len(c.OutdatedByAge) > 0:
			state, reason = "outdated", ReasonAge
		}

		views = append(views, dto.BoundRunView{
			Qid:          query.Id,
			SiteQid:      query.SiteQid,
			RunLabel:     binding.RunLabel,
			BoundAt:      binding.BoundAt,
			CreationTime: run.CreationTime,
			State:        state,
			Reason:       reason,
		})
	}

	return &dto.ListBoundRunsResponse{Runs: views}, nil
}

func (s *runService) Show(ctx context.Context, queryId string, participantId uuid.UUID) (*dto.ShowRunResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	run, err := uow.RunRepository().FindOne(ctx,
		specification.ByQueryID{QueryID: queryId},
		specification.ByParticipantID{ParticipantID: participantId},
	)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, apperror.NewNotFound("no run for query %s", queryId)
	}

	doclist := make([]dto.RunDocumentPayload, 0, len(run.Doclist))
	for _, d := range run.Doclist {
		doclist = append(doclist, dto.RunDocumentPayload{DocId: d.DocId, SiteDocId: d.SiteDocId})
	}

	return &dto.ShowRunResponse{
		RunId:        run.Id,
		QueryId:      run.QueryId,
		RunLabel:     run.RunLabel,
		Doclist:      doclist,
		CreationTime: run.CreationTime,
	}, nil
}
