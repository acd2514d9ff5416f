package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"livelabs-be/internal/apperror"
	"livelabs-be/internal/dto"
	"livelabs-be/internal/entity"
	"livelabs-be/internal/repository/contract"
	"livelabs-be/internal/repository/specification"
	"livelabs-be/internal/repository/unitofwork"
)

type IServingService interface {
	SelectForServing(ctx context.Context, req *dto.RankingRequest) (*dto.RankingResponse, error)
}

// servingService picks which bound run a site shows for a query. Selection
// is a uniform random draw over bindings with a non-empty doclist; it
// mutates nothing but the feedback store.
type servingService struct {
	uowFactory unitofwork.RepositoryFactory
	allocator  contract.SessionAllocator

	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

func NewServingService(
	uowFactory unitofwork.RepositoryFactory,
	allocator contract.SessionAllocator,
	rnd *rand.Rand,
) IServingService {
	return &servingService{
		uowFactory: uowFactory,
		allocator:  allocator,
		rnd:        rnd,
		now:        time.Now,
	}
}

func (s *servingService) SelectForServing(ctx context.Context, req *dto.RankingRequest) (*dto.RankingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	query, err := retryRead(ctx, func() (*entity.Query, error) {
		return uow.QueryRepository().FindOne(ctx,
			specification.BySiteID{SiteID: req.SiteId},
			specification.BySiteQID{SiteQID: req.SiteQid},
		)
	})
	if err != nil {
		return nil, apperror.NewTransientStore("query lookup failed", err)
	}
	if query == nil {
		return nil, apperror.NewNotFound("query %s not found for site %s", req.SiteQid, req.SiteId)
	}

	bindings, err := retryRead(ctx, func() ([]*entity.Binding, error) {
		return uow.BindingRepository().FindAll(ctx, specification.ByQueryID{QueryID: query.Id})
	})
	if err != nil {
		return nil, apperror.NewTransientStore("binding lookup failed", err)
	}
	if len(bindings) == 0 {
		return nil, apperror.NewNotFound("query %s has no bound runs", req.SiteQid)
	}

	// Fisher-Yates over the snapshot; *rand.Rand is not goroutine safe.
	order := make([]int, len(bindings))
	for i := range order {
		order[i] = i
	}
	s.mu.Lock()
	s.rnd.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	s.mu.Unlock()

	var selected *entity.Run
	for _, idx := range order {
		binding := bindings[idx]
		run, err := uow.RunRepository().FindOne(ctx,
			specification.ByQueryID{QueryID: binding.QueryId},
			specification.ByParticipantID{ParticipantID: binding.ParticipantId},
		)
		if err != nil {
			return nil, err
		}
		if run != nil && len(run.Doclist) > 0 {
			selected = run
			break
		}
	}
	if selected == nil {
		return nil, apperror.NewNoEligibleRun("all bound runs for query %s have empty doclists", req.SiteQid)
	}

	sid, err := s.allocator.NextSid(ctx, req.SiteId)
	if err != nil {
		return nil, err
	}

	feedback := entity.Feedback{
		Sid:           sid,
		SiteId:        req.SiteId,
		SiteQid:       query.SiteQid,
		QueryId:       query.Id,
		RunId:         selected.Id,
		RunLabel:      selected.RunLabel,
		ParticipantId: selected.ParticipantId,
		CreationTime:  s.now(),
	}
	if err := uow.FeedbackRepository().Create(ctx, &feedback); err != nil {
		return nil, err
	}

	doclist := make([]dto.RankingDoc, 0, len(selected.Doclist))
	for _, d := range selected.Doclist {
		doclist = append(doclist, dto.RankingDoc{DocId: d.DocId, SiteDocId: d.SiteDocId})
	}

	return &dto.RankingResponse{
		Sid:     sid,
		SiteQid: query.SiteQid,
		Doclist: doclist,
	}, nil
}
