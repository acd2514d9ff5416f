package service

import (
	"context"
	"time"

	"livelabs-be/internal/apperror"
	"livelabs-be/internal/dto"
	"livelabs-be/internal/entity"
	"livelabs-be/internal/repository/specification"
	"livelabs-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IQueryService interface {
	ListForSite(ctx context.Context, siteId string) (*dto.ListQueriesResponse, error)
	ListForParticipant(ctx context.Context, participant *entity.Participant) (*dto.ListQueriesResponse, error)
	UpsertQueries(ctx context.Context, req *dto.UploadQueriesRequest) (*dto.UploadQueriesResponse, error)
	DeleteQueries(ctx context.Context, siteId string) error
	UploadDoclist(ctx context.Context, req *dto.UploadDoclistRequest) (*dto.UploadDoclistResponse, error)
}

type queryService struct {
	uowFactory unitofwork.RepositoryFactory
	now        func() time.Time
}

func NewQueryService(uowFactory unitofwork.RepositoryFactory) IQueryService {
	return &queryService{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

func (s *queryService) ListForSite(ctx context.Context, siteId string) (*dto.ListQueriesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	queries, err := uow.QueryRepository().FindAll(ctx, specification.BySiteID{SiteID: siteId})
	if err != nil {
		return nil, err
	}
	return &dto.ListQueriesResponse{Queries: toQueryViews(queries)}, nil
}

func (s *queryService) ListForParticipant(ctx context.Context, participant *entity.Participant) (*dto.ListQueriesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	var views []dto.QueryView
	for _, siteId := range participant.SiteIds {
		queries, err := uow.QueryRepository().FindAll(ctx, specification.BySiteID{SiteID: siteId})
		if err != nil {
			return nil, err
		}
		views = append(views, toQueryViews(queries)...)
	}
	return &dto.ListQueriesResponse{Queries: views}, nil
}

// UpsertQueries replaces or extends a site's query set. Existing site-local
// ids keep their global id, so bindings and runs survive query text updates.
func (s *queryService) UpsertQueries(ctx context.Context, req *dto.UploadQueriesRequest) (*dto.UploadQueriesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	resp := &dto.UploadQueriesResponse{}
	now := s.now()

	for _, payload := range req.Queries {
		qtype := payload.Type
		if qtype == "" {
			qtype = entity.QueryTypeTrain
		}

		existing, err := uow.QueryRepository().FindOne(ctx,
			specification.BySiteID{SiteID: req.SiteId},
			specification.BySiteQID{SiteQID: payload.SiteQid},
		)
		if err != nil {
			return nil, err
		}

		if existing != nil {
			existing.QStr = payload.QStr
			existing.Type = qtype
			if err := uow.QueryRepository().Update(ctx, existing); err != nil {
				return nil, err
			}
			resp.Updated++
			continue
		}

		query := entity.Query{
			Id:        uuid.NewString(),
			SiteId:    req.SiteId,
			SiteQid:   payload.SiteQid,
			QStr:      payload.QStr,
			Type:      qtype,
			CreatedAt: now,
		}
		if err := uow.QueryRepository().Create(ctx, &query); err != nil {
			return nil, err
		}
		resp.Created++
	}

	return resp, nil
}

func (s *queryService) DeleteQueries(ctx context.Context, siteId string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.QueryRepository().SoftDeleteBySite(ctx, siteId)
}

// UploadDoclist registers the candidate documents of a query and bumps the
// doclist modification time, which the next sweep uses to age out runs bound
// before the change.
func (s *queryService) UploadDoclist(ctx context.Context, req *dto.UploadDoclistRequest) (*dto.UploadDoclistResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	query, err := uow.QueryRepository().FindByID(ctx, req.QueryId)
	if err != nil {
		return nil, err
	}
	if query == nil || query.SiteId != req.SiteId {
		return nil, apperror.NewNotFound("query %s not found for site %s", req.QueryId, req.SiteId)
	}

	now := s.now()
	for _, payload := range req.Doclist {
		doc, err := uow.DocumentRepository().FindOne(ctx,
			specification.BySiteID{SiteID: req.SiteId},
			specification.BySiteDocID{SiteDocID: payload.SiteDocId},
		)
		if err != nil {
			return nil, err
		}
		if doc != nil {
			continue
		}
		if err := uow.DocumentRepository().Create(ctx, &entity.Document{
			Id:        uuid.NewString(),
			SiteId:    req.SiteId,
			SiteDocId: payload.SiteDocId,
			Title:     payload.Title,
			Content:   payload.Content,
			CreatedAt: now,
		}); err != nil {
			return nil, err
		}
	}

	query.DoclistModifiedAt = &now
	if err := uow.QueryRepository().Update(ctx, query); err != nil {
		return nil, err
	}

	return &dto.UploadDoclistResponse{Qid: query.Id, DocCount: len(req.Doclist)}, nil
}

func toQueryViews(queries []*entity.Query) []dto.QueryView {
	views := make([]dto.QueryView, 0, len(queries))
	for _, q := range queries {
		views = append(views, dto.QueryView{
			Qid:               q.Id,
			SiteQid:           q.SiteQid,
			QStr:              q.QStr,
			Type:              q.Type,
			DoclistModifiedAt: q.DoclistModifiedAt,
		})
	}
	return views
}
