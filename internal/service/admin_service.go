package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"livelabs-be/internal/apperror"
	"livelabs-be/internal/dto"
	"livelabs-be/internal/entity"
	"livelabs-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IAdminService interface {
	CreateSite(ctx context.Context, req *dto.CreateSiteRequest) (*dto.CreateSiteResponse, error)
	CreateParticipant(ctx context.Context, req *dto.CreateParticipantRequest) (*dto.CreateParticipantResponse, error)
	VerifyParticipant(ctx context.Context, id uuid.UUID) error
	ListSites(ctx context.Context) ([]dto.SiteView, error)
	ListParticipants(ctx context.Context) ([]dto.ParticipantView, error)
}

type adminService struct {
	uowFactory unitofwork.RepositoryFactory
	now        func() time.Time
}

func NewAdminService(uowFactory unitofwork.RepositoryFactory) IAdminService {
	return &adminService{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

func newApiKey() string {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return uuid.NewString()
	}
	return hex.EncodeToString(buf)
}

func (s *adminService) CreateSite(ctx context.Context, req *dto.CreateSiteRequest) (*dto.CreateSiteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.SiteRepository().FindByID(ctx, req.SiteId)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewValidation("site %s already exists", req.SiteId)
	}

	site := entity.Site{
		Id:        req.SiteId,
		Name:      req.Name,
		ApiKey:    newApiKey(),
		Enabled:   true,
		CreatedAt: s.now(),
	}
	if err := uow.SiteRepository().Create(ctx, &site); err != nil {
		return nil, err
	}

	return &dto.CreateSiteResponse{SiteId: site.Id, ApiKey: site.ApiKey}, nil
}

func (s *adminService) CreateParticipant(ctx context.Context, req *dto.CreateParticipantRequest) (*dto.CreateParticipantResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	for _, siteId := range req.SiteIds {
		site, err := uow.SiteRepository().FindByID(ctx, siteId)
		if err != nil {
			return nil, err
		}
		if site == nil {
			return nil, apperror.NewNotFound("site %s not found", siteId)
		}
	}

	participant := entity.Participant{
		Id:        uuid.New(),
		TeamName:  req.TeamName,
		Email:     req.Email,
		ApiKey:    newApiKey(),
		SiteIds:   req.SiteIds,
		CreatedAt: s.now(),
	}
	if err := uow.ParticipantRepository().Create(ctx, &participant); err != nil {
		return nil, err
	}

	return &dto.CreateParticipantResponse{Id: participant.Id, ApiKey: participant.ApiKey}, nil
}

func (s *adminService) VerifyParticipant(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	participant, err := uow.ParticipantRepository().FindByID(ctx, id)
	if err != nil {
		return err
	}
	if participant == nil {
		return apperror.NewNotFound("participant %s not found", id)
	}
	if participant.IsVerified {
		return nil
	}
	participant.IsVerified = true
	return uow.ParticipantRepository().Update(ctx, participant)
}

func (s *adminService) ListSites(ctx context.Context) ([]dto.SiteView, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sites, err := uow.SiteRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]dto.SiteView, 0, len(sites))
	for _, site := range sites {
		views = append(views, dto.SiteView{SiteId: site.Id, Name: site.Name, Enabled: site.Enabled})
	}
	return views, nil
}

func (s *adminService) ListParticipants(ctx context.Context) ([]dto.ParticipantView, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	participants, err := uow.ParticipantRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]dto.ParticipantView, 0, len(participants))
	for _, p := range participants {
		views = append(views, dto.ParticipantView{
			Id:         p.Id,
			TeamName:   p.TeamName,
			Email:      p.Email,
			IsVerified: p.IsVerified,
			SiteIds:    p.SiteIds,
			CreatedAt:  p.CreatedAt,
		})
	}
	return views, nil
}
