package service

import (
	"context"
	"time"

	"livelabs-be/internal/apperror"
	"livelabs-be/internal/config"
	"livelabs-be/internal/dto"
	"livelabs-be/internal/entity"
	"livelabs-be/internal/repository/specification"
	"livelabs-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IFeedbackService interface {
	AddFeedback(ctx context.Context, req *dto.AddFeedbackRequest) (*dto.AddFeedbackResponse, error)
	GetFeedback(ctx context.Context, participantId uuid.UUID) (*dto.ListFeedbackResponse, error)
}

type feedbackService struct {
	uowFactory unitofwork.RepositoryFactory
	challenge  config.ChallengeConfig
	now        func() time.Time
}

func NewFeedbackService(uowFactory unitofwork.RepositoryFactory, challenge config.ChallengeConfig) IFeedbackService {
	return &feedbackService{
		uowFactory: uowFactory,
		challenge:  challenge,
		now:        time.Now,
	}
}

// AddFeedback stores the click doclist a site reports for a served session.
// Site-local document ids are resolved back to global ids before storage.
func (s *feedbackService) AddFeedback(ctx context.Context, req *dto.AddFeedbackRequest) (*dto.AddFeedbackResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.FeedbackRepository().FindBySid(ctx, req.SiteId, req.Sid)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFound("session %s not found", req.Sid)
	}

	doclist := make([]entity.FeedbackDocument, 0, len(req.Doclist))
	for _, d := range req.Doclist {
		doc, err := uow.DocumentRepository().FindOne(ctx,
			specification.BySiteID{SiteID: req.SiteId},
			specification.BySiteDocID{SiteDocID: d.SiteDocId},
		)
		if err != nil {
			return nil, err
		}
		if doc == nil {
			return nil, apperror.NewNotFound("document %s not found for site %s", d.SiteDocId, req.SiteId)
		}

		interactions := make([]entity.Interaction, 0, len(d.Interactions))
		for _, in := range d.Interactions {
			interactions = append(interactions, entity.Interaction{Type: in.Type, At: in.At})
		}
		doclist = append(doclist, entity.FeedbackDocument{
			DocId:        doc.Id,
			SiteDocId:    doc.SiteDocId,
			Clicked:      d.Clicked,
			Interactions: interactions,
		})
	}

	now := s.now()
	session.Doclist = doclist
	session.ModifiedTime = &now

	if err := uow.FeedbackRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	return &dto.AddFeedbackResponse{Sid: session.Sid}, nil
}

// GetFeedback lists a participant's collected feedback. Sessions on test
// queries stay hidden while any evaluation window is open.
func (s *feedbackService) GetFeedback(ctx context.Context, participantId uuid.UUID) (*dto.ListFeedbackResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.FeedbackRepository().FindAll(ctx,
		specification.ByParticipantID{ParticipantID: participantId},
	)
	if err != nil {
		return nil, err
	}

	hideTest := s.challenge.ActivePeriod(s.now()) != nil

	views := make([]dto.FeedbackView, 0, len(sessions))
	for _, fb := range sessions {
		if hideTest {
			query, err := uow.QueryRepository().FindByID(ctx, fb.QueryId)
			if err != nil {
				return nil, err
			}
			if query != nil && query.Type == entity.QueryTypeTest {
				continue
			}
		}

		doclist := make([]dto.FeedbackDocPayload, 0, len(fb.Doclist))
		for _, d := range fb.Doclist {
			interactions := make([]dto.InteractionPayload, 0, len(d.Interactions))
			for _, in := range d.Interactions {
				interactions = append(interactions, dto.InteractionPayload{Type: in.Type, At: in.At})
			}
			doclist = append(doclist, dto.FeedbackDocPayload{
				SiteDocId:    d.SiteDocId,
				Clicked:      d.Clicked,
				Interactions: interactions,
			})
		}
		views = append(views, dto.FeedbackView{
			Sid:          fb.Sid,
			Qid:          fb.QueryId,
			SiteQid:      fb.SiteQid,
			RunLabel:     fb.RunLabel,
			Doclist:      doclist,
			CreationTime: fb.CreationTime,
			ModifiedTime: fb.ModifiedTime,
		})
	}

	return &dto.ListFeedbackResponse{Feedback: views}, nil
}
