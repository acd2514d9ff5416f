package service

import (
	"context"
	"testing"
	"time"

	"livelabs-be/internal/apperror"
	"livelabs-be/internal/config"
	"livelabs-be/internal/dto"
	"livelabs-be/internal/entity"
	"livelabs-be/internal/repository/memory"
	"livelabs-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type feedbackEnv struct {
	factory unitofwork.RepositoryFactory
	svc     *feedbackService
	now     time.Time
}

func newFeedbackEnv(t *testing.T, periods []config.TestPeriod) *feedbackEnv {
	t.Helper()
	store := memory.NewStore()
	factory := memory.NewRepositoryFactory(store)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	svc := &feedbackService{
		uowFactory: factory,
		challenge:  config.ChallengeConfig{TestPeriods: periods},
		now:        func() time.Time { return now },
	}
	return &feedbackEnv{factory: factory, svc: svc, now: now}
}

func TestAddFeedbackResolvesSiteDocIds(t *testing.T) {
	env := newFeedbackEnv(t, nil)
	ctx := context.Background()
	uow := env.factory.NewUnitOfWork(ctx)

	doc := &entity.Document{Id: "global-1", SiteId: "s1", SiteDocId: "sd1"}
	require.NoError(t, uow.DocumentRepository().Create(ctx, doc))
	require.NoError(t, uow.FeedbackRepository().Create(ctx, &entity.Feedback{
		Sid:          "s1-s1",
		SiteId:       "s1",
		QueryId:      "q1",
		CreationTime: env.now.Add(-time.Hour),
	}))

	res, err := env.svc.AddFeedback(ctx, &dto.AddFeedbackRequest{
		SiteId: "s1",
		Sid:    "s1-s1",
		Doclist: []dto.FeedbackDocPayload{
			{SiteDocId: "sd1", Clicked: boolp(true)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "s1-s1", res.Sid)

	stored, err := uow.FeedbackRepository().FindBySid(ctx, "s1", "s1-s1")
	require.NoError(t, err)
	require.Len(t, stored.Doclist, 1)
	assert.Equal(t, "global-1", stored.Doclist[0].DocId, "site docid resolved to global id")
	require.NotNil(t, stored.ModifiedTime)
	assert.Equal(t, env.now, *stored.ModifiedTime)
}

func TestAddFeedbackUnknownSession(t *testing.T) {
	env := newFeedbackEnv(t, nil)
	_, err := env.svc.AddFeedback(context.Background(), &dto.AddFeedbackRequest{
		SiteId:  "s1",
		Sid:     "missing",
		Doclist: []dto.FeedbackDocPayload{{SiteDocId: "sd1"}},
	})
	assert.True(t, apperror.IsNotFound(err))
}

func TestAddFeedbackUnknownDocument(t *testing.T) {
	env := newFeedbackEnv(t, nil)
	ctx := context.Background()
	uow := env.factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.FeedbackRepository().Create(ctx, &entity.Feedback{Sid: "s1-s1", SiteId: "s1"}))

	_, err := env.svc.AddFeedback(ctx, &dto.AddFeedbackRequest{
		SiteId:  "s1",
		Sid:     "s1-s1",
		Doclist: []dto.FeedbackDocPayload{{SiteDocId: "nope"}},
	})
	assert.True(t, apperror.IsNotFound(err))
}

func TestGetFeedbackHidesTestQueriesDuringWindow(t *testing.T) {
	activePeriod := []config.TestPeriod{{
		Name:  "R1",
		Start: time.Date(2026, 5, 25, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 6, 8, 0, 0, 0, 0, time.UTC),
	}}
	env := newFeedbackEnv(t, activePeriod)
	ctx := context.Background()
	uow := env.factory.NewUnitOfWork(ctx)

	participantId := uuid.New()
	require.NoError(t, uow.QueryRepository().Create(ctx, &entity.Query{Id: "q-train", SiteId: "s1", Type: entity.QueryTypeTrain}))
	require.NoError(t, uow.QueryRepository().Create(ctx, &entity.Query{Id: "q-test", SiteId: "s1", Type: entity.QueryTypeTest}))
	require.NoError(t, uow.FeedbackRepository().Create(ctx, &entity.Feedback{
		Sid: "s1-s1", SiteId: "s1", QueryId: "q-train", ParticipantId: participantId,
	}))
	require.NoError(t, uow.FeedbackRepository().Create(ctx, &entity.Feedback{
		Sid: "s1-s2", SiteId: "s1", QueryId: "q-test", ParticipantId: participantId,
	}))

	res, err := env.svc.GetFeedback(ctx, participantId)
	require.NoError(t, err)
	require.Len(t, res.Feedback, 1, "test-query sessions hidden while a window is open")
	assert.Equal(t, "q-train", res.Feedback[0].Qid)

	// Window closed: everything is visible again.
	env.svc.now = func() time.Time { return activePeriod[0].End.Add(time.Hour) }
	res, err = env.svc.GetFeedback(ctx, participantId)
	require.NoError(t, err)
	assert.Len(t, res.Feedback, 2)
}
