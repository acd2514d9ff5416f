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
	"livelabs-be/internal/repository/specification"
	"livelabs-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type runEnv struct {
	factory     unitofwork.RepositoryFactory
	svc         *runService
	now         time.Time
	participant *entity.Participant
	query       *entity.Query
	docIds      []string
}

func newRunEnv(t *testing.T, queryType string, periods []config.TestPeriod) *runEnv {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	factory := memory.NewRepositoryFactory(store)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.SiteRepository().Create(ctx, &entity.Site{Id: "s1", Name: "Site One", Enabled: true}))

	participant := &entity.Participant{
		Id:         uuid.New(),
		TeamName:   "Team A",
		Email:      "a@example.org",
		IsVerified: true,
		SiteIds:    []string{"s1"},
	}
	require.NoError(t, uow.ParticipantRepository().Create(ctx, participant))

	query := &entity.Query{Id: "q1", SiteId: "s1", SiteQid: "sq1", Type: queryType}
	require.NoError(t, uow.QueryRepository().Create(ctx, query))

	var docIds []string
	for _, sdid := range []string{"sd1", "sd2"} {
		doc := &entity.Document{Id: uuid.NewString(), SiteId: "s1", SiteDocId: sdid}
		require.NoError(t, uow.DocumentRepository().Create(ctx, doc))
		docIds = append(docIds, doc.Id)
	}

	svc := &runService{
		uowFactory: factory,
		challenge: config.ChallengeConfig{
			RunAgeThresholdDays:    30,
			ReactivationPeriodDays: 7,
			TestPeriods:            periods,
		},
		now: func() time.Time { return now },
	}
	return &runEnv{factory: factory, svc: svc, now: now, participant: participant, query: query, docIds: docIds}
}

func (e *runEnv) submitReq(label string) *dto.SubmitRunRequest {
	docs := make([]dto.RunDocumentPayload, len(e.docIds))
	for i, id := range e.docIds {
		docs[i] = dto.RunDocumentPayload{DocId: id}
	}
	return &dto.SubmitRunRequest{
		QueryId:       e.query.Id,
		ParticipantId: e.participant.Id,
		RunLabel:      label,
		Doclist:       docs,
	}
}

func TestSubmitStoresRunAndBinding(t *testing.T) {
	env := newRunEnv(t, entity.QueryTypeTrain, nil)
	ctx := context.Background()

	res, err := env.svc.Submit(ctx, env.submitReq("baseline"))
	require.NoError(t, err)
	assert.Equal(t, "baseline", res.RunLabel)

	uow := env.factory.NewUnitOfWork(ctx)
	run, err := uow.RunRepository().FindOne(ctx, specification.ByID{ID: res.RunId})
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, env.now, run.CreationTime)
	assert.Nil(t, run.NotificationSentTime)
	// Doclist entries are enriched with the site-local document id.
	assert.Equal(t, "sd1", run.Doclist[0].SiteDocId)

	binding, err := uow.BindingRepository().FindOne(ctx, specification.ByQueryID{QueryID: env.query.Id})
	require.NoError(t, err)
	require.NotNil(t, binding)
	assert.Equal(t, "baseline", binding.RunLabel)
	assert.Equal(t, env.now, binding.BoundAt)
}

func TestSubmitReplacesPreviousRun(t *testing.T) {
	env := newRunEnv(t, entity.QueryTypeTrain, nil)
	ctx := context.Background()

	_, err := env.svc.Submit(ctx, env.submitReq("v1"))
	require.NoError(t, err)
	res2, err := env.svc.Submit(ctx, env.submitReq("v2"))
	require.NoError(t, err)

	uow := env.factory.NewUnitOfWork(ctx)
	runs, err := uow.RunRepository().FindAll(ctx,
		specification.ByQueryID{QueryID: env.query.Id},
		specification.ByParticipantID{ParticipantID: env.participant.Id},
	)
	require.NoError(t, err)
	require.Len(t, runs, 1, "old run must be removed on replacement")
	assert.Equal(t, res2.RunId, runs[0].Id)
	assert.Equal(t, "v2", runs[0].RunLabel)
}

func TestSubmitRejectsUnknownQuery(t *testing.T) {
	env := newRunEnv(t, entity.QueryTypeTrain, nil)
	req := env.submitReq("baseline")
	req.QueryId = "missing"

	_, err := env.svc.Submit(context.Background(), req)
	assert.True(t, apperror.IsNotFound(err))
}

func TestSubmitRejectsUnregisteredParticipant(t *testing.T) {
	env := newRunEnv(t, entity.QueryTypeTrain, nil)
	ctx := context.Background()

	other := &entity.Participant{Id: uuid.New(), TeamName: "Team B", SiteIds: []string{"other-site"}}
	uow := env.factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.ParticipantRepository().Create(ctx, other))

	req := env.submitReq("baseline")
	req.ParticipantId = other.Id

	_, err := env.svc.Submit(ctx, req)
	assert.True(t, apperror.IsPermissionDenied(err))
}

func TestSubmitRejectsEmptyDoclist(t *testing.T) {
	env := newRunEnv(t, entity.QueryTypeTrain, nil)
	req := env.submitReq("baseline")
	req.Doclist = nil

	_, err := env.svc.Submit(context.Background(), req)
	assert.True(t, apperror.IsValidation(err))
}

func TestSubmitRejectsUnknownDocument(t *testing.T) {
	env := newRunEnv(t, entity.QueryTypeTrain, nil)
	req := env.submitReq("baseline")
	req.Doclist = append(req.Doclist, dto.RunDocumentPayload{DocId: "missing"})

	_, err := env.svc.Submit(context.Background(), req)
	assert.True(t, apperror.IsNotFound(err))
}

func TestSubmitFreezesTestQueryDuringWindow(t *testing.T) {
	periods := []config.TestPeriod{{
		Name:  "R1",
		Start: time.Date(2026, 5, 25, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 6, 8, 0, 0, 0, 0, time.UTC),
	}}
	env := newRunEnv(t, entity.QueryTypeTest, periods)
	ctx := context.Background()

	_, err := env.svc.Submit(ctx, env.submitReq("v1"))
	require.NoError(t, err)

	_, err = env.svc.Submit(ctx, env.submitReq("v2"))
	assert.True(t, apperror.IsValidation(err), "second submission inside the window must fail")
}

func TestSubmitAllowsTestQueryOutsideWindow(t *testing.T) {
	periods := []config.TestPeriod{{
		Name:  "R0",
		Start: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}}
	env := newRunEnv(t, entity.QueryTypeTest, periods)
	ctx := context.Background()

	_, err := env.svc.Submit(ctx, env.submitReq("v1"))
	require.NoError(t, err)
	_, err = env.svc.Submit(ctx, env.submitReq("v2"))
	require.NoError(t, err, "no active window, replacement is allowed")
}
