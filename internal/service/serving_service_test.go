package service

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"livelabs-be/internal/apperror"
	"livelabs-be/internal/dto"
	"livelabs-be/internal/entity"
	"livelabs-be/internal/repository/memory"
	"livelabs-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type servingEnv struct {
	factory unitofwork.RepositoryFactory
	svc     *servingService
	now     time.Time
}

func newServingEnv(t *testing.T, seed int64) *servingEnv {
	t.Helper()
	store := memory.NewStore()
	factory := memory.NewRepositoryFactory(store)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	svc := &servingService{
		uowFactory: factory,
		allocator:  memory.NewSessionAllocator(),
		rnd:        rand.New(rand.NewSource(seed)),
		now:        func() time.Time { return now },
	}
	return &servingEnv{factory: factory, svc: svc, now: now}
}

func (e *servingEnv) seedQuery(t *testing.T, qid string) *entity.Query {
	t.Helper()
	ctx := context.Background()
	uow := e.factory.NewUnitOfWork(ctx)
	query := &entity.Query{Id: qid, SiteId: "s1", SiteQid: "sq-" + qid, Type: entity.QueryTypeTrain}
	require.NoError(t, uow.QueryRepository().Create(ctx, query))
	return query
}

func (e *servingEnv) seedBoundRun(t *testing.T, qid, label string, doclist []entity.RunDocument) *entity.Run {
	t.Helper()
	ctx := context.Background()
	uow := e.factory.NewUnitOfWork(ctx)
	run := &entity.Run{
		Id:            uuid.New(),
		ParticipantId: uuid.New(),
		QueryId:       qid,
		RunLabel:      label,
		Doclist:       doclist,
		CreationTime:  e.now,
	}
	require.NoError(t, uow.RunRepository().Create(ctx, run))
	require.NoError(t, uow.BindingRepository().Upsert(ctx, &entity.Binding{
		QueryId:       qid,
		ParticipantId: run.ParticipantId,
		RunLabel:      label,
		BoundAt:       e.now,
	}))
	return run
}

func TestSelectForServingSkipsEmptyDoclists(t *testing.T) {
	env := newServingEnv(t, 42)
	ctx := context.Background()
	env.seedQuery(t, "q1")
	env.seedBoundRun(t, "q1", "empty-a", nil)
	eligible := env.seedBoundRun(t, "q1", "full", []entity.RunDocument{{DocId: "d1"}, {DocId: "d2"}})
	env.seedBoundRun(t, "q1", "empty-b", nil)

	// Whatever the shuffle order, the only non-empty run must win.
	for i := 0; i < 10; i++ {
		res, err := env.svc.SelectForServing(ctx, &dto.RankingRequest{SiteId: "s1", SiteQid: "sq-q1"})
		require.NoError(t, err)
		assert.Len(t, res.Doclist, 2)
		assert.Equal(t, eligible.Doclist[0].DocId, res.Doclist[0].DocId)
	}
}

func TestSelectForServingPersistsFeedbackSession(t *testing.T) {
	env := newServingEnv(t, 1)
	ctx := context.Background()
	query := env.seedQuery(t, "q1")
	run := env.seedBoundRun(t, "q1", "full", []entity.RunDocument{{DocId: "d1"}})

	res, err := env.svc.SelectForServing(ctx, &dto.RankingRequest{SiteId: "s1", SiteQid: query.SiteQid})
	require.NoError(t, err)
	assert.Equal(t, "s1-s1", res.Sid, "first sid of the site counter")

	uow := env.factory.NewUnitOfWork(ctx)
	fb, err := uow.FeedbackRepository().FindBySid(ctx, "s1", res.Sid)
	require.NoError(t, err)
	require.NotNil(t, fb)
	assert.Equal(t, run.Id, fb.RunId)
	assert.Equal(t, run.ParticipantId, fb.ParticipantId)
	assert.Equal(t, env.now, fb.CreationTime)
	assert.Empty(t, fb.Doclist, "doclist stays empty until the site reports back")

	// Session ids are monotonic per site.
	res2, err := env.svc.SelectForServing(ctx, &dto.RankingRequest{SiteId: "s1", SiteQid: query.SiteQid})
	require.NoError(t, err)
	assert.Equal(t, "s1-s2", res2.Sid)
}

func TestSelectForServingUnknownQuery(t *testing.T) {
	env := newServingEnv(t, 1)
	_, err := env.svc.SelectForServing(context.Background(), &dto.RankingRequest{SiteId: "s1", SiteQid: "nope"})
	assert.True(t, apperror.IsNotFound(err))
}

func TestSelectForServingNoBindings(t *testing.T) {
	env := newServingEnv(t, 1)
	env.seedQuery(t, "q1")
	_, err := env.svc.SelectForServing(context.Background(), &dto.RankingRequest{SiteId: "s1", SiteQid: "sq-q1"})
	assert.True(t, apperror.IsNotFound(err))
}

func TestSelectForServingAllDoclistsEmpty(t *testing.T) {
	env := newServingEnv(t, 1)
	env.seedQuery(t, "q1")
	env.seedBoundRun(t, "q1", "empty-a", nil)
	env.seedBoundRun(t, "q1", "empty-b", nil)

	_, err := env.svc.SelectForServing(context.Background(), &dto.RankingRequest{SiteId: "s1", SiteQid: "sq-q1"})
	assert.True(t, apperror.IsNoEligibleRun(err), "empty runs must never be served")
}
