package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"livelabs-be/internal/config"
	"livelabs-be/internal/dto"
	"livelabs-be/internal/entity"
	"livelabs-be/internal/repository/contract"
	"livelabs-be/internal/repository/memory"
	"livelabs-be/internal/repository/specification"
	"livelabs-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type recordingPublisher struct {
	messages []dto.NotifyRunMessage
}

func (p *recordingPublisher) Publish(_ context.Context, payload []byte) error {
	var msg dto.NotifyRunMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return err
	}
	p.messages = append(p.messages, msg)
	return nil
}

func daysAgo(now time.Time, days int) time.Time {
	return now.AddDate(0, 0, -days)
}

func TestClassify(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	newBound := func(boundDaysAgo int, doclistModifiedDaysAgo *int) BoundRun {
		q := &entity.Query{Id: "q1"}
		if doclistModifiedDaysAgo != nil {
			td := daysAgo(now, *doclistModifiedDaysAgo)
			q.DoclistModifiedAt = &td
		}
		boundAt := daysAgo(now, boundDaysAgo)
		return BoundRun{
			Query:   q,
			Binding: &entity.Binding{QueryId: "q1", BoundAt: boundAt},
			Run:     &entity.Run{Id: uuid.New(), QueryId: "q1", CreationTime: boundAt},
		}
	}
	intp := func(v int) *int { return &v }

	tests := []struct {
		name               string
		bound              BoundRun
		wantOutdatedAge    bool
		wantOutdatedDoc    bool
		wantDeletableAge   bool
		wantDeletableDoc   bool
	}{
		{
			name:  "fresh run stays untouched",
			bound: newBound(1, nil),
		},
		{
			name:            "bound 31 days ago is outdated by age",
			bound:           newBound(31, nil),
			wantOutdatedAge: true,
		},
		{
			name:             "bound 40 days ago is deletable by age",
			bound:            newBound(40, nil),
			wantDeletableAge: true,
		},
		{
			name:            "doclist changed after binding marks outdated",
			bound:           newBound(5, intp(2)),
			wantOutdatedDoc: true,
		},
		{
			name:             "doclist changed past grace marks deletable",
			bound:            newBound(20, intp(10)),
			wantDeletableDoc: true,
		},
		{
			name:             "doclist reason suppresses age reason",
			bound:            newBound(40, intp(10)),
			wantDeletableDoc: true,
		},
		{
			name:            "doclist change before binding falls back to age",
			bound:           newBound(31, intp(35)),
			wantOutdatedAge: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(now, 30, 7, []BoundRun{tt.bound})
			assert.Equal(t, tt.wantOutdatedAge, len(c.OutdatedByAge) == 1, "outdated by age")
			assert.Equal(t, tt.wantOutdatedDoc, len(c.OutdatedByDoclist) == 1, "outdated by doclist")
			assert.Equal(t, tt.wantDeletableAge, len(c.DeletableByAge) == 1, "deletable by age")
			assert.Equal(t, tt.wantDeletableDoc, len(c.DeletableByDoclist) == 1, "deletable by doclist")

			total := len(c.OutdatedByAge) + len(c.OutdatedByDoclist) +
				len(c.DeletableByAge) + len(c.DeletableByDoclist)
			assert.LessOrEqual(t, total, 1, "buckets must be mutually exclusive")
		})
	}
}

// Every deletable run must also satisfy the outdated predicate of its
// reason, for a spread of bound ages and thresholds.
func TestClassifyDeletableIsSubsetOfOutdated(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	for ageDays := 1; ageDays <= 60; ageDays += 7 {
		for reactDays := 0; reactDays <= 14; reactDays += 7 {
			for boundDaysAgo := 0; boundDaysAgo <= 90; boundDaysAgo += 3 {
				boundAt := daysAgo(now, boundDaysAgo)
				br := BoundRun{
					Query:   &entity.Query{Id: "q"},
					Binding: &entity.Binding{QueryId: "q", BoundAt: boundAt},
					Run:     &entity.Run{Id: uuid.New(), CreationTime: boundAt},
				}
				c := Classify(now, ageDays, reactDays, []BoundRun{br})
				for _, del := range c.DeletableByAge {
					outdatedPredicate := del.Binding.BoundAt.Before(now.AddDate(0, 0, -ageDays))
					require.True(t, outdatedPredicate,
						"deletable run (age=%d react=%d bound=%d) must satisfy outdated predicate",
						ageDays, reactDays, boundDaysAgo)
				}
			}
		}
	}

	// Doclist analog: a deletable-by-doclist run must satisfy the doclist
	// outdated predicate, bound before the doclist change.
	for reactDays := 0; reactDays <= 14; reactDays += 7 {
		for docDaysAgo := 0; docDaysAgo <= 45; docDaysAgo += 5 {
			for boundDaysAgo := 0; boundDaysAgo <= 90; boundDaysAgo += 3 {
				td := daysAgo(now, docDaysAgo)
				boundAt := daysAgo(now, boundDaysAgo)
				br := BoundRun{
					Query:   &entity.Query{Id: "q", DoclistModifiedAt: &td},
					Binding: &entity.Binding{QueryId: "q", BoundAt: boundAt},
					Run:     &entity.Run{Id: uuid.New(), CreationTime: boundAt},
				}
				c := Classify(now, 30, reactDays, []BoundRun{br})
				for _, del := range c.DeletableByDoclist {
					require.True(t, del.Binding.BoundAt.Before(td),
						"deletable run (react=%d doclist=%d bound=%d) must satisfy outdated predicate",
						reactDays, docDaysAgo, boundDaysAgo)
				}
			}
		}
	}
}

type sweepEnv struct {
	store     *memory.Store
	factory   unitofwork.RepositoryFactory
	publisher *recordingPublisher
	svc       *lifecycleService
	now       time.Time
}

func newSweepEnv(t *testing.T) *sweepEnv {
	t.Helper()
	store := memory.NewStore()
	factory := memory.NewRepositoryFactory(store)
	publisher := &recordingPublisher{}
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	svc := &lifecycleService{
		uowFactory: factory,
		challenge: config.ChallengeConfig{
			RunAgeThresholdDays:    30,
			ReactivationPeriodDays: 7,
		},
		notifier: publisher,
		log:      nopLogger{},
		now:      func() time.Time { return now },
	}
	return &sweepEnv{store: store, factory: factory, publisher: publisher, svc: svc, now: now}
}

func (e *sweepEnv) seedBoundRun(t *testing.T, qid string, boundDaysAgo int) (*entity.Query, *entity.Run) {
	t.Helper()
	ctx := context.Background()
	uow := e.factory.NewUnitOfWork(ctx)

	query := &entity.Query{Id: qid, SiteId: "s1", SiteQid: "sq-" + qid, Type: entity.QueryTypeTrain}
	require.NoError(t, uow.QueryRepository().Create(ctx, query))

	boundAt := daysAgo(e.now, boundDaysAgo)
	run := &entity.Run{
		Id:            uuid.New(),
		ParticipantId: uuid.New(),
		QueryId:       qid,
		RunLabel:      "baseline",
		Doclist:       []entity.RunDocument{{DocId: "d1"}},
		CreationTime:  boundAt,
	}
	require.NoError(t, uow.RunRepository().Create(ctx, run))
	require.NoError(t, uow.BindingRepository().Upsert(ctx, &entity.Binding{
		QueryId:       qid,
		ParticipantId: run.ParticipantId,
		RunLabel:      run.RunLabel,
		BoundAt:       boundAt,
	}))
	return query, run
}

func TestSweepDeletesRunPastGracePeriod(t *testing.T) {
	env := newSweepEnv(t)
	ctx := context.Background()
	_, run := env.seedBoundRun(t, "q1", 40)

	res, err := env.svc.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Deleted)
	assert.Equal(t, 0, res.Outdated)

	uow := env.factory.NewUnitOfWork(ctx)
	gone, err := uow.RunRepository().FindOne(ctx, specification.ByID{ID: run.Id})
	require.NoError(t, err)
	assert.Nil(t, gone, "run row must be removed")

	binding, err := uow.BindingRepository().FindOne(ctx, specification.ByQueryID{QueryID: "q1"})
	require.NoError(t, err)
	assert.Nil(t, binding, "binding must be removed")

	require.Len(t, env.publisher.messages, 1)
	assert.Equal(t, dto.NotifyKindDeleted, env.publisher.messages[0].Kind)
	assert.Equal(t, ReasonAge, env.publisher.messages[0].Reason)
}

func TestSweepNotifiesOutdatedOnce(t *testing.T) {
	env := newSweepEnv(t)
	ctx := context.Background()
	env.seedBoundRun(t, "q1", 31)

	res, err := env.svc.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Outdated)
	assert.Equal(t, 1, res.Notified)
	require.Len(t, env.publisher.messages, 1)
	assert.Equal(t, dto.NotifyKindOutdated, env.publisher.messages[0].Kind)

	// Second pass: still outdated, but no second mail for the same version.
	res, err = env.svc.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Outdated)
	assert.Equal(t, 0, res.Notified)
	assert.Len(t, env.publisher.messages, 1)
}

func TestSweepSkipsRunReplacedMidSweep(t *testing.T) {
	env := newSweepEnv(t)
	ctx := context.Background()
	_, run := env.seedBoundRun(t, "q1", 40)

	// Simulate a racing fresh submission: binding re-stamped after snapshot.
	uow := env.factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.BindingRepository().Upsert(ctx, &entity.Binding{
		QueryId:       "q1",
		ParticipantId: run.ParticipantId,
		RunLabel:      "baseline-v2",
		BoundAt:       env.now,
	}))

	// The stale snapshot still classifies the old binding deletable, but the
	// conditional unbind must refuse and keep the pair intact.
	stale := BoundRun{
		Query:   &entity.Query{Id: "q1"},
		Binding: &entity.Binding{QueryId: "q1", ParticipantId: run.ParticipantId, RunLabel: "baseline", BoundAt: run.CreationTime},
		Run:     run,
	}
	deleted := env.svc.deleteBoundRun(ctx, uow, stale, ReasonAge)
	assert.False(t, deleted)

	binding, err := uow.BindingRepository().FindOne(ctx, specification.ByQueryID{QueryID: "q1"})
	require.NoError(t, err)
	require.NotNil(t, binding)
	assert.Equal(t, "baseline-v2", binding.RunLabel)
}

type failingDeleteRunRepository struct {
	contract.RunRepository
}

func (failingDeleteRunRepository) Delete(context.Context, uuid.UUID) error {
	return errors.New("store unavailable")
}

type failingDeleteUow struct {
	unitofwork.UnitOfWork
}

func (u failingDeleteUow) RunRepository() contract.RunRepository {
	return failingDeleteRunRepository{u.UnitOfWork.RunRepository()}
}

type failingDeleteFactory struct {
	inner unitofwork.RepositoryFactory
}

func (f failingDeleteFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return failingDeleteUow{f.inner.NewUnitOfWork(ctx)}
}

func TestSweepKeepsBindingWhenRunDeleteFails(t *testing.T) {
	env := newSweepEnv(t)
	ctx := context.Background()
	_, run := env.seedBoundRun(t, "q1", 40)

	env.svc.uowFactory = failingDeleteFactory{inner: env.factory}

	res, err := env.svc.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Deleted)
	assert.Empty(t, env.publisher.messages)

	// The unbind rolled back with the failed delete, so the pair is still
	// there for the next sweep to retry.
	uow := env.factory.NewUnitOfWork(ctx)
	binding, err := uow.BindingRepository().FindOne(ctx, specification.ByQueryID{QueryID: "q1"})
	require.NoError(t, err)
	require.NotNil(t, binding)
	assert.Equal(t, run.RunLabel, binding.RunLabel)

	kept, err := uow.RunRepository().FindOne(ctx, specification.ByID{ID: run.Id})
	require.NoError(t, err)
	assert.NotNil(t, kept, "run row must survive the failed delete")
}

func TestReactivateRestampsBinding(t *testing.T) {
	env := newSweepEnv(t)
	ctx := context.Background()
	_, run := env.seedBoundRun(t, "q1", 31)

	res, err := env.svc.Reactivate(ctx, &dto.ReactivateRunRequest{
		QueryId:       "q1",
		ParticipantId: run.ParticipantId,
	})
	require.NoError(t, err)
	assert.Equal(t, env.now, res.BoundAt)

	// Fresh again: the next sweep leaves it alone.
	sweepRes, err := env.svc.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, sweepRes.Outdated)
	assert.Equal(t, 0, sweepRes.Deleted)
}

func TestReactivateUnknownPair(t *testing.T) {
	env := newSweepEnv(t)
	ctx := context.Background()
	env.seedBoundRun(t, "q1", 31)

	_, err := env.svc.Reactivate(ctx, &dto.ReactivateRunRequest{
		QueryId:       "q1",
		ParticipantId: uuid.New(),
	})
	require.Error(t, err)
}
