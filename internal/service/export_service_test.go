package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"livelabs-be/internal/apperror"
	"livelabs-be/internal/config"
	"livelabs-be/internal/entity"
	"livelabs-be/internal/repository/contract"
	"livelabs-be/internal/repository/memory"
	"livelabs-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type exportEnv struct {
	factory     unitofwork.RepositoryFactory
	artifacts   contract.ArtifactStore
	svc         *exportService
	now         time.Time
	period      config.TestPeriod
	participant *entity.Participant
	query       *entity.Query
}

func newExportEnv(t *testing.T, qrelMode string) *exportEnv {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	factory := memory.NewRepositoryFactory(store)
	artifacts := memory.NewArtifactStore()

	period := config.TestPeriod{
		Name:  "R1",
		Start: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC),
	}
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

	query := &entity.Query{Id: "q1", SiteId: "s1", SiteQid: "sq1", Type: entity.QueryTypeTest}
	require.NoError(t, uow.QueryRepository().Create(ctx, query))

	svc := &exportService{
		uowFactory: factory,
		artifacts:  artifacts,
		challenge: config.ChallengeConfig{
			QrelMode:    qrelMode,
			TestPeriods: []config.TestPeriod{period},
		},
		now: func() time.Time { return now },
	}
	return &exportEnv{
		factory:     factory,
		artifacts:   artifacts,
		svc:         svc,
		now:         now,
		period:      period,
		participant: participant,
		query:       query,
	}
}

func (e *exportEnv) seedRun(t *testing.T, createdAt time.Time, label string, docIds ...string) *entity.Run {
	t.Helper()
	ctx := context.Background()
	uow := e.factory.NewUnitOfWork(ctx)
	doclist := make([]entity.RunDocument, len(docIds))
	for i, id := range docIds {
		doclist[i] = entity.RunDocument{DocId: id}
	}
	run := &entity.Run{
		Id:            uuid.New(),
		ParticipantId: e.participant.Id,
		QueryId:       e.query.Id,
		RunLabel:      label,
		Doclist:       doclist,
		CreationTime:  createdAt,
	}
	require.NoError(t, uow.RunRepository().Create(ctx, run))
	return run
}

func (e *exportEnv) seedSession(t *testing.T, createdAt time.Time, docs []entity.FeedbackDocument) {
	t.Helper()
	ctx := context.Background()
	uow := e.factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.FeedbackRepository().Create(ctx, &entity.Feedback{
		Sid:           uuid.NewString(),
		SiteId:        "s1",
		SiteQid:       e.query.SiteQid,
		QueryId:       e.query.Id,
		RunId:         uuid.New(),
		ParticipantId: e.participant.Id,
		Doclist:       docs,
		CreationTime:  createdAt,
	}))
}

func boolp(v bool) *bool { return &v }

func TestExportPeriodRunReportFormat(t *testing.T) {
	env := newExportEnv(t, QrelModeCTR)
	ctx := context.Background()
	env.seedRun(t, env.period.Start.Add(24*time.Hour), "baseline", "dA", "dB", "dC")

	res, err := env.svc.ExportPeriod(ctx, "s1", "R1")
	require.NoError(t, err)
	require.Contains(t, res.Artifacts, "r1-team-a.run")

	data, err := env.artifacts.Read(ctx, "r1-team-a.run")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "q1 Q0 dA 0 3 r1-team-a", lines[0])
	assert.Equal(t, "q1 Q0 dB 1 2 r1-team-a", lines[1])
	assert.Equal(t, "q1 Q0 dC 2 1 r1-team-a", lines[2])
}

func TestExportPeriodPicksLatestRunBeforeEnd(t *testing.T) {
	env := newExportEnv(t, QrelModeCTR)
	ctx := context.Background()

	env.seedRun(t, env.period.Start.Add(24*time.Hour), "early", "dOld")
	env.seedRun(t, env.period.Start.Add(48*time.Hour), "late", "dNew")
	// Created after the window end: must not count.
	env.seedRun(t, env.period.End.Add(time.Hour), "too-late", "dFuture")

	_, err := env.svc.ExportPeriod(ctx, "s1", "R1")
	require.NoError(t, err)

	data, err := env.artifacts.Read(ctx, "r1-team-a.run")
	require.NoError(t, err)
	assert.Contains(t, string(data), "dNew")
	assert.NotContains(t, string(data), "dOld")
	assert.NotContains(t, string(data), "dFuture")
}

func TestExportPeriodTieBreaksByInsertionOrder(t *testing.T) {
	env := newExportEnv(t, QrelModeCTR)
	ctx := context.Background()

	same := env.period.Start.Add(24 * time.Hour)
	env.seedRun(t, same, "first-write", "dFirst")
	env.seedRun(t, same, "second-write", "dSecond")

	_, err := env.svc.ExportPeriod(ctx, "s1", "R1")
	require.NoError(t, err)

	data, err := env.artifacts.Read(ctx, "r1-team-a.run")
	require.NoError(t, err)
	assert.Contains(t, string(data), "dSecond", "later write wins a creation-time tie")
	assert.NotContains(t, string(data), "dFirst")
}

func TestExportPeriodQrelCTR(t *testing.T) {
	env := newExportEnv(t, QrelModeCTR)
	ctx := context.Background()
	env.seedRun(t, env.period.Start.Add(time.Hour), "baseline", "dA")

	in := env.period.Start.Add(48 * time.Hour)
	env.seedSession(t, in, []entity.FeedbackDocument{{DocId: "dA", Clicked: boolp(true)}, {DocId: "dB", Clicked: boolp(false)}})
	env.seedSession(t, in, []entity.FeedbackDocument{{DocId: "dA", Clicked: boolp(true)}, {DocId: "dB", Clicked: boolp(true)}})
	env.seedSession(t, in, []entity.FeedbackDocument{{DocId: "dA", Clicked: boolp(false)}, {DocId: "dB", Clicked: boolp(false)}})
	// Outside the window: ignored.
	env.seedSession(t, env.period.End.Add(time.Hour), []entity.FeedbackDocument{{DocId: "dA", Clicked: boolp(true)}})

	res, err := env.svc.ExportPeriod(ctx, "s1", "R1")
	require.NoError(t, err)
	require.Contains(t, res.Artifacts, "r1.qrel")

	data, err := env.artifacts.Read(ctx, "r1.qrel")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	// 2 of 3 impressions clicked, CTR formatted to six decimals, sorted desc.
	assert.Equal(t, "q1 0 dA 0.666667", lines[0])
	assert.Equal(t, "q1 0 dB 0.333333", lines[1])
}

func TestExportPeriodQrelClicks(t *testing.T) {
	env := newExportEnv(t, QrelModeClicks)
	ctx := context.Background()

	in := env.period.Start.Add(48 * time.Hour)
	env.seedSession(t, in, []entity.FeedbackDocument{{DocId: "dA", Clicked: boolp(true)}})
	env.seedSession(t, in, []entity.FeedbackDocument{{DocId: "dA", Interactions: []entity.Interaction{{Type: "view"}}}})
	env.seedSession(t, in, []entity.FeedbackDocument{{DocId: "dB", Clicked: boolp(true)}})

	_, err := env.svc.ExportPeriod(ctx, "s1", "R1")
	require.NoError(t, err)

	data, err := env.artifacts.Read(ctx, "r1.qrel")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	// Raw click counts; an interaction list counts the same as a click flag.
	assert.Equal(t, "q1 0 dA 2", lines[0])
	assert.Equal(t, "q1 0 dB 1", lines[1])
}

func TestExportPeriodRejectsOpenPeriod(t *testing.T) {
	env := newExportEnv(t, QrelModeCTR)
	env.svc.now = func() time.Time { return env.period.End.Add(-time.Hour) }

	_, err := env.svc.ExportPeriod(context.Background(), "s1", "R1")
	assert.True(t, apperror.IsValidation(err))
}

func TestExportPeriodUnknownPeriod(t *testing.T) {
	env := newExportEnv(t, QrelModeCTR)
	_, err := env.svc.ExportPeriod(context.Background(), "s1", "R9")
	assert.True(t, apperror.IsNotFound(err))
}
