package memory

import (
	"context"
	"testing"
	"time"

	"livelabs-be/internal/entity"
	"livelabs-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunFindAllOrdersByCreationTimeThenSeq(t *testing.T) {
	factory := NewRepositoryFactory(NewStore())
	ctx := context.Background()
	uow := factory.NewUnitOfWork(ctx)

	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	early := &entity.Run{Id: uuid.New(), QueryId: "q1", RunLabel: "early", CreationTime: base}
	tieFirst := &entity.Run{Id: uuid.New(), QueryId: "q1", RunLabel: "tie-first", CreationTime: base.Add(time.Hour)}
	tieSecond := &entity.Run{Id: uuid.New(), QueryId: "q1", RunLabel: "tie-second", CreationTime: base.Add(time.Hour)}
	for _, run := range []*entity.Run{early, tieFirst, tieSecond} {
		require.NoError(t, uow.RunRepository().Create(ctx, run))
	}

	runs, err := uow.RunRepository().FindAll(ctx,
		specification.ByQueryID{QueryID: "q1"},
		specification.OrderBy{Field: "creation_time", Desc: true},
		specification.OrderBy{Field: "seq", Desc: true},
	)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "tie-second", runs[0].RunLabel, "equal creation times fall back to the later write")
	assert.Equal(t, "tie-first", runs[1].RunLabel)
	assert.Equal(t, "early", runs[2].RunLabel)
}

func TestUnitOfWorkRollbackRestoresStore(t *testing.T) {
	factory := NewRepositoryFactory(NewStore())
	ctx := context.Background()
	uow := factory.NewUnitOfWork(ctx)

	run := &entity.Run{Id: uuid.New(), QueryId: "q1", RunLabel: "baseline"}
	require.NoError(t, uow.RunRepository().Create(ctx, run))
	require.NoError(t, uow.BindingRepository().Upsert(ctx, &entity.Binding{
		QueryId:       "q1",
		ParticipantId: run.ParticipantId,
		RunLabel:      run.RunLabel,
	}))

	require.NoError(t, uow.Begin(ctx))
	removed, err := uow.BindingRepository().DeleteMatching(ctx, &entity.Binding{
		QueryId:       "q1",
		ParticipantId: run.ParticipantId,
		RunLabel:      run.RunLabel,
	})
	require.NoError(t, err)
	require.True(t, removed)
	require.NoError(t, uow.RunRepository().Delete(ctx, run.Id))
	require.NoError(t, uow.Rollback())

	kept, err := uow.RunRepository().FindOne(ctx, specification.ByID{ID: run.Id})
	require.NoError(t, err)
	assert.NotNil(t, kept, "rollback must restore the deleted run")

	binding, err := uow.BindingRepository().FindOne(ctx, specification.ByQueryID{QueryID: "q1"})
	require.NoError(t, err)
	assert.NotNil(t, binding, "rollback must restore the removed binding")
}
