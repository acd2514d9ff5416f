package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"livelabs-be/internal/apperror"
	"livelabs-be/internal/config"
	"livelabs-be/internal/dto"
	"livelabs-be/internal/entity"
	"livelabs-be/internal/pkg/logger"
	"livelabs-be/internal/repository/specification"
	"livelabs-be/internal/repository/unitofwork"
	"livelabs-be/pkg/events"
	pktNats "livelabs-be/pkg/nats"
)

const (
	ReasonAge     = "age"
	ReasonDoclist = "doclist"
)

// BoundRun is one (query, binding, run) triple, the unit the classifier
// works on.
type BoundRun struct {
	Query   *entity.Query
	Binding *entity.Binding
	Run     *entity.Run
}

// Classification holds the four sweep buckets. A run appears in at most one
// bucket; fresh runs appear in none.
type Classification struct {
	OutdatedByAge      []BoundRun
	OutdatedByDoclist  []BoundRun
	DeletableByAge     []BoundRun
	DeletableByDoclist []BoundRun
}

func (c Classification) Outdated() []BoundRun {
	return append(append([]BoundRun{}, c.OutdatedByDoclist...), c.OutdatedByAge...)
}

func (c Classification) Deletable() []BoundRun {
	return append(append([]BoundRun{}, c.DeletableByDoclist...), c.DeletableByAge...)
}

// Classify buckets bound runs by staleness. A doclist change after bound-at
// is the stronger signal and suppresses the age check for that run; within
// each reason, runs past the reactivation grace period are deletable, runs
// inside it are outdated.
func Classify(now time.Time, ageThresholdDays, reactivationDays int, bound []BoundRun) Classification {
	var c Classification
	ageThreshold := now.AddDate(0, 0, -ageThresholdDays)
	reactivation := time.Duration(reactivationDays) * 24 * time.Hour

	for _, br := range bound {
		boundAt := br.Binding.BoundAt
		if td := br.Query.DoclistModifiedAt; td != nil && boundAt.Before(*td) {
			if boundAt.Before(td.Add(-reactivation)) {
				c.DeletableByDoclist = append(c.DeletableByDoclist, br)
			} else {
				c.OutdatedByDoclist = append(c.OutdatedByDoclist, br)
			}
			continue
		}
		if boundAt.Before(ageThreshold.Add(-reactivation)) {
			c.DeletableByAge = append(c.DeletableByAge, br)
		} else if boundAt.Before(ageThreshold) {
			c.OutdatedByAge = append(c.OutdatedByAge, br)
		}
	}
	return c
}

type ILifecycleService interface {
	Sweep(ctx context.Context) (*dto.SweepResponse, error)
	Reactivate(ctx context.Context, req *dto.ReactivateRunRequest) (*dto.ReactivateRunResponse, error)
}

type lifecycleService struct {
	uowFactory     unitofwork.RepositoryFactory
	challenge      config.ChallengeConfig
	notifier       IPublisherService
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
	now            func() time.Time
}

func NewLifecycleService(
	uowFactory unitofwork.RepositoryFactory,
	challenge config.ChallengeConfig,
	notifier IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) ILifecycleService {
	return &lifecycleService{
		uowFactory:     uowFactory,
		challenge:      challenge,
		notifier:       notifier,
		eventPublisher: eventPublisher,
		log:            log,
		now:            time.Now,
	}
}

// Sweep classifies every bound run and applies the side effects: deletable
// runs are unbound and removed, outdated runs get a one-time warning mail.
// Each query is processed independently so one bad query cannot stall the
// whole sweep.
func (s *lifecycleService) Sweep(ctx context.Context) (*dto.SweepResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	now := s.now()

	queries, err := uow.QueryRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}

	var bound []BoundRun
	for _, query := range queries {
		triples, err := s.loadBoundRuns(ctx, uow, query)
		if err != nil {
			s.log.Error("lifecycle", "failed to load bound runs for query", map[string]interface{}{
				"qid":   query.Id,
				"error": err.Error(),
			})
			continue
		}
		bound = append(bound, triples...)
	}

	c := Classify(now, s.challenge.RunAgeThresholdDays, s.challenge.ReactivationPeriodDays, bound)

	resp := &dto.SweepResponse{}

	for _, br := range c.DeletableByDoclist {
		if s.deleteBoundRun(ctx, uow, br, ReasonDoclist) {
			resp.Deleted++
		}
	}
	for _, br := range c.DeletableByAge {
		if s.deleteBoundRun(ctx, uow, br, ReasonAge) {
			resp.Deleted++
		}
	}

	for _, br := range c.OutdatedByDoclist {
		notified := s.notifyOutdated(ctx, uow, br, ReasonDoclist, now)
		resp.Outdated++
		if notified {
			resp.Notified++
		}
	}
	for _, br := range c.OutdatedByAge {
		notified := s.notifyOutdated(ctx, uow, br, ReasonAge, now)
		resp.Outdated++
		if notified {
			resp.Notified++
		}
	}

	s.log.Info("lifecycle", "sweep finished", map[string]interface{}{
		"outdated": resp.Outdated,
		"deleted":  resp.Deleted,
		"notified": resp.Notified,
	})
	return resp, nil
}

func (s *lifecycleService) loadBoundRuns(ctx context.Context, uow unitofwork.UnitOfWork, query *entity.Query) ([]BoundRun, error) {
	bindings, err := uow.BindingRepository().FindAll(ctx, specification.ByQueryID{QueryID: query.Id})
	if err != nil {
		return nil, err
	}

	var out []BoundRun
	for _, binding := range bindings {
		run, err := uow.RunRepository().FindOne(ctx,
			specification.ByQueryID{QueryID: binding.QueryId},
			specification.ByParticipantID{ParticipantID: binding.ParticipantId},
		)
		if err != nil {
			return nil, err
		}
		if run == nil {
			// Dangling binding; drop it unless a submission raced us.
			s.log.Warn("lifecycle", "binding without run, unbinding", map[string]interface{}{
				"qid":            binding.QueryId,
				"participant_id": binding.ParticipantId.String(),
			})
			if _, err := uow.BindingRepository().DeleteMatching(ctx, binding); err != nil {
				return nil, err
			}
			continue
		}
		out = append(out, BoundRun{Query: query, Binding: binding, Run: run})
	}
	return out, nil
}

// deleteBoundRun unbinds and removes one deletable run inside a single
// transaction. The unbind is conditional on the snapshotted
// (run label, bound-at); when it reports no match a fresh submission
// replaced the binding mid-sweep and the run must survive. A failed run
// delete rolls the unbind back, so the cleanup re-drives on the next sweep.
func (s *lifecycleService) deleteBoundRun(ctx context.Context, uow unitofwork.UnitOfWork, br BoundRun, reason string) bool {
	if err := uow.Begin(ctx); err != nil {
		s.log.Error("lifecycle", "failed to begin delete transaction", map[string]interface{}{
			"run_id": br.Run.Id.String(),
			"error":  err.Error(),
		})
		return false
	}

	removed, err := uow.BindingRepository().DeleteMatching(ctx, br.Binding)
	if err != nil {
		uow.Rollback()
		s.log.Error("lifecycle", "failed to unbind deletable run", map[string]interface{}{
			"run_id": br.Run.Id.String(),
			"error":  err.Error(),
		})
		return false
	}
	if !removed {
		uow.Rollback()
		s.log.Info("lifecycle", "binding replaced mid-sweep, keeping run", map[string]interface{}{
			"qid":            br.Binding.QueryId,
			"participant_id": br.Binding.ParticipantId.String(),
		})
		return false
	}

	if err := uow.RunRepository().Delete(ctx, br.Run.Id); err != nil {
		uow.Rollback()
		s.log.Error("lifecycle", "failed to delete run", map[string]interface{}{
			"run_id": br.Run.Id.String(),
			"error":  err.Error(),
		})
		return false
	}

	if err := uow.Commit(); err != nil {
		s.log.Error("lifecycle", "failed to commit delete transaction", map[string]interface{}{
			"run_id": br.Run.Id.String(),
			"error":  err.Error(),
		})
		return false
	}

	s.publishNotice(ctx, dto.NotifyKindDeleted, br, reason)

	if s.eventPublisher != nil {
		evt := events.NewRunDeletedEvent(br.Run.Id, br.Run.QueryId, br.Run.RunLabel, br.Run.ParticipantId, reason)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish run.deleted event: %v\n", err)
		}
	}
	return true
}

// notifyOutdated mails the warning at most once per run version. A new
// submission creates a new run with an unset notification time, which makes
// the pair eligible again.
func (s *lifecycleService) notifyOutdated(ctx context.Context, uow unitofwork.UnitOfWork, br BoundRun, reason string, now time.Time) bool {
	sent := br.Run.NotificationSentTime
	if sent != nil && !sent.Before(br.Run.CreationTime) {
		return false
	}

	s.publishNotice(ctx, dto.NotifyKindOutdated, br, reason)

	if err := uow.RunRepository().SetNotificationTime(ctx, br.Run.Id, now); err != nil {
		s.log.Error("lifecycle", "failed to stamp notification time", map[string]interface{}{
			"run_id": br.Run.Id.String(),
			"error":  err.Error(),
		})
		return false
	}

	if s.eventPublisher != nil {
		evt := events.NewRunOutdatedEvent(br.Run.Id, br.Run.QueryId, br.Run.RunLabel, br.Run.ParticipantId, reason)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish run.outdated event: %v\n", err)
		}
	}
	return true
}

func (s *lifecycleService) publishNotice(ctx context.Context, kind string, br BoundRun, reason string) {
	if s.notifier == nil {
		return
	}
	payload, err := json.Marshal(dto.NotifyRunMessage{
		Kind:          kind,
		RunId:         br.Run.Id,
		QueryId:       br.Run.QueryId,
		RunLabel:      br.Run.RunLabel,
		ParticipantId: br.Run.ParticipantId,
		Reason:        reason,
	})
	if err != nil {
		s.log.Error("lifecycle", "failed to marshal notify message", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := s.notifier.Publish(ctx, payload); err != nil {
		s.log.Error("lifecycle", "failed to publish notify message", map[string]interface{}{"error": err.Error()})
	}
}

// Reactivate re-stamps the binding's bound-at so an outdated run counts as
// fresh again.
func (s *lifecycleService) Reactivate(ctx context.Context, req *dto.ReactivateRunRequest) (*dto.ReactivateRunResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	query, err := uow.QueryRepository().FindByID(ctx, req.QueryId)
	if err != nil {
		return nil, err
	}
	if query == nil {
		return nil, apperror.NewNotFound("query %s not found", req.QueryId)
	}

	now := s.now()
	ok, err := uow.BindingRepository().Rebind(ctx, req.QueryId, req.ParticipantId, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.NewNotFound("no bound run for query %s", req.QueryId)
	}

	return &dto.ReactivateRunResponse{QueryId: req.QueryId, BoundAt: now}, nil
}
