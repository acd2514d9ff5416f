package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"livelabs-be/internal/apperror"
	"livelabs-be/internal/config"
	"livelabs-be/internal/dto"
	"livelabs-be/internal/entity"
	"livelabs-be/internal/repository/contract"
	"livelabs-be/internal/repository/specification"
	"livelabs-be/internal/repository/unitofwork"
	"livelabs-be/pkg/textutil"
)

const (
	QrelModeCTR    = "ctr"
	QrelModeClicks = "clicks"
)

type IExportService interface {
	ExportPeriod(ctx context.Context, siteId, periodName string) (*dto.ExportPeriodResponse, error)
}

type exportService struct {
	uowFactory unitofwork.RepositoryFactory
	artifacts  contract.ArtifactStore
	challenge  config.ChallengeConfig
	now        func() time.Time
}

func NewExportService(
	uowFactory unitofwork.RepositoryFactory,
	artifacts contract.ArtifactStore,
	challenge config.ChallengeConfig,
) IExportService {
	return &exportService{
		uowFactory: uowFactory,
		artifacts:  artifacts,
		challenge:  challenge,
		now:        time.Now,
	}
}

// ExportPeriod writes the TREC-style artifacts of a closed evaluation
// window: one run report per verified participant and one qrel report built
// from the feedback collected inside the window.
func (s *exportService) ExportPeriod(ctx context.Context, siteId, periodName string) (*dto.ExportPeriodResponse, error) {
	period := s.findPeriod(periodName)
	if period == nil {
		return nil, apperror.NewNotFound("test period %s not found", periodName)
	}
	if s.now().Before(period.End) {
		return nil, apperror.NewValidation("test period %s has not ended yet", periodName)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	queries, err := uow.QueryRepository().FindAll(ctx,
		specification.BySiteID{SiteID: siteId},
		specification.ByQueryType{Type: entity.QueryTypeTest},
	)
	if err != nil {
		return nil, err
	}

	participants, err := uow.ParticipantRepository().FindAll(ctx, specification.Verified{})
	if err != nil {
		return nil, err
	}

	periodSlug := textutil.Slugify(period.Name)
	var artifacts []string

	for _, participant := range participants {
		if !participant.RegisteredFor(siteId) {
			continue
		}
		report, err := s.buildRunReport(ctx, uow, participant, queries, period)
		if err != nil {
			return nil, err
		}
		if report == "" {
			continue
		}
		name := fmt.Sprintf("%s-%s.run", periodSlug, textutil.Slugify(participant.TeamName))
		if err := s.artifacts.Write(ctx, name, []byte(report)); err != nil {
			return nil, err
		}
		artifacts = append(artifacts, name)
	}

	qrel, err := s.buildQrelReport(ctx, uow, siteId, queries, period)
	if err != nil {
		return nil, err
	}
	qrelName := periodSlug + ".qrel"
	if err := s.artifacts.Write(ctx, qrelName, []byte(qrel)); err != nil {
		return nil, err
	}
	artifacts = append(artifacts, qrelName)

	return &dto.ExportPeriodResponse{Period: period.Name, Artifacts: artifacts}, nil
}

func (s *exportService) findPeriod(name string) *config.TestPeriod {
	for i := range s.challenge.TestPeriods {
		if s.challenge.TestPeriods[i].Name == name {
			return &s.challenge.TestPeriods[i]
		}
	}
	return nil
}

// buildRunReport renders one participant's test runs for the window. Per
// query the latest run created before the window end counts; a creation-time
// tie goes to the later insertion.
func (s *exportService) buildRunReport(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	participant *entity.Participant,
	queries []*entity.Query,
	period *config.TestPeriod,
) (string, error) {
	slug := textutil.Slugify(period.Name + " " + participant.TeamName)

	var b strings.Builder
	for _, query := range queries {
		// Secondary seq order breaks creation-time ties: the later write wins.
		runs, err := uow.RunRepository().FindAll(ctx,
			specification.ByQueryID{QueryID: query.Id},
			specification.ByParticipantID{ParticipantID: participant.Id},
			specification.CreationBefore{Before: period.End},
			specification.OrderBy{Field: "creation_time", Desc: true},
			specification.OrderBy{Field: "seq", Desc: true},
		)
		if err != nil {
			return "", err
		}
		if len(runs) == 0 {
			continue
		}
		run := runs[0]
		total := len(run.Doclist)
		for rank, doc := range run.Doclist {
			fmt.Fprintf(&b, "%s Q0 %s %d %d %s\n", query.Id, doc.DocId, rank, total-rank, slug)
		}
	}
	return b.String(), nil
}

type qrelEntry struct {
	docId       string
	clicks      int
	impressions int
}

func (e qrelEntry) value(mode string) float64 {
	if mode == QrelModeClicks {
		return float64(e.clicks)
	}
	if e.impressions == 0 {
		return 0
	}
	return float64(e.clicks) / float64(e.impressions)
}

// buildQrelReport aggregates the window's feedback into relevance lines.
// Each session doclist entry counts as one impression for its document; a
// click marker or any interaction counts as one click.
func (s *exportService) buildQrelReport(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	siteId string,
	queries []*entity.Query,
	period *config.TestPeriod,
) (string, error) {
	var b strings.Builder
	for _, query := range queries {
		sessions, err := uow.FeedbackRepository().FindAll(ctx,
			specification.BySiteID{SiteID: siteId},
			specification.ByQueryID{QueryID: query.Id},
			specification.CreationBetween{Start: period.Start, End: period.End},
		)
		if err != nil {
			return "", err
		}

		byDoc := make(map[string]*qrelEntry)
		for _, session := range sessions {
			for _, doc := range session.Doclist {
				e := byDoc[doc.DocId]
				if e == nil {
					e = &qrelEntry{docId: doc.DocId}
					byDoc[doc.DocId] = e
				}
				e.impressions++
				if doc.IsClicked() {
					e.clicks++
				}
			}
		}

		entries := make([]qrelEntry, 0, len(byDoc))
		for _, e := range byDoc {
			entries = append(entries, *e)
		}
		mode := s.challenge.QrelMode
		sort.Slice(entries, func(i, j int) bool {
			vi, vj := entries[i].value(mode), entries[j].value(mode)
			if vi != vj {
				return vi > vj
			}
			return entries[i].docId < entries[j].docId
		})

		for _, e := range entries {
			fmt.Fprintf(&b, "%s 0 %s %s\n", query.Id, e.docId, formatQrelValue(e.value(mode), mode))
		}
	}
	return b.String(), nil
}

func formatQrelValue(v float64, mode string) string {
	if mode == QrelModeClicks {
		return strconv.Itoa(int(v))
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}
