package memory

import (
	"context"
	"sort"
	"time"

	"livelabs-be/internal/entity"
	"livelabs-be/internal/repository/specification"

	"github.com/google/uuid"
)

// Site

type siteRepository struct {
	store *Store
}

func (r *siteRepository) Create(ctx context.Context, site *entity.Site) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s := *site
	r.store.sites = append(r.store.sites, &s)
	return nil
}

func (r *siteRepository) FindByID(ctx context.Context, id string) (*entity.Site, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, s := range r.store.sites {
		if s.Id == id {
			return s, nil
		}
	}
	return nil, nil
}

func (r *siteRepository) FindByApiKey(ctx context.Context, key string) (*entity.Site, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, s := range r.store.sites {
		if s.ApiKey == key {
			return s, nil
		}
	}
	return nil, nil
}

func (r *siteRepository) FindAll(ctx context.Context) ([]*entity.Site, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return append([]*entity.Site(nil), r.store.sites...), nil
}

// Participant

type participantRepository struct {
	store *Store
}

func (r *participantRepository) Create(ctx context.Context, participant *entity.Participant) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if participant.Id == uuid.Nil {
		participant.Id = uuid.New()
	}
	p := *participant
	r.store.participants = append(r.store.participants, &p)
	return nil
}

func (r *participantRepository) Update(ctx context.Context, participant *entity.Participant) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, p := range r.store.participants {
		if p.Id == participant.Id {
			cp := *participant
			r.store.participants[i] = &cp
			return nil
		}
	}
	cp := *participant
	r.store.participants = append(r.store.participants, &cp)
	return nil
}

func (r *participantRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Participant, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.participants {
		if p.Id == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r *participantRepository) FindByApiKey(ctx context.Context, key string) (*entity.Participant, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.participants {
		if p.ApiKey == key {
			return p, nil
		}
	}
	return nil, nil
}

func matchParticipant(p *entity.Participant, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.Verified:
			if !p.IsVerified {
				return false
			}
		case specification.ByID:
			if p.Id != s.ID {
				return false
			}
		}
	}
	return true
}

func (r *participantRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Participant, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Participant
	for _, p := range r.store.participants {
		if matchParticipant(p, specs) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *participantRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

// Document

type documentRepository struct {
	store *Store
}

func (r *documentRepository) Create(ctx context.Context, doc *entity.Document) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	d := *doc
	r.store.documents = append(r.store.documents, &d)
	return nil
}

func (r *documentRepository) FindByID(ctx context.Context, id string) (*entity.Document, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, d := range r.store.documents {
		if d.Id == id {
			return d, nil
		}
	}
	return nil, nil
}

func matchDocument(d *entity.Document, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.BySiteID:
			if d.SiteId != s.SiteID {
				return false
			}
		case specification.BySiteDocID:
			if d.SiteDocId != s.SiteDocID {
				return false
			}
		}
	}
	return true
}

func (r *documentRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *documentRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Document
	for _, d := range r.store.documents {
		if matchDocument(d, specs) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *documentRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

// Query

type queryRepository struct {
	store *Store
}

func (r *queryRepository) Create(ctx context.Context, query *entity.Query) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	q := *query
	r.store.queries = append(r.store.queries, &q)
	return nil
}

func (r *queryRepository) Update(ctx context.Context, query *entity.Query) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, q := range r.store.queries {
		if q.Id == query.Id {
			cp := *query
			r.store.queries[i] = &cp
			return nil
		}
	}
	q := *query
	r.store.queries = append(r.store.queries, &q)
	return nil
}

func (r *queryRepository) SoftDeleteBySite(ctx context.Context, siteId string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	now := time.Now()
	for _, q := range r.store.queries {
		if q.SiteId == siteId && !q.IsDeleted {
			q.IsDeleted = true
			q.DeletedAt = &now
		}
	}
	return nil
}

func (r *queryRepository) FindByID(ctx context.Context, id string) (*entity.Query, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, q := range r.store.queries {
		if q.Id == id && !q.IsDeleted {
			return q, nil
		}
	}
	return nil, nil
}

func matchQuery(q *entity.Query, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.BySiteID:
			if q.SiteId != s.SiteID {
				return false
			}
		case specification.BySiteQID:
			if q.SiteQid != s.SiteQID {
				return false
			}
		case specification.ByQueryType:
			if q.Type != s.Type {
				return false
			}
		}
	}
	return true
}

func (r *queryRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Query, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *queryRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Query, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Query
	for _, q := range r.store.queries {
		if q.IsDeleted {
			continue
		}
		if matchQuery(q, specs) {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *queryRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

// Binding

type bindingRepository struct {
	store *Store
}

func (r *bindingRepository) Upsert(ctx context.Context, binding *entity.Binding) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, b := range r.store.bindings {
		if b.QueryId == binding.QueryId && b.ParticipantId == binding.ParticipantId {
			cp := *binding
			r.store.bindings[i] = &cp
			return nil
		}
	}
	cp := *binding
	r.store.bindings = append(r.store.bindings, &cp)
	return nil
}

func matchBinding(b *entity.Binding, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByQueryID:
			if b.QueryId != s.QueryID {
				return false
			}
		case specification.ByParticipantID:
			if b.ParticipantId != s.ParticipantID {
				return false
			}
		case specification.ByRunLabel:
			if b.RunLabel != s.RunLabel {
				return false
			}
		}
	}
	return true
}

func (r *bindingRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Binding, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *bindingRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Binding, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Binding
	for _, b := range r.store.bindings {
		if matchBinding(b, specs) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *bindingRepository) DeleteMatching(ctx context.Context, binding *entity.Binding) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, b := range r.store.bindings {
		if b.QueryId == binding.QueryId && b.ParticipantId == binding.ParticipantId &&
			b.RunLabel == binding.RunLabel && b.BoundAt.Equal(binding.BoundAt) {
			r.store.bindings = append(r.store.bindings[:i], r.store.bindings[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *bindingRepository) Rebind(ctx context.Context, queryId string, participantId uuid.UUID, boundAt time.Time) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, b := range r.store.bindings {
		if b.QueryId == queryId && b.ParticipantId == participantId {
			b.BoundAt = boundAt
			return true, nil
		}
	}
	return false, nil
}

// Run

type runRepository struct {
	store *Store
}

func (r *runRepository) Create(ctx context.Context, run *entity.Run) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if run.Id == uuid.Nil {
		run.Id = uuid.New()
	}
	r.store.runSeq++
	run.Seq = r.store.runSeq
	cp := *run
	r.store.runs = append(r.store.runs, &cp)
	return nil
}

func (r *runRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, run := range r.store.runs {
		if run.Id == id {
			r.store.runs = append(r.store.runs[:i], r.store.runs[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *runRepository) DeleteByPair(ctx context.Context, queryId string, participantId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	kept := r.store.runs[:0]
	for _, run := range r.store.runs {
		if run.QueryId == queryId && run.ParticipantId == participantId {
			continue
		}
		kept = append(kept, run)
	}
	r.store.runs = kept
	return nil
}

func (r *runRepository) SetNotificationTime(ctx context.Context, id uuid.UUID, t time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, run := range r.store.runs {
		if run.Id == id {
			ts := t
			run.NotificationSentTime = &ts
			return nil
		}
	}
	return nil
}

func matchRun(run *entity.Run, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if run.Id != s.ID {
				return false
			}
		case specification.ByQueryID:
			if run.QueryId != s.QueryID {
				return false
			}
		case specification.ByParticipantID:
			if run.ParticipantId != s.ParticipantID {
				return false
			}
		case specification.ByRunLabel:
			if run.RunLabel != s.RunLabel {
				return false
			}
		case specification.CreationBefore:
			if !run.CreationTime.Before(s.Before) {
				return false
			}
		case specification.CreationBetween:
			if run.CreationTime.Before(s.Start) || !run.CreationTime.Before(s.End) {
				return false
			}
		}
	}
	return true
}

func (r *runRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Run, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *runRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Run, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Run
	for _, run := range r.store.runs {
		if matchRun(run, specs) {
			out = append(out, run)
		}
	}
	sortRuns(out, specs)
	return out, nil
}

// sortRuns applies OrderBy specifications in the order given, like a SQL
// ORDER BY clause with multiple keys.
func sortRuns(out []*entity.Run, specs []specification.Specification) {
	var orders []specification.OrderBy
	for _, spec := range specs {
		if o, ok := spec.(specification.OrderBy); ok {
			orders = append(orders, o)
		}
	}
	if len(orders) == 0 {
		return
	}
	sort.SliceStable(out, func(i, j int) bool {
		for _, o := range orders {
			switch o.Field {
			case "creation_time":
				if !out[i].CreationTime.Equal(out[j].CreationTime) {
					if o.Desc {
						return out[i].CreationTime.After(out[j].CreationTime)
					}
					return out[i].CreationTime.Before(out[j].CreationTime)
				}
			case "seq":
				if out[i].Seq != out[j].Seq {
					if o.Desc {
						return out[i].Seq > out[j].Seq
					}
					return out[i].Seq < out[j].Seq
				}
			}
		}
		return false
	})
}

func (r *runRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

// Feedback

type feedbackRepository struct {
	store *Store
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *entity.Feedback) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *feedback
	r.store.feedback = append(r.store.feedback, &cp)
	return nil
}

func (r *feedbackRepository) Update(ctx context.Context, feedback *entity.Feedback) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, f := range r.store.feedback {
		if f.Sid == feedback.Sid && f.SiteId == feedback.SiteId {
			cp := *feedback
			r.store.feedback[i] = &cp
			return nil
		}
	}
	cp := *feedback
	r.store.feedback = append(r.store.feedback, &cp)
	return nil
}

func (r *feedbackRepository) FindBySid(ctx context.Context, siteId, sid string) (*entity.Feedback, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, f := range r.store.feedback {
		if f.SiteId == siteId && f.Sid == sid {
			return f, nil
		}
	}
	return nil, nil
}

func matchFeedback(f *entity.Feedback, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByQueryID:
			if f.QueryId != s.QueryID {
				return false
			}
		case specification.ByParticipantID:
			if f.ParticipantId != s.ParticipantID {
				return false
			}
		case specification.BySiteID:
			if f.SiteId != s.SiteID {
				return false
			}
		case specification.ByRunLabel:
			if f.RunLabel != s.RunLabel {
				return false
			}
		case specification.CreationBetween:
			if f.CreationTime.Before(s.Start) || !f.CreationTime.Before(s.End) {
				return false
			}
		}
	}
	return true
}

func (r *feedbackRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Feedback, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Feedback
	for _, f := range r.store.feedback {
		if matchFeedback(f, specs) {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *feedbackRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}
