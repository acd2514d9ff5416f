package memory

import (
	"context"
	"sync"

	"livelabs-be/internal/entity"
	"livelabs-be/internal/repository/contract"
	"livelabs-be/internal/repository/unitofwork"
)

// Store is an in-process document store used by unit tests and local demo
// runs. It interprets the same specification structs as the gorm
// repositories, so services are exercised unchanged.
type Store struct {
	mu           sync.Mutex
	sites        []*entity.Site
	participants []*entity.Participant
	documents    []*entity.Document
	queries      []*entity.Query
	bindings     []*entity.Binding
	runs         []*entity.Run
	feedback     []*entity.Feedback
	runSeq       int64
}

func NewStore() *Store {
	return &Store{}
}

// snapshot copies every collection by value so a rollback can restore the
// pre-transaction state even when entries were mutated in place.
type snapshot struct {
	sites        []*entity.Site
	participants []*entity.Participant
	documents    []*entity.Document
	queries      []*entity.Query
	bindings     []*entity.Binding
	runs         []*entity.Run
	feedback     []*entity.Feedback
	runSeq       int64
}

func copyAll[T any](in []*T) []*T {
	out := make([]*T, len(in))
	for i, v := range in {
		cp := *v
		out[i] = &cp
	}
	return out
}

func (s *Store) snapshot() *snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &snapshot{
		sites:        copyAll(s.sites),
		participants: copyAll(s.participants),
		documents:    copyAll(s.documents),
		queries:      copyAll(s.queries),
		bindings:     copyAll(s.bindings),
		runs:         copyAll(s.runs),
		feedback:     copyAll(s.feedback),
		runSeq:       s.runSeq,
	}
}

func (s *Store) restore(snap *snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sites = snap.sites
	s.participants = snap.participants
	s.documents = snap.documents
	s.queries = snap.queries
	s.bindings = snap.bindings
	s.runs = snap.runs
	s.feedback = snap.feedback
	s.runSeq = snap.runSeq
}

type repositoryFactory struct {
	store *Store
}

func NewRepositoryFactory(store *Store) unitofwork.RepositoryFactory {
	return &repositoryFactory{store: store}
}

func (f *repositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &unitOfWork{store: f.store}
}

// unitOfWork over the memory store. Begin takes a full-store snapshot and
// Rollback restores it; there is no isolation from concurrent callers, only
// the undo semantics the services rely on.
type unitOfWork struct {
	store *Store
	snap  *snapshot
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	u.snap = u.store.snapshot()
	return nil
}

func (u *unitOfWork) Commit() error {
	u.snap = nil
	return nil
}

func (u *unitOfWork) Rollback() error {
	if u.snap != nil {
		u.store.restore(u.snap)
		u.snap = nil
	}
	return nil
}

func (u *unitOfWork) SiteRepository() contract.SiteRepository {
	return &siteRepository{store: u.store}
}

func (u *unitOfWork) ParticipantRepository() contract.ParticipantRepository {
	return &participantRepository{store: u.store}
}

func (u *unitOfWork) DocumentRepository() contract.DocumentRepository {
	return &documentRepository{store: u.store}
}

func (u *unitOfWork) QueryRepository() contract.QueryRepository {
	return &queryRepository{store: u.store}
}

func (u *unitOfWork) BindingRepository() contract.BindingRepository {
	return &bindingRepository{store: u.store}
}

func (u *unitOfWork) RunRepository() contract.RunRepository {
	return &runRepository{store: u.store}
}

func (u *unitOfWork) FeedbackRepository() contract.FeedbackRepository {
	return &feedbackRepository{store: u.store}
}
