package unitofwork

import (
	"context"

	"livelabs-be/internal/repository/contract"
)

// UnitOfWork scopes repository access and an optional transaction. The run
// binder relies on Begin/Commit to make "persist run + update binding" one
// atomic operation.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	SiteRepository() contract.SiteRepository
	ParticipantRepository() contract.ParticipantRepository
	DocumentRepository() contract.DocumentRepository
	QueryRepository() contract.QueryRepository
	BindingRepository() contract.BindingRepository
	RunRepository() contract.RunRepository
	FeedbackRepository() contract.FeedbackRepository
}
