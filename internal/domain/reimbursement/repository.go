package reimbursement

import (
	"context"
)

// ReimbursementRepository returns a zero Reimbursement (IsEmpty) when no row
// matches.
type ReimbursementRepository interface {
	GetAll(ctx context.Context) ([]Reimbursement, error)
	GetAllByAuthor(ctx context.Context, authorID int64) ([]Reimbursement, error)
	GetByID(ctx context.Context, id int64) (Reimbursement, error)
	GetByKey(ctx context.Context, key LookupKey) (Reimbursement, error)
	Save(ctx context.Context, newReimbursement Reimbursement) (Reimbursement, error)
	// Update writes amount, description and type of a pending record and
	// reports whether a row was changed.
	Update(ctx context.Context, updated Reimbursement) (bool, error)
	// Resolve writes resolver, status and resolved time of a pending record
	// and reports whether a row was changed.
	Resolve(ctx context.Context, resolved Reimbursement) (bool, error)
	DeleteByID(ctx context.Context, id int64) error
}
