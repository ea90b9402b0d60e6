package reimbursement

import "context"

type ReimbursementService interface {
	GetAllReimbursements(ctx context.Context) ([]Reimbursement, error)
	GetAllReimbursementsByUser(ctx context.Context, authorID int64) ([]Reimbursement, error)
	GetReimbursementByID(ctx context.Context, id int64) (Reimbursement, error)
	GetReimbursementByUniqueKey(ctx context.Context, key LookupKey) (Reimbursement, error)
	AddNewReimbursement(ctx context.Context, req CreateReimbursementRequest) (Reimbursement, error)
	UpdateReimbursement(ctx context.Context, updated Reimbursement) error
	ResolveReimbursement(ctx context.Context, req ResolveReimbursementRequest) (Reimbursement, error)
	DeleteByID(ctx context.Context, id int64) error
}
