package postgresql

import (
	"context"
	"errors"
	"strconv"

	"github.com/cmlabs-hris/ers-backend-go/internal/domain/reimbursement"
	"github.com/cmlabs-hris/ers-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/ers-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const reimbursementColumns = `id, amount, submitted, resolved, description, receipt, author_id, resolver_id, status, type`

const reimbursementBaseQuery = `SELECT ` + reimbursementColumns + ` FROM reimbursements`

type reimbursementRepositoryImpl struct {
	db *database.DB
}

func NewReimbursementRepository(db *database.DB) reimbursement.ReimbursementRepository {
	return &reimbursementRepositoryImpl{db: db}
}

// GetAll implements reimbursement.ReimbursementRepository.
func (r *reimbursementRepositoryImpl) GetAll(ctx context.Context) ([]reimbursement.Reimbursement, error) {
	return r.getMany(ctx, reimbursementBaseQuery+` ORDER BY id`)
}

// GetAllByAuthor implements reimbursement.ReimbursementRepository.
func (r *reimbursementRepositoryImpl) GetAllByAuthor(ctx context.Context, authorID int64) ([]reimbursement.Reimbursement, error) {
	return r.getMany(ctx, reimbursementBaseQuery+` WHERE author_id = $1 ORDER BY id`, authorID)
}

// GetByID implements reimbursement.ReimbursementRepository.
func (r *reimbursementRepositoryImpl) GetByID(ctx context.Context, id int64) (reimbursement.Reimbursement, error) {
	return r.getOne(ctx, reimbursementBaseQuery+` WHERE id = $1`, id)
}

// GetByKey implements reimbursement.ReimbursementRepository.
func (r *reimbursementRepositoryImpl) GetByKey(ctx context.Context, key reimbursement.LookupKey) (reimbursement.Reimbursement, error) {
	var arg any = key.Value
	if key.Field == reimbursement.LookupByID {
		id, err := strconv.ParseInt(key.Value, 10, 64)
		if err != nil {
			return reimbursement.Reimbursement{}, nil
		}
		arg = id
	}
	return r.getOne(ctx, reimbursementBaseQuery+` WHERE `+key.Column()+` = $1`, arg)
}

// Save implements reimbursement.ReimbursementRepository.
func (r *reimbursementRepositoryImpl) Save(ctx context.Context, newReimbursement reimbursement.Reimbursement) (reimbursement.Reimbursement, error) {
	query := `
		INSERT INTO reimbursements (amount, submitted, description, receipt, author_id, status, type)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + reimbursementColumns

	rows, err := GetQuerier(ctx, r.db).Query(ctx, query,
		newReimbursement.Amount,
		newReimbursement.Submitted,
		newReimbursement.Description,
		newReimbursement.Receipt,
		newReimbursement.Author,
		string(newReimbursement.Status),
		string(newReimbursement.Type),
	)
	if err != nil {
		if dataViolation(err) {
			return reimbursement.Reimbursement{}, reimbursement.ErrInvalidReimbursement
		}
		return reimbursement.Reimbursement{}, apperror.Internal("Unable to save reimbursement", err)
	}

	created, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[reimbursementRow])
	if err != nil {
		if _, ok := constraintViolation(err, pgUniqueViolation); ok {
			return reimbursement.Reimbursement{}, reimbursement.ErrDuplicateReceipt
		}
		if _, ok := constraintViolation(err, pgForeignKeyViolation); ok {
			return reimbursement.Reimbursement{}, reimbursement.ErrUnknownAuthor
		}
		if dataViolation(err) {
			return reimbursement.Reimbursement{}, reimbursement.ErrInvalidReimbursement
		}
		return reimbursement.Reimbursement{}, apperror.Internal("Unable to save reimbursement", err)
	}

	return mapReimbursementRow(created), nil
}

// Update implements reimbursement.ReimbursementRepository. The status guard
// makes the write a no-op once another request has resolved the record.
func (r *reimbursementRepositoryImpl) Update(ctx context.Context, updated reimbursement.Reimbursement) (bool, error) {
	query := `
		UPDATE reimbursements
		SET amount = $2, description = $3, type = $4
		WHERE id = $1 AND status = 'pending'
	`
	tag, err := GetQuerier(ctx, r.db).Exec(ctx, query,
		updated.ID,
		updated.Amount,
		updated.Description,
		string(updated.Type),
	)
	if err != nil {
		if dataViolation(err) {
			return false, reimbursement.ErrInvalidReimbursement
		}
		return false, apperror.Internal("Unable to update reimbursement", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Resolve implements reimbursement.ReimbursementRepository.
func (r *reimbursementRepositoryImpl) Resolve(ctx context.Context, resolved reimbursement.Reimbursement) (bool, error) {
	query := `
		UPDATE reimbursements
		SET resolver_id = $2, status = $3, resolved = $4
		WHERE id = $1 AND status = 'pending'
	`
	tag, err := GetQuerier(ctx, r.db).Exec(ctx, query,
		resolved.ID,
		resolved.Resolver,
		string(resolved.Status),
		resolved.Resolved,
	)
	if err != nil {
		return false, apperror.Internal("Unable to resolve reimbursement", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteByID implements reimbursement.ReimbursementRepository.
func (r *reimbursementRepositoryImpl) DeleteByID(ctx context.Context, id int64) error {
	if _, err := GetQuerier(ctx, r.db).Exec(ctx, `DELETE FROM reimbursements WHERE id = $1`, id); err != nil {
		return apperror.Internal("Unable to delete reimbursement", err)
	}
	return nil
}

func (r *reimbursementRepositoryImpl) getMany(ctx context.Context, query string, args ...any) ([]reimbursement.Reimbursement, error) {
	rows, err := GetQuerier(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.Internal("Unable to get reimbursements", err)
	}

	found, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[reimbursementRow])
	if err != nil {
		return nil, apperror.Internal("Unable to get reimbursements", err)
	}

	return mapReimbursementRows(found), nil
}

func (r *reimbursementRepositoryImpl) getOne(ctx context.Context, query string, args ...any) (reimbursement.Reimbursement, error) {
	rows, err := GetQuerier(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return reimbursement.Reimbursement{}, apperror.Internal("Unable to get reimbursement", err)
	}

	found, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[reimbursementRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return mapReimbursementRow(nil), nil
		}
		return reimbursement.Reimbursement{}, apperror.Internal("Unable to get reimbursement", err)
	}

	return mapReimbursementRow(found), nil
}
