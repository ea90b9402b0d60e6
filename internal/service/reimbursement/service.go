package reimbursement

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/ers-backend-go/internal/domain/reimbursement"
	"github.com/cmlabs-hris/ers-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/ers-backend-go/internal/pkg/validator"
)

// Recorder receives reimbursement lifecycle events. *metrics.Metrics satisfies it.
type Recorder interface {
	ReimbursementCreated(reimbursementType string)
	ReimbursementResolved(status string)
}

type nopRecorder struct{}

func (nopRecorder) ReimbursementCreated(string)  {}
func (nopRecorder) ReimbursementResolved(string) {}

type Option func(*ReimbursementServiceImpl)

// WithClock replaces time.Now for submitted and resolved timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *ReimbursementServiceImpl) {
		s.now = now
	}
}

func WithRecorder(recorder Recorder) Option {
	return func(s *ReimbursementServiceImpl) {
		if recorder != nil {
			s.recorder = recorder
		}
	}
}

type ReimbursementServiceImpl struct {
	reimbursement.ReimbursementRepository
	tx       database.Transactor
	now      func() time.Time
	recorder Recorder
}

func NewReimbursementService(repository reimbursement.ReimbursementRepository, tx database.Transactor, opts ...Option) reimbursement.ReimbursementService {
	s := &ReimbursementServiceImpl{
		ReimbursementRepository: repository,
		tx:                      tx,
		now:                     time.Now,
		recorder:                nopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetAllReimbursements implements reimbursement.ReimbursementService.
func (s *ReimbursementServiceImpl) GetAllReimbursements(ctx context.Context) ([]reimbursement.Reimbursement, error) {
	all, err := s.ReimbursementRepository.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, reimbursement.ErrNoReimbursements
	}
	return all, nil
}

// GetAllReimbursementsByUser implements reimbursement.ReimbursementService.
func (s *ReimbursementServiceImpl) GetAllReimbursementsByUser(ctx context.Context, authorID int64) ([]reimbursement.Reimbursement, error) {
	if !validator.IsValidID(authorID) {
		return nil, reimbursement.ErrInvalidID
	}

	mine, err := s.ReimbursementRepository.GetAllByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if len(mine) == 0 {
		return nil, reimbursement.ErrNoReimbursements
	}
	return mine, nil
}

// GetReimbursementByID implements reimbursement.ReimbursementService.
func (s *ReimbursementServiceImpl) GetReimbursementByID(ctx context.Context, id int64) (reimbursement.Reimbursement, error) {
	if !validator.IsValidID(id) {
		return reimbursement.Reimbursement{}, reimbursement.ErrInvalidID
	}

	found, err := s.ReimbursementRepository.GetByID(ctx, id)
	if err != nil {
		return reimbursement.Reimbursement{}, err
	}
	if found.IsEmpty() {
		return reimbursement.Reimbursement{}, reimbursement.ErrReimbursementNotFound
	}
	return found, nil
}

// GetReimbursementByUniqueKey implements reimbursement.ReimbursementService.
func (s *ReimbursementServiceImpl) GetReimbursementByUniqueKey(ctx context.Context, key reimbursement.LookupKey) (reimbursement.Reimbursement, error) {
	if key.Field == reimbursement.LookupByID {
		return s.GetReimbursementByID(ctx, validator.ParseID(key.Value))
	}

	if !validator.IsValidStrings(key.Value) {
		return reimbursement.Reimbursement{}, reimbursement.ErrInvalidLookupValue
	}

	found, err := s.ReimbursementRepository.GetByKey(ctx, key)
	if err != nil {
		return reimbursement.Reimbursement{}, err
	}
	if found.IsEmpty() {
		return reimbursement.Reimbursement{}, reimbursement.ErrReimbursementNotFound
	}
	return found, nil
}

// AddNewReimbursement implements reimbursement.ReimbursementService. New
// records are always pending and stamped with the service clock.
func (s *ReimbursementServiceImpl) AddNewReimbursement(ctx context.Context, req reimbursement.CreateReimbursementRequest) (reimbursement.Reimbursement, error) {
	if !validator.IsValidObject(req, "receipt") || !validator.IsValidID(req.Author) {
		return reimbursement.Reimbursement{}, reimbursement.ErrInvalidReimbursement
	}
	if !reimbursement.IsValidAmount(req.Amount) {
		return reimbursement.Reimbursement{}, reimbursement.ErrInvalidAmount
	}
	if !reimbursement.IsValidDescription(req.Description) {
		return reimbursement.Reimbursement{}, reimbursement.ErrDescriptionTooLong
	}
	if !req.Type.IsValid() {
		return reimbursement.Reimbursement{}, reimbursement.ErrInvalidType
	}

	saved, err := s.ReimbursementRepository.Save(ctx, reimbursement.Reimbursement{
		Amount:      req.Amount,
		Submitted:   s.now().UTC(),
		Description: req.Description,
		Receipt:     req.Receipt,
		Author:      req.Author,
		Status:      reimbursement.StatusPending,
		Type:        req.Type,
	})
	if err != nil {
		return reimbursement.Reimbursement{}, err
	}

	s.recorder.ReimbursementCreated(string(saved.Type))
	slog.Info("Reimbursement submitted", "reimbursement_id", saved.ID, "author", saved.Author, "type", saved.Type)
	return saved, nil
}

// UpdateReimbursement implements reimbursement.ReimbursementService. Only
// amount, description and type of a pending record may change; any other
// difference from the stored record is a conflict.
func (s *ReimbursementServiceImpl) UpdateReimbursement(ctx context.Context, updated reimbursement.Reimbursement) error {
	if !validator.IsValidObject(updated, "receipt", "resolved", "resolver") || !validator.IsValidID(updated.ID) {
		return reimbursement.ErrInvalidReimbursement
	}

	current, err := s.GetReimbursementByID(ctx, updated.ID)
	if err != nil {
		return err
	}

	if !current.IsPending() {
		return reimbursement.ErrNotPending
	}
	if !current.ImmutableFieldsEqual(updated) {
		return reimbursement.ErrImmutableFieldModified
	}

	if !reimbursement.IsValidAmount(updated.Amount) {
		return reimbursement.ErrInvalidAmount
	}
	if !reimbursement.IsValidDescription(updated.Description) {
		return reimbursement.ErrDescriptionTooLong
	}
	if !updated.Type.IsValid() {
		return reimbursement.ErrInvalidType
	}

	changed, err := s.ReimbursementRepository.Update(ctx, updated)
	if err != nil {
		return err
	}
	if !changed {
		// Resolved between the read and the write.
		return reimbursement.ErrNotPending
	}
	return nil
}

// ResolveReimbursement implements reimbursement.ReimbursementService.
func (s *ReimbursementServiceImpl) ResolveReimbursement(ctx context.Context, req reimbursement.ResolveReimbursementRequest) (reimbursement.Reimbursement, error) {
	if !validator.IsValidID(req.ID) || !validator.IsValidID(req.Resolver) {
		return reimbursement.Reimbursement{}, reimbursement.ErrInvalidID
	}
	if !req.Status.IsTerminal() {
		return reimbursement.Reimbursement{}, reimbursement.ErrInvalidStatus
	}

	current, err := s.GetReimbursementByID(ctx, req.ID)
	if err != nil {
		return reimbursement.Reimbursement{}, err
	}
	if !current.IsPending() {
		return reimbursement.Reimbursement{}, reimbursement.ErrAlreadyResolved
	}

	resolvedAt := s.now().UTC()
	resolver := req.Resolver
	current.Status = req.Status
	current.Resolver = &resolver
	current.Resolved = &resolvedAt

	changed, err := s.ReimbursementRepository.Resolve(ctx, current)
	if err != nil {
		return reimbursement.Reimbursement{}, err
	}
	if !changed {
		return reimbursement.Reimbursement{}, reimbursement.ErrAlreadyResolved
	}

	s.recorder.ReimbursementResolved(string(current.Status))
	slog.Info("Reimbursement resolved", "reimbursement_id", current.ID, "resolver", resolver, "status", current.Status)
	return current, nil
}

// DeleteByID implements reimbursement.ReimbursementService.
func (s *ReimbursementServiceImpl) DeleteByID(ctx context.Context, id int64) error {
	if !validator.IsValidID(id) {
		return reimbursement.ErrInvalidID
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.GetReimbursementByID(ctx, id); err != nil {
			return err
		}
		return s.ReimbursementRepository.DeleteByID(ctx, id)
	})
}
