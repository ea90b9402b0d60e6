package reimbursement

import "github.com/cmlabs-hris/ers-backend-go/internal/pkg/validator"

// CreateReimbursementRequest represents a new submission. Status and
// submitted time are always chosen by the service.
type CreateReimbursementRequest struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Author      int64   `json:"author"`
	Type        Type    `json:"type"`
	Receipt     *string `json:"receipt,omitempty"`
}

func (r *CreateReimbursementRequest) Validate() error {
	var errs validator.ValidationErrors

	if !IsValidAmount(r.Amount) {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: "amount must be between 0.01 and 9999999999.99 with at most two decimals",
		})
	}

	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description is required",
		})
	} else if !IsValidDescription(r.Description) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must not exceed 250 characters",
		})
	}

	if !r.Type.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of lodging, travel, food, other",
		})
	}

	if r.Receipt != nil && validator.IsEmpty(*r.Receipt) {
		errs = append(errs, validator.ValidationError{
			Field:   "receipt",
			Message: "receipt must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ResolveReimbursementRequest approves or denies a pending reimbursement.
type ResolveReimbursementRequest struct {
	ID       int64  `json:"id"`
	Resolver int64  `json:"resolver"`
	Status   Status `json:"status"`
}

func (r *ResolveReimbursementRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a positive integer",
		})
	}

	if !validator.IsValidID(r.Resolver) {
		errs = append(errs, validator.ValidationError{
			Field:   "resolver",
			Message: "resolver must be a positive integer",
		})
	}

	if !r.Status.IsTerminal() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be approved or denied",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
