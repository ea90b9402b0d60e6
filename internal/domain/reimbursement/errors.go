package reimbursement

import "github.com/cmlabs-hris/ers-backend-go/internal/pkg/apperror"

var (
	ErrInvalidID              = apperror.BadRequest("You did not enter a valid ID")
	ErrInvalidReimbursement   = apperror.BadRequest("Invalid property values found in provided reimbursement.")
	ErrInvalidAmount          = apperror.BadRequest("Amount must be between 0.01 and 9999999999.99 with at most two decimals")
	ErrDescriptionTooLong     = apperror.BadRequest("Description must not exceed 250 characters")
	ErrInvalidType            = apperror.BadRequest("Unknown reimbursement type")
	ErrInvalidStatus          = apperror.BadRequest("Status must be approved or denied")
	ErrInvalidLookupKey       = apperror.BadRequest("Unsupported reimbursement lookup key")
	ErrInvalidLookupValue     = apperror.BadRequest("Invalid reimbursement lookup value")
	ErrReimbursementNotFound  = apperror.NotFound("No reimbursement found with that ID")
	ErrNoReimbursements       = apperror.NotFound("No reimbursements found")
	ErrNotPending             = apperror.Conflict("Cannot update a non-pending reimbursement")
	ErrAlreadyResolved        = apperror.Conflict("Reimbursement has already been resolved")
	ErrImmutableFieldModified = apperror.Conflict("Only amount, description and type may be updated")
	ErrDuplicateReceipt       = apperror.Persistence("The provided receipt is already attached to another reimbursement.")
	ErrUnknownAuthor          = apperror.BadRequest("Author does not reference an existing user")
)
