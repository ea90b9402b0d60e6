package reimbursement

import "github.com/cmlabs-hris/ers-backend-go/internal/pkg/validator"

// LookupField is the closed set of reimbursement properties that identify at
// most one record.
type LookupField string

const (
	LookupByID      LookupField = "id"
	LookupByReceipt LookupField = "receipt"
)

type LookupKey struct {
	Field LookupField
	Value string
}

// ParseLookupKey turns a raw query parameter into a LookupKey.
func ParseLookupKey(field, value string) (LookupKey, error) {
	if !validator.IsPropertyOf(field, Reimbursement{}) {
		return LookupKey{}, ErrInvalidLookupKey
	}
	switch f := LookupField(field); f {
	case LookupByID, LookupByReceipt:
		return LookupKey{Field: f, Value: value}, nil
	default:
		return LookupKey{}, ErrInvalidLookupKey
	}
}

// Column returns the reimbursements column the key filters on.
func (k LookupKey) Column() string {
	if k.Field == LookupByReceipt {
		return "receipt"
	}
	return "id"
}
