package reimbursement

import (
	"math"
	"time"
	"unicode/utf8"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusDenied   Status = "denied"
)

// IsValid checks if s is a recognized status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusDenied:
		return true
	}
	return false
}

// IsTerminal checks if s is a resolution outcome. Terminal statuses have no
// outgoing transitions.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusDenied
}

type Type string

const (
	TypeLodging Type = "lodging"
	TypeTravel  Type = "travel"
	TypeFood    Type = "food"
	TypeOther   Type = "other"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeLodging, TypeTravel, TypeFood, TypeOther:
		return true
	}
	return false
}

// Column limits of the reimbursements table.
const (
	MaxDescriptionLength = 250
	MinAmount            = 0.01
	MaxAmount            = 9999999999.99
)

// IsValidAmount checks that amount is a whole number of cents within the
// storable range.
func IsValidAmount(amount float64) bool {
	if math.IsNaN(amount) || amount < MinAmount || amount > MaxAmount {
		return false
	}
	cents := amount * 100
	return math.Abs(cents-math.Round(cents)) < 1e-3
}

// IsValidDescription checks that description fits its column, counted in
// characters.
func IsValidDescription(description string) bool {
	return utf8.RuneCountInString(description) <= MaxDescriptionLength
}

type Reimbursement struct {
	ID          int64      `json:"id" db:"id"`
	Amount      float64    `json:"amount" db:"amount"`
	Submitted   time.Time  `json:"submitted" db:"submitted"`
	Resolved    *time.Time `json:"resolved" db:"resolved"`
	Description string     `json:"description" db:"description"`
	Receipt     *string    `json:"receipt" db:"receipt"`
	Author      int64      `json:"author" db:"author_id"`
	Resolver    *int64     `json:"resolver" db:"resolver_id"`
	Status      Status     `json:"status" db:"status"`
	Type        Type       `json:"type" db:"type"`
}

// IsEmpty reports whether r is the "no record" marker returned by repositories.
func (r Reimbursement) IsEmpty() bool {
	return r.ID == 0 &&
		r.Amount == 0 &&
		r.Submitted.IsZero() &&
		r.Resolved == nil &&
		r.Description == "" &&
		r.Receipt == nil &&
		r.Author == 0 &&
		r.Resolver == nil &&
		r.Status == "" &&
		r.Type == ""
}

// IsPending checks if r can still be edited or resolved
func (r Reimbursement) IsPending() bool {
	return r.Status == StatusPending
}

// ImmutableFieldsEqual reports whether every field that only creation or
// resolution may set is the same in r and other.
func (r Reimbursement) ImmutableFieldsEqual(other Reimbursement) bool {
	return r.ID == other.ID &&
		r.Author == other.Author &&
		r.Status == other.Status &&
		r.Submitted.Equal(other.Submitted) &&
		equalPtr(r.Receipt, other.Receipt) &&
		equalTimePtr(r.Resolved, other.Resolved) &&
		equalPtr(r.Resolver, other.Resolver)
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
