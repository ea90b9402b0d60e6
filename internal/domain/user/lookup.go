package user

import (
	"github.com/cmlabs-hris/ers-backend-go/internal/pkg/validator"
)

// LookupField is the closed set of user properties that identify at most one
// user.
type LookupField string

const (
	LookupByID       LookupField = "id"
	LookupByUsername LookupField = "username"
	LookupByEmail    LookupField = "email"
)

// LookupKey selects a single user by one unique property.
type LookupKey struct {
	Field LookupField
	Value string
}

func ByUsername(name string) LookupKey { return LookupKey{Field: LookupByUsername, Value: name} }
func ByEmail(email string) LookupKey   { return LookupKey{Field: LookupByEmail, Value: email} }

// ParseLookupKey turns a raw query parameter into a LookupKey. The field has
// to be a User property and one of the unique ones.
func ParseLookupKey(field, value string) (LookupKey, error) {
	if !validator.IsPropertyOf(field, User{}) {
		return LookupKey{}, ErrInvalidLookupKey
	}
	switch f := LookupField(field); f {
	case LookupByID, LookupByUsername, LookupByEmail:
		return LookupKey{Field: f, Value: value}, nil
	default:
		return LookupKey{}, ErrInvalidLookupKey
	}
}

// Column returns the users column the key filters on.
func (k LookupKey) Column() string {
	switch k.Field {
	case LookupByUsername:
		return "username"
	case LookupByEmail:
		return "email"
	default:
		return "id"
	}
}
