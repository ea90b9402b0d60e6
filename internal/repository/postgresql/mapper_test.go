package postgresql

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/ers-backend-go/internal/domain/reimbursement"
	"github.com/cmlabs-hris/ers-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
)

func TestMapUserRow(t *testing.T) {
	t.Run("nil row is the empty user", func(t *testing.T) {
		assert.True(t, mapUserRow(nil).IsEmpty())
	})

	t.Run("copies every column", func(t *testing.T) {
		got := mapUserRow(&userRow{
			ID:        7,
			Username:  "jdoe",
			Password:  "hash",
			FirstName: "John",
			LastName:  "Doe",
			Email:     "jdoe@example.com",
			Role:      "manager",
		})

		assert.Equal(t, user.User{
			ID:        7,
			Username:  "jdoe",
			Password:  "hash",
			FirstName: "John",
			LastName:  "Doe",
			Email:     "jdoe@example.com",
			Role:      user.RoleManager,
		}, got)
	})
}

func TestMapReimbursementRow(t *testing.T) {
	t.Run("nil row is the empty reimbursement", func(t *testing.T) {
		assert.True(t, mapReimbursementRow(nil).IsEmpty())
	})

	t.Run("keeps nullable columns", func(t *testing.T) {
		submitted := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
		resolved := submitted.Add(time.Hour)
		receipt := "receipts/a.png"
		resolver := int64(2)

		got := mapReimbursementRow(&reimbursementRow{
			ID:          1,
			Amount:      42.5,
			Submitted:   submitted,
			Resolved:    &resolved,
			Description: "hotel",
			Receipt:     &receipt,
			AuthorID:    3,
			ResolverID:  &resolver,
			Status:      "approved",
			Type:        "lodging",
		})

		assert.Equal(t, int64(3), got.Author)
		assert.Equal(t, &resolver, got.Resolver)
		assert.Equal(t, &receipt, got.Receipt)
		assert.Equal(t, reimbursement.StatusApproved, got.Status)
		assert.Equal(t, reimbursement.TypeLodging, got.Type)
		assert.True(t, got.Resolved.Equal(resolved))
	})
}

func TestMapRows_EmptySliceNotNil(t *testing.T) {
	assert.NotNil(t, mapUserRows(nil))
	assert.Empty(t, mapUserRows(nil))
	assert.NotNil(t, mapReimbursementRows(nil))
}

func TestHashSessionID(t *testing.T) {
	a := hashSessionID("abc")
	assert.Equal(t, a, hashSessionID("abc"))
	assert.NotEqual(t, a, hashSessionID("abd"))
	assert.NotContains(t, a, "abc")
}
