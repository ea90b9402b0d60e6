package postgresql

import (
	"time"

	"github.com/cmlabs-hris/ers-backend-go/internal/domain/reimbursement"
	"github.com/cmlabs-hris/ers-backend-go/internal/domain/user"
)

// userRow is the column shape of userBaseQuery.
type userRow struct {
	ID        int64  `db:"id"`
	Username  string `db:"username"`
	Password  string `db:"password"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Email     string `db:"email"`
	Role      string `db:"role"`
}

// reimbursementRow is the column shape of reimbursementBaseQuery.
type reimbursementRow struct {
	ID          int64      `db:"id"`
	Amount      float64    `db:"amount"`
	Submitted   time.Time  `db:"submitted"`
	Resolved    *time.Time `db:"resolved"`
	Description string     `db:"description"`
	Receipt     *string    `db:"receipt"`
	AuthorID    int64      `db:"author_id"`
	ResolverID  *int64     `db:"resolver_id"`
	Status      string     `db:"status"`
	Type        string     `db:"type"`
}

// mapUserRow converts a scanned row into a User. A nil row maps to the empty
// User, which is how "not found" travels to the services.
func mapUserRow(row *userRow) user.User {
	if row == nil {
		return user.User{}
	}
	return user.User{
		ID:        row.ID,
		Username:  row.Username,
		Password:  row.Password,
		FirstName: row.FirstName,
		LastName:  row.LastName,
		Email:     row.Email,
		Role:      user.Role(row.Role),
	}
}

func mapUserRows(rows []*userRow) []user.User {
	users := make([]user.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, mapUserRow(row))
	}
	return users
}

// mapReimbursementRow converts a scanned row into a Reimbursement. A nil row
// maps to the empty Reimbursement.
func mapReimbursementRow(row *reimbursementRow) reimbursement.Reimbursement {
	if row == nil {
		return reimbursement.Reimbursement{}
	}
	return reimbursement.Reimbursement{
		ID:          row.ID,
		Amount:      row.Amount,
		Submitted:   row.Submitted,
		Resolved:    row.Resolved,
		Description: row.Description,
		Receipt:     row.Receipt,
		Author:      row.AuthorID,
		Resolver:    row.ResolverID,
		Status:      reimbursement.Status(row.Status),
		Type:        reimbursement.Type(row.Type),
	}
}

func mapReimbursementRows(rows []*reimbursementRow) []reimbursement.Reimbursement {
	reimbursements := make([]reimbursement.Reimbursement, 0, len(rows))
	for _, row := range rows {
		reimbursements = append(reimbursements, mapReimbursementRow(row))
	}
	return reimbursements
}
