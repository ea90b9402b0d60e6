package user

type Role string

const (
	RoleAdmin    Role = "admin"    // Manages user accounts
	RoleManager  Role = "manager"  // Resolves reimbursements
	RoleEmployee Role = "employee" // Submits reimbursements
)

// DefaultRole is assigned to every self-registered user.
const DefaultRole = RoleEmployee

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

type User struct {
	ID        int64  `json:"id" db:"id"`
	Username  string `json:"username" db:"username"`
	Password  string `json:"password,omitempty" db:"password"`
	FirstName string `json:"first_name" db:"first_name"`
	LastName  string `json:"last_name" db:"last_name"`
	Email     string `json:"email" db:"email"`
	Role      Role   `json:"role" db:"role"`
}

// IsEmpty reports whether u is the "no record" marker returned by repositories.
func (u User) IsEmpty() bool {
	return u == User{}
}

// RemovePassword returns a copy of u without its password. The argument is
// not modified.
func RemovePassword(u User) User {
	if u.Password == "" {
		return u
	}
	u.Password = ""
	return u
}
