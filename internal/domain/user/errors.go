package user

import "github.com/cmlabs-hris/ers-backend-go/internal/pkg/apperror"

var (
	ErrInvalidID               = apperror.BadRequest("Invalid user id")
	ErrInvalidUser             = apperror.BadRequest("Invalid property values found in provided user.")
	ErrInvalidCredentials      = apperror.BadRequest("Username and password are required")
	ErrInvalidLookupKey        = apperror.BadRequest("Unsupported user lookup key")
	ErrInvalidLookupValue      = apperror.BadRequest("Invalid user lookup value")
	ErrUserNotFound            = apperror.NotFound("No user found")
	ErrNoUsers                 = apperror.NotFound("No users found")
	ErrUsernameTaken           = apperror.Persistence("The provided username is already taken.")
	ErrEmailTaken              = apperror.Persistence("The provided email is already taken.")
	ErrUserHasReimbursements   = apperror.Conflict("User is referenced by reimbursements and cannot be deleted.")
	ErrBadCredentials          = apperror.Authentication("Bad credentials provided.")
	ErrAdminAccessRequired     = apperror.Authorization("You need admin access to do this.")
	ErrManagerAccessRequired   = apperror.Authorization("You need manager access to do this.")
	ErrInsufficientPermissions = apperror.Authorization("Insufficient permissions")
)
