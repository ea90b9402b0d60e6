package user

type Permission string

const (
	// Self service
	PermissionViewOwnProfile       Permission = "profile.view_own"
	PermissionReimbursementCreate  Permission = "reimbursement.create"
	PermissionReimbursementViewOwn Permission = "reimbursement.view_own"

	// Finance
	PermissionReimbursementViewAll Permission = "reimbursement.view_all"
	PermissionReimbursementResolve Permission = "reimbursement.resolve"

	// Administration
	PermissionReimbursementEditAny Permission = "reimbursement.edit_any"
	PermissionReimbursementDelete  Permission = "reimbursement.delete"
	PermissionUserManage           Permission = "user.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionViewOwnProfile,
		PermissionReimbursementCreate,
		PermissionReimbursementViewOwn,
		PermissionReimbursementViewAll,
		PermissionReimbursementResolve,
		PermissionReimbursementEditAny,
		PermissionReimbursementDelete,
		PermissionUserManage,
	},
	RoleManager: {
		PermissionViewOwnProfile,
		PermissionReimbursementCreate,
		PermissionReimbursementViewOwn,
		PermissionReimbursementViewAll,
		PermissionReimbursementResolve,
	},
	RoleEmployee: {
		PermissionViewOwnProfile,
		PermissionReimbursementCreate,
		PermissionReimbursementViewOwn,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
