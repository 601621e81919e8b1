package models

// Permission identifies an operation a worker may perform. Authorization
// is a capability-table lookup rather than string comparison on roles.
type Permission string

const (
	PermissionViewCase       Permission = "case:view"
	PermissionCreateCase     Permission = "case:create"
	PermissionEditCase       Permission = "case:edit"
	PermissionDeleteCase     Permission = "case:delete"
	PermissionUploadDocument Permission = "document:upload"
	PermissionViewDocuments  Permission = "document:view"
	PermissionCreateWorker   Permission = "worker:create"
	PermissionViewWorkers    Permission = "worker:view"
)

// rolePermissions is the closed capability table. Role scoping (which
// cases a lawyer or assistant may actually touch) is applied separately
// by the query helpers in services.
var rolePermissions = map[Role]map[Permission]bool{
	RoleAdmin: {
		PermissionViewCase:       true,
		PermissionCreateCase:     true,
		PermissionEditCase:       true,
		PermissionDeleteCase:     true,
		PermissionUploadDocument: true,
		PermissionViewDocuments:  true,
		PermissionCreateWorker:   true,
		PermissionViewWorkers:    true,
	},
	RoleLawyer: {
		PermissionViewCase:       true,
		PermissionCreateCase:     true,
		PermissionEditCase:       true,
		PermissionUploadDocument: true,
		PermissionViewDocuments:  true,
	},
	RoleAssistant: {
		PermissionViewCase:      true,
		PermissionViewDocuments: true,
	},
}

// RoleCan reports whether the role carries the given permission
func RoleCan(role Role, perm Permission) bool {
	perms, ok := rolePermissions[role]
	if !ok {
		return false
	}
	return perms[perm]
}

// Can reports whether the worker carries the given permission
func (w *Worker) Can(perm Permission) bool {
	return RoleCan(w.Role, perm)
}
