package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleCapabilities(t *testing.T) {
	// Admins hold every capability
	for _, perm := range []Permission{
		PermissionViewCase, PermissionCreateCase, PermissionEditCase, PermissionDeleteCase,
		PermissionUploadDocument, PermissionViewDocuments,
		PermissionCreateWorker, PermissionViewWorkers,
	} {
		assert.True(t, RoleCan(RoleAdmin, perm), "admin should hold %s", perm)
	}

	// Lawyers work cases and documents but never delete or manage staff
	assert.True(t, RoleCan(RoleLawyer, PermissionCreateCase))
	assert.True(t, RoleCan(RoleLawyer, PermissionEditCase))
	assert.True(t, RoleCan(RoleLawyer, PermissionUploadDocument))
	assert.False(t, RoleCan(RoleLawyer, PermissionDeleteCase))
	assert.False(t, RoleCan(RoleLawyer, PermissionCreateWorker))

	// Assistants are read-only
	assert.True(t, RoleCan(RoleAssistant, PermissionViewCase))
	assert.True(t, RoleCan(RoleAssistant, PermissionViewDocuments))
	assert.False(t, RoleCan(RoleAssistant, PermissionCreateCase))
	assert.False(t, RoleCan(RoleAssistant, PermissionEditCase))
	assert.False(t, RoleCan(RoleAssistant, PermissionUploadDocument))

	// Unknown roles hold nothing
	assert.False(t, RoleCan(Role("superuser"), PermissionViewCase))
}

func TestWorkerCan(t *testing.T) {
	admin := &Worker{Role: RoleAdmin}
	assert.True(t, admin.Can(PermissionDeleteCase))

	assistant := &Worker{Role: RoleAssistant}
	assert.False(t, assistant.Can(PermissionDeleteCase))
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole(RoleAdmin))
	assert.True(t, IsValidRole(RoleLawyer))
	assert.True(t, IsValidRole(RoleAssistant))
	assert.False(t, IsValidRole(Role("superuser")))
	assert.False(t, IsValidRole(Role("")))
}
