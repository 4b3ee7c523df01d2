package permissions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lalazar/permissions"
)

func TestGet(t *testing.T) {
	data := permissions.Get()

	assert.NotNil(t, data)
	assert.False(t, data.Skip)
	assert.NotEmpty(t, data.Endpoints)
}

func TestFindPermissions(t *testing.T) {
	data := permissions.Get()

	login := data.FindPermissions("/v1/auth/login", "POST")
	assert.True(t, login.Skip)

	update := data.FindPermissions("/v1/bookings/{id}/status", "PATCH")
	assert.False(t, update.Skip)
	assert.Contains(t, update.Permissions, "admin")

	unknown := data.FindPermissions("/v1/nothing", "GET")
	assert.False(t, unknown.Skip)
	assert.Empty(t, unknown.Permissions)
}

func TestPermission_Allows(t *testing.T) {
	restricted := permissions.Permission{Permissions: []string{"superadmin", "admin"}}

	assert.True(t, restricted.Allows("admin"))
	assert.False(t, restricted.Allows("staff"))

	open := permissions.Permission{}
	assert.True(t, open.Allows("staff"))
}
