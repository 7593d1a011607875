package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCan(t *testing.T) {
	assert.True(t, Can(OpSubmitPayment, RoleStudent))
	assert.False(t, Can(OpSubmitPayment, RoleAdmin))

	assert.True(t, Can(OpDecidePayment, RoleAdmin))
	assert.False(t, Can(OpDecidePayment, RoleStudent))

	for _, op := range []Operation{OpManageVideos, OpManageKits, OpManageSettings, OpListAllPayments, OpViewStats} {
		assert.True(t, Can(op, RoleAdmin), op)
		assert.False(t, Can(op, RoleStudent), op)
	}

	for _, op := range []Operation{OpViewCatalog, OpViewOwnPayments, OpViewSettings} {
		assert.True(t, Can(op, RoleAdmin), op)
		assert.True(t, Can(op, RoleStudent), op)
	}

	assert.False(t, Can(OpViewCatalog, ""))
	assert.False(t, Can("unknown", RoleAdmin))
}

func TestAuthorize(t *testing.T) {
	assert.NoError(t, Authorize(OpDecidePayment, RoleAdmin))
	assert.ErrorIs(t, Authorize(OpDecidePayment, RoleStudent), ErrForbidden)
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseRole("admin"))
	assert.Equal(t, RoleStudent, ParseRole("STUDENT"))
	assert.Equal(t, RoleStudent, ParseRole("USER"))
	assert.Equal(t, Role(""), ParseRole("organizer"))
}
