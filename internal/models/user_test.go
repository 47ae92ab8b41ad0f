package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestChangedPasswordAfter(t *testing.T) {
	changedAt := time.Now().Add(-time.Hour)
	user := User{PasswordChangedAt: &changedAt}

	// Token issued before the change must be rejected.
	assert.True(t, user.ChangedPasswordAfter(changedAt.Add(-time.Minute)))
	// Token issued after the change stays valid.
	assert.False(t, user.ChangedPasswordAfter(changedAt.Add(time.Minute)))
}

func TestChangedPasswordAfterNeverChanged(t *testing.T) {
	user := User{}
	assert.False(t, user.ChangedPasswordAfter(time.Now().Add(-24*time.Hour)))
}

func TestValidRole(t *testing.T) {
	for _, role := range []Role{RoleUser, RoleGuide, RoleLeadGuide, RoleAdmin} {
		assert.True(t, ValidRole(role))
	}
	assert.False(t, ValidRole("superadmin"))
	assert.False(t, ValidRole(""))
}
