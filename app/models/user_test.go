package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/kidsisland/app/models"
)

func TestUserIsAdmin(t *testing.T) {
	for role, want := range map[string]bool{
		"admin":  true,
		"Admin":  false,
		"admin ": false,
		"user":   false,
		"":       false,
	} {
		assert.Equal(t, want, models.User{Role: role}.IsAdmin(), "role %q", role)
	}
}
