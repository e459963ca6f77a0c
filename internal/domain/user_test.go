package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserPatchEmpty(t *testing.T) {
	name := "Bia"
	assert.True(t, UserPatch{}.Empty())
	assert.False(t, UserPatch{Name: &name}.Empty())
}

func TestNewUserFilterMatchesAnyActiveFlag(t *testing.T) {
	f := NewUserFilter()
	assert.Equal(t, ActiveAny, f.Active)
	assert.Nil(t, f.ID)
	assert.Empty(t, f.OrderBy)
}
