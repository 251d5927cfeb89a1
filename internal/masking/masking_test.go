package masking

import (
	"strings"
	"testing"

	"chefhire_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestEmailMasking(t *testing.T) {
	t.Run("basic viewer gets masked local part with intact domain", func(t *testing.T) {
		got := Email("amitkumar@gmail.com", models.UserRoleBasic)

		assert.Equal(t, "am*******@gmail.com", got)
		assert.True(t, strings.HasSuffix(got, "@gmail.com"))
		assert.Len(t, got, len("amitkumar@gmail.com"), "masking must preserve length")
	})

	t.Run("pro and admin see the raw address", func(t *testing.T) {
		assert.Equal(t, "amitkumar@gmail.com", Email("amitkumar@gmail.com", models.UserRolePro))
		assert.Equal(t, "amitkumar@gmail.com", Email("amitkumar@gmail.com", models.UserRoleAdmin))
	})

	t.Run("short local parts are fully starred", func(t *testing.T) {
		got := Email("ab@x.io", models.UserRoleBasic)
		assert.Equal(t, "**@x.io", got)
		assert.NotContains(t, strings.Split(got, "@")[0], "a")
	})

	t.Run("one character local part never leaks", func(t *testing.T) {
		assert.Equal(t, "*@x.io", Email("a@x.io", models.UserRoleBasic))
	})

	t.Run("malformed address without at sign is still masked", func(t *testing.T) {
		assert.Equal(t, "no********", Email("notanemail", models.UserRoleBasic))
	})

	t.Run("empty passes through", func(t *testing.T) {
		assert.Equal(t, "", Email("", models.UserRoleBasic))
	})
}

func TestPhoneMasking(t *testing.T) {
	t.Run("basic viewer sees first two and last two digits", func(t *testing.T) {
		got := Phone("9876543210", models.UserRoleBasic)
		assert.Equal(t, "98******10", got)
		assert.Len(t, got, 10)
	})

	t.Run("pro sees the raw number", func(t *testing.T) {
		assert.Equal(t, "9876543210", Phone("9876543210", models.UserRolePro))
	})

	t.Run("short numbers are fully starred", func(t *testing.T) {
		assert.Equal(t, "****", Phone("1234", models.UserRoleBasic))
		assert.Equal(t, "**", Phone("12", models.UserRoleBasic))
	})

	t.Run("masked output never contains hidden digits", func(t *testing.T) {
		got := Phone("5551234567", models.UserRoleBasic)
		middle := got[2 : len(got)-2]
		assert.Equal(t, strings.Repeat("*", 6), middle)
	})
}

func TestFullAccess(t *testing.T) {
	assert.False(t, FullAccess(models.UserRoleBasic))
	assert.True(t, FullAccess(models.UserRolePro))
	assert.True(t, FullAccess(models.UserRoleAdmin))
}
