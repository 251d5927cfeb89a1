package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Role       string `json:"role" validate:"omitempty,is-user-role"`
	Experience string `json:"experience" validate:"omitempty,is-experience-bucket"`
	WorkType   string `json:"work_type" validate:"omitempty,is-work-type"`
}

func TestValidateCustomTags(t *testing.T) {
	v := New()

	t.Run("valid request passes", func(t *testing.T) {
		err := v.Validate(&sampleRequest{
			Email:      "user@test.com",
			Role:       "pro",
			Experience: "medium",
			WorkType:   "full_time",
		})
		assert.NoError(t, err)
	})

	t.Run("invalid role is rejected with the json field name", func(t *testing.T) {
		err := v.Validate(&sampleRequest{Email: "user@test.com", Role: "superuser"})
		require.Error(t, err)

		ve, ok := err.(*ValidationError)
		require.True(t, ok)
		assert.Contains(t, ve.Errors, "role")
	})

	t.Run("invalid experience bucket is rejected", func(t *testing.T) {
		err := v.Validate(&sampleRequest{Email: "user@test.com", Experience: "veteran"})
		require.Error(t, err)

		ve, ok := err.(*ValidationError)
		require.True(t, ok)
		assert.Contains(t, ve.Errors, "experience")
	})

	t.Run("all experience buckets are accepted", func(t *testing.T) {
		for _, bucket := range []string{"all", "fresher", "medium", "high", "pro"} {
			err := v.Validate(&sampleRequest{Email: "user@test.com", Experience: bucket})
			assert.NoError(t, err, "bucket %q", bucket)
		}
	})

	t.Run("missing email reports the field", func(t *testing.T) {
		err := v.Validate(&sampleRequest{})
		require.Error(t, err)

		ve, ok := err.(*ValidationError)
		require.True(t, ok)
		assert.Contains(t, ve.Errors, "email")
		assert.Equal(t, "This field is required", ve.Errors["email"])
	})

	t.Run("invalid work type is rejected", func(t *testing.T) {
		err := v.Validate(&sampleRequest{Email: "user@test.com", WorkType: "gig"})
		assert.Error(t, err)
	})
}
