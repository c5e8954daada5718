package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homeschool/internal/apperrors"
	"homeschool/internal/models"
)

func TestUserRepositoryCreateDuplicateEmail(t *testing.T) {
	pool := startPostgres(t)
	repo := NewUserRepository(pool)

	first := &models.User{
		Email:        "teacher@example.com",
		PasswordHash: "not-a-real-hash",
		FirstName:    "Pat",
		LastName:     "Example",
	}
	require.NoError(t, repo.Create(first))

	// Same address again, bypassing the service's lookup, lands on the
	// unique index and must come back as the duplicate-email error.
	second := &models.User{
		Email:        "Teacher@Example.com",
		PasswordHash: "not-a-real-hash",
		FirstName:    "Other",
		LastName:     "Example",
	}
	err := repo.Create(second)
	require.Error(t, err)
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeDuplicateEmail, appErr.Code)

	got, err := repo.FindUserByEmail("teacher@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first.ID, got.ID)
}
