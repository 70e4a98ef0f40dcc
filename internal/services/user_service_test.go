package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blacknews/blacknews-be/internal/models"
)

func testUser(email string) NewUserInput {
	return NewUserInput{
		FirstName:    "Jane",
		LastName:     "Doe",
		Email:        email,
		PasswordHash: "$2a$10$notarealhashbutlongenough",
	}
}

func TestCreateUserDefaultsAndNormalization(t *testing.T) {
	s := NewUserService(setupTestDB(t))

	user, err := s.Create(testUser("  Jane.Doe@Example.COM "))
	require.NoError(t, err)
	assert.Equal(t, "jane.doe@example.com", user.Email)
	assert.Equal(t, models.RoleReader, user.Role)
	assert.False(t, user.EmailVerified)
	assert.Nil(t, user.LastLogin)
}

func TestCreateUserValidation(t *testing.T) {
	s := NewUserService(setupTestDB(t))

	in := testUser("jane@example.com")
	in.FirstName = "  "
	_, err := s.Create(in)
	ve, ok := IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "firstName", ve.Field)

	in = testUser("not-an-email")
	_, err = s.Create(in)
	ve, ok = IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "email", ve.Field)
}

func TestDuplicateEmailIsRejectedCaseInsensitively(t *testing.T) {
	s := NewUserService(setupTestDB(t))

	_, err := s.Create(testUser("jane@example.com"))
	require.NoError(t, err)

	_, err = s.Create(testUser("JANE@EXAMPLE.COM"))
	ve, ok := IsValidation(err)
	require.True(t, ok, "expected validation error, got %v", err)
	assert.Equal(t, "email", ve.Field)

	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestGetByEmailIsCaseInsensitive(t *testing.T) {
	s := NewUserService(setupTestDB(t))

	created, err := s.Create(testUser("jane@example.com"))
	require.NoError(t, err)

	found, err := s.GetByEmail("Jane@Example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.NotEmpty(t, found.PasswordHash)
}

func TestPartialUpdatePreservesAbsentFields(t *testing.T) {
	s := NewUserService(setupTestDB(t))

	created, err := s.Create(testUser("jane@example.com"))
	require.NoError(t, err)

	newFirst := "Janet"
	updated, err := s.Update(created.ID, models.UserUpdate{FirstName: &newFirst})
	require.NoError(t, err)
	assert.Equal(t, "Janet", updated.FirstName)
	assert.Equal(t, "Doe", updated.LastName)
	assert.Equal(t, created.Avatar, updated.Avatar)

	// A present-but-blank name is rejected rather than stored.
	blank := "  "
	_, err = s.Update(created.ID, models.UserUpdate{LastName: &blank})
	_, ok := IsValidation(err)
	assert.True(t, ok)
}

func TestRecordLoginStampsLastLogin(t *testing.T) {
	s := NewUserService(setupTestDB(t))

	created, err := s.Create(testUser("jane@example.com"))
	require.NoError(t, err)
	require.NoError(t, s.RecordLogin(created.ID))

	user, err := s.GetByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, user.LastLogin)
	assert.False(t, user.LastLogin.IsZero())
}

func TestDeleteUser(t *testing.T) {
	s := NewUserService(setupTestDB(t))

	created, err := s.Create(testUser("jane@example.com"))
	require.NoError(t, err)
	require.NoError(t, s.Delete(created.ID))

	_, err = s.GetByID(created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(created.ID), ErrNotFound)
}
