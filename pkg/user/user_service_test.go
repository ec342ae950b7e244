package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServiceTest() (Service, *StubUserRepository) {
	repo := NewStubUserRepository()
	return NewUserService(repo), repo
}

func annaUser() User {
	return User{
		Username:    "anna",
		DisplayName: "Anna Kowalska",
		Settings: Settings{
			Timezone: "Europe/Warsaw",
			Currency: "PLN",
		},
	}
}

func TestUserServiceImpl_CreateUser(t *testing.T) {
	t.Run("should create a user and assign an id", func(t *testing.T) {
		service, _ := setupServiceTest()

		// when
		created, err := service.CreateUser(context.Background(), annaUser())

		// then
		require.NoError(t, err)
		assert.NotEmpty(t, created.Id)
		assert.Equal(t, "anna", created.Username)

		stored, err := service.GetUser(context.Background(), created.Id)
		require.NoError(t, err)
		assert.Equal(t, created, stored)
	})

	t.Run("should reject a user without a username", func(t *testing.T) {
		service, _ := setupServiceTest()
		incomplete := annaUser()
		incomplete.Username = ""

		// when
		_, err := service.CreateUser(context.Background(), incomplete)

		// then
		assert.ErrorIs(t, err, ErrUserDataInvalid)
	})

	t.Run("should reject a taken username", func(t *testing.T) {
		service, _ := setupServiceTest()
		_, err := service.CreateUser(context.Background(), annaUser())
		require.NoError(t, err)

		// when
		_, err = service.CreateUser(context.Background(), annaUser())

		// then
		assert.ErrorIs(t, err, ErrUserDataInvalid)
	})
}

func TestUserServiceImpl_GetCurrentUser(t *testing.T) {
	t.Run("should return the user carried by the context", func(t *testing.T) {
		service, _ := setupServiceTest()
		created, err := service.CreateUser(context.Background(), annaUser())
		require.NoError(t, err)
		ctx := WithUser(context.Background(), created)

		// when
		current, err := service.GetCurrentUser(ctx)

		// then
		require.NoError(t, err)
		assert.Equal(t, created, current)
	})

	t.Run("should fail without a user in the context", func(t *testing.T) {
		service, _ := setupServiceTest()

		// when
		_, err := service.GetCurrentUser(context.Background())

		// then
		assert.ErrorIs(t, err, ErrNoUser)
	})
}

func TestUserServiceImpl_UpdateUser(t *testing.T) {
	t.Run("should update the current user's settings", func(t *testing.T) {
		service, _ := setupServiceTest()
		created, err := service.CreateUser(context.Background(), annaUser())
		require.NoError(t, err)
		ctx := WithUser(context.Background(), created)

		changed := created
		changed.DisplayName = "Anna Nowak"
		changed.Settings.Currency = "EUR"

		// when
		updated, err := service.UpdateUser(ctx, changed)

		// then
		require.NoError(t, err)
		assert.Equal(t, "Anna Nowak", updated.DisplayName)
		assert.Equal(t, "EUR", updated.Settings.Currency)
	})
}

func TestUserServiceImpl_IsUsernameAvailable(t *testing.T) {
	service, _ := setupServiceTest()
	_, err := service.CreateUser(context.Background(), annaUser())
	require.NoError(t, err)

	// when
	takenAvailable, err := service.IsUsernameAvailable(context.Background(), "anna")
	require.NoError(t, err)
	freeAvailable, err := service.IsUsernameAvailable(context.Background(), "bert")
	require.NoError(t, err)

	// then
	assert.False(t, takenAvailable)
	assert.True(t, freeAvailable)
}

func TestUserServiceImpl_DeleteUser(t *testing.T) {
	service, _ := setupServiceTest()
	created, err := service.CreateUser(context.Background(), annaUser())
	require.NoError(t, err)

	// when
	err = service.DeleteUser(context.Background(), created.Id)

	// then
	require.NoError(t, err)
	_, err = service.GetUser(context.Background(), created.Id)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
