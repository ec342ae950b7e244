package test_utils

import (
	"context"

	"github.com/penna/penna/pkg/user"
)

// TestUserProvider is a fixed user.Provider for tests that need a known user.
type TestUserProvider struct{}

var _ user.Provider = TestUserProvider{}

func (p TestUserProvider) GetCurrentUser(ctx context.Context) (user.User, error) {
	return user.User{
		Id:          "11111111-1111-1111-1111-111111111111",
		Username:    "test_user",
		DisplayName: "Test User",
		Settings: user.Settings{
			Timezone: "Europe/Warsaw",
			Currency: "EUR",
		},
	}, nil
}
