package user

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUserDataInvalid = errors.New("user data invalid")
)

type User struct {
	Id          string
	Username    string
	DisplayName string
	Settings    Settings
}

type Settings struct {
	Timezone string
	// Currency is the ISO 4217 code used when rendering amounts; the engine
	// itself never converts between currencies.
	Currency string
}
