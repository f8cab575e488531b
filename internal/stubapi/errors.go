package stubapi

import "errors"

var (
	errUsernameExists  = errors.New("username exists")
	errBadRegistration = errors.New("username and password required")
)
