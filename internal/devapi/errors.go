package devapi

import "errors"

var (
	ErrorNotFound           = errors.New("not found")
	ErrorInvalidToken       = errors.New("invalid token")
	ErrorTokenExpired       = errors.New("token expired")
	ErrorInvalidCredentials = errors.New("invalid credentials")
	ErrorValidation         = errors.New("validation error")
	ErrorAlreadyExists      = errors.New("already exists")
)
