package application

import "errors"

var (
	// ErrInvalidCredentials is returned for any login failure. Unknown login
	// and wrong password are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("incorrect login or password")
	// ErrForbidden means the caller is neither the owner nor the super-user.
	ErrForbidden = errors.New("forbidden")
)
