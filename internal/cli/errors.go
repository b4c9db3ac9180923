package cli

import (
	"errors"

	"til-cli/internal/api"
)

// Fallbacks used when the server's failure body carried no message.
const (
	loginFallback  = "login failed: check your account details"
	signupFallback = "signup failed: check the submitted fields"
)

type authSurfaceError struct {
	msg string
	err error
}

func (e authSurfaceError) Error() string { return e.msg }
func (e authSurfaceError) Unwrap() error { return e.err }

func errLogin(err error) error {
	return authSurfaceError{msg: api.UserMessage(err, loginFallback), err: err}
}

func errSignup(err error) error {
	return authSurfaceError{msg: api.UserMessage(err, signupFallback), err: err}
}

var errNoProject = errors.New("no project selected; pass --project or run `til projects select <id>`")
