package api

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an API failure.
type ErrorKind int

const (
	// KindNetwork: the request never reached the server, or the response
	// body could not be decoded.
	KindNetwork ErrorKind = iota
	// KindAuth: 401. The client never retries or refreshes; the caller
	// decides whether to drop to the login flow.
	KindAuth
	// KindValidation: any other 4xx. Message carries the server's
	// human-readable reason when the body had one.
	KindValidation
	// KindServer: 5xx.
	KindServer
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindAuth:
		return "auth"
	case KindValidation:
		return "validation"
	case KindServer:
		return "server"
	}
	return "unknown"
}

type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
	Op      string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Op, e.Message, e.Kind)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: status %d (%s)", e.Op, e.Status, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

func IsAuth(err error) bool       { return isKind(err, KindAuth) }
func IsNetwork(err error) bool    { return isKind(err, KindNetwork) }
func IsValidation(err error) bool { return isKind(err, KindValidation) }
func IsServer(err error) bool     { return isKind(err, KindServer) }

func isKind(err error, kind ErrorKind) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind == kind
	}
	return false
}

// UserMessage returns the server-provided message for an error when one
// exists, or fallback. Only the auth forms surface this to the user.
func UserMessage(err error, fallback string) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return fallback
}
