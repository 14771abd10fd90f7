package session

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an authentication failure.
type ErrorKind string

// Error kinds surfaced to callers.
const (
	KindAccountNotFound      ErrorKind = "AccountNotFound"
	KindIncorrectPassword    ErrorKind = "IncorrectPassword"
	KindRoleMismatch         ErrorKind = "RoleMismatch"
	KindAccountAlreadyExists ErrorKind = "AccountAlreadyExists"
	KindGeneral              ErrorKind = "General"
)

// AuthError is the structured error recorded by the store and returned to the caller.
type AuthError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is matches any AuthError of the same kind, so errors.Is works against the sentinels below.
func (e *AuthError) Is(target error) bool {
	t, ok := target.(*AuthError)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is comparisons.
var (
	ErrAccountNotFound      = &AuthError{Kind: KindAccountNotFound, Message: "no account found with this email"}
	ErrIncorrectPassword    = &AuthError{Kind: KindIncorrectPassword, Message: "incorrect password"}
	ErrRoleMismatch         = &AuthError{Kind: KindRoleMismatch, Message: "account is registered with a different role"}
	ErrAccountAlreadyExists = &AuthError{Kind: KindAccountAlreadyExists, Message: "an account with this email already exists"}
	ErrGeneral              = &AuthError{Kind: KindGeneral, Message: "something went wrong"}
)

// ErrNoActiveSession is returned by operations that need a logged-in user.
var ErrNoActiveSession = errors.New("no active session")
