// Package apperr defines the error taxonomy shared by the service layer.
// Handlers map each type to an HTTP status; anything else is a server error.
package apperr

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Validation(msg string) error { return &ValidationError{Msg: msg} }

type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

func NotFound(msg string) error { return &NotFoundError{Msg: msg} }

type AuthorizationError struct {
	Msg string
}

func (e *AuthorizationError) Error() string { return e.Msg }

func Authorization(msg string) error { return &AuthorizationError{Msg: msg} }
