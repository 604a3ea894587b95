package auth

import (
	internaljwt "elearn-backend/internal/jwt"
	"elearn-backend/internal/model"
)

type ErrorCode string

const (
	ErrorCodeValidation   ErrorCode = "validation_error"
	ErrorCodeUnauthorized ErrorCode = "unauthorized"
	ErrorCodeNotFound     ErrorCode = "not_found"
	ErrorCodeInternal     ErrorCode = "internal_error"
)

type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

type RegisterParams struct {
	Username string
	Email    string
	Password string
	Role     string
}

type LoginParams struct {
	Email    string
	Password string
}

// Identity is the decoded token subject attached to authenticated requests.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

type LoginResult struct {
	User   model.UserItem
	Tokens internaljwt.TokenResponse
}
