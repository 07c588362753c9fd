package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Actor resolution error types
const (
	ErrorTypeAccountInactive ErrorType = "account_inactive"
	ErrorTypeTokenExpired    ErrorType = "token_expired"
	ErrorTypeTokenInvalid    ErrorType = "token_invalid"
	ErrorTypeTokenMissing    ErrorType = "token_missing"
)

// AuthError represents a failure to resolve the acting user of a request.
type AuthError struct {
	*AppError
	// ShouldLog is false for expected failures such as expired tokens.
	ShouldLog bool
}

// Error implements the error interface
func (e *AuthError) Error() string {
	return e.AppError.Error()
}

// Unwrap allows errors.Is and errors.As to work correctly
func (e *AuthError) Unwrap() error {
	return e.AppError
}

// NewTokenMissingError creates an error for requests without credentials
func NewTokenMissingError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenMissing,
			Message: "missing authorization token",
			Code:    http.StatusUnauthorized,
		},
		ShouldLog: false,
	}
}

// NewTokenExpiredError creates an error for expired tokens
func NewTokenExpiredError(tokenType string) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenExpired,
			Message: fmt.Sprintf("%s has expired", tokenType),
			Code:    http.StatusUnauthorized,
			Details: "Please login again",
		},
		ShouldLog: false,
	}
}

// NewTokenInvalidError creates an error for invalid tokens
func NewTokenInvalidError(tokenType string) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenInvalid,
			Message: fmt.Sprintf("Invalid %s", tokenType),
			Code:    http.StatusUnauthorized,
			Details: "Token is invalid or has been revoked",
		},
		ShouldLog: true,
	}
}

// NewAccountInactiveError creates an error for inactive accounts
func NewAccountInactiveError(details ...string) *AuthError {
	detail := "Account is not active. Please contact an administrator"
	if len(details) > 0 {
		detail = details[0]
	}
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeAccountInactive,
			Message: "Account is not active",
			Code:    http.StatusForbidden,
			Details: detail,
		},
		ShouldLog: false,
	}
}

// GetAuthError extracts AuthError from error chain
func GetAuthError(err error) *AuthError {
	var authErr *AuthError
	if stderrors.As(err, &authErr) {
		return authErr
	}
	return nil
}

// ShouldLogAuthError returns true if the authentication error should be logged
func ShouldLogAuthError(err error) bool {
	if authErr := GetAuthError(err); authErr != nil {
		return authErr.ShouldLog
	}
	return true
}
