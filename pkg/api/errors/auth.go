package errors

import (
	"net/http"
)

// API Auth
type authError struct {
	genericError
}

type (
	APIKeyNotValidError authError
	APIKeyDisabledError authError
)

var (
	ErrAPIKeyNotValid = &APIKeyNotValidError{
		genericError: genericError{
			ID:       APIKeyNotValidErrorID,
			Kind:     "APIKeyNotValid",
			HttpCode: http.StatusForbidden,
			Message:  "Provided API key is not correct",
		},
	}
	ErrAPIKeyDisabled = &APIKeyDisabledError{
		genericError: genericError{
			ID:       APIKeyDisabledErrorID,
			Kind:     "APIKeyDisabled",
			HttpCode: http.StatusForbidden,
			Message:  "API key disabled",
		},
	}
)
