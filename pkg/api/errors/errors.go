// Package errors defines the JSON errors of the HTTP API.
package errors

import (
	"fmt"
	"net/http"
)

type Identifier int

const (
	UnknownErrorID Identifier = iota
	WrongJSONErrorID
	InvalidAddressErrorID
	InvalidAssetIDErrorID
	InvalidAmountErrorID
	InvalidQuantityErrorID
	CallerRequiredErrorID
	APIKeyNotValidErrorID
	APIKeyDisabledErrorID
	NotFoundErrorID
	TooManyRequestsErrorID
)

// Ledger error ids are ledgerErrorIDOffset + errs.ErrorType.
const ledgerErrorIDOffset Identifier = 100

// ApiError is an error with a JSON representation and an HTTP status.
// Types implementing ApiError MUST be serializable to JSON.
type ApiError interface {
	error
	GetHttpCode() int
}

type genericError struct {
	ID       Identifier `json:"error"`
	Kind     string     `json:"kind"`
	HttpCode int        `json:"-"`
	Message  string     `json:"message"`
}

func (g *genericError) Error() string {
	return fmt.Sprintf("ApiError #%d (%s): %s", g.ID, g.Kind, g.Message)
}

func (g *genericError) GetHttpCode() int {
	return g.HttpCode
}

type UnknownError struct {
	genericError
	inner error
}

func (u *UnknownError) Unwrap() error {
	return u.inner
}

func NewUnknownError(inner error) *UnknownError {
	return &UnknownError{
		genericError: genericError{
			ID:       UnknownErrorID,
			Kind:     "Unknown",
			HttpCode: http.StatusInternalServerError,
			Message:  "Error is unknown",
		},
		inner: inner,
	}
}
