package errors

import (
	"fmt"
	"net/http"
)

type validationError struct {
	genericError
}

type (
	WrongJSONError       validationError
	InvalidAddressError  validationError
	InvalidAssetIDError  validationError
	InvalidAmountError   validationError
	InvalidQuantityError validationError
	CallerRequiredError  validationError
	NotFoundError        validationError
	TooManyRequestsError validationError
)

func newValidationError(id Identifier, kind string, code int, message string) validationError {
	return validationError{genericError: genericError{ID: id, Kind: kind, HttpCode: code, Message: message}}
}

func NewWrongJSONError(inner error) *WrongJSONError {
	e := WrongJSONError(newValidationError(WrongJSONErrorID, "WrongJSON", http.StatusBadRequest,
		fmt.Sprintf("Failed to parse JSON request: %v", inner)))
	return &e
}

func NewInvalidAddressError(message string) *InvalidAddressError {
	e := InvalidAddressError(newValidationError(InvalidAddressErrorID, "InvalidAddress", http.StatusBadRequest,
		message))
	return &e
}

func NewInvalidAssetIDError(id string) *InvalidAssetIDError {
	e := InvalidAssetIDError(newValidationError(InvalidAssetIDErrorID, "InvalidAssetID", http.StatusBadRequest,
		fmt.Sprintf("Invalid asset id '%s'", id)))
	return &e
}

func NewInvalidAmountError(inner error) *InvalidAmountError {
	e := InvalidAmountError(newValidationError(InvalidAmountErrorID, "InvalidAmount", http.StatusBadRequest,
		inner.Error()))
	return &e
}

func NewInvalidQuantityError(inner error) *InvalidQuantityError {
	e := InvalidQuantityError(newValidationError(InvalidQuantityErrorID, "InvalidQuantity", http.StatusBadRequest,
		fmt.Sprintf("Invalid quantity: %v", inner)))
	return &e
}

var (
	ErrCallerRequired = &CallerRequiredError{
		genericError: genericError{
			ID:       CallerRequiredErrorID,
			Kind:     "CallerRequired",
			HttpCode: http.StatusBadRequest,
			Message:  "Caller address header is required",
		},
	}
	ErrRouteNotFound = &NotFoundError{
		genericError: genericError{
			ID:       NotFoundErrorID,
			Kind:     "NotFound",
			HttpCode: http.StatusNotFound,
			Message:  "Route not found",
		},
	}
	ErrTooManyRequests = &TooManyRequestsError{
		genericError: genericError{
			ID:       TooManyRequestsErrorID,
			Kind:     "TooManyRequests",
			HttpCode: http.StatusTooManyRequests,
			Message:  "Issuance rate limit exceeded",
		},
	}
)
