package errs

import (
	"errors"
	"fmt"
)

type ErrorType byte

const (
	// ValidationError indicates malformed or zero-valued input.
	ValidationError ErrorType = iota + 1

	// AuthorizationError is returned when a non-operator invokes a gated operation.
	AuthorizationError

	// StateError covers rejections caused by the ledger state: paused issuance or supply limits.
	StateError

	// PaymentError indicates that the attached value does not cover the unit price.
	PaymentError

	// TransferError indicates that the outward value transfer of a withdrawal failed.
	TransferError

	// NothingToWithdraw is returned by a withdrawal of an empty balance.
	NothingToWithdraw

	// StorageError covers failures to read or commit the persisted ledger state.
	StorageError
)

func (t ErrorType) String() string {
	switch t {
	case ValidationError:
		return "ValidationError"
	case AuthorizationError:
		return "AuthorizationError"
	case StateError:
		return "StateError"
	case PaymentError:
		return "PaymentError"
	case TransferError:
		return "TransferError"
	case NothingToWithdraw:
		return "NothingToWithdraw"
	case StorageError:
		return "StorageError"
	default:
		return fmt.Sprintf("ErrorType(%d)", byte(t))
	}
}

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrPaused              = errors.New("paused")
	ErrSupplyExhausted     = errors.New("supply exhausted")
	ErrSupplyExceeded      = errors.New("supply exceeded")
	ErrInsufficientPayment = errors.New("insufficient payment")
	ErrNothingToWithdraw   = errors.New("nothing to withdraw")
	ErrTransferFailed      = errors.New("transfer failed")
	ErrTransferUnconfirmed = errors.New("transfer unconfirmed")
	ErrStorage             = errors.New("storage failure")
)

// LedgerError is the error returned by every rejected ledger operation.
// It matches its sentinel reason and, if present, the underlying cause with errors.Is.
type LedgerError struct {
	errorType ErrorType
	reason    error
	cause     error
	message   string
}

func newLedgerError(t ErrorType, reason, cause error, message string) *LedgerError {
	return &LedgerError{errorType: t, reason: reason, cause: cause, message: message}
}

func (e *LedgerError) Type() ErrorType {
	return e.errorType
}

// Reason returns the sentinel error describing the rejection.
func (e *LedgerError) Reason() error {
	return e.reason
}

func (e *LedgerError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.message, e.cause)
	}
	return e.message
}

func (e *LedgerError) Unwrap() []error {
	if e.cause != nil {
		return []error{e.reason, e.cause}
	}
	return []error{e.reason}
}

func (e *LedgerError) Extend(message string) error {
	return newLedgerError(e.errorType, e.reason, e.cause, fmtExtend(e.message, message))
}

func NewValidationError(format string, args ...any) *LedgerError {
	return newLedgerError(ValidationError, ErrInvalidInput, nil, fmt.Sprintf(format, args...))
}

func NewNotFoundError(format string, args ...any) *LedgerError {
	return newLedgerError(ValidationError, ErrNotFound, nil, fmt.Sprintf(format, args...))
}

func NewUnauthorizedError(caller fmt.Stringer) *LedgerError {
	return newLedgerError(AuthorizationError, ErrUnauthorized, nil,
		fmt.Sprintf("account '%s' is not the operator", caller))
}

func NewPausedError() *LedgerError {
	return newLedgerError(StateError, ErrPaused, nil, "issuance is paused")
}

func NewSupplyExhaustedError(supplyCap uint64) *LedgerError {
	return newLedgerError(StateError, ErrSupplyExhausted, nil,
		fmt.Sprintf("all %d assets are issued", supplyCap))
}

func NewSupplyExceededError(requested, remaining uint64) *LedgerError {
	return newLedgerError(StateError, ErrSupplyExceeded, nil,
		fmt.Sprintf("requested %d assets, only %d left", requested, remaining))
}

func NewInsufficientPaymentError(attached, required fmt.Stringer) *LedgerError {
	return newLedgerError(PaymentError, ErrInsufficientPayment, nil,
		fmt.Sprintf("attached %s, required %s", attached, required))
}

func NewNothingToWithdrawError() *LedgerError {
	return newLedgerError(NothingToWithdraw, ErrNothingToWithdraw, nil, "collected balance is empty")
}

func NewTransferFailedError(cause error) *LedgerError {
	return newLedgerError(TransferError, ErrTransferFailed, cause, "outward transfer failed")
}

// NewTransferUnconfirmedError reports a payout whose outcome is unknown. The amount stays debited.
func NewTransferUnconfirmedError(cause error, amount fmt.Stringer) *LedgerError {
	return newLedgerError(TransferError, ErrTransferUnconfirmed, cause,
		fmt.Sprintf("outward transfer of %s is unconfirmed", amount))
}

func NewStorageError(cause error, message string) *LedgerError {
	return newLedgerError(StorageError, ErrStorage, cause, message)
}

// TypeOf extracts the ErrorType of the first LedgerError in the chain.
func TypeOf(err error) (ErrorType, bool) {
	var le *LedgerError
	if errors.As(err, &le) {
		return le.Type(), true
	}
	return 0, false
}

func IsType(err error, t ErrorType) bool {
	et, ok := TypeOf(err)
	return ok && et == t
}
