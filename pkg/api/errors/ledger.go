package errors

import (
	stderrors "errors"
	"net/http"

	"github.com/wavesplatform/gomint/pkg/errs"
)

// LedgerError is a rejected ledger operation.
type LedgerError struct {
	genericError
	inner error
}

func (e *LedgerError) Unwrap() error {
	return e.inner
}

// NewLedgerError converts the ledger error to its API form.
// The second result is false if the error does not come from the ledger.
func NewLedgerError(err error) (*LedgerError, bool) {
	t, ok := errs.TypeOf(err)
	if !ok {
		return nil, false
	}
	code := ledgerHTTPCode(t)
	if t == errs.ValidationError && stderrors.Is(err, errs.ErrNotFound) {
		code = http.StatusNotFound
	}
	return &LedgerError{
		genericError: genericError{
			ID:       ledgerErrorIDOffset + Identifier(t),
			Kind:     t.String(),
			HttpCode: code,
			Message:  err.Error(),
		},
		inner: err,
	}, true
}

func ledgerHTTPCode(t errs.ErrorType) int {
	switch t {
	case errs.ValidationError:
		return http.StatusBadRequest
	case errs.AuthorizationError:
		return http.StatusForbidden
	case errs.StateError, errs.NothingToWithdraw:
		return http.StatusConflict
	case errs.PaymentError:
		return http.StatusPaymentRequired
	case errs.TransferError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
