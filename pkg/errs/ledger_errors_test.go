package errs

import (
	"strconv"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type stringer string

func (s stringer) String() string { return string(s) }

func TestLedgerErrorTaxonomy(t *testing.T) {
	for i, tc := range []struct {
		err    *LedgerError
		typ    ErrorType
		reason error
		msg    string
	}{
		{NewValidationError("bad quantity %d", 0), ValidationError, ErrInvalidInput, "bad quantity 0"},
		{NewNotFoundError("asset %d", 7), ValidationError, ErrNotFound, "asset 7"},
		{NewUnauthorizedError(stringer("3N")), AuthorizationError, ErrUnauthorized, "account '3N' is not the operator"},
		{NewPausedError(), StateError, ErrPaused, "issuance is paused"},
		{NewSupplyExhaustedError(3), StateError, ErrSupplyExhausted, "all 3 assets are issued"},
		{NewSupplyExceededError(3, 2), StateError, ErrSupplyExceeded, "requested 3 assets, only 2 left"},
		{NewInsufficientPaymentError(stringer("0.005"), stringer("0.01")), PaymentError, ErrInsufficientPayment, "attached 0.005, required 0.01"},
		{NewNothingToWithdrawError(), NothingToWithdraw, ErrNothingToWithdraw, "collected balance is empty"},
	} {
		name := strconv.Itoa(i)
		assert.Equal(t, tc.typ, tc.err.Type(), name)
		assert.ErrorIs(t, tc.err, tc.reason, name)
		assert.Equal(t, tc.reason, tc.err.Reason(), name)
		assert.EqualError(t, tc.err, tc.msg, name)
		assert.True(t, IsType(errors.Wrap(tc.err, "wrapped"), tc.typ), name)
	}
}

func TestTransferFailedKeepsCause(t *testing.T) {
	cause := errors.New("account frozen")
	err := NewTransferFailedError(cause)
	assert.ErrorIs(t, err, ErrTransferFailed)
	assert.ErrorIs(t, err, cause)
	assert.EqualError(t, err, "outward transfer failed: account frozen")
	assert.True(t, IsType(err, TransferError))
	assert.Equal(t, "TransferError", TransferError.String())
}

func TestTypeOfForeignError(t *testing.T) {
	_, ok := TypeOf(errors.New("plain"))
	assert.False(t, ok)
	assert.False(t, IsType(nil, StateError))
}

func TestTransferUnconfirmed(t *testing.T) {
	cause := errors.New("reply timeout")
	err := NewTransferUnconfirmedError(cause, stringer("0.03"))
	assert.ErrorIs(t, err, ErrTransferUnconfirmed)
	assert.NotErrorIs(t, err, ErrTransferFailed)
	assert.ErrorIs(t, err, cause)
	assert.EqualError(t, err, "outward transfer of 0.03 is unconfirmed: reply timeout")
	assert.True(t, IsType(err, TransferError))
}
