package errors

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wavesplatform/gomint/pkg/errs"
)

type stringer string

func (s stringer) String() string { return string(s) }

func TestNewLedgerError(t *testing.T) {
	for _, test := range []struct {
		err  error
		code int
		id   Identifier
		kind string
	}{
		{errs.NewValidationError("bad"), http.StatusBadRequest, 101, "ValidationError"},
		{errs.NewNotFoundError("asset %d is not issued", 4), http.StatusNotFound, 101, "ValidationError"},
		{errs.NewUnauthorizedError(stringer("3N")), http.StatusForbidden, 102, "AuthorizationError"},
		{errs.NewPausedError(), http.StatusConflict, 103, "StateError"},
		{errs.NewInsufficientPaymentError(stringer("0.005"), stringer("0.01")), http.StatusPaymentRequired, 104,
			"PaymentError"},
		{errs.NewTransferFailedError(errors.New("frozen")), http.StatusBadGateway, 105, "TransferError"},
		{errs.NewTransferUnconfirmedError(errors.New("timeout"), stringer("0.01")), http.StatusBadGateway, 105,
			"TransferError"},
		{errs.NewNothingToWithdrawError(), http.StatusConflict, 106, "NothingToWithdraw"},
		{errors.Wrap(errs.NewStorageError(errors.New("io"), "commit"), "wrapped"), http.StatusInternalServerError,
			107, "StorageError"},
	} {
		e, ok := NewLedgerError(test.err)
		require.True(t, ok, test.err.Error())
		assert.Equal(t, test.code, e.GetHttpCode(), test.err.Error())
		assert.Equal(t, test.id, e.ID, test.err.Error())
		assert.Equal(t, test.kind, e.Kind)
	}
	_, ok := NewLedgerError(errors.New("plain"))
	assert.False(t, ok)
}

func TestLedgerErrorJSON(t *testing.T) {
	e, ok := NewLedgerError(errs.NewPausedError())
	require.True(t, ok)
	b, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":103,"kind":"StateError","message":"issuance is paused"}`, string(b))
}
