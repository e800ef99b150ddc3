package escrow

import (
	"context"
	"math"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wavesplatform/gomint/pkg/errs"
	"github.com/wavesplatform/gomint/pkg/proto"
)

const price = proto.Amount(1_000_000)

func payee(t *testing.T) proto.Address {
	a, err := proto.NewAddressFromString("3NBVqYXrapgJP9atQccdBPAgJPwHDKkh6A8")
	require.NoError(t, err)
	return a
}

func TestAccept(t *testing.T) {
	e := New(nil, 0)
	require.NoError(t, e.Accept(price, price))
	require.NoError(t, e.Accept(3*price, price))
	assert.Equal(t, 4*price, e.Balance())

	err := e.Accept(price/2, price)
	assert.True(t, errs.IsType(err, errs.PaymentError))
	assert.ErrorIs(t, err, errs.ErrInsufficientPayment)
	assert.Equal(t, 4*price, e.Balance())

	require.NoError(t, e.Accept(0, 0))
	assert.Equal(t, 4*price, e.Balance())
}

func TestAcceptOverflow(t *testing.T) {
	e := New(nil, math.MaxUint64-1)
	err := e.Accept(2, 1)
	assert.True(t, errs.IsType(err, errs.ValidationError))
	assert.Equal(t, proto.Amount(math.MaxUint64-1), e.Balance())

	b, err := e.Quote(1, 1)
	require.NoError(t, err)
	assert.Equal(t, proto.Amount(math.MaxUint64), b)
	assert.Equal(t, proto.Amount(math.MaxUint64-1), e.Balance())
}

func TestWithdraw(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	to := payee(t)
	tr := NewMockTransferer(ctrl)
	tr.EXPECT().Transfer(gomock.Any(), to, 2*price).Return(nil)

	e := New(tr, 2*price)
	var debited []proto.Amount
	amount, err := e.Withdraw(context.Background(), to, Hooks{
		Debited: func(b proto.Amount) error {
			debited = append(debited, b)
			return nil
		},
		Restored: func(proto.Amount) error {
			t.Fatal("unexpected restore")
			return nil
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2*price, amount)
	assert.Equal(t, proto.Amount(0), e.Balance())
	assert.Equal(t, []proto.Amount{0}, debited)

	_, err = e.Withdraw(context.Background(), to, Hooks{})
	assert.True(t, errs.IsType(err, errs.NothingToWithdraw))
	assert.ErrorIs(t, err, errs.ErrNothingToWithdraw)
}

func TestWithdrawZeroesBeforeTransfer(t *testing.T) {
	to := payee(t)
	var e *Escrow
	var seen proto.Amount = math.MaxUint64
	e = New(TransfererFunc(func(ctx context.Context, _ proto.Address, _ proto.Amount) error {
		seen = e.Balance()
		_, err := e.Withdraw(ctx, to, Hooks{})
		assert.ErrorIs(t, err, errs.ErrNothingToWithdraw)
		return nil
	}), 5*price)
	amount, err := e.Withdraw(context.Background(), to, Hooks{})
	require.NoError(t, err)
	assert.Equal(t, 5*price, amount)
	assert.Equal(t, proto.Amount(0), seen)
}

func TestWithdrawTransferFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	to := payee(t)
	cause := errors.New("payee frozen")
	tr := NewMockTransferer(ctrl)
	tr.EXPECT().Transfer(gomock.Any(), to, 3*price).Return(cause)

	e := New(tr, 3*price)
	var restored []proto.Amount
	_, err := e.Withdraw(context.Background(), to, Hooks{
		Restored: func(b proto.Amount) error {
			restored = append(restored, b)
			return nil
		},
	})
	assert.True(t, errs.IsType(err, errs.TransferError))
	assert.ErrorIs(t, err, errs.ErrTransferFailed)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 3*price, e.Balance())
	assert.Equal(t, []proto.Amount{3 * price}, restored)
}

func TestWithdrawKeepsValueAcceptedDuringTransfer(t *testing.T) {
	to := payee(t)
	var e *Escrow
	e = New(TransfererFunc(func(context.Context, proto.Address, proto.Amount) error {
		require.NoError(t, e.Accept(price, price))
		return errors.New("rejected")
	}), 2*price)
	_, err := e.Withdraw(context.Background(), to, Hooks{})
	assert.ErrorIs(t, err, errs.ErrTransferFailed)
	assert.Equal(t, 3*price, e.Balance())
}

func TestWithdrawDebitFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	tr := NewMockTransferer(ctrl)

	e := New(tr, price)
	_, err := e.Withdraw(context.Background(), payee(t), Hooks{
		Debited: func(proto.Amount) error { return errors.New("disk full") },
	})
	assert.True(t, errs.IsType(err, errs.StorageError))
	assert.Equal(t, price, e.Balance())
}

func TestWithdrawUnconfirmedTransfer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	to := payee(t)
	cause := errors.New("no reply")
	tr := NewMockTransferer(ctrl)
	tr.EXPECT().Transfer(gomock.Any(), to, 2*price).Return(Unconfirmed(cause))

	e := New(tr, 2*price)
	var debited, restored []proto.Amount
	_, err := e.Withdraw(context.Background(), to, Hooks{
		Debited: func(b proto.Amount) error {
			debited = append(debited, b)
			return nil
		},
		Restored: func(b proto.Amount) error {
			restored = append(restored, b)
			return nil
		},
	})
	assert.True(t, errs.IsType(err, errs.TransferError))
	assert.ErrorIs(t, err, errs.ErrTransferUnconfirmed)
	assert.ErrorIs(t, err, ErrUnconfirmed)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, proto.Amount(0), e.Balance())
	assert.Equal(t, []proto.Amount{0}, debited)
	assert.Empty(t, restored)
}
