// Package escrow accumulates the value attached to issuance calls and releases it on withdrawal.
//
// Escrow is not safe for concurrent use. Its owner serializes access; the ledger does so with
// its single critical section.
package escrow

import (
	"context"
	"fmt"
	"math/bits"

	"github.com/pkg/errors"

	"github.com/wavesplatform/gomint/pkg/errs"
	"github.com/wavesplatform/gomint/pkg/proto"
)

//go:generate mockgen -source escrow.go -destination mock_transferer.go -package escrow Transferer

// ErrUnconfirmed marks a transfer error after which the value may have left the escrow.
var ErrUnconfirmed = errors.New("transfer outcome is unknown")

// Unconfirmed marks err as a failure that does not prove the value stayed in the escrow.
func Unconfirmed(err error) error {
	return fmt.Errorf("%w: %w", ErrUnconfirmed, err)
}

// Transferer moves native value out of the escrow to an account.
// A returned error means no value left the escrow, unless it matches ErrUnconfirmed.
type Transferer interface {
	Transfer(ctx context.Context, to proto.Address, amount proto.Amount) error
}

type TransfererFunc func(ctx context.Context, to proto.Address, amount proto.Amount) error

func (f TransfererFunc) Transfer(ctx context.Context, to proto.Address, amount proto.Amount) error {
	return f(ctx, to, amount)
}

// Hooks let the owner persist balance changes made by Withdraw.
// Debited runs after the balance was zeroed and before the transfer. If it fails the withdrawal
// is abandoned and the balance restored. Restored runs after a failed transfer credited the
// amount back.
type Hooks struct {
	Debited  func(balance proto.Amount) error
	Restored func(balance proto.Amount) error
}

type Escrow struct {
	balance    proto.Amount
	transferer Transferer
}

func New(transferer Transferer, balance proto.Amount) *Escrow {
	return &Escrow{balance: balance, transferer: transferer}
}

func (e *Escrow) Balance() proto.Amount {
	return e.balance
}

// Quote returns the balance Accept would produce without changing anything.
func (e *Escrow) Quote(attached, required proto.Amount) (proto.Amount, error) {
	if attached < required {
		return 0, errs.NewInsufficientPaymentError(attached, required)
	}
	sum, carry := bits.Add64(uint64(e.balance), uint64(attached), 0)
	if carry != 0 {
		return 0, errs.NewValidationError("payment of %s overflows collected balance %s", attached, e.balance)
	}
	return proto.Amount(sum), nil
}

// Accept takes the whole attached value into the balance. No change is returned.
func (e *Escrow) Accept(attached, required proto.Amount) error {
	b, err := e.Quote(attached, required)
	if err != nil {
		return err
	}
	e.balance = b
	return nil
}

// Withdraw sends the whole balance to the account.
// The balance is zeroed before the transfer so that a reentrant or racing withdrawal never
// observes the old balance. On a failed transfer the amount is credited back. An unconfirmed
// transfer leaves the amount debited.
func (e *Escrow) Withdraw(ctx context.Context, to proto.Address, hooks Hooks) (proto.Amount, error) {
	amount := e.balance
	if amount == 0 {
		return 0, errs.NewNothingToWithdrawError()
	}
	e.balance = 0
	if hooks.Debited != nil {
		if err := hooks.Debited(e.balance); err != nil {
			e.balance = amount
			return 0, errs.NewStorageError(err, "failed to debit collected balance")
		}
	}
	if err := e.transferer.Transfer(ctx, to, amount); err != nil {
		if errors.Is(err, ErrUnconfirmed) {
			return 0, errs.NewTransferUnconfirmedError(err, amount)
		}
		// Value accepted by reentrant calls during the transfer stays on top of the refund.
		e.balance += amount
		if hooks.Restored != nil {
			if rErr := hooks.Restored(e.balance); rErr != nil {
				return 0, errs.NewStorageError(rErr, "failed to restore collected balance after failed transfer")
			}
		}
		return 0, errs.NewTransferFailedError(err)
	}
	return amount, nil
}
