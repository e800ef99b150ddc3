// Package payout delivers withdrawn value to accounts.
package payout

import (
	"context"
	"math/bits"
	"sync"

	"github.com/pkg/errors"

	"github.com/wavesplatform/gomint/pkg/proto"
)

var ErrAccountFrozen = errors.New("account is frozen")

// Book is an in-process account book. Transfers credit the recipient unless its account is frozen.
type Book struct {
	mu       sync.Mutex
	balances map[proto.Address]proto.Amount
	frozen   map[proto.Address]struct{}
}

func NewBook() *Book {
	return &Book{
		balances: make(map[proto.Address]proto.Amount),
		frozen:   make(map[proto.Address]struct{}),
	}
}

func (b *Book) Transfer(ctx context.Context, to proto.Address, amount proto.Amount) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.frozen[to]; ok {
		return errors.Wrapf(ErrAccountFrozen, "transfer to '%s'", to)
	}
	sum, carry := bits.Add64(uint64(b.balances[to]), uint64(amount), 0)
	if carry != 0 {
		return errors.Errorf("balance of '%s' overflows", to)
	}
	b.balances[to] = proto.Amount(sum)
	return nil
}

func (b *Book) Balance(account proto.Address) proto.Amount {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.balances[account]
}

func (b *Book) Freeze(account proto.Address) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.frozen[account] = struct{}{}
}

func (b *Book) Unfreeze(account proto.Address) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.frozen, account)
}
