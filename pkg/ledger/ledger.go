// Package ledger implements the asset issuance ledger: a capped sequence of assets issued for
// payment, administered by a single operator.
//
// All mutating operations of a Ledger are serialized by one mutex, held for the whole
// operation including the payout of a withdrawal. Queries read the last committed snapshot and
// never wait for a writer.
package ledger

import (
	"context"
	"strconv"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/wavesplatform/gomint/pkg/access"
	"github.com/wavesplatform/gomint/pkg/errs"
	"github.com/wavesplatform/gomint/pkg/escrow"
	"github.com/wavesplatform/gomint/pkg/events"
	"github.com/wavesplatform/gomint/pkg/metadata"
	"github.com/wavesplatform/gomint/pkg/proto"
	"github.com/wavesplatform/gomint/pkg/storage"
)

// Info is a committed snapshot of the ledger state.
type Info struct {
	Name      string        `json:"name"`
	Symbol    string        `json:"symbol"`
	Base      string        `json:"base"`
	Price     proto.Amount  `json:"price"`
	SupplyCap uint64        `json:"supplyCap"`
	Supply    uint64        `json:"supply"`
	Paused    bool          `json:"paused"`
	Collected proto.Amount  `json:"collected"`
	Operator  proto.Address `json:"operator"`
}

type Ledger struct {
	mu sync.Mutex // guards everything below except info

	logger        *zap.Logger
	stor          *storage.Storage
	guard         *access.Guard
	escrow        *escrow.Escrow
	transferer    escrow.Transferer
	publisher     events.Publisher
	resolver      metadata.Resolver
	batchPointers BatchPointerMode
	maxBatchSize  uint64

	state storage.State
	// withdrawing holds back snapshots until the running withdrawal completes.
	withdrawing bool

	info atomic.Pointer[Info]
}

// New creates the ledger or reopens the one kept in the storage. A reopened ledger must have the
// same name, symbol, supply cap and operator; its stored price, pause flag, base pointer and
// collected balance take precedence over the parameters.
func New(params Parameters, opts Options) (*Ledger, error) {
	if opts.Storage == nil {
		return nil, errors.New("ledger storage is not set")
	}
	if opts.Transferer == nil {
		return nil, errors.New("ledger transferer is not set")
	}
	opts.setDefaults()
	if params.Name == "" {
		return nil, errs.NewValidationError("collection name is empty")
	}
	if params.SupplyCap == 0 {
		return nil, errs.NewValidationError("supply cap must be positive")
	}
	guard, err := access.NewGuard(params.Operator)
	if err != nil {
		return nil, err
	}
	l := &Ledger{
		logger:        opts.Logger,
		stor:          opts.Storage,
		guard:         guard,
		transferer:    opts.Transferer,
		publisher:     opts.Publisher,
		resolver:      opts.Resolver,
		batchPointers: opts.BatchPointers,
		maxBatchSize:  opts.MaxBatchSize,
	}
	st, ok, err := l.stor.State()
	if err != nil {
		return nil, errs.NewStorageError(err, "failed to load ledger state")
	}
	if ok {
		if err := checkStored(st, params); err != nil {
			return nil, err
		}
		l.logger.Info("Ledger reopened",
			zap.String("name", st.Name), zap.Uint64("supply", st.Supply), zap.Stringer("collected", st.Collected))
	} else {
		st = storage.State{
			Name:      params.Name,
			Symbol:    params.Symbol,
			Base:      params.Base,
			Price:     params.Price,
			SupplyCap: params.SupplyCap,
			Operator:  params.Operator,
		}
		b := l.stor.NewBatch()
		b.PutState(st)
		if err := l.stor.Commit(b); err != nil {
			return nil, errs.NewStorageError(err, "failed to store initial ledger state")
		}
		l.logger.Info("Ledger created",
			zap.String("name", st.Name), zap.Uint64("cap", st.SupplyCap), zap.Stringer("operator", st.Operator))
	}
	l.state = st
	l.escrow = escrow.New(escrow.TransfererFunc(l.transfer), st.Collected)
	l.publish()
	return l, nil
}

func checkStored(st storage.State, params Parameters) error {
	switch {
	case st.Name != params.Name:
		return errs.NewValidationError("stored collection name '%s' differs from '%s'", st.Name, params.Name)
	case st.Symbol != params.Symbol:
		return errs.NewValidationError("stored collection symbol '%s' differs from '%s'", st.Symbol, params.Symbol)
	case st.SupplyCap != params.SupplyCap:
		return errs.NewValidationError("stored supply cap %d differs from %d", st.SupplyCap, params.SupplyCap)
	case st.Operator != params.Operator:
		return errs.NewValidationError("stored operator '%s' differs from '%s'", st.Operator, params.Operator)
	default:
		return nil
	}
}

// IssueSingle issues the next asset to the caller for the attached payment.
// The whole payment is collected, no change is returned.
func (l *Ledger) IssueSingle(
	ctx context.Context, caller proto.Address, pointer string, attached proto.Amount,
) (proto.AssetID, error) {
	unlock := l.enter(ctx)
	defer unlock()

	if caller.IsZero() {
		return 0, errs.NewValidationError("caller address is not set")
	}
	if l.state.Paused {
		return 0, errs.NewPausedError()
	}
	if l.state.Supply >= l.state.SupplyCap {
		return 0, errs.NewSupplyExhaustedError(l.state.SupplyCap)
	}
	collected, err := l.escrow.Quote(attached, l.state.Price)
	if err != nil {
		return 0, err
	}
	id := proto.AssetID(l.state.Supply + 1)
	rec := proto.AssetRecord{ID: id, Owner: caller, Metadata: pointer}
	st := l.state
	st.Supply++
	st.Collected = collected

	b := l.stor.NewBatch()
	b.PutAsset(rec)
	b.PutState(st)
	if err := l.stor.Commit(b); err != nil {
		return 0, errs.NewStorageError(err, "failed to commit issued asset")
	}
	if err := l.escrow.Accept(attached, l.state.Price); err != nil {
		// Quote has already approved the same payment under the same lock.
		panic(errors.Wrap(err, "escrow rejected approved payment"))
	}
	l.state = st
	l.publish()
	l.publisher.Publish(events.AssetIssued{ID: id, Owner: caller, Metadata: pointer})
	l.logger.Debug("Asset issued",
		zap.Stringer("id", id), zap.Stringer("owner", caller), zap.Stringer("payment", attached))
	return id, nil
}

// IssueBatch issues quantity contiguous assets to the recipient free of charge.
// Either all assets are issued or none.
func (l *Ledger) IssueBatch(
	ctx context.Context, caller, recipient proto.Address, quantity uint64, template string,
) ([]proto.AssetID, error) {
	unlock := l.enter(ctx)
	defer unlock()

	if err := l.guard.RequireOperator(caller); err != nil {
		return nil, err
	}
	if quantity == 0 {
		return nil, errs.NewValidationError("batch quantity must be positive")
	}
	if quantity > l.maxBatchSize {
		return nil, errs.NewValidationError("batch quantity %d exceeds limit %d", quantity, l.maxBatchSize)
	}
	if recipient.IsZero() {
		return nil, errs.NewValidationError("recipient address is not set")
	}
	if l.state.Paused {
		return nil, errs.NewPausedError()
	}
	if remaining := l.state.SupplyCap - l.state.Supply; quantity > remaining {
		return nil, errs.NewSupplyExceededError(quantity, remaining)
	}
	ids := make([]proto.AssetID, 0, quantity)
	issued := make([]events.Event, 0, quantity)
	st := l.state
	b := l.stor.NewBatch()
	for i := uint64(1); i <= quantity; i++ {
		id := proto.AssetID(st.Supply + i)
		rec := proto.AssetRecord{ID: id, Owner: recipient, Metadata: l.batchPointer(template, id)}
		b.PutAsset(rec)
		ids = append(ids, id)
		issued = append(issued, events.AssetIssued{ID: id, Owner: recipient, Metadata: rec.Metadata})
	}
	st.Supply += quantity
	b.PutState(st)
	if err := l.stor.Commit(b); err != nil {
		return nil, errs.NewStorageError(err, "failed to commit issued batch")
	}
	l.state = st
	l.publish()
	l.publisher.Publish(issued...)
	l.logger.Debug("Batch issued",
		zap.Stringer("recipient", recipient), zap.Stringer("first", ids[0]), zap.Uint64("quantity", quantity))
	return ids, nil
}

func (l *Ledger) batchPointer(template string, id proto.AssetID) string {
	if template == "" && l.batchPointers == SkipEmpty {
		return ""
	}
	return template + strconv.FormatUint(uint64(id), 10)
}

func (l *Ledger) SetUnitPrice(ctx context.Context, caller proto.Address, price proto.Amount) error {
	unlock := l.enter(ctx)
	defer unlock()

	if err := l.guard.RequireOperator(caller); err != nil {
		return err
	}
	st := l.state
	st.Price = price
	if err := l.commitState(st); err != nil {
		return err
	}
	l.publisher.Publish(events.PriceChanged{Price: price})
	l.logger.Info("Unit price changed", zap.Stringer("price", price))
	return nil
}

func (l *Ledger) SetPaused(ctx context.Context, caller proto.Address, paused bool) error {
	unlock := l.enter(ctx)
	defer unlock()

	if err := l.guard.RequireOperator(caller); err != nil {
		return err
	}
	st := l.state
	st.Paused = paused
	if err := l.commitState(st); err != nil {
		return err
	}
	l.publisher.Publish(events.PausedChanged{Paused: paused})
	l.logger.Info("Issuance pause changed", zap.Bool("paused", paused))
	return nil
}

// SetMetadataBase replaces the base pointer used to resolve asset metadata.
func (l *Ledger) SetMetadataBase(ctx context.Context, caller proto.Address, base string) error {
	unlock := l.enter(ctx)
	defer unlock()

	if err := l.guard.RequireOperator(caller); err != nil {
		return err
	}
	st := l.state
	st.Base = base
	if err := l.commitState(st); err != nil {
		return err
	}
	l.publisher.Publish(events.MetadataBaseChanged{Base: base})
	l.logger.Info("Metadata base changed", zap.String("base", base))
	return nil
}

// Withdraw pays the whole collected balance out to the operator.
// The balance is zeroed and committed before the payout. Calls made by the transferer with the
// context it was given run inside this operation; other callers wait until it completes.
// Queries see the state of the finished withdrawal only.
func (l *Ledger) Withdraw(ctx context.Context, caller proto.Address) (proto.Amount, error) {
	unlock := l.enter(ctx)
	defer unlock()

	if err := l.guard.RequireOperator(caller); err != nil {
		return 0, err
	}
	outer := l.withdrawing
	l.withdrawing = true
	defer func() {
		l.withdrawing = outer
		l.publish()
	}()

	pending := l.escrow.Balance()
	amount, err := l.escrow.Withdraw(ctx, caller, escrow.Hooks{
		Debited:  l.commitCollected,
		Restored: l.restoreCollected,
	})
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrTransferUnconfirmed):
			l.logger.Error("Withdrawal outcome is unknown, the amount stays debited",
				zap.Stringer("to", caller), zap.Stringer("amount", pending), zap.Error(err))
		case errs.IsType(err, errs.TransferError):
			l.logger.Warn("Withdrawal transfer failed", zap.Stringer("to", caller), zap.Error(err))
		}
		return 0, err
	}
	l.publisher.Publish(events.Withdrawn{To: caller, Amount: amount})
	l.logger.Info("Collected value withdrawn", zap.Stringer("to", caller), zap.Stringer("amount", amount))
	return amount, nil
}

// transfer hands the payout to the transferer with a context that lets it call back into the
// ledger.
func (l *Ledger) transfer(ctx context.Context, to proto.Address, amount proto.Amount) error {
	f := &frame{owner: l, active: true}
	defer f.deactivate()
	return l.transferer.Transfer(withFrame(ctx, f), to, amount)
}

// commitCollected persists the escrow balance; the escrow reports its errors as storage errors.
func (l *Ledger) commitCollected(balance proto.Amount) error {
	st := l.state
	st.Collected = balance
	return l.writeState(st)
}

// restoreCollected keeps the refunded balance in the ledger state even if it cannot be persisted;
// the next commit writes it.
func (l *Ledger) restoreCollected(balance proto.Amount) error {
	l.state.Collected = balance
	if err := l.writeState(l.state); err != nil {
		l.logger.Error("Refunded balance is not persisted",
			zap.Stringer("collected", balance), zap.Error(err))
		return err
	}
	return nil
}

func (l *Ledger) commitState(st storage.State) error {
	if err := l.writeState(st); err != nil {
		return errs.NewStorageError(err, "failed to commit ledger state")
	}
	return nil
}

func (l *Ledger) writeState(st storage.State) error {
	b := l.stor.NewBatch()
	b.PutState(st)
	if err := l.stor.Commit(b); err != nil {
		return err
	}
	l.state = st
	l.publish()
	return nil
}

func (l *Ledger) publish() {
	if l.withdrawing {
		return
	}
	st := l.state
	l.info.Store(&Info{
		Name:      st.Name,
		Symbol:    st.Symbol,
		Base:      st.Base,
		Price:     st.Price,
		SupplyCap: st.SupplyCap,
		Supply:    st.Supply,
		Paused:    st.Paused,
		Collected: st.Collected,
		Operator:  st.Operator,
	})
}
