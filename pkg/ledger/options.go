package ledger

import (
	"go.uber.org/zap"

	"github.com/pkg/errors"

	"github.com/wavesplatform/gomint/pkg/escrow"
	"github.com/wavesplatform/gomint/pkg/events"
	"github.com/wavesplatform/gomint/pkg/metadata"
	"github.com/wavesplatform/gomint/pkg/proto"
	"github.com/wavesplatform/gomint/pkg/storage"
)

const DefaultMaxBatchSize = 10_000

// BatchPointerMode selects the metadata pointer of batch-issued assets for an empty template.
type BatchPointerMode byte

const (
	// AlwaysSuffix stores template + decimal id even for an empty template.
	AlwaysSuffix BatchPointerMode = iota
	// SkipEmpty stores no pointer for an empty template, the same way IssueSingle does.
	SkipEmpty
)

func NewBatchPointerModeFromString(s string) (BatchPointerMode, error) {
	switch s {
	case "", "always-suffix":
		return AlwaysSuffix, nil
	case "skip-empty":
		return SkipEmpty, nil
	default:
		return 0, errors.Errorf("unknown batch pointer mode '%s'", s)
	}
}

func (m BatchPointerMode) String() string {
	switch m {
	case AlwaysSuffix:
		return "always-suffix"
	case SkipEmpty:
		return "skip-empty"
	default:
		return "unknown"
	}
}

// Parameters are fixed when the ledger is created. Price and Base are only initial values.
type Parameters struct {
	Name      string
	Symbol    string
	Base      string
	Price     proto.Amount
	SupplyCap uint64
	Operator  proto.Address
}

type Options struct {
	// Storage is required.
	Storage *storage.Storage
	// Transferer is required. It pays out withdrawals.
	Transferer escrow.Transferer

	Logger        *zap.Logger
	Publisher     events.Publisher
	Resolver      metadata.Resolver
	BatchPointers BatchPointerMode
	// MaxBatchSize limits the quantity of one IssueBatch call, DefaultMaxBatchSize if zero.
	MaxBatchSize uint64
}

type nopPublisher struct{}

func (nopPublisher) Publish(...events.Event) {}

func (o *Options) setDefaults() {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Publisher == nil {
		o.Publisher = nopPublisher{}
	}
	if o.Resolver == nil {
		o.Resolver = metadata.URIResolver{}
	}
	if o.MaxBatchSize == 0 {
		o.MaxBatchSize = DefaultMaxBatchSize
	}
}
