// Package events defines the ledger notifications and delivers them in commit order.
package events

import (
	"encoding/json"

	"github.com/wavesplatform/gomint/pkg/proto"
)

type Kind string

const (
	KindAssetIssued         Kind = "asset_issued"
	KindPriceChanged        Kind = "price_changed"
	KindPausedChanged       Kind = "paused_changed"
	KindMetadataBaseChanged Kind = "metadata_base_changed"
	KindWithdrawn           Kind = "withdrawn"
)

type Event interface {
	Kind() Kind
}

type AssetIssued struct {
	ID       proto.AssetID `json:"id"`
	Owner    proto.Address `json:"owner"`
	Metadata string        `json:"metadata,omitempty"`
}

func (AssetIssued) Kind() Kind { return KindAssetIssued }

type PriceChanged struct {
	Price proto.Amount `json:"price"`
}

func (PriceChanged) Kind() Kind { return KindPriceChanged }

type PausedChanged struct {
	Paused bool `json:"paused"`
}

func (PausedChanged) Kind() Kind { return KindPausedChanged }

type MetadataBaseChanged struct {
	Base string `json:"base"`
}

func (MetadataBaseChanged) Kind() Kind { return KindMetadataBaseChanged }

type Withdrawn struct {
	To     proto.Address `json:"to"`
	Amount proto.Amount  `json:"amount"`
}

func (Withdrawn) Kind() Kind { return KindWithdrawn }

// Envelope is an event stamped with its position in the feed.
type Envelope struct {
	Seq   uint64
	Event Event
}

func (e Envelope) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Seq   uint64 `json:"seq"`
		Kind  Kind   `json:"kind"`
		Event Event  `json:"event"`
	}{e.Seq, e.Event.Kind(), e.Event})
}
