// Package types holds the request and response bodies of the HTTP API.
package types

import (
	"github.com/wavesplatform/gomint/pkg/proto"
)

type Supply struct {
	Supply    uint64 `json:"supply"`
	SupplyCap uint64 `json:"supplyCap"`
}

type Asset struct {
	ID       proto.AssetID `json:"id"`
	Owner    proto.Address `json:"owner"`
	Metadata string        `json:"metadata,omitempty"`
	URI      string        `json:"uri"`
}

type Account struct {
	Address proto.Address   `json:"address"`
	Balance uint64          `json:"balance"`
	Assets  []proto.AssetID `json:"assets"`
}

type IssueRequest struct {
	Metadata string       `json:"metadata"`
	Payment  proto.Amount `json:"payment"`
}

type IssueResponse struct {
	ID proto.AssetID `json:"id"`
}

type BatchRequest struct {
	Recipient proto.Address `json:"recipient"`
	// Quantity is signed so that negative values are reported instead of wrapping around.
	Quantity int64  `json:"quantity"`
	Template string `json:"template"`
}

type BatchResponse struct {
	IDs []proto.AssetID `json:"ids"`
}

type PriceRequest struct {
	Price proto.Amount `json:"price"`
}

type PausedRequest struct {
	Paused bool `json:"paused"`
}

type MetadataBaseRequest struct {
	Base string `json:"base"`
}

type WithdrawResponse struct {
	Amount proto.Amount `json:"amount"`
}
