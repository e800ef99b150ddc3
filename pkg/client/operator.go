package client

import (
	"context"
	"net/http"

	"github.com/ccoveille/go-safecast"

	"github.com/wavesplatform/gomint/pkg/api/types"
	"github.com/wavesplatform/gomint/pkg/ledger"
	"github.com/wavesplatform/gomint/pkg/proto"
)

// Operator calls the administrative routes. They require the API key and the operator as the caller.
type Operator struct {
	options Options
}

func NewOperator(options Options) *Operator {
	return &Operator{
		options: options,
	}
}

func (a *Operator) IssueBatch(
	ctx context.Context, recipient proto.Address, quantity uint64, template string,
) ([]proto.AssetID, *Response, error) {
	q, err := safecast.Convert[int64](quantity)
	if err != nil {
		return nil, nil, err
	}
	body := types.BatchRequest{Recipient: recipient, Quantity: q, Template: template}
	req, err := newOperatorRequest(a.options, http.MethodPost, "/assets/batch", body)
	if err != nil {
		return nil, nil, err
	}

	out := new(types.BatchResponse)
	response, err := doHTTP(ctx, a.options, req, out)
	if err != nil {
		return nil, response, err
	}

	return out.IDs, response, nil
}

func (a *Operator) SetPrice(ctx context.Context, price proto.Amount) (*ledger.Info, *Response, error) {
	return a.update(ctx, "/price", types.PriceRequest{Price: price})
}

func (a *Operator) SetPaused(ctx context.Context, paused bool) (*ledger.Info, *Response, error) {
	return a.update(ctx, "/paused", types.PausedRequest{Paused: paused})
}

func (a *Operator) SetMetadataBase(ctx context.Context, base string) (*ledger.Info, *Response, error) {
	return a.update(ctx, "/metadata-base", types.MetadataBaseRequest{Base: base})
}

func (a *Operator) update(ctx context.Context, path string, body any) (*ledger.Info, *Response, error) {
	req, err := newOperatorRequest(a.options, http.MethodPut, path, body)
	if err != nil {
		return nil, nil, err
	}

	out := new(ledger.Info)
	response, err := doHTTP(ctx, a.options, req, out)
	if err != nil {
		return nil, response, err
	}

	return out, response, nil
}

// Withdraw pays the collected balance out to the operator.
func (a *Operator) Withdraw(ctx context.Context) (proto.Amount, *Response, error) {
	req, err := newOperatorRequest(a.options, http.MethodPost, "/withdraw", nil)
	if err != nil {
		return 0, nil, err
	}

	out := new(types.WithdrawResponse)
	response, err := doHTTP(ctx, a.options, req, out)
	if err != nil {
		return 0, response, err
	}

	return out.Amount, response, nil
}
