package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/wavesplatform/gomint/pkg/api/types"
	"github.com/wavesplatform/gomint/pkg/proto"
)

type Assets struct {
	options Options
}

func NewAssets(options Options) *Assets {
	return &Assets{
		options: options,
	}
}

// Get returns the asset record and its resolved URI.
func (a *Assets) Get(ctx context.Context, id proto.AssetID) (*types.Asset, *Response, error) {
	req, err := newRequest(a.options, http.MethodGet, fmt.Sprintf("/assets/%s", id.String()), nil)
	if err != nil {
		return nil, nil, err
	}

	out := new(types.Asset)
	response, err := doHTTP(ctx, a.options, req, out)
	if err != nil {
		return nil, response, err
	}

	return out, response, nil
}

// OfAccount returns the assets held by the account.
func (a *Assets) OfAccount(ctx context.Context, owner proto.Address) (*types.Account, *Response, error) {
	req, err := newRequest(a.options, http.MethodGet, fmt.Sprintf("/accounts/%s/assets", owner.String()), nil)
	if err != nil {
		return nil, nil, err
	}

	out := new(types.Account)
	response, err := doHTTP(ctx, a.options, req, out)
	if err != nil {
		return nil, response, err
	}

	return out, response, nil
}

// Issue pays for one asset and issues it to the caller.
func (a *Assets) Issue(
	ctx context.Context, metadata string, payment proto.Amount,
) (proto.AssetID, *Response, error) {
	body := types.IssueRequest{Metadata: metadata, Payment: payment}
	req, err := newCallerRequest(a.options, http.MethodPost, "/assets", body)
	if err != nil {
		return 0, nil, err
	}

	out := new(types.IssueResponse)
	response, err := doHTTP(ctx, a.options, req, out)
	if err != nil {
		return 0, response, err
	}

	return out.ID, response, nil
}
