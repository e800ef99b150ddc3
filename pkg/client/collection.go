package client

import (
	"context"
	"net/http"

	"github.com/wavesplatform/gomint/pkg/api/types"
	"github.com/wavesplatform/gomint/pkg/ledger"
)

type Collection struct {
	options Options
}

func NewCollection(options Options) *Collection {
	return &Collection{
		options: options,
	}
}

// Info returns the collection parameters and counters.
func (a *Collection) Info(ctx context.Context) (*ledger.Info, *Response, error) {
	req, err := newRequest(a.options, http.MethodGet, "/collection", nil)
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

// Supply returns the number of issued assets and the supply cap.
func (a *Collection) Supply(ctx context.Context) (*types.Supply, *Response, error) {
	req, err := newRequest(a.options, http.MethodGet, "/supply", nil)
	if err != nil {
		return nil, nil, err
	}

	out := new(types.Supply)
	response, err := doHTTP(ctx, a.options, req, out)
	if err != nil {
		return nil, response, err
	}

	return out, response, nil
}
