package api

import (
	"context"

	"github.com/ccoveille/go-safecast"
	"github.com/pkg/errors"

	apiErrors "github.com/wavesplatform/gomint/pkg/api/errors"
	"github.com/wavesplatform/gomint/pkg/api/types"
	"github.com/wavesplatform/gomint/pkg/crypto"
	"github.com/wavesplatform/gomint/pkg/ledger"
	"github.com/wavesplatform/gomint/pkg/proto"
)

// Ledger is the part of the ledger served by the API.
type Ledger interface {
	Info() ledger.Info
	QuerySupply() uint64
	MaxSupply() uint64
	Asset(id proto.AssetID) (proto.AssetRecord, error)
	TokenURI(id proto.AssetID) (string, error)
	AssetsOf(owner proto.Address) ([]proto.AssetID, error)
	IssueSingle(
		ctx context.Context, caller proto.Address, pointer string, attached proto.Amount,
	) (proto.AssetID, error)
	IssueBatch(
		ctx context.Context, caller, recipient proto.Address, quantity uint64, template string,
	) ([]proto.AssetID, error)
	SetUnitPrice(ctx context.Context, caller proto.Address, price proto.Amount) error
	SetPaused(ctx context.Context, caller proto.Address, paused bool) error
	SetMetadataBase(ctx context.Context, caller proto.Address, base string) error
	Withdraw(ctx context.Context, caller proto.Address) (proto.Amount, error)
}

type App struct {
	hashedApiKey  crypto.Digest
	apiKeyEnabled bool
	ledger        Ledger
}

// NewApp creates the application behind the handlers. An empty API key disables the
// administrative routes.
func NewApp(apiKey string, l Ledger) (*App, error) {
	digest, err := crypto.SecureHash([]byte(apiKey))
	if err != nil {
		return nil, err
	}
	return &App{
		hashedApiKey:  digest,
		apiKeyEnabled: len(apiKey) > 0,
		ledger:        l,
	}, nil
}

func (a *App) checkAuth(key string) error {
	if !a.apiKeyEnabled {
		return apiErrors.ErrAPIKeyDisabled
	}
	d, err := crypto.SecureHash([]byte(key))
	if err != nil {
		return errors.Wrap(err, "failed to calculate secure hash for API key")
	}
	if d != a.hashedApiKey {
		return apiErrors.ErrAPIKeyNotValid
	}
	return nil
}

func (a *App) Collection() ledger.Info {
	return a.ledger.Info()
}

func (a *App) Supply() types.Supply {
	return types.Supply{Supply: a.ledger.QuerySupply(), SupplyCap: a.ledger.MaxSupply()}
}

func (a *App) Asset(id proto.AssetID) (types.Asset, error) {
	rec, err := a.ledger.Asset(id)
	if err != nil {
		return types.Asset{}, err
	}
	uri, err := a.ledger.TokenURI(id)
	if err != nil {
		return types.Asset{}, err
	}
	return types.Asset{ID: rec.ID, Owner: rec.Owner, Metadata: rec.Metadata, URI: uri}, nil
}

func (a *App) Account(owner proto.Address) (types.Account, error) {
	ids, err := a.ledger.AssetsOf(owner)
	if err != nil {
		return types.Account{}, err
	}
	if ids == nil {
		ids = []proto.AssetID{}
	}
	return types.Account{Address: owner, Balance: uint64(len(ids)), Assets: ids}, nil
}

func (a *App) Issue(ctx context.Context, caller proto.Address, req types.IssueRequest) (types.IssueResponse, error) {
	id, err := a.ledger.IssueSingle(ctx, caller, req.Metadata, req.Payment)
	if err != nil {
		return types.IssueResponse{}, err
	}
	return types.IssueResponse{ID: id}, nil
}

func (a *App) IssueBatch(
	ctx context.Context, caller proto.Address, req types.BatchRequest,
) (types.BatchResponse, error) {
	quantity, err := safecast.Convert[uint64](req.Quantity)
	if err != nil {
		return types.BatchResponse{}, apiErrors.NewInvalidQuantityError(err)
	}
	ids, err := a.ledger.IssueBatch(ctx, caller, req.Recipient, quantity, req.Template)
	if err != nil {
		return types.BatchResponse{}, err
	}
	return types.BatchResponse{IDs: ids}, nil
}

func (a *App) SetPrice(ctx context.Context, caller proto.Address, req types.PriceRequest) error {
	return a.ledger.SetUnitPrice(ctx, caller, req.Price)
}

func (a *App) SetPaused(ctx context.Context, caller proto.Address, req types.PausedRequest) error {
	return a.ledger.SetPaused(ctx, caller, req.Paused)
}

func (a *App) SetMetadataBase(ctx context.Context, caller proto.Address, req types.MetadataBaseRequest) error {
	return a.ledger.SetMetadataBase(ctx, caller, req.Base)
}

func (a *App) Withdraw(ctx context.Context, caller proto.Address) (types.WithdrawResponse, error) {
	amount, err := a.ledger.Withdraw(ctx, caller)
	if err != nil {
		return types.WithdrawResponse{}, err
	}
	return types.WithdrawResponse{Amount: amount}, nil
}
