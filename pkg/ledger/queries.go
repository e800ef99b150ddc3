package ledger

import (
	"github.com/wavesplatform/gomint/pkg/errs"
	"github.com/wavesplatform/gomint/pkg/proto"
)

func (l *Ledger) Info() Info {
	return *l.info.Load()
}

// QuerySupply returns the number of issued assets, which is also the last issued id.
func (l *Ledger) QuerySupply() uint64 {
	return l.info.Load().Supply
}

func (l *Ledger) MaxSupply() uint64 {
	return l.info.Load().SupplyCap
}

func (l *Ledger) UnitPrice() proto.Amount {
	return l.info.Load().Price
}

func (l *Ledger) Paused() bool {
	return l.info.Load().Paused
}

func (l *Ledger) Collected() proto.Amount {
	return l.info.Load().Collected
}

func (l *Ledger) Operator() proto.Address {
	return l.guard.Operator()
}

// Asset returns the record of an issued asset.
func (l *Ledger) Asset(id proto.AssetID) (proto.AssetRecord, error) {
	supply := l.QuerySupply()
	if id == 0 || uint64(id) > supply {
		return proto.AssetRecord{}, errs.NewNotFoundError("asset %d is not issued", id)
	}
	rec, ok, err := l.stor.Asset(id)
	if err != nil {
		return proto.AssetRecord{}, errs.NewStorageError(err, "failed to load asset")
	}
	if !ok {
		return proto.AssetRecord{}, errs.NewStorageError(nil, "issued asset is missing in storage")
	}
	return rec, nil
}

func (l *Ledger) OwnerOf(id proto.AssetID) (proto.Address, error) {
	rec, err := l.Asset(id)
	if err != nil {
		return proto.Address{}, err
	}
	return rec.Owner, nil
}

// AssetsOf lists the ids of assets owned by the account in ascending order.
func (l *Ledger) AssetsOf(owner proto.Address) ([]proto.AssetID, error) {
	if owner.IsZero() {
		return nil, errs.NewValidationError("owner address is not set")
	}
	supply := l.QuerySupply()
	ids, err := l.stor.AssetsOf(owner)
	if err != nil {
		return nil, errs.NewStorageError(err, "failed to list assets")
	}
	// Records committed after the snapshot was taken are not visible yet.
	n := len(ids)
	for n > 0 && uint64(ids[n-1]) > supply {
		n--
	}
	return ids[:n], nil
}

func (l *Ledger) BalanceOf(owner proto.Address) (uint64, error) {
	ids, err := l.AssetsOf(owner)
	if err != nil {
		return 0, err
	}
	return uint64(len(ids)), nil
}

// TokenURI resolves the metadata locator of the asset against the current base pointer.
func (l *Ledger) TokenURI(id proto.AssetID) (string, error) {
	base := l.info.Load().Base
	rec, err := l.Asset(id)
	if err != nil {
		return "", err
	}
	return l.resolver.Resolve(base, rec.ID, rec.Metadata), nil
}
