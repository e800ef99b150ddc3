// Package storage persists the ledger in LevelDB. Every ledger operation is written as one
// atomic batch.
package storage

import (
	"github.com/coocood/freecache"
	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	lvlstorage "github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/wavesplatform/gomint/pkg/proto"
)

var defaultWriteOptions = &opt.WriteOptions{Sync: true}

// Asset records never change once committed, so the encoded ones are cached without expiration.
const recordsCacheSize = 4 * 1024 * 1024

// State is the persisted ledger state document.
type State struct {
	Name      string        `cbor:"1,keyasint"`
	Symbol    string        `cbor:"2,keyasint"`
	Base      string        `cbor:"3,keyasint"`
	Price     proto.Amount  `cbor:"4,keyasint"`
	SupplyCap uint64        `cbor:"5,keyasint"`
	Supply    uint64        `cbor:"6,keyasint"`
	Paused    bool          `cbor:"7,keyasint"`
	Collected proto.Amount  `cbor:"8,keyasint"`
	Operator  proto.Address `cbor:"9,keyasint"`
}

type assetDocument struct {
	Owner    proto.Address `cbor:"1,keyasint"`
	Metadata string        `cbor:"2,keyasint,omitempty"`
}

type Storage struct {
	db      *leveldb.DB
	em      cbor.EncMode
	records *freecache.Cache
}

// Open opens or creates the database in the directory.
func Open(path string) (*Storage, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open storage at '%s'", path)
	}
	return newStorage(db)
}

// OpenInMemory creates a database that lives until it is closed.
func OpenInMemory() (*Storage, error) {
	db, err := leveldb.Open(lvlstorage.NewMemStorage(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open in-memory storage")
	}
	return newStorage(db)
}

func newStorage(db *leveldb.DB) (*Storage, error) {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to create CBOR encoder")
	}
	return &Storage{db: db, em: em, records: freecache.NewCache(recordsCacheSize)}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

// State returns the stored state document, false if nothing was stored yet.
func (s *Storage) State() (State, bool, error) {
	var st State
	b, err := s.db.Get(stateKeyBytes, nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return st, false, nil
		}
		return st, false, errors.Wrap(err, "failed to load ledger state")
	}
	if err := cbor.Unmarshal(b, &st); err != nil {
		return st, false, errors.Wrap(err, "failed to decode ledger state")
	}
	return st, true, nil
}

func (s *Storage) Asset(id proto.AssetID) (proto.AssetRecord, bool, error) {
	key := assetKey{id: id}.bytes()
	b, err := s.records.Get(key)
	if err != nil {
		b, err = s.db.Get(key, nil)
		if err != nil {
			if errors.Is(err, leveldb.ErrNotFound) {
				return proto.AssetRecord{}, false, nil
			}
			return proto.AssetRecord{}, false, errors.Wrapf(err, "failed to load asset %d", id)
		}
		// A failed Set only costs a database read next time.
		_ = s.records.Set(key, b, 0)
	}
	var doc assetDocument
	if err := cbor.Unmarshal(b, &doc); err != nil {
		return proto.AssetRecord{}, false, errors.Wrapf(err, "failed to decode asset %d", id)
	}
	return proto.AssetRecord{ID: id, Owner: doc.Owner, Metadata: doc.Metadata}, true, nil
}

// CachedAssets returns the number of asset records held in the read cache.
func (s *Storage) CachedAssets() int64 {
	return s.records.EntryCount()
}

// AssetsOf lists ids owned by the account in ascending order.
func (s *Storage) AssetsOf(owner proto.Address) ([]proto.AssetID, error) {
	it := s.db.NewIterator(util.BytesPrefix(ownerKey{owner: owner}.prefix()), nil)
	defer it.Release()
	var ids []proto.AssetID
	for it.Next() {
		id, ok := idFromOwnerKey(it.Key())
		if !ok {
			return nil, errors.Errorf("malformed owner index key of length %d", len(it.Key()))
		}
		ids = append(ids, id)
	}
	if err := it.Error(); err != nil {
		return nil, errors.Wrapf(err, "failed to iterate assets of '%s'", owner)
	}
	return ids, nil
}

func (s *Storage) NewBatch() *Batch {
	return &Batch{batch: new(leveldb.Batch), em: s.em}
}

// Commit writes the batch atomically. A failed commit leaves the database unchanged.
func (s *Storage) Commit(b *Batch) error {
	if b.err != nil {
		return b.err
	}
	if err := s.db.Write(b.batch, defaultWriteOptions); err != nil {
		return errors.Wrap(err, "failed to write batch")
	}
	return nil
}

// Batch collects the writes of one ledger operation. The first encoding error sticks and
// fails the commit.
type Batch struct {
	batch *leveldb.Batch
	em    cbor.EncMode
	err   error
}

func (b *Batch) PutState(st State) {
	if b.err != nil {
		return
	}
	v, err := b.em.Marshal(st)
	if err != nil {
		b.err = errors.Wrap(err, "failed to encode ledger state")
		return
	}
	b.batch.Put(stateKeyBytes, v)
}

func (b *Batch) PutAsset(r proto.AssetRecord) {
	if b.err != nil {
		return
	}
	v, err := b.em.Marshal(assetDocument{Owner: r.Owner, Metadata: r.Metadata})
	if err != nil {
		b.err = errors.Wrapf(err, "failed to encode asset %d", r.ID)
		return
	}
	b.batch.Put(assetKey{id: r.ID}.bytes(), v)
	b.batch.Put(ownerKey{owner: r.Owner, id: r.ID}.bytes(), nil)
}

func (b *Batch) Len() int {
	return b.batch.Len()
}
