package storage

import (
	"encoding/binary"

	"github.com/wavesplatform/gomint/pkg/proto"
)

const (
	stateKeyPrefix byte = iota + 1
	assetKeyPrefix
	ownerKeyPrefix
)

var stateKeyBytes = []byte{stateKeyPrefix}

type assetKey struct {
	id proto.AssetID
}

func (k assetKey) bytes() []byte {
	buf := make([]byte, 1+8)
	buf[0] = assetKeyPrefix
	binary.BigEndian.PutUint64(buf[1:], uint64(k.id))
	return buf
}

// ownerKey indexes assets by owner; ids sort ascending under one owner prefix.
type ownerKey struct {
	owner proto.Address
	id    proto.AssetID
}

func (k ownerKey) prefix() []byte {
	buf := make([]byte, 1+proto.AddressSize)
	buf[0] = ownerKeyPrefix
	copy(buf[1:], k.owner[:])
	return buf
}

func (k ownerKey) bytes() []byte {
	buf := make([]byte, 1+proto.AddressSize+8)
	copy(buf, k.prefix())
	binary.BigEndian.PutUint64(buf[1+proto.AddressSize:], uint64(k.id))
	return buf
}

func idFromOwnerKey(key []byte) (proto.AssetID, bool) {
	if len(key) != 1+proto.AddressSize+8 {
		return 0, false
	}
	return proto.AssetID(binary.BigEndian.Uint64(key[1+proto.AddressSize:])), true
}
