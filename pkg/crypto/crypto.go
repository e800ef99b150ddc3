package crypto

import (
	"github.com/mr-tron/base58/base58"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

const (
	DigestSize    = 32
	PublicKeySize = 32
)

type Digest [DigestSize]byte

func (d Digest) String() string {
	return base58.Encode(d[:])
}

type PublicKey [PublicKeySize]byte

func (k PublicKey) String() string {
	return base58.Encode(k[:])
}

func (k PublicKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *PublicKey) UnmarshalText(text []byte) error {
	pk, err := NewPublicKeyFromBase58(string(text))
	if err != nil {
		return err
	}
	*k = pk
	return nil
}

func NewPublicKeyFromBase58(s string) (PublicKey, error) {
	var pk PublicKey
	b, err := base58.Decode(s)
	if err != nil {
		return pk, errors.Wrap(err, "invalid Base58 string")
	}
	return NewPublicKeyFromBytes(b)
}

func NewPublicKeyFromBytes(b []byte) (PublicKey, error) {
	var pk PublicKey
	if l := len(b); l != PublicKeySize {
		return pk, errors.Errorf("incorrect public key length %d, expected %d", l, PublicKeySize)
	}
	copy(pk[:], b)
	return pk, nil
}

func Keccak256(data []byte) (digest Digest) {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	h.Sum(digest[:0])
	return
}

func FastHash(data []byte) (digest Digest, err error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return
	}
	h.Write(data)
	h.Sum(digest[:0])
	return
}

// SecureHash is Keccak256 over Blake2b256, the hash behind account addresses.
func SecureHash(data []byte) (Digest, error) {
	fh, err := FastHash(data)
	if err != nil {
		return Digest{}, err
	}
	return Keccak256(fh[:]), nil
}
