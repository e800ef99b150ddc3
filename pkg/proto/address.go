package proto

import (
	"bytes"
	"fmt"

	"github.com/mr-tron/base58/base58"
	"github.com/pkg/errors"

	"github.com/wavesplatform/gomint/pkg/crypto"
)

type Scheme = byte

const (
	headerSize   = 2
	bodySize     = 20
	checksumSize = 4
	AddressSize  = headerSize + bodySize + checksumSize

	addressVersion byte = 0x01

	MainNetScheme Scheme = 'W'
	TestNetScheme Scheme = 'T'
	DevNetScheme  Scheme = 'D'
)

// Address identifies an account: version, scheme, 20 bytes of the public key hash and a checksum.
type Address [AddressSize]byte

func NewAddressFromPublicKey(scheme Scheme, publicKey crypto.PublicKey) (Address, error) {
	var a Address
	a[0] = addressVersion
	a[1] = scheme
	h, err := crypto.SecureHash(publicKey[:])
	if err != nil {
		return a, errors.Wrap(err, "failed to produce Digest from PublicKey")
	}
	copy(a[headerSize:], h[:bodySize])
	cs, err := addressChecksum(a[:headerSize+bodySize])
	if err != nil {
		return a, errors.Wrap(err, "failed to calculate Address checksum")
	}
	copy(a[headerSize+bodySize:], cs)
	return a, nil
}

func NewAddressFromString(s string) (Address, error) {
	var a Address
	b, err := base58.Decode(s)
	if err != nil {
		return a, errors.Wrap(err, "invalid Base58 string")
	}
	a, err = NewAddressFromBytes(b)
	if err != nil {
		return a, errors.Wrap(err, "failed to create an Address from Base58 string")
	}
	return a, nil
}

func NewAddressFromBytes(b []byte) (Address, error) {
	var a Address
	if l := len(b); l != AddressSize {
		return a, errors.Errorf("incorrect Address length %d, expected %d", l, AddressSize)
	}
	copy(a[:], b)
	if err := a.Validate(); err != nil {
		return a, errors.Wrap(err, "invalid address")
	}
	return a, nil
}

func (a Address) String() string {
	return base58.Encode(a[:])
}

func (a Address) Scheme() Scheme {
	return a[1]
}

// IsZero reports whether the address is unset.
func (a Address) IsZero() bool {
	return a == Address{}
}

func (a Address) Validate() error {
	if a[0] != addressVersion {
		return fmt.Errorf("unsupported address version %d", a[0])
	}
	ec, err := addressChecksum(a[:headerSize+bodySize])
	if err != nil {
		return errors.Wrap(err, "failed to calculate Address checksum")
	}
	if !bytes.Equal(ec, a[headerSize+bodySize:]) {
		return errors.New("invalid Address checksum")
	}
	return nil
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	addr, err := NewAddressFromString(string(text))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

func addressChecksum(b []byte) ([]byte, error) {
	h, err := crypto.SecureHash(b)
	if err != nil {
		return nil, err
	}
	c := make([]byte, checksumSize)
	copy(c, h[:checksumSize])
	return c, nil
}
