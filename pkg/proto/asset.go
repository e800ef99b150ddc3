package proto

import (
	"strconv"

	"github.com/pkg/errors"
)

// AssetID is the sequence number of an issued asset. Valid ids start at 1.
type AssetID uint64

func NewAssetIDFromString(s string) (AssetID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid asset id '%s'", s)
	}
	return AssetID(v), nil
}

func (id AssetID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// AssetRecord binds an issued asset to its owner and an opaque metadata pointer.
// Empty Metadata means no pointer was associated at issuance.
type AssetRecord struct {
	ID       AssetID `json:"id"`
	Owner    Address `json:"owner"`
	Metadata string  `json:"metadata,omitempty"`
}
