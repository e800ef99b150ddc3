// Package metadata turns stored metadata pointers into locators of off-chain content.
// Pointers are opaque to the ledger; only queries resolve them.
package metadata

import (
	"strconv"

	"github.com/wavesplatform/gomint/pkg/proto"
)

type Resolver interface {
	Resolve(base string, id proto.AssetID, pointer string) string
}

// URIResolver applies the usual token URI rule: without a base the pointer is returned as is,
// otherwise the pointer is appended to the base, or the decimal id if there is no pointer.
type URIResolver struct{}

func (URIResolver) Resolve(base string, id proto.AssetID, pointer string) string {
	switch {
	case base == "":
		return pointer
	case pointer != "":
		return base + pointer
	default:
		return base + strconv.FormatUint(uint64(id), 10)
	}
}

type ResolverFunc func(base string, id proto.AssetID, pointer string) string

func (f ResolverFunc) Resolve(base string, id proto.AssetID, pointer string) string {
	return f(base, id, pointer)
}
