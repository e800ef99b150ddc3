package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apiErrs "github.com/wavesplatform/gomint/pkg/api/errors"
	"github.com/wavesplatform/gomint/pkg/proto"
)

const base58BTCAlphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// maxRequestBodySize bounds JSON request bodies.
const maxRequestBodySize = 64 * 1024

var base58Alphabet map[rune]struct{}

func init() {
	base58Alphabet = make(map[rune]struct{})
	for _, r := range base58BTCAlphabet {
		base58Alphabet[r] = struct{}{}
	}
}

func findFirstInvalidRuneInBase58String(str string) (rune, bool) {
	for _, r := range str {
		if _, ok := base58Alphabet[r]; !ok {
			return r, true
		}
	}
	return 0, false
}

func parseAddress(s string) (proto.Address, error) {
	if r, isInvalid := findFirstInvalidRuneInBase58String(s); isInvalid {
		return proto.Address{}, apiErrs.NewInvalidAddressError(
			fmt.Sprintf("Invalid character %q in address '%s'", r, s))
	}
	a, err := proto.NewAddressFromString(s)
	if err != nil {
		return proto.Address{}, apiErrs.NewInvalidAddressError(fmt.Sprintf("Invalid address '%s'", s))
	}
	return a, nil
}

func tryParseJson(r io.Reader, v any) error {
	dec := json.NewDecoder(io.LimitReader(r, maxRequestBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return apiErrs.NewWrongJSONError(err)
	}
	return nil
}

func trySendJson(w io.Writer, v any) error {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return apiErrs.NewUnknownError(err)
	}
	return nil
}

func sendJsonWithStatus(w http.ResponseWriter, status int, v any) error {
	w.WriteHeader(status)
	return trySendJson(w, v)
}
