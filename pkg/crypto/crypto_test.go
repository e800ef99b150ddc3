package crypto

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashes(t *testing.T) {
	for _, tc := range []struct {
		data   string
		keccak string
		fast   string
		secure string
	}{
		{
			data:   "0100000000000000000000000000000000000000000000000000000000000000",
			keccak: "48078cfed56339ea54962e72c37c7f588fc4f8e5bc173827ba75cb10a63a96a5",
			fast:   "afbc1c053c2f278e3cbd4409c1c094f184aa459dd2f7fca96d6077730ab9ffe3",
			secure: "44282d24d307fb66f385e9a814d07b693d17653c5b88d2e9d4e2a3ccc8216e10",
		},
		{
			data:   "0000000000",
			keccak: "c41589e7559804ea4a2080dad19d876a024ccb05117835447d72ce08c1d020ec",
			fast:   "569ed9e4a5463896190447e6ffe37c394c4d77ce470aa29ad762e0286b896832",
			secure: "c67437bdaf6ed0ce5d3c39eb6dd591d8005fd0c1fb96cb134a6291ab8e1a39ac",
		},
		{
			data:   "64617461",
			keccak: "8f54f1c2d0eb5771cd5bf67a6689fcd6eed9444d91a39e5ef32a9b4ae5ca14ff",
			fast:   "a035872d6af8639ede962dfe7536b0c150b590f3234a922fb7064cd11971b58e",
			secure: "7a21055775d130cdeb24258834f40cef7d9b0666f9b0f773cdd28ee556551bb0",
		},
	} {
		data, err := hex.DecodeString(tc.data)
		require.NoError(t, err)

		k := Keccak256(data)
		assert.Equal(t, tc.keccak, hex.EncodeToString(k[:]))

		f, err := FastHash(data)
		require.NoError(t, err)
		assert.Equal(t, tc.fast, hex.EncodeToString(f[:]))

		s, err := SecureHash(data)
		require.NoError(t, err)
		assert.Equal(t, tc.secure, hex.EncodeToString(s[:]))
	}
}

func TestPublicKeyBase58(t *testing.T) {
	const s = "CRxqEuxhdZBEHX42MU4FfyJxuHmbDBTaHMhM3Uki7pLw"
	pk, err := NewPublicKeyFromBase58(s)
	require.NoError(t, err)
	assert.Equal(t, s, pk.String())

	var pk2 PublicKey
	require.NoError(t, pk2.UnmarshalText([]byte(s)))
	assert.Equal(t, pk, pk2)

	_, err = NewPublicKeyFromBase58("3NBVqYXrapgJP9atQccdBPAgJPwHDKkh6A8")
	assert.Error(t, err)
	_, err = NewPublicKeyFromBase58("0OIl")
	assert.Error(t, err)
}
