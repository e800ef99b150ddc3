package client

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseError_Error(t *testing.T) {
	txt := "parse error"
	inner := errors.New(txt)
	err := newParseError(inner)
	assert.Equal(t, txt, err.Error())
	assert.ErrorIs(t, err, inner)
	assert.ErrorAs(t, err, new(*ParseError))
}

func TestRequestError_Error(t *testing.T) {
	txt := "request error"
	inner := errors.New(txt)
	err := newRequestError(inner, "")
	assert.Equal(t, txt, err.Error())
	assert.ErrorIs(t, err, inner)
	assert.ErrorAs(t, err, new(*RequestError))
	_, ok := err.ApiError()
	assert.False(t, ok)
}

func TestRequestError_ApiError(t *testing.T) {
	err := newRequestError(errors.New("status"), `{"error":103,"kind":"StateError","message":"issuance is paused"}`)
	ae, ok := err.ApiError()
	assert.True(t, ok)
	assert.Equal(t, ApiError{ID: 103, Kind: "StateError", Message: "issuance is paused"}, ae)

	_, ok = newRequestError(errors.New("status"), "Bad Gateway").ApiError()
	assert.False(t, ok)
}
