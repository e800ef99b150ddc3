package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wavesplatform/gomint/pkg/errs"
	"github.com/wavesplatform/gomint/pkg/proto"
)

func TestGuard(t *testing.T) {
	operator, err := proto.NewAddressFromString("3NBVqYXrapgJP9atQccdBPAgJPwHDKkh6A8")
	require.NoError(t, err)
	other := operator
	other[5]++

	g, err := NewGuard(operator)
	require.NoError(t, err)
	assert.Equal(t, operator, g.Operator())
	assert.True(t, g.IsOperator(operator))
	assert.False(t, g.IsOperator(other))
	assert.False(t, g.IsOperator(proto.Address{}))

	assert.NoError(t, g.RequireOperator(operator))
	err = g.RequireOperator(other)
	require.Error(t, err)
	assert.True(t, errs.IsType(err, errs.AuthorizationError))
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
}

func TestGuardRequiresOperator(t *testing.T) {
	_, err := NewGuard(proto.Address{})
	assert.True(t, errs.IsType(err, errs.ValidationError))
}
