package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtend(t *testing.T) {
	require.EqualError(t, Extend(errors.New("a"), "b"), "b: a")

	err := Extend(NewPausedError(), "issue")
	require.EqualError(t, err, "issue: issuance is paused")
	assert.True(t, IsType(err, StateError))
	assert.ErrorIs(t, err, ErrPaused)
}
