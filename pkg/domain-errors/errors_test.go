package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeInternal, "list persons")

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "list persons: connection refused", err.Error())
	assert.True(t, HasCode(err, CodeInternal))
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, CodeInternal, "noop"))
}

func TestHasCodeWalksChain(t *testing.T) {
	inner := New(CodeConflict, "identity key taken")
	outer := Wrap(fmt.Errorf("create: %w", inner), CodeInternal, "resolve record")

	assert.True(t, HasCode(outer, CodeInternal))
	assert.True(t, HasCode(outer, CodeConflict))
	assert.False(t, HasCode(outer, CodeNotFound))
	assert.Equal(t, CodeInternal, CodeOf(outer))
}

func TestHasCodePlainError(t *testing.T) {
	assert.False(t, Is(errors.New("plain"), CodeInternal))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
}
