package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf_ThroughWrapping(t *testing.T) {
	t.Parallel()

	err := New(UnknownStatus, "format", "status %q is not in the catalog", "done")
	wrapped := fmt.Errorf("cycle: %w", err)

	assert.Equal(t, UnknownStatus, KindOf(wrapped))
	assert.True(t, errors.Is(wrapped, E(UnknownStatus)))
	assert.False(t, errors.Is(wrapped, E(MissingField)))
	assert.Equal(t, `format: status "done" is not in the catalog`, err.Error())
}

func TestKindOf_PlainError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Unknown, KindOf(errors.New("boom")))
	assert.Equal(t, Unknown, KindOf(nil))
}

func TestWrap_Nil(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Wrap(DeliveryFailed, "send", nil))
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "delivery_failed", DeliveryFailed.String())
	assert.Equal(t, "kind(99)", Kind(99).String())
}
