//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"access-scheduler/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkAndIs(t *testing.T) {
	sentinel := errs.New("not found")

	t.Run("Is sees marks that the standard library misses", func(t *testing.T) {
		cause := errs.New("row missing in storage")
		marked := errs.Mark(cause, sentinel)

		assert.True(t, errs.Is(marked, sentinel))
		// The mark is not part of the unwrap chain, which is why handlers
		// must match sentinels through errs.Is.
		assert.False(t, errors.Is(marked, sentinel))
		// The cause's message survives marking.
		assert.Equal(t, cause.Error(), marked.Error())
	})

	t.Run("Is matches through Wrap", func(t *testing.T) {
		wrapped := errs.Wrap(sentinel, "loading booking")
		assert.True(t, errs.Is(wrapped, sentinel))
	})

	t.Run("marking nil yields the sentinel itself", func(t *testing.T) {
		err := errs.Mark(nil, sentinel)
		require.ErrorIs(t, err, sentinel)
	})

	t.Run("Is on unrelated errors is false", func(t *testing.T) {
		assert.False(t, errs.Is(errs.New("other"), sentinel))
		assert.False(t, errs.Is(nil, sentinel))
	})
}
