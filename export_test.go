package diffinsight_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/diffinsight"
	"github.com/fwojciec/diffinsight/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatNumbered(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1. a\n2. b", diffinsight.FormatNumbered([]string{"a", "b"}))
	assert.Equal(t, "1. only", diffinsight.FormatNumbered([]string{"only"}))
	assert.Equal(t, "", diffinsight.FormatNumbered(nil))
	assert.Equal(t, "1. \n2. x", diffinsight.FormatNumbered([]string{"", "x"}))
}

func TestFormatNumbered_KeepsOrderPastNine(t *testing.T) {
	t.Parallel()

	items := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"}

	out := diffinsight.FormatNumbered(items)

	assert.Contains(t, out, "9. i\n10. j\n11. k")
}

func TestExport(t *testing.T) {
	t.Parallel()

	t.Run("writes the numbered list", func(t *testing.T) {
		t.Parallel()

		var copied []string
		cb := &mock.Clipboard{
			CopyFn: func(content string) error {
				copied = append(copied, content)
				return nil
			},
		}

		err := diffinsight.Export(cb, []string{"a", "b"})

		require.NoError(t, err)
		assert.Equal(t, []string{"1. a\n2. b"}, copied)
	})

	t.Run("returns clipboard errors", func(t *testing.T) {
		t.Parallel()

		cbErr := errors.New("no clipboard")
		cb := &mock.Clipboard{
			CopyFn: func(content string) error { return cbErr },
		}

		assert.ErrorIs(t, diffinsight.Export(cb, []string{"a"}), cbErr)
	})
}
