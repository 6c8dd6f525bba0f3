package grid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompress(t *testing.T) {
	t.Parallel()

	t.Run("keeps unmasked values in row-major order", func(t *testing.T) {
		field, err := FromSlice(2, 3, []float64{1, 2, 3, 4, 5, 6})
		require.NoError(t, err)
		mask, err := MaskFromSlice(2, 3, []bool{false, true, false, true, false, false})
		require.NoError(t, err)

		got, err := Compress(field, mask)
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 3, 5, 6}, got)
	})

	t.Run("shape mismatch", func(t *testing.T) {
		field := New(2, 3)
		mask := NewMask(3, 2)

		_, err := Compress(field, mask)
		assert.ErrorIs(t, err, ErrShapeMismatch)
	})

	t.Run("NaN passes through as data", func(t *testing.T) {
		field, err := FromSlice(1, 3, []float64{1, math.NaN(), 3})
		require.NoError(t, err)
		mask := NewMask(1, 3)

		got, err := Compress(field, mask)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.True(t, math.IsNaN(got[1]))
	})
}

func TestExpand(t *testing.T) {
	t.Parallel()

	t.Run("scatters values and fills masked cells", func(t *testing.T) {
		mask, err := MaskFromSlice(2, 2, []bool{false, true, true, false})
		require.NoError(t, err)

		g, err := Expand([]float64{7, 8}, mask, -999)
		require.NoError(t, err)
		assert.Equal(t, 7.0, g.At(0, 0))
		assert.Equal(t, -999.0, g.At(0, 1))
		assert.Equal(t, -999.0, g.At(1, 0))
		assert.Equal(t, 8.0, g.At(1, 1))
	})

	t.Run("value size mismatch", func(t *testing.T) {
		mask, err := MaskFromSlice(2, 2, []bool{false, true, true, false})
		require.NoError(t, err)

		_, err = Expand([]float64{7}, mask, 0)
		assert.ErrorIs(t, err, ErrValueSizeMismatch)
	})
}

func TestCompressExpandRoundTrip(t *testing.T) {
	t.Parallel()

	field, err := FromSlice(3, 3, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9})
	require.NoError(t, err)
	mask, err := MaskFromSlice(3, 3, []bool{
		false, true, false,
		true, false, true,
		false, false, true,
	})
	require.NoError(t, err)

	values, err := Compress(field, mask)
	require.NoError(t, err)
	require.Equal(t, mask.FalseCount(), len(values))

	back, err := Expand(values, mask, math.NaN())
	require.NoError(t, err)

	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if mask.At(r, c) {
				assert.True(t, math.IsNaN(back.At(r, c)), "masked cell (%d,%d)", r, c)
			} else {
				assert.Equal(t, field.At(r, c), back.At(r, c), "cell (%d,%d)", r, c)
			}
		}
	}
}
