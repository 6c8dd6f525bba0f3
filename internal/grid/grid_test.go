package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromSlice(t *testing.T) {
	t.Parallel()

	t.Run("valid shape", func(t *testing.T) {
		g, err := FromSlice(2, 3, []float64{1, 2, 3, 4, 5, 6})
		require.NoError(t, err)
		assert.Equal(t, 2, g.Rows())
		assert.Equal(t, 3, g.Cols())
		assert.Equal(t, 6, g.Len())
		assert.Equal(t, 6.0, g.At(1, 2))
	})

	t.Run("wrong length", func(t *testing.T) {
		_, err := FromSlice(2, 3, []float64{1, 2, 3})
		assert.ErrorIs(t, err, ErrShapeMismatch)
	})

	t.Run("copies input", func(t *testing.T) {
		src := []float64{1, 2, 3, 4}
		g, err := FromSlice(2, 2, src)
		require.NoError(t, err)

		src[0] = 99
		assert.Equal(t, 1.0, g.At(0, 0))
	})
}

func TestUnravel(t *testing.T) {
	t.Parallel()

	g := New(3, 4)
	for flat := 0; flat < g.Len(); flat++ {
		r, c := g.Unravel(flat)
		assert.Equal(t, flat, r*g.Cols()+c)
		assert.GreaterOrEqual(t, c, 0)
		assert.Less(t, c, g.Cols())
	}

	r, c := g.Unravel(7)
	assert.Equal(t, 1, r)
	assert.Equal(t, 3, c)
}

func TestMaskFromSlice(t *testing.T) {
	t.Parallel()

	t.Run("wrong length", func(t *testing.T) {
		_, err := MaskFromSlice(2, 2, []bool{true})
		assert.ErrorIs(t, err, ErrShapeMismatch)
	})

	t.Run("false count", func(t *testing.T) {
		m, err := MaskFromSlice(2, 2, []bool{true, false, false, true})
		require.NoError(t, err)
		assert.Equal(t, 2, m.FalseCount())
	})
}
