package stats

import (
	"errors"
	"fmt"
	"math"

	"github.com/oceandiag/ocean-diagnostics-go/internal/grid"
)

// ErrUnderlongAxis indicates a series shorter than the Doodson X0 kernel
// along the filtered axis. The filter reports it and produces no output
// rather than filtering with insufficient support.
var ErrUnderlongAxis = errors.New("stats: filtered axis shorter than 39 samples")

// doodsonX0Taps are the 39 Doodson X0 weights
// (1010010110201102112 0 2112011020110100101), applied with a 1/30
// normalisation. The kernel damps the principal tidal frequencies out of
// an hourly series.
var doodsonX0Taps = [39]float64{
	1, 0, 1, 0, 0, 1, 0, 1, 1, 0, 2, 0, 1, 1, 0, 2, 1, 1, 2,
	0,
	2, 1, 1, 2, 0, 1, 1, 0, 2, 0, 1, 1, 0, 1, 0, 0, 1, 0, 1,
}

const doodsonHalfWidth = 19

// DoodsonX0 applies the Doodson X0 filter to an hourly series. The first
// and last 19 samples have no full kernel support and are NaN in the
// output. Series shorter than the kernel return ErrUnderlongAxis.
func DoodsonX0(series []float64) ([]float64, error) {
	if len(series) < len(doodsonX0Taps) {
		return nil, fmt.Errorf("%w: got %d", ErrUnderlongAxis, len(series))
	}

	out := make([]float64, len(series))
	for i := range out {
		out[i] = math.NaN()
	}
	for i := doodsonHalfWidth; i < len(series)-doodsonHalfWidth; i++ {
		var sum float64
		for k, w := range doodsonX0Taps {
			sum += w * series[i+k-doodsonHalfWidth]
		}
		out[i] = sum / 30
	}
	return out, nil
}

// DoodsonX0Grid filters every slice of a 2D field along the chosen axis
// independently: axis 0 runs the filter down each column, axis 1 along
// each row. The whole call fails with ErrUnderlongAxis when the chosen
// axis is shorter than the kernel.
func DoodsonX0Grid(g *grid.Grid, axis int) (*grid.Grid, error) {
	switch axis {
	case 0:
		if g.Rows() < len(doodsonX0Taps) {
			return nil, fmt.Errorf("%w: axis 0 has %d", ErrUnderlongAxis, g.Rows())
		}
		out := grid.New(g.Rows(), g.Cols())
		buf := make([]float64, g.Rows())
		for c := 0; c < g.Cols(); c++ {
			for r := 0; r < g.Rows(); r++ {
				buf[r] = g.At(r, c)
			}
			filtered, err := DoodsonX0(buf)
			if err != nil {
				return nil, err
			}
			for r := 0; r < g.Rows(); r++ {
				out.Set(r, c, filtered[r])
			}
		}
		return out, nil
	case 1:
		if g.Cols() < len(doodsonX0Taps) {
			return nil, fmt.Errorf("%w: axis 1 has %d", ErrUnderlongAxis, g.Cols())
		}
		out := grid.New(g.Rows(), g.Cols())
		buf := make([]float64, g.Cols())
		for r := 0; r < g.Rows(); r++ {
			for c := 0; c < g.Cols(); c++ {
				buf[c] = g.At(r, c)
			}
			filtered, err := DoodsonX0(buf)
			if err != nil {
				return nil, err
			}
			for c := 0; c < g.Cols(); c++ {
				out.Set(r, c, filtered[c])
			}
		}
		return out, nil
	}
	return nil, fmt.Errorf("stats: invalid axis %d", axis)
}
