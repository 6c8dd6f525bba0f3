package grid

import "fmt"

// Compress flattens a 2D field to 1D, keeping only the values where the
// mask is false, in row-major order. The field and mask must share a shape.
func Compress(field *Grid, mask *Mask) ([]float64, error) {
	if field.rows != mask.rows || field.cols != mask.cols {
		return nil, fmt.Errorf("%w: field %dx%d vs mask %dx%d",
			ErrShapeMismatch, field.rows, field.cols, mask.rows, mask.cols)
	}

	out := make([]float64, 0, mask.FalseCount())
	for i, masked := range mask.data {
		if !masked {
			out = append(out, field.data[i])
		}
	}
	return out, nil
}

// Expand is the inverse of Compress: it scatters values back into the
// unmasked cells of a new grid shaped like mask, in the same row-major
// order Compress used, and writes fill into every masked cell. The length
// of values must equal the mask's false count.
func Expand(values []float64, mask *Mask, fill float64) (*Grid, error) {
	want := mask.FalseCount()
	if len(values) != want {
		return nil, fmt.Errorf("%w: %d values for %d unmasked cells",
			ErrValueSizeMismatch, len(values), want)
	}

	g := New(mask.rows, mask.cols)
	vi := 0
	for i, masked := range mask.data {
		if masked {
			g.data[i] = fill
		} else {
			g.data[i] = values[vi]
			vi++
		}
	}
	return g, nil
}
