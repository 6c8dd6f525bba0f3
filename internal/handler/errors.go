package handler

import (
	"errors"

	"github.com/oceandiag/ocean-diagnostics-go/internal/grid"
	"github.com/oceandiag/ocean-diagnostics-go/internal/spatial"
	"github.com/oceandiag/ocean-diagnostics-go/internal/stats"
)

// isClientError reports whether err stems from a malformed request rather
// than a server fault, so handlers answer 400 instead of 500.
func isClientError(err error) bool {
	return errors.Is(err, grid.ErrShapeMismatch) ||
		errors.Is(err, grid.ErrValueSizeMismatch) ||
		errors.Is(err, spatial.ErrShapeMismatch) ||
		errors.Is(err, spatial.ErrEmptyPointSet) ||
		errors.Is(err, stats.ErrShapeMismatch) ||
		errors.Is(err, stats.ErrUnderlongAxis) ||
		errors.Is(err, stats.ErrUnsupportedMethod)
}
