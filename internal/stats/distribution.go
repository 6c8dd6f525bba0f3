package stats

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat/distuv"
)

// ErrUnsupportedMethod indicates a method or distribution kind name that
// has no implementation. Names are validated at parse time, before any
// computation runs.
var ErrUnsupportedMethod = errors.New("stats: unsupported method")

// ErrShapeMismatch indicates paired series slices of differing length.
var ErrShapeMismatch = errors.New("stats: shape mismatch")

// DefaultSupportPoints is the support resolution used when no explicit
// x array is supplied.
const DefaultSupportPoints = 1000

// CDFKind selects the theoretical distribution a CDF is derived from.
type CDFKind int

// Supported CDF kinds.
const (
	CDFGaussian CDFKind = iota
)

// ParseCDFKind maps a kind name to its CDFKind, rejecting unknown names.
func ParseCDFKind(s string) (CDFKind, error) {
	switch s {
	case "gaussian":
		return CDFGaussian, nil
	}
	return 0, fmt.Errorf("%w: cdf kind %q", ErrUnsupportedMethod, s)
}

// NormalSupport returns nPts evenly spaced support points spanning
// mu ± 5σ. Non-positive nPts falls back to DefaultSupportPoints.
func NormalSupport(mu, sigma float64, nPts int) []float64 {
	if nPts <= 0 {
		nPts = DefaultSupportPoints
	}
	return floats.Span(make([]float64, nPts), mu-5*sigma, mu+5*sigma)
}

// NormalPDF evaluates the Gaussian density with the given mean and
// standard deviation at every support point.
func NormalPDF(mu, sigma float64, x []float64) []float64 {
	dist := distuv.Normal{Mu: mu, Sigma: sigma}
	y := make([]float64, len(x))
	for i, xi := range x {
		y[i] = dist.Prob(xi)
	}
	return y
}

// GaussianCDF estimates the Gaussian CDF by trapezoidal integration under
// the PDF, re-integrating from the first support point for every index.
// That makes it O(n²) in the support size; the cost is part of the
// documented contract, so do not replace it with a running sum without
// revisiting the callers that rely on its exact output.
func GaussianCDF(mu, sigma float64, x []float64) []float64 {
	pdf := NormalPDF(mu, sigma, x)
	cdf := make([]float64, len(x))
	for i := 1; i < len(x); i++ {
		cdf[i] = integrate.Trapezoidal(x[:i+1], pdf[:i+1])
	}
	return cdf
}

// CumulativeDistribution evaluates the CDF of the selected kind over x.
func CumulativeDistribution(kind CDFKind, mu, sigma float64, x []float64) ([]float64, error) {
	switch kind {
	case CDFGaussian:
		return GaussianCDF(mu, sigma, x), nil
	}
	return nil, fmt.Errorf("%w: cdf kind %d", ErrUnsupportedMethod, kind)
}

// EmpiricalCDF estimates a CDF directly from a sample: for each support
// point it returns the fraction of non-NaN sample values strictly below
// it. The output is non-decreasing in x and bounded to [0, 1].
func EmpiricalCDF(x, sample []float64) []float64 {
	clean := make([]float64, 0, len(sample))
	for _, v := range sample {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	sort.Float64s(clean)

	out := make([]float64, len(x))
	if len(clean) == 0 {
		return out
	}
	n := float64(len(clean))
	for i, xi := range x {
		out[i] = float64(sort.SearchFloat64s(clean, xi)) / n
	}
	return out
}
