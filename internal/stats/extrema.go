package stats

import (
	"fmt"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/interp"
)

// PeakMethod selects how FindMaxima locates extrema.
type PeakMethod int

// Supported peak methods.
const (
	// PeakComparison detects local maxima by comparison with the two
	// neighbouring samples.
	PeakComparison PeakMethod = iota
	// PeakCubic fits a cubic interpolating spline and solves for the
	// critical points of its derivative.
	PeakCubic
)

// ParsePeakMethod maps a method name to its PeakMethod, rejecting unknown
// names before any computation runs.
func ParsePeakMethod(s string) (PeakMethod, error) {
	switch s {
	case "comparison", "comp":
		return PeakComparison, nil
	case "cubic":
		return PeakCubic, nil
	}
	return 0, fmt.Errorf("%w: peak method %q", ErrUnsupportedMethod, s)
}

// FindMaxima locates extrema of the sampled series (x, y) and returns the
// x positions and values at them. PeakComparison returns interior local
// maxima only. PeakCubic returns every critical point of the fitted
// spline, minima included, as the upstream implementation did; callers
// wanting maxima filter on the returned values.
func FindMaxima(x, y []float64, method PeakMethod) ([]float64, []float64, error) {
	if len(x) != len(y) {
		return nil, nil, fmt.Errorf("%w: %d x values vs %d y values",
			ErrShapeMismatch, len(x), len(y))
	}

	switch method {
	case PeakComparison:
		px, py := maximaByComparison(x, y)
		return px, py, nil
	case PeakCubic:
		return maximaByCubic(x, y)
	}
	return nil, nil, fmt.Errorf("%w: peak method %d", ErrUnsupportedMethod, method)
}

// FindMaximaTime is FindMaxima for a timestamp x axis. Times are cast to a
// floating epoch for the fit and cast back on output.
func FindMaximaTime(ts []time.Time, y []float64, method PeakMethod) ([]time.Time, []float64, error) {
	x := make([]float64, len(ts))
	for i, t := range ts {
		x[i] = float64(t.UnixNano()) / float64(time.Second)
	}

	px, py, err := FindMaxima(x, y, method)
	if err != nil {
		return nil, nil, err
	}

	pt := make([]time.Time, len(px))
	for i, v := range px {
		pt[i] = time.Unix(0, int64(v*float64(time.Second))).UTC()
	}
	return pt, py, nil
}

// maximaByComparison keeps samples strictly greater than both neighbours.
// NaN neighbours never satisfy the comparison, so runs containing NaN
// produce no peaks there.
func maximaByComparison(x, y []float64) ([]float64, []float64) {
	px := []float64{}
	py := []float64{}
	for i := 1; i < len(y)-1; i++ {
		if y[i] > y[i-1] && y[i] > y[i+1] {
			px = append(px, x[i])
			py = append(py, y[i])
		}
	}
	return px, py
}

// maximaByCubic drops NaN pairs, sorts by x, fits a natural cubic spline
// and finds the roots of its derivative. On each knot interval the
// derivative is a quadratic; sampling it at the interval ends and midpoint
// gives the quadratic's coefficients in normalised [-1, 1] coordinates
// (roots of (u+w-2v)t² + (w-u)t + 2v).
func maximaByCubic(x, y []float64) ([]float64, []float64, error) {
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for i := range y {
		if math.IsNaN(y[i]) || math.IsNaN(x[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}

	idx := make([]int, len(xs))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return xs[idx[i]] < xs[idx[j]] })

	// Spline fitting needs strictly increasing knots; duplicate x samples
	// keep their first occurrence.
	sx := make([]float64, 0, len(xs))
	sy := make([]float64, 0, len(ys))
	for _, i := range idx {
		if len(sx) > 0 && xs[i] == sx[len(sx)-1] {
			continue
		}
		sx = append(sx, xs[i])
		sy = append(sy, ys[i])
	}

	if len(sx) < 2 {
		return []float64{}, []float64{}, nil
	}

	var spline interp.NaturalCubic
	if err := spline.Fit(sx, sy); err != nil {
		return nil, nil, fmt.Errorf("stats: spline fit: %w", err)
	}

	px := []float64{}
	py := []float64{}
	for i := 0; i < len(sx)-1; i++ {
		a, b := sx[i], sx[i+1]
		u := spline.PredictDerivative(a)
		v := spline.PredictDerivative((a + b) / 2)
		w := spline.PredictDerivative(b)

		for _, t := range quadRootsUnit(u+w-2*v, w-u, 2*v) {
			cx := t*(b-a)/2 + (b+a)/2
			px = append(px, cx)
			py = append(py, spline.Predict(cx))
		}
	}
	return px, py, nil
}

// quadRootsUnit returns the real roots of a2·t² + a1·t + a0 within [-1, 1].
func quadRootsUnit(a2, a1, a0 float64) []float64 {
	const eps = 1e-12

	if math.Abs(a2) < eps {
		if math.Abs(a1) < eps {
			return nil
		}
		t := -a0 / a1
		if math.Abs(t) <= 1 {
			return []float64{t}
		}
		return nil
	}

	disc := a1*a1 - 4*a2*a0
	if disc < 0 {
		return nil
	}

	sq := math.Sqrt(disc)
	var roots []float64
	for _, t := range []float64{(-a1 - sq) / (2 * a2), (-a1 + sq) / (2 * a2)} {
		if math.Abs(t) <= 1 {
			roots = append(roots, t)
		}
	}
	if len(roots) == 2 && roots[0] == roots[1] {
		roots = roots[:1]
	}
	return roots
}
