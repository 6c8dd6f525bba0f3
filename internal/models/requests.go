package models

import (
	"time"

	"github.com/oceandiag/ocean-diagnostics-go/internal/spatial"
)

// RadiusQueryRequest asks which grid cells lie within RadiusKm of each
// centre. Coordinates are degrees, row-major when Rows and Cols describe a
// 2D grid; with Rows/Cols left zero the coordinate slices are treated as a
// flat point list and flat indices come back instead of row/col pairs.
type RadiusQueryRequest struct {
	Rows     int             `json:"rows"`
	Cols     int             `json:"cols"`
	Lons     Series          `json:"lons" binding:"required"`
	Lats     Series          `json:"lats" binding:"required"`
	Mask     []bool          `json:"mask,omitempty"`
	Centres  []spatial.Point `json:"centres" binding:"required,min=1"`
	RadiusKm float64         `json:"radius_km" binding:"required,gt=0"`
}

// RadiusQueryResponse holds one result per centre, in either the flat or
// the grid frame depending on the request.
type RadiusQueryResponse struct {
	FlatIndices [][]int               `json:"flat_indices,omitempty"`
	GridIndices []spatial.GridIndices `json:"grid_indices,omitempty"`
}

// NearestQueryRequest asks for the nearest unmasked grid cell to each
// query point. The coordinate grid is always 2D here.
type NearestQueryRequest struct {
	Rows    int             `json:"rows" binding:"required,gt=0"`
	Cols    int             `json:"cols" binding:"required,gt=0"`
	Lons    Series          `json:"lons" binding:"required"`
	Lats    Series          `json:"lats" binding:"required"`
	Mask    []bool          `json:"mask,omitempty"`
	Queries []spatial.Point `json:"queries" binding:"required,min=1"`
}

// NearestQueryResponse holds one (row, col) per query point.
type NearestQueryResponse struct {
	Rows []int `json:"rows"`
	Cols []int `json:"cols"`
}

// TrackSummaryRequest carries an ordered observation track.
type TrackSummaryRequest struct {
	Points []spatial.Point `json:"points" binding:"required,min=1"`
}

// DistributionRequest asks for a sampled distribution curve. Curve is one
// of "pdf", "cdf" or "empirical"; Kind selects the theoretical family for
// "cdf" (only "gaussian"). When X is omitted a default support spanning
// mu ± 5σ is generated.
type DistributionRequest struct {
	Curve   string  `json:"curve" binding:"required"`
	Kind    string  `json:"kind,omitempty"`
	Mu      float64 `json:"mu"`
	Sigma   float64 `json:"sigma"`
	X       Series  `json:"x,omitempty"`
	NPoints int     `json:"n_points,omitempty"`
	Sample  Series  `json:"sample,omitempty"`
}

// DistributionCurve is a curve sampled over a common support.
type DistributionCurve struct {
	X Series `json:"x"`
	Y Series `json:"y"`
}

// ExtremaRequest asks for the maxima of a sampled series. Either X or
// Times supplies the abscissa; Times takes precedence and produces
// timestamp output.
type ExtremaRequest struct {
	X      Series      `json:"x,omitempty"`
	Times  []time.Time `json:"times,omitempty"`
	Y      Series      `json:"y" binding:"required"`
	Method string      `json:"method" binding:"required"`
}

// ExtremaResponse holds the located extrema.
type ExtremaResponse struct {
	X     Series      `json:"x,omitempty"`
	Times []time.Time `json:"times,omitempty"`
	Y     Series      `json:"y"`
}

// TidalFilterRequest asks for a Doodson X0 pass over an hourly series,
// either a 1D Series or a row-major 2D field filtered along Axis.
type TidalFilterRequest struct {
	Series Series `json:"series,omitempty"`
	Rows   int    `json:"rows"`
	Cols   int    `json:"cols"`
	Field  Series `json:"field,omitempty"`
	Axis   int    `json:"axis"`
}

// TidalFilterResponse mirrors the request form.
type TidalFilterResponse struct {
	Series Series `json:"series,omitempty"`
	Rows   int    `json:"rows,omitempty"`
	Cols   int    `json:"cols,omitempty"`
	Field  Series `json:"field,omitempty"`
}

// CompareRequest asks for a model-vs-observation distribution comparison:
// a Gaussian CDF with the given moments against the empirical CDF of the
// sample, over a shared support.
type CompareRequest struct {
	Mu      float64 `json:"mu"`
	Sigma   float64 `json:"sigma" binding:"required,gt=0"`
	Sample  Series  `json:"sample" binding:"required,min=1"`
	X       Series  `json:"x,omitempty"`
	NPoints int     `json:"n_points,omitempty"`
}

// CompareResponse carries both curves and their mean absolute separation
// over the support.
type CompareResponse struct {
	X                 Series  `json:"x"`
	GaussianCDF       Series  `json:"gaussian_cdf"`
	EmpiricalCDF      Series  `json:"empirical_cdf"`
	MeanAbsSeparation float64 `json:"mean_abs_separation"`
}

// CreateTaskRequest queues a diagnostic for asynchronous execution.
type CreateTaskRequest struct {
	Diagnostic string `json:"diagnostic" binding:"required"`
	// Params is the serialized request payload of the named diagnostic.
	Params    map[string]interface{} `json:"params,omitempty"`
	CreatedBy string                 `json:"created_by,omitempty"`
}
