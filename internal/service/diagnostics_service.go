package service

import (
	"context"
	"fmt"
	"math"

	"github.com/oceandiag/ocean-diagnostics-go/internal/grid"
	"github.com/oceandiag/ocean-diagnostics-go/internal/models"
	"github.com/oceandiag/ocean-diagnostics-go/internal/spatial"
	"github.com/oceandiag/ocean-diagnostics-go/internal/stats"
)

// DiagnosticsService orchestrates the spatial and statistical engines
// behind the HTTP surface. It holds no state beyond the optional result
// cache; every computation is a pure function of its request.
type DiagnosticsService struct {
	cache *ResultCache
}

// NewDiagnosticsService creates a diagnostics service. cache may be nil.
func NewDiagnosticsService(cache *ResultCache) *DiagnosticsService {
	return &DiagnosticsService{cache: cache}
}

// RadiusQuery answers which grid cells lie within the request radius of
// each centre. Results for identical requests are served from the cache
// when one is configured; the spatial tree itself is never cached.
func (s *DiagnosticsService) RadiusQuery(ctx context.Context, req *models.RadiusQueryRequest) (*models.RadiusQueryResponse, error) {
	key := s.cache.Key("radius", req)
	cached := &models.RadiusQueryResponse{}
	if s.cache.Get(ctx, key, cached) {
		return cached, nil
	}

	resp := &models.RadiusQueryResponse{}
	if req.Rows > 0 && req.Cols > 0 {
		lons, err := grid.FromSlice(req.Rows, req.Cols, req.Lons)
		if err != nil {
			return nil, err
		}
		lats, err := grid.FromSlice(req.Rows, req.Cols, req.Lats)
		if err != nil {
			return nil, err
		}
		mask, err := maskFromRequest(req.Rows, req.Cols, req.Mask)
		if err != nil {
			return nil, err
		}

		indices, err := spatial.RadiusSearchGrid(lons, lats, req.Centres, req.RadiusKm, mask)
		if err != nil {
			return nil, err
		}
		resp.GridIndices = indices
	} else {
		indices, err := spatial.RadiusSearch(req.Lons, req.Lats, req.Centres, req.RadiusKm, req.Mask)
		if err != nil {
			return nil, err
		}
		resp.FlatIndices = indices
	}

	s.cache.Set(ctx, key, resp)
	return resp, nil
}

// NearestQuery returns the (row, col) of the nearest unmasked grid cell
// to each query point.
func (s *DiagnosticsService) NearestQuery(ctx context.Context, req *models.NearestQueryRequest) (*models.NearestQueryResponse, error) {
	lons, err := grid.FromSlice(req.Rows, req.Cols, req.Lons)
	if err != nil {
		return nil, err
	}
	lats, err := grid.FromSlice(req.Rows, req.Cols, req.Lats)
	if err != nil {
		return nil, err
	}
	mask, err := maskFromRequest(req.Rows, req.Cols, req.Mask)
	if err != nil {
		return nil, err
	}

	rows, cols, err := spatial.NearestGrid(lons, lats, req.Queries, mask)
	if err != nil {
		return nil, err
	}
	return &models.NearestQueryResponse{Rows: rows, Cols: cols}, nil
}

// TrackSummary aggregates an ordered observation track.
func (s *DiagnosticsService) TrackSummary(req *models.TrackSummaryRequest) *spatial.TrackSummary {
	summary := spatial.Summarize(req.Points)
	return &summary
}

// Distribution evaluates a distribution curve over a support.
func (s *DiagnosticsService) Distribution(req *models.DistributionRequest) (*models.DistributionCurve, error) {
	x := []float64(req.X)
	if len(x) == 0 {
		x = stats.NormalSupport(req.Mu, req.Sigma, req.NPoints)
	}

	switch req.Curve {
	case "pdf":
		return &models.DistributionCurve{X: x, Y: stats.NormalPDF(req.Mu, req.Sigma, x)}, nil
	case "cdf":
		kindName := req.Kind
		if kindName == "" {
			kindName = "gaussian"
		}
		kind, err := stats.ParseCDFKind(kindName)
		if err != nil {
			return nil, err
		}
		y, err := stats.CumulativeDistribution(kind, req.Mu, req.Sigma, x)
		if err != nil {
			return nil, err
		}
		return &models.DistributionCurve{X: x, Y: y}, nil
	case "empirical":
		if len(req.X) == 0 {
			return nil, fmt.Errorf("empirical curve requires an explicit support x")
		}
		if len(req.Sample) == 0 {
			return nil, fmt.Errorf("empirical curve requires a sample")
		}
		return &models.DistributionCurve{X: x, Y: stats.EmpiricalCDF(x, req.Sample)}, nil
	}
	return nil, fmt.Errorf("%w: curve %q", stats.ErrUnsupportedMethod, req.Curve)
}

// Extrema locates maxima of the request series, on a float or timestamp
// abscissa.
func (s *DiagnosticsService) Extrema(req *models.ExtremaRequest) (*models.ExtremaResponse, error) {
	method, err := stats.ParsePeakMethod(req.Method)
	if err != nil {
		return nil, err
	}

	if len(req.Times) > 0 {
		pt, py, err := stats.FindMaximaTime(req.Times, req.Y, method)
		if err != nil {
			return nil, err
		}
		return &models.ExtremaResponse{Times: pt, Y: py}, nil
	}

	px, py, err := stats.FindMaxima(req.X, req.Y, method)
	if err != nil {
		return nil, err
	}
	return &models.ExtremaResponse{X: px, Y: py}, nil
}

// TidalFilter applies the Doodson X0 filter to a 1D series or along one
// axis of a 2D field.
func (s *DiagnosticsService) TidalFilter(req *models.TidalFilterRequest) (*models.TidalFilterResponse, error) {
	if len(req.Series) > 0 {
		filtered, err := stats.DoodsonX0(req.Series)
		if err != nil {
			return nil, err
		}
		return &models.TidalFilterResponse{Series: filtered}, nil
	}

	field, err := grid.FromSlice(req.Rows, req.Cols, req.Field)
	if err != nil {
		return nil, err
	}
	filtered, err := stats.DoodsonX0Grid(field, req.Axis)
	if err != nil {
		return nil, err
	}
	return &models.TidalFilterResponse{
		Rows:  filtered.Rows(),
		Cols:  filtered.Cols(),
		Field: filtered.Flat(),
	}, nil
}

// Compare evaluates a Gaussian CDF against the empirical CDF of an
// observation sample over a shared support and reports their mean
// absolute separation.
func (s *DiagnosticsService) Compare(req *models.CompareRequest) (*models.CompareResponse, error) {
	x := []float64(req.X)
	if len(x) == 0 {
		x = stats.NormalSupport(req.Mu, req.Sigma, req.NPoints)
	}

	gaussian := stats.GaussianCDF(req.Mu, req.Sigma, x)
	empirical := stats.EmpiricalCDF(x, req.Sample)

	var sum float64
	for i := range x {
		sum += math.Abs(gaussian[i] - empirical[i])
	}
	sep := 0.0
	if len(x) > 0 {
		sep = sum / float64(len(x))
	}

	return &models.CompareResponse{
		X:                 x,
		GaussianCDF:       gaussian,
		EmpiricalCDF:      empirical,
		MeanAbsSeparation: sep,
	}, nil
}

func maskFromRequest(rows, cols int, flat []bool) (*grid.Mask, error) {
	if flat == nil {
		return nil, nil
	}
	return grid.MaskFromSlice(rows, cols, flat)
}
