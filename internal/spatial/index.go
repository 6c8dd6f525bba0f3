package spatial

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/vptree"

	"github.com/oceandiag/ocean-diagnostics-go/internal/grid"
)

// ErrEmptyPointSet indicates that every grid cell was masked or had NaN
// coordinates, leaving nothing to query.
var ErrEmptyPointSet = errors.New("spatial: no unmasked points to index")

// Point is a geographic location in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// GridIndices holds parallel row and column index slices for one query
// centre, reconstructed from flat tree indices via the source grid shape.
type GridIndices struct {
	Rows []int `json:"rows"`
	Cols []int `json:"cols"`
}

// treePoint is one grid cell in radians, tagged with its flat index in the
// source grid so results can be mapped back to the caller's frame.
type treePoint struct {
	lat, lon float64
	flat     int
}

// Distance implements vptree.Comparable as the central angle on the unit
// sphere, so keeper bounds are radii divided by EarthRadiusKm.
func (p treePoint) Distance(c vptree.Comparable) float64 {
	q := c.(treePoint)
	return haversineRad(p.lon, p.lat, q.lon, q.lat)
}

// buildTree indexes the unmasked grid cells. Masked cells and cells with
// NaN coordinates are left out of the tree entirely; each indexed point
// keeps its original flat position, so results are reported in the
// caller's frame. The caller's slices are never written to.
//
// The tree is rebuilt on every query call. That matches the upstream
// system and keeps the functions stateless; batch all centres into one
// call to amortise the O(n log n) build.
func buildTree(lons, lats []float64, mask []bool) (*vptree.Tree, error) {
	pts := make([]vptree.Comparable, 0, len(lons))
	for i := range lons {
		if mask != nil && mask[i] {
			continue
		}
		if math.IsNaN(lons[i]) || math.IsNaN(lats[i]) {
			continue
		}
		pts = append(pts, treePoint{
			lat:  radians(lats[i]),
			lon:  radians(lons[i]),
			flat: i,
		})
	}
	if len(pts) == 0 {
		return nil, ErrEmptyPointSet
	}
	return vptree.New(pts, 0, nil)
}

func checkFlatShapes(lons, lats []float64, mask []bool) error {
	if len(lons) != len(lats) {
		return fmt.Errorf("%w: %d longitudes vs %d latitudes",
			ErrShapeMismatch, len(lons), len(lats))
	}
	if mask != nil && len(mask) != len(lons) {
		return fmt.Errorf("%w: %d coordinates vs %d mask cells",
			ErrShapeMismatch, len(lons), len(mask))
	}
	return nil
}

// RadiusSearch returns, for each centre, the flat indices of all unmasked
// points lying within radiusKm of it. Coordinates are degrees; the radius
// is converted to an angular distance using EarthRadiusKm. Indices within
// each result are sorted ascending. A scalar centre is a one-element
// slice; there is no scalar form.
func RadiusSearch(lons, lats []float64, centres []Point, radiusKm float64, mask []bool) ([][]int, error) {
	if err := checkFlatShapes(lons, lats, mask); err != nil {
		return nil, err
	}

	tree, err := buildTree(lons, lats, mask)
	if err != nil {
		if errors.Is(err, ErrEmptyPointSet) {
			out := make([][]int, len(centres))
			for i := range out {
				out[i] = []int{}
			}
			return out, nil
		}
		return nil, err
	}

	rRad := radiusKm / EarthRadiusKm
	out := make([][]int, len(centres))
	for i, c := range centres {
		q := treePoint{lat: radians(c.Lat), lon: radians(c.Lon), flat: -1}
		keep := vptree.NewDistKeeper(rRad)
		tree.NearestSet(keep, q)

		idx := make([]int, 0, len(keep.Heap))
		for _, cd := range keep.Heap {
			if cd.Comparable == nil {
				continue
			}
			idx = append(idx, cd.Comparable.(treePoint).flat)
		}
		sort.Ints(idx)
		out[i] = idx
	}
	return out, nil
}

// RadiusSearchGrid is RadiusSearch over 2D coordinate grids: for each
// centre the flat matches are unravelled into parallel row/col slices
// using the grids' shape.
func RadiusSearchGrid(lons, lats *grid.Grid, centres []Point, radiusKm float64, mask *grid.Mask) ([]GridIndices, error) {
	if !lons.SameShape(lats) {
		return nil, fmt.Errorf("%w: lon %dx%d vs lat %dx%d",
			ErrShapeMismatch, lons.Rows(), lons.Cols(), lats.Rows(), lats.Cols())
	}
	var flatMask []bool
	if mask != nil {
		if mask.Rows() != lons.Rows() || mask.Cols() != lons.Cols() {
			return nil, fmt.Errorf("%w: grid %dx%d vs mask %dx%d",
				ErrShapeMismatch, lons.Rows(), lons.Cols(), mask.Rows(), mask.Cols())
		}
		flatMask = mask.Flat()
	}

	flat, err := RadiusSearch(lons.Flat(), lats.Flat(), centres, radiusKm, flatMask)
	if err != nil {
		return nil, err
	}

	out := make([]GridIndices, len(flat))
	for i, idx := range flat {
		gi := GridIndices{
			Rows: make([]int, len(idx)),
			Cols: make([]int, len(idx)),
		}
		for j, f := range idx {
			gi.Rows[j], gi.Cols[j] = lons.Unravel(f)
		}
		out[i] = gi
	}
	return out, nil
}

// NearestGrid returns the (row, col) of the unmasked grid cell nearest to
// each query point. When several cells are equidistant the tree's
// first-found point wins; which one that is is implementation defined and
// must not be relied upon for exact reproducibility.
func NearestGrid(lons, lats *grid.Grid, queries []Point, mask *grid.Mask) (rows, cols []int, err error) {
	if !lons.SameShape(lats) {
		return nil, nil, fmt.Errorf("%w: lon %dx%d vs lat %dx%d",
			ErrShapeMismatch, lons.Rows(), lons.Cols(), lats.Rows(), lats.Cols())
	}
	var flatMask []bool
	if mask != nil {
		if mask.Rows() != lons.Rows() || mask.Cols() != lons.Cols() {
			return nil, nil, fmt.Errorf("%w: grid %dx%d vs mask %dx%d",
				ErrShapeMismatch, lons.Rows(), lons.Cols(), mask.Rows(), mask.Cols())
		}
		flatMask = mask.Flat()
	}

	tree, err := buildTree(lons.Flat(), lats.Flat(), flatMask)
	if err != nil {
		return nil, nil, err
	}

	rows = make([]int, len(queries))
	cols = make([]int, len(queries))
	for i, q := range queries {
		got, _ := tree.Nearest(treePoint{lat: radians(q.Lat), lon: radians(q.Lon), flat: -1})
		rows[i], cols[i] = lons.Unravel(got.(treePoint).flat)
	}
	return rows, cols, nil
}
