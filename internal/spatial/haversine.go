package spatial

import (
	"errors"
	"fmt"
	"math"
)

// ErrShapeMismatch indicates companion coordinate slices of differing length.
var ErrShapeMismatch = errors.New("spatial: shape mismatch")

// Constants
const (
	// EarthRadiusKm is the mean Earth radius used by the spatial index to
	// convert a search radius in km into an angular distance.
	EarthRadiusKm = 6371.0

	// EarthRadiusGeodesicKm is the Earth radius used by Haversine. It is
	// deliberately kept distinct from EarthRadiusKm: the upstream system
	// used both values and it is unresolved whether that was intentional,
	// so callers get the exact figures they always got.
	EarthRadiusGeodesicKm = 6371.007176
)

// Haversine returns the great-circle distance in km between two points
// given in degrees. NaN coordinates propagate to a NaN distance.
func Haversine(lon1, lat1, lon2, lat2 float64) float64 {
	return haversineRad(radians(lon1), radians(lat1), radians(lon2), radians(lat2)) * EarthRadiusGeodesicKm
}

// HaversineSlice returns the elementwise great-circle distances in km
// between two equal-length point sequences given in degrees.
func HaversineSlice(lon1, lat1, lon2, lat2 []float64) ([]float64, error) {
	if len(lon1) != len(lat1) || len(lon2) != len(lat2) || len(lon1) != len(lon2) {
		return nil, fmt.Errorf("%w: lengths %d/%d vs %d/%d",
			ErrShapeMismatch, len(lon1), len(lat1), len(lon2), len(lat2))
	}

	out := make([]float64, len(lon1))
	for i := range lon1 {
		out[i] = Haversine(lon1[i], lat1[i], lon2[i], lat2[i])
	}
	return out, nil
}

// HaversineFrom returns the great-circle distances in km from a single
// point to every point of a sequence, all in degrees.
func HaversineFrom(lon, lat float64, lons, lats []float64) ([]float64, error) {
	if len(lons) != len(lats) {
		return nil, fmt.Errorf("%w: %d longitudes vs %d latitudes",
			ErrShapeMismatch, len(lons), len(lats))
	}

	out := make([]float64, len(lons))
	for i := range lons {
		out[i] = Haversine(lon, lat, lons[i], lats[i])
	}
	return out, nil
}

// haversineRad returns the central angle in radians between two points
// given in radians.
func haversineRad(lon1, lat1, lon2, lat2 float64) float64 {
	dlat := (lat2 - lat1) / 2
	dlon := (lon2 - lon1) / 2

	a := math.Sin(dlat)*math.Sin(dlat) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon)*math.Sin(dlon)
	return 2 * math.Asin(math.Sqrt(a))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
