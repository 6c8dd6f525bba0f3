package spatial

import (
	"math"

	"github.com/golang/geo/s2"
)

// TrackSummary describes an ordered observation track (altimetry pass,
// glider section) in aggregate.
type TrackSummary struct {
	PathKm       float64 `json:"path_km"`
	DirectKm     float64 `json:"direct_km"`
	Tortuosity   float64 `json:"tortuosity"`
	BearingDeg   float64 `json:"bearing_deg"`
	Midpoint     Point   `json:"midpoint"`
	Centroid     Point   `json:"centroid"`
	NumPositions int     `json:"num_positions"`
}

// PathLength returns the cumulative great-circle length of a track in km.
func PathLength(points []Point) float64 {
	if len(points) < 2 {
		return 0
	}

	var total float64
	for i := 1; i < len(points); i++ {
		total += Haversine(points[i-1].Lon, points[i-1].Lat, points[i].Lon, points[i].Lat)
	}
	return total
}

// Tortuosity is the ratio of path length to endpoint separation. A straight
// track gives 1; winding tracks give more.
func Tortuosity(points []Point) float64 {
	if len(points) < 2 {
		return 1
	}

	direct := Haversine(points[0].Lon, points[0].Lat,
		points[len(points)-1].Lon, points[len(points)-1].Lat)
	if direct == 0 {
		return 1
	}
	return PathLength(points) / direct
}

// Bearing returns the initial forward azimuth from the first to the last
// track position, in degrees clockwise from north.
func Bearing(a, b Point) float64 {
	p1 := s2.LatLngFromDegrees(a.Lat, a.Lon)
	p2 := s2.LatLngFromDegrees(b.Lat, b.Lon)

	lat1 := p1.Lat.Radians()
	lat2 := p2.Lat.Radians()
	dLon := p2.Lng.Radians() - p1.Lng.Radians()

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	deg := math.Atan2(y, x) * 180 / math.Pi
	return math.Mod(deg+360, 360)
}

// Midpoint returns the great-circle midpoint between two positions.
func Midpoint(a, b Point) Point {
	p1 := s2.PointFromLatLng(s2.LatLngFromDegrees(a.Lat, a.Lon))
	p2 := s2.PointFromLatLng(s2.LatLngFromDegrees(b.Lat, b.Lon))

	mid := s2.LatLngFromPoint(s2.Interpolate(0.5, p1, p2))
	return Point{Lat: mid.Lat.Degrees(), Lon: mid.Lng.Degrees()}
}

// Centroid returns the arithmetic centroid of the track positions.
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}

	var sumLat, sumLon float64
	for _, p := range points {
		sumLat += p.Lat
		sumLon += p.Lon
	}
	return Point{
		Lat: sumLat / float64(len(points)),
		Lon: sumLon / float64(len(points)),
	}
}

// Summarize computes the aggregate description of a track.
func Summarize(points []Point) TrackSummary {
	s := TrackSummary{
		NumPositions: len(points),
		Tortuosity:   1,
	}
	if len(points) == 0 {
		return s
	}

	s.Centroid = Centroid(points)
	s.Midpoint = points[0]
	if len(points) < 2 {
		return s
	}

	first := points[0]
	last := points[len(points)-1]
	s.PathKm = PathLength(points)
	s.DirectKm = Haversine(first.Lon, first.Lat, last.Lon, last.Lat)
	s.Tortuosity = Tortuosity(points)
	s.BearingDeg = Bearing(first, last)
	s.Midpoint = Midpoint(first, last)
	return s
}
