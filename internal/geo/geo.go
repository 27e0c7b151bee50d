package geo

import (
	"errors"
	"math"

	orbgeo "github.com/paulmach/orb/geo"
)

// JitterDegrees bounds the per-axis offset applied by SampleNearRoute.
// 0.001° is roughly 110 m of latitude; longitude is not scaled by cos(lat).
const JitterDegrees = 0.001

var ErrNoWaypoints = errors.New("route has no waypoints")

// Rand is the subset of *rand.Rand (math/rand/v2) the generators draw from.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// SampleNearRoute picks a random waypoint of r and jitters both axes
// independently by up to JitterDegrees.
func SampleNearRoute(rng Rand, r Route) (SampledPosition, error) {
	if len(r.Waypoints) == 0 {
		return SampledPosition{}, ErrNoWaypoints
	}
	w := r.Waypoints[rng.IntN(len(r.Waypoints))]
	w.Lat += (rng.Float64() - 0.5) * 2 * JitterDegrees
	w.Lng += (rng.Float64() - 0.5) * 2 * JitterDegrees
	return SampledPosition{Waypoint: w, RouteID: r.ID, Category: r.Category}, nil
}

// PlaceOnRoute pins a vehicle to a random waypoint of r and returns the
// bearing toward the following waypoint, wrapping to the first one at the
// end of the path. Single-point routes get a random bearing.
func PlaceOnRoute(rng Rand, r Route) (Waypoint, float64, error) {
	n := len(r.Waypoints)
	if n == 0 {
		return Waypoint{}, 0, ErrNoWaypoints
	}
	i := rng.IntN(n)
	cur := r.Waypoints[i]
	if n == 1 {
		return cur, rng.Float64() * 360, nil
	}
	next := r.Waypoints[(i+1)%n]
	return cur, InitialBearing(cur, next), nil
}

// InitialBearing returns the great-circle initial bearing from a to b in
// degrees clockwise from true north, normalized to [0, 360).
func InitialBearing(a, b Waypoint) float64 {
	return normalizeDeg(orbgeo.Bearing(a.Point(), b.Point()))
}

// DistanceMeters is the great-circle distance between two waypoints.
func DistanceMeters(a, b Waypoint) float64 {
	return orbgeo.Distance(a.Point(), b.Point())
}

func normalizeDeg(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	// d+360 can round up to exactly 360 for tiny negative inputs
	if d >= 360 {
		d = 0
	}
	return d
}
