package geo

import "github.com/paulmach/orb"

// Waypoint is a WGS-84 coordinate in decimal degrees.
type Waypoint struct {
	Lat float64 `yaml:"lat" json:"lat" validate:"latitude"`
	Lng float64 `yaml:"lng" json:"lng" validate:"longitude"`
}

// Point returns the waypoint as an orb point (lon, lat order).
func (w Waypoint) Point() orb.Point { return orb.Point{w.Lng, w.Lat} }

type Route struct {
	ID        string
	Name      string
	Category  string // vehicle class, e.g. Jeepney or Bus
	Waypoints []Waypoint
}

// LineString returns the route path in orb order.
func (r Route) LineString() orb.LineString {
	ls := make(orb.LineString, 0, len(r.Waypoints))
	for _, w := range r.Waypoints {
		ls = append(ls, w.Point())
	}
	return ls
}

// IsClosed reports whether the path ends where it starts.
func (r Route) IsClosed() bool {
	n := len(r.Waypoints)
	return n > 0 && r.Waypoints[0] == r.Waypoints[n-1]
}

type SampledPosition struct {
	Waypoint
	RouteID  string
	Category string
}
