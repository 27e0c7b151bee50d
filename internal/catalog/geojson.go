package catalog

import (
	"fmt"

	"github.com/paulmach/orb/geojson"
)

// FeatureCollection renders routes as GeoJSON line strings carrying their
// display metadata as properties.
func FeatureCollection(routes []Route) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, r := range routes {
		f := geojson.NewFeature(r.Geo().LineString())
		f.ID = r.RouteCode
		f.Properties["name"] = r.Name
		f.Properties["puvType"] = r.PUVType
		f.Properties["routeCode"] = r.RouteCode
		if r.ColorValue != 0 {
			// drop the alpha byte for web consumers
			f.Properties["stroke"] = fmt.Sprintf("#%06X", r.ColorValue&0xFFFFFF)
		}
		if r.FarePrice > 0 {
			f.Properties["farePrice"] = r.FarePrice
		}
		fc.Append(f)
	}
	return fc
}
