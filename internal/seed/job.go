package seed

import (
	"fmt"
	"strings"

	"ipara-seeder/internal/catalog"
	"ipara-seeder/internal/geo"
	"ipara-seeder/internal/store"
)

const (
	RoutesCollection    = "routes"
	CommutersCollection = "commuter_locations"
	DriversCollection   = "driver_locations"

	// MarkerField flags synthetic records so reruns only replace their own.
	MarkerField = "isMockData"
)

// Purge is one bulk delete issued before writing.
type Purge struct {
	Collection string
	Filters    []store.Filter
}

type Record struct {
	Collection string
	ID         string
	Doc        store.Document
}

// Batch groups the records generated for one route.
type Batch struct {
	Label   string
	Records []Record
}

type Job struct {
	Name    string
	Purges  []Purge
	Batches []Batch
}

func (j Job) Len() int {
	n := 0
	for _, b := range j.Batches {
		n += len(b.Records)
	}
	return n
}

// RoutesJob replaces the whole routes collection with the catalogue,
// keyed by route code.
func RoutesJob(routes []catalog.Route) Job {
	j := Job{
		Name:   "routes",
		Purges: []Purge{{Collection: RoutesCollection}},
	}
	for _, r := range routes {
		wps := make([]map[string]any, 0, len(r.Waypoints))
		for _, w := range r.Waypoints {
			wps = append(wps, map[string]any{"latitude": w.Lat, "longitude": w.Lng})
		}
		doc := store.Document{
			"name":                r.Name,
			"description":         r.Description,
			"puvType":             r.PUVType,
			"routeCode":           r.RouteCode,
			"waypoints":           wps,
			"startPointName":      r.StartPointName,
			"endPointName":        r.EndPointName,
			"estimatedTravelTime": r.EstimatedTravelTime,
			"farePrice":           r.FarePrice,
			"colorValue":          int64(r.ColorValue),
			"isActive":            true,
			"updatedAt":           store.ServerTimestamp,
		}
		j.Batches = append(j.Batches, Batch{
			Label:   fmt.Sprintf("route %s (%s)", r.RouteCode, r.Name),
			Records: []Record{{Collection: RoutesCollection, ID: r.RouteCode, Doc: doc}},
		})
	}
	return j
}

// CommutersJob places perRoute mock riders near each route.
func CommutersJob(rng geo.Rand, routes []catalog.Route, perRoute int) (Job, error) {
	j := Job{
		Name:   "commuters",
		Purges: []Purge{{Collection: CommutersCollection, Filters: []store.Filter{store.Eq(MarkerField, true)}}},
	}
	idx := 0
	for _, r := range routes {
		b := Batch{Label: fmt.Sprintf("%d commuters for %s route %s", perRoute, r.PUVType, r.RouteCode)}
		for i := 0; i < perRoute; i++ {
			name := PersonName(rng)
			pos, err := geo.SampleNearRoute(rng, r.Geo())
			if err != nil {
				return Job{}, fmt.Errorf("route %s: %w", r.ID, err)
			}
			id := fmt.Sprintf("mock_commuter_%s_%d", r.RouteCode, idx)
			idx++
			b.Records = append(b.Records, Record{Collection: CommutersCollection, ID: id, Doc: store.Document{
				"userId":            id,
				"userName":          name,
				"location":          store.GeoPoint{Lat: pos.Lat, Lng: pos.Lng},
				"isLocationVisible": true,
				"lastUpdated":       store.ServerTimestamp,
				"selectedPuvType":   pos.Category,
				"routeCode":         r.RouteCode,
				"routeId":           pos.RouteID,
				MarkerField:         true,
				"iconType":          "person",
			}})
		}
		j.Batches = append(j.Batches, b)
	}
	return j, nil
}

// DriversJob pins perRoute mock vehicles to each route, facing the next
// waypoint. Only the vehicle classes present in routes are purged.
func DriversJob(rng geo.Rand, routes []catalog.Route, perRoute int) (Job, error) {
	j := Job{Name: "drivers"}
	for _, t := range catalog.PUVTypes(routes) {
		j.Purges = append(j.Purges, Purge{
			Collection: DriversCollection,
			Filters:    []store.Filter{store.Eq(MarkerField, true), store.Eq("puvType", t)},
		})
	}
	idx := 0
	for _, r := range routes {
		b := Batch{Label: fmt.Sprintf("%d %s drivers for route %s", perRoute, r.PUVType, r.RouteCode)}
		for i := 0; i < perRoute; i++ {
			at, heading, err := geo.PlaceOnRoute(rng, r.Geo())
			if err != nil {
				return Job{}, fmt.Errorf("route %s: %w", r.ID, err)
			}
			kind := strings.ToLower(r.PUVType)
			id := fmt.Sprintf("mock_%s_%d", kind, idx)
			idx++
			b.Records = append(b.Records, Record{Collection: DriversCollection, ID: id, Doc: store.Document{
				"userId":            id,
				"location":          store.GeoPoint{Lat: at.Lat, Lng: at.Lng},
				"heading":           heading,
				"speed":             SpeedMps(rng),
				"isLocationVisible": true,
				"isOnline":          true,
				"lastUpdated":       store.ServerTimestamp,
				"puvType":           r.PUVType,
				"plateNumber":       PlateNumber(rng, r.PUVType),
				"capacity":          Capacity(rng, r.PUVType),
				"driverName":        PersonName(rng),
				"rating":            Rating(rng),
				"status":            Status(rng),
				"etaMinutes":        ETAMinutes(rng),
				MarkerField:         true,
				"routeId":           r.ID,
				"routeCode":         r.RouteCode,
				"iconType":          kind,
				"photoUrl":          PhotoURL(rng),
			}})
		}
		j.Batches = append(j.Batches, b)
	}
	return j, nil
}
