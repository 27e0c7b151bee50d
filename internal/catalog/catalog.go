// Package catalog holds the PUV route tables the seed jobs publish and
// anchor synthetic records to.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"ipara-seeder/internal/geo"
)

//go:embed catalog.yaml
var embedded []byte

// PUV types served by the catalogue.
const (
	Jeepney  = "Jeepney"
	Bus      = "Bus"
	Multicab = "Multicab"
	Motorela = "Motorela"
)

type Route struct {
	ID                  string         `yaml:"id" validate:"required"`
	Name                string         `yaml:"name" validate:"required"`
	Description         string         `yaml:"description"`
	PUVType             string         `yaml:"puvType" validate:"oneof=Jeepney Bus Multicab Motorela"`
	RouteCode           string         `yaml:"routeCode" validate:"required"`
	StartPointName      string         `yaml:"startPointName"`
	EndPointName        string         `yaml:"endPointName"`
	EstimatedTravelTime int            `yaml:"estimatedTravelTime" validate:"gte=0"` // minutes
	FarePrice           float64        `yaml:"farePrice" validate:"gte=0"`
	ColorValue          uint32         `yaml:"colorValue"` // ARGB
	IsActive            bool           `yaml:"isActive"`
	Loop                bool           `yaml:"loop"`
	Waypoints           []geo.Waypoint `yaml:"waypoints" validate:"min=1,dive"`
}

// Geo returns the geometry view used by the sample generators.
func (r Route) Geo() geo.Route {
	return geo.Route{ID: r.ID, Name: r.Name, Category: r.PUVType, Waypoints: r.Waypoints}
}

type Catalog struct {
	Routes         []Route `yaml:"routes" validate:"dive"`
	CommuterRoutes []Route `yaml:"commuterRoutes" validate:"dive"`
	DriverRoutes   []Route `yaml:"driverRoutes" validate:"dive"`
}

// Default parses the embedded catalogue.
func Default() (*Catalog, error) {
	return Parse(embedded)
}

// Parse decodes and validates a YAML catalogue.
func Parse(b []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks field constraints and that every route flagged as a loop
// closes on its first waypoint.
func (c *Catalog) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid catalog: %w", err)
	}
	var errs []string
	check := func(set string, routes []Route) {
		seen := make(map[string]bool, len(routes))
		for _, r := range routes {
			if seen[r.ID] {
				errs = append(errs, fmt.Sprintf("%s: duplicate route id %q", set, r.ID))
			}
			seen[r.ID] = true
			if r.Loop && !r.Geo().IsClosed() {
				errs = append(errs, fmt.Sprintf("%s: loop route %q does not end at its first waypoint", set, r.ID))
			}
		}
	}
	check("routes", c.Routes)
	check("commuterRoutes", c.CommuterRoutes)
	check("driverRoutes", c.DriverRoutes)
	if len(errs) > 0 {
		return fmt.Errorf("invalid catalog:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// PUVTypes returns the distinct vehicle classes of routes in first-seen order.
func PUVTypes(routes []Route) []string {
	var out []string
	seen := map[string]bool{}
	for _, r := range routes {
		if !seen[r.PUVType] {
			seen[r.PUVType] = true
			out = append(out, r.PUVType)
		}
	}
	return out
}
