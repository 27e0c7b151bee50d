package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Len(t, c.Routes, 9)
	assert.Len(t, c.CommuterRoutes, 8)
	assert.Len(t, c.DriverRoutes, 3)
	assert.Equal(t, []string{Bus, Multicab, Motorela}, PUVTypes(c.DriverRoutes))

	r2 := c.Routes[0]
	assert.Equal(t, "R2", r2.RouteCode)
	assert.Equal(t, uint32(0xFFFF6D00), r2.ColorValue)
	assert.Equal(t, 25, r2.EstimatedTravelTime)
	assert.Equal(t, 12.0, r2.FarePrice)
	assert.True(t, r2.IsActive)
	assert.Len(t, r2.Waypoints, 14)
}

func TestDefault_LoopRoutesClose(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	for _, set := range [][]Route{c.Routes, c.CommuterRoutes, c.DriverRoutes} {
		for _, r := range set {
			require.NotEmpty(t, r.Waypoints, r.ID)
			if r.Loop {
				first, last := r.Waypoints[0], r.Waypoints[len(r.Waypoints)-1]
				assert.Equalf(t, first, last, "route %s", r.ID)
			}
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "open loop",
			yaml: `
routes:
  - id: X
    name: X
    puvType: Bus
    routeCode: X
    loop: true
    waypoints:
      - {lat: 8.1, lng: 124.1}
      - {lat: 8.2, lng: 124.2}
`,
			want: "does not end at its first waypoint",
		},
		{
			name: "no waypoints",
			yaml: `
routes:
  - id: X
    name: X
    puvType: Bus
    routeCode: X
`,
			want: "Waypoints",
		},
		{
			name: "unknown vehicle class",
			yaml: `
driverRoutes:
  - id: X
    name: X
    puvType: Tricycle
    routeCode: X
    waypoints:
      - {lat: 8.1, lng: 124.1}
`,
			want: "PUVType",
		},
		{
			name: "latitude out of range",
			yaml: `
commuterRoutes:
  - id: X
    name: X
    puvType: Jeepney
    routeCode: X
    waypoints:
      - {lat: 98.1, lng: 124.1}
`,
			want: "Lat",
		},
		{
			name: "duplicate id",
			yaml: `
commuterRoutes:
  - {id: A, name: A, puvType: Jeepney, routeCode: A, waypoints: [{lat: 8, lng: 124}]}
  - {id: A, name: B, puvType: Jeepney, routeCode: B, waypoints: [{lat: 8, lng: 124}]}
`,
			want: "duplicate route id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestFeatureCollection(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	fc := FeatureCollection(c.Routes)
	require.Len(t, fc.Features, len(c.Routes))

	f := fc.Features[0]
	assert.Equal(t, "R2", f.ID)
	assert.Equal(t, "#FF6D00", f.Properties["stroke"])
	assert.Equal(t, "LineString", f.Geometry.GeoJSONType())

	b, err := json.Marshal(fc)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"type":"FeatureCollection"`)
	assert.Contains(t, string(b), `[124.64921,8.486261]`)
}
