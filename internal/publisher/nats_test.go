package publisher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubject(t *testing.T) {
	tests := []struct {
		name                   string
		prefix, collection, id string
		expected               string
	}{
		{name: "plain", prefix: "ipara.seed", collection: "driver_locations", id: "mock_bus_0", expected: "ipara.seed.driver_locations.mock_bus_0"},
		{name: "trailing dot prefix", prefix: "ipara.seed.", collection: "routes", id: "R2", expected: "ipara.seed.routes.R2"},
		{name: "unsafe id", prefix: "x", collection: "routes", id: "a.b *>c", expected: "x.routes.a_b___c"},
		{name: "empty id", prefix: "x", collection: "routes", id: " ", expected: "x.routes._"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Subject(tt.prefix, tt.collection, tt.id))
		})
	}
}
