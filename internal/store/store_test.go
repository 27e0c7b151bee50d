package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genproto/googleapis/type/latlng"
)

func TestMemory_UpsertMerges(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Upsert(ctx, "routes", "R2", Document{"name": "old", "farePrice": 12.0}))
	require.NoError(t, m.Upsert(ctx, "routes", "R2", Document{"name": "new", "isActive": true}))

	assert.Equal(t, []string{"R2"}, m.IDs("routes"))
	doc, ok := m.Get("routes", "R2")
	require.True(t, ok)
	assert.Equal(t, "new", doc["name"])
	assert.Equal(t, 12.0, doc["farePrice"])
	assert.Equal(t, true, doc["isActive"])
}

func TestMemory_ServerTimestamp(t *testing.T) {
	m := NewMemory()
	at := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return at }

	require.NoError(t, m.Upsert(context.Background(), "c", "x", Document{"updatedAt": ServerTimestamp}))
	doc, _ := m.Get("c", "x")
	assert.Equal(t, at, doc["updatedAt"])
}

func TestMemory_DeleteWhere(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	seed := map[string]Document{
		"real_1":     {"isMockData": false, "puvType": "Bus"},
		"mock_bus_0": {"isMockData": true, "puvType": "Bus"},
		"mock_bus_1": {"isMockData": true, "puvType": "Bus"},
		"mock_mtr_2": {"isMockData": true, "puvType": "Motorela"},
		"legacy":     {"puvType": "Bus"},
	}
	for id, d := range seed {
		require.NoError(t, m.Upsert(ctx, "driver_locations", id, d))
	}

	n, err := m.DeleteWhere(ctx, "driver_locations", Eq("isMockData", true), Eq("puvType", "Bus"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"legacy", "mock_mtr_2", "real_1"}, m.IDs("driver_locations"))

	n, err = m.DeleteWhere(ctx, "driver_locations")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Empty(t, m.IDs("driver_locations"))

	n, err = m.DeleteWhere(ctx, "missing")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMemory_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewMemory().Upsert(ctx, "c", "x", Document{"a": 1})
	var opErr *OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "upsert", opErr.Op)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, "upsert c/x: context canceled", err.Error())
}

func TestEncodeDocument(t *testing.T) {
	data, stamped, err := encodeDocument(Document{
		"location":    GeoPoint{Lat: 8.48, Lng: 124.65},
		"lastUpdated": ServerTimestamp,
		"isMockData":  true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"lastUpdated"}, stamped)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(data), &got))
	assert.Equal(t, map[string]any{
		"location":   map[string]any{"latitude": 8.48, "longitude": 124.65},
		"isMockData": true,
	}, got)
}

func TestFilterJSON(t *testing.T) {
	s, err := filterJSON(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", s)

	s, err = filterJSON([]Filter{Eq("isMockData", true), Eq("puvType", "Bus")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"isMockData":true,"puvType":"Bus"}`, s)
}

func TestFirestoreData(t *testing.T) {
	out := firestoreData(Document{
		"location":    GeoPoint{Lat: 8.5, Lng: 124.6},
		"lastUpdated": ServerTimestamp,
		"name":        "x",
	})
	assert.Equal(t, &latlng.LatLng{Latitude: 8.5, Longitude: 124.6}, out["location"])
	assert.Equal(t, firestore.ServerTimestamp, out["lastUpdated"])
	assert.Equal(t, "x", out["name"])
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Options{Driver: "mongo"})
	assert.EqualError(t, err, `unknown store driver "mongo"`)
}

func TestOpen_Memory(t *testing.T) {
	s, err := Open(context.Background(), Options{Driver: DriverMemory})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)
	assert.NoError(t, s.Close())
}
