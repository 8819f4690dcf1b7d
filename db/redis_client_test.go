package db_test

import (
	"context"
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terre-server/db"
)

func TestRedisClient_SetGetDel(t *testing.T) {
	tests := []struct {
		name   string
		client db.RedisClient
	}{
		{"MockRedisClient", db.NewMockRedisClient(context.Background())},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.NoError(t, test.client.Set("test-key", "test-value"))

			retrieved, err := test.client.Get("test-key")
			require.NoError(t, err)
			assert.Equal(t, "test-value", retrieved)

			require.NoError(t, test.client.Del("test-key"))
			_, err = test.client.Get("test-key")
			assert.Error(t, err)
		})
	}
}

func TestRedisClient_GetLocationsWithinRadius(t *testing.T) {
	client := db.NewMockRedisClient(context.Background())
	ctx := context.Background()

	// Cormons, Prepotto (~10km away) and Sauris (~70km away).
	require.NoError(t, client.AddLocationWithJSON(ctx, "geo", "cormons", 45.9566, 13.4702, map[string]string{"id": "cormons"}))
	require.NoError(t, client.AddLocationWithJSON(ctx, "geo", "prepotto", 46.0445, 13.4764, map[string]string{"id": "prepotto"}))
	require.NoError(t, client.AddLocationWithJSON(ctx, "geo", "sauris", 46.4655, 12.7087, map[string]string{"id": "sauris"}))

	results, err := client.GetLocationsWithinRadius("geo", 45.9566, 13.4702, 25)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "cormons", results[0].Name)
	assert.Equal(t, "prepotto", results[1].Name)
	assert.Less(t, results[0].DistanceKm, results[1].DistanceKm)

	var payload map[string]string
	require.NoError(t, json.Unmarshal([]byte(results[1].JSON), &payload))
	assert.Equal(t, "prepotto", payload["id"])

	results, err = client.GetLocationsWithinRadius("geo", math.NaN(), 13.4702, 25)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRedisClient_Keys(t *testing.T) {
	client := db.NewMockRedisClient(context.Background())
	require.NoError(t, client.Set("businesses_geo_member_v1:a", "{}"))
	require.NoError(t, client.Set("businesses_geo_member_v1:b", "{}"))
	require.NoError(t, client.Set("other", "{}"))

	keys, err := client.Keys("businesses_geo_member_v1:*")

	require.NoError(t, err)
	assert.Equal(t, []string{"businesses_geo_member_v1:a", "businesses_geo_member_v1:b"}, keys)
}

func TestRedisClient_Ping(t *testing.T) {
	assert.NoError(t, db.NewMockRedisClient(context.Background()).Ping())
}
