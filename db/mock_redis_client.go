package db

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"sync"

	"terre-server/models/geo"
)

// MockRedisClient simulates a Redis client for testing purposes.
type MockRedisClient struct {
	data    map[string]string
	geoData map[string]map[string]geo.Point
	mu      sync.RWMutex
	context context.Context
}

// NewMockRedisClient initializes a new MockRedisClient.
func NewMockRedisClient(ctx context.Context) *MockRedisClient {
	return &MockRedisClient{
		data:    make(map[string]string),
		geoData: make(map[string]map[string]geo.Point),
		context: ctx,
	}
}

func (m *MockRedisClient) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MockRedisClient) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, exists := m.data[key]
	if !exists {
		return "", fmt.Errorf("key not found: %s", key)
	}
	return value, nil
}

func (m *MockRedisClient) Del(keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
		delete(m.geoData, key)
	}
	return nil
}

// Keys supports the glob patterns Redis KEYS understands for the common cases.
func (m *MockRedisClient) Keys(pattern string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var keys []string
	for key := range m.data {
		if ok, _ := path.Match(pattern, key); ok {
			keys = append(keys, key)
		}
	}
	for key := range m.geoData {
		if ok, _ := path.Match(pattern, key); ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MockRedisClient) AddLocationWithJSON(ctx context.Context, geoKey, memberKey string, lat, lon float64, data interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, exists := m.geoData[geoKey]; !exists {
		m.geoData[geoKey] = make(map[string]geo.Point)
	}
	m.geoData[geoKey][memberKey] = geo.Point{Lat: lat, Lng: lon}
	m.data[memberKey] = string(jsonData)
	return nil
}

// GetLocationsWithinRadius filters by great-circle distance, nearest first.
func (m *MockRedisClient) GetLocationsWithinRadius(key string, lat, lon, radius float64) ([]GeoMember, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	origin := geo.Point{Lat: lat, Lng: lon}
	var results []GeoMember
	for member, point := range m.geoData[key] {
		dist := geo.DistanceKm(origin, point)
		if !(dist <= radius) {
			continue
		}
		data, exists := m.data[member]
		if !exists {
			continue
		}
		results = append(results, GeoMember{Name: member, DistanceKm: dist, JSON: data})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].DistanceKm == results[j].DistanceKm {
			return results[i].Name < results[j].Name
		}
		return results[i].DistanceKm < results[j].DistanceKm
	})
	return results, nil
}

func (m *MockRedisClient) GetContext() context.Context {
	return m.context
}

func (m *MockRedisClient) Ping() error {
	return nil
}
