package db

import "context"

// GeoMember is one hit of a radius search with the JSON stored for it.
type GeoMember struct {
	Name       string
	DistanceKm float64
	JSON       string
}

// RedisClient defines the methods available in the RedisClient
type RedisClient interface {
	Set(key, value string) error
	Get(key string) (string, error)
	Del(keys ...string) error
	Keys(pattern string) ([]string, error)
	AddLocationWithJSON(ctx context.Context, geoKey, memberKey string, lat, lon float64, data interface{}) error
	// GetLocationsWithinRadius returns members nearest first. Radius is in km.
	GetLocationsWithinRadius(key string, lat, lon, radius float64) ([]GeoMember, error)
	GetContext() context.Context
	Ping() error
}
