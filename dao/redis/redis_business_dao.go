package redis

import (
	"encoding/json"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"terre-server/config"
	"terre-server/db"
	"terre-server/models/business"
)

// NearbyBusiness is a geo index hit.
type NearbyBusiness struct {
	Business   business.Business `json:"business"`
	DistanceKm float64           `json:"distance_km"`
}

// RedisBusinessDAO keeps the geo index of businesses with usable coordinates.
type RedisBusinessDAO struct {
	client db.RedisClient
}

// NewRedisBusinessDAO initializes a RedisBusinessDAO with the Redis client.
func NewRedisBusinessDAO(client db.RedisClient) *RedisBusinessDAO {
	return &RedisBusinessDAO{client: client}
}

func memberKey(id string) string {
	return fmt.Sprintf(config.BUSINESSES_GEO_MEMBER_FORMAT_V1, id)
}

// UpsertBusiness indexes the business. Businesses without finite coordinates
// are not indexed and reported as skipped.
func (dao *RedisBusinessDAO) UpsertBusiness(b business.Business) (indexed bool, err error) {
	lat, lng, ok := b.Coordinates()
	if !ok {
		return false, nil
	}
	ctx := dao.client.GetContext()
	if err := dao.client.AddLocationWithJSON(ctx, config.BUSINESSES_GEO_KEY_V1, memberKey(b.ID), lat, lng, b); err != nil {
		return false, fmt.Errorf("[RedisBusinessDAO] failed to index business %s: %w", b.ID, err)
	}
	return true, nil
}

// ReplaceAll drops the current index and indexes the given list.
// Per-business failures are logged and skipped.
func (dao *RedisBusinessDAO) ReplaceAll(businesses []business.Business) (int, error) {
	keys, err := dao.client.Keys(memberKey("*"))
	if err != nil {
		return 0, fmt.Errorf("[RedisBusinessDAO] failed to list indexed businesses: %w", err)
	}
	keys = append(keys, config.BUSINESSES_GEO_KEY_V1)
	if err := dao.client.Del(keys...); err != nil {
		return 0, fmt.Errorf("[RedisBusinessDAO] failed to clear index: %w", err)
	}

	indexed := 0
	for _, b := range businesses {
		ok, err := dao.UpsertBusiness(b)
		if err != nil {
			log.Warnf("%v", err)
			continue
		}
		if !ok {
			log.Debugf("[RedisBusinessDAO] Business %s has no valid coordinates, not indexed", b.ID)
			continue
		}
		indexed++
	}
	return indexed, nil
}

// GetNearbyBusinesses retrieves businesses within radius km, nearest first.
func (dao *RedisBusinessDAO) GetNearbyBusinesses(lat, lon, radius float64) ([]NearbyBusiness, error) {
	members, err := dao.client.GetLocationsWithinRadius(config.BUSINESSES_GEO_KEY_V1, lat, lon, radius)
	if err != nil {
		return nil, fmt.Errorf("[RedisBusinessDAO] failed to get businesses: %w", err)
	}

	nearby := make([]NearbyBusiness, 0, len(members))
	for _, m := range members {
		var b business.Business
		if err := json.Unmarshal([]byte(m.JSON), &b); err != nil {
			return nil, fmt.Errorf("failed to unmarshal business JSON: %w", err)
		}
		nearby = append(nearby, NearbyBusiness{Business: b, DistanceKm: m.DistanceKm})
	}
	return nearby, nil
}

// ListIndexedIDs returns the ids currently present in the geo index.
func (dao *RedisBusinessDAO) ListIndexedIDs() ([]string, error) {
	keys, err := dao.client.Keys(memberKey("*"))
	if err != nil {
		return nil, fmt.Errorf("failed to list business geo keys: %w", err)
	}
	prefix := memberKey("")
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, prefix))
	}
	return ids, nil
}
