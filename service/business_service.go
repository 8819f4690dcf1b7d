package services

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"terre-server/dao/redis"
	"terre-server/directory"
	"terre-server/models/business"
)

// BusinessService owns the business list for the lifetime of the process.
// The list is loaded once and never modified afterwards.
type BusinessService struct {
	provider    *BusinessProvider
	businessDao *redis.RedisBusinessDAO
	location    *time.Location

	mu           sync.RWMutex
	businesses   []business.Business
	loaded       bool
	usedFallback bool
}

// NewBusinessService constructs a new BusinessService with Redis dependency injection.
func NewBusinessService(
	provider *BusinessProvider,
	businessDao *redis.RedisBusinessDAO,
	location *time.Location) *BusinessService {

	if location == nil {
		location = time.Local
	}
	return &BusinessService{
		provider:    provider,
		businessDao: businessDao,
		location:    location,
	}
}

// Load fetches the list and rebuilds the geo index. Indexing failures are
// logged; the list is usable either way.
func (bs *BusinessService) Load(ctx context.Context) {
	list, usedFallback := bs.provider.Load(ctx)

	bs.mu.Lock()
	bs.businesses = list
	bs.usedFallback = usedFallback
	bs.loaded = true
	bs.mu.Unlock()

	indexed, err := bs.businessDao.ReplaceAll(list)
	if err != nil {
		log.Warnf("[BusinessService] Geo index not rebuilt: %v", err)
		return
	}
	log.Infof("[BusinessService] Indexed %d of %d businesses (fallback=%v)", indexed, len(list), usedFallback)
}

// All returns the loaded list. Callers must treat it as read-only.
func (bs *BusinessService) All() []business.Business {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return bs.businesses
}

func (bs *BusinessService) Loaded() bool {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return bs.loaded
}

func (bs *BusinessService) UsedFallback() bool {
	bs.mu.RLock()
	defer bs.mu.RUnlock()
	return bs.usedFallback
}

func (bs *BusinessService) GetBusiness(id string) *business.Business {
	return directory.FindByID(bs.All(), id)
}

func (bs *BusinessService) GetBusinessesByCategory(category string) []business.Business {
	return directory.FilterByCategory(bs.All(), category)
}

// GetBusinessesNearby queries the geo index, radius in km.
func (bs *BusinessService) GetBusinessesNearby(lat, lon, radius float64) ([]redis.NearbyBusiness, error) {
	return bs.businessDao.GetNearbyBusinesses(lat, lon, radius)
}

// IndexedCount returns how many businesses the geo index currently holds.
func (bs *BusinessService) IndexedCount() (int, error) {
	ids, err := bs.businessDao.ListIndexedIDs()
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

// Now returns the current time in the network's time zone.
func (bs *BusinessService) Now() time.Time {
	return time.Now().In(bs.location)
}
