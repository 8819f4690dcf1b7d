package handlers

import (
	"math"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"terre-server/config"
	"terre-server/dao/redis"
	"terre-server/models/business"
	"terre-server/models/geo"
	services "terre-server/service"
	"terre-server/view"
)

type BusinessListResponse struct {
	Category     string              `json:"category"`
	UsedFallback bool                `json:"usedFallback"`
	Businesses   []business.Business `json:"businesses"`
}

type NearbyResponse struct {
	Businesses []redis.NearbyBusiness `json:"businesses"`
}

type ReadyResponse struct {
	Loaded       bool `json:"loaded"`
	UsedFallback bool `json:"usedFallback"`
	Businesses   int  `json:"businesses"`
	Indexed      int  `json:"indexed"`
}

type BusinessHandler struct {
	businessService *services.BusinessService
	snapshot        []byte
	publishedPath   string
}

// NewBusinessHandler serves the directory. At the companies path a dataset
// published under publicDir wins over snapshot, the bundled one.
func NewBusinessHandler(businessService *services.BusinessService, snapshot []byte, publicDir string) *BusinessHandler {
	h := &BusinessHandler{businessService: businessService, snapshot: snapshot}
	if publicDir != "" {
		h.publishedPath = filepath.Join(publicDir, filepath.FromSlash(config.PUBLISHED_SNAPSHOT_FILE))
	}
	return h
}

// Ping handles GET /ping
func (h *BusinessHandler) Ping(w http.ResponseWriter, r *http.Request) {
	log.Debugf("[BusinessHandler] Pinging server")
	writeJSON(w, http.StatusOK, map[string]string{"status": "pong"})
}

// Ready handles GET /ready
func (h *BusinessHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if !h.businessService.Loaded() {
		writeJSON(w, http.StatusServiceUnavailable, ReadyResponse{})
		return
	}
	indexed, err := h.businessService.IndexedCount()
	if err != nil {
		log.Errorf("[BusinessHandler] Error reading geo index: %v", err)
		writeError(w, http.StatusServiceUnavailable, "geo index unavailable")
		return
	}
	writeJSON(w, http.StatusOK, ReadyResponse{
		Loaded:       true,
		UsedFallback: h.businessService.UsedFallback(),
		Businesses:   len(h.businessService.All()),
		Indexed:      indexed,
	})
}

// GetSnapshot handles GET /data/companies.json. The X-Snapshot-Source header
// tells a published dataset from the bundled one.
func (h *BusinessHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	body, source := h.snapshot, "bundled"
	if h.publishedPath != "" {
		published, err := os.ReadFile(h.publishedPath)
		switch {
		case err == nil:
			body, source = published, "published"
		case !os.IsNotExist(err):
			log.Warnf("[BusinessHandler] Published snapshot unreadable, serving bundled: %v", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Snapshot-Source", source)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Errorf("[BusinessHandler] Error writing snapshot: %v", err)
	}
}

// GetBusinesses handles GET /v1/businesses?category={category}
func (h *BusinessHandler) GetBusinesses(w http.ResponseWriter, r *http.Request) {
	if !h.businessService.Loaded() {
		writeError(w, http.StatusServiceUnavailable, "directory is loading")
		return
	}

	category := r.URL.Query().Get(CATEGORY_QUERY_ARG)
	if business.IsAll(category) {
		category = business.CategoryAll
	}
	writeJSON(w, http.StatusOK, BusinessListResponse{
		Category:     category,
		UsedFallback: h.businessService.UsedFallback(),
		Businesses:   h.businessService.GetBusinessesByCategory(category),
	})
}

// GetBusinessesNearby handles GET /v1/businesses/nearby?lat={lat}&lon={lon}&radius={km}
func (h *BusinessHandler) GetBusinessesNearby(w http.ResponseWriter, r *http.Request) {
	vals := r.URL.Query()
	lat, err := parseArgFloat64(vals, LAT_QUERY_ARG)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid argument "+LAT_QUERY_ARG)
		return
	}
	lon, err := parseArgFloat64(vals, LON_QUERY_ARG)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid argument "+LON_QUERY_ARG)
		return
	}
	if !geo.Valid(lat, lon) {
		writeError(w, http.StatusBadRequest, "Invalid coordinates")
		return
	}
	radius, err := parseArgFloat64(vals, RADIUS_QUERY_ARG)
	if err != nil || !(radius > 0) || math.IsInf(radius, 0) {
		writeError(w, http.StatusBadRequest, "Invalid argument "+RADIUS_QUERY_ARG)
		return
	}

	nearby, err := h.businessService.GetBusinessesNearby(lat, lon, radius)
	if err != nil {
		log.Errorf("[BusinessHandler] Error loading nearby businesses: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if nearby == nil {
		nearby = []redis.NearbyBusiness{}
	}
	writeJSON(w, http.StatusOK, NearbyResponse{Businesses: nearby})
}

// GetBusiness handles GET /v1/businesses/{id}
func (h *BusinessHandler) GetBusiness(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)[ID_PATH_VAR]
	b := h.businessService.GetBusiness(id)
	if b == nil {
		writeError(w, http.StatusNotFound, "business not found")
		return
	}
	writeJSON(w, http.StatusOK, view.DetailView(*b))
}
