package server

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type BusinessRoutes interface {
	Ping(w http.ResponseWriter, r *http.Request)
	Ready(w http.ResponseWriter, r *http.Request)
	GetSnapshot(w http.ResponseWriter, r *http.Request)
	GetBusinesses(w http.ResponseWriter, r *http.Request)
	GetBusinessesNearby(w http.ResponseWriter, r *http.Request)
	GetBusiness(w http.ResponseWriter, r *http.Request)
}

type SessionRoutes interface {
	CreateSession(w http.ResponseWriter, r *http.Request)
	GetView(w http.ResponseWriter, r *http.Request)
	PostEvent(w http.ResponseWriter, r *http.Request)
	GetMap(w http.ResponseWriter, r *http.Request)
	GetPopular(w http.ResponseWriter, r *http.Request)
}

type ConciergeRoutes interface {
	Open(w http.ResponseWriter, r *http.Request)
	Close(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	PostMessage(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	businessHandler  BusinessRoutes
	sessionHandler   SessionRoutes
	conciergeHandler ConciergeRoutes
	router           *mux.Router
	staticDir        string
}

// NewRouter creates a router with the app’s routes. staticDir, when it
// exists, is served for every path no route claims.
func NewRouter(
	businessHandler BusinessRoutes,
	sessionHandler SessionRoutes,
	conciergeHandler ConciergeRoutes,
	router *mux.Router,
	staticDir string) *Router {
	return &Router{
		businessHandler:  businessHandler,
		sessionHandler:   sessionHandler,
		conciergeHandler: conciergeHandler,
		router:           router,
		staticDir:        staticDir,
	}
}

func (r *Router) RegisterRoutes() {
	r.router.HandleFunc("/ping", r.businessHandler.Ping).Methods("GET")
	r.router.HandleFunc("/ready", r.businessHandler.Ready).Methods("GET")
	r.router.HandleFunc("/data/companies.json", r.businessHandler.GetSnapshot).Methods("GET")

	// expects ?category={category}, "Tutte" or "all" for every category
	r.router.HandleFunc("/v1/businesses", r.businessHandler.GetBusinesses).Methods("GET")
	// expects ?lat={latitude(float)}&lon={longitude(float)}&radius={radius km(float)}
	r.router.HandleFunc("/v1/businesses/nearby", r.businessHandler.GetBusinessesNearby).Methods("GET")
	r.router.HandleFunc("/v1/businesses/{id}", r.businessHandler.GetBusiness).Methods("GET")

	r.router.HandleFunc("/v1/sessions", r.sessionHandler.CreateSession).Methods("POST")
	r.router.HandleFunc("/v1/sessions/{id}/view", r.sessionHandler.GetView).Methods("GET")
	r.router.HandleFunc("/v1/sessions/{id}/events", r.sessionHandler.PostEvent).Methods("POST")
	r.router.HandleFunc("/v1/sessions/{id}/map.html", r.sessionHandler.GetMap).Methods("GET")
	// expects ?limit={n}, 10 when omitted
	r.router.HandleFunc("/v1/popular", r.sessionHandler.GetPopular).Methods("GET")

	r.router.HandleFunc("/v1/sessions/{id}/concierge", r.conciergeHandler.Get).Methods("GET")
	r.router.HandleFunc("/v1/sessions/{id}/concierge/open", r.conciergeHandler.Open).Methods("POST")
	r.router.HandleFunc("/v1/sessions/{id}/concierge/close", r.conciergeHandler.Close).Methods("POST")
	r.router.HandleFunc("/v1/sessions/{id}/concierge/messages", r.conciergeHandler.PostMessage).Methods("POST")

	if r.staticDir != "" {
		if info, err := os.Stat(r.staticDir); err == nil && info.IsDir() {
			r.router.PathPrefix("/").Handler(http.FileServer(http.Dir(r.staticDir))).Methods("GET")
		} else {
			log.Infof("[Router] Static dir %q not found, serving the API only", r.staticDir)
		}
	}
}
