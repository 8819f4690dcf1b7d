package services

import (
	"sync"

	"github.com/jasonlvhit/gocron"
	log "github.com/sirupsen/logrus"

	"terre-server/directory"
	"terre-server/store"
)

// StatusRefresherService re-evaluates the open/closed badges on a fixed
// interval by ticking every session's clock. The same job sweeps idle
// sessions.
type StatusRefresherService struct {
	businessService *BusinessService
	sessionService  *SessionService

	mu        sync.Mutex
	scheduler *gocron.Scheduler
	stop      chan bool
}

// NewStatusRefresherService constructs a new refresher with dependencies.
func NewStatusRefresherService(
	businessService *BusinessService,
	sessionService *SessionService,
) *StatusRefresherService {
	return &StatusRefresherService{
		businessService: businessService,
		sessionService:  sessionService,
	}
}

// StartPeriodicJob launches the background job at the given interval in seconds.
func (sr *StatusRefresherService) StartPeriodicJob(intervalSeconds int) {
	if intervalSeconds <= 0 {
		intervalSeconds = 60
	}

	sr.mu.Lock()
	defer sr.mu.Unlock()
	if sr.scheduler != nil {
		return
	}

	sr.scheduler = gocron.NewScheduler()
	sr.scheduler.Every(uint64(intervalSeconds)).Seconds().Do(sr.Refresh)
	sr.stop = sr.scheduler.Start()
	log.Infof("[StatusRefresherService] Refreshing open status every %ds", intervalSeconds)
}

// Stop halts the periodic job.
func (sr *StatusRefresherService) Stop() {
	sr.mu.Lock()
	defer sr.mu.Unlock()
	if sr.scheduler == nil {
		return
	}
	sr.scheduler.Clear()
	close(sr.stop)
	sr.scheduler = nil
	sr.stop = nil
}

// Refresh runs one tick: every session recomputes its badges at the same
// instant, then idle sessions are dropped.
func (sr *StatusRefresherService) Refresh() {
	now := sr.businessService.Now()
	ticked := sr.sessionService.Broadcast(store.Tick{Now: now})

	if sr.businessService.Loaded() {
		businesses := sr.businessService.All()
		log.Debugf("[StatusRefresherService] %d of %d businesses open at %s, %d sessions ticked",
			directory.CountOpen(businesses, now), len(businesses), now.Format("Mon 15:04"), ticked)
	}

	sr.sessionService.SweepIdle(now)
}
