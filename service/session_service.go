package services

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"terre-server/models/business"
	"terre-server/service/concierge"
	"terre-server/store"
)

// Session is one browser's view of the directory: its coordinator store and
// its concierge conversation.
type Session struct {
	ID        string
	Store     *store.Store
	Concierge *concierge.Concierge
	CreatedAt time.Time

	mu         sync.Mutex
	lastActive time.Time
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastActive = now
	s.mu.Unlock()
}

func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// SessionService keeps the live sessions in memory.
type SessionService struct {
	businessService *BusinessService
	generator       concierge.Generator
	idleTimeout     time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session

	statsMu    sync.Mutex
	selections map[string]int
}

func NewSessionService(
	businessService *BusinessService,
	generator concierge.Generator,
	idleTimeout time.Duration) *SessionService {

	return &SessionService{
		businessService: businessService,
		generator:       generator,
		idleTimeout:     idleTimeout,
		sessions:        make(map[string]*Session),
		selections:      make(map[string]int),
	}
}

// Create starts a session for a viewport of the given width (0 if unknown).
// When the business list is already loaded the session starts with it.
func (ss *SessionService) Create(width int) *Session {
	now := ss.businessService.Now()
	st := store.NewStore(store.InitialState(width, now))
	if ss.businessService.Loaded() {
		st.Dispatch(store.Loaded{
			Businesses:   ss.businessService.All(),
			UsedFallback: ss.businessService.UsedFallback(),
		})
	}

	session := &Session{
		ID:        uuid.NewString(),
		Store:     st,
		CreatedAt: now,
	}
	session.Concierge = concierge.NewConcierge(ss.generator, func() []business.Business {
		return st.State().Businesses
	}, ss.businessService.Now)
	session.touch(now)

	st.Subscribe(ss.selectionObserver())

	ss.mu.Lock()
	ss.sessions[session.ID] = session
	ss.mu.Unlock()

	log.Infof("[SessionService] Created session %s (width=%d)", session.ID, width)
	return session
}

// Get returns a live session and marks it active.
func (ss *SessionService) Get(id string) (*Session, bool) {
	ss.mu.RLock()
	session, ok := ss.sessions[id]
	ss.mu.RUnlock()
	if ok {
		session.touch(ss.businessService.Now())
	}
	return session, ok
}

// GetOrCreate returns the session with id, or a new one when id is unknown.
func (ss *SessionService) GetOrCreate(id string, width int) (*Session, bool) {
	if session, ok := ss.Get(id); ok {
		return session, false
	}
	return ss.Create(width), true
}

func (ss *SessionService) Count() int {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return len(ss.sessions)
}

func (ss *SessionService) all() []*Session {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	out := make([]*Session, 0, len(ss.sessions))
	for _, s := range ss.sessions {
		out = append(out, s)
	}
	return out
}

// Broadcast dispatches the event into every live session.
func (ss *SessionService) Broadcast(e store.Event) int {
	sessions := ss.all()
	for _, s := range sessions {
		s.Store.Dispatch(e)
	}
	return len(sessions)
}

// PublishLoaded hands the freshly loaded list to sessions created before the
// load finished.
func (ss *SessionService) PublishLoaded() int {
	return ss.Broadcast(store.Loaded{
		Businesses:   ss.businessService.All(),
		UsedFallback: ss.businessService.UsedFallback(),
	})
}

// SweepIdle drops sessions idle for longer than the idle timeout. A busy
// concierge keeps its session alive.
func (ss *SessionService) SweepIdle(now time.Time) int {
	if ss.idleTimeout <= 0 {
		return 0
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()

	removed := 0
	for id, s := range ss.sessions {
		if s.Concierge.Busy() || now.Sub(s.LastActive()) < ss.idleTimeout {
			continue
		}
		delete(ss.sessions, id)
		removed++
	}
	if removed > 0 {
		log.Infof("[SessionService] Removed %d idle sessions", removed)
	}
	return removed
}

// selectionObserver counts how often each business is opened.
func (ss *SessionService) selectionObserver() func(store.State) {
	var mu sync.Mutex
	previous := ""
	return func(s store.State) {
		mu.Lock()
		changed := s.SelectedID != previous
		previous = s.SelectedID
		mu.Unlock()
		if !changed || s.SelectedID == "" {
			return
		}
		ss.statsMu.Lock()
		ss.selections[s.SelectedID]++
		ss.statsMu.Unlock()
	}
}

// SelectionCount is how many times a business was opened across sessions.
type SelectionCount struct {
	BusinessID string `json:"businessId"`
	Count      int    `json:"count"`
}

// TopSelections returns the most opened businesses, most opened first.
func (ss *SessionService) TopSelections(limit int) []SelectionCount {
	ss.statsMu.Lock()
	counts := make([]SelectionCount, 0, len(ss.selections))
	for id, n := range ss.selections {
		counts = append(counts, SelectionCount{BusinessID: id, Count: n})
	}
	ss.statsMu.Unlock()

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].BusinessID < counts[j].BusinessID
	})
	if limit > 0 && len(counts) > limit {
		counts = counts[:limit]
	}
	return counts
}
