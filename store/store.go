// Package store is the coordinator of a directory session. It owns the
// selection, the category filter and the panel flags, and notifies
// subscribers after every change.
package store

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"terre-server/config"
	"terre-server/directory"
	"terre-server/models/business"
)

// State is the full coordinator state. Businesses is shared and read-only.
type State struct {
	Businesses    []business.Business
	Category      string
	SelectedID    string
	ListOpen      bool
	ChatOpen      bool
	Loading       bool
	UsedFallback  bool
	ViewportWidth int
	Now           time.Time
}

// InitialState is the state before the provider settles. A width of zero
// means the viewport is unknown and the list starts open.
func InitialState(width int, now time.Time) State {
	return State{
		Category:      business.CategoryAll,
		ListOpen:      width == 0 || width > config.MOBILE_BREAKPOINT_PX,
		Loading:       true,
		ViewportWidth: width,
		Now:           now,
	}
}

// Selected returns the selected business or nil.
func (s State) Selected() *business.Business {
	if s.SelectedID == "" {
		return nil
	}
	return directory.FindByID(s.Businesses, s.SelectedID)
}

// Visible returns the businesses that pass the category filter.
func (s State) Visible() []business.Business {
	return directory.FilterByCategory(s.Businesses, s.Category)
}

func (s State) narrow() bool {
	return s.ViewportWidth > 0 && s.ViewportWidth < config.MOBILE_BREAKPOINT_PX
}

// Reduce applies one event. It never mutates the business list.
func Reduce(s State, e Event) State {
	switch ev := e.(type) {
	case Loaded:
		s.Businesses = ev.Businesses
		s.UsedFallback = ev.UsedFallback
		s.Loading = false
		if s.Selected() == nil {
			s.SelectedID = ""
		}

	case Select:
		b := directory.FindByID(s.Businesses, ev.BusinessID)
		if b == nil {
			return s
		}
		if ev.Source == SourceList {
			if directory.FindByID(s.Visible(), ev.BusinessID) == nil {
				return s
			}
			if s.narrow() {
				s.ListOpen = false
			}
		}
		s.SelectedID = b.ID

	case CloseDetail:
		s.SelectedID = ""

	case ChangeCategory:
		category := ev.Category
		if business.IsAll(category) {
			category = business.CategoryAll
		}
		s.Category = category
		if sel := s.Selected(); sel != nil && !business.IsAll(category) && string(sel.Category) != category {
			s.SelectedID = ""
		}

	case ToggleList:
		s.ListOpen = !s.ListOpen

	case Resize:
		wasWide := s.ViewportWidth > config.MOBILE_BREAKPOINT_PX
		s.ViewportWidth = ev.Width
		if ev.Width > config.MOBILE_BREAKPOINT_PX {
			s.ListOpen = true
		} else if wasWide && s.narrow() {
			s.ListOpen = false
		}

	case OpenChat:
		s.ChatOpen = true

	case CloseChat:
		s.ChatOpen = false

	case Tick:
		s.Now = ev.Now
	}
	return s
}

type subscriber struct {
	id int
	fn func(State)
}

// Store serializes dispatches for one session.
type Store struct {
	mu          sync.Mutex
	state       State
	subscribers []subscriber
	nextID      int
}

func NewStore(initial State) *Store {
	return &Store{state: initial}
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch reduces the event and then calls every subscriber, in the order
// they subscribed, with the new state. Subscribers run outside the lock and
// may dispatch again.
func (s *Store) Dispatch(e Event) State {
	s.mu.Lock()
	next := Reduce(s.state, e)
	s.state = next
	subs := make([]subscriber, len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	log.Debugf("[Store] Dispatched %s (selected=%q, category=%q)", Name(e), next.SelectedID, next.Category)

	for _, sub := range subs {
		sub.fn(next)
	}
	return next
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}
