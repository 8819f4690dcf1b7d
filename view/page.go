package view

import (
	"terre-server/store"
)

// PageViewModel is everything the shell renders for one session.
type PageViewModel struct {
	List         ListViewModel    `json:"list"`
	Map          MapViewModel     `json:"map"`
	Detail       *DetailViewModel `json:"detail,omitempty"`
	ChatOpen     bool             `json:"chatOpen"`
	Loading      bool             `json:"loading"`
	UsedFallback bool             `json:"usedFallback"`
}

func Page(s store.State) PageViewModel {
	page := PageViewModel{
		List:         ListView(s),
		Map:          MapView(s),
		ChatOpen:     s.ChatOpen,
		Loading:      s.Loading,
		UsedFallback: s.UsedFallback,
	}
	if selected := s.Selected(); selected != nil {
		detail := DetailView(*selected)
		page.Detail = &detail
	}
	return page
}
