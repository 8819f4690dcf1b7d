package store

import (
	"time"

	"terre-server/models/business"
)

// Event is an intent reported to the coordinator. Views never change state
// themselves; they dispatch one of the events below.
type Event interface {
	eventName() string
}

// Loaded delivers the business list once the provider settles.
type Loaded struct {
	Businesses   []business.Business
	UsedFallback bool
}

// Source tells where a selection came from.
type Source string

const (
	SourceList Source = "list"
	SourceMap  Source = "map"
)

// Select picks a business by id.
type Select struct {
	BusinessID string
	Source     Source
}

type CloseDetail struct{}

type ChangeCategory struct {
	Category string
}

type ToggleList struct{}

// Resize reports the client viewport width in CSS pixels.
type Resize struct {
	Width int
}

type OpenChat struct{}

type CloseChat struct{}

// Tick advances the clock used for the open/closed badges.
type Tick struct {
	Now time.Time
}

func (Loaded) eventName() string         { return "loaded" }
func (Select) eventName() string         { return "select" }
func (CloseDetail) eventName() string    { return "close" }
func (ChangeCategory) eventName() string { return "category" }
func (ToggleList) eventName() string     { return "toggle_list" }
func (Resize) eventName() string         { return "resize" }
func (OpenChat) eventName() string       { return "open_chat" }
func (CloseChat) eventName() string      { return "close_chat" }
func (Tick) eventName() string           { return "tick" }

// Name returns the wire name of an event, as used in logs and the events API.
func Name(e Event) string {
	if e == nil {
		return ""
	}
	return e.eventName()
}
