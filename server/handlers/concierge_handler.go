package handlers

import (
	"context"
	"net/http"

	log "github.com/sirupsen/logrus"

	"terre-server/models/chat"
	"terre-server/models/geo"
	services "terre-server/service"
	"terre-server/service/concierge"
	"terre-server/store"
)

type ConciergeResponse struct {
	Transcript   []chat.Message          `json:"transcript"`
	Busy         bool                    `json:"busy"`
	Location     *geo.Point              `json:"location,omitempty"`
	QuickActions []concierge.QuickAction `json:"quickActions"`
}

// OpenConciergeRequest carries the browser geolocation read. Both fields are
// absent when the user denied it.
type OpenConciergeRequest struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type MessageRequest struct {
	Text string `json:"text"`
}

type MessageResponse struct {
	concierge.SendResult
	ConciergeResponse
}

type ConciergeHandler struct {
	sessionService *services.SessionService
}

func NewConciergeHandler(sessionService *services.SessionService) *ConciergeHandler {
	return &ConciergeHandler{sessionService: sessionService}
}

// Open handles POST /v1/sessions/{id}/concierge/open
func (h *ConciergeHandler) Open(w http.ResponseWriter, r *http.Request) {
	session, ok := lookupSession(h.sessionService, w, r)
	if !ok {
		return
	}

	var req OpenConciergeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid location body")
		return
	}

	var location *geo.Point
	if req.Lat != nil && req.Lng != nil {
		location = &geo.Point{Lat: *req.Lat, Lng: *req.Lng}
	} else {
		log.Debugf("[ConciergeHandler] Session %s opened the concierge without a location", session.ID)
	}
	session.Concierge.SetLocation(location)
	session.Store.Dispatch(store.OpenChat{})

	writeJSON(w, http.StatusOK, conciergeResponse(session))
}

// Close handles POST /v1/sessions/{id}/concierge/close
func (h *ConciergeHandler) Close(w http.ResponseWriter, r *http.Request) {
	session, ok := lookupSession(h.sessionService, w, r)
	if !ok {
		return
	}
	session.Store.Dispatch(store.CloseChat{})
	writeJSON(w, http.StatusOK, conciergeResponse(session))
}

// Get handles GET /v1/sessions/{id}/concierge
func (h *ConciergeHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, ok := lookupSession(h.sessionService, w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, conciergeResponse(session))
}

// PostMessage handles POST /v1/sessions/{id}/concierge/messages. A blank
// message or one sent while a reply is pending is answered with
// accepted=false.
func (h *ConciergeHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	session, ok := lookupSession(h.sessionService, w, r)
	if !ok {
		return
	}

	var req MessageRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid message body")
		return
	}

	// The request is never cancelled once sent, even if the client goes away.
	ctx := context.WithoutCancel(r.Context())
	result := session.Concierge.Send(ctx, req.Text, session.Store.State().Selected())

	writeJSON(w, http.StatusOK, MessageResponse{
		SendResult:        result,
		ConciergeResponse: conciergeResponse(session),
	})
}

func conciergeResponse(session *services.Session) ConciergeResponse {
	return ConciergeResponse{
		Transcript:   session.Concierge.Transcript(),
		Busy:         session.Concierge.Busy(),
		Location:     session.Concierge.Location(),
		QuickActions: session.Concierge.QuickActions(session.Store.State().Selected()),
	}
}
