package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	services "terre-server/service"
	"terre-server/store"
	"terre-server/util"
	"terre-server/view"
)

// SessionResponse is the full page for one session.
type SessionResponse struct {
	SessionID string `json:"sessionId"`
	view.PageViewModel
}

type CreateSessionRequest struct {
	Width int `json:"width"`
}

// EventRequest is the wire form of a coordinator intent.
type EventRequest struct {
	Type       string `json:"type"`
	BusinessID string `json:"businessId,omitempty"`
	Source     string `json:"source,omitempty"`
	Category   string `json:"category,omitempty"`
	Width      int    `json:"width,omitempty"`
}

type SessionHandler struct {
	sessionService *services.SessionService
}

func NewSessionHandler(sessionService *services.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// CreateSession handles POST /v1/sessions
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := decodeBody(r, &req); err != nil || req.Width < 0 {
		writeError(w, http.StatusBadRequest, "Invalid session request")
		return
	}

	session := h.sessionService.Create(req.Width)
	writeJSON(w, http.StatusCreated, h.page(session))
}

// GetView handles GET /v1/sessions/{id}/view
func (h *SessionHandler) GetView(w http.ResponseWriter, r *http.Request) {
	session, ok := lookupSession(h.sessionService, w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.page(session))
}

// PostEvent handles POST /v1/sessions/{id}/events
func (h *SessionHandler) PostEvent(w http.ResponseWriter, r *http.Request) {
	session, ok := lookupSession(h.sessionService, w, r)
	if !ok {
		return
	}

	var req EventRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid event body")
		return
	}
	event, err := ToEvent(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	session.Store.Dispatch(event)
	writeJSON(w, http.StatusOK, h.page(session))
}

// GetMap handles GET /v1/sessions/{id}/map.html
func (h *SessionHandler) GetMap(w http.ResponseWriter, r *http.Request) {
	session, ok := lookupSession(h.sessionService, w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := util.RenderMap(&buf, view.MapView(session.Store.State())); err != nil {
		log.Errorf("[SessionHandler] Error rendering map for session %s: %v", session.ID, err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Errorf("[SessionHandler] Error writing map: %v", err)
	}
}

// GetPopular handles GET /v1/popular?limit={n}
func (h *SessionHandler) GetPopular(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := r.URL.Query().Get(LIMIT_QUERY_ARG); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}
	writeJSON(w, http.StatusOK, h.sessionService.TopSelections(limit))
}

func (h *SessionHandler) page(session *services.Session) SessionResponse {
	return SessionResponse{
		SessionID:     session.ID,
		PageViewModel: view.Page(session.Store.State()),
	}
}

// ToEvent maps a wire event onto a coordinator event.
func ToEvent(req EventRequest) (store.Event, error) {
	switch req.Type {
	case "select":
		if req.BusinessID == "" {
			return nil, fmt.Errorf("select requires businessId")
		}
		source := store.Source(req.Source)
		if source != store.SourceMap {
			source = store.SourceList
		}
		return store.Select{BusinessID: req.BusinessID, Source: source}, nil
	case "close":
		return store.CloseDetail{}, nil
	case "category":
		return store.ChangeCategory{Category: req.Category}, nil
	case "toggle_list":
		return store.ToggleList{}, nil
	case "resize":
		if req.Width <= 0 {
			return nil, fmt.Errorf("resize requires a positive width")
		}
		return store.Resize{Width: req.Width}, nil
	case "open_chat":
		return store.OpenChat{}, nil
	case "close_chat":
		return store.CloseChat{}, nil
	}
	return nil, fmt.Errorf("unknown event type %q", req.Type)
}

func lookupSession(ss *services.SessionService, w http.ResponseWriter, r *http.Request) (*services.Session, bool) {
	id := mux.Vars(r)[ID_PATH_VAR]
	session, ok := ss.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return nil, false
	}
	return session, true
}
