// Package concierge is the itinerary assistant: a per-session transcript
// grounded on the business list and answered by a generative model.
package concierge

import (
	"context"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"terre-server/models/business"
	"terre-server/models/chat"
	"terre-server/models/geo"
)

const (
	WelcomeMessage     = "Benvenuto in TerreFVG! 👋 Sono il tuo Concierge virtuale.\n\nPosso creare percorsi personalizzati per te. Dimmi cosa ti piace o scegli un suggerimento qui sotto!"
	EmptyReplyMessage  = "Mi dispiace, non riesco a elaborare un itinerario al momento. Riprova tra poco."
	RateLimitedMessage = "⚠️ Il Concierge sta ricevendo troppe richieste (Limite Piano Gratuito). Attendi un minuto e riprova."
	UnavailableMessage = "Il Concierge è momentaneamente occupato. Riprova tra qualche istante."
)

// SendResult tells whether a message was taken and, if so, what came back.
type SendResult struct {
	Accepted bool          `json:"accepted"`
	Reply    *chat.Message `json:"reply,omitempty"`
}

// Concierge holds one conversation. At most one request is outstanding at a
// time; a Send while another is in flight is dropped.
type Concierge struct {
	generator  Generator
	businesses func() []business.Business
	now        func() time.Time

	mu         sync.Mutex
	transcript []chat.Message
	location   *geo.Point
	inFlight   bool
}

// NewConcierge starts a transcript with the welcome message. businesses is
// read on every Send so a late load is picked up.
func NewConcierge(generator Generator, businesses func() []business.Business, now func() time.Time) *Concierge {
	if now == nil {
		now = time.Now
	}
	return &Concierge{
		generator:  generator,
		businesses: businesses,
		now:        now,
		transcript: []chat.Message{chat.NewMessage(chat.RoleAssistant, WelcomeMessage, now())},
	}
}

// SetLocation records the result of the geolocation read. Nil or a
// non-finite point means the position is unavailable.
func (c *Concierge) SetLocation(location *geo.Point) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if location != nil && !location.Valid() {
		location = nil
	}
	if location != nil {
		p := *location
		location = &p
	}
	c.location = location
}

func (c *Concierge) Location() *geo.Point {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.location == nil {
		return nil
	}
	p := *c.location
	return &p
}

// Transcript returns a copy of the messages so far.
func (c *Concierge) Transcript() []chat.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]chat.Message, len(c.transcript))
	copy(out, c.transcript)
	return out
}

func (c *Concierge) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// QuickActions returns the suggestions for the current context.
func (c *Concierge) QuickActions(selected *business.Business) []QuickAction {
	return QuickActions(c.Location(), selected)
}

// Send appends the user message, asks the generator once and appends the
// reply. Failures become apology messages; Send never returns an error.
func (c *Concierge) Send(ctx context.Context, text string, selected *business.Business) SendResult {
	if strings.TrimSpace(text) == "" {
		return SendResult{}
	}

	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		log.Debugf("[Concierge] Dropped message while a request is in flight")
		return SendResult{}
	}
	c.inFlight = true
	history := make([]chat.Message, len(c.transcript))
	copy(history, c.transcript)
	c.transcript = append(c.transcript, chat.NewMessage(chat.RoleUser, text, c.now()))
	location := c.location
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()
	}()

	prompt := BuildPrompt(PromptInput{
		Businesses: c.businesses(),
		Location:   location,
		Selected:   selected,
		History:    history,
		Query:      text,
	})

	replyText := c.ask(ctx, prompt)

	c.mu.Lock()
	reply := chat.NewMessage(chat.RoleAssistant, replyText, c.now())
	c.transcript = append(c.transcript, reply)
	c.mu.Unlock()

	return SendResult{Accepted: true, Reply: &reply}
}

func (c *Concierge) ask(ctx context.Context, prompt Prompt) string {
	reply, err := c.generator.Generate(ctx, prompt)
	if err != nil {
		if IsRateLimited(err) {
			log.Warnf("[Concierge] Rate limited: %v", err)
			return RateLimitedMessage
		}
		log.Warnf("[Concierge] Generator error: %v", err)
		return UnavailableMessage
	}
	if strings.TrimSpace(reply) == "" {
		return EmptyReplyMessage
	}
	return reply
}
