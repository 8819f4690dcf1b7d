package concierge

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"terre-server/models/business"
	"terre-server/models/chat"
	"terre-server/models/geo"
)

const (
	hoursAvailable   = "Orari disponibili"
	hoursUnavailable = "Orari non disponibili"

	locationUnavailable = "POSIZIONE UTENTE: Non disponibile (l'utente non ha condiviso la geolocalizzazione)."
	noSelection         = "CONTESTO VISIVO: L'utente è sulla mappa generale."
)

const persona = `Sei il "Concierge TerreFVG", una guida turistica digitale esperta e amichevole del Friuli Venezia Giulia.
Il tuo compito è creare itinerari enogastronomici logici e dare informazioni sulle aziende.`

const itineraryRules = `MODALITÀ ITINERARIO (se l'utente chiede percorsi, tour, dove andare o cosa fare):
1. LOGICA GEOGRAFICA: raggruppa aziende vicine tra loro usando le coordinate lat/lng fornite, senza far attraversare la regione avanti e indietro.
2. STRUTTURA: elenca le tappe in ordine, per esempio:
   📍 TAPPA 1: [Nome Azienda]
   📝 [Cosa fare]
   ⬇️ (Spostamento breve)
   📍 TAPPA 2: [Nome Azienda]
3. VARIETÀ: quando possibile alterna le categorie (Cantina, Agriturismo, Produttore, Ristorazione).
4. CONTESTO: se l'utente sta guardando un'azienda, quella è la prima tappa o il centro del tour.

REGOLE:
- Rispondi in italiano.
- Sii sintetico ma invitante, usa qualche emoji (🍷 vino, 🧀 cibo, 🚗 spostamenti).
- Per domande su un'azienda specifica indica orari (se presenti) e specialità.
- Usa SOLO le aziende del database. Se non trovi nulla di adatto dillo onestamente.`

// Prompt is what a Generator sends: the system instruction and a single user
// content block.
type Prompt struct {
	SystemInstruction string
	UserContent       string
}

// PromptInput carries everything a prompt depends on.
type PromptInput struct {
	Businesses []business.Business
	Location   *geo.Point
	Selected   *business.Business
	History    []chat.Message
	Query      string
}

type groundingCoordinates struct {
	Lat *float64 `json:"lat,omitempty"`
	Lng *float64 `json:"lng,omitempty"`
}

// groundingEntry is the compact record the model sees. Contact details and
// reviews are left out.
type groundingEntry struct {
	Name        string               `json:"name"`
	Type        business.Category    `json:"type"`
	City        string               `json:"city"`
	Coordinates groundingCoordinates `json:"coordinates"`
	Products    string               `json:"products"`
	Features    string               `json:"features"`
	Open        string               `json:"open"`
}

// BuildPrompt is a pure function of its input.
func BuildPrompt(in PromptInput) Prompt {
	var sb strings.Builder
	sb.WriteString(persona)
	sb.WriteString("\n\nDATABASE AZIENDE (usa SOLO queste):\n")
	sb.WriteString(GroundingJSON(in.Businesses, in.Location))
	sb.WriteString("\n\n")
	sb.WriteString(LocationContext(in.Location))
	sb.WriteString("\n")
	sb.WriteString(SelectionContext(in.Selected))
	sb.WriteString("\n\n---\n\n")
	sb.WriteString(itineraryRules)

	return Prompt{
		SystemInstruction: sb.String(),
		UserContent:       fmt.Sprintf("Cronologia chat:\n%s\n\nNuova richiesta utente: %s", History(in.History), in.Query),
	}
}

// GroundingJSON serializes the business list for the model. With a known
// location the entries are ordered nearest first; businesses without usable
// coordinates keep their relative order at the end.
func GroundingJSON(businesses []business.Business, location *geo.Point) string {
	ordered := make([]business.Business, len(businesses))
	copy(ordered, businesses)

	if location != nil && location.Valid() {
		distance := func(b *business.Business) (float64, bool) {
			lat, lng, ok := b.Coordinates()
			if !ok {
				return 0, false
			}
			return geo.DistanceKm(*location, geo.Point{Lat: lat, Lng: lng}), true
		}
		sort.SliceStable(ordered, func(i, j int) bool {
			di, iok := distance(&ordered[i])
			dj, jok := distance(&ordered[j])
			if iok != jok {
				return iok
			}
			return iok && di < dj
		})
	}

	entries := make([]groundingEntry, 0, len(ordered))
	for i := range ordered {
		b := &ordered[i]
		entry := groundingEntry{
			Name:     b.Name,
			Type:     b.Category,
			City:     b.Address,
			Products: strings.Join(b.Products, ", "),
			Features: strings.Join(b.Features, ", "),
			Open:     hoursUnavailable,
		}
		if lat, lng, ok := b.Coordinates(); ok {
			entry.Coordinates = groundingCoordinates{Lat: &lat, Lng: &lng}
		}
		if b.HasOpeningHours() {
			entry.Open = hoursAvailable
		}
		entries = append(entries, entry)
	}

	out, err := json.Marshal(entries)
	if err != nil {
		return "[]"
	}
	return string(out)
}

func LocationContext(location *geo.Point) string {
	if location == nil || !location.Valid() {
		return locationUnavailable
	}
	return fmt.Sprintf("POSIZIONE UTENTE: Latitudine %s, Longitudine %s.",
		strconv.FormatFloat(location.Lat, 'f', -1, 64),
		strconv.FormatFloat(location.Lng, 'f', -1, 64))
}

func SelectionContext(selected *business.Business) string {
	if selected == nil {
		return noSelection
	}
	return fmt.Sprintf("CONTESTO VISIVO: L'utente sta guardando la scheda di \"%s\" (%s) a %s.",
		selected.Name, selected.Category, selected.Address)
}

// History renders the transcript one line per message.
func History(messages []chat.Message) string {
	lines := make([]string, 0, len(messages))
	for _, m := range messages {
		speaker := "Concierge"
		if m.Role == chat.RoleUser {
			speaker = "Utente"
		}
		lines = append(lines, speaker+": "+m.Text)
	}
	return strings.Join(lines, "\n")
}
