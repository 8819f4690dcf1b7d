package concierge

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terre-server/models/business"
	"terre-server/models/chat"
	"terre-server/models/geo"
)

func testBusinesses() []business.Business {
	return []business.Business{
		{
			ID: "far", Name: "Cantina Lontana", Category: business.CategoryWinery, Address: "Sauris",
			Lat: business.Coord(46.46), Lng: business.Coord(12.70),
			Products: []string{"Refosco", "Schioppettino"}, Features: []string{"Degustazioni"},
			Phone: "+39 0433 000000", Email: "info@lontana.it",
			Reviews:      []business.Review{{ID: "r", Author: "Anna", Rating: 5}},
			OpeningHours: business.OpeningHours{business.Monday: "09:00-12:00"},
		},
		{
			ID: "none", Name: "Frasca Senza Mappa", Category: business.CategoryRestaurant, Address: "San Vito",
			Lat: business.Coord(math.NaN()),
		},
		{
			ID: "near", Name: "Agriturismo Vicino", Category: business.CategoryFarmStay, Address: "Cormons",
			Lat: business.Coord(45.96), Lng: business.Coord(13.47),
		},
	}
}

func TestGroundingJSON(t *testing.T) {
	raw := GroundingJSON(testBusinesses(), nil)

	var entries []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &entries))
	require.Len(t, entries, 3)

	first := entries[0]
	assert.Equal(t, "Cantina Lontana", first["name"])
	assert.Equal(t, "Cantina", first["type"])
	assert.Equal(t, "Sauris", first["city"])
	assert.Equal(t, "Refosco, Schioppettino", first["products"])
	assert.Equal(t, "Degustazioni", first["features"])
	assert.Equal(t, hoursAvailable, first["open"])
	assert.Equal(t, map[string]interface{}{"lat": 46.46, "lng": 12.70}, first["coordinates"])

	assert.Equal(t, map[string]interface{}{}, entries[1]["coordinates"])
	assert.Equal(t, hoursUnavailable, entries[1]["open"])

	assert.NotContains(t, raw, "info@lontana.it")
	assert.NotContains(t, raw, "0433")
	assert.NotContains(t, raw, "Anna")
}

func TestGroundingJSON_NearestFirst(t *testing.T) {
	list := testBusinesses()
	raw := GroundingJSON(list, &geo.Point{Lat: 45.95, Lng: 13.46})

	var entries []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &entries))
	require.Len(t, entries, 3)
	assert.Equal(t, "Agriturismo Vicino", entries[0].Name)
	assert.Equal(t, "Cantina Lontana", entries[1].Name)
	assert.Equal(t, "Frasca Senza Mappa", entries[2].Name)

	assert.Equal(t, "far", list[0].ID, "input order is untouched")
}

func TestLocationAndSelectionContext(t *testing.T) {
	assert.Equal(t, locationUnavailable, LocationContext(nil))
	assert.Equal(t, locationUnavailable, LocationContext(&geo.Point{Lat: math.NaN(), Lng: 13}))
	assert.Equal(t, "POSIZIONE UTENTE: Latitudine 45.95, Longitudine 13.46.", LocationContext(&geo.Point{Lat: 45.95, Lng: 13.46}))

	assert.Equal(t, noSelection, SelectionContext(nil))
	sel := testBusinesses()[2]
	assert.Equal(t, `CONTESTO VISIVO: L'utente sta guardando la scheda di "Agriturismo Vicino" (Agriturismo) a Cormons.`, SelectionContext(&sel))
}

func TestHistory(t *testing.T) {
	at := time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC)
	history := History([]chat.Message{
		chat.NewMessage(chat.RoleAssistant, "Ciao", at),
		chat.NewMessage(chat.RoleUser, "Un tour?", at),
	})

	assert.Equal(t, "Concierge: Ciao\nUtente: Un tour?", history)
	assert.Equal(t, "", History(nil))
}

func TestBuildPrompt(t *testing.T) {
	at := time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC)
	sel := testBusinesses()[0]
	in := PromptInput{
		Businesses: testBusinesses(),
		Location:   &geo.Point{Lat: 46, Lng: 13.2},
		Selected:   &sel,
		History:    []chat.Message{chat.NewMessage(chat.RoleAssistant, WelcomeMessage, at)},
		Query:      "Dove pranzo?",
	}

	p := BuildPrompt(in)

	assert.True(t, strings.HasPrefix(p.SystemInstruction, persona))
	assert.Contains(t, p.SystemInstruction, GroundingJSON(in.Businesses, in.Location))
	assert.Contains(t, p.SystemInstruction, "POSIZIONE UTENTE: Latitudine 46, Longitudine 13.2.")
	assert.Contains(t, p.SystemInstruction, `"Cantina Lontana" (Cantina) a Sauris`)
	assert.Contains(t, p.SystemInstruction, itineraryRules)
	assert.Equal(t, "Cronologia chat:\nConcierge: "+WelcomeMessage+"\n\nNuova richiesta utente: Dove pranzo?", p.UserContent)

	assert.Equal(t, p, BuildPrompt(in), "same input, same prompt")
}

func TestBuildPrompt_NoContext(t *testing.T) {
	p := BuildPrompt(PromptInput{Query: "Ciao"})

	assert.Contains(t, p.SystemInstruction, locationUnavailable)
	assert.Contains(t, p.SystemInstruction, noSelection)
	assert.Contains(t, p.SystemInstruction, "[]")
}

func TestQuickActions(t *testing.T) {
	sel := testBusinesses()[0]

	tests := []struct {
		name       string
		location   *geo.Point
		selected   *business.Business
		firstLabel string
		count      int
	}{
		{"no context", nil, nil, "🍷 Tour Vini", 2},
		{"location only", &geo.Point{Lat: 46, Lng: 13}, nil, "📍 Vicino a me", 3},
		{"selection wins", &geo.Point{Lat: 46, Lng: 13}, &sel, "📍 Da Cantina Lontana...", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actions := QuickActions(tt.location, tt.selected)
			require.Len(t, actions, tt.count)
			assert.Equal(t, tt.firstLabel, actions[0].Label)
			assert.Equal(t, "🧀 Tour Sapori", actions[len(actions)-1].Label)
		})
	}
}
