package concierge

import (
	"fmt"

	"terre-server/models/business"
	"terre-server/models/geo"
)

// QuickAction prefills a message; sending it goes through Send like any other text.
type QuickAction struct {
	Label string `json:"label"`
	Query string `json:"query"`
}

var themedActions = []QuickAction{
	{Label: "🍷 Tour Vini", Query: "Crea un itinerario di mezza giornata per visitare le migliori Cantine della zona. Visualizza le tappe."},
	{Label: "🧀 Tour Sapori", Query: "Vorrei un percorso enogastronomico che includa Produttori locali e un Agriturismo per mangiare."},
}

// QuickActions puts a context prompt first: the selected business if any,
// else the user position if known. The themed tours always follow.
func QuickActions(location *geo.Point, selected *business.Business) []QuickAction {
	actions := make([]QuickAction, 0, len(themedActions)+1)
	switch {
	case selected != nil:
		actions = append(actions, QuickAction{
			Label: fmt.Sprintf("📍 Da %s...", selected.Name),
			Query: fmt.Sprintf("Mi trovo da %s. Crea un itinerario logico per il resto della giornata visitando altre aziende vicine.", selected.Name),
		})
	case location != nil && location.Valid():
		actions = append(actions, QuickAction{
			Label: "📍 Vicino a me",
			Query: "Basandoti sulla mia posizione attuale, crea un mini-tour delle aziende più vicine a me adesso.",
		})
	}
	return append(actions, themedActions...)
}
