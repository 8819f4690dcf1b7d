// Package view turns coordinator state into the view models the front end
// renders. Nothing here changes state; intents go back through the store.
package view

import (
	"terre-server/directory"
	"terre-server/models/business"
	"terre-server/store"
)

const EmptyListMessage = "Nessuna azienda trovata in questa categoria."

type ListRow struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	ImageURL string            `json:"imageUrl"`
	Category business.Category `json:"category"`
	OpenNow  bool              `json:"openNow"`
	Address  string            `json:"address"`
	Selected bool              `json:"selected"`
}

type ListViewModel struct {
	Categories       []string  `json:"categories"`
	SelectedCategory string    `json:"selectedCategory"`
	Rows             []ListRow `json:"rows"`
	Empty            bool      `json:"empty"`
	EmptyMessage     string    `json:"emptyMessage,omitempty"`
	Open             bool      `json:"open"`
	Loading          bool      `json:"loading"`
}

// ListView renders the filtered businesses in snapshot order, with the
// open badge evaluated at the state's clock. Tick moves that clock.
func ListView(s store.State) ListViewModel {
	visible := s.Visible()
	rows := make([]ListRow, 0, len(visible))
	for _, b := range visible {
		rows = append(rows, ListRow{
			ID:       b.ID,
			Name:     b.Name,
			ImageURL: b.ImageURL,
			Category: b.Category,
			OpenNow:  directory.IsOpenNow(b, s.Now),
			Address:  b.Address,
			Selected: b.ID == s.SelectedID,
		})
	}

	vm := ListViewModel{
		Categories:       business.Categories(),
		SelectedCategory: s.Category,
		Rows:             rows,
		Empty:            len(rows) == 0 && !s.Loading,
		Open:             s.ListOpen,
		Loading:          s.Loading,
	}
	if vm.Empty {
		vm.EmptyMessage = EmptyListMessage
	}
	return vm
}
