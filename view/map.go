package view

import (
	"terre-server/config"
	"terre-server/models/business"
	"terre-server/models/geo"
	"terre-server/store"
)

type Marker struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Category business.Category `json:"category"`
	Position geo.Point         `json:"position"`
	Selected bool              `json:"selected"`
}

type MapViewModel struct {
	Center  geo.Point `json:"center"`
	Zoom    int       `json:"zoom"`
	Markers []Marker  `json:"markers"`
	// Popup is the selected marker, when it has a position.
	Popup *Marker `json:"popup,omitempty"`
}

// DefaultCenter is the regional view used when nothing can be focused.
func DefaultCenter() geo.Point {
	return geo.Point{Lat: config.DEFAULT_MAP_LAT, Lng: config.DEFAULT_MAP_LNG}
}

// MapView places a marker for every business with finite coordinates. The
// category filter does not apply to the map. The view focuses the selected
// business only when its coordinates are usable.
func MapView(s store.State) MapViewModel {
	vm := MapViewModel{
		Center:  DefaultCenter(),
		Zoom:    config.DEFAULT_MAP_ZOOM,
		Markers: make([]Marker, 0, len(s.Businesses)),
	}

	for i := range s.Businesses {
		b := &s.Businesses[i]
		lat, lng, ok := b.Coordinates()
		if !ok {
			continue
		}
		m := Marker{
			ID:       b.ID,
			Name:     b.Name,
			Category: b.Category,
			Position: geo.Point{Lat: lat, Lng: lng},
			Selected: b.ID == s.SelectedID,
		}
		vm.Markers = append(vm.Markers, m)
		if m.Selected {
			popup := m
			vm.Popup = &popup
			vm.Center = m.Position
			vm.Zoom = config.SELECTED_MAP_ZOOM
		}
	}
	return vm
}
