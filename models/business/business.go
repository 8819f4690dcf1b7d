package business

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Business is one member of the network as published in the companies snapshot.
type Business struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Description string   `json:"description"`
	Address     string   `json:"address"`
	Lat         *float64 `json:"lat,omitempty"`
	Lng         *float64 `json:"lng,omitempty"`
	Products    []string `json:"products"`
	Website     string   `json:"website,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Email       string   `json:"email,omitempty"`
	ImageURL    string   `json:"imageUrl"`
	Features    []string `json:"features"`

	Gallery      []string     `json:"gallery,omitempty"`
	Socials      *Socials     `json:"socials,omitempty"`
	BookingURL   string       `json:"bookingUrl,omitempty"`
	Reviews      []Review     `json:"reviews,omitempty"`
	OpeningHours OpeningHours `json:"openingHours,omitempty"`
}

// Socials holds optional social network links.
type Socials struct {
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// Coordinates returns the business position, ok only when both values are finite.
func (b *Business) Coordinates() (lat, lng float64, ok bool) {
	if b.Lat == nil || b.Lng == nil {
		return 0, 0, false
	}
	lat, lng = *b.Lat, *b.Lng
	if !finite(lat) || !finite(lng) {
		return 0, 0, false
	}
	return lat, lng, true
}

func (b *Business) HasOpeningHours() bool {
	return b.OpeningHours != nil
}

func (b *Business) ToString() string {
	return fmt.Sprintf("Business(id=%s, name=%s, category=%s, address=%s)",
		b.ID, b.Name, b.Category, b.Address)
}

// UnmarshalJSON tolerates coordinates published as numbers, numeric strings,
// null or garbage. Anything that is not a finite number is dropped.
func (b *Business) UnmarshalJSON(data []byte) error {
	type Alias Business
	aux := &struct {
		Lat interface{} `json:"lat"`
		Lng interface{} `json:"lng"`
		*Alias
	}{
		Alias: (*Alias)(b),
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	b.Lat = toCoordinate(aux.Lat)
	b.Lng = toCoordinate(aux.Lng)
	return nil
}

// MarshalJSON omits non-finite coordinates, which encoding/json cannot represent.
func (b Business) MarshalJSON() ([]byte, error) {
	type Alias Business
	out := Alias(b)
	if out.Lat != nil && !finite(*out.Lat) {
		out.Lat = nil
	}
	if out.Lng != nil && !finite(*out.Lng) {
		out.Lng = nil
	}
	return json.Marshal(out)
}

// Coord is a convenience for building coordinates in literals.
func Coord(v float64) *float64 {
	return &v
}

func toCoordinate(raw interface{}) *float64 {
	var v float64
	switch val := raw.(type) {
	case float64:
		v = val
	case string:
		parsed, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil
		}
		v = parsed
	default:
		return nil
	}
	if !finite(v) {
		return nil
	}
	return &v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
