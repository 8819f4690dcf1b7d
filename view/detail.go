package view

import (
	"strings"

	"terre-server/directory"
	"terre-server/models/business"
)

const NoReviewsMessage = "Nessuna recensione presente."

type ReviewRow struct {
	ID     string `json:"id"`
	Author string `json:"author"`
	Stars  int    `json:"stars"`
	Text   string `json:"text"`
	Date   string `json:"date"`
}

type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

type Contacts struct {
	Address string `json:"address"`
	Phone   *Link  `json:"phone,omitempty"`
	Email   *Link  `json:"email,omitempty"`
	Website *Link  `json:"website,omitempty"`
}

type DetailViewModel struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Category    business.Category    `json:"category"`
	ImageURL    string               `json:"imageUrl"`
	Description string               `json:"description"`
	Products    []string             `json:"products"`
	Features    []string             `json:"features"`
	Hours       []directory.DayHours `json:"hours,omitempty"`
	Gallery     []string             `json:"gallery,omitempty"`
	Socials     []Link               `json:"socials,omitempty"`
	Contacts    Contacts             `json:"contacts"`
	Reviews     []ReviewRow          `json:"reviews"`
	NoReviews   bool                 `json:"noReviews"`
	Booking     Link                 `json:"booking"`
}

// DetailView formats one business for the profile panel.
func DetailView(b business.Business) DetailViewModel {
	vm := DetailViewModel{
		ID:          b.ID,
		Name:        b.Name,
		Category:    b.Category,
		ImageURL:    b.ImageURL,
		Description: b.Description,
		Products:    nonNil(b.Products),
		Features:    nonNil(b.Features),
		Gallery:     b.Gallery,
		Contacts:    contacts(b),
		Reviews:     make([]ReviewRow, 0, len(b.Reviews)),
		Booking:     bookingLink(b),
	}

	if b.HasOpeningHours() {
		vm.Hours = directory.WeeklyHours(b)
	}

	if b.Socials != nil {
		if b.Socials.Facebook != "" {
			vm.Socials = append(vm.Socials, Link{Label: "Facebook", Href: b.Socials.Facebook})
		}
		if b.Socials.Instagram != "" {
			vm.Socials = append(vm.Socials, Link{Label: "Instagram", Href: b.Socials.Instagram})
		}
	}

	for _, r := range b.Reviews {
		vm.Reviews = append(vm.Reviews, ReviewRow{
			ID:     r.ID,
			Author: r.Author,
			Stars:  r.Stars(),
			Text:   r.Text,
			Date:   r.Date,
		})
	}
	vm.NoReviews = len(vm.Reviews) == 0
	return vm
}

func contacts(b business.Business) Contacts {
	c := Contacts{Address: b.Address}
	if phone := strings.TrimSpace(b.Phone); phone != "" {
		c.Phone = &Link{Label: phone, Href: "tel:" + strings.ReplaceAll(phone, " ", "")}
	}
	if email := strings.TrimSpace(b.Email); email != "" {
		c.Email = &Link{Label: email, Href: "mailto:" + email}
	}
	if b.Website != "" {
		c.Website = &Link{Label: "Visita il sito web", Href: b.Website}
	}
	return c
}

// bookingLink prefers the booking page and falls back to an email draft.
func bookingLink(b business.Business) Link {
	if b.BookingURL != "" {
		return Link{Label: "Prenota ora", Href: b.BookingURL}
	}
	return Link{Label: "Prenota ora", Href: "mailto:" + strings.TrimSpace(b.Email)}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
