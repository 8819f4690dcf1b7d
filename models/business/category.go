package business

import "strings"

// Category is the business kind as it appears in the snapshot.
type Category string

const (
	CategoryWinery     Category = "Cantina"
	CategoryFarmStay   Category = "Agriturismo"
	CategoryProducer   Category = "Produttore"
	CategoryRestaurant Category = "Ristorazione"

	// CategoryAll is the selector value that disables filtering.
	CategoryAll = "Tutte"
)

// Categories lists the selector options in display order.
func Categories() []string {
	return []string{
		CategoryAll,
		string(CategoryWinery),
		string(CategoryFarmStay),
		string(CategoryProducer),
		string(CategoryRestaurant),
	}
}

// IsAll reports whether the category selects every business.
// Both the localized marker and "all" are accepted; empty means all too.
func IsAll(category string) bool {
	c := strings.TrimSpace(category)
	return c == "" || c == CategoryAll || strings.EqualFold(c, "all")
}
