package directory

import "terre-server/models/business"

// FilterByCategory returns the businesses of the given category in their
// input order. The all marker returns the input as is; the input slice is
// never modified.
func FilterByCategory(all []business.Business, category string) []business.Business {
	if business.IsAll(category) {
		return all
	}
	filtered := make([]business.Business, 0, len(all))
	for _, b := range all {
		if string(b.Category) == category {
			filtered = append(filtered, b)
		}
	}
	return filtered
}

// FindByID returns a pointer into the list, or nil.
func FindByID(all []business.Business, id string) *business.Business {
	for i := range all {
		if all[i].ID == id {
			return &all[i]
		}
	}
	return nil
}
