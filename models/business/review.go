package business

// Review is a visitor review. Rating is expected in 1..5.
type Review struct {
	ID     string `json:"id"`
	Author string `json:"author"`
	Rating int    `json:"rating"`
	Text   string `json:"text"`
	Date   string `json:"date"`
}

// Stars clamps the rating into the displayable range.
func (r Review) Stars() int {
	switch {
	case r.Rating < 1:
		return 1
	case r.Rating > 5:
		return 5
	}
	return r.Rating
}
