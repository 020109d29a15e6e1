package feedback

// CreateFeedback - тело POST /feedback
type CreateFeedback struct {
	VenueID string `json:"venue_id" validate:"required"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// UpdateFeedback - тело PUT /feedback/{id}
type UpdateFeedback struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}
