package venue

// CreateVenue - тело POST /venues
type CreateVenue struct {
	Name        string `json:"venue_name" validate:"required,max=200"`
	Type        string `json:"type" validate:"required,max=100"`
	Capacity    int    `json:"capacity" validate:"gte=1"`
	Location    string `json:"location" validate:"required,max=300"`
	Description string `json:"description" validate:"max=5000"`
	ImageID     string `json:"image_id,omitempty"`
}
