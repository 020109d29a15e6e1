package elastic

// VenueDoc - структура документа площадки для хранения в ES
type VenueDoc struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Location    string `json:"location"`
	Description string `json:"description"`
}
