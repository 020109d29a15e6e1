package etl

import (
	"go.uber.org/zap"

	"venue-booking/internal/types/elastic"
	"venue-booking/internal/venue"
)

type Transformer struct {
	Logger *zap.SugaredLogger
}

func NewTransformer(logger *zap.SugaredLogger) *Transformer {
	return &Transformer{
		Logger: logger,
	}
}

// Transform - переводит площадки из формата хранения в PostgreSQL в VenueDoc для ES
func (t *Transformer) Transform(input []venue.Venue) []elastic.VenueDoc {
	docs := make([]elastic.VenueDoc, 0, len(input))
	for _, v := range input {
		docs = append(docs, elastic.VenueDoc{
			ID:          v.ID,
			Name:        v.Name,
			Type:        v.Type,
			Location:    v.Location,
			Description: v.Description,
		})
	}

	t.Logger.Debugf("Transformed %d docs", len(input))

	return docs
}
