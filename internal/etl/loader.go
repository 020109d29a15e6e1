package etl

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"venue-booking/internal/types/elastic"
	myErr "venue-booking/internal/types/errors"
)

// Indexer - приемник документов, реализуется ElasticService
type Indexer interface {
	BulkIndex(ctx context.Context, docs []elastic.VenueDoc) error
}

type ElasticLoader struct {
	Index  Indexer
	Logger *zap.SugaredLogger
	DB     *sql.DB
}

func NewElasticLoader(index Indexer, logger *zap.SugaredLogger, db *sql.DB) *ElasticLoader {
	return &ElasticLoader{
		Index:  index,
		Logger: logger,
		DB:     db,
	}
}

// Load - загружает документы в индекс и помечает площадки проиндексированными.
// Флаг ставится только после успешной загрузки.
func (l *ElasticLoader) Load(ctx context.Context, docs []elastic.VenueDoc) error {
	if len(docs) == 0 {
		return nil
	}

	l.Logger.Infow("Loading documents to Elasticsearch", "count", len(docs))
	if err := l.Index.BulkIndex(ctx, docs); err != nil {
		l.Logger.Errorw("Failed to bulk index documents", zap.Error(err))
		return err
	}

	ids := make([]string, len(docs))
	for i, doc := range docs {
		ids[i] = doc.ID
	}

	_, err := l.DB.ExecContext(ctx, `UPDATE venues SET searching = TRUE WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		l.Logger.Errorw("Failed to update documents in PostgreSQL", zap.Error(err))
		return myErr.ErrDBInternal
	}

	return nil
}
