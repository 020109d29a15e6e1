package etl

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type Pipeline struct {
	extractor   *PostgresExtractor
	transformer *Transformer
	loader      *ElasticLoader
	logger      *zap.SugaredLogger
	interval    time.Duration
}

func NewPipeline(
	extractor *PostgresExtractor,
	transformer *Transformer,
	loader *ElasticLoader,
	logger *zap.SugaredLogger,
	interval time.Duration,
) *Pipeline {
	return &Pipeline{
		extractor:   extractor,
		transformer: transformer,
		loader:      loader,
		logger:      logger,
		interval:    interval,
	}
}

// RunOnce - один проход extract -> transform -> load, возвращает число загруженных площадок
func (p *Pipeline) RunOnce(ctx context.Context) (int, error) {
	venues, err := p.extractor.ExtractNew(ctx)
	if err != nil {
		return 0, err
	}
	if len(venues) == 0 {
		return 0, nil
	}

	docs := p.transformer.Transform(venues)

	if err = p.loader.Load(ctx, docs); err != nil {
		return 0, err
	}

	return len(docs), nil
}

// Run гоняет RunOnce по тикеру до отмены ctx
func (p *Pipeline) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Infow("ETL pipeline started", "interval", p.interval)

	for {
		select {
		case <-ctx.Done():
			p.logger.Infow("ETL pipeline stopped")
			return
		case <-ticker.C:
			n, err := p.RunOnce(ctx)
			if err != nil {
				p.logger.Errorw("ETL iteration failed", zap.Error(err))
				continue
			}
			if n > 0 {
				p.logger.Infof("ETL pipeline completed, successfully loaded %d docs", n)
			}
		}
	}
}
