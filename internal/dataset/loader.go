package dataset

import (
	"context"
	"fmt"

	"deal-pulse/internal/common/config"
	"deal-pulse/internal/common/database"
	apperrors "deal-pulse/internal/common/errors"
	"deal-pulse/internal/common/logger"
	"deal-pulse/internal/models"
)

// Closer releases connections opened by FromConfig.
type Closer func()

// FromConfig builds the configured source, wrapping it in the Redis cache
// when enabled. Backends are pinged so misconfiguration fails at startup.
func FromConfig(ctx context.Context, cfg *config.Config, log logger.Logger) (Source, Closer, error) {
	var (
		src     Source
		closers []func() error
	)
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i]()
		}
	}

	switch cfg.Dataset.Source {
	case config.SourceBuiltin, "":
		src = BuiltinSource{}
	case config.SourceFile:
		src = FileSource{Path: cfg.Dataset.Path}
	case config.SourcePostgres:
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return nil, nil, apperrors.NewDatabaseConnectionFailedError(err)
		}
		closers = append(closers, pg.Close)
		if err := pg.Ping(ctx); err != nil {
			closeAll()
			return nil, nil, apperrors.NewDatabaseConnectionFailedError(err)
		}
		src = NewPostgresSource(pg.DB, log)
	case config.SourceElasticsearch:
		es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return nil, nil, apperrors.NewDatabaseConnectionFailedError(err)
		}
		if err := es.Ping(ctx); err != nil {
			return nil, nil, apperrors.NewDatabaseConnectionFailedError(err)
		}
		src = NewElasticsearchSource(es.Client, cfg.Dataset.Index, log)
	default:
		return nil, nil, apperrors.NewConfigInvalidError(fmt.Sprintf("unknown dataset source %q", cfg.Dataset.Source))
	}

	if cfg.Dataset.CacheEnabled {
		rdb := database.NewRedis(cfg.Database.Redis)
		if err := rdb.Ping(ctx); err != nil {
			// the cache is optional
			log.WithError(apperrors.NewDatasetCacheFailedError(err)).Warn("dataset cache disabled", nil)
			_ = rdb.Close()
		} else {
			closers = append(closers, rdb.Close)
			src = NewCachedSource(src, rdb.Client, cfg.Dataset.CacheTTLDuration(), log)
		}
	}

	log.Info("dataset source ready", map[string]interface{}{
		"source": src.Name(),
		"cached": cfg.Dataset.CacheEnabled,
	})
	return src, closeAll, nil
}

// LoadFromConfig builds the source, loads and validates the dataset, and
// releases the backend connections.
func LoadFromConfig(ctx context.Context, cfg *config.Config, log logger.Logger) ([]models.Startup, error) {
	if cfg.Dataset.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.GetDuration(cfg.Dataset.Timeout))
		defer cancel()
	}

	src, closeSource, err := FromConfig(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	defer closeSource()

	return Load(ctx, src)
}
