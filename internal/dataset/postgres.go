package dataset

import (
	"context"
	"database/sql"

	apperrors "deal-pulse/internal/common/errors"
	"deal-pulse/internal/common/logger"
	"deal-pulse/internal/models"
)

const startupsQuery = `SELECT s.id, s.name, s.sector, s.stage, f.name, f.background
FROM startups s
LEFT JOIN founders f ON f.startup_id = s.id
ORDER BY s.position, s.id, f.position`

// PostgresSource reads startups and their founders in one joined query.
type PostgresSource struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPostgresSource(db *sql.DB, log logger.Logger) *PostgresSource {
	return &PostgresSource{
		db:     db,
		logger: log.With(map[string]interface{}{"component": "dataset", "source": "postgres"}),
	}
}

func (p *PostgresSource) Name() string { return "postgres" }

func (p *PostgresSource) Load(ctx context.Context) ([]models.Startup, error) {
	rows, err := p.db.QueryContext(ctx, startupsQuery)
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError(startupsQuery, err)
	}
	defer rows.Close()

	startups := []models.Startup{}
	index := make(map[string]int)
	for rows.Next() {
		var (
			id, name, sector, stage       string
			founderName, founderBackground sql.NullString
		)
		if err := rows.Scan(&id, &name, &sector, &stage, &founderName, &founderBackground); err != nil {
			return nil, apperrors.NewQueryExecutionFailedError(startupsQuery, err)
		}

		i, seen := index[id]
		if !seen {
			i = len(startups)
			index[id] = i
			startups = append(startups, models.Startup{ID: id, Name: name, Sector: sector, Stage: stage})
		}
		if founderName.Valid {
			startups[i].Founders = append(startups[i].Founders, models.Founder{
				Name:       founderName.String,
				Background: founderBackground.String,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewQueryExecutionFailedError(startupsQuery, err)
	}

	p.logger.Info("dataset loaded", map[string]interface{}{"count": len(startups)})
	return startups, nil
}
