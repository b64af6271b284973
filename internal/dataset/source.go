// Package dataset loads the read-only startup reference dataset from the
// configured backend.
package dataset

import (
	"context"

	apperrors "deal-pulse/internal/common/errors"
	"deal-pulse/internal/common/validation"
	"deal-pulse/internal/models"
)

// Source produces the reference dataset. Implementations return records in
// a stable order.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]models.Startup, error)
}

// Load runs src and checks every record before the dataset is shared.
func Load(ctx context.Context, src Source) ([]models.Startup, error) {
	startups, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	if res := validation.ValidateStartups(startups); !res.Valid {
		return nil, apperrors.NewDatasetValidationFailedError(res.Summary()).
			WithMetadata("source", src.Name())
	}
	return startups, nil
}
