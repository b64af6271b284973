package dataset

import (
	"context"
	"encoding/json"
	"os"

	apperrors "deal-pulse/internal/common/errors"
	"deal-pulse/internal/common/validation"
	"deal-pulse/internal/models"
)

// Document is the on-disk JSON layout read by FileSource.
type Document struct {
	Startups []models.Startup `json:"startups"`
}

// FileSource reads a JSON document checked against StartupDatasetSchema.
type FileSource struct {
	Path string
}

func (f FileSource) Name() string { return "file" }

func (f FileSource) Load(_ context.Context) ([]models.Startup, error) {
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, apperrors.NewDatasetLoadFailedError(f.Name(), err).WithMetadata("path", f.Path)
	}
	return Decode(raw)
}

// Decode validates and unmarshals a dataset document.
func Decode(raw []byte) ([]models.Startup, error) {
	res, err := validation.ValidateDatasetDocument(raw)
	if err != nil {
		return nil, apperrors.NewDatasetValidationFailedError(err.Error())
	}
	if !res.Valid {
		return nil, apperrors.NewDatasetValidationFailedError(res.Summary())
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, apperrors.NewDatasetValidationFailedError(err.Error())
	}
	if doc.Startups == nil {
		doc.Startups = []models.Startup{}
	}
	return doc.Startups, nil
}
