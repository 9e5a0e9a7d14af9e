package storage

import (
	"context"

	"bikeshare-explorer/models"
)

// TripSource is the interface any backend that can produce a city's dataset must satisfy.
// Implementations return an error wrapping models.ErrDataSourceUnavailable when the
// city's data cannot be read.
type TripSource interface {
	Load(ctx context.Context, city models.City) (*models.Dataset, error)
}

// TripWriter is the interface for persisting a loaded dataset.
type TripWriter interface {
	Write(ctx context.Context, ds *models.Dataset) error
	Close() error
}

// TripStore can both serve and persist datasets.
type TripStore interface {
	TripSource
	TripWriter
}
