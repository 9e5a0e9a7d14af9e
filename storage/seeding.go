package storage

import (
	"context"
	"errors"
	"fmt"

	"bikeshare-explorer/models"
	"bikeshare-explorer/utils"
)

// SeedingSource serves datasets from a primary store and fills it from a seed
// source the first time a city is requested.
type SeedingSource struct {
	primary TripStore
	seed    TripSource
	logger  *utils.Logger
}

// NewSeedingSource creates a SeedingSource.
func NewSeedingSource(primary TripStore, seed TripSource, logger *utils.Logger) *SeedingSource {
	return &SeedingSource{primary: primary, seed: seed, logger: logger}
}

// Load tries the primary first. When the primary reports the city unavailable,
// the seed is loaded and written through. A failed write is logged and the
// seeded dataset is still returned.
func (s *SeedingSource) Load(ctx context.Context, city models.City) (*models.Dataset, error) {
	ds, err := s.primary.Load(ctx, city)
	if err == nil {
		return ds, nil
	}
	if !errors.Is(err, models.ErrDataSourceUnavailable) {
		return nil, err
	}

	s.logger.Info("[seed] %s not in primary store (%v), loading from seed", city.Title(), err)
	ds, err = s.seed.Load(ctx, city)
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}

	if err := s.primary.Write(ctx, ds); err != nil {
		s.logger.Warn("[seed] Could not store %s: %v", city.Title(), err)
	}
	return ds, nil
}
