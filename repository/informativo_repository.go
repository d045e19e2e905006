package repository

import (
	"context"
	"fmt"

	"informativos-backend/logger"
	"informativos-backend/models"
	"informativos-backend/storage"
)

// InformativoRepository is the read-only in-memory record store.
// Records are loaded once and never mutated afterwards, so concurrent
// readers need no locking.
type InformativoRepository struct {
	records []models.Informativo
}

// NewInformativoRepository creates a repository over already loaded records.
// Record indexes are reassigned to match their position.
func NewInformativoRepository(records []models.Informativo) *InformativoRepository {
	owned := make([]models.Informativo, len(records))
	copy(owned, records)
	for i := range owned {
		owned[i].Index = i
	}
	return &InformativoRepository{records: owned}
}

// LoadInformativoRepository downloads the dataset from storage and parses it
func LoadInformativoRepository(ctx context.Context, store storage.Storage, path string, log *logger.Logger) (*InformativoRepository, error) {
	rc, err := store.Download(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer rc.Close()

	records, err := LoadInformativos(rc, log)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", path, err)
	}

	return &InformativoRepository{records: records}, nil
}

// All returns every record in load order. Callers must not modify the slice.
func (r *InformativoRepository) All() []models.Informativo {
	return r.records
}

// GetByIndex returns the record at the given store position
func (r *InformativoRepository) GetByIndex(index int) (models.Informativo, bool) {
	if index < 0 || index >= len(r.records) {
		return models.Informativo{}, false
	}
	return r.records[index], true
}

// Count returns the number of loaded records
func (r *InformativoRepository) Count() int {
	return len(r.records)
}
