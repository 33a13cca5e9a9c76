package repositories

import (
	"context"

	"github.com/Elgringol/Abonos-Riazor-Berberecho/internal/models"
)

// StateRepository defines the interface for whole-state persistence. The
// application state is written as one document, last writer wins; there is no
// merge or versioning.
type StateRepository interface {
	// Load returns the stored state, or (nil, nil) on a fresh install.
	Load(ctx context.Context) (*models.AppState, error)
	// Save overwrites the stored state with the given snapshot.
	Save(ctx context.Context, state *models.AppState) error
}
