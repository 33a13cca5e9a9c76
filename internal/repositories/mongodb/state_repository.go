package mongodb

import (
	"context"
	"time"

	"github.com/Elgringol/Abonos-Riazor-Berberecho/internal/models"
	"github.com/Elgringol/Abonos-Riazor-Berberecho/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// One document holds the entire application state. The fixed _id makes every
// save a full overwrite, mirroring the last-write-wins contract.
const stateDocID = "app_state"

type stateDocument struct {
	ID        string           `bson:"_id"`
	State     *models.AppState `bson:"state"`
	UpdatedAt time.Time        `bson:"updatedAt"`
}

// StateRepository implements the repositories.StateRepository interface
type StateRepository struct {
	collection *mongo.Collection
}

// NewStateRepository creates a new StateRepository
func NewStateRepository(db *mongo.Database) repositories.StateRepository {
	return &StateRepository{
		collection: db.Collection("state"),
	}
}

// Load returns the stored application state, or nil on a fresh install.
// A document that fails to decode is treated the same as no document, so a
// malformed store never propagates as a crash.
func (r *StateRepository) Load(ctx context.Context) (*models.AppState, error) {
	var doc stateDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": stateDocID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if doc.State == nil {
		return nil, nil
	}
	doc.State.Normalize()
	return doc.State, nil
}

// Save overwrites the stored state
func (r *StateRepository) Save(ctx context.Context, state *models.AppState) error {
	doc := stateDocument{
		ID:        stateDocID,
		State:     state,
		UpdatedAt: time.Now(),
	}
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": stateDocID}, doc, opts)
	return err
}
