package mongodb

import (
	"context"
	"errors"

	"github.com/ArowuTest/lotto645-backend/internal/models"
	"github.com/ArowuTest/lotto645-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FeaturedDrawRepository implements repositories.FeaturedDrawRepository
type FeaturedDrawRepository struct {
	collection *mongo.Collection
}

// NewFeaturedDrawRepository creates a new FeaturedDrawRepository
func NewFeaturedDrawRepository(db *mongo.Database) repositories.FeaturedDrawRepository {
	return &FeaturedDrawRepository{
		collection: db.Collection("featured_draw"),
	}
}

// Get retrieves the featured draw
func (r *FeaturedDrawRepository) Get(ctx context.Context) (*models.FeaturedDraw, error) {
	var draw models.FeaturedDraw
	err := r.collection.FindOne(ctx, bson.M{}).Decode(&draw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// If nothing was saved yet, store and return the default
		draw = models.DefaultFeaturedDraw()
		if err := r.Save(ctx, &draw); err != nil {
			return nil, err
		}
		return &draw, nil
	}
	if err != nil {
		return nil, err
	}
	return &draw, nil
}

// Save replaces the featured draw
func (r *FeaturedDrawRepository) Save(ctx context.Context, draw *models.FeaturedDraw) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{}, draw, options.Replace().SetUpsert(true))
	return err
}
