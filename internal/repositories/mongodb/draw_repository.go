package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/ArowuTest/lotto645-backend/internal/models"
	"github.com/ArowuTest/lotto645-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const drawsCollection = "draws"

// DrawRepository implements the repositories.DrawRepository interface
type DrawRepository struct {
	collection *mongo.Collection
}

// NewDrawRepository creates a new DrawRepository
func NewDrawRepository(db *mongo.Database) repositories.DrawRepository {
	return &DrawRepository{
		collection: db.Collection(drawsCollection),
	}
}

// EnsureIndexes creates the unique draw number index
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(drawsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "drawNumber", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_draw_number"),
	})
	if err != nil {
		return err
	}
	_, err = db.Collection(adminUsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_admin_email"),
	})
	return err
}

// UpsertMany replaces each draw by draw number, inserting when absent
func (r *DrawRepository) UpsertMany(ctx context.Context, draws []models.Draw) (int, error) {
	if len(draws) == 0 {
		return 0, nil
	}

	now := time.Now()
	writes := make([]mongo.WriteModel, 0, len(draws))
	for _, d := range draws {
		d.UpdatedAt = now
		if d.CreatedAt.IsZero() {
			d.CreatedAt = now
		}
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"drawNumber": d.DrawNumber}).
			SetReplacement(d).
			SetUpsert(true))
	}

	res, err := r.collection.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, err
	}
	return int(res.UpsertedCount + res.MatchedCount), nil
}

// FindAll returns every draw sorted by draw number
func (r *DrawRepository) FindAll(ctx context.Context) ([]*models.Draw, error) {
	opts := options.Find().SetSort(bson.D{{Key: "drawNumber", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var draws []*models.Draw
	if err := cursor.All(ctx, &draws); err != nil {
		return nil, err
	}
	if draws == nil {
		draws = []*models.Draw{}
	}
	return draws, nil
}

// FindByNumber finds a draw by its draw number
func (r *DrawRepository) FindByNumber(ctx context.Context, drawNumber int) (*models.Draw, error) {
	var draw models.Draw
	err := r.collection.FindOne(ctx, bson.M{"drawNumber": drawNumber}).Decode(&draw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &draw, nil
}

// FindLatest finds the draw with the highest draw number
func (r *DrawRepository) FindLatest(ctx context.Context) (*models.Draw, error) {
	var draw models.Draw
	opts := options.FindOne().SetSort(bson.D{{Key: "drawNumber", Value: -1}})
	err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&draw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &draw, nil
}

// Count returns the number of stored draws
func (r *DrawRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
