package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ArowuTest/lottery-results-backend/internal/models"
	"github.com/ArowuTest/lottery-results-backend/internal/repositories"
)

// Compile-time check to ensure ResultRepository implements the interface
var _ repositories.ResultRepository = (*ResultRepository)(nil)

// newestFirst orders results by draw date, then by upload time. Draw dates
// are stored as YYYY-MM-DD so they sort as strings.
var newestFirst = bson.D{{Key: "drawDate", Value: -1}, {Key: "createdAt", Value: -1}}

// ResultRepository handles MongoDB operations for LotteryResult
type ResultRepository struct {
	collection *mongo.Collection
}

// NewResultRepository creates a new ResultRepository
func NewResultRepository(db *mongo.Database) *ResultRepository {
	return &ResultRepository{
		collection: db.Collection("lottery_results"),
	}
}

// EnsureIndexes creates the indexes used by the lookups below.
func (r *ResultRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "drawNumber", Value: 1}}},
		{Keys: newestFirst},
	})
	return err
}

// Create inserts a new result
func (r *ResultRepository) Create(ctx context.Context, result *models.LotteryResult) error {
	result.ID = primitive.NewObjectID()
	result.CreatedAt = time.Now()
	result.UpdatedAt = result.CreatedAt
	_, err := r.collection.InsertOne(ctx, result)
	return err
}

// FindByID finds a result by ID
func (r *ResultRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.LotteryResult, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByDrawNumber finds the newest result stored for a draw number
func (r *ResultRepository) FindByDrawNumber(ctx context.Context, drawNumber string) (*models.LotteryResult, error) {
	return r.findOne(ctx, bson.M{"drawNumber": drawNumber}, options.FindOne().SetSort(newestFirst))
}

// FindLatest finds the result of the most recent draw
func (r *ResultRepository) FindLatest(ctx context.Context) (*models.LotteryResult, error) {
	return r.findOne(ctx, bson.M{}, options.FindOne().SetSort(newestFirst))
}

// FindAll returns one page of results, newest draw first
func (r *ResultRepository) FindAll(ctx context.Context, page, limit int) ([]*models.LotteryResult, error) {
	if page < 1 {
		page = 1
	}
	opts := options.Find().
		SetSort(newestFirst).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []*models.LotteryResult
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if results == nil {
		results = []*models.LotteryResult{}
	}
	return results, nil
}

// Update replaces the stored result, keeping its creation metadata
func (r *ResultRepository) Update(ctx context.Context, result *models.LotteryResult) error {
	result.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"lotteryName":      result.LotteryName,
		"drawNumber":       result.DrawNumber,
		"drawDate":         result.DrawDate,
		"drawTime":         result.DrawTime,
		"location":         result.Location,
		"prizes":           result.Prizes,
		"nextDrawDate":     result.NextDrawDate,
		"nextDrawLocation": result.NextDrawLocation,
		"issuedBy":         result.IssuedBy,
		"issuerTitle":      result.IssuerTitle,
		"sourceName":       result.SourceName,
		"updatedAt":        result.UpdatedAt,
	}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": result.ID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Delete removes a result
func (r *ResultRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Count returns the number of stored results
func (r *ResultRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *ResultRepository) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*models.LotteryResult, error) {
	var result models.LotteryResult
	err := r.collection.FindOne(ctx, filter, opts...).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}
