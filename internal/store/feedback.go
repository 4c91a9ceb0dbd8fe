package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/medcampconnect/medcamp-api/internal/models"
)

type FeedbackRepo struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// Create stores feedback without checking that campId names an existing camp.
func (r *FeedbackRepo) Create(ctx context.Context, feedback bson.M) (*models.InsertResult, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, withoutID(feedback))
	if err != nil {
		return nil, fmt.Errorf("insert feedback: %w", err)
	}
	return insertResult(res), nil
}

func (r *FeedbackRepo) List(ctx context.Context) ([]bson.M, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return findAll(ctx, r.coll, bson.M{})
}

func (r *FeedbackRepo) ListByCamp(ctx context.Context, campID string) ([]bson.M, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return findAll(ctx, r.coll, bson.M{"campId": campID})
}
