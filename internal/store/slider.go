package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type SliderRepo struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func (r *SliderRepo) List(ctx context.Context) ([]bson.M, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return findAll(ctx, r.coll, bson.M{})
}
