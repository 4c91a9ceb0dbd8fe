package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/medcampconnect/medcamp-api/internal/models"
)

type UserRepo struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (bson.M, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return findOne(ctx, r.coll, bson.M{"email": email})
}

// Lookup decodes the stored user for role checks. It returns nil, nil when no user has that email.
func (r *UserRepo) Lookup(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user %s: %w", email, err)
	}
	return &user, nil
}

// Ensure stores user the first time its email is seen. If a record already
// exists it is returned as-is and nothing is written. The insert uses
// $setOnInsert so a concurrent first sight cannot overwrite fields either.
func (r *UserRepo) Ensure(ctx context.Context, user bson.M, now time.Time) (bson.M, *models.UpdateResult, error) {
	email, _ := user["email"].(string)

	existing, err := r.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return existing, nil, nil
	}

	doc := withoutID(user)
	doc["timestamp"] = now.UnixMilli()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$setOnInsert": doc},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("upsert user %s: %w", email, err)
	}
	return nil, updateResult(res), nil
}

func (r *UserRepo) List(ctx context.Context) ([]bson.M, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return findAll(ctx, r.coll, bson.M{})
}
