package store

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/medcampconnect/medcamp-api/internal/models"
)

// Sort keys accepted by GET /camps.
const (
	SortMostRegistered = "most-registered"
	SortCampFees       = "camp-fees"
	SortCampName       = "camp-name"
)

const TopCampsLimit = 6

var numericCollation = &options.Collation{Locale: "en", NumericOrdering: true}

type CampRepo struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// SearchFilter matches search as a literal, case-insensitive substring of
// camp_name, date or location.
func SearchFilter(search string) bson.M {
	pattern := substringPattern(search)
	return bson.M{"$or": bson.A{
		bson.M{"camp_name": pattern},
		bson.M{"date": pattern},
		bson.M{"location": pattern},
	}}
}

func substringPattern(search string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(search), "$options": "i"}
}

// SortFor maps a sort key to its ordering. Unknown keys yield nil (natural order).
func SortFor(key string) bson.D {
	switch key {
	case SortMostRegistered:
		return bson.D{{Key: "participant_count", Value: -1}}
	case SortCampFees:
		return bson.D{{Key: "camp_fees", Value: 1}}
	case SortCampName:
		return bson.D{{Key: "camp_name", Value: 1}}
	}
	return nil
}

func (r *CampRepo) List(ctx context.Context, search, sort string) ([]bson.M, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.Find()
	if s := SortFor(sort); s != nil {
		opts.SetSort(s)
	}
	if sort == SortCampFees {
		// camp_fees may be stored as a string; compare digits numerically
		opts.SetCollation(numericCollation)
	}
	return findAll(ctx, r.coll, SearchFilter(search), opts)
}

// Top returns the TopCampsLimit camps with the most participants.
func (r *CampRepo) Top(ctx context.Context) ([]bson.M, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "participant_count", Value: -1}}).
		SetLimit(TopCampsLimit)
	return findAll(ctx, r.coll, bson.M{}, opts)
}

func (r *CampRepo) Get(ctx context.Context, id string) (bson.M, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return findOne(ctx, r.coll, bson.M{"_id": oid})
}

func (r *CampRepo) Create(ctx context.Context, camp bson.M) (*models.InsertResult, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, withoutID(camp))
	if err != nil {
		return nil, fmt.Errorf("insert camp: %w", err)
	}
	return insertResult(res), nil
}

func (r *CampRepo) Update(ctx context.Context, id string, camp bson.M) (*models.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": withoutID(camp)})
	if err != nil {
		return nil, fmt.Errorf("update camp %s: %w", id, err)
	}
	return updateResult(res), nil
}

// Delete removes only the camp; its bookings and feedback stay.
func (r *CampRepo) Delete(ctx context.Context, id string) (*models.DeleteResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, fmt.Errorf("delete camp %s: %w", id, err)
	}
	return deleteResult(res), nil
}

func (r *CampRepo) IncrementParticipants(ctx context.Context, id string) (*models.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, incParticipants)
	if err != nil {
		return nil, fmt.Errorf("increment camp %s: %w", id, err)
	}
	return updateResult(res), nil
}

var incParticipants = bson.M{"$inc": bson.M{"participant_count": 1}}
