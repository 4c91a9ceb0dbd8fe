// Package store holds the document collections behind the API. Every method is
// a single collection operation except BookingStore.Create, which also bumps
// the booked camp's participant counter in the same transaction.
package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/medcampconnect/medcamp-api/internal/models"
)

// Collection names as they exist in the deployed database.
const (
	CampsCollection    = "Camps"
	UsersCollection    = "users"
	BookingsCollection = "bookings"
	FeedbackCollection = "feedbacks"
	SliderCollection   = "SliderData"
)

// ErrInvalidID is returned when a path identifier is not a valid ObjectID.
var ErrInvalidID = errors.New("invalid object id")

type Store struct {
	Camps    *CampRepo
	Users    *UserRepo
	Bookings *BookingRepo
	Feedback *FeedbackRepo
	Slider   *SliderRepo
}

func New(db *mongo.Database, timeout time.Duration) *Store {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	camps := db.Collection(CampsCollection)
	return &Store{
		Camps:    &CampRepo{coll: camps, timeout: timeout},
		Users:    &UserRepo{coll: db.Collection(UsersCollection), timeout: timeout},
		Bookings: &BookingRepo{client: db.Client(), coll: db.Collection(BookingsCollection), camps: camps, timeout: timeout},
		Feedback: &FeedbackRepo{coll: db.Collection(FeedbackCollection), timeout: timeout},
		Slider:   &SliderRepo{coll: db.Collection(SliderCollection), timeout: timeout},
	}
}

// EnsureIndexes creates the lookup indexes the API relies on. A failure on the
// unique email index (existing duplicates) is logged and does not stop startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_email"),
	})
	if err != nil {
		log.Printf("EnsureIndexes: unique email index not created: %v", err)
	}

	if _, err := db.Collection(BookingsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "participant_email", Value: 1}, {Key: "campId", Value: 1}},
		Options: options.Index().SetName("participant_camp"),
	}); err != nil {
		return fmt.Errorf("bookings index: %w", err)
	}
	if _, err := db.Collection(FeedbackCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "campId", Value: 1}},
		Options: options.Index().SetName("camp"),
	}); err != nil {
		return fmt.Errorf("feedbacks index: %w", err)
	}
	return nil
}

func objectID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, hex)
	}
	return id, nil
}

func findAll(ctx context.Context, coll *mongo.Collection, filter interface{}, opts ...*options.FindOptions) ([]bson.M, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)

	docs := make([]bson.M, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", coll.Name(), err)
	}
	return docs, nil
}

// findOne returns nil, nil when nothing matches.
func findOne(ctx context.Context, coll *mongo.Collection, filter interface{}) (bson.M, error) {
	var doc bson.M
	err := coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find one %s: %w", coll.Name(), err)
	}
	return doc, nil
}

func insertResult(res *mongo.InsertOneResult) *models.InsertResult {
	return &models.InsertResult{Acknowledged: true, InsertedID: res.InsertedID}
}

func updateResult(res *mongo.UpdateResult) *models.UpdateResult {
	return &models.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    res.UpsertedID,
	}
}

func deleteResult(res *mongo.DeleteResult) *models.DeleteResult {
	return &models.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}
}

// withoutID drops a client-supplied _id so $set never touches the immutable field.
func withoutID(doc bson.M) bson.M {
	out := make(bson.M, len(doc))
	for k, v := range doc {
		if k == "_id" {
			continue
		}
		out[k] = v
	}
	return out
}
